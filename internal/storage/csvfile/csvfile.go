// Package csvfile stores the ledger as a flat comma-separated file with a
// fixed header. The same encoding is used for user-requested exports.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"vendas/internal/core"
)

// Header names the seven columns in the order every reader and writer uses.
var Header = []string{"date", "seller", "product", "quantity", "unit_price", "total", "region"}

var ErrMalformed = errors.New("malformed ledger file")

// File persists the ledger at a fixed path, rewriting it whole on every save.
type File struct {
	path string
}

func New(path string) *File {
	return &File{path: path}
}

func (f *File) Path() string {
	return f.path
}

// Load decodes the file. A missing file is an empty ledger.
func (f *File) Load(_ context.Context) ([]core.Sale, error) {
	fh, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer fh.Close()
	return Read(fh)
}

// Save replaces the file with the given sales.
func (f *File) Save(_ context.Context, sales []core.Sale) error {
	return WriteFile(f.path, sales)
}

// WriteFile writes sales to path through a temporary file in the same
// directory, so a failed write never leaves a truncated ledger behind.
func WriteFile(path string, sales []core.Sale) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".vendas-*.csv.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, sales); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}

// Write encodes the header and one row per sale.
func Write(w io.Writer, sales []core.Sale) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range sales {
		if err := writer.Write([]string{
			s.Date,
			s.Seller,
			s.Product,
			strconv.Itoa(s.Quantity),
			s.UnitPrice.String(),
			s.Total.String(),
			s.Region,
		}); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Read decodes a whole ledger. Any bad header or row fails the entire read;
// rows are never partially recovered. An empty input is an empty ledger.
func Read(r io.Reader) ([]core.Sale, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	header := records[0]
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	if !slices.Equal(header, Header) {
		return nil, fmt.Errorf("%w: unexpected header %v", ErrMalformed, header)
	}

	sales := make([]core.Sale, 0, len(records)-1)
	for i, rec := range records[1:] {
		s, err := decodeRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformed, i+2, err)
		}
		sales = append(sales, s)
	}
	return sales, nil
}

func decodeRow(rec []string) (core.Sale, error) {
	qty, err := core.ParseQuantity(rec[3])
	if err != nil {
		return core.Sale{}, fmt.Errorf("quantity %q: %w", rec[3], err)
	}
	price, err := core.ParseMoney(rec[4])
	if err != nil {
		return core.Sale{}, fmt.Errorf("unit_price %q: %w", rec[4], err)
	}
	total, err := core.ParseMoney(rec[5])
	if err != nil {
		return core.Sale{}, fmt.Errorf("total %q: %w", rec[5], err)
	}
	return core.Sale{
		Date:      rec[0],
		Seller:    rec[1],
		Product:   rec[2],
		Quantity:  qty,
		UnitPrice: price,
		Total:     total,
		Region:    rec[6],
	}, nil
}
