package ranking

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"vendas/internal/core"
)

// DefaultCurrency is the symbol prefixed to rendered amounts.
const DefaultCurrency = "R$"

// Formatter renders amounts for reports. On-disk values never go through
// it; it only produces display text.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter groups thousands with commas and uses a dot for decimals.
func NewFormatter(currency string) *Formatter {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Formatter{
		printer:  message.NewPrinter(language.English),
		currency: currency,
	}
}

// Amount renders 1234.5 as "1,234.50".
func (f *Formatter) Amount(m core.Money) string {
	return f.printer.Sprintf("%.2f", m.Reais())
}

// Money renders 1234.5 as "R$ 1,234.50".
func (f *Formatter) Money(m core.Money) string {
	return f.currency + " " + f.Amount(m)
}

// Percent renders a share with one decimal, e.g. "42.9%".
func (f *Formatter) Percent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}

// Position renders a 1-based rank as "#1".
func (f *Formatter) Position(i int) string {
	return fmt.Sprintf("#%d", i)
}

type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes one fixed-width text column.
type Column struct {
	Width int
	Align Align
}

// TextRow pads each field to its column and joins them with two spaces.
// Widths count runes, so accented names line up. Extra fields beyond the
// columns are appended unpadded.
func TextRow(cols []Column, fields ...string) string {
	parts := make([]string, len(fields))
	for i, field := range fields {
		if i >= len(cols) {
			parts[i] = field
			continue
		}
		if cols[i].Align == AlignRight {
			parts[i] = fmt.Sprintf("%*s", cols[i].Width, field)
		} else {
			parts[i] = fmt.Sprintf("%-*s", cols[i].Width, field)
		}
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

// MarkupRow renders fields as one escaped table row.
func MarkupRow(fields ...string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, field := range fields {
		b.WriteString("<td>")
		b.WriteString(html.EscapeString(field))
		b.WriteString("</td>")
	}
	b.WriteString("</tr>\n")
	return b.String()
}
