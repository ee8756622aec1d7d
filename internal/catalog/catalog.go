// Package catalog holds the product and region lists offered to the
// collaborator when a sale is entered. The lists are suggestions: the
// engine records whatever non-blank value it is given.
package catalog

import (
	"bufio"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	ProductsFile = "seed_products.txt"
	RegionsFile  = "seed_regions.txt"
)

var (
	DefaultProducts = []string{
		"Notebook", "Smartphone", "Tablet", "Monitor", "Mouse",
		"Teclado", "Fone", "Webcam", "SSD", "Memória",
	}
	DefaultRegions = []string{"Norte", "Nordeste", "Centro-Oeste", "Sudeste", "Sul"}
)

type Catalog struct {
	Products []string
	Regions  []string
}

func New(products, regions []string) Catalog {
	return Catalog{Products: dedupe(products), Regions: dedupe(regions)}
}

// Default returns the built-in catalog.
func Default() Catalog {
	return New(DefaultProducts, DefaultRegions)
}

// LoadFromDir extends the built-in catalog with entries read from
// seed_products.txt and seed_regions.txt in base. Missing files are ignored.
func LoadFromDir(base string) Catalog {
	products := append(slices.Clone(DefaultProducts), readLines(filepath.Join(base, ProductsFile))...)
	regions := append(slices.Clone(DefaultRegions), readLines(filepath.Join(base, RegionsFile))...)
	return New(products, regions)
}

func (c Catalog) HasProduct(name string) bool {
	return slices.Contains(c.Products, name)
}

func (c Catalog) HasRegion(name string) bool {
	return slices.Contains(c.Regions, name)
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// dedupe drops blanks and repeats, preserving first-seen order.
func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
