package ranking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"vendas/internal/core"
)

func TestFormatterMoney(t *testing.T) {
	f := NewFormatter("")
	cases := map[int64]string{
		0:         "R$ 0.00",
		5:         "R$ 0.05",
		11667:     "R$ 116.67",
		123456:    "R$ 1,234.56",
		123456789: "R$ 1,234,567.89",
	}
	for cents, want := range cases {
		assert.Equal(t, want, f.Money(core.Money{Cents: cents}))
	}
	assert.Equal(t, "1,234.56", f.Amount(core.Money{Cents: 123456}))
	assert.Equal(t, "US$ 1.00", NewFormatter("US$").Money(core.Money{Cents: 100}))
}

func TestFormatterPercent(t *testing.T) {
	f := NewFormatter("")
	assert.Equal(t, "42.9%", f.Percent(decimal.RequireFromString("42.857")))
	assert.Equal(t, "100.0%", f.Percent(decimal.NewFromInt(100)))
	assert.Equal(t, "#3", f.Position(3))
}

func TestTextRow(t *testing.T) {
	cols := []Column{{Width: 4}, {Width: 8}, {Width: 12, Align: AlignRight}}
	assert.Equal(t, "#1    Ana          R$ 150.00", TextRow(cols, "#1", "Ana", "R$ 150.00"))
	assert.Equal(t, "#2    Memória        R$ 9.99", TextRow(cols, "#2", "Memória", "R$ 9.99"))
	assert.Equal(t, "a     b", TextRow(cols[:2], "a", "b"))
	assert.Equal(t, "a     b                    c  extra", TextRow(cols, "a", "b", "c", "extra"))
}

func TestMarkupRowEscapes(t *testing.T) {
	assert.Equal(t, "<tr><td>#1</td><td>Ana &amp; Bia</td><td>&lt;b&gt;</td></tr>\n", MarkupRow("#1", "Ana & Bia", "<b>"))
}
