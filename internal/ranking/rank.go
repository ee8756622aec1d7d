// Package ranking orders aggregated groups and turns them into rows for a
// text or markup report.
package ranking

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"vendas/internal/aggregate"
	"vendas/internal/core"
)

// Metric selects the value groups are ranked by.
type Metric int

const (
	ByTotal Metric = iota
	ByQuantity
	ByCount
)

// Value returns the metric for g.
func (m Metric) Value(g aggregate.Group) int64 {
	switch m {
	case ByQuantity:
		return int64(g.SumQuantity)
	case ByCount:
		return int64(g.Count)
	default:
		return g.SumTotal.Cents
	}
}

var hundred = decimal.NewFromInt(100)

// Rank returns a copy of groups sorted by metric, highest first. Equal
// values are ordered by key ascending; equal keys cannot occur within one
// grouping.
func Rank(groups []aggregate.Group, metric Metric) []aggregate.Group {
	ranked := slices.Clone(groups)
	slices.SortStableFunc(ranked, func(a, b aggregate.Group) int {
		if c := cmp.Compare(metric.Value(b), metric.Value(a)); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return ranked
}

// TopN returns at most the first n ranked groups.
func TopN(ranked []aggregate.Group, n int) []aggregate.Group {
	if n <= 0 {
		return nil
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// PercentOfTotal is value / total * 100.
func PercentOfTotal(value, total core.Money) (decimal.Decimal, error) {
	if total.IsZero() {
		return decimal.Zero, &aggregate.ArithmeticError{Kind: aggregate.DivideByZero}
	}
	return value.Decimal().Mul(hundred).Div(total.Decimal()), nil
}

// Recent returns up to n sales, latest entry first. Entry order is the only
// notion of recency: the date text is not interpreted.
func Recent(sales []core.Sale, n int) []core.Sale {
	if n <= 0 {
		return nil
	}
	out := make([]core.Sale, 0, min(n, len(sales)))
	for i := len(sales) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, sales[i])
	}
	return out
}
