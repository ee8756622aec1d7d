// Package aggregate computes grouped totals over a ledger snapshot. Nothing
// here is cached: every call starts from the sales it is given.
package aggregate

import (
	"github.com/shopspring/decimal"

	"vendas/internal/core"
)

// Group accumulates the sales that share one key.
type Group struct {
	Key         string
	SumTotal    core.Money
	Count       int
	SumQuantity int
}

// AverageTicket is SumTotal / Count rounded to cents.
func (g Group) AverageTicket() core.Money {
	if g.Count == 0 {
		return core.Money{}
	}
	return divide(g.SumTotal, g.Count)
}

// Summary is everything a report needs from one snapshot.
type Summary struct {
	BySeller      []Group
	ByProduct     []Group
	ByRegion      []Group
	TotalCount    int
	GrandTotal    core.Money
	AverageTicket core.Money
}

// Insights are the extremes of the groupings, derived from the same totals.
type Insights struct {
	BestSeller  Group
	BestProduct Group
	BestRegion  Group
	WorstRegion Group
}

// Compute groups sales by seller, product and region. An empty snapshot
// has no average and fails with EmptyLedger; a grand total beyond the cent
// range fails with Overflow.
func Compute(sales []core.Sale) (Summary, error) {
	if len(sales) == 0 {
		return Summary{}, &ArithmeticError{Kind: EmptyLedger}
	}

	var grand core.Money
	for _, s := range sales {
		var err error
		if grand, err = grand.AddChecked(s.Total); err != nil {
			return Summary{}, &ArithmeticError{Kind: Overflow}
		}
	}

	sum := Summary{
		TotalCount:    len(sales),
		GrandTotal:    grand,
		AverageTicket: divide(grand, len(sales)),
	}
	for _, g := range []struct {
		dst *[]Group
		key func(core.Sale) string
	}{
		{&sum.BySeller, func(s core.Sale) string { return s.Seller }},
		{&sum.ByProduct, func(s core.Sale) string { return s.Product }},
		{&sum.ByRegion, func(s core.Sale) string { return s.Region }},
	} {
		groups, err := GroupBy(sales, g.key)
		if err != nil {
			return Summary{}, err
		}
		*g.dst = groups
	}
	return sum, nil
}

// GroupBy accumulates sales per key. Keys are compared exactly, so "Ana"
// and "ana " are different groups. Groups come back in order of first
// appearance. A group total beyond the cent range fails with Overflow.
func GroupBy(sales []core.Sale, key func(core.Sale) string) ([]Group, error) {
	index := make(map[string]int)
	var groups []Group
	for _, s := range sales {
		k := key(s)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		g := &groups[i]
		total, err := g.SumTotal.AddChecked(s.Total)
		if err != nil {
			return nil, &ArithmeticError{Kind: Overflow}
		}
		g.SumTotal = total
		g.Count++
		g.SumQuantity += s.Quantity
	}
	return groups, nil
}

// DistinctSellers is the number of seller groups.
func (s Summary) DistinctSellers() int {
	return len(s.BySeller)
}

// Insights picks the best seller, product and region and the weakest
// region by total. On ties the group that appeared first wins.
func (s Summary) Insights() Insights {
	return Insights{
		BestSeller:  pick(s.BySeller, func(a, b core.Money) bool { return a.Cents > b.Cents }),
		BestProduct: pick(s.ByProduct, func(a, b core.Money) bool { return a.Cents > b.Cents }),
		BestRegion:  pick(s.ByRegion, func(a, b core.Money) bool { return a.Cents > b.Cents }),
		WorstRegion: pick(s.ByRegion, func(a, b core.Money) bool { return a.Cents < b.Cents }),
	}
}

func pick(groups []Group, better func(a, b core.Money) bool) Group {
	if len(groups) == 0 {
		return Group{}
	}
	best := groups[0]
	for _, g := range groups[1:] {
		if better(g.SumTotal, best.SumTotal) {
			best = g
		}
	}
	return best
}

func divide(m core.Money, n int) core.Money {
	return core.MoneyFromDecimal(m.Decimal().Div(decimal.NewFromInt(int64(n))))
}
