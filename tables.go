package allocation

import (
	"strings"

	"github.com/etnz/allocation/table"
)

// moneyColumn returns a column over amounts in currency: sorted and summed on
// the exact amounts, displayed formatted.
func moneyColumn[R any](label, currency string, get func(R) Money) *table.Column[R] {
	return table.Sum(label, M(0, currency), get, Money.String)
}

// TargetColumns returns the columns of the positions table, total is the
// total portfolio value. Trade is what to buy, or sell, to reach the target.
func TargetColumns(total Money) []*table.Column[TargetState] {
	cur := total.Currency()
	return []*table.Column[TargetState]{
		table.Text("Name", func(s TargetState) string { return s.Target.Name }).WithFooterText("Total"),
		moneyColumn("Value", cur, TargetState.Value),
		moneyColumn("Target", cur, func(s TargetState) Money { return s.TargetValue(total) }),
		moneyColumn("Profit", cur, TargetState.Gain),
		moneyColumn("Loss", cur, TargetState.Loss),
		moneyColumn("Net", cur, TargetState.Net),
		table.Sum("Trade", M(0, cur), func(s TargetState) Money { return s.Trade(total) }, Money.SignedString),
	}
}

// PositionColumns returns the columns of the positions nested beneath a
// target.
func PositionColumns(currency string) []*table.Column[Position] {
	return []*table.Column[Position]{
		table.Text("Symbol", func(p Position) string { return p.Ticker }),
		moneyColumn("Value", currency, func(p Position) Money { return p.Value }),
		moneyColumn("Profit", currency, func(p Position) Money { return p.Gain }),
		moneyColumn("Loss", currency, func(p Position) Money { return p.Loss }),
		moneyColumn("Net", currency, Position.Net),
	}
}

// NewPositionTable returns the table of target states: each target can be
// expanded to list its positions, and the footer sums every target.
func NewPositionTable(states []TargetState, total Money) *table.Collapsible[TargetState] {
	holdings := func(s TargetState) []Position { return s.Holdings }
	return table.NewCollapsible(states, TargetColumns(total)...).
		WithNested(table.Nest(holdings, PositionColumns(total.Currency())...)).
		WithFooter()
}

// TargetListColumns returns the columns of the targets listing.
func TargetListColumns() []*table.Column[Target] {
	return []*table.Column[Target]{
		table.Text("Name", func(t Target) string { return t.Name }),
		table.Ordered("Weight", Target.Percent).WithAlign(table.Right),
		table.Custom[Target]("Tickers").WithCell(func(t Target) string { return strings.Join(t.Tickers, ", ") }),
		table.Text("Direct", func(t Target) string { return t.Direct }),
	}
}

// NewTargetTable returns the targets listing, by descending weight.
func NewTargetTable(targets []Target) *table.Sortable[Target] {
	rows := append([]Target(nil), targets...)
	SortByWeight(rows)
	return table.NewSortable(rows, TargetListColumns()...)
}
