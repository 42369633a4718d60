package table

import (
	"cmp"
	"fmt"
)

// Placeholder is the footer text of a column that does not aggregate.
const Placeholder = "--"

// Number is the set of built-in numeric types a Numeric column can sum.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Summable is a value type with its own ordering and addition, like
// decimal.Decimal.
type Summable[V any] interface {
	Add(V) V
	Cmp(V) int
}

// Column describes one vertical slice of a table over rows of type R: how to
// compare two rows, and how to render the header, a body cell, and the footer.
//
// The value type of the column is bound by the constructors (Value, Ordered,
// Numeric, Sum) and hidden behind the accessor, so columns over different
// value types fit in the same []*Column[R].
type Column[R any] struct {
	label      string
	align      Align
	compare    func(a, b R) int
	header     func(dir Direction) Cell
	cell       func(r R) string
	footer     func(rows []R) string
	aggregates bool
}

// Custom returns a column with no value: every renderer is optional and it
// is unsortable until WithSort is called.
func Custom[R any](label string) *Column[R] {
	return &Column[R]{label: label}
}

// Value returns a column reading values of type V from rows.
// Rows are compared on the values returned by get, never on their formatted
// text. A nil compare makes the column unsortable.
func Value[R, V any](label string, get func(R) V, compare func(a, b V) int, format func(V) string) *Column[R] {
	if format == nil {
		format = func(v V) string { return fmt.Sprint(v) }
	}
	c := &Column[R]{
		label: label,
		cell:  func(r R) string { return format(get(r)) },
	}
	if compare != nil {
		c.compare = func(a, b R) int { return compare(get(a), get(b)) }
	}
	return c
}

// Ordered returns a column over naturally ordered values.
func Ordered[R any, V cmp.Ordered](label string, get func(R) V) *Column[R] {
	return Value(label, get, cmp.Compare[V], nil)
}

// Text returns a column over strings.
func Text[R any](label string, get func(R) string) *Column[R] {
	return Ordered(label, get)
}

// Numeric returns a right aligned column over numbers. Its footer is the sum
// of the values, formatted like the cells.
func Numeric[R any, V Number](label string, get func(R) V, format func(V) string) *Column[R] {
	c := Value(label, get, cmp.Compare[V], format).WithAlign(Right)
	if format == nil {
		format = func(v V) string { return fmt.Sprint(v) }
	}
	c.footer = func(rows []R) string {
		var sum V
		for _, r := range rows {
			sum += get(r)
		}
		return format(sum)
	}
	c.aggregates = true
	return c
}

// Sum returns a right aligned column over values that know how to add and
// compare themselves. zero is the additive identity, rendered as the footer
// of an empty table.
func Sum[R any, V Summable[V]](label string, zero V, get func(R) V, format func(V) string) *Column[R] {
	c := Value(label, get, func(a, b V) int { return a.Cmp(b) }, format).WithAlign(Right)
	if format == nil {
		format = func(v V) string { return fmt.Sprint(v) }
	}
	c.footer = func(rows []R) string {
		sum := zero
		for _, r := range rows {
			sum = sum.Add(get(r))
		}
		return format(sum)
	}
	c.aggregates = true
	return c
}

// WithAlign sets the column alignment.
func (c *Column[R]) WithAlign(a Align) *Column[R] {
	c.align = a
	return c
}

// WithSort sets the comparator of the column.
func (c *Column[R]) WithSort(compare func(a, b R) int) *Column[R] {
	c.compare = compare
	return c
}

// Unsortable removes the comparator of the column.
func (c *Column[R]) Unsortable() *Column[R] {
	c.compare = nil
	return c
}

// WithHeader replaces the header renderer.
func (c *Column[R]) WithHeader(header func(dir Direction) Cell) *Column[R] {
	c.header = header
	return c
}

// WithCell replaces the cell renderer.
func (c *Column[R]) WithCell(cell func(r R) string) *Column[R] {
	c.cell = cell
	return c
}

// WithFooter replaces the footer renderer. The column no longer aggregates.
func (c *Column[R]) WithFooter(footer func(rows []R) string) *Column[R] {
	c.footer = footer
	c.aggregates = false
	return c
}

// WithFooterText sets a constant footer.
func (c *Column[R]) WithFooterText(text string) *Column[R] {
	return c.WithFooter(func([]R) string { return text })
}

func (c *Column[R]) Label() string { return c.label }
func (c *Column[R]) Align() Align  { return c.align }

// Sortable reports whether the column has a comparator.
func (c *Column[R]) Sortable() bool { return c.compare != nil }

// Aggregates reports whether the footer is a sum over the rows.
func (c *Column[R]) Aggregates() bool { return c.aggregates }

// Sort compares two rows: negative if a comes before b.
// An unsortable column compares every pair as equal.
func (c *Column[R]) Sort(a, b R) int {
	if c.compare == nil {
		return 0
	}
	return c.compare(a, b)
}

// RenderHeader renders the header cell with the sort indicator dir.
func (c *Column[R]) RenderHeader(dir Direction) Cell {
	if c.header != nil {
		return c.header(dir)
	}
	return Cell{Text: c.label, Align: c.align, Sort: dir}
}

// RenderCell renders the cell of row r.
func (c *Column[R]) RenderCell(r R) Cell {
	cell := Cell{Align: c.align}
	if c.cell != nil {
		cell.Text = c.cell(r)
	}
	return cell
}

// RenderFooter renders the footer cell over rows, the full row sequence of
// the table, regardless of how it is currently sorted or expanded.
func (c *Column[R]) RenderFooter(rows []R) Cell {
	if c.footer == nil {
		return Cell{Text: Placeholder, Align: c.align}
	}
	return Cell{Text: c.footer(rows), Align: c.align}
}
