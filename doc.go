// Package allocation compares a portfolio with its target allocation.
//
// Targets are decoded from TOML, positions from any JSON document through a
// JSONPath selector. Allocate groups the positions by target, and the tables
// of this package present them with the sortable and collapsible tables of
// package table:
//   - NewPositionTable lists the targets with the value and gains of their
//     positions, each target expanding into its own sortable positions
//     table, totals in the footer.
//   - NewTargetTable lists the targets by descending weight.
//
// Amounts are exact decimals (Money), formatted in the reporting currency.
package allocation
