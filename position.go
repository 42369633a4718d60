package allocation

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DefaultSelector is the JSONPath selecting the positions of a positions
// document.
const DefaultSelector = "$.positions[*]"

// Position is the position held in one ticker.
type Position struct {
	Ticker string
	Value  Money
	// Gain is the unrealized profit of the position's profitable lots.
	Gain Money
	// Loss is the unrealized loss of the position's losing lots, zero or negative.
	Loss Money
}

// Key implements table.Keyed.
func (p Position) Key() string { return p.Ticker }

// Net returns the net unrealized gain.
func (p Position) Net() Money { return p.Gain.Add(p.Loss) }

// positionJSON is the JSON form of a position. Missing amounts are zero.
type positionJSON struct {
	Ticker string          `json:"ticker"`
	Value  decimal.Decimal `json:"value"`
	Gain   decimal.Decimal `json:"gain"`
	Loss   decimal.Decimal `json:"loss"`
}

// DecodePositions reads the positions of a JSON document. selector is a
// JSONPath expression selecting the position objects, like "$.positions[*]"
// (the default when empty); amounts are in currency.
//
// Positions may also be held in an object keyed by ticker, selected either
// as a whole ("$.positions") or with a trailing wildcard ("$.positions.*").
// They are then read in ticker order, and the key is the ticker of a
// position with none.
//
// Positions are keyed by ticker: for duplicate tickers, the last one wins.
func DecodePositions(r io.Reader, selector, currency string) ([]Position, error) {
	if selector == "" {
		selector = DefaultSelector
	}
	dec := json.NewDecoder(r)
	dec.UseNumber() // keep amounts exact
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode positions: %w", err)
	}
	items, keys, err := selectPositions(selector, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot select positions with %q: %w", selector, err)
	}

	positions := make([]Position, 0, len(items))
	index := make(map[string]int)
	for i, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("position #%d: %w", i+1, err)
		}
		var pj positionJSON
		if err := json.Unmarshal(raw, &pj); err != nil {
			return nil, fmt.Errorf("position #%d: %w", i+1, err)
		}
		if pj.Ticker == "" {
			pj.Ticker = keys[i]
		}
		ticker := strings.ToUpper(strings.TrimSpace(pj.Ticker))
		if ticker == "" {
			return nil, fmt.Errorf("position #%d: missing ticker", i+1)
		}
		p := Position{
			Ticker: ticker,
			Value:  M(pj.Value, currency),
			Gain:   M(pj.Gain, currency),
			Loss:   M(pj.Loss, currency),
		}
		if j, ok := index[ticker]; ok {
			positions[j] = p
			continue
		}
		index[ticker] = len(positions)
		positions = append(positions, p)
	}
	return positions, nil
}

// selectPositions returns the position objects selected in doc, and the key
// of each object when it comes from an object keyed by ticker ("" otherwise).
func selectPositions(selector string, doc any) (items []any, keys []string, err error) {
	// jsonpath walks objects in random order: a wildcard over an object is
	// expanded here, in key order.
	for _, wildcard := range []string{".*", "[*]"} {
		parent, ok := strings.CutSuffix(selector, wildcard)
		if !ok || !definite(parent) {
			continue
		}
		if v, err := jsonpath.Get(parent, doc); err == nil {
			if m, ok := v.(map[string]any); ok {
				items, keys = byKey(m)
				return items, keys, nil
			}
		}
		break
	}

	jval, err := jsonpath.Get(selector, doc)
	if err != nil {
		return nil, nil, err
	}
	switch v := jval.(type) {
	case []any:
		return v, make([]string, len(v)), nil
	case map[string]any:
		// a single position, or positions keyed by ticker
		if _, ok := v["ticker"]; ok {
			return []any{v}, []string{""}, nil
		}
		items, keys = byKey(v)
		return items, keys, nil
	default:
		return []any{jval}, []string{""}, nil
	}
}

// definite reports whether path selects at most one value.
func definite(path string) bool {
	return !strings.ContainsAny(path, "*?,:") && !strings.Contains(path, "..")
}

func byKey(m map[string]any) ([]any, []string) {
	keys := slices.Sorted(maps.Keys(m))
	items := make([]any, len(keys))
	for i, k := range keys {
		items[i] = m[k]
	}
	return items, keys
}

// TotalValue returns the sum of the positions values.
func TotalValue(positions []Position, currency string) Money {
	total := M(0, currency)
	for _, p := range positions {
		total = total.Add(p.Value)
	}
	return total
}
