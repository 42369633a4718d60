package allocation

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
)

// UnallocatedKey is the key of the target collecting the positions that no
// target claims.
const UnallocatedKey = "unallocated"

// Target is an allocation target: a share of the portfolio value to be
// invested in a set of tickers.
type Target struct {
	// ID uniquely identifies the target, it defaults to a slug of the name.
	ID   string `toml:"key"`
	Name string `toml:"name"`
	// Weight is the targeted fraction of the total portfolio value, in [0,1].
	Weight  float64  `toml:"weight"`
	Tickers []string `toml:"tickers"`
	// Direct is the ticker of the target that is direct indexed, if any. It
	// is one of Tickers.
	Direct string `toml:"direct"`
}

// Key implements table.Keyed.
func (t Target) Key() string { return t.ID }

// Percent returns the weight as a percentage.
func (t Target) Percent() Percent { return Percent(t.Weight * 100) }

// DecodeTargets reads targets from a TOML document made of [[target]] tables:
//
//	[[target]]
//	name = "World Equities"
//	weight = 0.6
//	tickers = ["VT", "VXUS"]
func DecodeTargets(r io.Reader) ([]Target, error) {
	var doc struct {
		Targets []Target `toml:"target"`
	}
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode targets: %w", err)
	}
	for i := range doc.Targets {
		doc.Targets[i] = doc.Targets[i].normalize()
	}
	if err := ValidateTargets(doc.Targets); err != nil {
		return nil, err
	}
	return doc.Targets, nil
}

func (t Target) normalize() Target {
	t.Name = strings.TrimSpace(t.Name)
	if t.ID == "" {
		t.ID = slug(t.Name)
	}
	tickers := make([]string, 0, len(t.Tickers))
	for _, ticker := range t.Tickers {
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		if ticker != "" && !slices.Contains(tickers, ticker) {
			tickers = append(tickers, ticker)
		}
	}
	t.Tickers = tickers
	t.Direct = strings.ToUpper(strings.TrimSpace(t.Direct))
	return t
}

// ValidateTargets checks that every target has a name, a unique key, a
// weight within [0,1] and a direct index among its tickers.
// A total weight above 100% is not an error, but it is logged.
func ValidateTargets(targets []Target) error {
	var errs []error
	keys := make(map[string]bool)
	claimed := make(map[string]string)
	var total float64
	for i, t := range targets {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("target #%d: missing name", i+1))
		}
		if t.ID == "" || t.ID == UnallocatedKey {
			errs = append(errs, fmt.Errorf("target #%d: invalid key %q", i+1, t.ID))
		} else if keys[t.ID] {
			errs = append(errs, fmt.Errorf("target #%d: duplicate key %q", i+1, t.ID))
		}
		keys[t.ID] = true
		if t.Weight < 0 || t.Weight > 1 {
			errs = append(errs, fmt.Errorf("target %q: weight %v is not within [0,1]", t.ID, t.Weight))
		}
		if t.Direct != "" && !slices.Contains(t.Tickers, t.Direct) {
			errs = append(errs, fmt.Errorf("target %q: direct index %s is not one of its tickers", t.ID, t.Direct))
		}
		total += t.Weight
		for _, ticker := range t.Tickers {
			if other, ok := claimed[ticker]; ok {
				log.Printf("warning: ticker %s is claimed by targets %q and %q", ticker, other, t.ID)
			}
			claimed[ticker] = t.ID
		}
	}
	if Percent(total*100).Equal(100) || total < 1 {
		return errors.Join(errs...)
	}
	log.Printf("warning: targets add up to %v", Percent(total*100))
	return errors.Join(errs...)
}

// SortByWeight sorts targets by descending weight, in place.
func SortByWeight(targets []Target) {
	slices.SortStableFunc(targets, func(a, b Target) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
}

// slug turns a name into a key: "World Equities" becomes "world-equities".
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}
