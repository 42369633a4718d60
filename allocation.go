package allocation

// TargetState is a target together with the positions it holds.
type TargetState struct {
	Target   Target
	Holdings []Position
	// Currency of the aggregated amounts.
	Currency string
}

// Key implements table.Keyed.
func (s TargetState) Key() string { return s.Target.ID }

// Value returns the value of the holdings.
func (s TargetState) Value() Money { return s.sum(func(p Position) Money { return p.Value }) }

// Gain returns the unrealized profit of the holdings.
func (s TargetState) Gain() Money { return s.sum(func(p Position) Money { return p.Gain }) }

// Loss returns the unrealized loss of the holdings.
func (s TargetState) Loss() Money { return s.sum(func(p Position) Money { return p.Loss }) }

// Net returns the net unrealized gain of the holdings.
func (s TargetState) Net() Money { return s.sum(Position.Net) }

// TargetValue returns the value the target aims at, out of the total
// portfolio value.
func (s TargetState) TargetValue(total Money) Money {
	return total.Mul(newDecimal(s.Target.Weight))
}

// Trade returns the amount to buy, or to sell when negative, to bring the
// holdings to the target value.
func (s TargetState) Trade(total Money) Money {
	return s.TargetValue(total).Sub(s.Value())
}

func (s TargetState) sum(get func(Position) Money) Money {
	sum := M(0, s.Currency)
	for _, p := range s.Holdings {
		sum = sum.Add(get(p))
	}
	return sum
}

// Allocate groups positions by target.
//
// It returns one state per target, in order, holding the positions of the
// target's tickers (tickers with no position are skipped), followed by the
// "unallocated" target holding every position no target claims.
func Allocate(targets []Target, positions []Position, currency string) []TargetState {
	byTicker := make(map[string]Position, len(positions))
	for _, p := range positions {
		byTicker[p.Ticker] = p
	}

	allocated := make(map[string]bool)
	states := make([]TargetState, 0, len(targets)+1)
	for _, t := range targets {
		s := TargetState{Target: t, Currency: currency}
		for _, ticker := range t.Tickers {
			allocated[ticker] = true
			if p, ok := byTicker[ticker]; ok {
				s.Holdings = append(s.Holdings, p)
			}
		}
		states = append(states, s)
	}

	unallocated := TargetState{
		Target: Target{
			ID:      UnallocatedKey,
			Name:    "Unallocated Positions",
			Tickers: []string{UnallocatedKey},
		},
		Currency: currency,
	}
	for _, p := range positions {
		if !allocated[p.Ticker] {
			unallocated.Holdings = append(unallocated.Holdings, p)
		}
	}
	return append(states, unallocated)
}
