package machine

import "github.com/aretw0/turing/pkg/domain"

// Table is a deterministic transition table: at most one transition per configuration.
type Table struct {
	rules map[domain.Configuration]domain.Transition
	order []domain.Configuration
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		rules: make(map[domain.Configuration]domain.Transition),
	}
}

// Add inserts t. It returns false and leaves the table untouched if a transition for
// the same (state, scanned symbol) already exists, whatever its outcome.
func (tb *Table) Add(t domain.Transition) bool {
	key := t.Configuration()
	if _, exists := tb.rules[key]; exists {
		return false
	}
	tb.rules[key] = t
	tb.order = append(tb.order, key)
	return true
}

// Lookup returns the unique transition matching state and scanned symbol.
func (tb *Table) Lookup(state domain.State, scanned domain.Symbol) (domain.Transition, bool) {
	t, ok := tb.rules[domain.Configuration{State: state, Symbol: scanned}]
	return t, ok
}

// Len returns the number of transitions.
func (tb *Table) Len() int {
	return len(tb.order)
}

// All returns the transitions in insertion order.
func (tb *Table) All() []domain.Transition {
	out := make([]domain.Transition, 0, len(tb.order))
	for _, key := range tb.order {
		out = append(out, tb.rules[key])
	}
	return out
}
