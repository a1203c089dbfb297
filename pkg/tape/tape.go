// Package tape implements the unbounded two-way tape of a Turing machine.
//
// Cells are materialized lazily: only positions that were visited by the head or
// written by WriteWord exist. Index 0 is the cell under the head when the tape was
// created.
package tape

import "github.com/aretw0/turing/pkg/domain"

// Tape is a sequence of cells that grows on demand in both directions.
// It is not safe for concurrent use.
type Tape struct {
	blank domain.BlankSymbol

	// right holds indices 0, 1, 2, ...; left holds indices -1, -2, -3, ...
	right []domain.Symbol
	left  []domain.Symbol

	head int
}

// New creates a tape with a single blank cell at index 0 under the head.
func New(blank domain.BlankSymbol) *Tape {
	return &Tape{
		blank: blank,
		right: []domain.Symbol{blank.Symbol()},
	}
}

// Blank returns the fill value of unvisited cells.
func (t *Tape) Blank() domain.BlankSymbol {
	return t.blank
}

// MoveHead moves the head one cell, materializing the target if it was never visited.
func (t *Tape) MoveHead(move domain.TapeMove) {
	if move == domain.None {
		return
	}
	t.head += move.Offset()
	t.visit(t.head)
}

// Read returns the symbol under the head.
func (t *Tape) Read() domain.Symbol {
	return *t.cell(t.head)
}

// Write overwrites the symbol under the head. The head does not move.
func (t *Tape) Write(s domain.Symbol) {
	*t.cell(t.head) = s
}

// Clear writes the blank symbol under the head.
func (t *Tape) Clear() {
	t.Write(t.blank.Symbol())
}

// WriteWord writes word onto the cells starting at the head and extending to the
// right. The head stays on the first written cell.
func (t *Tape) WriteWord(word domain.Word) {
	for i, s := range word {
		idx := t.head + i
		t.visit(idx)
		*t.cell(idx) = s
	}
}

// HeadIndex returns the position of the head relative to the starting cell.
func (t *Tape) HeadIndex() int {
	return t.head
}

// Bounds returns the leftmost and rightmost materialized indices.
func (t *Tape) Bounds() (leftmost, rightmost int) {
	return -len(t.left), len(t.right) - 1
}

// Content returns every materialized cell, from the leftmost to the rightmost ever
// visited. The returned word is a copy.
func (t *Tape) Content() domain.Word {
	word := make(domain.Word, 0, len(t.left)+len(t.right))
	for i := len(t.left) - 1; i >= 0; i-- {
		word = append(word, t.left[i])
	}
	return append(word, t.right...)
}

// visit materializes idx and every cell between it and the current bounds.
// Existing cells are never recreated.
func (t *Tape) visit(idx int) {
	blank := t.blank.Symbol()
	if idx >= 0 {
		for len(t.right) <= idx {
			t.right = append(t.right, blank)
		}
		return
	}
	for len(t.left) < -idx {
		t.left = append(t.left, blank)
	}
}

// cell returns a pointer to a materialized cell.
func (t *Tape) cell(idx int) *domain.Symbol {
	if idx >= 0 {
		return &t.right[idx]
	}
	return &t.left[-idx-1]
}
