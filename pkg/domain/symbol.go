package domain

import "strings"

// DefaultBlankSymbol is used when a machine is built without a configured blank.
const DefaultBlankSymbol BlankSymbol = "_"

// Symbol is an atomic tape value. Two symbols are equal if their content is equal.
type Symbol string

// String returns the content of the symbol.
func (s Symbol) String() string {
	return string(s)
}

// BlankSymbol is the distinguished symbol that fills every cell never written.
type BlankSymbol Symbol

// Symbol returns the plain symbol carried by the blank.
func (b BlankSymbol) Symbol() Symbol {
	return Symbol(b)
}

// String returns the content of the blank symbol.
func (b BlankSymbol) String() string {
	return string(b)
}

// Word is a sequence of symbols, read left to right.
type Word []Symbol

// WordFromString splits s into one symbol per rune.
func WordFromString(s string) Word {
	word := make(Word, 0, len(s))
	for _, r := range s {
		word = append(word, Symbol(string(r)))
	}
	return word
}

// String concatenates the symbols of the word.
func (w Word) String() string {
	var sb strings.Builder
	for _, s := range w {
		sb.WriteString(string(s))
	}
	return sb.String()
}
