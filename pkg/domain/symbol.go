package domain

// Symbol is a tape cell value. Symbols compare structurally.
type Symbol string

const (
	// Blank occupies every cell that was never written.
	Blank Symbol = ""

	// Null is the wildcard fallback key of a transition row.
	// It is never read from or written to a tape.
	Null Symbol = "\x00"
)

// IsBlank reports whether s is the Blank symbol.
func (s Symbol) IsBlank() bool {
	return s == Blank
}

// String renders Blank as BlankGlyph and Null as "NULL".
func (s Symbol) String() string {
	switch s {
	case Blank:
		return BlankGlyph
	case Null:
		return "NULL"
	}
	return string(s)
}

// Symbols splits s into one Symbol per rune.
func Symbols(s string) []Symbol {
	out := make([]Symbol, 0, len(s))
	for _, r := range s {
		out = append(out, Symbol(string(r)))
	}
	return out
}

// Join concatenates symbols back into a string, rendering Blank as BlankGlyph.
func Join(symbols []Symbol) string {
	buf := make([]byte, 0, len(symbols))
	for _, s := range symbols {
		buf = append(buf, s.String()...)
	}
	return string(buf)
}

// SymbolsOf converts each string into a single Symbol.
func SymbolsOf(values ...string) []Symbol {
	out := make([]Symbol, len(values))
	for i, v := range values {
		out[i] = Symbol(v)
	}
	return out
}
