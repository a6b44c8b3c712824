package chronofold

import "strings"

// Stringer constrains the element types Chronofold's free function String
// can render: each of rune, byte and string maps unambiguously onto text.
type Stringer interface {
	rune | byte | string
}

// String renders the causal concatenation of cf's non-deleted Insert values
// (spec §6 "Display: rendering a chronofold of characters yields the causal
// concatenation of non-deleted Inserts"). Go has no generic Stringer method
// on Chronofold[A, T] for arbitrary T, so this is a free function
// constrained to the element types that actually render as text.
func String[A Author, T Stringer](cf *Chronofold[A, T]) string {
	var b strings.Builder
	cf.Iter(func(value T, _ LocalIndex) bool {
		switch v := any(value).(type) {
		case rune:
			b.WriteRune(v)
		case byte:
			b.WriteByte(v)
		case string:
			b.WriteString(v)
		}
		return true
	})
	return b.String()
}
