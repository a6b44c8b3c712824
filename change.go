package chronofold

import "fmt"

// ChangeKind discriminates a Change's variant.
type ChangeKind uint8

const (
	// ChangeRoot marks the start of a (possibly disjoint) causal
	// subsequence. Permitted only at LocalIndex 0 on a fresh replica, or as
	// an explicit additional root created by Session.CreateRoot.
	ChangeRoot ChangeKind = iota
	// ChangeInsert carries a value of type T into the sequence.
	ChangeInsert
	// ChangeDelete tombstones the entry its Reference points at. The
	// tombstoned entry itself is never removed from the log.
	ChangeDelete
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeRoot:
		return "Root"
	case ChangeInsert:
		return "Insert"
	case ChangeDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Change is the payload stored at one log entry: Root, Insert(value), or
// Delete. It is a tagged union rather than a Go interface so a Chronofold's
// log can be a plain slice of Change[T] with no per-entry heap allocation
// for the tag.
type Change[T any] struct {
	Kind  ChangeKind
	Value T // meaningful only when Kind == ChangeInsert
}

// RootChange constructs a Change with the Root variant.
func RootChange[T any]() Change[T] {
	return Change[T]{Kind: ChangeRoot}
}

// InsertChange constructs a Change carrying value.
func InsertChange[T any](value T) Change[T] {
	return Change[T]{Kind: ChangeInsert, Value: value}
}

// DeleteChange constructs a Change with the Delete variant.
func DeleteChange[T any]() Change[T] {
	return Change[T]{Kind: ChangeDelete}
}

func (c Change[T]) String() string {
	switch c.Kind {
	case ChangeInsert:
		return fmt.Sprintf("Insert(%v)", c.Value)
	default:
		return c.Kind.String()
	}
}
