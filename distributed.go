package chronofold

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Author identifies a replica/user. It is the basis of the Timestamp
// tie-break (spec §3): two authors compare by the unsigned integer they
// convert to and from. constraints.Unsigned already implies comparable, so
// any Go unsigned integer type satisfies Author directly; types that need a
// richer identity (e.g. a string username mapped to a small integer) can
// wrap one of these and forward authorAsUint64.
type Author interface {
	constraints.Unsigned
}

func authorAsUint64[A Author](a A) uint64 { return uint64(a) }

func authorLess[A Author](a, b A) bool { return authorAsUint64(a) < authorAsUint64(b) }

// Timestamp is the globally unique id of an Op: the pair (AuthorIndex,
// Author). Its lexicographic order is an arbitrary total order consistent
// with the causal order (spec §3): a causally earlier op always compares
// smaller, but concurrent ops may compare either way.
type Timestamp[A Author] struct {
	Index  AuthorIndex
	Author A
}

// NewTimestamp constructs a Timestamp.
func NewTimestamp[A Author](idx AuthorIndex, author A) Timestamp[A] {
	return Timestamp[A]{Index: idx, Author: author}
}

// Less reports whether ts sorts strictly before other under the lexicographic
// (AuthorIndex, Author) order used for sibling tie-breaking.
func (ts Timestamp[A]) Less(other Timestamp[A]) bool {
	if ts.Index != other.Index {
		return ts.Index < other.Index
	}
	return authorLess(ts.Author, other.Author)
}

func (ts Timestamp[A]) String() string {
	return fmt.Sprintf("<%s, %v>", ts.Index, ts.Author)
}

// Op is the unit of change exchanged between replicas. Ops are independent
// of any replica's subjective log order; different authors exchange Ops to
// keep their local chronofolds synchronized (spec §6).
type Op[A Author, T any] struct {
	ID      Timestamp[A]
	Payload OpPayload[A, T]
}

// Root constructs an Op that introduces a new root entry.
func Root[A Author, T any](id Timestamp[A]) Op[A, T] {
	return Op[A, T]{ID: id, Payload: OpPayload[A, T]{Kind: OpRoot}}
}

// Insert constructs an Op that inserts value after reference. An Insert with
// a nil reference is ill-formed: Apply dereferences it and panics.
func Insert[A Author, T any](id Timestamp[A], reference *Timestamp[A], value T) Op[A, T] {
	return Op[A, T]{ID: id, Payload: OpPayload[A, T]{Kind: OpInsert, Reference: reference, Value: value}}
}

// Delete constructs an Op that tombstones the entry named by reference.
func Delete[A Author, T any](id Timestamp[A], reference Timestamp[A]) Op[A, T] {
	return Op[A, T]{ID: id, Payload: OpPayload[A, T]{Kind: OpDelete, Reference: &reference}}
}

// OpKind discriminates an OpPayload's variant.
type OpKind uint8

const (
	OpRoot OpKind = iota
	OpInsert
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpRoot:
		return "Root"
	case OpInsert:
		return "Insert"
	case OpDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// OpPayload is the payload of an Op. Ops don't carry Change[T] directly,
// since a Change may refer to another entry by LocalIndex, which is only
// meaningful within one replica's log; an OpPayload refers to other entries
// by Timestamp instead (spec §6).
type OpPayload[A Author, T any] struct {
	Kind      OpKind
	Reference *Timestamp[A] // nil for Root and (never) for Insert-without-reference
	Value     T              // meaningful only when Kind == OpInsert
}

// Note on wire/local value translation: the original Rust crate keeps
// IntoLocalValue/FromLocalValue traits so an Op's payload type can differ
// from a Chronofold's stored element type (e.g. to let iterators emit
// borrowed &T instead of owned T). Go has no borrow distinction, so Op[A, T]
// uses the Chronofold's own element type T directly — the translation layer
// collapses to the identity and is not worth the extra type parameter.
