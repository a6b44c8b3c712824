package chronofold

import "fmt"

// ExistingTimestampError is returned by Apply when an Op with the same id
// has already been applied to this chronofold.
type ExistingTimestampError[A Author, T any] struct {
	Op Op[A, T]
}

func (e ExistingTimestampError[A, T]) Error() string {
	return fmt.Sprintf("existing timestamp %s", e.Op.ID)
}

// FutureTimestampError is returned by Apply when an Op's id carries an
// AuthorIndex greater than this replica's current log length. An entry's
// AuthorIndex never exceeds its LocalIndex, so no valid LogIndex exists for
// such an id (spec §7).
type FutureTimestampError[A Author, T any] struct {
	Op Op[A, T]
}

func (e FutureTimestampError[A, T]) Error() string {
	return fmt.Sprintf("future timestamp %s", e.Op.ID)
}

// UnknownReferenceError is returned by Apply when an Insert or Delete Op
// references a Timestamp this replica has never seen.
type UnknownReferenceError[A Author, T any] struct {
	Op        Op[A, T]
	Reference Timestamp[A]
}

func (e UnknownReferenceError[A, T]) Error() string {
	return fmt.Sprintf("unknown reference %s", e.Reference)
}
