package chronofold

import "strconv"

// LocalIndex is a position in this replica's append-only log. Indices are
// stable but subjective: the same logical entry may sit at a different
// LocalIndex on another replica.
type LocalIndex uint64

// AuthorIndex is a monotonic counter local to one author. Together with an
// Author it forms a Timestamp.
type AuthorIndex uint64

func (i LocalIndex) String() string  { return strconv.FormatUint(uint64(i), 10) }
func (i AuthorIndex) String() string { return strconv.FormatUint(uint64(i), 10) }

// indexShift is LocalIndex minus AuthorIndex for a given entry: how far the
// entry's position in this replica's log has drifted from the position it
// would have had if this replica were the entry author's only source of
// interleaved edits. It is range encoded in the packed costructures: constant
// over a monotonic run of appends from the same author.
type indexShift uint64

func (idx LocalIndex) minusShift(s indexShift) AuthorIndex {
	return AuthorIndex(uint64(idx) - uint64(s))
}

func (idx LocalIndex) plusShift(s indexShift) LocalIndex {
	return LocalIndex(uint64(idx) + uint64(s))
}
