package chronofold

// Session is a Vec-like editing facade tied to one author. Session holds
// conceptually exclusive access to its chronofold for its lifetime — spec §5
// describes this as the only mutation path callers are expected to use
// alongside Apply.
type Session[A Author, T any] struct {
	chronofold *Chronofold[A, T]
	author     A
	firstIndex LocalIndex
}

func newSession[A Author, T any](author A, cf *Chronofold[A, T]) *Session[A, T] {
	return &Session[A, T]{
		chronofold: cf,
		author:     author,
		firstIndex: LocalIndex(len(cf.log)),
	}
}

// Chronofold returns the chronofold this session edits.
func (s *Session[A, T]) Chronofold() *Chronofold[A, T] {
	return s.chronofold
}

// PushBack appends value after the last visible element (or the root, if
// the chronofold is empty) and returns its new LocalIndex.
func (s *Session[A, T]) PushBack(value T) LocalIndex {
	index := s.chronofold.root
	s.chronofold.Iter(func(_ T, idx LocalIndex) bool {
		index = idx
		return true
	})
	return s.InsertAfter(index, value)
}

// PushFront prepends value and returns its new LocalIndex.
func (s *Session[A, T]) PushFront(value T) LocalIndex {
	return s.InsertAfter(s.chronofold.root, value)
}

// InsertAfter inserts value after the entry at index and returns the new
// entry's LocalIndex.
func (s *Session[A, T]) InsertAfter(index LocalIndex, value T) LocalIndex {
	return s.applyOne(index, InsertChange(value))
}

// Remove tombstones the entry at index. The log entry itself is never
// removed, only marked deleted.
func (s *Session[A, T]) Remove(index LocalIndex) {
	s.applyOne(index, DeleteChange[T]())
}

// Extend appends every value in values to the back, returning the LocalIndex
// of the last inserted element, if any.
func (s *Session[A, T]) Extend(values []T) (LocalIndex, bool) {
	oob := LocalIndex(len(s.chronofold.log))
	return s.Splice(&oob, &oob, values)
}

// Splice removes the visible elements in the causal range [fromIncl, toExcl)
// and replaces them with values, returning the LocalIndex of the last
// inserted element, if any. A nil fromIncl means "from the root"; a nil
// toExcl means "through the end of the sequence". Removal happens before
// insertion: the new values are spliced in after whatever entry causally
// preceded fromIncl, exactly where the removed range used to start.
func (s *Session[A, T]) Splice(fromIncl, toExcl *LocalIndex, values []T) (LocalIndex, bool) {
	lastIdx := s.chronofold.root
	if fromIncl != nil {
		if idx, ok := s.chronofold.indexBefore(*fromIncl); ok {
			lastIdx = idx
		}
	}

	var toRemove []LocalIndex
	s.chronofold.IterRange(fromIncl, toExcl, func(_ T, idx LocalIndex) bool {
		toRemove = append(toRemove, idx)
		return true
	})
	for _, idx := range toRemove {
		s.Remove(idx)
	}

	changes := make([]Change[T], len(values))
	for i, v := range values {
		changes[i] = InsertChange(v)
	}
	return s.chronofold.applyLocalChanges(s.author, lastIdx, changes)
}

// Clear removes every visible element from the chronofold.
func (s *Session[A, T]) Clear() {
	var indices []LocalIndex
	s.chronofold.Iter(func(_ T, idx LocalIndex) bool {
		indices = append(indices, idx)
		return true
	})
	for _, idx := range indices {
		s.Remove(idx)
	}
}

// CreateRoot appends a new, disjoint Root entry and returns its LocalIndex.
// Anything later inserted after this root renders, in this replica's causal
// order, after every entry that existed at the time the root was created —
// cross-root rendering follows log order (see the design notes on the
// ambiguity this resolves).
func (s *Session[A, T]) CreateRoot() LocalIndex {
	newIndex := AuthorIndex(len(s.chronofold.log))
	return s.chronofold.applyChange(NewTimestamp(newIndex, s.author), nil, RootChange[T]())
}

// IterOps calls yield, in log order, for every Op created by this session's
// author since the session began.
func (s *Session[A, T]) IterOps(yield func(Op[A, T]) bool) {
	first := s.firstIndex
	s.chronofold.IterOps(&first, nil, func(op Op[A, T]) bool {
		if op.ID.Author != s.author {
			return true
		}
		return yield(op)
	})
}

func (s *Session[A, T]) applyOne(reference LocalIndex, change Change[T]) LocalIndex {
	idx, _ := s.chronofold.applyLocalChanges(s.author, reference, []Change[T]{change})
	return idx
}
