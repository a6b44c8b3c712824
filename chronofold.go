package chronofold

import "go.uber.org/zap"

// Chronofold is a conflict-free replicated data structure for versioned
// sequences (Grishchenko & Patrakeev, "Chronofold: a data structure for
// versioned text", arXiv:2002.09511).
//
// A chronofold can be viewed either as a log of Changes or as a sequence of
// visible elements. A *LocalIndex* is a 0-based, stable-but-subjective
// position in the log of changes. An *element* is a not-yet-deleted Insert
// value. *Log order* is the order changes were appended on this replica;
// *causal order* is the order of the derived linked list and is the same on
// every replica that has applied the same ops.
//
// Chronofold is a single-owner data structure, mirroring the teacher's
// plain-struct-plus-methods shape rather than its mutex-guarded one: a
// Session holds exclusive access for its lifetime, and callers provide their
// own synchronization across goroutines (spec §5). There is no internal
// locking.
type Chronofold[A Author, T any] struct {
	log  []Change[T]
	root LocalIndex

	version *Version[A]
	stats   *Stats[A]
	cs      *costructures[A]

	logger *zap.Logger
}

// Option configures a Chronofold at construction time.
type Option[A Author, T any] func(*Chronofold[A, T])

// WithLogger attaches a structured logger. A nil logger (the default) is
// equivalent to zap.NewNop(): Apply never logs.
func WithLogger[A Author, T any](logger *zap.Logger) Option[A, T] {
	return func(cf *Chronofold[A, T]) {
		if logger != nil {
			cf.logger = logger
		}
	}
}

// New constructs an empty chronofold with a Root entry at LocalIndex 0 and
// the version advanced to (0, author).
func New[A Author, T any](author A, opts ...Option[A, T]) *Chronofold[A, T] {
	cf := &Chronofold[A, T]{
		log:     []Change[T]{RootChange[T]()},
		root:    0,
		version: NewVersion[A](),
		stats:   NewStats[A](),
		cs:      newCostructures[A](),
		logger:  zap.NewNop(),
	}
	cf.cs.setNextIndex(0, nil)
	cf.cs.setAuthor(0, author)
	cf.cs.setIndexShift(0, 0)
	cf.cs.setReference(0, nil)
	cf.version.Observe(NewTimestamp[A](0, author))

	for _, opt := range opts {
		opt(cf)
	}
	return cf
}

// IsEmpty reports whether the chronofold contains no visible elements.
func (cf *Chronofold[A, T]) IsEmpty() bool {
	return cf.Len() == 0
}

// Len returns the number of visible (not deleted) elements.
func (cf *Chronofold[A, T]) Len() int {
	n := 0
	cf.Iter(func(T, LocalIndex) bool {
		n++
		return true
	})
	return n
}

// Get returns the Change stored at index, and whether index is in bounds.
func (cf *Chronofold[A, T]) Get(index LocalIndex) (Change[T], bool) {
	if uint64(index) >= uint64(len(cf.log)) {
		var zero Change[T]
		return zero, false
	}
	return cf.log[index], true
}

// Version returns the chronofold's current vector clock.
func (cf *Chronofold[A, T]) Version() *Version[A] {
	return cf.version
}

// Stats returns the chronofold's per-author insert/delete counters.
func (cf *Chronofold[A, T]) Stats() *Stats[A] {
	return cf.stats
}

// Root returns the LocalIndex of the chronofold's original root entry.
func (cf *Chronofold[A, T]) Root() LocalIndex {
	return cf.root
}

// LogIndex translates a Timestamp into this replica's LocalIndex for the
// same entry, or false if the entry hasn't been applied here.
func (cf *Chronofold[A, T]) LogIndex(ts Timestamp[A]) (LocalIndex, bool) {
	for i := uint64(ts.Index); i < uint64(len(cf.log)); i++ {
		idx := LocalIndex(i)
		if got, ok := cf.Timestamp(idx); ok && got == ts {
			return idx, true
		}
	}
	return 0, false
}

// Timestamp translates a LocalIndex into the globally unique Timestamp of
// the entry at that index, or false if index is out of bounds.
func (cf *Chronofold[A, T]) Timestamp(index LocalIndex) (Timestamp[A], bool) {
	if uint64(index) >= uint64(len(cf.log)) {
		return Timestamp[A]{}, false
	}
	shift, ok := cf.cs.getIndexShift(index)
	if !ok {
		return Timestamp[A]{}, false
	}
	author, ok := cf.cs.getAuthor(index)
	if !ok {
		return Timestamp[A]{}, false
	}
	return NewTimestamp(index.minusShift(shift), author), true
}

// Session creates an editing session for one author, holding conceptually
// exclusive access to cf for its lifetime.
func (cf *Chronofold[A, T]) Session(author A) *Session[A, T] {
	return newSession(author, cf)
}

// Apply applies a remote Op to the chronofold. It either appends exactly one
// log entry and advances the version, or returns an error leaving the
// chronofold unchanged (spec §4.6 failure semantics).
func (cf *Chronofold[A, T]) Apply(op Op[A, T]) error {
	if _, ok := cf.LogIndex(op.ID); ok {
		cf.logger.Warn("apply rejected: existing timestamp", zap.Stringer("id", op.ID))
		return ExistingTimestampError[A, T]{Op: op}
	}
	if uint64(op.ID.Index) > uint64(len(cf.log)) {
		cf.logger.Warn("apply rejected: future timestamp", zap.Stringer("id", op.ID))
		return FutureTimestampError[A, T]{Op: op}
	}

	var reference *LocalIndex
	var change Change[T]

	switch op.Payload.Kind {
	case OpRoot:
		change = RootChange[T]()
	case OpInsert:
		if op.Payload.Reference != nil {
			idx, ok := cf.LogIndex(*op.Payload.Reference)
			if !ok {
				cf.logger.Warn("apply rejected: unknown reference",
					zap.Stringer("id", op.ID), zap.Stringer("reference", *op.Payload.Reference))
				return UnknownReferenceError[A, T]{Op: op, Reference: *op.Payload.Reference}
			}
			reference = &idx
		}
		change = InsertChange(op.Payload.Value)
	case OpDelete:
		// Delete always carries a reference (distributed.go's Delete
		// constructor never sets it to nil).
		idx, ok := cf.LogIndex(*op.Payload.Reference)
		if !ok {
			cf.logger.Warn("apply rejected: unknown reference",
				zap.Stringer("id", op.ID), zap.Stringer("reference", *op.Payload.Reference))
			return UnknownReferenceError[A, T]{Op: op, Reference: *op.Payload.Reference}
		}
		reference = &idx
		change = DeleteChange[T]()
	}

	newIndex := cf.applyChange(op.ID, reference, change)
	switch change.Kind {
	case ChangeInsert:
		cf.stats.RecordInsert(op.ID.Author)
	case ChangeDelete:
		cf.stats.RecordDelete(op.ID.Author)
	}
	cf.logger.Debug("applied op", zap.Stringer("id", op.ID), zap.Uint64("index", uint64(newIndex)))
	return nil
}

// Clone returns a deep copy of the chronofold.
func (cf *Chronofold[A, T]) Clone() *Chronofold[A, T] {
	logCopy := make([]Change[T], len(cf.log))
	copy(logCopy, cf.log)

	csCopy := &costructures[A]{
		nextIndex:      cloneOffsetMap(cf.cs.nextIndex),
		reference:      cloneOffsetMap(cf.cs.reference),
		authorRuns:     append([]authorRun[A]{}, cf.cs.authorRuns...),
		indexShiftRuns: append([]shiftRun{}, cf.cs.indexShiftRuns...),
	}

	return &Chronofold[A, T]{
		log:     logCopy,
		root:    cf.root,
		version: cf.version.Clone(),
		stats:   cf.stats.Clone(),
		cs:      csCopy,
		logger:  cf.logger,
	}
}

// Equal reports whether cf and other hold byte-identical state: same log,
// same root, same version and the same packed costructures. Two chronofolds
// built from the same ops applied in the same order compare equal.
func (cf *Chronofold[A, T]) Equal(other *Chronofold[A, T], valueEqual func(a, b T) bool) bool {
	if cf.root != other.root || len(cf.log) != len(other.log) {
		return false
	}
	for i, c := range cf.log {
		o := other.log[i]
		if c.Kind != o.Kind {
			return false
		}
		if c.Kind == ChangeInsert && !valueEqual(c.Value, o.Value) {
			return false
		}
	}
	return cf.version.equal(other.version) && cf.cs.equal(other.cs)
}

func cloneOffsetMap(m *offsetMap) *offsetMap {
	cp := newOffsetMap(m.defaultOffset)
	for k, v := range m.entries {
		if v == nil {
			cp.entries[k] = nil
			continue
		}
		val := *v
		cp.entries[k] = &val
	}
	return cp
}
