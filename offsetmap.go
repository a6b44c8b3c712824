package chronofold

// offsetMap is a sparse map from LocalIndex to LocalIndex with a
// caller-supplied default offset, so that get(k) == k+defaultOffset whenever
// k has never been written. Values equal to the default are never stored —
// this compaction is required for two offsetMaps built from the same
// sequence of writes to compare equal, which in turn is required for two
// Chronofolds holding the same visible sequence (built from the same ops in
// the same order) to compare structurally equal.
//
// Two defaults are used throughout the package: +1 for the NextIndex stream
// (consecutive inserts by the same author need no entry, since the next
// entry's LocalIndex is always one more) and -1 for the Reference stream (an
// insert's reference defaults to the entry directly preceding it in log
// order).
type offsetMap struct {
	defaultOffset int64
	// entries holds the explicit offset for a key, or nil for an explicit
	// "no successor/reference" (None).
	entries map[LocalIndex]*int64
}

func newOffsetMap(defaultOffset int64) *offsetMap {
	return &offsetMap{
		defaultOffset: defaultOffset,
		entries:       make(map[LocalIndex]*int64),
	}
}

// get returns the mapped LocalIndex for k, and whether one exists at all
// (false means an explicit None was stored at k).
func (m *offsetMap) get(k LocalIndex) (LocalIndex, bool) {
	stored, ok := m.entries[k]
	if !ok {
		return LocalIndex(int64(k) + m.defaultOffset), true
	}
	if stored == nil {
		return 0, false
	}
	return LocalIndex(int64(k) + *stored), true
}

// set stores the mapping k -> v. A nil v records an explicit None.
func (m *offsetMap) set(k LocalIndex, v *LocalIndex) {
	if v == nil {
		m.entries[k] = nil
		return
	}
	if int64(k)+m.defaultOffset == int64(*v) {
		delete(m.entries, k)
		return
	}
	off := int64(*v) - int64(k)
	m.entries[k] = &off
}

func (m *offsetMap) equal(other *offsetMap) bool {
	if len(m.entries) != len(other.entries) {
		return false
	}
	for k, v := range m.entries {
		ov, ok := other.entries[k]
		if !ok {
			return false
		}
		if (v == nil) != (ov == nil) {
			return false
		}
		if v != nil && *v != *ov {
			return false
		}
	}
	return true
}
