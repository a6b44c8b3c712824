package chronofold

// Stats is a supplemented diagnostic feature: per-author counts of inserts
// and deletes applied to a Chronofold. It is adapted from the teacher's
// PNCounter (pn_counter.go), which tracks a net value as the difference of
// two GCounters; here the two underlying counters (inserts, deletes) are
// kept and reported separately rather than netted, since "how much churn
// did author X cause" is more useful than a net count for this domain.
type Stats[A Author] struct {
	inserts *Version[A]
	deletes *Version[A]
}

// NewStats returns a zeroed Stats.
func NewStats[A Author]() *Stats[A] {
	return &Stats[A]{inserts: NewVersion[A](), deletes: NewVersion[A]()}
}

// RecordInsert increments the insert count for author.
func (s *Stats[A]) RecordInsert(author A) {
	s.inserts.slots[author]++
}

// RecordDelete increments the delete count for author.
func (s *Stats[A]) RecordDelete(author A) {
	s.deletes.slots[author]++
}

// Inserts returns the number of inserts attributed to author.
func (s *Stats[A]) Inserts(author A) AuthorIndex {
	return s.inserts.Get(author)
}

// Deletes returns the number of deletes attributed to author.
func (s *Stats[A]) Deletes(author A) AuthorIndex {
	return s.deletes.Get(author)
}

// Net returns Inserts(author) - Deletes(author), mirroring PNCounter.Value.
func (s *Stats[A]) Net(author A) int64 {
	return int64(s.inserts.Get(author)) - int64(s.deletes.Get(author))
}

// Merge folds other into s in place, taking the per-author max of each
// underlying counter — matching PNCounter.Merge's pointwise-max-of-both-legs
// semantics.
func (s *Stats[A]) Merge(other *Stats[A]) {
	s.inserts.Merge(other.inserts)
	s.deletes.Merge(other.deletes)
}

// Clone returns a deep copy of s.
func (s *Stats[A]) Clone() *Stats[A] {
	return &Stats[A]{inserts: s.inserts.Clone(), deletes: s.deletes.Clone()}
}
