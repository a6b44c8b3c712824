package chronofold

// findPredecessor locates the LocalIndex the new entry described by
// (id, reference, change) should be spliced after (spec §4.5).
//
// Deletes always reference their target directly — they take priority over
// any sibling tie-break. Roots never reference another entry. Everything
// else walks the causal order starting at reference, looking for the last
// direct child of reference (or Delete of reference) that either is itself
// a Delete or whose Timestamp sorts after id; ties are broken by placing the
// new entry at the end of that sibling's subtree, so concurrent inserts
// after the same reference converge on the same relative order everywhere.
func (cf *Chronofold[A, T]) findPredecessor(id Timestamp[A], reference *LocalIndex, change Change[T]) *LocalIndex {
	switch change.Kind {
	case ChangeDelete:
		return reference
	case ChangeRoot:
		return reference
	}

	ref := *reference
	var lastMatch *LocalIndex
	for _, idx := range cf.causalIndices(&ref, nil) {
		r, ok := cf.cs.getReference(idx)
		if !ok || r != ref {
			continue
		}
		ch, _ := cf.Get(idx)
		if ch.Kind == ChangeDelete {
			m := idx
			lastMatch = &m
			continue
		}
		ts, ok := cf.Timestamp(idx)
		if ok && id.Less(ts) {
			m := idx
			lastMatch = &m
		}
	}

	if lastMatch == nil {
		return reference
	}
	sub := cf.subtree(*lastMatch)
	last := sub[len(sub)-1]
	return &last
}

// applyChange splices a single new entry into the log and costructures,
// returning its new LocalIndex. It is the general-purpose path used by
// Apply for remote ops (spec §4.6 step 4).
func (cf *Chronofold[A, T]) applyChange(id Timestamp[A], reference *LocalIndex, change Change[T]) LocalIndex {
	predecessor := cf.findPredecessor(id, reference, change)
	newIndex := LocalIndex(len(cf.log))

	var nextIndex *LocalIndex
	if predecessor != nil {
		if v, ok := cf.cs.getNextIndex(*predecessor); ok {
			val := v
			nextIndex = &val
		}
		idx := newIndex
		cf.cs.setNextIndex(*predecessor, &idx)
	}

	cf.log = append(cf.log, change)
	cf.cs.setNextIndex(newIndex, nextIndex)
	cf.cs.setAuthor(newIndex, id.Author)
	cf.cs.setIndexShift(newIndex, indexShift(uint64(newIndex)-uint64(id.Index)))
	cf.cs.setReference(newIndex, reference)
	cf.version.Observe(id)

	return newIndex
}

// applyLocalChanges appends a batch of changes authored locally and
// consecutively by author, starting after reference. Because local changes
// need no sibling tie-break (their Timestamp equals (log index, author), the
// highest possible for that author so far) and are appended in order, this
// is a fast path over applyChange: only the first and last entries need
// explicit NextIndex writes, and only the first needs an explicit Reference
// (spec §4.6 "Local fast path"). It returns the LocalIndex of the last
// appended entry, or false if changes was empty.
func (cf *Chronofold[A, T]) applyLocalChanges(author A, reference LocalIndex, changes []Change[T]) (LocalIndex, bool) {
	predecessor := reference
	if last, ok := cf.findLastDelete(reference); ok {
		predecessor = last
	}

	var lastID *Timestamp[A]
	var lastNextIndex *LocalIndex
	haveLastNextIndex := false

	remaining := changes
	if len(remaining) > 0 {
		first := remaining[0]
		remaining = remaining[1:]

		newIndex := LocalIndex(len(cf.log))
		id := NewTimestamp[A](AuthorIndex(newIndex), author)
		lastID = &id

		if v, ok := cf.cs.getNextIndex(predecessor); ok {
			val := v
			lastNextIndex = &val
		}
		haveLastNextIndex = true
		idx := newIndex
		cf.cs.setNextIndex(predecessor, &idx)

		cf.log = append(cf.log, first)
		cf.cs.setAuthor(newIndex, author)
		cf.cs.setIndexShift(newIndex, 0)
		ref := predecessor
		cf.cs.setReference(newIndex, &ref)

		predecessor = newIndex
	}

	for _, change := range remaining {
		newIndex := LocalIndex(uint64(predecessor) + 1)
		id := NewTimestamp[A](AuthorIndex(newIndex), author)
		lastID = &id

		cf.log = append(cf.log, change)

		predecessor = newIndex
	}

	if lastID != nil && haveLastNextIndex {
		cf.cs.setNextIndex(LocalIndex(lastID.Index), lastNextIndex)
		cf.version.Observe(*lastID)
		for _, change := range changes {
			switch change.Kind {
			case ChangeInsert:
				cf.stats.RecordInsert(author)
			case ChangeDelete:
				cf.stats.RecordDelete(author)
			}
		}
		return LocalIndex(lastID.Index), true
	}
	return 0, false
}

// findLastDelete returns the last Delete in causal order (after reference,
// not counting reference itself) whose Reference is reference, if any. A
// local session's next append after reference must splice after this
// tombstone rather than after reference itself, since deletes always take
// priority in findPredecessor.
func (cf *Chronofold[A, T]) findLastDelete(reference LocalIndex) (LocalIndex, bool) {
	indices := cf.causalIndices(&reference, nil)
	if len(indices) > 0 {
		indices = indices[1:]
	}
	var last LocalIndex
	found := false
	for _, idx := range indices {
		ch, ok := cf.Get(idx)
		if !ok || ch.Kind != ChangeDelete {
			continue
		}
		r, ok := cf.cs.getReference(idx)
		if ok && r == reference {
			last = idx
			found = true
		}
	}
	return last, found
}
