package chronofold

// indexAfter returns the next LocalIndex in causal order after index, or
// false if index is the last one in its chain or out of bounds.
func (cf *Chronofold[A, T]) indexAfter(index LocalIndex) (LocalIndex, bool) {
	return cf.cs.getNextIndex(index)
}

// indexBefore returns the previous LocalIndex in causal order before index.
// Root entries have no predecessor and return themselves, matching the
// convention that a Root starts its own causal chain.
func (cf *Chronofold[A, T]) indexBefore(index LocalIndex) (LocalIndex, bool) {
	if ch, ok := cf.Get(index); ok && ch.Kind == ChangeRoot {
		return index, true
	}
	reference, ok := cf.cs.getReference(index)
	if !ok {
		return 0, false
	}
	indices := cf.causalIndices(&reference, &index)
	if len(indices) == 0 {
		return 0, false
	}
	return indices[len(indices)-1], true
}

// causalIndices walks the causal order (the NextIndex-chain derived linked
// list), starting at *startIncl (or right after cf.root if startIncl is
// nil), up to but not including *endExcl (or to the end of the chain if
// endExcl is nil). If the computed starting point is itself a Root entry, it
// is skipped (a second root created by Session.CreateRoot is otherwise
// invisible scaffolding, not a renderable entry).
func (cf *Chronofold[A, T]) causalIndices(startIncl *LocalIndex, endExcl *LocalIndex) []LocalIndex {
	var current *LocalIndex
	if startIncl == nil {
		if idx, ok := cf.indexAfter(cf.root); ok {
			i := idx
			current = &i
		}
	} else {
		i := *startIncl
		current = &i
	}

	if current != nil {
		if ch, ok := cf.Get(*current); ok && ch.Kind == ChangeRoot {
			if idx, ok := cf.indexAfter(*current); ok {
				i := idx
				current = &i
			} else {
				current = nil
			}
		}
	}

	var out []LocalIndex
	for current != nil {
		if endExcl != nil && *current == *endExcl {
			break
		}
		out = append(out, *current)
		if idx, ok := cf.indexAfter(*current); ok {
			i := idx
			current = &i
		} else {
			current = nil
		}
	}
	return out
}

// subtree returns root followed by every entry causally descending from it
// (its children and their subtrees, in causal order). It walks the causal
// order from root to the end of its chain and keeps each entry whose
// Reference is already in the subtree.
func (cf *Chronofold[A, T]) subtree(root LocalIndex) []LocalIndex {
	indices := cf.causalIndices(&root, nil)
	inSubtree := map[LocalIndex]bool{root: true}
	out := make([]LocalIndex, 0, len(indices))
	for _, idx := range indices {
		if idx == root {
			out = append(out, idx)
			continue
		}
		reference, ok := cf.cs.getReference(idx)
		if ok && inSubtree[reference] {
			inSubtree[idx] = true
			out = append(out, idx)
		}
	}
	return out
}

// deletedIndices returns the set of LocalIndex entries tombstoned by some
// Delete change anywhere in the log.
func (cf *Chronofold[A, T]) deletedIndices() map[LocalIndex]bool {
	deleted := make(map[LocalIndex]bool)
	for i, ch := range cf.log {
		if ch.Kind != ChangeDelete {
			continue
		}
		idx := LocalIndex(i)
		if ref, ok := cf.cs.getReference(idx); ok {
			deleted[ref] = true
		}
	}
	return deleted
}

// Iter calls yield for every visible (not deleted) element in causal order,
// along with its LocalIndex. Iteration stops early if yield returns false.
func (cf *Chronofold[A, T]) Iter(yield func(value T, index LocalIndex) bool) {
	cf.IterRange(nil, nil, yield)
}

// IterRange is like Iter, but restricted to the causal range [fromIncl,
// toExcl). A nil bound is open on that side.
//
// When both bounds are nil (a whole-document iteration), entries under any
// additional root created by Session.CreateRoot are included too: a second
// root starts its own disjoint causal chain, so it can't be reached by
// walking NextIndex from the primary root. Such chains are appended in log
// order of their Root entry (the resolution to the cross-root rendering
// order design note).
func (cf *Chronofold[A, T]) IterRange(fromIncl, toExcl *LocalIndex, yield func(value T, index LocalIndex) bool) {
	deleted := cf.deletedIndices()
	visit := func(idx LocalIndex) bool {
		ch, _ := cf.Get(idx)
		if ch.Kind != ChangeInsert || deleted[idx] {
			return true
		}
		return yield(ch.Value, idx)
	}

	for _, idx := range cf.causalIndices(fromIncl, toExcl) {
		if !visit(idx) {
			return
		}
	}

	if fromIncl == nil && toExcl == nil {
		for _, rootIdx := range cf.rootChainStarts() {
			if rootIdx == cf.root {
				continue
			}
			for _, idx := range cf.causalIndices(&rootIdx, nil) {
				if !visit(idx) {
					return
				}
			}
		}
	}
}

// rootChainStarts returns the LocalIndex of every Root entry in log order.
func (cf *Chronofold[A, T]) rootChainStarts() []LocalIndex {
	var roots []LocalIndex
	for i, ch := range cf.log {
		if ch.Kind == ChangeRoot {
			roots = append(roots, LocalIndex(i))
		}
	}
	return roots
}

// IterChanges calls yield for every Change in log order (including Root and
// tombstoned entries), along with its LocalIndex.
func (cf *Chronofold[A, T]) IterChanges(yield func(change Change[T], index LocalIndex) bool) {
	for i, ch := range cf.log {
		if !yield(ch, LocalIndex(i)) {
			return
		}
	}
}

// IterOps reconstructs and yields the Op for every log entry whose
// LocalIndex lies in [fromIncl, toExcl), in log order. A nil bound is open on
// that side.
func (cf *Chronofold[A, T]) IterOps(fromIncl, toExcl *LocalIndex, yield func(Op[A, T]) bool) {
	start := uint64(0)
	if fromIncl != nil {
		start = uint64(*fromIncl)
	}
	end := uint64(len(cf.log))
	if toExcl != nil {
		end = uint64(*toExcl)
	}
	for i := start; i < end; i++ {
		idx := LocalIndex(i)
		op, ok := cf.opAt(idx)
		if !ok {
			continue
		}
		if !yield(op) {
			return
		}
	}
}

// IterNewerOps calls yield, in log order, for every Op whose id exceeds
// version's per-author high-water mark — the ops a peer at version hasn't
// seen yet.
func (cf *Chronofold[A, T]) IterNewerOps(version *Version[A], yield func(Op[A, T]) bool) {
	cf.IterOps(nil, nil, func(op Op[A, T]) bool {
		if version.Has(op.ID) {
			return true
		}
		return yield(op)
	})
}

func (cf *Chronofold[A, T]) opAt(idx LocalIndex) (Op[A, T], bool) {
	id, ok := cf.Timestamp(idx)
	if !ok {
		var zero Op[A, T]
		return zero, false
	}
	var reference *Timestamp[A]
	if ref, ok := cf.cs.getReference(idx); ok {
		ts, ok := cf.Timestamp(ref)
		if ok {
			reference = &ts
		}
	}
	ch, _ := cf.Get(idx)
	switch ch.Kind {
	case ChangeRoot:
		return Op[A, T]{ID: id, Payload: OpPayload[A, T]{Kind: OpRoot}}, true
	case ChangeInsert:
		return Op[A, T]{ID: id, Payload: OpPayload[A, T]{Kind: OpInsert, Reference: reference, Value: ch.Value}}, true
	case ChangeDelete:
		return Op[A, T]{ID: id, Payload: OpPayload[A, T]{Kind: OpDelete, Reference: reference}}, true
	}
	var zero Op[A, T]
	return zero, false
}
