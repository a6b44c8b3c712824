// Package chronofold implements the Chronofold conflict-free replicated
// data structure (CRDT) for versioned sequences, as published by Victor
// Grishchenko and Mikhail Patrakeev in "Chronofold: a data structure for
// versioned text" (arXiv:2002.09511).
//
// Each replica keeps a local, append-only log of changes plus four packed
// secondary streams (next-pointer, reference, author, index-shift) used to
// reconstruct both the causal (user-visible) order and the subjective log
// order. Replicas exchange Ops asynchronously; applying the same set of Ops,
// in any order consistent with their references, converges every replica to
// an identical visible sequence.
//
// # Editing
//
// A [Chronofold] can be edited in two ways: by applying remote [Op] values
// via [Chronofold.Apply], or through a [Session], which offers a Vec-like
// API (PushBack, InsertAfter, Remove, Splice, ...) for local edits.
//
// # Indexing
//
// Like a slice, values are addressed by [LocalIndex]. Indices are stable
// (never renumbered) but subjective: the same logical change may live at a
// different LocalIndex on each replica. [Chronofold.Get] returns the zero
// Change and false for an out-of-bounds index instead of panicking.
package chronofold
