package chronofold

import "testing"

func TestApplyLocalChangesBatchAppendsInOrder(t *testing.T) {
	cf := New[uint8, rune](1)
	last, ok := cf.applyLocalChanges(1, cf.root, []Change[rune]{
		InsertChange('a'), InsertChange('b'), InsertChange('c'),
	})
	if !ok {
		t.Fatal("applyLocalChanges returned ok=false for a non-empty batch")
	}
	if got, want := last, LocalIndex(3); got != want {
		t.Errorf("last index = %d, want %d", got, want)
	}
	if got, want := String[uint8](cf), "abc"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestApplyLocalChangesEmptyBatchIsNoop(t *testing.T) {
	cf := New[uint8, rune](1)
	_, ok := cf.applyLocalChanges(1, cf.root, nil)
	if ok {
		t.Errorf("applyLocalChanges with no changes returned ok=true, want false")
	}
	if got, want := len(cf.log), 1; got != want {
		t.Errorf("log length = %d, want %d (an empty batch must append nothing)", got, want)
	}
}

func TestFindLastDeleteSplicesAfterTombstone(t *testing.T) {
	cf := New[uint8, rune](1)
	s := cf.Session(1)
	s.Extend([]rune("ab"))
	s.Remove(1) // tombstone 'a'
	s.InsertAfter(1, 'x')

	// 'x' must render after the tombstone of 'a', not before it, since local
	// appends splice after the last delete of their reference.
	if got, want := String[uint8](cf), "xb"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
