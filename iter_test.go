package chronofold

import "testing"

func TestIterSkipsTombstones(t *testing.T) {
	cf := New[uint8, rune](1)
	s := cf.Session(1)
	s.Extend([]rune("013"))
	s.InsertAfter(2, '2')

	var values []rune
	cf.Iter(func(v rune, _ LocalIndex) bool {
		values = append(values, v)
		return true
	})
	if got, want := string(values), "0123"; got != want {
		t.Errorf("Iter produced %q, want %q", got, want)
	}

	s.Remove(2)
	values = nil
	cf.Iter(func(v rune, _ LocalIndex) bool {
		values = append(values, v)
		return true
	})
	if got, want := string(values), "023"; got != want {
		t.Errorf("Iter after delete produced %q, want %q", got, want)
	}
}

func TestIterStopsEarly(t *testing.T) {
	cf := New[uint8, rune](1)
	cf.Session(1).Extend([]rune("abcdef"))

	var values []rune
	cf.Iter(func(v rune, _ LocalIndex) bool {
		values = append(values, v)
		return len(values) < 3
	})
	if got, want := string(values), "abc"; got != want {
		t.Errorf("Iter with early stop produced %q, want %q", got, want)
	}
}

func TestSubtreeStartsWithRoot(t *testing.T) {
	cf := New[uint8, rune](1)
	s := cf.Session(1)
	s.Extend([]rune("013"))
	s.InsertAfter(2, '2')

	sub := cf.subtree(2)
	if len(sub) == 0 || sub[0] != 2 {
		t.Fatalf("subtree(2) = %v, want to start with 2", sub)
	}
}

func TestIterOpsRoundTripsThroughApply(t *testing.T) {
	cf := New[uint8, rune](1)
	cf.Session(1).Extend([]rune("Hi!"))

	var ops []Op[uint8, rune]
	cf.IterOps(nil, nil, func(op Op[uint8, rune]) bool {
		ops = append(ops, op)
		return true
	})

	replica := New[uint8, rune](1)
	for _, op := range ops {
		if op.Payload.Kind == OpRoot {
			continue // replica already has its own Root at index 0
		}
		if err := replica.Apply(op); err != nil {
			t.Fatalf("Apply(%v) = %v, want nil", op, err)
		}
	}
	if got, want := String[uint8](replica), "Hi!"; got != want {
		t.Errorf("replica String() = %q, want %q", got, want)
	}
}

func TestIterNewerOpsFiltersSeenOps(t *testing.T) {
	cf := New[uint8, rune](1)
	cf.Session(1).Extend([]rune("ab"))
	seen := cf.Version().Clone()
	cf.Session(1).PushBack('c')

	var ops []Op[uint8, rune]
	cf.IterNewerOps(seen, func(op Op[uint8, rune]) bool {
		ops = append(ops, op)
		return true
	})
	if len(ops) != 1 || ops[0].Payload.Value != 'c' {
		t.Errorf("IterNewerOps = %v, want exactly the op inserting 'c'", ops)
	}
}
