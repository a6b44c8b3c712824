package chronofold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHasRootAndVersion(t *testing.T) {
	cf := New[uint8, rune](1)
	if got, want := cf.Len(), 0; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	if !cf.IsEmpty() {
		t.Errorf("IsEmpty() = false, want true")
	}
	if got, want := cf.Version().Get(1), AuthorIndex(0); got != want {
		t.Errorf("Version().Get(1) = %d, want %d", got, want)
	}
	change, ok := cf.Get(0)
	if !ok || change.Kind != ChangeRoot {
		t.Errorf("Get(0) = (%v, %v), want (Root, true)", change, ok)
	}
}

func TestSessionExtendAndString(t *testing.T) {
	cf := New[uint8, rune](1)
	cf.Session(1).Extend([]rune("Hello!"))
	if got, want := String[uint8](cf), "Hello!"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := cf.Len(), 6; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestSessionRemoveTombstonesEntry(t *testing.T) {
	cf := New[uint8, rune](1)
	cf.Session(1).Extend([]rune("foobar"))
	s := cf.Session(1)
	s.Remove(3) // LocalIndex(3) is 'o' (1=f,2=o,3=o,4=b,5=a,6=r)
	if got, want := String[uint8](cf), "fobar"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := New[uint8, rune](1)
	a.Session(1).Extend([]rune("ab"))
	b := a.Clone()
	b.Session(1).PushBack('c')

	if got, want := String[uint8](a), "ab"; got != want {
		t.Errorf("original String() = %q, want %q", got, want)
	}
	if got, want := String[uint8](b), "abc"; got != want {
		t.Errorf("clone String() = %q, want %q", got, want)
	}
}

func TestConcurrentScenariosConverge(t *testing.T) {
	cases := []struct {
		name        string
		initial     string
		expected    string
		mutateLeft  func(*Session[uint8, rune])
		mutateRight func(*Session[uint8, rune])
	}{
		{
			name:     "concurrent insertions",
			initial:  "0",
			expected: "012!",
			mutateLeft: func(s *Session[uint8, rune]) {
				s.Extend([]rune("!"))
			},
			mutateRight: func(s *Session[uint8, rune]) {
				s.Extend([]rune("12"))
			},
		},
		{
			name:     "concurrent deletions of the same element",
			initial:  "foobar",
			expected: "fobar",
			mutateLeft: func(s *Session[uint8, rune]) {
				s.Remove(2)
			},
			mutateRight: func(s *Session[uint8, rune]) {
				s.Remove(2)
			},
		},
		{
			name:     "concurrent replacements of an overlapping range",
			initial:  "foobar",
			expected: "foobaz123",
			mutateLeft: func(s *Session[uint8, rune]) {
				from := LocalIndex(4)
				s.Splice(&from, nil, []rune("123"))
			},
			mutateRight: func(s *Session[uint8, rune]) {
				from := LocalIndex(4)
				s.Splice(&from, nil, []rune("baz"))
			},
		},
		{
			name:     "insertion and deletion at equal log indices",
			initial:  "01",
			expected: "0!",
			mutateLeft: func(s *Session[uint8, rune]) {
				s.InsertAfter(2, '!')
			},
			mutateRight: func(s *Session[uint8, rune]) {
				s.Remove(2)
			},
		},
		{
			name:     "insertion with greater log index than the deletion",
			initial:  "01",
			expected: "0!23",
			mutateLeft: func(s *Session[uint8, rune]) {
				s.Extend([]rune("23"))
				s.InsertAfter(2, '!')
			},
			mutateRight: func(s *Session[uint8, rune]) {
				s.Remove(2)
			},
		},
		{
			name:     "deletion with greater log index than the insertion",
			initial:  "01",
			expected: "023!",
			mutateLeft: func(s *Session[uint8, rune]) {
				s.InsertAfter(2, '!')
			},
			mutateRight: func(s *Session[uint8, rune]) {
				s.Extend([]rune("23"))
				s.Remove(2)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assertConcurrentEq(t, tc.expected, tc.initial, tc.mutateLeft, tc.mutateRight)
		})
	}
}

func TestInsertReferencingDeletedElement(t *testing.T) {
	cf := New[uint8, rune](1)
	s := cf.Session(1)
	idx := s.PushBack('!')
	s.Clear()
	s.InsertAfter(idx, '?')
	if got, want := String[uint8](cf), "?"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

// assertConcurrentEq mirrors the teacher's scenario-style tests (see the
// original's TestRGA_* suite): start two replicas from the same initial
// text, let each apply a local mutation, exchange the resulting ops, and
// check both sides converge to expected.
func assertConcurrentEq(t *testing.T, expected, initial string, mutateLeft, mutateRight func(*Session[uint8, rune])) {
	t.Helper()

	left := New[uint8, rune](1)
	left.Session(1).Extend([]rune(initial))
	right := left.Clone()

	var opsLeft, opsRight []Op[uint8, rune]
	{
		s := left.Session(1)
		mutateLeft(s)
		s.IterOps(func(op Op[uint8, rune]) bool {
			opsLeft = append(opsLeft, op)
			return true
		})
	}
	{
		s := right.Session(2)
		mutateRight(s)
		s.IterOps(func(op Op[uint8, rune]) bool {
			opsRight = append(opsRight, op)
			return true
		})
	}

	for _, op := range opsLeft {
		require.NoError(t, right.Apply(op), "right.Apply(%v)", op)
	}
	for _, op := range opsRight {
		require.NoError(t, left.Apply(op), "left.Apply(%v)", op)
	}

	assert.Equal(t, expected, String[uint8](left), "left ops: %v", opsLeft)
	assert.Equal(t, expected, String[uint8](right), "right ops: %v", opsRight)
}
