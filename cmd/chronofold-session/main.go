// Command chronofold-session is a small demo that plays two concurrent
// editing sessions against each other and prints the converged result. It
// exercises the same convergence guarantee spec.md's testable properties
// assert: two replicas that have seen the same ops render identical text.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AppAppWorks/chronofold"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	sessionID := uuid.New()
	logger = logger.With(zap.String("session", sessionID.String()))

	alice := chronofold.New[uint8, rune](1, chronofold.WithLogger[uint8, rune](logger))
	alice.Session(1).Extend([]rune("Hello chronfold!"))
	bob := alice.Clone()

	opsA := recordOps(alice, 1, " - a data structure for versioned text", -1)
	opsB := recordOps(bob, 2, "o", 11)

	for _, op := range opsA {
		if err := bob.Apply(op); err != nil {
			fmt.Fprintln(os.Stderr, "bob apply:", err)
			os.Exit(1)
		}
	}
	for _, op := range opsB {
		if err := alice.Apply(op); err != nil {
			fmt.Fprintln(os.Stderr, "alice apply:", err)
			os.Exit(1)
		}
	}

	fmt.Println("alice:", chronofold.String[uint8](alice))
	fmt.Println("bob:  ", chronofold.String[uint8](bob))
}

// recordOps performs one local edit and returns the ops it produced, for
// replay on a peer. insertAfterTypo < 0 means "splice text in before
// LocalIndex 16", otherwise it inserts a single 'o' after that LocalIndex
// and text is not used (the demo's two hardcoded edits).
func recordOps(cf *chronofold.Chronofold[uint8, rune], author uint8, text string, insertAfterTypo int) []chronofold.Op[uint8, rune] {
	session := cf.Session(author)
	if insertAfterTypo >= 0 {
		session.InsertAfter(chronofold.LocalIndex(insertAfterTypo), 'o')
	} else {
		at := chronofold.LocalIndex(16)
		session.Splice(&at, &at, []rune(text))
	}

	var ops []chronofold.Op[uint8, rune]
	session.IterOps(func(op chronofold.Op[uint8, rune]) bool {
		ops = append(ops, op)
		return true
	})
	return ops
}
