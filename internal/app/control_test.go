// ABOUTME: Tests for the interactive control loop
// ABOUTME: Verifies quit handling and that other input is ignored
package app

import (
	"strings"
	"testing"
	"time"
)

func runControlLoop(t *testing.T, input string) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		ControlLoop(strings.NewReader(input))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ControlLoop did not return")
	}
}

func TestControlLoopQuitLowercase(t *testing.T) {
	runControlLoop(t, "q\n")
}

func TestControlLoopQuitUppercase(t *testing.T) {
	runControlLoop(t, "Q\n")
}

func TestControlLoopIgnoresOtherInput(t *testing.T) {
	runControlLoop(t, "hello\n\nquit\nq\n")
}

func TestControlLoopReturnsOnEOF(t *testing.T) {
	runControlLoop(t, "noise\n")
}
