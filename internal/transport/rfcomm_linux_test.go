// ABOUTME: Linux-only tests for the RFCOMM receiver lifecycle
// ABOUTME: Verifies Stop wakes a session goroutine parked in accept
package transport

import (
	"testing"
	"time"
)

// Stop must unblock the session goroutine while it is still waiting for
// a peer to connect, the normal state of a speaker right after startup.
// Closing the listening socket is not enough to wake a blocked accept;
// Stop has to shut it down first.
func TestBluetoothReceiverStopUnblocksAccept(t *testing.T) {
	receiver, err := NewBluetoothReceiver(5, func([]byte) {})
	if err != nil {
		t.Fatalf("NewBluetoothReceiver: %v", err)
	}
	if err := receiver.Start(); err != nil {
		t.Skipf("no bluetooth support on this host: %v", err)
	}

	done := make(chan struct{})
	go func() {
		receiver.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not unblock the pending accept")
	}
}
