// ABOUTME: Tests for the UDP transport
// ABOUTME: End-to-end loopback delivery, stop safety and construction failures
package transport

import (
	"bytes"
	"testing"
	"time"
)

func TestUDPSendReceive(t *testing.T) {
	received := make(chan []byte, 1)
	receiver, err := NewUDPReceiver(12345, func(data []byte) {
		msg := make([]byte, len(data))
		copy(msg, data)
		select {
		case received <- msg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewUDPReceiver: %v", err)
	}
	if err := receiver.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer receiver.Stop()

	sender, err := NewUDPSender("127.0.0.1", 12345)
	if err != nil {
		t.Fatalf("NewUDPSender: %v", err)
	}
	defer sender.Close()

	want := []byte("Hello, World!")
	if err := sender.Send(want); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case got := <-received:
		if !bytes.Equal(got, want) {
			t.Errorf("received %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for datagram")
	}
}

func TestUDPReceiverStopWithoutStart(t *testing.T) {
	receiver, err := NewUDPReceiver(12346, func([]byte) {})
	if err != nil {
		t.Fatalf("NewUDPReceiver: %v", err)
	}
	receiver.Stop() // must not hang or panic
}

func TestUDPReceiverStopTwice(t *testing.T) {
	receiver, err := NewUDPReceiver(12347, func([]byte) {})
	if err != nil {
		t.Fatalf("NewUDPReceiver: %v", err)
	}
	if err := receiver.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	receiver.Stop()
	receiver.Stop()
}

func TestUDPReceiverInvalidPort(t *testing.T) {
	for _, port := range []int{0, -5, 70000} {
		if _, err := NewUDPReceiver(port, func([]byte) {}); err == nil {
			t.Errorf("NewUDPReceiver(%d) succeeded, want error", port)
		}
	}
}

func TestUDPSenderInvalidEndpoint(t *testing.T) {
	if _, err := NewUDPSender("999.999.999.999", 9000); err == nil {
		t.Errorf("invalid IP accepted")
	}
	if _, err := NewUDPSender("127.0.0.1", 70000); err == nil {
		t.Errorf("invalid port accepted")
	}
}

func TestUDPSenderSendAfterClose(t *testing.T) {
	sender, err := NewUDPSender("127.0.0.1", 12348)
	if err != nil {
		t.Fatalf("NewUDPSender: %v", err)
	}
	if err := sender.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := sender.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := sender.Send([]byte("x")); err == nil {
		t.Errorf("Send after Close succeeded")
	}
}
