// ABOUTME: Tests for the Bluetooth transport
// ABOUTME: Construction validation and stop safety without hardware
package transport

import "testing"

func TestBluetoothReceiverInvalidChannel(t *testing.T) {
	for _, channel := range []int{0, 31, -1} {
		if _, err := NewBluetoothReceiver(channel, func([]byte) {}); err == nil {
			t.Errorf("NewBluetoothReceiver(%d) succeeded, want error", channel)
		}
	}
}

func TestBluetoothSenderInvalidEndpoint(t *testing.T) {
	if _, err := NewBluetoothSender("00:1A:7D", 1); err == nil {
		t.Errorf("invalid MAC accepted")
	}
	if _, err := NewBluetoothSender("00:1A:7D:DA:71:13", 31); err == nil {
		t.Errorf("invalid channel accepted")
	}
}

func TestBluetoothReceiverStopWithoutStart(t *testing.T) {
	receiver, err := NewBluetoothReceiver(5, func([]byte) {})
	if err != nil {
		t.Fatalf("NewBluetoothReceiver: %v", err)
	}
	receiver.Stop() // must not hang or panic
}

func TestBluetoothReceiverStopTwice(t *testing.T) {
	receiver, err := NewBluetoothReceiver(5, func([]byte) {})
	if err != nil {
		t.Fatalf("NewBluetoothReceiver: %v", err)
	}
	receiver.Stop()
	receiver.Stop()
}
