// ABOUTME: Bluetooth transport stubs for platforms without RFCOMM sockets
// ABOUTME: Construction fails; the UDP transport is unaffected
//go:build !linux

package transport

import "fmt"

// BluetoothSender is unavailable on this platform.
type BluetoothSender struct{}

// BluetoothReceiver is unavailable on this platform.
type BluetoothReceiver struct{}

// NewBluetoothSender fails: RFCOMM sockets require linux.
func NewBluetoothSender(mac string, channel int) (*BluetoothSender, error) {
	return nil, fmt.Errorf("bluetooth transport requires linux")
}

// NewBluetoothReceiver fails: RFCOMM sockets require linux.
func NewBluetoothReceiver(channel int, onReceive ReceiveFunc) (*BluetoothReceiver, error) {
	return nil, fmt.Errorf("bluetooth transport requires linux")
}

// Send always fails on this platform.
func (*BluetoothSender) Send(msg []byte) error {
	return fmt.Errorf("bluetooth transport requires linux")
}

// Close is a no-op on this platform.
func (*BluetoothSender) Close() error { return nil }

// Start always fails on this platform.
func (*BluetoothReceiver) Start() error {
	return fmt.Errorf("bluetooth transport requires linux")
}

// Stop is a no-op on this platform.
func (*BluetoothReceiver) Stop() {}
