// ABOUTME: Transport abstraction between audio pipeline and the network
// ABOUTME: Defines the Sender/Receiver contracts shared by UDP and Bluetooth
package transport

// ReceiveFunc handles one received wire message. It is invoked on the
// receiver's background goroutine with a slice into the receiver's
// reusable buffer; the bytes are only valid for the duration of the call.
// It must not block indefinitely, since it holds up the receive loop.
type ReceiveFunc func(data []byte)

// Sender delivers opaque messages to a fixed peer.
type Sender interface {
	// Send transmits one message. Best effort: there is no delivery
	// confirmation and no retry.
	Send(msg []byte) error

	// Close releases the underlying connection. Safe to call repeatedly.
	Close() error
}

// Receiver listens for messages and delivers each to a ReceiveFunc on a
// dedicated background goroutine.
type Receiver interface {
	// Start binds the transport and spawns the receive loop. Calling
	// Start twice is undefined.
	Start() error

	// Stop signals the loop to exit, unblocks any pending wait, joins
	// the goroutine and releases the transport. Safe to call repeatedly
	// and safe to call if Start was never called or failed.
	Stop()
}
