// ABOUTME: Audio device abstraction boundary
// ABOUTME: Output and Input interfaces so the pipeline is testable without hardware
package engine

import "github.com/Soundwire-Project/soundwire-go/internal/audio"

// Output is a playback device. Write blocks while the device's internal
// queue is full, which is the pipeline's only flow control.
type Output interface {
	// Write queues one buffer for playback.
	Write(buf *audio.Buffer) error

	// Close stops playback and releases the device. Safe to call
	// repeatedly.
	Close() error
}

// Input is a capture device. Read blocks until one full buffer of
// samples has been captured.
type Input interface {
	// Read fills buf with the next captured samples.
	Read(buf *audio.Buffer) error

	// Close stops capture and releases the device, unblocking a pending
	// Read. Safe to call repeatedly.
	Close() error
}
