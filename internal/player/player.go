// ABOUTME: Player half of the pipeline: receiver -> codec -> output device
// ABOUTME: Decoded buffers are written to the device on the receive goroutine
package player

import (
	"fmt"
	"log"
	"sync"

	"github.com/Soundwire-Project/soundwire-go/internal/audio"
	"github.com/Soundwire-Project/soundwire-go/internal/engine"
	"github.com/Soundwire-Project/soundwire-go/internal/transport"
)

// ReceiverFactory builds the receiver the player will own, wired to the
// player's message handler.
type ReceiverFactory func(onReceive transport.ReceiveFunc) (transport.Receiver, error)

// Player owns an output device and a receiver for its whole lifetime.
// Both are torn down together by Close.
type Player struct {
	output   engine.Output
	codec    audio.Codec
	receiver transport.Receiver

	// buf is reused across callbacks; only the receive goroutine
	// touches it.
	buf audio.Buffer

	mu     sync.Mutex
	closed bool
}

// New wires a receiver to the output device and starts it. On error the
// caller keeps ownership of the output device.
func New(output engine.Output, codec audio.Codec, newReceiver ReceiverFactory) (*Player, error) {
	p := &Player{output: output, codec: codec}

	receiver, err := newReceiver(p.handleMessage)
	if err != nil {
		return nil, err
	}
	p.receiver = receiver

	if err := receiver.Start(); err != nil {
		receiver.Stop()
		return nil, fmt.Errorf("failed to start receiver: %w", err)
	}

	log.Printf("AudioPlayer started")
	return p, nil
}

// handleMessage runs on the receive goroutine: decode one wire message
// and write it to the device. The device write blocks when its queue is
// full, which backpressures the receive loop.
func (p *Player) handleMessage(data []byte) {
	p.codec.Decode(data, &p.buf)
	if err := p.output.Write(&p.buf); err != nil {
		log.Printf("playback write error: %v", err)
	}
}

// Close stops the receiver first, joining its goroutine, so no callback
// can fire against the closed device. Safe to call repeatedly.
func (p *Player) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.receiver.Stop()
	if err := p.output.Close(); err != nil {
		log.Printf("output close error: %v", err)
	}
	log.Printf("AudioPlayer stopped")
}
