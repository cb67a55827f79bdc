// ABOUTME: Recorder half of the pipeline: input device -> codec -> sender
// ABOUTME: One capture goroutine with a stop flag and a short settle delay
package recorder

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Soundwire-Project/soundwire-go/internal/audio"
	"github.com/Soundwire-Project/soundwire-go/internal/engine"
	"github.com/Soundwire-Project/soundwire-go/internal/transport"
)

// settleDelay gives an in-flight capture read time to complete before
// the input stream is closed underneath it.
const settleDelay = 100 * time.Millisecond

// Recorder owns an input device and a sender for its whole lifetime and
// pumps captured buffers onto the wire.
type Recorder struct {
	input  engine.Input
	codec  audio.Codec
	sender transport.Sender

	stopping  atomic.Bool
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New starts the capture loop immediately. The caller retains ownership
// of the sender and closes it after the recorder.
func New(input engine.Input, codec audio.Codec, sender transport.Sender) *Recorder {
	r := &Recorder{input: input, codec: codec, sender: sender}

	r.wg.Add(1)
	go r.captureLoop()

	log.Printf("AudioRecorder started")
	return r
}

// captureLoop reads one buffer at a time, encodes it into a preallocated
// scratch and sends it. The loop allocates nothing after startup.
func (r *Recorder) captureLoop() {
	defer r.wg.Done()

	var buf audio.Buffer
	scratch := make([]byte, 0, r.codec.MaxEncodedLen())

	for !r.stopping.Load() {
		if err := r.input.Read(&buf); err != nil {
			if !r.stopping.Load() {
				log.Printf("capture read error: %v", err)
			}
			return
		}

		msg := r.codec.Encode(scratch, &buf)
		if err := r.sender.Send(msg); err != nil {
			if r.stopping.Load() {
				return
			}
			log.Printf("capture send error: %v", err)
		}
	}
}

// Close sets the stop flag, waits briefly for the in-flight capture to
// settle, then closes the input stream and joins the loop. Safe to call
// repeatedly.
func (r *Recorder) Close() {
	r.closeOnce.Do(func() {
		r.stopping.Store(true)
		time.Sleep(settleDelay)

		if err := r.input.Close(); err != nil {
			log.Printf("input close error: %v", err)
		}
		r.wg.Wait()
		log.Printf("AudioRecorder stopped")
	})
}
