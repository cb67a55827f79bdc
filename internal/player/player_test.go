// ABOUTME: Tests for the player pipeline using fake device and receiver
// ABOUTME: Covers decode-to-write flow and teardown joining an in-flight callback
package player

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Soundwire-Project/soundwire-go/internal/audio"
	"github.com/Soundwire-Project/soundwire-go/internal/transport"
)

// fakeOutput records writes and can block them to simulate device
// backpressure.
type fakeOutput struct {
	mu       sync.Mutex
	written  []audio.Buffer
	closed   bool
	inFlight int

	block   bool
	started chan struct{}
	release chan struct{}
}

func (f *fakeOutput) Write(buf *audio.Buffer) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return fmt.Errorf("write after close")
	}
	f.inFlight++
	f.mu.Unlock()

	if f.block {
		f.started <- struct{}{}
		<-f.release
	}

	f.mu.Lock()
	f.inFlight--
	f.written = append(f.written, *buf)
	f.mu.Unlock()
	return nil
}

func (f *fakeOutput) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inFlight > 0 {
		return fmt.Errorf("close raced an in-flight write")
	}
	f.closed = true
	return nil
}

// fakeReceiver delivers messages on its own goroutine and joins it on
// Stop, like the real transports.
type fakeReceiver struct {
	onReceive transport.ReceiveFunc
	startErr  error
	wg        sync.WaitGroup
}

func (f *fakeReceiver) Start() error { return f.startErr }

func (f *fakeReceiver) Stop() { f.wg.Wait() }

func (f *fakeReceiver) Deliver(data []byte) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.onReceive(data)
	}()
}

func newFakePlayer(t *testing.T, out *fakeOutput) (*Player, *fakeReceiver) {
	t.Helper()
	fr := &fakeReceiver{}
	p, err := New(out, audio.BinaryCodec{}, func(cb transport.ReceiveFunc) (transport.Receiver, error) {
		fr.onReceive = cb
		return fr, nil
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p, fr
}

func TestPlayerDecodesAndWrites(t *testing.T) {
	out := &fakeOutput{}
	p, fr := newFakePlayer(t, out)

	var want audio.Buffer
	want[0][0] = -7
	want[15][1] = 31000
	msg := audio.BinaryCodec{}.Encode(nil, &want)

	fr.Deliver(msg)
	fr.wg.Wait()

	out.mu.Lock()
	defer out.mu.Unlock()
	if len(out.written) != 1 {
		t.Fatalf("expected 1 write, got %d", len(out.written))
	}
	if out.written[0] != want {
		t.Errorf("device received %v, want %v", out.written[0], want)
	}

	p.Close()
}

func TestPlayerTruncatedMessagePlaysSilence(t *testing.T) {
	out := &fakeOutput{}
	p, fr := newFakePlayer(t, out)
	defer p.Close()

	fr.Deliver([]byte{0x01, 0x02, 0x03}) // one sample and a dangling byte
	fr.wg.Wait()

	out.mu.Lock()
	defer out.mu.Unlock()
	if len(out.written) != 1 {
		t.Fatalf("expected 1 write, got %d", len(out.written))
	}
	if got := out.written[0][0][0]; got != 0x0201 {
		t.Errorf("first sample = %d, want %d", got, 0x0201)
	}
	if out.written[0][0][1] != audio.SampleSilence || out.written[0][1][0] != audio.SampleSilence {
		t.Errorf("missing samples not silent: %v", out.written[0])
	}
}

func TestPlayerCloseJoinsInFlightCallback(t *testing.T) {
	out := &fakeOutput{
		block:   true,
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	p, fr := newFakePlayer(t, out)

	var buf audio.Buffer
	fr.Deliver(audio.BinaryCodec{}.Encode(nil, &buf))
	<-out.started // callback is now blocked inside the device write

	closeDone := make(chan struct{})
	go func() {
		p.Close()
		close(closeDone)
	}()

	select {
	case <-closeDone:
		t.Fatal("Close returned while a callback was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(out.release)

	select {
	case <-closeDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not complete after callback finished")
	}

	out.mu.Lock()
	defer out.mu.Unlock()
	if !out.closed {
		t.Errorf("device was not closed")
	}
	if len(out.written) != 1 {
		t.Errorf("in-flight write was lost")
	}
}

func TestPlayerCloseTwice(t *testing.T) {
	out := &fakeOutput{}
	p, _ := newFakePlayer(t, out)
	p.Close()
	p.Close()
}

func TestPlayerReceiverStartFailure(t *testing.T) {
	out := &fakeOutput{}
	fr := &fakeReceiver{startErr: fmt.Errorf("bind failed")}
	_, err := New(out, audio.BinaryCodec{}, func(cb transport.ReceiveFunc) (transport.Receiver, error) {
		fr.onReceive = cb
		return fr, nil
	})
	if err == nil {
		t.Fatal("expected construction to fail")
	}

	out.mu.Lock()
	defer out.mu.Unlock()
	if out.closed {
		t.Errorf("player must not close a device it does not own yet")
	}
}
