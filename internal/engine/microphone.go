// ABOUTME: Microphone capture device using the portaudio library
// ABOUTME: Blocking stream reads at the fixed wire format
package engine

import (
	"fmt"
	"log"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/Soundwire-Project/soundwire-go/internal/audio"
)

// Initialize brings up the portaudio engine. Must be called once before
// any Microphone is opened.
func Initialize() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize audio engine: %w", err)
	}
	return nil
}

// Terminate shuts the portaudio engine down. Call after all devices are
// closed.
func Terminate() {
	if err := portaudio.Terminate(); err != nil {
		log.Printf("audio engine terminate: %v", err)
	}
}

// Microphone captures from the default input device. Only one input
// stream may be open per process; the engine enforces this, not
// Microphone.
type Microphone struct {
	mu      sync.Mutex
	stream  *portaudio.Stream
	samples []int16
	closed  bool
}

// NewMicrophone opens and starts the default input stream at the fixed
// format. Device failure is fatal to construction.
func NewMicrophone() (*Microphone, error) {
	samples := make([]int16, audio.SamplesPerBuffer)

	stream, err := portaudio.OpenDefaultStream(
		audio.NumChannels, 0, float64(audio.SampleRate), audio.FramesPerBuffer, samples)
	if err != nil {
		return nil, fmt.Errorf("failed to open input device: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("failed to start input stream: %w", err)
	}

	log.Printf("Microphone started: %dHz, %d channels", audio.SampleRate, audio.NumChannels)
	return &Microphone{stream: stream, samples: samples}, nil
}

// Read blocks until one buffer of samples has been captured and copies
// it into buf.
func (m *Microphone) Read(buf *audio.Buffer) error {
	if err := m.stream.Read(); err != nil {
		return fmt.Errorf("microphone read: %w", err)
	}
	for i := 0; i < audio.FramesPerBuffer; i++ {
		for j := 0; j < audio.NumChannels; j++ {
			buf[i][j] = m.samples[i*audio.NumChannels+j]
		}
	}
	return nil
}

// Close stops and releases the input stream.
func (m *Microphone) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true

	if err := m.stream.Stop(); err != nil {
		log.Printf("microphone stop: %v", err)
	}
	err := m.stream.Close()
	log.Printf("Microphone stopped")
	return err
}
