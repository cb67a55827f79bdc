// ABOUTME: Speaker output device using the oto library
// ABOUTME: Feeds decoded PCM through a pipe into one long-lived oto player
package engine

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/Soundwire-Project/soundwire-go/internal/audio"
)

// Speaker plays buffers on the default output device. Only one output
// stream may be open per process; oto enforces this, not Speaker.
type Speaker struct {
	otoCtx *oto.Context
	player *oto.Player
	pw     *io.PipeWriter

	mu      sync.Mutex
	closed  bool
	scratch [audio.SamplesPerBuffer * 2]byte
}

// NewSpeaker opens the default output device at the fixed stream format
// and starts playback. Device failure is fatal to construction.
func NewSpeaker() (*Speaker, error) {
	op := &oto.NewContextOptions{
		SampleRate:   audio.SampleRate,
		ChannelCount: audio.NumChannels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to open output device: %w", err)
	}
	<-ready

	pr, pw := io.Pipe()
	player := ctx.NewPlayer(pr)
	player.Play()

	log.Printf("Speaker started: %dHz, %d channels", audio.SampleRate, audio.NumChannels)
	return &Speaker{otoCtx: ctx, player: player, pw: pw}, nil
}

// Write queues one buffer for playback. Blocks when the player's
// internal buffer is full.
func (s *Speaker) Write(buf *audio.Buffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("speaker closed")
	}

	out := s.scratch[:0]
	for i := 0; i < audio.FramesPerBuffer; i++ {
		for j := 0; j < audio.NumChannels; j++ {
			out = binary.LittleEndian.AppendUint16(out, uint16(buf[i][j]))
		}
	}
	if _, err := s.pw.Write(out); err != nil {
		return fmt.Errorf("speaker write: %w", err)
	}
	return nil
}

// Close ends playback and releases the device.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	s.pw.Close()
	err := s.player.Close()
	s.otoCtx.Suspend()
	log.Printf("Speaker stopped")
	return err
}
