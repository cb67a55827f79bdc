// ABOUTME: Wire codecs converting a Buffer to/from transmitted bytes
// ABOUTME: Binary little-endian by default, legacy decimal-text for old peers
package audio

import (
	"encoding/binary"
	"strconv"
)

// Codec converts one Buffer to and from its wire form. Implementations
// are pure transforms over their arguments and safe to call from any
// goroutine as long as each call uses its own dst/buf.
type Codec interface {
	// Encode appends the wire form of buf to dst[:0] and returns the
	// encoded slice. dst should have MaxEncodedLen capacity to keep the
	// call allocation-free.
	Encode(dst []byte, buf *Buffer) []byte

	// Decode fills buf from data. A message shorter than one full Buffer
	// fills the leading samples and leaves the rest silent; excess bytes
	// are ignored. Decode never fails.
	Decode(data []byte, buf *Buffer)

	// MaxEncodedLen is the largest message Encode can produce.
	MaxEncodedLen() int
}

// NewCodec returns the codec for a wire format name: "binary" (default)
// or "text". Unknown names return nil.
func NewCodec(name string) Codec {
	switch name {
	case "", "binary":
		return BinaryCodec{}
	case "text":
		return TextCodec{}
	}
	return nil
}

// BinaryCodec writes each sample as a little-endian int16 in frame order.
// One message is exactly SamplesPerBuffer*2 bytes.
type BinaryCodec struct{}

// BinaryWireSize is the fixed size of a binary wire message.
const BinaryWireSize = SamplesPerBuffer * 2

// Encode implements Codec.
func (BinaryCodec) Encode(dst []byte, buf *Buffer) []byte {
	out := dst[:0]
	for i := 0; i < FramesPerBuffer; i++ {
		for j := 0; j < NumChannels; j++ {
			out = binary.LittleEndian.AppendUint16(out, uint16(buf[i][j]))
		}
	}
	return out
}

// Decode implements Codec. A trailing odd byte is treated as missing.
func (BinaryCodec) Decode(data []byte, buf *Buffer) {
	buf.Silence()
	n := len(data) / 2
	if n > SamplesPerBuffer {
		n = SamplesPerBuffer
	}
	for s := 0; s < n; s++ {
		v := Sample(binary.LittleEndian.Uint16(data[s*2:]))
		buf[s/NumChannels][s%NumChannels] = v
	}
}

// MaxEncodedLen implements Codec.
func (BinaryCodec) MaxEncodedLen() int { return BinaryWireSize }

// TextCodec writes each sample as its decimal representation followed by
// a newline, matching the original wire format of the C++ streamer. At
// up to 7 bytes per sample it inflates the wire 4-6x over binary; kept
// only for interoperating with peers that still speak it.
type TextCodec struct{}

// Encode implements Codec.
func (TextCodec) Encode(dst []byte, buf *Buffer) []byte {
	out := dst[:0]
	for i := 0; i < FramesPerBuffer; i++ {
		for j := 0; j < NumChannels; j++ {
			out = strconv.AppendInt(out, int64(buf[i][j]), 10)
			out = append(out, '\n')
		}
	}
	return out
}

// Decode implements Codec. Tokens are runs of non-whitespace bytes; a
// malformed or out-of-range token ends the fill, leaving the remaining
// samples silent.
func (TextCodec) Decode(data []byte, buf *Buffer) {
	buf.Silence()
	s := 0
	i := 0
	for s < SamplesPerBuffer {
		for i < len(data) && isSpace(data[i]) {
			i++
		}
		if i >= len(data) {
			return
		}
		start := i
		for i < len(data) && !isSpace(data[i]) {
			i++
		}
		v, err := strconv.ParseInt(string(data[start:i]), 10, 16)
		if err != nil {
			return
		}
		buf[s/NumChannels][s%NumChannels] = Sample(v)
		s++
	}
}

// MaxEncodedLen implements Codec. "-32768\n" is the longest token.
func (TextCodec) MaxEncodedLen() int { return SamplesPerBuffer * 7 }

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}
