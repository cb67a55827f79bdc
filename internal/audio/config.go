// ABOUTME: Audio format constants shared by recorder and player
// ABOUTME: These values are fixed by the wire protocol and must match on both peers
package audio

const (
	// SampleRate is the capture and playback rate in Hz.
	SampleRate = 44100

	// FramesPerBuffer is the number of frames exchanged with the audio
	// device on each read or write.
	FramesPerBuffer = 16

	// NumChannels is the channel count of every frame.
	NumChannels = 2

	// SamplesPerBuffer is the total sample count of one Buffer.
	SamplesPerBuffer = FramesPerBuffer * NumChannels

	// SampleSilence is the sample value representing silence.
	SampleSilence = 0

	// RecvBufferSize is the capacity of the reusable receive buffer.
	// Large enough for any wire message either codec produces.
	RecvBufferSize = 8192
)
