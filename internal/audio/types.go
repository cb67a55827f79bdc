// ABOUTME: Audio type definitions
// ABOUTME: Defines the Sample and Buffer types moved through the pipeline
package audio

// Sample is one channel's amplitude at one instant.
type Sample = int16

// Buffer is one device callback's worth of audio: FramesPerBuffer frames
// of NumChannels samples each, in frame order. The zero value is silence.
type Buffer [FramesPerBuffer][NumChannels]Sample

// Silence resets every sample in the buffer to SampleSilence.
func (b *Buffer) Silence() {
	*b = Buffer{}
}
