package audiofile

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"

	resampler "github.com/tphakala/go-adaptive-resampler"
)

const (
	mp3Channels       = 2
	mp3BytesPerSample = 2
	mp3FullScale      = 32768.0
)

// WAVDecoder decodes RIFF/WAVE PCM files.
type WAVDecoder struct{}

// Decode implements Decoder.
func (WAVDecoder) Decode(r io.ReadSeeker) (*Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV file", ErrInvalidFile)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV data: %w", err)
	}
	return fromIntBuffer("wav", buf, int(dec.BitDepth), true)
}

// AIFFDecoder decodes AIFF PCM files.
type AIFFDecoder struct{}

// Decode implements Decoder.
func (AIFFDecoder) Decode(r io.ReadSeeker) (*Audio, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not an AIFF file", ErrInvalidFile)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read AIFF data: %w", err)
	}
	return fromIntBuffer("aiff", buf, int(dec.BitDepth), false)
}

// fromIntBuffer builds an Audio from a fully decoded go-audio buffer.
func fromIntBuffer(format string, buf *goaudio.IntBuffer, bitDepth int, unsigned8 bool) (*Audio, error) {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels <= 0 {
		return nil, fmt.Errorf("%w: missing %s format information", ErrInvalidFile, format)
	}
	channels, err := deinterleaveInts(buf.Data, buf.Format.NumChannels, bitDepth, unsigned8)
	if err != nil {
		return nil, err
	}
	return newAudio(format, float64(buf.Format.SampleRate), channels, bitDepth)
}

// MP3Decoder decodes MPEG-1/2 Layer III streams. go-mp3 always yields
// 16-bit little-endian stereo.
type MP3Decoder struct{}

// Decode implements Decoder.
func (MP3Decoder) Decode(r io.ReadSeeker) (*Audio, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to read MP3 data: %w", err)
	}

	frames := len(raw) / (mp3BytesPerSample * mp3Channels)
	channels := [][]float64{make([]float64, frames), make([]float64, frames)}
	for i := range frames {
		for ch := range mp3Channels {
			off := (i*mp3Channels + ch) * mp3BytesPerSample
			v := int16(binary.LittleEndian.Uint16(raw[off:]))
			channels[ch][i] = float64(v) / mp3FullScale
		}
	}
	return newAudio("mp3", float64(dec.SampleRate()), channels, 0)
}

// VorbisDecoder decodes Ogg Vorbis streams.
type VorbisDecoder struct{}

// Decode implements Decoder.
func (VorbisDecoder) Decode(r io.ReadSeeker) (*Audio, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	if format == nil || format.Channels <= 0 {
		return nil, fmt.Errorf("%w: missing vorbis format information", ErrInvalidFile)
	}

	n := format.Channels
	frames := len(data) / n
	channels := make([][]float64, n)
	for ch := range n {
		channels[ch] = make([]float64, frames)
	}
	for i := range frames {
		for ch := range n {
			channels[ch][i] = float64(data[i*n+ch])
		}
	}
	return newAudio("vorbis", float64(format.SampleRate), channels, 0)
}

func newAudio(format string, rate float64, channels [][]float64, bitDepth int) (*Audio, error) {
	w := resampler.NewWaveform(rate, channels...)
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("decoded %s stream: %w", format, err)
	}
	return &Audio{Waveform: w, BitDepth: bitDepth, Format: format}, nil
}
