// Package audiofile reads audio files into resampler waveforms and writes
// resampled waveforms back out as PCM WAV.
//
// Decoders are looked up by file extension in a Registry. The default
// registry handles WAV and AIFF through go-audio, MP3 through go-mp3 and
// Ogg Vorbis through oggvorbis.
package audiofile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	resampler "github.com/tphakala/go-adaptive-resampler"
)

// Sample format constants.
const (
	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt8  = 127.0
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	unsigned8Offset = 128
	fullScale8      = 128.0
)

var (
	// ErrUnsupportedFormat is returned when no decoder is registered for a file extension.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrInvalidFile is returned when a file does not match the container its extension claims.
	ErrInvalidFile = errors.New("invalid audio file")

	// ErrUnsupportedBitDepth is returned for PCM layouts that cannot be scaled to floats.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
)

// Audio is a fully decoded file.
type Audio struct {
	Waveform *resampler.Waveform
	// BitDepth is the PCM depth of the source, or 0 for compressed formats.
	BitDepth int
	Format   string
}

// Decoder turns an encoded stream into an Audio value.
type Decoder interface {
	Decode(r io.ReadSeeker) (*Audio, error)
}

// Registry maps lower-case file extensions (".wav") to decoders.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// DefaultRegistry returns a registry with every built-in decoder.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".wav", WAVDecoder{})
	r.Register(".wave", WAVDecoder{})
	r.Register(".aif", AIFFDecoder{})
	r.Register(".aiff", AIFFDecoder{})
	r.Register(".mp3", MP3Decoder{})
	r.Register(".ogg", VorbisDecoder{})
	r.Register(".oga", VorbisDecoder{})
	return r
}

// Register binds ext to d, replacing any previous decoder.
func (r *Registry) Register(ext string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[normalizeExt(ext)] = d
}

// Lookup returns the decoder for path's extension.
func (r *Registry) Lookup(path string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decoders[normalizeExt(filepath.Ext(path))]
	return d, ok
}

// Supported reports whether path has a registered extension.
func (r *Registry) Supported(path string) bool {
	_, ok := r.Lookup(path)
	return ok
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.decoders))
	for ext := range r.decoders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// DecodeFile opens path and decodes it with the matching decoder.
func (r *Registry) DecodeFile(path string) (*Audio, error) {
	d, ok := r.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	a, err := d.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return a, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// getMaxValue returns the full-scale magnitude for a PCM bit depth.
func getMaxValue(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample8:
		return maxInt8, nil
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	case bitsPerSample32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// deinterleaveInts converts interleaved PCM integers to per-channel floats
// in [-1, 1]. Unsigned 8-bit data (WAV) is re-centred first; 8-bit samples
// are scaled by 128 so the most negative code maps to exactly -1.
func deinterleaveInts(data []int, channels, bitDepth int, unsigned8 bool) ([][]float64, error) {
	maxVal, err := getMaxValue(bitDepth)
	if err != nil {
		return nil, err
	}
	offset := 0
	if bitDepth == bitsPerSample8 {
		maxVal = fullScale8
		if unsigned8 {
			offset = unsigned8Offset
		}
	}

	samplesPerChannel := len(data) / channels
	result := make([][]float64, channels)
	for ch := range channels {
		result[ch] = make([]float64, samplesPerChannel)
	}
	invMaxVal := 1.0 / maxVal
	for i := range samplesPerChannel {
		for ch := range channels {
			result[ch][i] = float64(data[i*channels+ch]-offset) * invMaxVal
		}
	}
	return result, nil
}

// interleaveInts converts per-channel floats to interleaved PCM integers,
// clamping to [-1, 1].
func interleaveInts(channels [][]float64, bitDepth int) ([]int, error) {
	maxVal, err := getMaxValue(bitDepth)
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 || len(channels[0]) == 0 {
		return nil, nil
	}

	numChannels := len(channels)
	samplesPerChannel := len(channels[0])
	result := make([]int, samplesPerChannel*numChannels)
	for i := range samplesPerChannel {
		for ch := range numChannels {
			sample := max(-1.0, min(1.0, channels[ch][i]))
			result[i*numChannels+ch] = int(sample * maxVal)
		}
	}
	return result, nil
}
