package audiofile

import (
	"errors"
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	resampler "github.com/tphakala/go-adaptive-resampler"
)

const wavFormatPCM = 1

// OutputBitDepth picks the PCM depth for a resampled copy of a source.
// 24 and 32-bit sources keep their depth, everything else is written as
// 16-bit.
func OutputBitDepth(sourceBitDepth int) int {
	switch sourceBitDepth {
	case bitsPerSample24, bitsPerSample32:
		return sourceBitDepth
	default:
		return bitsPerSample16
	}
}

// WriteWAV writes w to path as PCM WAV at the given bit depth. The rate is
// rounded to the nearest integer.
func WriteWAV(path string, w *resampler.Waveform, bitDepth int) (err error) {
	if err := w.Validate(); err != nil {
		return err
	}
	data, err := interleaveInts(w.Channels, bitDepth)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	rate := int(math.Round(w.Rate))
	enc := wav.NewEncoder(f, rate, bitDepth, w.NumChannels(), wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: w.NumChannels(), SampleRate: rate},
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}
	return nil
}
