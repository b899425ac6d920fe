package resampler

import (
	"fmt"
	"math"
	"time"
)

// Waveform is a block of decoded audio in channel-major layout:
// Channels[c][i] is sample i of channel c. Every channel has the same
// length, and Rate is the declared sample rate in Hz.
type Waveform struct {
	Channels [][]float64
	Rate     float64
}

// NewWaveform wraps channels without copying them.
func NewWaveform(rate float64, channels ...[]float64) *Waveform {
	return &Waveform{Channels: channels, Rate: rate}
}

// Validate reports a nil or empty waveform, ragged channels, too many
// channels, or a non-positive or non-finite rate as ErrInvalidInput.
func (w *Waveform) Validate() error {
	if w == nil {
		return fmt.Errorf("%w: nil waveform", ErrInvalidInput)
	}
	if len(w.Channels) == 0 {
		return fmt.Errorf("%w: waveform has no channels", ErrInvalidInput)
	}
	if len(w.Channels) > maxChannels {
		return fmt.Errorf("%w: too many channels (max %d)", ErrInvalidInput, maxChannels)
	}
	n := len(w.Channels[0])
	if n == 0 {
		return fmt.Errorf("%w: empty waveform", ErrInvalidInput)
	}
	for c, ch := range w.Channels {
		if len(ch) != n {
			return fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d", ErrInvalidInput, c, len(ch), n)
		}
	}
	if !(w.Rate > 0) || math.IsInf(w.Rate, 0) {
		return fmt.Errorf("%w: sample rate must be positive and finite, got %v", ErrInvalidInput, w.Rate)
	}
	return nil
}

// NumChannels returns the channel count.
func (w *Waveform) NumChannels() int {
	return len(w.Channels)
}

// Len returns the number of samples per channel.
func (w *Waveform) Len() int {
	if len(w.Channels) == 0 {
		return 0
	}
	return len(w.Channels[0])
}

// Duration returns the playback length at the declared rate.
func (w *Waveform) Duration() time.Duration {
	if !(w.Rate > 0) {
		return 0
	}
	return time.Duration(float64(w.Len()) / w.Rate * float64(time.Second))
}
