package audiofile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resampler "github.com/tphakala/go-adaptive-resampler"
	"github.com/tphakala/go-adaptive-resampler/internal/testutil"
)

func TestRegistry_Lookup(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		path string
		want bool
	}{
		{"a.wav", true},
		{"A.WAV", true},
		{"dir/b.aiff", true},
		{"c.aif", true},
		{"d.mp3", true},
		{"e.ogg", true},
		{"f.flac", false},
		{"noext", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Supported(tt.path))
		})
	}
}

func TestRegistry_RegisterNormalizesExtension(t *testing.T) {
	r := NewRegistry()
	r.Register("WAV", WAVDecoder{})
	r.Register(".Mp3", MP3Decoder{})

	assert.Equal(t, []string{".mp3", ".wav"}, r.Extensions())
	_, ok := r.Lookup("x.wav")
	assert.True(t, ok)
}

func TestRegistry_DecodeFileUnsupported(t *testing.T) {
	_, err := DefaultRegistry().DecodeFile("track.flac")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRegistry_DecodeFileMissing(t *testing.T) {
	_, err := DefaultRegistry().DecodeFile(filepath.Join(t.TempDir(), "missing.wav"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWAVRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		bitDepth int
		channels int
	}{
		{"mono 16-bit", 16000, 16, 1},
		{"stereo 16-bit", 44100, 16, 2},
		{"mono 24-bit", 48000, 24, 1},
		{"stereo 32-bit", 22050, 32, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chans := make([][]float64, tt.channels)
			for ch := range chans {
				chans[ch] = testutil.Sine(440*float64(ch+1), 0.5, tt.rate, 1000)
			}
			in := resampler.NewWaveform(tt.rate, chans...)

			path := filepath.Join(t.TempDir(), "out.wav")
			require.NoError(t, WriteWAV(path, in, tt.bitDepth))

			got, err := DefaultRegistry().DecodeFile(path)
			require.NoError(t, err)

			assert.Equal(t, "wav", got.Format)
			assert.Equal(t, tt.bitDepth, got.BitDepth)
			assert.InDelta(t, tt.rate, got.Waveform.Rate, 0)
			require.Equal(t, tt.channels, got.Waveform.NumChannels())

			maxVal, err := getMaxValue(tt.bitDepth)
			require.NoError(t, err)
			for ch := range chans {
				testutil.AssertSlicesInDelta(t, chans[ch], got.Waveform.Channels[ch], 2/maxVal)
			}
		})
	}
}

func TestWriteWAV_Errors(t *testing.T) {
	dir := t.TempDir()

	err := WriteWAV(filepath.Join(dir, "a.wav"), resampler.NewWaveform(8000), 16)
	require.ErrorIs(t, err, resampler.ErrInvalidInput)

	w := resampler.NewWaveform(8000, []float64{0, 0.5})
	err = WriteWAV(filepath.Join(dir, "b.wav"), w, 12)
	require.ErrorIs(t, err, ErrUnsupportedBitDepth)

	err = WriteWAV(filepath.Join(dir, "missing", "c.wav"), w, 16)
	require.Error(t, err)
}

func TestDecoders_RejectGarbage(t *testing.T) {
	garbage := []byte("this is plainly not an encoded audio stream at all")

	tests := []struct {
		name string
		dec  Decoder
	}{
		{"wav", WAVDecoder{}},
		{"aiff", AIFFDecoder{}},
		{"mp3", MP3Decoder{}},
		{"vorbis", VorbisDecoder{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.dec.Decode(bytes.NewReader(garbage))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidFile)
		})
	}
}

func TestOutputBitDepth(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 16},
		{8, 16},
		{16, 16},
		{24, 24},
		{32, 32},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputBitDepth(tt.in), "source depth %d", tt.in)
	}
}

func TestInterleaveInts_Clamps(t *testing.T) {
	got, err := interleaveInts([][]float64{{2, -2}, {0.5, -0.5}}, 16)
	require.NoError(t, err)
	assert.Equal(t, []int{32767, 16383, -32767, -16383}, got)
}

func TestDeinterleaveInts(t *testing.T) {
	t.Run("signed", func(t *testing.T) {
		got, err := deinterleaveInts([]int{32767, 0, -32767, 0}, 2, 16, false)
		require.NoError(t, err)
		require.Len(t, got, 2)
		testutil.AssertSlicesInDelta(t, []float64{1, -1}, got[0], 1e-12)
		testutil.AssertSlicesInDelta(t, []float64{0, 0}, got[1], 1e-12)
	})

	t.Run("unsigned 8-bit", func(t *testing.T) {
		got, err := deinterleaveInts([]int{128, 255, 0, 1}, 1, 8, true)
		require.NoError(t, err)
		testutil.AssertSlicesInDelta(t, []float64{0, 127.0 / 128, -1, -127.0 / 128}, got[0], 1e-12)
	})

	t.Run("signed 8-bit", func(t *testing.T) {
		got, err := deinterleaveInts([]int{-128, 0, 127}, 1, 8, false)
		require.NoError(t, err)
		testutil.AssertSlicesInDelta(t, []float64{-1, 0, 127.0 / 128}, got[0], 1e-12)
	})

	t.Run("8-bit stays in range", func(t *testing.T) {
		raw := make([]int, 256)
		for i := range raw {
			raw[i] = i
		}
		got, err := deinterleaveInts(raw, 1, 8, true)
		require.NoError(t, err)
		for _, v := range got[0] {
			testutil.AssertInRange(t, v, -1, 1)
		}
	})

	t.Run("unsupported depth", func(t *testing.T) {
		_, err := deinterleaveInts([]int{1}, 1, 12, false)
		require.ErrorIs(t, err, ErrUnsupportedBitDepth)
	})
}
