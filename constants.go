package resampler

// Channel constants
const (
	stereoChannels = 2   // Stereo channel count (used by interleave functions)
	maxChannels    = 256 // Maximum supported channel count
)

// Configuration defaults
const (
	// DefaultPercentileThreshold is the energy-percentile significance level.
	DefaultPercentileThreshold = 98.0

	// DefaultFrameSize is the framed-analysis window length in samples.
	DefaultFrameSize = 2048

	// DefaultHopSize is the framed-analysis frame advance in samples.
	DefaultHopSize = 512

	maxPercentile = 100.0
)
