// Package resampler converts audio to the smallest standard sample rate
// that still carries its real bandwidth.
//
// Files are often stored at a higher rate than their content needs: a
// telephone recording saved at 48 kHz, or an upsampled MP3. The engine
// measures where the signal's energy actually ends and picks a target rate
// from a catalogue of standard rates using the Nyquist criterion, then
// resamples every channel to it.
//
// # Pipeline
//
// Each waveform passes through four pure stages:
//
//  1. Analyze: reduce channels to one signal ([DownmixAverage] or
//     [DownmixFirstChannel]) and compute its magnitude spectrum, either
//     over the whole signal ([AnalysisWholeSignal]) or over Hann-windowed
//     frames ([AnalysisFramed]).
//  2. Estimate: find the highest significant frequency. The default
//     [PolicyEnergyPercentile] normalizes magnitudes by their total and
//     keeps bins at or above the 98th percentile; [PolicyPeakMagnitude]
//     reports the strongest bin. Silent input falls back to the declared
//     rate rather than failing.
//  3. Select: return the first catalogue rate at or above twice the
//     bandwidth, or the largest rate when none is high enough.
//  4. Resample: convert each channel to round(n*target/source) samples,
//     with an exact Fourier-domain method ([MethodFFT], the default) or a
//     Kaiser-windowed sinc interpolator ([MethodSinc]).
//
// # Quick Start
//
//	w := resampler.NewWaveform(48000, left, right)
//	res, err := resampler.Adapt(w)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Bandwidth.Frequency, res.TargetRate)
//
// For custom settings build an [Engine]:
//
//	e, err := resampler.New(resampler.Config{
//	    AnalysisMode:       resampler.AnalysisFramed,
//	    SignificancePolicy: resampler.PolicyPeakMagnitude,
//	    RateCatalogue:      []int{8000, 16000, 44100},
//	})
//
// Configurations can also be read from YAML with [LoadConfig].
// [Engine.InspectKernel] reports the sinc kernel a rate pair would use.
//
// # Batches
//
// [Engine.ProcessBatch] runs many items in lexicographic name order with an
// optional cap, worker pool, persistence hook, and zap logger. Per-item
// failures are recorded and never abort the batch.
//
// # Concurrency
//
// An [Engine] holds only immutable configuration and may be shared between
// goroutines. Engine methods never log and never modify their inputs.
package resampler
