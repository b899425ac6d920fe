package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tphakala/go-adaptive-resampler/internal/audiofile"
)

const outputExt = ".wav"

// listInputs returns the decodable files directly inside dir, sorted by
// name, skipping files whose stem already carries suffix.
func listInputs(dir, suffix string, reg *audiofile.Registry) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder: %w", err)
	}

	// os.ReadDir sorts by filename.
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !reg.Supported(e.Name()) {
			continue
		}
		if suffix != "" && strings.HasSuffix(stem(e.Name()), suffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// outputPathFor returns <name><suffix>.wav, placed in outDir when set and
// next to input otherwise.
func outputPathFor(input, name, outDir, suffix string) string {
	dir := filepath.Dir(input)
	if outDir != "" {
		dir = outDir
	}
	return filepath.Join(dir, name+suffix+outputExt)
}

var errOutputConflict = errors.New("output path is claimed by another input")

// planOutputs assigns an output path to every input, keyed by base name.
// Inputs sharing a stem (song.wav, song.mp3) keep their extension in the
// output name (song_wav_resampled.wav, song_mp3_resampled.wav). Inputs
// whose output would still be written twice are returned in conflicts and
// have no entry in outputs.
func planOutputs(paths []string, outDir, suffix string) (outputs map[string]string, conflicts []string) {
	stems := make(map[string]int, len(paths))
	for _, p := range paths {
		stems[stem(filepath.Base(p))]++
	}

	planned := make([]string, len(paths))
	claims := make(map[string]int, len(paths))
	for i, p := range paths {
		name := filepath.Base(p)
		out := stem(name)
		if stems[out] > 1 {
			out += "_" + strings.TrimPrefix(filepath.Ext(name), ".")
		}
		planned[i] = outputPathFor(p, out, outDir, suffix)
		claims[planned[i]]++
	}

	outputs = make(map[string]string, len(paths))
	for i, p := range paths {
		name := filepath.Base(p)
		if claims[planned[i]] > 1 {
			conflicts = append(conflicts, name)
			continue
		}
		outputs[name] = planned[i]
	}
	return outputs, conflicts
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// depthIndex remembers each item's source bit depth between load and
// persist, which may run on different workers.
type depthIndex struct {
	mu     sync.Mutex
	depths map[string]int
}

func newDepthIndex() *depthIndex {
	return &depthIndex{depths: make(map[string]int)}
}

func (d *depthIndex) set(name string, depth int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.depths[name] = depth
}

func (d *depthIndex) get(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.depths[name]
}
