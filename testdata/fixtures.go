// Package testdata holds recorded hand landmark traces for replaying the
// detection pipeline without a camera.
package testdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/ayusman/glimmer/internal/detector"
)

//go:embed traces/*.json
var tracesFS embed.FS

type traceFrame struct {
	Hands []detector.HandLandmarks `json:"hands"`
}

// LoadTrace loads a trace by name. Each element is one detection result,
// ready for MockDetector.SetSequence.
func LoadTrace(name string) ([][]detector.HandLandmarks, error) {
	data, err := tracesFS.ReadFile("traces/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("load trace %s: %w", name, err)
	}

	var frames []traceFrame
	if err := json.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("decode trace %s: %w", name, err)
	}

	seq := make([][]detector.HandLandmarks, len(frames))
	for i, f := range frames {
		seq[i] = f.Hands
	}
	return seq, nil
}

// Traces lists the available trace names.
func Traces() ([]string, error) {
	entries, err := tracesFS.ReadDir("traces")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names, nil
}
