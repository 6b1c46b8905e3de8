// Package pointset reads control-point correspondence files for the CLI.
// A file holds two parallel arrays of [x, y] pairs: source points and the
// destination points they should move to.
package pointset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/mlswarp/internal/mls"
)

// Set holds a validated control-point correspondence.
type Set struct {
	Source      []mls.Point
	Destination []mls.Point
}

// fileSchema is the on-disk layout, YAML or JSON:
//
//	scale: 0.5          # optional, applied to both sets
//	source: [[0, 0], [10, 0], [0, 10]]
//	destination: [[2, 1], [12, 0], [0, 11]]
type fileSchema struct {
	Scale       float64     `yaml:"scale" json:"scale"`
	Source      [][]float32 `yaml:"source" json:"source"`
	Destination [][]float32 `yaml:"destination" json:"destination"`
}

// Load reads and validates a correspondence file. The format is chosen by
// extension: .json parses as JSON, everything else as YAML.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-provided points file path is expected
	if err != nil {
		return nil, fmt.Errorf("reading points file: %w", err)
	}
	set, err := Parse(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("points file %s: %w", path, err)
	}
	return set, nil
}

// Parse decodes a correspondence document. ext selects the decoder the
// same way Load does.
func Parse(data []byte, ext string) (*Set, error) {
	var raw fileSchema
	var err error
	if ext == ".json" {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	return build(raw)
}

func build(raw fileSchema) (*Set, error) {
	if len(raw.Source) == 0 {
		return nil, errors.New("no source control points")
	}
	if len(raw.Source) != len(raw.Destination) {
		return nil, fmt.Errorf("control point count mismatch: %d source vs %d destination",
			len(raw.Source), len(raw.Destination))
	}
	scale := float32(raw.Scale)
	if raw.Scale == 0 {
		scale = 1
	}
	src, err := toPoints(raw.Source, "source", scale)
	if err != nil {
		return nil, err
	}
	dst, err := toPoints(raw.Destination, "destination", scale)
	if err != nil {
		return nil, err
	}
	return &Set{Source: src, Destination: dst}, nil
}

func toPoints(pairs [][]float32, name string, scale float32) ([]mls.Point, error) {
	pts := make([]mls.Point, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%s[%d]: expected [x, y], got %d values", name, i, len(pair))
		}
		pts[i] = mls.Point{X: pair[0] * scale, Y: pair[1] * scale}
	}
	return pts, nil
}
