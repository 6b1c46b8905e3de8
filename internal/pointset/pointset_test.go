package pointset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/mlswarp/internal/mls"
)

func TestParseYAML(t *testing.T) {
	doc := []byte(`
source:
  - [0, 0]
  - [10, 0]
  - [0, 10]
destination:
  - [1, 2]
  - [11, 1]
  - [2, 12]
`)
	set, err := Parse(doc, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, []mls.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}, set.Source)
	assert.Equal(t, []mls.Point{{X: 1, Y: 2}, {X: 11, Y: 1}, {X: 2, Y: 12}}, set.Destination)
}

func TestParseJSON(t *testing.T) {
	doc := []byte(`{"source": [[0, 0], [4, 4]], "destination": [[1, 1], [5, 5]]}`)
	set, err := Parse(doc, ".json")
	require.NoError(t, err)
	assert.Equal(t, []mls.Point{{X: 0, Y: 0}, {X: 4, Y: 4}}, set.Source)
	assert.Equal(t, []mls.Point{{X: 1, Y: 1}, {X: 5, Y: 5}}, set.Destination)
}

func TestParseScale(t *testing.T) {
	doc := []byte(`
scale: 0.5
source: [[10, 20]]
destination: [[30, 40]]
`)
	set, err := Parse(doc, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, mls.Point{X: 5, Y: 10}, set.Source[0])
	assert.Equal(t, mls.Point{X: 15, Y: 20}, set.Destination[0])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty source", `{"source": [], "destination": []}`},
		{"length mismatch", `{"source": [[0, 0], [1, 1]], "destination": [[0, 0]]}`},
		{"bad pair arity", `{"source": [[0, 0, 0]], "destination": [[1, 1]]}`},
		{"not a document", `]]]`},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.doc), ".json")
		assert.Error(t, err, tt.name)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: [[0, 0], [2, 2]]\ndestination: [[1, 0], [3, 2]]\n"), 0o600))

	set, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, set.Source, 2)
	assert.Len(t, set.Destination, 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
