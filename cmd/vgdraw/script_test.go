package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/vgcore"
	"honnef.co/go/vgcore/shape"
)

const sampleScript = `
width: 400
height: 300
steps:
  - command: rect
    events:
      - {op: down, at: [100, 100]}
      - {op: move, at: [150, 140]}
      - {op: up, at: [200, 180]}
  - command: line
    options: {points: [0, 0, 30, 20], lineWidth: 0.5}
  - command: lines
    events:
      - {op: down, at: [50, 250]}
      - {op: move, at: [120, 260]}
      - {op: up, at: [120, 260]}
      - {op: down, at: [60, 180]}
      - {op: up, at: [60, 180]}
      - {op: cancel}
`

func loadTestConfig(t *testing.T) *vgcore.Config {
	t.Helper()
	cfg, err := vgcore.Load()
	require.NoError(t, err)
	return cfg
}

func TestRunScript(t *testing.T) {
	sc, err := readScript(strings.NewReader(sampleScript))
	require.NoError(t, err)
	assert.Equal(t, 400, sc.Width)
	require.Len(t, sc.Steps, 3)

	s, err := sc.run(loadTestConfig(t), nil)
	require.NoError(t, err)
	require.Equal(t, 3, s.Shapes.Len())

	var kinds []shape.Kind
	for e := range s.Shapes.All() {
		kinds = append(kinds, e.Kind())
	}
	assert.Equal(t, []shape.Kind{shape.KindRect, shape.KindLine, shape.KindLines}, kinds)
	assert.InDelta(t, 0.5, s.Shapes.At(1).Context().LineWidth, 1e-9)

	var buf bytes.Buffer
	require.NoError(t, printInfo(&buf, s.Shapes))
	out := buf.String()
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "rect")
	assert.Contains(t, out, "lines")

	buf.Reset()
	require.NoError(t, printSVG(&buf, s.Shapes, 2))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Contains(t, line, "\tM")
	}
}

func TestRunScriptWithoutOptions(t *testing.T) {
	sc, err := readScript(strings.NewReader(`
steps:
  - command: line
    events:
      - {op: down, at: [10, 10]}
      - {op: move, at: [60, 40]}
      - {op: up, at: [90, 70]}
`))
	require.NoError(t, err)
	s, err := sc.run(loadTestConfig(t), nil)
	require.NoError(t, err)
	require.Equal(t, 1, s.Shapes.Len())
	assert.Equal(t, shape.KindLine, s.Shapes.Head().Kind())
}

func TestReadScriptErrors(t *testing.T) {
	_, err := readScript(strings.NewReader("width: 400\n"))
	assert.ErrorIs(t, err, errNoSteps)

	_, err = readScript(strings.NewReader("width: 0\nsteps: [{command: rect}]\n"))
	assert.Error(t, err)

	sc, err := readScript(strings.NewReader("steps: [{command: teapot}]\n"))
	require.NoError(t, err)
	_, err = sc.run(loadTestConfig(t), nil)
	assert.Error(t, err)

	sc, err = readScript(strings.NewReader("steps: [{command: rect, events: [{op: jump}]}]\n"))
	require.NoError(t, err)
	_, err = sc.run(loadTestConfig(t), nil)
	assert.ErrorContains(t, err, "unknown op")
}

func TestOptionsDocument(t *testing.T) {
	doc, err := optionsDocument(nil)
	require.NoError(t, err)
	// assert.Nil also accepts a nil pointer inside the interface.
	assert.True(t, doc == nil, "got %#v", doc)

	doc, err = optionsDocument(map[string]any{
		"radius": 2.5,
		"pttype": 3,
		"locked": true,
		"points": []any{1, 2.5},
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, doc.ReadFloat("radius", 0), 1e-9)
	assert.Equal(t, 3, doc.ReadInt("pttype", 0))
	assert.True(t, doc.ReadBool("locked", false))
	vals := make([]float64, 2)
	assert.Equal(t, 2, doc.ReadFloatArray("points", vals))
	assert.Equal(t, []float64{1, 2.5}, vals)

	_, err = optionsDocument(map[string]any{"points": []any{"a"}})
	assert.Error(t, err)
}

func TestRenderWritesFiles(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "script.yaml")
	require.NoError(t, os.WriteFile(name, []byte(sampleScript), 0o644))

	flags := renderFlags{
		out: filepath.Join(dir, "out.png"),
		doc: filepath.Join(dir, "doc.yaml"),
	}
	require.NoError(t, render(loadTestConfig(t), name, flags))

	f, err := os.Open(flags.out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())

	l, err := loadList(flags.doc)
	require.NoError(t, err)
	assert.Equal(t, 3, l.Len())

	// the saved shapes can be the base of another run
	flags.base, flags.doc = flags.doc, filepath.Join(dir, "doc2.yaml")
	require.NoError(t, render(loadTestConfig(t), name, flags))
	l, err = loadList(flags.doc)
	require.NoError(t, err)
	assert.Equal(t, 6, l.Len())
}
