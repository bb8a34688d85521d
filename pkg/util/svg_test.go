package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testsvg = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="101.5mm" height="40" xmlns="http://www.w3.org/2000/svg" version="1.1">
<g id="group">
<circle cx="0.0" cy="0.0" r="50.0" stroke="#f1f3f5"/>
<path id="test_path_1" d="M 0,0 C 2,0 8,0 10,0" stroke="#f1f3f5"/>
<path id="test_path_2" d="M 5,5 L 6,6 L 7,5"/>
<path id="broken" d="Q 1,2 3,4"/>
</g>
</svg>
`

func TestNewSVGFromContent(t *testing.T) {
	svg, err := NewSVGFromContent("test_svg", testsvg)
	require.NoError(t, err)

	assert.Equal(t, "test_svg", svg.Name)
	assert.Equal(t, 101.5, svg.Width)
	assert.Equal(t, 40.0, svg.Height)
	require.Equal(t, 2, svg.Paths.NumPaths())
	assert.Equal(t, "test_path_1", svg.Paths.Paths[0].ID)
	assert.Equal(t, "M 5,5 L 6,6 L 7,5", svg.Paths.Paths[1].CommandsStr)
	assert.Equal(t, "#f1f3f5", svg.Style.Stroke)
}

func TestNewSVGFromContentWithoutPaths(t *testing.T) {
	_, err := NewSVGFromContent("empty", `<svg width="10" height="10"><circle r="2"/></svg>`)
	assert.Error(t, err)

	_, err = NewSVGFromContent("none", `just text`)
	assert.Error(t, err)
}

func TestSVGRoundTrip(t *testing.T) {
	svg := NewBlankSVG(200, 50)
	svg.Style = PathTagOptions{Stroke: "blue", StrokeWidth: 2}
	d := SmoothPath([]Point{Pt(0, 50), Pt(100, 0), Pt(200, 25)}, 0.2)
	require.NoError(t, svg.AddPathData("curve", d))
	assert.Error(t, svg.AddPathData("bad", "nonsense"))

	out := svg.ToSVG()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `width="200" height="50" viewBox="0 0 200 50"`)
	assert.Contains(t, out, `stroke="blue" stroke-width="2"`)

	parsed, err := NewSVGFromContent("again", out)
	require.NoError(t, err)
	require.Equal(t, 1, parsed.Paths.NumPaths())
	assert.Equal(t, d, parsed.Paths.Paths[0].CommandsStr)
	assert.Equal(t, "curve", parsed.Paths.Paths[0].ID)
}

func TestSVGViewBoxOrigin(t *testing.T) {
	svg := NewBlankSVG(40, 35)
	svg.MinX, svg.MinY = -50, -40
	require.NoError(t, svg.AddPathData("curve", "M -50,-40 L -10,-5"))

	out := svg.ToSVG()
	assert.Contains(t, out, `width="40" height="35" viewBox="-50 -40 40 35"`)

	parsed, err := NewSVGFromContent("again", out)
	require.NoError(t, err)
	assert.Equal(t, -50.0, parsed.MinX)
	assert.Equal(t, -40.0, parsed.MinY)
	assert.Equal(t, 40.0, parsed.Width)
}

func TestSVGFiles(t *testing.T) {
	dir := t.TempDir()
	svg := NewBlankSVG(30, 30)
	require.NoError(t, svg.AddPathData("line", "M 0,0 L 30,30"))

	plain := filepath.Join(dir, "plain.svg")
	compressed := filepath.Join(dir, "chart.svg.br")
	require.NoError(t, svg.ToSVGFile(plain))
	require.NoError(t, svg.ToSVGFile(compressed))

	raw, err := os.ReadFile(compressed)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "<svg")

	for name, path := range map[string]string{"plain": plain, "chart": compressed} {
		back, err := ReadSVGFile(path)
		require.NoError(t, err, path)
		assert.Equal(t, name, back.Name)
		assert.Equal(t, 30.0, back.Width)
		require.Equal(t, 1, back.Paths.NumPaths())
		assert.Equal(t, "M 0,0 L 30,30", back.Paths.Paths[0].CommandsStr)
	}

	_, err = ReadSVGFile(filepath.Join(dir, "missing.svg"))
	assert.Error(t, err)
}

func TestBrotliHelpers(t *testing.T) {
	assert.True(t, IsCompressedName("a.SVG.BR"))
	assert.False(t, IsCompressedName("a.svg"))

	data := []byte(strings.Repeat("C 1,2 3,4 5,6 ", 100))
	packed, err := CompressBrotli(data)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(data))

	path := filepath.Join(t.TempDir(), "data.br")
	require.NoError(t, WriteFile(path, data))
	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, back)
}
