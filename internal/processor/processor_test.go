package processor

import (
	"strings"
	"testing"

	"github.com/richard-senior/smoothcurve/internal/config"
	"github.com/richard-senior/smoothcurve/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessRequest(t *testing.T) {
	cfg := config.Default()

	out, err := ProcessRequest([]byte(`{"points":[[0,0],[10,5],[20,0]],"smoothing":0}`), cfg, Options{})
	require.NoError(t, err)
	assert.Equal(t, "M 0,0 C 0,0 10,5 10,5 C 10,5 20,0 20,0\n", string(out))

	out, err = ProcessRequest([]byte(`{"points":[[0,0],[10,5]],"line":true}`), cfg, Options{})
	require.NoError(t, err)
	assert.Equal(t, "M 0,0 L 10,5\n", string(out))

	out, err = ProcessRequest([]byte(`{"points":[]}`), cfg, Options{})
	require.NoError(t, err)
	assert.Equal(t, "\n", string(out))

	_, err = ProcessRequest([]byte(`{"points":`), cfg, Options{})
	assert.Error(t, err)
}

func TestSmoothingPrecedence(t *testing.T) {
	cfg := config.Default()
	cfg.Smoothing = 0.5
	zero := 0.0

	req := &Request{Points: [][2]float64{{0, 0}, {10, 5}, {20, 0}}}
	fromConfig, err := Render(req, cfg, Options{})
	require.NoError(t, err)

	req.Smoothing = &zero
	fromRequest, err := Render(req, cfg, Options{})
	require.NoError(t, err)
	assert.NotEqual(t, fromConfig, fromRequest)

	bad := 2.0
	_, err = Render(req, cfg, Options{Smoothing: &bad})
	assert.Error(t, err)
}

func TestRenderSVG(t *testing.T) {
	req, err := RequestFromArgs([]string{"0,0", " 50, 20", "100,0"})
	require.NoError(t, err)

	out, err := Render(req, config.Default(), Options{SVG: true})
	require.NoError(t, err)
	svg := string(out)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Contains(t, svg, `viewBox="0 0 100 20"`)
	assert.Contains(t, svg, `id="curve" d="M 0,0 C`)

	_, err = Render(&Request{}, config.Default(), Options{SVG: true})
	assert.Error(t, err)
}

func TestRenderSVGNegativePoints(t *testing.T) {
	out, err := ProcessRequest([]byte(`{"points":[[-50,-40],[-10,-5],[-30,-20]]}`), config.Default(), Options{SVG: true})
	require.NoError(t, err)

	svg, err := util.NewSVGFromContent("curve", string(out))
	require.NoError(t, err)
	require.Equal(t, 1, svg.Paths.NumPaths())
	assert.Less(t, svg.MinX, -49.0)
	assert.Less(t, svg.MinY, -39.0)

	const eps = 1e-9
	inside := func(p util.Point) bool {
		return p.X >= svg.MinX-eps && p.X <= svg.MinX+svg.Width+eps &&
			p.Y >= svg.MinY-eps && p.Y <= svg.MinY+svg.Height+eps
	}
	for _, seg := range svg.Paths.Paths[0].Segments() {
		for _, p := range seg.PointaliseByCount(20) {
			assert.True(t, inside(p), "%v outside %v,%v %vx%v", p, svg.MinX, svg.MinY, svg.Width, svg.Height)
		}
	}
}

func TestRenderSVGFlatPoints(t *testing.T) {
	cfg := config.Default()
	out, err := Render(&Request{Points: [][2]float64{{10, 5}}}, cfg, Options{SVG: true})
	require.NoError(t, err)

	svg, err := util.NewSVGFromContent("dot", string(out))
	require.NoError(t, err)
	assert.Equal(t, cfg.Chart.Width, svg.Width)
	assert.Equal(t, cfg.Chart.Height, svg.Height)
	assert.Equal(t, 10-cfg.Chart.Width/2, svg.MinX)
	assert.Equal(t, 5-cfg.Chart.Height/2, svg.MinY)
}

func TestRequestFromArgs(t *testing.T) {
	_, err := RequestFromArgs([]string{"1"})
	assert.Error(t, err)
	_, err = RequestFromArgs([]string{"a,b"})
	assert.Error(t, err)

	req, err := RequestFromArgs(nil)
	require.NoError(t, err)
	assert.Empty(t, req.Points)
}
