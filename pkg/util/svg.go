package util

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/richard-senior/smoothcurve/internal/logger"
)

///////////////////////////////////////////////////////////////////////////////
/// PATHS
///////////////////////////////////////////////////////////////////////////////

// Holds information about paths, which is an array of Path structures
type Paths struct {
	Paths []*Path
}

func NewPaths(paths ...*Path) *Paths {
	ret := &Paths{Paths: []*Path{}}
	ret.Paths = append(ret.Paths, paths...)
	return ret
}

func (p *Paths) NumPaths() int {
	if p == nil {
		return 0
	}
	return len(p.Paths)
}

func (p *Paths) AddPath(path *Path) {
	p.Paths = append(p.Paths, path)
}

// Renders all paths to a linebreak delimited string of SVG <path> tags
func (p *Paths) ToSVG(opts PathTagOptions) string {
	var sb strings.Builder
	for _, path := range p.Paths {
		sb.WriteString(path.ToPathTag(opts))
		sb.WriteString("\n")
	}
	return sb.String()
}

///////////////////////////////////////////////////////////////////////////////
/// SVG
///////////////////////////////////////////////////////////////////////////////

const SvgHeader string = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%s" height="%s" viewBox="%s %s %s %s"
	version="1.1"
	xmlns="http://www.w3.org/2000/svg">
`
const SvgFooter string = `</svg>
`

// An object for holding, parsing and writing SVG files.
// We are interested only in Path primitives.
type SVG struct {
	Name          string
	Width, Height float64
	// MinX and MinY are the user space origin of the viewBox
	MinX, MinY float64
	Paths         *Paths
	Style         PathTagOptions
}

func NewBlankSVG(width, height float64) *SVG {
	return &SVG{
		Name:   "blank",
		Width:  width,
		Height: height,
		Paths:  NewPaths(),
	}
}

// AddPathData parses d and appends it as a path with the given id
func (s *SVG) AddPathData(id, d string) error {
	path, err := ParsePath(d)
	if err != nil {
		return err
	}
	path.ID = id
	s.Paths.AddPath(path)
	return nil
}

func (s *SVG) ToSVG() string {
	w, h := FormatNumber(s.Width), FormatNumber(s.Height)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(SvgHeader, w, h, FormatNumber(s.MinX), FormatNumber(s.MinY), w, h))
	sb.WriteString(s.Paths.ToSVG(s.Style))
	sb.WriteString(SvgFooter)
	return sb.String()
}

// ToSVGFile writes the document, brotli compressed when filePath ends in .br
func (s *SVG) ToSVGFile(filePath string) error {
	return WriteFile(filePath, []byte(s.ToSVG()))
}

// ReadSVGFile reads an SVG file, plain or .br compressed, and parses its paths
func ReadSVGFile(filePath string) (*SVG, error) {
	content, err := ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(filePath)
	name = strings.TrimSuffix(name, BrotliExt)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return NewSVGFromContent(name, string(content))
}

// Converts the given svg file content into an SVG holding every parseable <path>
func NewSVGFromContent(name string, svgContent string) (*SVG, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(svgContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG content: %w", err)
	}

	root := doc.Find("svg").First()
	if root.Length() == 0 {
		return nil, fmt.Errorf("no <svg> element found")
	}

	ret := NewBlankSVG(dimension(root, "width"), dimension(root, "height"))
	ret.Name = name
	// the html parser may hand back the attribute lowercased
	vb, ok := root.Attr("viewBox")
	if !ok {
		vb, ok = root.Attr("viewbox")
	}
	if ok {
		ret.MinX, ret.MinY = viewBoxOrigin(vb)
	}

	root.Find("path").Each(func(_ int, sel *goquery.Selection) {
		d, ok := sel.Attr("d")
		if !ok {
			return
		}
		id, _ := sel.Attr("id")
		if err := ret.AddPathData(id, d); err != nil {
			// keep going, one bad path should not lose the others
			logger.Warn("Failed to parse path tag:", err)
			return
		}
		if stroke, ok := sel.Attr("stroke"); ok && ret.Style.Stroke == "" {
			ret.Style.Stroke = stroke
		}
	})

	if ret.Paths.NumPaths() == 0 {
		return nil, fmt.Errorf("failed to parse any valid paths from SVG content")
	}
	return ret, nil
}

// dimension reads a numeric attribute, ignoring any unit suffix
func dimension(sel *goquery.Selection, attr string) float64 {
	v, ok := sel.Attr(attr)
	if !ok {
		return 0
	}
	v = strings.TrimRight(strings.TrimSpace(v), "abcdefghijklmnopqrstuvwxyz%")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// viewBoxOrigin reads the min-x and min-y of a viewBox attribute
func viewBoxOrigin(vb string) (float64, float64) {
	fields := strings.FieldsFunc(vb, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 4 {
		return 0, 0
	}
	x, errX := strconv.ParseFloat(fields[0], 64)
	y, errY := strconv.ParseFloat(fields[1], 64)
	if errX != nil || errY != nil {
		return 0, 0
	}
	return x, y
}
