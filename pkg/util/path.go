package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
/// PATH ASSEMBLY
///////////////////////////////////////////////////////////////////////////////

// Command produces the path command that draws up to pts[i]
type Command func(point Point, i int, pts []Point, smoothing float64) string

// SvgPath builds the d attribute for pts: a move to the first point followed
// by one command per subsequent point, separated by single spaces.
// An empty slice gives an empty string.
func SvgPath(pts []Point, command Command, smoothing float64) string {
	if len(pts) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("M ")
	sb.WriteString(pts[0].String())
	for i := 1; i < len(pts); i++ {
		sb.WriteByte(' ')
		sb.WriteString(command(pts[i], i, pts, smoothing))
	}
	return sb.String()
}

// SmoothPath draws a smooth cubic bezier curve through every point in pts
func SmoothPath(pts []Point, smoothing float64) string {
	return SvgPath(pts, BezierCommand, smoothing)
}

// LineCommand draws a straight "L x,y" segment. It ignores smoothing.
func LineCommand(point Point, _ int, _ []Point, _ float64) string {
	return "L " + point.String()
}

///////////////////////////////////////////////////////////////////////////////
/// PATH COMMAND
///////////////////////////////////////////////////////////////////////////////

/**
* A single SVG Path Command (from the d attribute) such as 'M 5.387,5.387' etc.
 */
type PathCommand struct {
	Letter string
	Params []float64
}

var paramSplitter = regexp.MustCompile(`[\s,]+`)

/**
* Creates a new PathCommand from the given cmd string
* @param cmd string the command string such as 'M 6,5' etc
 */
func NewPathCommand(cmd string) (*PathCommand, error) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil, fmt.Errorf("command string cannot be empty")
	}

	letter := cmd[:1]
	if !strings.Contains("MLC", letter) {
		return nil, fmt.Errorf("command letter %s not currently supported", letter)
	}

	var params []float64
	paramsStr := strings.TrimSpace(cmd[1:])
	if paramsStr != "" {
		for _, part := range paramSplitter.Split(paramsStr, -1) {
			val, err := parseNumber(part)
			if err != nil {
				return nil, fmt.Errorf("invalid parameter value: %s", part)
			}
			params = append(params, val)
		}
	}

	want := map[string]int{"M": 2, "L": 2, "C": 6}[letter]
	if len(params) != want {
		return nil, fmt.Errorf("command %s requires exactly %d parameters, got %d", letter, want, len(params))
	}

	return &PathCommand{
		Letter: letter,
		Params: params,
	}, nil
}

// parseNumber accepts everything FormatNumber produces, NaN and Infinity included
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// FinishPoint is the coordinate the pen rests on after this command
func (pc *PathCommand) FinishPoint() Point {
	n := len(pc.Params)
	return Point{X: pc.Params[n-2], Y: pc.Params[n-1]}
}

func (pc *PathCommand) String() string {
	parts := []string{pc.Letter}
	for i := 0; i+1 < len(pc.Params); i += 2 {
		parts = append(parts, Pt(pc.Params[i], pc.Params[i+1]).String())
	}
	return strings.Join(parts, " ")
}

///////////////////////////////////////////////////////////////////////////////
/// PATH
///////////////////////////////////////////////////////////////////////////////

/**
* Represents the information contained in a single SVG '<path>' tag
 */
type Path struct {
	ID          string
	CommandsStr string
	Commands    []*PathCommand
}

var commandRegex = regexp.MustCompile(`([MLHVCSQTAZmlhvcsqtaz])([^MLHVCSQTAZmlhvcsqtaz]*)`)

// ParsePath parses path data made of absolute M, L and C commands
func ParsePath(d string) (*Path, error) {
	p := &Path{CommandsStr: d}
	if err := p.ParsePathCommands(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Path) ParsePathCommands() error {
	if strings.TrimSpace(p.CommandsStr) == "" {
		return fmt.Errorf("Path must have a populated CommandsStr field before this method is called")
	}

	// NaN and Infinity contain command letters, hide them from the splitter
	src := strings.NewReplacer("NaN", "\x00", "Infinity", "\x01").Replace(p.CommandsStr)
	matches := commandRegex.FindAllStringSubmatch(src, -1)
	if len(matches) == 0 {
		return fmt.Errorf("no valid path commands found")
	}

	restore := strings.NewReplacer("\x00", "NaN", "\x01", "Infinity")
	commands := make([]*PathCommand, 0, len(matches))
	for _, match := range matches {
		cmdStr := restore.Replace(match[1] + " " + strings.TrimSpace(match[2]))
		cmd, err := NewPathCommand(cmdStr)
		if err != nil {
			return fmt.Errorf("failed to parse command '%s': %w", cmdStr, err)
		}
		commands = append(commands, cmd)
	}
	if commands[0].Letter != "M" {
		return fmt.Errorf("path data must start with a move command, got %s", commands[0].Letter)
	}
	p.Commands = commands
	return nil
}

// Anchors returns the points the path passes through, in order
func (p *Path) Anchors() []Point {
	ret := make([]Point, 0, len(p.Commands))
	for _, c := range p.Commands {
		ret = append(ret, c.FinishPoint())
	}
	return ret
}

// Segments returns every C command as a CubicBezier starting at the previous anchor
func (p *Path) Segments() []CubicBezier {
	var ret []CubicBezier
	var pen Point
	for _, c := range p.Commands {
		if c.Letter == "C" {
			ret = append(ret, CubicBezier{
				Start:    pen,
				Control1: Pt(c.Params[0], c.Params[1]),
				Control2: Pt(c.Params[2], c.Params[3]),
				End:      Pt(c.Params[4], c.Params[5]),
			})
		}
		pen = c.FinishPoint()
	}
	return ret
}

// PathTagOptions controls the presentation attributes of a rendered <path>
type PathTagOptions struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
}

func (p *Path) ToPathTag(opts PathTagOptions) string {
	if opts.Fill == "" {
		opts.Fill = "none"
	}
	if opts.Stroke == "" {
		opts.Stroke = "grey"
	}
	tag := "<path"
	if p.ID != "" {
		tag += fmt.Sprintf(` id="%s"`, p.ID)
	}
	tag += fmt.Sprintf(` d="%s" fill="%s" stroke="%s"`, p.CommandsStr, opts.Fill, opts.Stroke)
	if opts.StrokeWidth > 0 {
		tag += fmt.Sprintf(` stroke-width="%s"`, FormatNumber(opts.StrokeWidth))
	}
	return tag + " />"
}
