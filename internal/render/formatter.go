// # internal/render/formatter.go
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dora/internal/resolver"
	"dora/internal/traverse"
)

// ColorMode controls ANSI styling of the output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

var (
	exprStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	originStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Formatter renders results as location-anchored blocks: a path:line:col
// header, the expression annotated with its kind and origin, a caret line and
// the source line with the expression highlighted.
type Formatter struct {
	out   io.Writer
	color bool
}

func NewFormatter(out io.Writer, mode ColorMode) *Formatter {
	return &Formatter{out: out, color: useColor(out, mode)}
}

// useColor decides styling from the mode and, for auto, from whether the
// writer is a terminal.
func useColor(out io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func (f *Formatter) WriteResults(results []traverse.Result) {
	for _, res := range results {
		f.writeResult(res)
	}
}

func (f *Formatter) writeResult(res traverse.Result) {
	occ := res.Occurrence
	fmt.Fprintf(f.out, "%s:%d:%d\n", occ.File, occ.Line, occ.Column)

	padding := strings.Repeat(" ", occ.Column)
	expr := exprText(occ.SourceLine, occ.Column, occ.EndColumn)

	header := fmt.Sprintf("%s%s (%s)", padding, f.styled(exprStyle, expr), occ.Kind)
	if label := originLabel(res.Origin); label != "" {
		header += " from " + f.styled(originStyle, label)
	}
	fmt.Fprintln(f.out, header)

	if pkg := res.Origin.PackageInfo(); pkg != nil && pkg.Name != "" && pkg.Description != "" {
		fmt.Fprintf(f.out, "%s└─ %s: %s\n", padding, pkg.Name, pkg.Description)
	}

	fmt.Fprintf(f.out, "%sv\n", padding)
	fmt.Fprintln(f.out, f.highlightLine(occ.SourceLine, occ.Column, occ.EndColumn))
	fmt.Fprintln(f.out)
}

// originLabel is the display form of an origin: local files show as their
// base name, packages as their package name.
func originLabel(origin *resolver.Origin) string {
	if origin == nil {
		return ""
	}
	if origin.Kind == resolver.OriginLocal {
		return filepath.Base(origin.Path)
	}
	return origin.Label()
}

// exprText slices the expression out of the source line by byte columns.
func exprText(line string, col, end int) string {
	if col < 0 || col > len(line) {
		return ""
	}
	if end <= col || end > len(line) {
		return line[col:]
	}
	return line[col:end]
}

func (f *Formatter) highlightLine(line string, col, end int) string {
	if !f.color || col < 0 || col > len(line) {
		return line
	}
	expr := exprText(line, col, end)
	return line[:col] + highlightStyle.Render(expr) + line[col+len(expr):]
}

func (f *Formatter) styled(style lipgloss.Style, text string) string {
	if !f.color {
		return text
	}
	return style.Render(text)
}
