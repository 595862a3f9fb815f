// Package report renders experiment results for the terminal, markdown viewers and browsers.
package report

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"abtest/domain/experiment"
	"abtest/internal/errors"
)

// Format selects the report layout
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ColorMode controls terminal styling of the text report
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatMarkdown, FormatHTML:
		return Format(s), nil
	case "":
		return FormatText, nil
	}
	return "", errors.InvalidInputf("unknown report format %q (want text, markdown or html)", s)
}

// ParseColorMode validates a color mode name
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case ColorAuto, ColorAlways, ColorNever:
		return ColorMode(s), nil
	case "":
		return ColorAuto, nil
	}
	return "", errors.InvalidInputf("unknown color mode %q (want auto, always or never)", s)
}

// Writer renders RunReports to one destination
type Writer struct {
	out    io.Writer
	format Format
	styles *styles
}

// NewWriter creates a report writer for out. Color only applies to the text format.
func NewWriter(out io.Writer, format Format, color ColorMode) *Writer {
	w := &Writer{out: out, format: format}
	if format == FormatText && useColor(out, color) {
		w.styles = newStyles(out)
	}
	return w
}

// Write renders the report
func (w *Writer) Write(r *experiment.RunReport) error {
	var err error
	switch w.format {
	case FormatText, "":
		err = writeText(w.out, r, w.styles)
	case FormatMarkdown:
		_, err = w.out.Write(Markdown(r))
	case FormatHTML:
		_, err = w.out.Write(HTML(r))
	default:
		return errors.InvalidInputf("unknown report format %q", w.format)
	}
	return errors.Wrap(err, "failed to write report")
}

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
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// styles colours the verdict lines
type styles struct {
	reject lipgloss.Style
	retain lipgloss.Style
	header lipgloss.Style
}

func newStyles(out io.Writer) *styles {
	r := lipgloss.NewRenderer(out)
	// Colour was requested or detected; keep ANSI output on pipes too
	r.SetColorProfile(termenv.ANSI256)
	return &styles{
		reject: r.NewStyle().Foreground(lipgloss.Color("#2CD7C7")).Bold(true),
		retain: r.NewStyle().Foreground(lipgloss.Color("#F4D03F")),
		header: r.NewStyle().Bold(true),
	}
}

func (s *styles) verdict(d experiment.Decision, line string) string {
	if s == nil {
		return line
	}
	if d.Outcome == experiment.Reject {
		return s.reject.Render(line)
	}
	return s.retain.Render(line)
}

func (s *styles) heading(line string) string {
	if s == nil {
		return line
	}
	return s.header.Render(line)
}
