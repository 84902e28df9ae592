package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Label is the semantic role of a piece of report text
type Label int

const (
	LabelPlain Label = iota
	LabelHeader
	LabelInfo
	LabelReady
	LabelSecure
	LabelCritical
	LabelHigh
	LabelWarning
	LabelTicket
	LabelBold
	LabelScore
)

// Palette
var (
	Magenta = lipgloss.Color("#FF5FFF")
	Cyan    = lipgloss.Color("#5FFFFF")
	Green   = lipgloss.Color("#5FFF5F")
	Yellow  = lipgloss.Color("#FFFF5F")
	Red     = lipgloss.Color("#FF5F5F")
)

// Styler decorates text by label. It holds no global state: every Styler is
// bound to the renderer of its own writer.
type Styler struct {
	styles  map[Label]lipgloss.Style
	unicode bool
}

// NewStyler builds a Styler for w. Colors are dropped when color is false or
// w is not a terminal.
func NewStyler(w io.Writer, color bool) *Styler {
	r := lipgloss.NewRenderer(w)
	if !color || !IsTerminal(w) {
		return NewStylerProfile(w, termenv.Ascii)
	}
	return NewStylerProfile(w, r.ColorProfile())
}

// NewStylerProfile builds a Styler for w that renders with profile p
// regardless of what w is.
func NewStylerProfile(w io.Writer, p termenv.Profile) *Styler {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(p)

	return &Styler{
		unicode: UnicodeTerminal(w),
		styles: map[Label]lipgloss.Style{
			LabelHeader:   r.NewStyle().Foreground(Magenta).Bold(true),
			LabelInfo:     r.NewStyle().Foreground(Cyan),
			LabelReady:    r.NewStyle().Foreground(Green),
			LabelSecure:   r.NewStyle().Foreground(Green),
			LabelCritical: r.NewStyle().Foreground(Red).Bold(true),
			LabelHigh:     r.NewStyle().Foreground(Red),
			LabelWarning:  r.NewStyle().Foreground(Yellow),
			LabelTicket:   r.NewStyle().Foreground(Cyan),
			LabelBold:     r.NewStyle().Bold(true),
			LabelScore:    r.NewStyle().Foreground(Yellow).Bold(true),
		},
	}
}

// Plain returns a Styler that never decorates, for tests and piped output
func Plain() *Styler {
	return &Styler{styles: map[Label]lipgloss.Style{}}
}

// Label renders text with the style registered for l
func (s *Styler) Label(l Label, text string) string {
	st, ok := s.styles[l]
	if !ok {
		return text
	}
	return st.Render(text)
}

// Codes returns the escape sequences that open and close the style of l,
// empty when l renders plain.
func (s *Styler) Codes(l Label) (open, close string) {
	st, ok := s.styles[l]
	if !ok {
		return "", ""
	}
	const mark = "~"
	open, close, _ = strings.Cut(st.Render(mark), mark)
	return open, close
}

// Icon returns unicode when the writer can render it, ascii otherwise
func (s *Styler) Icon(unicode, ascii string) string {
	if s.unicode {
		return unicode
	}
	return ascii
}
