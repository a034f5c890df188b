package controller

import (
	"github.com/charmbracelet/lipgloss"

	m "brack.dev/pkg/brack/internal/model"
)

// Styles colours the rendered output. The zero value renders plain text.
type Styles struct {
	enabled bool
	error   lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	help    lipgloss.Style
	marker  lipgloss.Style
	kind    lipgloss.Style
	muted   lipgloss.Style
}

// NewStyles creates the palette: errors red, warnings magenta, infos cyan
// and help green.
func NewStyles(enabled bool) Styles {
	return Styles{
		enabled: enabled,
		error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		help:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		marker:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		kind:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		muted:   lipgloss.NewStyle().Faint(true),
	}
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}

	return style.Render(text)
}

// Level renders a level name in its colour.
func (s Styles) Level(level m.Level) string {
	switch level {
	case m.LevelError:
		return s.render(s.error, level.String())
	case m.LevelWarning:
		return s.render(s.warning, level.String())
	default:
		return s.render(s.info, level.String())
	}
}

// Help renders a help prefix.
func (s Styles) Help(text string) string {
	return s.render(s.help, text)
}

// Marker renders tree depth markers.
func (s Styles) Marker(text string) string {
	return s.render(s.marker, text)
}

// Kind renders node kind names.
func (s Styles) Kind(text string) string {
	return s.render(s.kind, text)
}

// Muted renders secondary text such as zero counts.
func (s Styles) Muted(text string) string {
	return s.render(s.muted, text)
}
