package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Level is the severity of a diagnostic.
type Level int

const (
	// LevelError makes the result of a phase unusable.
	LevelError Level = iota
	// LevelWarning reports a suspicious but accepted construct.
	LevelWarning
	// LevelInfo is purely informational.
	LevelInfo
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	default:
		return "message"
	}
}

// ParseLevel converts a level name back to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "info":
		return LevelInfo, nil
	}

	return LevelError, fmt.Errorf("unknown diagnostic level %q", s)
}

// MarshalYAML implements yaml.Marshaler.
func (l Level) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Level) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseLevel(value.Value)
	if err != nil {
		return err
	}

	*l = parsed

	return nil
}

// Diagnostic describes a problem found in the source. Text is the offending
// source text (a raw span or a rendered token).
type Diagnostic struct {
	Level    Level        `yaml:"level"`
	Position FilePosition `yaml:"position"`
	Text     string       `yaml:"text"`
	Message  string       `yaml:"message"`
	Help     string       `yaml:"help"`
}

// SpanDiagnostic creates a diagnostic located at a raw span.
func SpanDiagnostic(level Level, span SourceSpan, message, help string) Diagnostic {
	return Diagnostic{
		Level:    level,
		Position: span.Position,
		Text:     span.Text,
		Message:  message,
		Help:     help,
	}
}

// TokenDiagnostic creates a diagnostic located at a token.
func TokenDiagnostic(level Level, token Token, message, help string) Diagnostic {
	return Diagnostic{
		Level:    level,
		Position: token.Position,
		Text:     token.String(),
		Message:  message,
		Help:     help,
	}
}

// Error implements error so a single diagnostic can be propagated.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Position, d.Level, d.Message)
}

// Diagnostics is an ordered list of diagnostics.
type Diagnostics []Diagnostic

// Add appends a diagnostic.
func (ds *Diagnostics) Add(d Diagnostic) {
	*ds = append(*ds, d)
}

// Count returns the number of diagnostics with the given level.
func (ds Diagnostics) Count(level Level) int {
	n := 0

	for _, d := range ds {
		if d.Level == level {
			n++
		}
	}

	return n
}

// HasErrors reports whether any diagnostic has LevelError.
func (ds Diagnostics) HasErrors() bool {
	return ds.Count(LevelError) > 0
}

// Messages returns the messages in order.
func (ds Diagnostics) Messages() []string {
	msgs := make([]string, 0, len(ds))
	for _, d := range ds {
		msgs = append(msgs, d.Message)
	}

	return msgs
}
