package lexer

import (
	"io"
	"log/slog"

	m "brack.dev/pkg/brack/internal/model"
)

// Lex scans and classifies the stream. Diagnostics never stop the pass;
// the returned error is either a *FatalError or a read failure, in which
// case no tokens are returned.
func Lex(in io.ByteReader, filename string, opts ...Option) ([]m.Token, m.Diagnostics, error) {
	spans, err := Scan(in, filename, opts...)
	if err != nil {
		return nil, nil, err
	}

	tokens, diags := Classify(spans)

	slog.Debug("lexed unit", "file", filename, "spans", len(spans), "tokens", len(tokens), "diagnostics", len(diags))

	return tokens, diags, nil
}

// Classify runs a fresh Classifier over spans.
func Classify(spans []m.SourceSpan) ([]m.Token, m.Diagnostics) {
	c := NewClassifier()
	for _, span := range spans {
		c.Classify(span)
	}

	return c.Finish()
}
