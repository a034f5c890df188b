// Package lexer turns brack source text into classified tokens.
//
// Lexing happens in two stages. The Scanner splits a byte stream into raw
// SourceSpans (lexemes with their starting position) and the Classifier
// assigns a TokenKind to every span using the bracket nesting context.
package lexer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	m "brack.dev/pkg/brack/internal/model"
)

// DefaultMaxLexemeLength is the longest lexeme accepted by the scanner.
const DefaultMaxLexemeLength = 1024

var (
	// ErrLexemeTooLong is returned when a lexeme exceeds the configured limit.
	ErrLexemeTooLong = errors.New("lexeme is too long")
	// ErrInvalidEscape is returned for a malformed \x escape sequence.
	ErrInvalidEscape = errors.New("invalid escape sequence")
)

// FatalError is an unrecoverable scanning failure. The pass stops and no
// tokens are produced for the unit.
type FatalError struct {
	Diagnostic m.Diagnostic
	Err        error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Diagnostic.Position, e.Diagnostic.Message)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Option configures the scanner.
type Option func(*config)

type config struct {
	maxLexeme int
}

// WithMaxLexemeLength overrides DefaultMaxLexemeLength. Values below 2 are ignored.
func WithMaxLexemeLength(n int) Option {
	return func(c *config) {
		if n > 1 {
			c.maxLexeme = n
		}
	}
}

func newConfig(opts []Option) config {
	c := config{maxLexeme: DefaultMaxLexemeLength}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// Scanner splits a byte stream into raw spans.
type Scanner struct {
	in       io.ByteReader
	filename string
	cfg      config

	buf   []byte
	start m.FilePosition // position of buf[0]
	line  int
	col   int

	spans []m.SourceSpan
}

// NewScanner creates a scanner reading from in.
func NewScanner(in io.ByteReader, filename string, opts ...Option) *Scanner {
	cfg := newConfig(opts)

	return &Scanner{
		in:       in,
		filename: filename,
		cfg:      cfg,
		buf:      make([]byte, 0, 64),
		line:     1,
	}
}

// Scan reads the whole stream and returns the spans in source order.
func Scan(in io.ByteReader, filename string, opts ...Option) ([]m.SourceSpan, error) {
	return NewScanner(in, filename, opts...).Scan()
}

// Scan reads until the end of the stream.
func (s *Scanner) Scan() ([]m.SourceSpan, error) {
	for {
		chr, ok, err := s.read()
		if err != nil {
			return nil, err
		}

		if !ok {
			break
		}

		if err := s.step(chr); err != nil {
			return nil, err
		}
	}

	s.flush()

	return s.spans, nil
}

func (s *Scanner) step(chr byte) error {
	switch chr {
	case '\n':
		s.flush()
		s.newline()

		return nil
	case ' ', '\t', '\r':
		s.flush()
		return nil
	case '[', ']':
		s.flush()
		s.emit(string(chr), s.pos())

		return nil
	case '"', '\'':
		if len(s.buf) != 0 {
			return s.append(chr)
		}

		return s.readQuote(chr)
	case '/':
		if len(s.buf) == 0 || s.buf[len(s.buf)-1] != '/' {
			return s.append(chr)
		}

		return s.readLineComment()
	case '*':
		if len(s.buf) == 0 || s.buf[len(s.buf)-1] != '/' {
			return s.append(chr)
		}

		return s.readBlockComment()
	default:
		return s.append(chr)
	}
}

// read returns the next byte; ok is false at the end of the stream.
func (s *Scanner) read() (byte, bool, error) {
	chr, err := s.in.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}

		return 0, false, fmt.Errorf("read %s: %w", s.filename, err)
	}

	s.col++

	return chr, true, nil
}

func (s *Scanner) pos() m.FilePosition {
	return m.NewPosition(s.filename, s.line, s.col)
}

func (s *Scanner) newline() {
	s.line++
	s.col = 0
}

func (s *Scanner) append(chr byte) error {
	if len(s.buf) == 0 {
		s.start = s.pos()
	}

	if len(s.buf) >= s.cfg.maxLexeme {
		return s.fatal(ErrLexemeTooLong, fmt.Sprintf("token is too long, max size is %d", s.cfg.maxLexeme),
			"split the token or raise lexer.max_lexeme")
	}

	s.buf = append(s.buf, chr)

	return nil
}

func (s *Scanner) emit(text string, pos m.FilePosition) {
	s.spans = append(s.spans, m.SourceSpan{Text: text, Position: pos})
}

// flush emits the accumulated buffer as a span.
func (s *Scanner) flush() {
	if len(s.buf) == 0 {
		return
	}

	s.emit(string(s.buf), s.start)
	s.buf = s.buf[:0]
}

// flushWithoutSlash emits the buffer minus its trailing '/', which starts a comment.
func (s *Scanner) flushWithoutSlash() {
	s.buf = s.buf[:len(s.buf)-1]
	s.flush()
}

func (s *Scanner) fatal(err error, message, help string) error {
	text := string(s.buf)
	if len(text) > 32 {
		text = text[:32] + "..."
	}

	slog.Error("scanner failure", "file", s.filename, "line", s.line, "column", s.col, "error", err)

	return &FatalError{
		Diagnostic: m.Diagnostic{
			Level:    m.LevelError,
			Position: s.start,
			Text:     text,
			Message:  message,
			Help:     help,
		},
		Err: err,
	}
}

func (s *Scanner) readLineComment() error {
	s.flushWithoutSlash()

	s.start = m.NewPosition(s.filename, s.line, s.col-1)
	s.buf = append(s.buf, '/', '/')

	for {
		chr, ok, err := s.read()
		if err != nil {
			return err
		}

		if !ok {
			s.flush()
			return nil
		}

		if err := s.append(chr); err != nil {
			return err
		}

		if chr == '\n' {
			s.flush()
			s.newline()

			return nil
		}
	}
}

func (s *Scanner) readBlockComment() error {
	s.flushWithoutSlash()

	s.start = m.NewPosition(s.filename, s.line, s.col-1)
	s.buf = append(s.buf, '/', '*')

	for {
		chr, ok, err := s.read()
		if err != nil {
			return err
		}

		if !ok {
			s.flushUnclosed()
			return nil
		}

		if err := s.append(chr); err != nil {
			return err
		}

		if chr == '\n' {
			s.newline()
		}

		// "/*/" is a complete comment: the '*' of the opener also closes it.
		if chr == '/' && s.buf[len(s.buf)-2] == '*' {
			s.flush()
			return nil
		}
	}
}

func (s *Scanner) flushUnclosed() {
	s.flush()
	s.spans[len(s.spans)-1].Unclosed = true
}

// readQuote reads a quoted literal. The delimiters are part of the span and
// escape sequences are resolved in place.
func (s *Scanner) readQuote(quote byte) error {
	s.start = s.pos()
	s.buf = append(s.buf, quote)

	for {
		chr, ok, err := s.read()
		if err != nil {
			return err
		}

		if !ok {
			s.flushUnclosed()
			return nil
		}

		if chr == quote {
			if err := s.append(chr); err != nil {
				return err
			}

			s.flush()

			return nil
		}

		if chr == '\n' {
			s.newline()
		}

		if chr != '\\' {
			if err := s.append(chr); err != nil {
				return err
			}

			continue
		}

		closed, err := s.readEscape()
		if err != nil {
			return err
		}

		if !closed {
			s.flushUnclosed()
			return nil
		}
	}
}

// readEscape resolves the sequence after a backslash. It returns false when
// the stream ended inside the sequence.
func (s *Scanner) readEscape() (bool, error) {
	chr, ok, err := s.read()
	if err != nil {
		return false, err
	}

	if !ok {
		return false, s.append('\\')
	}

	switch chr {
	case '0':
		return true, s.append(0)
	case 'n':
		return true, s.append('\n')
	case 'r':
		return true, s.append('\r')
	case 't':
		return true, s.append('\t')
	case 'x':
		return s.readHexEscape()
	default:
		if chr == '\n' {
			s.newline()
		}

		return true, s.append(chr)
	}
}

func (s *Scanner) readHexEscape() (bool, error) {
	var hex [2]byte

	for i := range hex {
		chr, ok, err := s.read()
		if err != nil {
			return false, err
		}

		if !ok {
			if err := s.append('x'); err != nil {
				return false, err
			}

			for _, h := range hex[:i] {
				if err := s.append(h); err != nil {
					return false, err
				}
			}

			return false, nil
		}

		hex[i] = chr
	}

	value, err := strconv.ParseUint(string(hex[:]), 16, 8)
	if err != nil {
		return false, s.fatal(ErrInvalidEscape, fmt.Sprintf("invalid escape sequence \\x%s", hex[:]),
			"\\x must be followed by exactly two hexadecimal digits")
	}

	return true, s.append(byte(value))
}
