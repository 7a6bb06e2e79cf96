package lexer

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/arnavsurve/crux/internal/compiler/token"
	"github.com/arnavsurve/crux/internal/logging"
)

const eof rune = -1

type Lexer struct {
	r   io.RuneReader
	err error // first read failure other than io.EOF

	ch     rune // next unconsumed char, eof once the source is drained
	line   int  // line of ch (1-indexed)
	column int  // column of ch (1-indexed)

	log logging.Logger
}

// NewLexer returns a lexer reading from r. Pass nil for logger to disable
// logging.
func NewLexer(r io.Reader, logger *slog.Logger) *Lexer {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	l := &Lexer{r: rr, line: 1, column: 1, log: logging.New(logger, "lexer")}
	l.ch = l.read()
	return l
}

// NewStringLexer is a convenience for tests and tooling.
func NewStringLexer(input string) *Lexer {
	return NewLexer(strings.NewReader(input), nil)
}

// Err returns the read error that ended the stream early, if any.
func (l *Lexer) Err() error {
	return l.err
}

func (l *Lexer) read() rune {
	if l.err != nil {
		return eof
	}
	ch, _, err := l.r.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			l.err = err
			l.log.Log(slog.LevelWarn, "read failed", slog.String("error", err.Error()))
		}
		return eof
	}
	return ch
}

// readChar consumes the current char and tracks line/column. A "\r\n" pair
// is one line break.
func (l *Lexer) readChar() rune {
	ch := l.ch
	if ch == eof {
		return eof
	}
	l.ch = l.read()
	switch ch {
	case '\r':
		if l.ch == '\n' {
			l.ch = l.read()
		}
		fallthrough
	case '\n':
		l.line++
		l.column = 1
	default:
		l.column++
	}
	return ch
}

// NextToken returns the next token. Once the source is drained every call
// returns an EOF token at the end position.
func (l *Lexer) NextToken() token.Token {
	for {
		switch l.ch {
		case eof:
			return token.New(token.TokenEOF, l.line, l.column)
		case ' ', '\t', '\n', '\r':
			l.readChar()
			continue
		}

		startLine, startCol := l.line, l.column
		first := l.readChar()
		if first == '/' && l.ch == '/' {
			l.skipComment()
			continue
		}

		var lexeme token.Prefix
		lexeme.Start(first)
		for l.ch != eof && lexeme.Extend(l.ch) {
			l.readChar()
		}

		tok := token.Generate(lexeme.String(), startLine, startCol)
		if tok.Is(token.TokenError) {
			l.log.Log(slog.LevelDebug, "unrecognised lexeme",
				slog.String("lexeme", tok.Literal), slog.Int("line", tok.Line), slog.Int("column", tok.Column))
		}
		return tok
	}
}

// skipComment drops everything up to, not including, the next line break.
func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != '\r' && l.ch != eof {
		l.readChar()
	}
}

// Tokenize drains the lexer. The result always ends with exactly one EOF.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Is(token.TokenEOF) {
			return toks
		}
	}
}
