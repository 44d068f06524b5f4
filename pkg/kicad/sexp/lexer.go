package sexp

import (
	"bufio"
	"io"
	"strings"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenLeftParen
	tokenRightParen
	tokenSymbol
	tokenString
)

// token carries the raw source text of a lexeme plus the whitespace run
// that preceded it. The writer re-emits both untouched.
type token struct {
	typ    tokenType
	raw    string // exact source text, quotes included for strings
	val    string // decoded value, strings only
	prefix string // whitespace before the token
	line   int
	col    int
}

// lexer tokenizes S-expressions from an io.Reader while recording the
// whitespace between tokens.
type lexer struct {
	reader *bufio.Reader
	peeked *rune
	line   int
	col    int
}

func newLexer(r io.Reader) *lexer {
	return &lexer{
		reader: bufio.NewReader(r),
		line:   1,
		col:    0,
	}
}

// next reads the next token from the input.
func (l *lexer) next() (token, error) {
	var ws strings.Builder

	// Collect the whitespace run preceding the token
	for {
		ch, err := l.peek()
		if err != nil {
			if err == io.EOF {
				return token{typ: tokenEOF, prefix: ws.String(), line: l.line, col: l.col}, nil
			}
			return token{}, err
		}
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			break
		}
		l.read()
		ws.WriteRune(ch)
	}

	ch, err := l.peek()
	if err != nil {
		if err == io.EOF {
			return token{typ: tokenEOF, prefix: ws.String(), line: l.line, col: l.col}, nil
		}
		return token{}, err
	}

	line, col := l.line, l.col+1
	switch ch {
	case '(':
		l.read()
		return token{typ: tokenLeftParen, raw: "(", prefix: ws.String(), line: line, col: col}, nil

	case ')':
		l.read()
		return token{typ: tokenRightParen, raw: ")", prefix: ws.String(), line: line, col: col}, nil

	case '"':
		tok, err := l.readString()
		if err != nil {
			return token{}, err
		}
		tok.prefix = ws.String()
		tok.line, tok.col = line, col
		return tok, nil

	default:
		tok, err := l.readSymbol()
		if err != nil {
			return token{}, err
		}
		tok.prefix = ws.String()
		tok.line, tok.col = line, col
		return tok, nil
	}
}

// peek looks at the next rune without consuming it.
func (l *lexer) peek() (rune, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	ch, _, err := l.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	l.peeked = &ch
	return ch, nil
}

// read consumes and returns the next rune, tracking line/column.
func (l *lexer) read() (rune, error) {
	var ch rune
	var err error
	if l.peeked != nil {
		ch = *l.peeked
		l.peeked = nil
	} else {
		ch, _, err = l.reader.ReadRune()
		if err != nil {
			return 0, err
		}
	}
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, nil
}

// readString reads a quoted string, keeping both the exact source text
// and the unescaped value.
func (l *lexer) readString() (token, error) {
	line, col := l.line, l.col+1

	var raw, val strings.Builder
	l.read() // opening quote
	raw.WriteByte('"')

	for {
		ch, err := l.read()
		if err != nil {
			return token{}, &SyntaxError{Line: line, Col: col, Msg: "unterminated string"}
		}

		if ch == '"' {
			raw.WriteByte('"')
			break
		}

		if ch == '\\' {
			next, err := l.read()
			if err != nil {
				return token{}, &SyntaxError{Line: line, Col: col, Msg: "unterminated string after backslash"}
			}
			raw.WriteRune('\\')
			raw.WriteRune(next)
			switch next {
			case 'n':
				val.WriteByte('\n')
			case 't':
				val.WriteByte('\t')
			case 'r':
				val.WriteByte('\r')
			case '\\':
				val.WriteByte('\\')
			case '"':
				val.WriteByte('"')
			default:
				return token{}, &SyntaxError{Line: l.line, Col: l.col, Msg: "invalid escape sequence \\" + string(next)}
			}
			continue
		}

		raw.WriteRune(ch)
		val.WriteRune(ch)
	}

	return token{typ: tokenString, raw: raw.String(), val: val.String()}, nil
}

// readSymbol reads an unquoted atom (identifier, number, keyword).
func (l *lexer) readSymbol() (token, error) {
	var raw strings.Builder

	for {
		ch, err := l.peek()
		if err != nil {
			if err == io.EOF {
				break
			}
			return token{}, err
		}
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '(' || ch == ')' || ch == '"' {
			break
		}
		l.read()
		raw.WriteRune(ch)
	}

	return token{typ: tokenSymbol, raw: raw.String()}, nil
}
