package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// back holds runes that were read from src and given back, last first.
	back []rune
	// col is the column of the next rune to be read, counting from 1.
	col int
	p   lexToken
	eof bool
}

func lex(src io.RuneScanner) *lexer {
	l := new(lexer)
	l.reset(src)
	return l
}

// reset rebinds the lexer to a new source and forgets everything about the
// old one.
func (l *lexer) reset(src io.RuneScanner) {
	l.src = src
	l.buf.Reset()
	l.back = l.back[:0]
	l.col = 1
	l.p = lexToken{}
	l.eof = false
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("calc: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("calc: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// peek returns the token that the next call to next will return, without
// consuming it.
func (l *lexer) peek() (lexToken, error) {
	if l.p.kind != tokenNone {
		return l.p, nil
	}
	tok, err := l.next()
	if err != nil {
		return tok, err
	}
	l.push(tok)
	return tok, nil
}

// readRune reads a rune and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	if n := len(l.back); n > 0 {
		r := l.back[n-1]
		l.back = l.back[:n-1]
		l.col++
		return r, nil
	}
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune gives back r so that it is the next rune read. Any number of
// runes may be given back.
func (l *lexer) unreadRune(r rune) {
	l.back = append(l.back, r)
	l.col--
}

// next scans the next token from the input. Once the input is exhausted, every
// call returns an EOF token with a nil error.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	defer l.buf.Reset()
	for {
		tok := lexToken{pos: l.col}
		if l.eof {
			tok.kind = tokenEOF
			return tok, nil
		}
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
				tok.kind = tokenEOF
				return tok, nil
			}
			return tok, err
		}
		switch {
		case r == ' ', r == '\t':
			continue
		case '0' <= r && r <= '9':
			l.unreadRune(r)
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case r == '.':
			// A leading point starts a number only when a digit follows.
			d, err := l.readRune()
			if err != nil && !errors.Is(err, io.EOF) {
				return tok, err
			}
			if err == nil {
				l.unreadRune(d)
			}
			if err != nil || !isDigit(d) {
				return tok, &InvalidCharacterError{Char: r, Col: tok.pos}
			}
			l.unreadRune(r)
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case r == '(':
			tok.text = "("
			tok.kind = tokenOpen
			return tok, nil
		case r == ')':
			tok.text = ")"
			tok.kind = tokenClose
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.text = Operators[k : k+1]
				tok.kind = tokenPlus + tokenKind(k)
				return tok, nil
			}
			return tok, &InvalidCharacterError{Char: r, Col: tok.pos}
		}
	}
}

// scanNum scans a numeral into the lexer's buffer. The first rune must be a
// digit or a point followed by a digit. At most one point is consumed, and
// only when a digit follows it.
func (l *lexer) scanNum() error {
	dot := false
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch {
		case isDigit(r):
			l.buf.WriteRune(r)
		case r == '.' && !dot:
			d, err := l.readRune()
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			if err != nil || !isDigit(d) {
				// The point belongs to whatever comes next.
				if err == nil {
					l.unreadRune(d)
				}
				l.unreadRune(r)
				return nil
			}
			dot = true
			l.buf.WriteRune(r)
			l.buf.WriteRune(d)
		default:
			l.unreadRune(r)
			return nil
		}
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// InvalidCharacterError indicates a rune that cannot begin any token. It
// implements InputError.
type InvalidCharacterError struct {
	// Char is the offending rune.
	Char rune
	// Col is the position of the rune, counting from 1.
	Col int
}

func (err *InvalidCharacterError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.QuoteRune(err.Char))
}

func (err *InvalidCharacterError) Pos() int {
	return err.Col
}
