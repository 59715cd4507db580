package syntax

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// TokenType is the type of a lexed token.
type TokenType int

const (
	TokError TokenType = iota
	TokEOF
	TokNewline
	TokInt
	TokFloat
	TokName
	TokQuoted
	TokPunct
	TokReserved
)

const eof = 0

var (
	matchInt   = regexp.MustCompile(`^[+-]?[0-9]+$`)
	matchFloat = regexp.MustCompile(
		`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eEdD][+-]?[0-9]+)?$`)
)

// LexConfig describes the lexical conventions of a dialect.
type LexConfig struct {
	// Markers starting a comment that runs to the end of the line.
	// A marker is only recognized at the start of a token.
	LineComments []string

	// Open and close markers of a block comment, e.g. {"{", "}"}.
	// Empty when the dialect has no block comments.
	BlockComment [2]string

	// Single characters that are tokens on their own.
	Punct string

	// Quote characters. A quoted token runs to the matching quote on the
	// same line.
	Quotes string

	// Reserved words, lower case. Matching is case insensitive.
	Reserved map[string]bool
}

// Token is a single lexeme with its position. Line and Col start at 1.
type Token struct {
	Type TokenType
	Val  string
	Line int
	Col  int
}

// Is reports whether the token is the reserved word w (case insensitive).
func (t Token) Is(w string) bool {
	return t.Type == TokReserved && strings.EqualFold(t.Val, w)
}

// IsNumber reports whether the token is an integer or a float.
func (t Token) IsNumber() bool {
	return t.Type == TokInt || t.Type == TokFloat
}

// IsWord reports whether the token can stand for a name: a plain name, a
// quoted string, a reserved word or a number.
func (t Token) IsWord() bool {
	switch t.Type {
	case TokName, TokQuoted, TokReserved, TokInt, TokFloat:
		return true
	}
	return false
}

func (t Token) String() string {
	return fmt.Sprintf("(%s, %q, %d:%d)", t.Type, t.Val, t.Line, t.Col)
}

type stateFn func(lx *lexer) stateFn

type lexer struct {
	cfg   *LexConfig
	input string
	start int
	pos   int
	width int
	line  int
	col   int // column of lx.start
	state stateFn
	items chan Token
}

func lex(input string, cfg *LexConfig) *lexer {
	return &lexer{
		cfg:   cfg,
		input: input,
		line:  1,
		col:   1,
		state: lexSpace,
		items: make(chan Token, 10),
	}
}

func (lx *lexer) nextItem() Token {
	for {
		select {
		case item := <-lx.items:
			return item
		default:
			if lx.state == nil {
				return Token{Type: TokEOF, Line: lx.line, Col: lx.col}
			}
			lx.state = lx.state(lx)
		}
	}
}

func (lx *lexer) current() string {
	return lx.input[lx.start:lx.pos]
}

func (lx *lexer) emit(typ TokenType) {
	lx.emitVal(typ, lx.current())
}

func (lx *lexer) emitVal(typ TokenType, val string) {
	lx.items <- Token{typ, val, lx.line, lx.col}
	lx.ignore()
}

func (lx *lexer) next() (r rune) {
	if lx.pos >= len(lx.input) {
		lx.width = 0
		return eof
	}
	r, lx.width = utf8.DecodeRuneInString(lx.input[lx.pos:])
	lx.pos += lx.width
	return r
}

// ignore skips over the pending input before this point.
func (lx *lexer) ignore() {
	lx.col += utf8.RuneCountInString(lx.input[lx.start:lx.pos])
	lx.start = lx.pos
}

// backup steps back one rune. Can be called only once per call of next.
func (lx *lexer) backup() {
	lx.pos -= lx.width
}

func (lx *lexer) peek() rune {
	r := lx.next()
	lx.backup()
	return r
}

func (lx *lexer) hasPrefix(s string) bool {
	return len(s) > 0 && strings.HasPrefix(lx.input[lx.pos:], s)
}

// newline consumes a line break that has already been read with next.
func (lx *lexer) newline() {
	lx.emitVal(TokNewline, "\n")
	lx.line++
	lx.col = 1
}

// errorf emits an error token. Lexing continues with the state returned.
func (lx *lexer) errorf(next stateFn, format string, v ...interface{}) stateFn {
	lx.items <- Token{TokError, fmt.Sprintf(format, v...), lx.line, lx.col}
	return next
}

func lexSpace(lx *lexer) stateFn {
	for {
		switch r := lx.next(); {
		case r == eof:
			lx.emitVal(TokEOF, "")
			return nil
		case r == '\r':
			lx.ignore()
		case r == '\n':
			lx.newline()
		case isBlank(r):
			lx.ignore()
		default:
			lx.backup()
			return lexToken
		}
	}
}

func lexToken(lx *lexer) stateFn {
	for _, c := range lx.cfg.LineComments {
		if lx.hasPrefix(c) {
			return lexLineComment
		}
	}
	if lx.hasPrefix(lx.cfg.BlockComment[0]) {
		return lexBlockComment
	}
	r := lx.next()
	switch {
	case strings.ContainsRune(lx.cfg.Quotes, r):
		return lexQuoted(r)
	case strings.ContainsRune(lx.cfg.Punct, r):
		lx.emit(TokPunct)
		return lexSpace
	}
	return lexWord
}

func lexLineComment(lx *lexer) stateFn {
	for {
		r := lx.next()
		if r == eof || r == '\n' {
			lx.backup()
			lx.ignore()
			return lexSpace
		}
	}
}

func lexBlockComment(lx *lexer) stateFn {
	open, close := lx.cfg.BlockComment[0], lx.cfg.BlockComment[1]
	startLine := lx.line
	lx.pos += len(open)
	for {
		if lx.hasPrefix(close) {
			lx.pos += len(close)
			lx.ignore()
			return lexSpace
		}
		switch lx.next() {
		case eof:
			lx.ignore()
			return lx.errorf(nil,
				"Unterminated comment starting on line %d.", startLine)
		case '\n':
			lx.ignore()
			lx.line++
			lx.col = 1
		}
	}
}

func lexQuoted(quote rune) stateFn {
	return func(lx *lexer) stateFn {
		for {
			switch r := lx.next(); r {
			case quote:
				s := lx.current()
				lx.emitVal(TokQuoted, s[1:len(s)-1])
				return lexSpace
			case eof, '\n':
				lx.backup()
				lx.ignore()
				return lx.errorf(lexSpace, "Unterminated quoted string.")
			}
		}
	}
}

func lexWord(lx *lexer) stateFn {
	for {
		r := lx.next()
		if r == eof || isBlank(r) || r == '\n' || r == '\r' ||
			strings.ContainsRune(lx.cfg.Punct, r) ||
			strings.ContainsRune(lx.cfg.Quotes, r) {
			lx.backup()
			break
		}
		if lx.hasPrefix(lx.cfg.BlockComment[0]) {
			break
		}
	}
	word := lx.current()
	switch {
	case matchInt.MatchString(word):
		lx.emit(TokInt)
	case matchFloat.MatchString(word):
		lx.emit(TokFloat)
	case lx.cfg.Reserved[strings.ToLower(word)]:
		lx.emit(TokReserved)
	default:
		lx.emit(TokName)
	}
	return lexSpace
}

func isBlank(r rune) bool {
	return r == '\t' || r == ' ' || r == '\f' || r == '\v'
}

func (typ TokenType) String() string {
	switch typ {
	case TokError:
		return "Error"
	case TokEOF:
		return "EOF"
	case TokNewline:
		return "Newline"
	case TokInt:
		return "Int"
	case TokFloat:
		return "Float"
	case TokName:
		return "Name"
	case TokQuoted:
		return "Quoted"
	case TokPunct:
		return "Punct"
	case TokReserved:
		return "Reserved"
	}
	return fmt.Sprintf("TokenType(%d)", int(typ))
}
