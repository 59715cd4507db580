package syntax

import "strings"

// Scanner hands out the tokens of an input with arbitrary lookahead.
// Lexical errors are recorded in the error list given to NewScanner and
// never returned as tokens.
type Scanner struct {
	lx    *lexer
	buf   []Token
	lines []string
	errs  *ErrorList
}

// NewScanner returns a scanner over input. Lexical errors are added to errs.
func NewScanner(input string, cfg *LexConfig, errs *ErrorList) *Scanner {
	return &Scanner{
		lx:    lex(input, cfg),
		lines: strings.Split(input, "\n"),
		errs:  errs,
	}
}

func (s *Scanner) fill(n int) {
	for len(s.buf) < n {
		t := s.lx.nextItem()
		if t.Type == TokError {
			s.errs.Add(s.errorAt(t, "", t.Val))
			continue
		}
		s.buf = append(s.buf, t)
		if t.Type == TokEOF {
			for len(s.buf) < n {
				s.buf = append(s.buf, t)
			}
		}
	}
}

// Peek returns the next token without consuming it.
func (s *Scanner) Peek() Token {
	return s.PeekN(0)
}

// PeekN returns the token n positions ahead (0 is the next token).
func (s *Scanner) PeekN(n int) Token {
	s.fill(n + 1)
	return s.buf[n]
}

// Next consumes and returns the next token.
func (s *Scanner) Next() Token {
	s.fill(1)
	t := s.buf[0]
	if t.Type != TokEOF {
		s.buf = s.buf[1:]
	}
	return t
}

// SkipNewlines consumes any newline tokens.
func (s *Scanner) SkipNewlines() {
	for s.Peek().Type == TokNewline {
		s.Next()
	}
}

// Line consumes the tokens up to the next newline (or EOF) and returns them
// without the newline. Blank lines are skipped. The returned slice is empty
// only at EOF.
func (s *Scanner) Line() []Token {
	s.SkipNewlines()
	var toks []Token
	for {
		t := s.Next()
		if t.Type == TokNewline || t.Type == TokEOF {
			return toks
		}
		toks = append(toks, t)
	}
}

// SkipLine discards tokens through the end of the current line.
func (s *Scanner) SkipLine() {
	for {
		t := s.Next()
		if t.Type == TokNewline || t.Type == TokEOF {
			return
		}
	}
}

// Errorf records a syntax error at the position of token t.
func (s *Scanner) Errorf(t Token, format string, v ...interface{}) {
	s.errs.Add(s.errorAt(t, t.Val, sf(format, v...)))
}

// Errors returns the error list the scanner reports to.
func (s *Scanner) Errors() *ErrorList {
	return s.errs
}

func (s *Scanner) errorAt(t Token, offending, msg string) Error {
	src := ""
	if t.Line >= 1 && t.Line <= len(s.lines) {
		src = strings.TrimRight(s.lines[t.Line-1], "\r")
	}
	return Error{
		Line:      t.Line,
		Column:    t.Col,
		Offending: offending,
		Input:     src,
		Message:   msg,
	}
}

// Tokens lexes input and returns its first n tokens that are neither
// newlines nor errors. It is used to guess the dialect of a file.
func Tokens(input string, cfg *LexConfig, n int) []Token {
	lx := lex(input, cfg)
	toks := make([]Token, 0, n)
	for len(toks) < n {
		t := lx.nextItem()
		switch t.Type {
		case TokEOF:
			return toks
		case TokNewline, TokError:
			continue
		}
		toks = append(toks, t)
	}
	return toks
}
