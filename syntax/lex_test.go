package syntax

import (
	"testing"
)

var testConfig = &LexConfig{
	LineComments: []string{"!", "#"},
	BlockComment: [2]string{"{", "}"},
	Punct:        "():=",
	Quotes:       `"`,
	Reserved:     map[string]bool{"assign": true, "and": true, "name": true},
}

func TestLexTokens(t *testing.T) {
	input := "ASSIGN (resid 10 and name HB#) ! comment\n" +
		"{ block\n comment } 4.5 1.5D+00 -2 \"A B\"\n"
	want := []struct {
		typ TokenType
		val string
	}{
		{TokReserved, "ASSIGN"},
		{TokPunct, "("},
		{TokName, "resid"},
		{TokInt, "10"},
		{TokReserved, "and"},
		{TokReserved, "name"},
		{TokName, "HB#"},
		{TokPunct, ")"},
		{TokNewline, "\n"},
		{TokFloat, "4.5"},
		{TokFloat, "1.5D+00"},
		{TokInt, "-2"},
		{TokQuoted, "A B"},
		{TokNewline, "\n"},
		{TokEOF, ""},
	}
	errs := NewErrorList(0)
	s := NewScanner(input, testConfig, errs)
	for i, w := range want {
		got := s.Next()
		if got.Type != w.typ || got.Val != w.val {
			t.Fatalf("Token %d: expected (%s, %q) but got %s.",
				i, w.typ, w.val, got)
		}
	}
	if errs.Len() != 0 {
		t.Fatalf("Unexpected errors: %v", errs.Errors())
	}
}

func TestLexPositions(t *testing.T) {
	s := NewScanner("a b\n  cc", testConfig, NewErrorList(0))
	toks := []Token{s.Next(), s.Next(), s.Next(), s.Next()}
	if toks[1].Line != 1 || toks[1].Col != 3 {
		t.Fatalf("Expected 'b' at 1:3 but got %d:%d.", toks[1].Line, toks[1].Col)
	}
	if toks[3].Line != 2 || toks[3].Col != 3 {
		t.Fatalf("Expected 'cc' at 2:3 but got %d:%d.", toks[3].Line, toks[3].Col)
	}
}

func TestLexUnterminated(t *testing.T) {
	errs := NewErrorList(0)
	s := NewScanner("a \"open\nb { never closed", testConfig, errs)
	var vals []string
	for tok := s.Next(); tok.Type != TokEOF; tok = s.Next() {
		if tok.Type != TokNewline {
			vals = append(vals, tok.Val)
		}
	}
	if len(vals) != 2 || vals[0] != "a" || vals[1] != "b" {
		t.Fatalf("Unexpected tokens %q.", vals)
	}
	if errs.Len() != 2 {
		t.Fatalf("Expected 2 errors but got %d.", errs.Len())
	}
}

func TestErrorCap(t *testing.T) {
	errs := NewErrorList(2)
	for i := 0; i < 5; i++ {
		errs.Add(Error{Line: i + 1, Message: "bad"})
	}
	if len(errs.Errors()) != 2 || errs.Suppressed() != 3 || errs.Len() != 5 {
		t.Fatalf("Expected 2 kept and 3 suppressed, got %d and %d.",
			len(errs.Errors()), errs.Suppressed())
	}
}

func TestCaret(t *testing.T) {
	e := Error{Line: 1, Column: 5, Offending: "xyz", Input: "abc xyz 1"}
	want := "abc xyz 1\n    ^^^"
	if got := e.Caret(); got != want {
		t.Fatalf("Expected\n%s\nbut got\n%s", want, got)
	}
}

func TestNumbers(t *testing.T) {
	floats := map[string]float64{
		"4.5": 4.5, "1.5D+02": 150, "-2": -2, ".5": 0.5, "1e-1": 0.1,
	}
	for s, want := range floats {
		if got, ok := Float(s); !ok || got != want {
			t.Errorf("Float(%q): expected %f but got %f (%v).", s, want, got, ok)
		}
	}
	if _, ok := Float("NaN"); ok {
		t.Errorf("Float(NaN) should fail.")
	}
	if n, ok := Int("12.0"); !ok || n != 12 {
		t.Errorf("Int(12.0): expected 12 but got %d (%v).", n, ok)
	}
	if _, ok := Int("12.5"); ok {
		t.Errorf("Int(12.5) should fail.")
	}
}

type recorder []string

func (r *recorder) EnterRule(n *Node) { *r = append(*r, "+"+n.Rule) }
func (r *recorder) ExitRule(n *Node)  { *r = append(*r, "-"+n.Rule) }

func TestWalk(t *testing.T) {
	root := NewNode("file").Add(
		NewNode("stmt").Add(NewNode("sel"), NewNode("sel")),
		NewNode("stmt"))
	var r recorder
	Walk(root, &r)
	want := "+file +stmt +sel -sel +sel -sel -stmt +stmt -stmt -file"
	got := ""
	for i, s := range r {
		if i > 0 {
			got += " "
		}
		got += s
	}
	if got != want {
		t.Fatalf("Expected %q but got %q.", want, got)
	}
}
