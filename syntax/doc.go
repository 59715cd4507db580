/*
Package syntax provides the pieces shared by every restraint dialect reader:
a configurable state-function lexer, a token scanner with lookahead, a
generic parse tree with a walker, a bounded syntax error list and numeric
coercion that understands Fortran style exponents.

Dialects differ in their comment syntax, reserved words and punctuation, so
a dialect describes itself with a LexConfig and writes its own parser on top
of Scanner. Parsers build Nodes and never interpret numbers; listeners do
that with Float and Int while walking the tree.
*/
package syntax
