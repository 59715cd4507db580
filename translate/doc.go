/*
Package translate drives the translation of restraint, chemical shift and
peak list files against one coordinate entry.

A Translator parses each input with its Dialect, walks the tree with the
dialect's listener and, when the first pass recorded reasons, runs a
second pass under the plan those reasons make up. TranslateAll does this
for several files at once; the lists of all results can then be written
as one document with Write.

Options can be read from a TOML file:

	output_style = "community"
	chain_policy = "all"
	max_errors = 50

	[reasons.seq_offset]
	A = "-3"
*/
package translate
