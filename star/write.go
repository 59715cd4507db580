package star

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var sf = fmt.Sprintf

type writeError string

func (we writeError) Error() string {
	return string(we)
}

type writer struct {
	*Document
	w *bufio.Writer
}

// Write writes the document to w.
func (d *Document) Write(w io.Writer) (err error) {
	wr := writer{d, bufio.NewWriter(w)}
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(writeError); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	wr.write()
	if err := wr.w.Flush(); err != nil {
		return fmt.Errorf("STAR write: %w", err)
	}
	return nil
}

// String returns the document as text.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Write(&b); err != nil {
		return err.Error()
	}
	return b.String()
}

func (w writer) errf(format string, v ...interface{}) {
	panic(writeError(sf("STAR write: %s", sf(format, v...))))
}

func (w writer) pf(format string, v ...interface{}) {
	if _, err := fmt.Fprintf(w.w, format, v...); err != nil {
		w.errf("%s", err)
	}
}

func (w writer) write() {
	w.pf("data_%s\n", w.Name)
	for _, f := range w.Frames {
		w.pf("\nsave_%s\n", f.Name)
		w.writeItems(f)
		for _, lp := range f.Loops {
			w.pf("\n")
			w.writeLoop(lp)
		}
		w.pf("\nsave_\n")
	}
}

func (w writer) writeItems(f *Frame) {
	width := 0
	for _, it := range f.Items {
		if n := len(f.Category) + len(it.Tag) + 2; n > width {
			width = n
		}
	}
	for _, it := range f.Items {
		tag := sf("_%s.%s", f.Category, it.Tag)
		w.pf("   %-*s  %s\n", width, tag, w.formatStr(it.Value))
	}
}

func (w writer) writeLoop(lp *Loop) {
	w.pf("   loop_\n")
	for _, tag := range lp.Tags {
		w.pf("      _%s.%s\n", lp.Category, tag)
	}
	w.pf("\n")

	strs := make([][]string, len(lp.Rows))
	widths := make([]int, len(lp.Tags))
	for i, row := range lp.Rows {
		strs[i] = make([]string, len(row))
		for j, val := range row {
			strs[i][j] = w.formatStr(val)
			if n := utf8.RuneCountInString(strs[i][j]); n > widths[j] && !isText(strs[i][j]) {
				widths[j] = n
			}
		}
	}
	for _, row := range strs {
		w.pf("     ")
		for j, val := range row {
			if j == len(row)-1 || isText(val) {
				w.pf(" %s", val)
			} else {
				w.pf(" %-*s", widths[j], val)
			}
		}
		w.pf("\n")
	}
	w.pf("\n   stop_\n")
}

func isText(s string) bool {
	return strings.HasPrefix(s, "\n;")
}

var reserved = []string{"data_", "save_", "loop_", "stop_", "global_"}

// formatStr decides between unquoted, single-quoted, double-quoted and
// semi-colon text field representations of s. Empty values are written as
// the null value ".".
func (w writer) formatStr(s string) string {
	if len(s) == 0 {
		return "."
	}
	which := "unquoted"
	switch s[0] {
	case '_', '#', '$', '\'', '"', ';', '[', ']':
		which = "double"
	}
	lower := strings.ToLower(s)
	for _, word := range reserved {
		if strings.HasPrefix(lower, word) {
			which = "double"
		}
	}
	seenDouble, seenSingle := false, false
LOOP:
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r':
			which = "text"
			break LOOP
		case r == '"':
			seenDouble = true
			if seenSingle {
				which = "text"
				break LOOP
			}
			which = "single"
		case r == '\'':
			seenSingle = true
			if seenDouble {
				which = "text"
				break LOOP
			}
			which = "double"
		case r == ' ' || r == '\t':
			if seenDouble {
				which = "single"
			} else {
				which = "double"
			}
		case r < ' ' || r == 0x7f:
			w.errf("the character %q cannot be written", r)
		}
	}
	switch which {
	case "unquoted":
		return s
	case "single":
		return "'" + s + "'"
	case "double":
		return "\"" + s + "\""
	case "text":
		return "\n;" + s + "\n;"
	}
	panic(sf("unreachable: (unknown string format type '%s')", which))
}
