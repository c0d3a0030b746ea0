package services

import (
	"fmt"
	"strings"
)

const answerLineWidth = 60

// textDoc accumulates a document body. Methods never fail; the zero value is
// ready to use.
type textDoc struct {
	b strings.Builder
}

// line writes one formatted line followed by a newline.
func (d *textDoc) line(format string, args ...any) {
	fmt.Fprintf(&d.b, format, args...)
	d.b.WriteByte('\n')
}

// raw writes s as is.
func (d *textDoc) raw(s string) { d.b.WriteString(s) }

func (d *textDoc) blank() { d.b.WriteByte('\n') }

// rule writes a line of n '=' characters.
func (d *textDoc) rule(n int) {
	if n > 0 {
		d.b.WriteString(strings.Repeat("=", n))
	}
	d.b.WriteByte('\n')
}

// titled writes title and a rule as wide as the title.
func (d *textDoc) titled(title string) {
	d.line("%s", title)
	d.rule(runeLen(title))
}

// ruled writes title and a rule of fixed width n.
func (d *textDoc) ruled(title string, n int) {
	d.line("%s", title)
	d.rule(n)
}

// answerLine writes a blank manual-entry line.
func (d *textDoc) answerLine() {
	d.line("%s", strings.Repeat("_", answerLineWidth))
}

// numbered writes "i. text" using a 1-based index.
func (d *textDoc) numbered(i int, text string) {
	d.line("%d. %s", i+1, text)
}

// header writes the labelled course block. Fields are written in the order
// given; each label is followed by its value.
func (d *textDoc) header(fields ...headerField) {
	for _, f := range fields {
		d.line("%s: %s%s", f.label, f.value, f.suffix)
	}
	d.blank()
}

func (d *textDoc) String() string { return d.b.String() }

type headerField struct {
	label  string
	value  string
	suffix string
}

func field(label, value string) headerField { return headerField{label: label, value: value} }

// standardHeader is the four-line block shared by attendance, contract,
// checklist and the unified sheet.
func standardHeader(h Header) []headerField {
	return []headerField{
		field("Curso", h.Course),
		field("Instructor", h.Instructor),
		field("Lugar", h.Venue),
		field("Fecha", h.Date),
	}
}

func checkbox(on bool) string {
	if on {
		return "[X]"
	}
	return "[ ]"
}
