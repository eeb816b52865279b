package tree

import (
	"io"
	"strings"
)

const (
	lorthOpen       = " {\n"
	lorthClose      = "}\n"
	lorthLeafEnd    = " .\n"
	lorthRecordEnd  = ";\n"
	lorthLeafRecord = " ;\n"
)

// String returns the indented dump: one line per node with depth dashes, the
// name, ": " and the node's text, children below their parent. Nothing is
// escaped; it is meant for debugging.
func (t *Tree) String() string {
	var sb strings.Builder
	t.root.dumpString(&sb, t.raw, 0)
	return sb.String()
}

func (n *node) dumpString(sb *strings.Builder, raw []byte, level int) {
	for range level {
		sb.WriteByte('-')
	}
	sb.WriteString(n.name)
	sb.WriteString(": ")
	sb.Write(raw[n.start:n.end])
	sb.WriteByte('\n')
	for i := range n.children {
		n.children[i].dumpString(sb, raw, level+1)
	}
}

// Lorth returns t as one Lorth record.
//
// A leaf renders as
//
//	name "text" .
//
// and a node with children as
//
//	name {
//	 child "text" .
//	 "text between children" .
//	}
//
// indented one space per level. The record's final terminator becomes ";":
// a leaf record ends in ` ;`, a bracketed record in `};`.
func (t *Tree) Lorth() string {
	var sb strings.Builder
	t.root.dumpLorth(&sb, t.raw, 0)
	out := sb.String()
	if strings.HasSuffix(out, lorthLeafEnd) {
		return out[:len(out)-len(lorthLeafEnd)] + lorthLeafRecord
	}
	return out[:len(out)-1] + lorthRecordEnd
}

// WriteLorth writes the Lorth record for t to w.
func (t *Tree) WriteLorth(w io.Writer) error {
	_, err := io.WriteString(w, t.Lorth())
	return err
}

func (n *node) dumpLorth(sb *strings.Builder, raw []byte, level int) {
	indent := strings.Repeat(" ", level)
	sb.WriteString(indent)
	sb.WriteString(n.name)

	if len(n.children) == 0 {
		sb.WriteByte(' ')
		writeQuoted(sb, raw[n.start:n.end])
		sb.WriteString(lorthLeafEnd)
		return
	}

	sb.WriteString(lorthOpen)
	ep := n.start
	for i := range n.children {
		c := &n.children[i]
		if c.start > ep {
			writeGap(sb, indent, raw[ep:c.start])
		}
		c.dumpLorth(sb, raw, level+1)
		ep = c.end
	}
	if n.end > ep {
		writeGap(sb, indent, raw[ep:n.end])
	}
	sb.WriteString(indent)
	sb.WriteString(lorthClose)
}

func writeGap(sb *strings.Builder, indent string, text []byte) {
	sb.WriteString(indent)
	sb.WriteByte(' ')
	writeQuoted(sb, text)
	sb.WriteString(lorthLeafEnd)
}

func writeQuoted(sb *strings.Builder, text []byte) {
	sb.WriteByte('"')
	sb.WriteString(Escape(string(text)))
	sb.WriteByte('"')
}

// Escape rewrites the four characters Lorth escapes: `"`, newline, tab and
// carriage return. Everything else passes through unchanged.
func Escape(s string) string {
	if strings.IndexAny(s, "\"\n\t\r") < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
