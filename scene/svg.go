package scene

import (
	"io"
	"strings"
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\n", "&#10;",
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// String serializes the tree as SVG markup.
func (e *Element) String() string {
	var sb strings.Builder
	e.write(&sb, 0)
	return sb.String()
}

// WriteTo writes the tree as SVG markup.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, e.String())
	return int64(n), err
}

func (e *Element) write(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)

	sb.WriteString(indent)
	sb.WriteString("<")
	sb.WriteString(e.Tag)

	for _, a := range e.attrs {
		writeAttr(sb, a.Name, a.Value)
	}
	if len(e.classes) > 0 {
		writeAttr(sb, "class", strings.Join(e.classes, " "))
	}
	if len(e.style) > 0 {
		var style strings.Builder
		for _, s := range e.style {
			style.WriteString(s.Name)
			style.WriteString(":")
			style.WriteString(s.Value)
			style.WriteString(";")
		}
		writeAttr(sb, "style", style.String())
	}

	if e.Text == "" && len(e.Children) == 0 {
		sb.WriteString("/>\n")
		return
	}
	sb.WriteString(">")

	if e.Text != "" {
		if e.Raw {
			sb.WriteString(e.Text)
		} else {
			sb.WriteString(textEscaper.Replace(e.Text))
		}
	}

	if len(e.Children) > 0 {
		sb.WriteString("\n")
		for _, c := range e.Children {
			c.write(sb, depth+1)
		}
		sb.WriteString(indent)
	}

	sb.WriteString("</")
	sb.WriteString(e.Tag)
	sb.WriteString(">\n")
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteString(" ")
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(attrEscaper.Replace(value))
	sb.WriteString(`"`)
}
