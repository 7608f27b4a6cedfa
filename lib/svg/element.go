package svg

import (
	"fmt"
	"io"
	"strings"

	"oss.terrastruct.com/xdefer"
)

const (
	XMLHeader = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`

	indent = "  "
)

type Attr struct {
	Name  string
	Value string
}

// Element is a node of a Document. A comment is an Element with no tag whose Text is
// the comment body.
type Element struct {
	Tag   string
	Attrs []Attr

	// Text is escaped on output, CDATA is written verbatim inside a CDATA section.
	Text  string
	CDATA string

	Children []*Element

	comment bool
}

func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

func NewComment(text string) *Element {
	return &Element{Text: text, comment: true}
}

// SetAttr sets name to value. An attribute that is already present keeps its position.
func (el *Element) SetAttr(name, value string) {
	for i := range el.Attrs {
		if el.Attrs[i].Name == name {
			el.Attrs[i].Value = value
			return
		}
	}
	el.Attrs = append(el.Attrs, Attr{Name: name, Value: value})
}

func (el *Element) Attr(name string) (string, bool) {
	for _, a := range el.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (el *Element) AppendChild(child *Element) {
	el.Children = append(el.Children, child)
}

func (el *Element) HasChildren() bool {
	return len(el.Children) > 0
}

// Render returns the markup of el and its subtree, indented from depth.
func (el *Element) Render(depth int) string {
	b := &strings.Builder{}
	el.render(b, depth)
	return b.String()
}

func (el *Element) render(b *strings.Builder, depth int) {
	pad := strings.Repeat(indent, depth)
	b.WriteString(pad)
	if el.comment {
		fmt.Fprintf(b, "<!--%s-->\n", escapeComment(el.Text))
		return
	}

	b.WriteString("<" + el.Tag)
	for _, a := range el.Attrs {
		fmt.Fprintf(b, ` %s="%s"`, a.Name, EscapeText(a.Value))
	}

	switch {
	case len(el.Children) > 0:
		b.WriteString(">\n")
		for _, child := range el.Children {
			child.render(b, depth+1)
		}
		fmt.Fprintf(b, "%s</%s>\n", pad, el.Tag)
	case el.CDATA != "":
		fmt.Fprintf(b, "><![CDATA[%s]]></%s>\n", escapeCDATA(el.CDATA), el.Tag)
	case el.Text != "":
		fmt.Fprintf(b, ">%s</%s>\n", EscapeText(el.Text), el.Tag)
	default:
		b.WriteString("/>\n")
	}
}

// Document owns a tree of elements rooted at Root.
type Document struct {
	Root *Element
}

func NewDocument(root *Element) *Document {
	return &Document{Root: root}
}

func (d *Document) String() string {
	return XMLHeader + "\n" + d.Root.Render(0)
}

func (d *Document) WriteTo(w io.Writer) (_ int64, err error) {
	defer xdefer.Errorf(&err, "failed to write svg document")

	n, err := io.WriteString(w, d.String())
	return int64(n), err
}
