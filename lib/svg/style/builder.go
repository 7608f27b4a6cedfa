// Package style interns sets of CSS declarations into generated class names and
// flattens them into a single stylesheet.
package style

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered set of declarations. Two Attrs are the same style when they
// hold the same declarations, in any order.
type Attrs []Attr

func (as Attrs) clone() Attrs {
	return append(Attrs(nil), as...)
}

func (as Attrs) signature() string {
	sorted := as.clone()
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Key != sorted[j].Key {
			return sorted[i].Key < sorted[j].Key
		}
		return sorted[i].Value < sorted[j].Value
	})
	b := &strings.Builder{}
	for _, a := range sorted {
		b.WriteString(a.Key)
		b.WriteByte(0)
		b.WriteString(a.Value)
		b.WriteByte(0)
	}
	return b.String()
}

var extraLines []string

// SetExtraLines sets raw lines written ahead of every flushed stylesheet.
// It must be called before any Builder is flushed and never concurrently with one.
func SetExtraLines(lines ...string) {
	extraLines = append([]string(nil), lines...)
}

func ExtraLines() []string {
	return append([]string(nil), extraLines...)
}

type Builder struct {
	classes  map[string]string
	rules    map[string]Attrs
	counters map[string]int
}

func NewBuilder() *Builder {
	return &Builder{
		classes:  make(map[string]string),
		rules:    make(map[string]Attrs),
		counters: make(map[string]int),
	}
}

// Intern returns the class name for attrs, generating one from prefix the first time
// this set of declarations is seen.
func (b *Builder) Intern(prefix string, attrs Attrs) string {
	sig := attrs.signature()
	if name, ok := b.classes[sig]; ok {
		return name
	}

	var name string
	for {
		name = prefix + strconv.Itoa(b.counters[prefix])
		b.counters[prefix]++
		if _, taken := b.rules["."+name]; !taken {
			break
		}
	}
	b.classes[sig] = name
	b.rules["."+name] = attrs.clone()
	return name
}

// RegisterNamed adds a rule under an explicit selector such as "path:hover".
func (b *Builder) RegisterNamed(selector string, attrs Attrs) {
	b.rules[selector] = attrs.clone()
}

func (b *Builder) Len() int {
	return len(b.rules)
}

// Flush renders every rule sorted by selector. It returns "" when no rule exists.
func (b *Builder) Flush() string {
	if len(b.rules) == 0 {
		return ""
	}

	out := &strings.Builder{}
	out.WriteString(strings.Join(extraLines, "\n"))

	selectors := maps.Keys(b.rules)
	slices.Sort(selectors)
	for _, selector := range selectors {
		out.WriteString("\n")
		out.WriteString(selector)
		out.WriteString(" {")
		for _, a := range b.rules[selector] {
			out.WriteString("\n  ")
			out.WriteString(a.Key)
			out.WriteString(": ")
			out.WriteString(a.Value)
			if needsPixels(a) {
				out.WriteString("px")
			}
			out.WriteString(";")
		}
		out.WriteString("\n}\n")
	}
	return out.String()
}

var lengthUnits = []string{"px", "em", "rem", "pt", "%"}

func needsPixels(a Attr) bool {
	for _, unit := range lengthUnits {
		if strings.HasSuffix(a.Value, unit) {
			return false
		}
	}
	return strings.HasSuffix(a.Key, "-width") || strings.HasSuffix(a.Key, "-size")
}
