// Package svgscript decodes JSON drawing scripts and replays them onto an
// svggraphics.Graphics.
//
// A script looks like
//
//	{
//	  "options": {"scale": 1.5, "seed": 42},
//	  "ops": [
//	    {"op": "fill", "color": "#ffffff"},
//	    {"op": "rect", "x": 10, "y": 10, "width": 100, "height": 40, "shadow": 3}
//	  ]
//	}
package svgscript

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/svgdraw/svggraphics"
)

type Script struct {
	Options Options `json:"options"`
	Ops     []Op    `json:"ops"`
}

type Options struct {
	DimensionStyle       bool     `json:"dimensionStyle,omitempty" toml:"dimension_style"`
	MinWidth             float64  `json:"minWidth,omitempty" toml:"min_width"`
	MinHeight            float64  `json:"minHeight,omitempty" toml:"min_height"`
	Background           string   `json:"background,omitempty" toml:"background"`
	Scale                *float64 `json:"scale,omitempty" toml:"scale"`
	Hover                string   `json:"hover,omitempty" toml:"hover"`
	Seed                 int64    `json:"seed,omitempty" toml:"seed"`
	PreserveAspectRatio  string   `json:"preserveAspectRatio,omitempty" toml:"preserve_aspect_ratio"`
	AllowJavascriptLinks bool     `json:"allowJavascriptLinks,omitempty" toml:"allow_javascript_links"`
	// ExtraStyles are raw stylesheet lines written ahead of the generated rules.
	ExtraStyles []string `json:"-" toml:"extra_styles"`
}

// Merge returns o with every field set in override replacing its own.
func (o Options) Merge(override Options) Options {
	if override.DimensionStyle {
		o.DimensionStyle = true
	}
	if override.MinWidth != 0 {
		o.MinWidth = override.MinWidth
	}
	if override.MinHeight != 0 {
		o.MinHeight = override.MinHeight
	}
	if override.Background != "" {
		o.Background = override.Background
	}
	if override.Scale != nil {
		o.Scale = override.Scale
	}
	if override.Hover != "" {
		o.Hover = override.Hover
	}
	if override.Seed != 0 {
		o.Seed = override.Seed
	}
	if override.PreserveAspectRatio != "" {
		o.PreserveAspectRatio = override.PreserveAspectRatio
	}
	if override.AllowJavascriptLinks {
		o.AllowJavascriptLinks = true
	}
	if len(override.ExtraStyles) > 0 {
		o.ExtraStyles = override.ExtraStyles
	}
	return o
}

func (o Options) GraphicsOpts() *svggraphics.Opts {
	return &svggraphics.Opts{
		DimensionStyle:       o.DimensionStyle,
		MinWidth:             o.MinWidth,
		MinHeight:            o.MinHeight,
		Background:           o.Background,
		Scale:                o.Scale,
		Hover:                o.Hover,
		Seed:                 o.Seed,
		PreserveAspectRatio:  o.PreserveAspectRatio,
		AllowJavascriptLinks: o.AllowJavascriptLinks,
	}
}

// Op is one drawing operation. Op names the operation, the other fields are its
// arguments and only those the operation reads need to be set.
type Op struct {
	Op string `json:"op"`

	Color  string `json:"color,omitempty"`
	Color2 string `json:"color2,omitempty"`
	Policy string `json:"policy,omitempty"`
	Dash   string `json:"dash,omitempty"`

	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	X1     float64 `json:"x1,omitempty"`
	Y1     float64 `json:"y1,omitempty"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`
	X3     float64 `json:"x3,omitempty"`
	Y3     float64 `json:"y3,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Rx     float64 `json:"rx,omitempty"`
	Ry     float64 `json:"ry,omitempty"`
	Shadow float64 `json:"shadow,omitempty"`

	Points   []float64 `json:"points,omitempty"`
	Segments []Segment `json:"segments,omitempty"`
	Rule     string    `json:"rule,omitempty"`
	ID       string    `json:"id,omitempty"`

	Text            string      `json:"text,omitempty"`
	FontFamily      string      `json:"fontFamily,omitempty"`
	FontSize        float64     `json:"fontSize,omitempty"`
	FontWeight      string      `json:"fontWeight,omitempty"`
	FontStyle       string      `json:"fontStyle,omitempty"`
	TextDecoration  string      `json:"textDecoration,omitempty"`
	TextLength      float64     `json:"textLength,omitempty"`
	Attributes      []Attribute `json:"attributes,omitempty"`
	BackgroundColor string      `json:"backgroundColor,omitempty"`

	Language   string  `json:"language,omitempty"`
	Theme      string  `json:"theme,omitempty"`
	CharWidth  float64 `json:"charWidth,omitempty"`
	LineHeight float64 `json:"lineHeight,omitempty"`

	Src   string  `json:"src,omitempty"`
	Scale float64 `json:"scale,omitempty"`

	URL    string `json:"url,omitempty"`
	Title  string `json:"title,omitempty"`
	Target string `json:"target,omitempty"`

	Hidden bool `json:"hidden,omitempty"`
}

type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Segment is a path segment. Kind is one of M, L, Q, C, A or Z and Args holds its
// coordinates in SVG path order. A takes rx, ry, rotation, large-arc, sweep, x, y.
type Segment struct {
	Kind string    `json:"kind"`
	Args []float64 `json:"args,omitempty"`
}

// Decode reads a script. UTF-8 and UTF-16 input with a byte order mark are accepted.
func Decode(r io.Reader) (_ *Script, err error) {
	defer xdefer.Errorf(&err, "failed to decode script")

	tr := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	dec := json.NewDecoder(tr)
	dec.DisallowUnknownFields()

	s := &Script{}
	err = dec.Decode(s)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after the script")
	}
	return s, nil
}
