package svggraphics

import (
	"context"
	"encoding/xml"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"oss.terrastruct.com/xjson"
	"oss.terrastruct.com/xrand"

	"oss.terrastruct.com/svgdraw/lib/diff"
	"oss.terrastruct.com/svgdraw/lib/go2"
	"oss.terrastruct.com/svgdraw/lib/log"
)

func TestGolden(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		opts *Opts
		draw func(g *Graphics)
	}{
		{
			name: "shapes",
			opts: &Opts{Seed: 7, Hover: "red"},
			draw: func(g *Graphics) {
				g.SetFill("#ffffff")
				g.SetStroke("#000000")
				g.SetStrokeWidth(1.5, "")
				g.DrawEllipse(20, 20, 10, 5, 0)
				g.DrawLine(0, 0, 40, 40, 0)
				g.DrawPolygon(0, 0, 0, 10, 0, 5, 8)
				g.AddComment("hello")
			},
		},
		{
			name: "link_shadow_text",
			opts: &Opts{
				Seed:                42,
				DimensionStyle:      true,
				Background:          "#eeeeee",
				PreserveAspectRatio: "none",
			},
			draw: func(g *Graphics) {
				g.OpenLink("https://example.com", "", "_top")
				g.DrawRectangle(2, 2, 20, 10, 3, 3, 4, "box")
				g.CloseLink()
				g.DrawText(Text{
					Content:         "a b",
					X:               5,
					Y:               30,
					FontFamily:      "Monospaced",
					FontSize:        12,
					TextLength:      20,
					BackgroundColor: "#ffff00",
				})
			},
		},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx := log.WithTB(context.Background(), t, nil)

			g := New(tc.opts)
			tc.draw(g)
			out, err := g.Finalize(ctx)
			require.NoError(t, err)

			var xmlParsed interface{}
			err = xml.Unmarshal(out, &xmlParsed)
			require.NoError(t, err, "invalid SVG XML")

			err = diff.TestdataSVG(filepath.Join("testdata", t.Name()), out)
			assert.NoError(t, err)
		})
	}
}

type op struct {
	Kind string    `json:"kind"`
	Args []float64 `json:"args"`
	Text string    `json:"text,omitempty"`
}

func randomOps(n int) []op {
	ops := make([]op, 0, n)
	for i := 0; i < n; i++ {
		f := float64(i)
		switch i % 5 {
		case 0:
			ops = append(ops, op{Kind: "rect", Args: []float64{f, f / 2, f - 10, 7, 0, 0, float64(i % 3)}})
		case 1:
			ops = append(ops, op{Kind: "ellipse", Args: []float64{f, f, 3, 4, 0}})
		case 2:
			ops = append(ops, op{Kind: "text", Args: []float64{f, f * 1.25}, Text: xrand.String(12, nil)})
		case 3:
			ops = append(ops, op{Kind: "link", Text: "https://example.com/" + xrand.String(5, nil)})
		case 4:
			ops = append(ops, op{Kind: "fill", Text: []string{"red", "blue", "#123456"}[i%3]})
		}
	}
	return ops
}

func replay(g *Graphics, ops []op) {
	for _, o := range ops {
		switch o.Kind {
		case "rect":
			a := o.Args
			g.DrawRectangle(a[0], a[1], a[2], a[3], a[4], a[5], a[6], "")
		case "ellipse":
			a := o.Args
			g.DrawEllipse(a[0], a[1], a[2], a[3], a[4])
		case "text":
			g.DrawText(Text{Content: o.Text, X: o.Args[0], Y: o.Args[1], FontSize: 11, TextLength: 30, BackgroundColor: "#eee"})
		case "link":
			g.OpenLink(o.Text, "", "")
		case "fill":
			g.SetFill(o.Text)
		}
	}
}

func TestDeterministic(t *testing.T) {
	t.Parallel()
	ctx := log.WithTB(context.Background(), t, nil)

	ops := randomOps(200)
	render := func() []byte {
		g := New(&Opts{Seed: 1234, Scale: go2.Pointer(1.25), Hover: "#ff0000"})
		replay(g, ops)
		out, err := g.Finalize(ctx)
		require.NoError(t, err)
		return out
	}

	first := render()
	second := render()
	if !assert.Equal(t, string(first), string(second)) {
		t.Logf("ops: %s", xjson.MarshalIndent(ops))
	}

	var xmlParsed interface{}
	err := xml.Unmarshal(first, &xmlParsed)
	require.NoError(t, err, "invalid SVG XML")

	doc := query(t, string(first))
	rects := 0
	for _, o := range ops {
		if o.Kind == "rect" && o.Args[2] > 0 {
			rects++
		}
	}
	assert.Equal(t, rects, doc.Find("rect").Length())
}
