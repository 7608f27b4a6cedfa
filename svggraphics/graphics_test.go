package svggraphics

import (
	"context"
	"encoding/xml"
	"image"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/svgdraw/lib/color"
	"oss.terrastruct.com/svgdraw/lib/geo"
	"oss.terrastruct.com/svgdraw/lib/go2"
	"oss.terrastruct.com/svgdraw/lib/log"
	"oss.terrastruct.com/svgdraw/lib/svg"
)

func finalize(t *testing.T, g *Graphics) string {
	t.Helper()
	ctx := log.WithTB(context.Background(), t, nil)
	out, err := g.Finalize(ctx)
	require.NoError(t, err)
	return string(out)
}

func query(t *testing.T, out string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	return doc
}

func TestRectangleDocument(t *testing.T) {
	t.Parallel()

	g := New(nil)
	g.DrawRectangle(0, 0, 10, 10, 0, 0, 0, "")

	exp := `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1" viewBox="0 0 11 11" zoomAndPan="magnify" contentStyleType="text/css">
  <defs>
    <style type="text/css"><![CDATA[
.b0 {
  fill: black;
}

.l0 {
  stroke: black;
  stroke-width: 1px;
}
]]></style>
  </defs>
  <g>
    <rect x="0" y="0" width="10" height="10" class="l0 b0"/>
  </g>
</svg>
`
	assert.Equal(t, exp, finalize(t, g))
}

func TestScale(t *testing.T) {
	t.Parallel()

	g := New(&Opts{Scale: go2.Pointer(2.)})
	g.DrawRectangle(0, 0, 10, 10, 0, 0, 0, "")
	out := finalize(t, g)

	assert.Contains(t, out, `viewBox="0 0 22 22"`)
	assert.Contains(t, out, `<rect x="0" y="0" width="20" height="20" class="l0 b0"/>`)
	assert.Contains(t, out, "stroke-width: 2px;")
}

func TestMinimumSize(t *testing.T) {
	t.Parallel()

	g := New(&Opts{MinWidth: 100, MinHeight: 40.5})
	assert.Equal(t, geo.Dimension{Width: 101, Height: 41}, g.Extent())

	out := finalize(t, g)
	assert.Contains(t, out, `viewBox="0 0 101 41"`)
	// Nothing was styled so there is no stylesheet.
	assert.NotContains(t, out, "<style")
	assert.Contains(t, out, "<defs/>")
}

func TestDegenerateRectangle(t *testing.T) {
	t.Parallel()

	g := New(nil)
	g.DrawRectangle(50, 50, 0, 10, 0, 0, 0, "")
	g.DrawRectangle(50, 50, 10, -1, 0, 0, 3, "")
	assert.Equal(t, geo.Dimension{Width: 10, Height: 10}, g.Extent())

	out := finalize(t, g)
	doc := query(t, out)
	assert.Equal(t, 0, doc.Find("rect").Length())
	assert.Equal(t, 0, doc.Find("filter").Length())
}

func TestRoundedRectangle(t *testing.T) {
	t.Parallel()

	g := New(nil)
	g.DrawRectangle(1, 2, 3, 4, 5, 0, 0, "")
	g.DrawRectangle(1, 2, 3, 4, 5, 6, 0, "r")
	out := finalize(t, g)

	assert.Contains(t, out, `<rect x="1" y="2" width="3" height="4" class="l0 b0"/>`)
	assert.Contains(t, out, `<rect x="1" y="2" width="3" height="4" class="l0 b0" rx="5" ry="6" id="r"/>`)
}

func TestStyleInterning(t *testing.T) {
	t.Parallel()

	g := New(nil)
	g.SetFill("red")
	g.DrawRectangle(0, 0, 5, 5, 0, 0, 0, "")
	g.DrawRectangle(10, 0, 5, 5, 0, 0, 0, "")
	g.SetFill("blue")
	g.DrawRectangle(20, 0, 5, 5, 0, 0, 0, "")
	g.SetStroke("")
	g.SetStrokeWidth(2, "4 2")
	g.DrawLine(0, 0, 1, 1, 0)

	doc := query(t, finalize(t, g))
	rects := doc.Find("rect")
	require.Equal(t, 3, rects.Length())

	c0, _ := rects.Eq(0).Attr("class")
	c1, _ := rects.Eq(1).Attr("class")
	c2, _ := rects.Eq(2).Attr("class")
	assert.Equal(t, "l0 b0", c0)
	assert.Equal(t, c0, c1)
	assert.Equal(t, "l0 b1", c2)

	lc, _ := doc.Find("line").Attr("class")
	assert.Equal(t, "l1", lc)

	css := doc.Find("style").Text()
	assert.Contains(t, css, ".l1 {\n  stroke: none;\n  stroke-width: 2px;\n  stroke-dasharray: 4 2;\n}")
	assert.Equal(t, 1, strings.Count(css, "fill: red;"))
}

func TestPaintStateIsBakedIn(t *testing.T) {
	t.Parallel()

	g := New(nil)
	g.SetFill("red")
	g.DrawEllipse(5, 5, 2, 2, 0)
	g.SetFill("green")

	out := finalize(t, g)
	assert.Contains(t, out, "fill: red;")
	assert.NotContains(t, out, "green")
}

func TestShadow(t *testing.T) {
	t.Parallel()

	g := New(&Opts{Scale: go2.Pointer(1.5)})
	g.DrawEllipse(10, 10, 5, 5, 0)
	g.DrawEllipse(10, 10, 5, 5, 5)
	g.DrawRectangle(0, 0, 5, 5, 0, 0, 5, "")
	g.DrawPolygon(2, 0, 0, 1, 1, 2, 0)

	// (10+5+2*5, 10+5+2*5) is the furthest point.
	assert.Equal(t, geo.Dimension{Width: 26, Height: 26}, g.Extent())

	out := finalize(t, g)
	doc := query(t, out)
	assert.Equal(t, 1, doc.Find("defs > filter").Length())
	id, _ := doc.Find("defs > filter").Attr("id")
	assert.Equal(t, ShadowFilterID, id)
	assert.Equal(t, 1, strings.Count(out, "filter: url(#shadowFilter);"))
	assert.Contains(t, out, `stdDeviation="3"`)
	assert.Contains(t, out, `dx="6" dy="6"`)

	ellipses := doc.Find("ellipse")
	plain, _ := ellipses.Eq(0).Attr("class")
	shadowed, _ := ellipses.Eq(1).Attr("class")
	rect, _ := doc.Find("rect").Attr("class")
	assert.NotEqual(t, plain, shadowed)
	assert.Equal(t, shadowed, rect)
}

func TestHidden(t *testing.T) {
	t.Parallel()

	g := New(nil)
	g.SetHidden(true)
	assert.True(t, g.Hidden())
	g.DrawRectangle(0, 0, 30, 40, 0, 0, 1, "")
	g.DrawText(Text{Content: "x", X: 50, Y: 5, FontSize: 10, TextLength: 10, BackgroundColor: "#ffff00"})
	err := g.PaintBackgroundGradient("white", "black", color.GradientHorizontal)
	require.NoError(t, err)
	g.SetHidden(false)
	g.DrawLine(0, 0, 1, 1, 0)

	assert.Equal(t, geo.Dimension{Width: 61, Height: 43}, g.Extent())

	out := finalize(t, g)
	doc := query(t, out)
	assert.Equal(t, 0, doc.Find("rect").Length())
	assert.Equal(t, 0, doc.Find("text").Length())
	assert.Equal(t, 1, doc.Find("line").Length())
	assert.Equal(t, 2, doc.Find("defs > filter").Length())
	assert.Equal(t, 1, strings.Count(out, `<feFlood flood-color="#ffff00" result="flood"/>`))
	assert.Equal(t, 1, strings.Count(out, "<linearGradient "))
}

func TestPolygon(t *testing.T) {
	t.Parallel()

	g := New(&Opts{Scale: go2.Pointer(0.5)})
	g.DrawPolygon(0, 0, 0, 10, 0.25, 5, 20)
	assert.Equal(t, geo.Dimension{Width: 11, Height: 21}, g.Extent())

	out := finalize(t, g)
	assert.Contains(t, out, `<polygon points="0,0,5,0.125,2.5,10" class="l0 b0"/>`)

	assert.Panics(t, func() {
		New(nil).DrawPolygon(0, 1, 2, 3)
	})
}

func TestArc(t *testing.T) {
	t.Parallel()

	g := New(nil)
	g.DrawArc(5, 6, 0, 0, 20, 30)
	assert.Equal(t, geo.Dimension{Width: 21, Height: 31}, g.Extent())
	assert.Contains(t, finalize(t, g), `<path d="M0,0 A5,6 0 0 0 20 30" class="l0 b0"/>`)
}

func TestText(t *testing.T) {
	t.Parallel()

	g := New(&Opts{Seed: -42})
	g.SetFill("#333333")
	g.DrawText(Text{
		Content:         "a  b",
		X:               5,
		Y:               20,
		FontFamily:      "Monospaced",
		FontSize:        14,
		FontWeight:      "bold",
		TextDecoration:  "underline",
		TextLength:      40,
		Attributes:      []svg.Attr{{Name: "data-id", Value: "x"}},
		BackgroundColor: "yellow",
	})
	g.DrawText(Text{Content: "c", FontFamily: "sans-serif", FontSize: 14, TextLength: 5, BackgroundColor: "yellow"})
	g.DrawText(Text{Content: "d d", FontFamily: "Courier", FontSize: 14, TextLength: 5, BackgroundColor: "blue"})

	assert.Equal(t, geo.Dimension{Width: 46, Height: 21}, g.Extent())

	out := finalize(t, g)
	assert.Contains(t, out, `<text x="5" y="20" lengthAdjust="spacingAndGlyphs" textLength="40" filter="url(#b160)" data-id="x" class="t0">a`+nbsp+nbsp+`b</text>`)
	assert.Contains(t, out, `filter="url(#b160)" class="t1">c</text>`)
	assert.Contains(t, out, `filter="url(#b161)" class="t2">d`+nbsp+`d</text>`)
	assert.Contains(t, out, ".t0 {\n  fill: #333333;\n  font-size: 14px;\n  font-weight: bold;\n  text-decoration: underline;\n  font-family: monospace;\n}")

	doc := query(t, out)
	assert.Equal(t, 2, doc.Find("defs > filter").Length())
	assert.Equal(t, 2, strings.Count(out, "<feComposite "))
}

func TestGradients(t *testing.T) {
	t.Parallel()

	g := New(&Opts{Seed: 35})
	id, err := g.CreateGradient("red", "#00f", color.GradientHorizontal)
	require.NoError(t, err)
	assert.Equal(t, "gz0", id)

	again, err := g.CreateGradient("#ff0000", "blue", color.GradientHorizontal)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	other, err := g.CreateGradient("red", "blue", color.GradientVertical)
	require.NoError(t, err)
	assert.Equal(t, "gz1", other)

	_, err = g.CreateGradient("red", "nope", color.GradientVertical)
	assert.Error(t, err)

	out := finalize(t, g)
	assert.Equal(t, 2, strings.Count(out, "<linearGradient "))
	assert.Contains(t, out, `<linearGradient x1="0%" y1="50%" x2="100%" y2="50%" id="gz0">`)
}

func TestBackgroundGradient(t *testing.T) {
	t.Parallel()

	g := New(&Opts{Scale: go2.Pointer(2.)})
	err := g.PaintBackgroundGradient("white", "black", color.GradientDiagonalUp)
	require.NoError(t, err)
	g.DrawLine(0, 0, 30, 20, 0)

	out := finalize(t, g)
	assert.Contains(t, out, `<rect x="0" y="0" width="62" height="42" class="l0 b0"/>`)
	assert.Contains(t, out, ".b0 {\n  fill: url(#g00);\n}")
	assert.Contains(t, out, ".l0 {\n  stroke: none;\n  stroke-width: 2px;\n}")
	assert.Contains(t, out, `viewBox="0 0 62 42"`)
}

func TestRasterImage(t *testing.T) {
	t.Parallel()

	g := New(nil)
	err := g.DrawRasterImage(image.NewRGBA(image.Rect(0, 0, 2, 3)), 20, 1)
	require.NoError(t, err)
	assert.Equal(t, geo.Dimension{Width: 23, Height: 10}, g.Extent())

	out := finalize(t, g)
	assert.Contains(t, out, `<image width="2" height="3" x="20" y="1" xlink:href="data:image/png;base64,iVBORw0KGgo`)
}

func TestEmbeddedVector(t *testing.T) {
	t.Parallel()

	g := New(nil)
	err := g.DrawEmbeddedVector(EmbeddedSVG{
		Markup: `<svg width="5" height="5"><g><rect/></g><g/></svg>`,
		Scale:  1,
		Width:  5,
		Height: 30,
	}, 3, 4)
	require.NoError(t, err)
	err = g.DrawEmbeddedVector(EmbeddedSVG{
		Markup: `<svg><g id="x"/></svg>`,
		Scale:  2,
	}, 0, 0)
	require.NoError(t, err)
	err = g.DrawEmbeddedVector(EmbeddedSVG{
		Markup: "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
			"<!DOCTYPE svg PUBLIC \"-//W3C//DTD SVG 1.1//EN\" \"http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd\">\n" +
			"<!-- exported -->\n" +
			`<svg width="2" height="2"><g/></svg>`,
		Scale: 1,
	}, 7, 8)
	require.NoError(t, err)
	err = g.DrawEmbeddedVector(EmbeddedSVG{Markup: "<g/>"}, 0, 0)
	assert.Error(t, err)

	assert.Equal(t, geo.Dimension{Width: 10, Height: 35}, g.Extent())

	out := finalize(t, g)
	assert.Contains(t, out, `<svg x="3" y="4" width="5" height="5"><g><rect/></g><g/></svg>`)
	assert.Contains(t, out, `<svg x="0" y="0"><g transform="scale(2,2)" id="x"/></svg>`)
	assert.Contains(t, out, `<svg x="7" y="8" width="2" height="2"><g/></svg>`)
	assert.NotContains(t, out, "imagesvginlined")
	assert.Equal(t, 1, strings.Count(out, "<?xml"))
	assert.NotContains(t, out, "<!DOCTYPE")
	assert.NotContains(t, out, "exported")

	var xmlParsed interface{}
	err = xml.Unmarshal([]byte(out), &xmlParsed)
	assert.NoError(t, err)
}

func TestComment(t *testing.T) {
	t.Parallel()

	g := New(nil)
	g.AddComment("@startuml\na -- b\n@enduml")

	out := finalize(t, g)
	assert.Contains(t, out, MD5Header+MD5Hex("@startuml\na -- b\n@enduml")+"]\n@startuml\na - - b\n@enduml-->")
	assert.Equal(t, "0cc175b9c0f1b6a831c399e269772661", MD5Hex("a"))
}

func TestDimensionStyle(t *testing.T) {
	t.Parallel()

	g := New(&Opts{
		DimensionStyle:      true,
		Background:          "#fefefe",
		Scale:               go2.Pointer(1.5),
		PreserveAspectRatio: "none",
	})
	g.DrawLine(0, 0, 20, 10, 0)

	out := finalize(t, g)
	assert.Contains(t, out, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1" style="width:31px;height:16px;background:#fefefe;" width="31.5px" height="16.5px" viewBox="0 0 31 16" zoomAndPan="magnify" preserveAspectRatio="none" contentStyleType="text/css">`)
}

func TestFinalizeTwice(t *testing.T) {
	t.Parallel()

	g := New(nil)
	finalize(t, g)
	assert.Panics(t, func() {
		g.Finalize(context.Background())
	})
}

func TestSeed36(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", seed36(0))
	assert.Equal(t, "16", seed36(42))
	assert.Equal(t, "16", seed36(-42))
	assert.Equal(t, "1y2p0ij32e8e8", seed36(-1<<63))
}
