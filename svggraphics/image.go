package svggraphics

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"regexp"
	"strconv"
	"strings"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/svgdraw/lib/svg"
)

// DrawRasterImage embeds img as a base64 PNG with its top left corner at (x, y).
func (g *Graphics) DrawRasterImage(img image.Image, x, y float64) (err error) {
	defer xdefer.Errorf(&err, "failed to embed raster image")

	b := img.Bounds()
	width, height := float64(b.Dx()), float64(b.Dy())
	if !g.hidden {
		buf := &bytes.Buffer{}
		err = png.Encode(buf, img)
		if err != nil {
			return err
		}

		el := svg.NewElement("image")
		el.SetAttr("width", g.format(width))
		el.SetAttr("height", g.format(height))
		el.SetAttr("x", g.format(x))
		el.SetAttr("y", g.format(y))
		el.SetAttr("xlink:href", "data:image/png;base64,"+base64.StdEncoding.EncodeToString(buf.Bytes()))
		g.appendElement(el)
	}
	g.ensureVisible(x, y)
	g.ensureVisible(x+width, y+height)
	return nil
}

// EmbeddedSVG is an already rendered SVG document to nest inside this one.
type EmbeddedSVG struct {
	Markup string
	// Scale is the scale Markup was rendered with.
	Scale  float64
	Width  float64
	Height float64
}

type embeddedSVG struct {
	placeholder string
	markup      string
}

var groupOpenRe = regexp.MustCompile(`<g\b`)

// DrawEmbeddedVector nests v with its top left corner at (x, y). The markup is
// spliced in textually when the document is finalized. Anything ahead of the outer
// <svg> element, such as an XML declaration or a doctype, is dropped.
func (g *Graphics) DrawEmbeddedVector(v EmbeddedSVG, x, y float64) error {
	if !g.hidden {
		i := strings.Index(v.Markup, "<svg")
		if i < 0 {
			return fmt.Errorf("failed to embed svg: no <svg> element found")
		}
		markup := v.Markup[i:]
		if s := v.Scale * g.scale; s != 1 {
			if loc := groupOpenRe.FindStringIndex(markup); loc != nil {
				transform := fmt.Sprintf(`<g transform="scale(%s,%s)"`, svg.Format(s), svg.Format(s))
				markup = markup[:loc[0]] + transform + markup[loc[1]:]
			}
		}

		i = len("<svg")
		markup = markup[:i] + fmt.Sprintf(` x="%s" y="%s"`, g.format(x), g.format(y)) + markup[i:]

		placeholder := "imagesvginlined" + strconv.Itoa(len(g.embedded))
		g.embedded = append(g.embedded, embeddedSVG{placeholder: placeholder, markup: markup})
		g.appendElement(svg.NewElement(placeholder))
	}
	g.ensureVisible(x, y)
	g.ensureVisible(x+v.Width, y+v.Height)
	return nil
}
