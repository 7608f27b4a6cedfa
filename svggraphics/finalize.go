package svggraphics

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"cdr.dev/slog"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/svgdraw/lib/log"
	"oss.terrastruct.com/svgdraw/lib/svg"
)

const MD5Header = "<!--MD5=["

func MD5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// AddComment adds a comment carrying text and its MD5 fingerprint. Tools compare the
// fingerprint to skip regenerating unchanged diagrams.
func (g *Graphics) AddComment(text string) {
	g.current().AppendChild(svg.NewComment("MD5=[" + MD5Hex(text) + "]\n" + text))
}

// Finalize sizes the canvas, writes the stylesheet and serializes the document.
// It must be called exactly once.
func (g *Graphics) Finalize(ctx context.Context) (_ []byte, err error) {
	if g.finalized {
		panic("svggraphics: Finalize called twice")
	}
	g.finalized = true
	defer xdefer.Errorf(&err, "failed to finalize svg")

	for len(g.links) > 0 {
		g.CloseLink()
	}

	width, height := g.extent.Scaled(g.scale)
	if g.opts.DimensionStyle {
		style := fmt.Sprintf("width:%dpx;height:%dpx;", width, height)
		if g.opts.Background != "" {
			style += "background:" + g.opts.Background + ";"
		}
		g.root.SetAttr("style", style)
		g.root.SetAttr("width", g.format(g.extent.MaxX)+"px")
		g.root.SetAttr("height", g.format(g.extent.MaxY)+"px")
	}
	g.root.SetAttr("viewBox", fmt.Sprintf("0 0 %d %d", width, height))
	g.root.SetAttr("zoomAndPan", "magnify")
	if g.opts.PreserveAspectRatio != "" {
		g.root.SetAttr("preserveAspectRatio", g.opts.PreserveAspectRatio)
	}
	g.root.SetAttr("contentStyleType", "text/css")

	if g.pendingBackground != nil {
		g.pendingBackground.SetAttr("width", g.format(g.extent.MaxX))
		g.pendingBackground.SetAttr("height", g.format(g.extent.MaxY))
	}

	if css := g.styles.Flush(); css != "" {
		el := svg.NewElement("style")
		el.SetAttr("type", "text/css")
		el.CDATA = css
		g.defs.AppendChild(el)
	}

	buf := &bytes.Buffer{}
	_, err = g.doc.WriteTo(buf)
	if err != nil {
		return nil, err
	}

	out := buf.String()
	for _, e := range g.embedded {
		out = strings.Replace(out, "<"+e.placeholder+"/>", e.markup, 1)
	}

	log.Debug(ctx, "finalized svg",
		slog.F("width", width),
		slog.F("height", height),
		slog.F("classes", g.styles.Len()),
		slog.F("embedded", len(g.embedded)),
	)
	return []byte(out), nil
}
