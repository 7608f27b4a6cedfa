package svgscript

import (
	"context"
	"fmt"
	"image"

	"cdr.dev/slog"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/svgdraw/lib/color"
	"oss.terrastruct.com/svgdraw/lib/geo"
	"oss.terrastruct.com/svgdraw/lib/log"
	"oss.terrastruct.com/svgdraw/lib/svg"
	"oss.terrastruct.com/svgdraw/svggraphics"
)

// Loader resolves the images and SVG documents scripts reference.
type Loader interface {
	Image(ctx context.Context, src string) (image.Image, error)
	SVG(ctx context.Context, src string) (string, error)
}

// Run draws s onto a new Graphics and returns the finalized document.
func Run(ctx context.Context, s *Script, loader Loader) (_ []byte, err error) {
	defer xdefer.Errorf(&err, "failed to run script")

	g := svggraphics.New(s.Options.GraphicsOpts())
	err = Replay(ctx, g, s.Ops, loader)
	if err != nil {
		return nil, err
	}
	return g.Finalize(ctx)
}

type replayer struct {
	g        *svggraphics.Graphics
	loader   Loader
	pathOpen bool
}

// Replay applies ops to g in order. It stops at the first failing op.
func Replay(ctx context.Context, g *svggraphics.Graphics, ops []Op, loader Loader) error {
	r := &replayer{g: g, loader: loader}
	for i, op := range ops {
		err := r.apply(ctx, op)
		if err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Op, err)
		}
	}
	if r.pathOpen {
		log.Warn(ctx, "script ended with an unfilled path")
	}
	log.Debug(ctx, "replayed script", slog.F("ops", len(ops)))
	return nil
}

func (r *replayer) apply(ctx context.Context, op Op) error {
	g := r.g
	switch op.Op {
	case "fill":
		g.SetFill(op.Color)
	case "stroke":
		g.SetStroke(op.Color)
	case "strokeWidth":
		g.SetStrokeWidth(op.Width, op.Dash)
	case "hidden":
		g.SetHidden(op.Hidden)

	case "rect":
		g.DrawRectangle(op.X, op.Y, op.Width, op.Height, op.Rx, op.Ry, op.Shadow, op.ID)
	case "ellipse":
		g.DrawEllipse(op.X, op.Y, op.Rx, op.Ry, op.Shadow)
	case "line":
		g.DrawLine(op.X1, op.Y1, op.X2, op.Y2, op.Shadow)
	case "arc":
		g.DrawArc(op.Rx, op.Ry, op.X1, op.Y1, op.X2, op.Y2)
	case "polygon":
		if len(op.Points)%2 != 0 {
			return fmt.Errorf("expected an even number of points, got %d", len(op.Points))
		}
		g.DrawPolygon(op.Shadow, op.Points...)
	case "path":
		path, err := toPath(op)
		if err != nil {
			return err
		}
		g.DrawPath(op.X, op.Y, path, op.Shadow)

	case "beginPath":
		g.BeginPath()
		r.pathOpen = true
	case "moveTo", "lineTo", "curveTo", "quadTo", "closePath", "fillPath":
		if !r.pathOpen {
			return fmt.Errorf("no open path, use beginPath first")
		}
		switch op.Op {
		case "moveTo":
			g.MoveTo(op.X, op.Y)
		case "lineTo":
			g.LineTo(op.X, op.Y)
		case "curveTo":
			g.CurveTo(op.X1, op.Y1, op.X2, op.Y2, op.X3, op.Y3)
		case "quadTo":
			g.QuadTo(op.X1, op.Y1, op.X2, op.Y2)
		case "closePath":
			g.ClosePath()
		case "fillPath":
			rule := svggraphics.NonZero
			if op.Rule == "evenodd" {
				rule = svggraphics.EvenOdd
			}
			g.FillPath(rule)
			r.pathOpen = false
		}

	case "text":
		attrs := make([]svg.Attr, len(op.Attributes))
		for i, a := range op.Attributes {
			attrs[i] = svg.Attr{Name: a.Name, Value: a.Value}
		}
		g.DrawText(svggraphics.Text{
			Content:         op.Text,
			X:               op.X,
			Y:               op.Y,
			FontFamily:      op.FontFamily,
			FontSize:        op.FontSize,
			FontWeight:      op.FontWeight,
			FontStyle:       op.FontStyle,
			TextDecoration:  op.TextDecoration,
			TextLength:      op.TextLength,
			Attributes:      attrs,
			BackgroundColor: op.BackgroundColor,
		})

	case "code":
		return r.drawCode(op)

	case "image":
		if r.loader == nil {
			return fmt.Errorf("no loader for %q", op.Src)
		}
		img, err := r.loader.Image(ctx, op.Src)
		if err != nil {
			return err
		}
		return g.DrawRasterImage(img, op.X, op.Y)
	case "svg":
		if r.loader == nil {
			return fmt.Errorf("no loader for %q", op.Src)
		}
		markup, err := r.loader.SVG(ctx, op.Src)
		if err != nil {
			return err
		}
		scale := op.Scale
		if scale == 0 {
			scale = 1
		}
		return g.DrawEmbeddedVector(svggraphics.EmbeddedSVG{
			Markup: markup,
			Scale:  scale,
			Width:  op.Width,
			Height: op.Height,
		}, op.X, op.Y)

	case "openLink":
		if op.URL == "" {
			return fmt.Errorf("missing url")
		}
		g.OpenLink(op.URL, op.Title, op.Target)
	case "closeLink":
		g.CloseLink()
	case "comment":
		g.AddComment(op.Text)

	case "gradient":
		id, err := g.CreateGradient(op.Color, op.Color2, color.ParseGradientPolicy(op.Policy))
		if err != nil {
			return err
		}
		g.SetFill("url(#" + id + ")")
	case "backgroundGradient":
		return g.PaintBackgroundGradient(op.Color, op.Color2, color.ParseGradientPolicy(op.Policy))

	default:
		return fmt.Errorf("unknown op")
	}
	return nil
}

var segmentArity = map[string]int{
	"M": 2,
	"L": 2,
	"Q": 4,
	"C": 6,
	"A": 7,
	"Z": 0,
}

func toPath(op Op) (svggraphics.Path, error) {
	path := svggraphics.Path{ID: op.ID}
	for i, s := range op.Segments {
		n, ok := segmentArity[s.Kind]
		if !ok {
			return path, fmt.Errorf("segment %d: unknown kind %q", i, s.Kind)
		}
		if len(s.Args) != n {
			return path, fmt.Errorf("segment %d: %s takes %d args, got %d", i, s.Kind, n, len(s.Args))
		}
		ps, _ := geo.Pairs(s.Args[:n/2*2]...)

		var seg svggraphics.Segment
		switch s.Kind {
		case "M":
			seg = svggraphics.MoveTo{P: ps[0]}
		case "L":
			seg = svggraphics.LineTo{P: ps[0]}
		case "Q":
			seg = svggraphics.QuadTo{C: ps[0], P: ps[1]}
		case "C":
			seg = svggraphics.CubicTo{C1: ps[0], C2: ps[1], P: ps[2]}
		case "A":
			a := s.Args
			seg = svggraphics.ArcTo{
				Rx:       a[0],
				Ry:       a[1],
				Rotation: a[2],
				LargeArc: a[3],
				Sweep:    a[4],
				P:        geo.Point{X: a[5], Y: a[6]},
			}
		case "Z":
			seg = svggraphics.Close{}
		}
		path.Segments = append(path.Segments, seg)
	}
	return path, nil
}
