package svgscript

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"

	"oss.terrastruct.com/svgdraw/svggraphics"
)

const (
	defaultCodeTheme    = "github"
	defaultCodeFontSize = 14
	tabWidth            = 4
)

// drawCode draws op.Text syntax highlighted, one text element per token, on a
// monospace grid anchored at the baseline of the first line. The fill is restored
// afterwards.
func (r *replayer) drawCode(op Op) error {
	lexer := lexers.Get(op.Language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	theme := op.Theme
	if theme == "" {
		theme = defaultCodeTheme
	}
	style := styles.Get(theme)

	it, err := lexer.Tokenise(nil, op.Text)
	if err != nil {
		return err
	}

	fontSize := op.FontSize
	if fontSize == 0 {
		fontSize = defaultCodeFontSize
	}
	charWidth := op.CharWidth
	if charWidth == 0 {
		charWidth = fontSize * 0.6
	}
	lineHeight := op.LineHeight
	if lineHeight == 0 {
		lineHeight = fontSize * 1.2
	}

	g := r.g
	fill := g.Fill()
	defer g.SetFill(fill)

	for i, line := range chroma.SplitTokensIntoLines(it.Tokens()) {
		x := op.X
		y := op.Y + float64(i)*lineHeight
		for _, tok := range line {
			v := strings.ReplaceAll(tok.Value, "\t", strings.Repeat(" ", tabWidth))
			v = strings.TrimRight(v, "\r\n")

			trimmed := strings.TrimLeft(v, " ")
			lead := len(v) - len(trimmed)
			trimmed = strings.TrimRight(trimmed, " ")
			if trimmed != "" {
				entry := style.Get(tok.Type)
				c := fill
				if entry.Colour.IsSet() {
					c = entry.Colour.String()
				}
				t := svggraphics.Text{
					Content:    trimmed,
					X:          x + float64(lead)*charWidth,
					Y:          y,
					FontFamily: "monospace",
					FontSize:   fontSize,
					TextLength: float64(utf8.RuneCountInString(trimmed)) * charWidth,
				}
				if entry.Bold == chroma.Yes {
					t.FontWeight = "bold"
				}
				if entry.Italic == chroma.Yes {
					t.FontStyle = "italic"
				}
				g.SetFill(c)
				g.DrawText(t)
			}
			x += float64(utf8.RuneCountInString(v)) * charWidth
		}
	}
	return nil
}
