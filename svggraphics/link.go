package svggraphics

import (
	"strings"

	"oss.terrastruct.com/svgdraw/lib/svg"
)

// OpenLink makes every following primitive clickable until CloseLink. An already open
// link is closed first. An empty title defaults to url, a literal `\n` in it becomes
// a line break. javascript: URLs are ignored unless Opts.AllowJavascriptLinks is set.
func (g *Graphics) OpenLink(url, title, target string) {
	if !g.opts.AllowJavascriptLinks && isJavascriptURL(url) {
		return
	}
	if len(g.links) > 0 {
		g.CloseLink()
	}

	if title == "" {
		title = url
	} else {
		title = strings.ReplaceAll(title, `\n`, "\n")
	}

	a := svg.NewElement("a")
	if target != "" {
		a.SetAttr("target", target)
	}
	a.SetAttr("href", url)
	a.SetAttr("xlink:href", url)
	a.SetAttr("xlink:type", "simple")
	a.SetAttr("xlink:actuate", "onRequest")
	a.SetAttr("xlink:show", "new")
	a.SetAttr("title", title)
	a.SetAttr("xlink:title", title)
	g.links = append(g.links, a)
}

// isJavascriptURL reports whether a browser would resolve url to the javascript
// scheme. Browsers strip leading control characters and spaces and remove tabs and
// line breaks anywhere in a URL before reading its scheme.
func isJavascriptURL(url string) bool {
	url = strings.TrimLeftFunc(url, func(r rune) bool {
		return r <= 0x20
	})
	url = tabsAndNewlines.Replace(url)
	return strings.HasPrefix(strings.ToLower(url), "javascript")
}

var tabsAndNewlines = strings.NewReplacer("\t", "", "\n", "", "\r", "")

// CloseLink closes the open link. Links wrapping nothing are dropped.
func (g *Graphics) CloseLink() {
	if len(g.links) == 0 {
		return
	}
	a := g.links[len(g.links)-1]
	g.links = g.links[:len(g.links)-1]
	if a.HasChildren() {
		g.current().AppendChild(a)
	}
}
