package main

import (
	"fmt"

	"oss.terrastruct.com/svgdraw/lib/version"
	"oss.terrastruct.com/svgdraw/lib/xmain"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s
Usage:
  %[1]s [--watch] [--config path] input.json [output dir]
  %[1]s [--watch] [--config path] scripts/ [output dir]

%[1]s renders JSON drawing scripts into SVG documents. Every input script
<name>.json is written to <output dir>/<name>.svg. The output dir defaults to out.
Pass - as the input to read a script from stdin and write the SVG to stdout.

Flags:
%[3]s

See the svgscript package documentation for the script format.
`, ms.Name, "v"+version.OnlyNumbers(), ms.Opts.Help())
}
