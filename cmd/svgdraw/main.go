package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cdr.dev/slog"
	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"oss.terrastruct.com/svgdraw/lib/go2"
	"oss.terrastruct.com/svgdraw/lib/log"
	"oss.terrastruct.com/svgdraw/lib/svg/style"
	"oss.terrastruct.com/svgdraw/lib/version"
	"oss.terrastruct.com/svgdraw/lib/xmain"
	"oss.terrastruct.com/svgdraw/svgscript"
)

func main() {
	xmain.Main(run)
}

func run(ctx context.Context, ms *xmain.State) (err error) {
	scaleFlag, err := ms.Opts.Float64("SVGDRAW_SCALE", "scale", "s", 0, "scale factor applied to every coordinate. Overrides the script and config when non-zero.")
	if err != nil {
		return err
	}
	seedFlag, err := ms.Opts.Int64("SVGDRAW_SEED", "seed", "", 0, "seed for filter and gradient ids. Overrides the script and config when non-zero.")
	if err != nil {
		return err
	}
	dimensionFlag, err := ms.Opts.Bool("SVGDRAW_DIMENSION_STYLE", "dimension-style", "", false, "write width and height into the root style attribute instead of as attributes.")
	if err != nil {
		return err
	}
	configFlag := ms.Opts.String("SVGDRAW_CONFIG", "config", "c", "", "path to a TOML file with default options.")
	watchFlag, err := ms.Opts.Bool("SVGDRAW_WATCH", "watch", "w", false, "watch the input and render again on every change.")
	if err != nil {
		return err
	}
	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		return err
	}
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}

	err = ms.Opts.Parse()
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}
	if err != nil {
		return err
	}

	if *versionFlag {
		fmt.Fprintln(ms.Stdout, version.Version)
		return nil
	}
	if *debugFlag {
		ms.Env.Setenv("DEBUG", "1")
		ctx = log.Leveled(ctx, slog.LevelDebug)
	}

	args := ms.Opts.Args
	if len(args) == 0 {
		help(ms)
		return xmain.UsageErrorf("input argument required")
	}
	if len(args) > 2 {
		return xmain.UsageErrorf("too many arguments passed")
	}
	inputPath := args[0]
	outputDir := "out"
	if len(args) == 2 {
		outputDir = args[1]
	}

	opts, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}
	override := svgscript.Options{
		Seed:           *seedFlag,
		DimensionStyle: *dimensionFlag,
	}
	if *scaleFlag != 0 {
		override.Scale = go2.Pointer(*scaleFlag)
	}
	opts = opts.Merge(override)
	style.SetExtraLines(opts.ExtraStyles...)

	r := &renderer{
		ms:        ms,
		opts:      opts,
		inputPath: inputPath,
		outputDir: outputDir,
	}

	if *watchFlag {
		if inputPath == xmain.StdioPath {
			return xmain.UsageErrorf("-w[atch] cannot be combined with reading input from stdin")
		}
		w, err := newWatcher(ctx, r)
		if err != nil {
			return err
		}
		return w.run()
	}

	ctx, cancel := log.WithTimeout(ctx, time.Minute*2)
	defer cancel()

	_, err = r.renderAll(ctx)
	return err
}

func loadConfig(fp string) (svgscript.Options, error) {
	var opts svgscript.Options
	if fp == "" {
		return opts, nil
	}
	md, err := toml.DecodeFile(fp, &opts)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return opts, xmain.UsageErrorf("config %q does not exist", fp)
		}
		return opts, fmt.Errorf("failed to read config %q: %w", fp, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return opts, fmt.Errorf("config %q: unknown key %q", filepath.Base(fp), undecoded[0].String())
	}
	return opts, nil
}
