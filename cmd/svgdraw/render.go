package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/svgdraw/lib/go2"
	"oss.terrastruct.com/svgdraw/lib/imgbundler"
	"oss.terrastruct.com/svgdraw/lib/log"
	"oss.terrastruct.com/svgdraw/lib/xmain"
	"oss.terrastruct.com/svgdraw/svgscript"
)

type renderer struct {
	ms *xmain.State
	// opts are applied over the options of every script.
	opts      svgscript.Options
	inputPath string
	outputDir string
}

// renderAll renders every input script and returns the paths written. Scripts are
// rendered concurrently, each onto its own Graphics. A failing script does not stop
// the others.
func (r *renderer) renderAll(ctx context.Context) ([]string, error) {
	if r.inputPath == xmain.StdioPath {
		loader, err := imgbundler.NewLoader(".", 0)
		if err != nil {
			return nil, err
		}
		return []string{xmain.StdioPath}, r.render(ctx, loader, xmain.StdioPath, xmain.StdioPath)
	}

	inputs, err := r.inputs()
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, xmain.UsageErrorf("no .json scripts in %q", r.inputPath)
	}
	loader, err := imgbundler.NewLoader(filepath.Dir(inputs[0]), 0)
	if err != nil {
		return nil, err
	}

	outputs := make([]string, len(inputs))
	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i, in := range inputs {
		i, in := i, in
		outputs[i] = r.outputPath(in)
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = r.render(ctx, loader, in, outputs[i])
		}()
	}
	wg.Wait()

	var written []string
	failed := 0
	for i, err := range errs {
		if err != nil {
			r.ms.Log.Error.Print(err)
			failed++
			continue
		}
		r.ms.Log.Success.Printf("successfully rendered %v to %v", inputs[i], outputs[i])
		written = append(written, outputs[i])
	}
	if failed > 0 {
		return written, xmain.ExitErrorf(1, "failed to render %d of %d scripts", failed, len(inputs))
	}
	return written, nil
}

func (r *renderer) render(ctx context.Context, loader *imgbundler.Loader, inputPath, outputPath string) (err error) {
	defer xdefer.Errorf(&err, "failed to render %v", inputPath)
	ctx = log.Named(ctx, filepath.Base(inputPath))

	in, err := r.ms.ReadPath(inputPath)
	if err != nil {
		return err
	}
	s, err := svgscript.Decode(bytes.NewReader(in))
	if err != nil {
		return err
	}
	s.Options = s.Options.Merge(r.opts)

	out, err := svgscript.Run(ctx, s, loader)
	if err != nil {
		return err
	}
	return r.ms.WritePath(outputPath, out)
}

// inputs returns inputPath itself, or the .json files directly inside it when it is
// a directory.
func (r *renderer) inputs() ([]string, error) {
	fi, err := os.Stat(r.inputPath)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return []string{r.inputPath}, nil
	}

	entries, err := os.ReadDir(r.inputPath)
	if err != nil {
		return nil, err
	}
	entries = go2.Filter(entries, func(e os.DirEntry) bool {
		return !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".json")
	})
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = filepath.Join(r.inputPath, e.Name())
	}
	return paths, nil
}

func (r *renderer) outputPath(inputPath string) string {
	return filepath.Join(r.outputDir, renameExt(filepath.Base(inputPath), ".svg"))
}

func renameExt(fp string, newExt string) string {
	ext := filepath.Ext(fp)
	if ext == "" {
		return fp + newExt
	}
	return strings.TrimSuffix(fp, ext) + newExt
}
