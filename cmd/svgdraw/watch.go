package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"oss.terrastruct.com/svgdraw/lib/log"
)

type watcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	r *renderer

	renderCh chan struct{}

	fw *fsnotify.Watcher

	closeOnce sync.Once

	errMu sync.Mutex
	err   error
}

func newWatcher(ctx context.Context, r *renderer) (*watcher, error) {
	ctx, cancel := context.WithCancel(ctx)

	w := &watcher{
		ctx:    ctx,
		cancel: cancel,

		r: r,

		renderCh: make(chan struct{}, 1),
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		cancel()
		return nil, err
	}
	w.fw = fw
	return w, nil
}

func (w *watcher) run() error {
	defer w.close()

	w.goFunc(w.watchLoop)
	w.goFunc(w.renderLoop)

	w.wg.Wait()
	w.close()
	return w.err
}

func (w *watcher) close() {
	w.closeOnce.Do(func() {
		w.cancel()
		err := w.fw.Close()
		w.setErr(err)
	})
}

func (w *watcher) setErr(err error) {
	w.errMu.Lock()
	if w.err == nil {
		w.err = err
	}
	w.errMu.Unlock()
}

func (w *watcher) goFunc(fn func(context.Context) error) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.cancel()

		err := fn(w.ctx)
		w.setErr(err)
	}()
}

// watchLoop requests a render on every burst of events on the input. Events are
// unreliable so the input is also polled for a changed modification time.
func (w *watcher) watchLoop(ctx context.Context) error {
	lastModified, err := w.ensureAddWatch(ctx)
	if err != nil {
		return err
	}
	w.r.ms.Log.Info.Printf("rendering %v...", w.r.inputPath)
	w.requestRender()

	eatBurstTimer := time.NewTimer(0)
	<-eatBurstTimer.C
	pollTicker := time.NewTicker(time.Second * 10)
	defer pollTicker.Stop()

	for {
		select {
		case <-pollTicker.C:
			mt, err := w.ensureAddWatch(ctx)
			if err != nil {
				return err
			}
			if !mt.Equal(lastModified) {
				lastModified = mt
				w.requestRender()
			}
		case ev, ok := <-w.fw.Events:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			w.r.ms.Log.Debug.Printf("received file system event %v", ev)
			mt, err := w.ensureAddWatch(ctx)
			if err != nil {
				return err
			}
			if ev.Op == fsnotify.Chmod {
				if mt.Equal(lastModified) {
					// See https://github.com/fsnotify/fsnotify/issues/15
					continue
				}
				lastModified = mt
			}
			// Editors often write a file as several events. Wait for them to settle so
			// a half written script is not rendered.
			eatBurstTimer.Reset(time.Millisecond * 32)
		case <-eatBurstTimer.C:
			w.r.ms.Log.Info.Printf("detected change in %v: rendering again...", w.r.inputPath)
			w.requestRender()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			w.r.ms.Log.Error.Printf("fsnotify error: %v", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *watcher) requestRender() {
	select {
	case w.renderCh <- struct{}{}:
	default:
	}
}

func (w *watcher) ensureAddWatch(ctx context.Context) (time.Time, error) {
	interval := time.Second
	tc := time.NewTimer(0)
	<-tc.C
	for {
		mt, err := w.addWatch()
		if err == nil {
			return mt, nil
		}
		w.r.ms.Log.Error.Printf("failed to watch %q: %v (retrying in %v)", w.r.inputPath, err, interval)

		tc.Reset(interval)
		select {
		case <-tc.C:
			if interval < time.Second*16 {
				interval *= 2
			}
		case <-ctx.Done():
			return time.Time{}, ctx.Err()
		}
	}
}

func (w *watcher) addWatch() (time.Time, error) {
	err := w.fw.Add(w.r.inputPath)
	if err != nil {
		return time.Time{}, err
	}
	d, err := os.Stat(w.r.inputPath)
	if err != nil {
		return time.Time{}, err
	}
	return d.ModTime(), nil
}

// renderLoop renders on every request. Failures are logged and the loop waits for
// the next change.
func (w *watcher) renderLoop(ctx context.Context) error {
	first := true
	for {
		select {
		case <-w.renderCh:
		case <-ctx.Done():
			return ctx.Err()
		}

		prefix := ""
		if !first {
			prefix = "re"
		}
		first = false

		rctx, cancel := log.WithTimeout(ctx, time.Minute*2)
		outputs, err := w.r.renderAll(rctx)
		cancel()
		if err != nil {
			w.r.ms.Log.Error.Print(fmt.Errorf("failed to %srender: %w", prefix, err))
			continue
		}
		w.r.ms.Log.Success.Printf("successfully %srendered %d scripts into %v", prefix, len(outputs), w.r.outputDir)
	}
}
