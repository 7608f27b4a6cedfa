// Package xmain is the shared main of the svgdraw commands. It wires the cmdlog
// logger, env backed flags, stdio paths and signal driven shutdown around a RunFunc
// and turns the error it returns into an exit code.
package xmain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"oss.terrastruct.com/cmdlog"
	"oss.terrastruct.com/xos"

	"oss.terrastruct.com/svgdraw/lib/log"
)

// StdioPath is the path argument that reads stdin or writes stdout.
const StdioPath = "-"

// ShutdownTimeout is how long a RunFunc has to return once a signal canceled it.
var ShutdownTimeout = time.Minute

type RunFunc func(context.Context, *State) error

type State struct {
	Name string

	Stdin  io.Reader
	Stdout io.WriteCloser
	Stderr io.WriteCloser

	Log  *cmdlog.Logger
	Env  *xos.Env
	Opts *Opts
}

// NewState builds the State of a command named name invoked with args.
func NewState(name string, args []string, env *xos.Env) *State {
	ms := &State{
		Name:   name,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Env:    env,
	}
	ms.Log = cmdlog.Log(ms.Env, ms.Stderr)
	ms.Opts = NewOpts(ms.Env, ms.Log, args)
	return ms
}

// Main runs run as the process main and exits with its status.
func Main(run RunFunc) {
	var args []string
	name := "svgdraw"
	if len(os.Args) > 0 {
		name = filepath.Base(os.Args[0])
		args = os.Args[1:]
	}
	ms := NewState(name, args, xos.NewEnv(os.Environ()))

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	ctx := log.Stderr(context.Background())
	err := ms.Main(ctx, sigs, run)
	log.Sync(ctx)

	code, msg := ms.exitStatus(err)
	if msg != "" {
		ms.Log.Error.Print(msg)
	}
	os.Exit(code)
}

// exitStatus maps the error of a RunFunc to an exit code and the message to print.
func (ms *State) exitStatus(err error) (int, string) {
	if err == nil {
		return 0, ""
	}
	var eerr ExitError
	if errors.As(err, &eerr) {
		return eerr.Code, eerr.Message
	}
	var uerr UsageError
	if errors.As(err, &uerr) {
		return 1, fmt.Sprintf("%s\nRun %s --help to see usage.", err, ms.Name)
	}
	return 1, err.Error()
}

// Main calls run and waits for it. A signal cancels ctx; run then has ShutdownTimeout
// to return. SIGTERM is a clean exit, any other signal exits 1.
func (ms *State) Main(ctx context.Context, sigs <-chan os.Signal, run RunFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, ms)
	}()

	var sig os.Signal
	select {
	case err := <-done:
		return err
	case sig = <-sigs:
	}

	ms.Log.Warn.Printf("received signal %v: shutting down...", sig)
	cancel()

	timer := time.NewTimer(ShutdownTimeout)
	defer timer.Stop()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("failed to shutdown: %w", err)
		}
		if sig == syscall.SIGTERM {
			return nil
		}
		return ExitError{Code: 1}
	case <-timer.C:
		return ExitErrorf(1, "took longer than %v to shutdown: exiting forcefully", ShutdownTimeout)
	}
}

// ExitError ends the command with Code, printing Message when set.
type ExitError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func ExitErrorf(code int, msg string, v ...interface{}) ExitError {
	return ExitError{
		Code:    code,
		Message: fmt.Sprintf(msg, v...),
	}
}

func (ee ExitError) Error() string {
	s := fmt.Sprintf("exiting with code %d", ee.Code)
	if ee.Message != "" {
		s += ": " + ee.Message
	}
	return s
}

// UsageError is a bad invocation. The user is pointed at --help.
type UsageError struct {
	Message string `json:"message"`
}

func UsageErrorf(msg string, v ...interface{}) UsageError {
	return UsageError{
		Message: fmt.Sprintf(msg, v...),
	}
}

func (ue UsageError) Error() string {
	return fmt.Sprintf("bad usage: %s", ue.Message)
}

// ReadPath reads a script from fp, or from stdin when fp is StdioPath.
func (ms *State) ReadPath(fp string) ([]byte, error) {
	if fp == StdioPath {
		return io.ReadAll(ms.Stdin)
	}
	return os.ReadFile(fp)
}

// WritePath writes a rendered document to fp, creating its directory, or to stdout
// when fp is StdioPath. Stdout is closed after the write so it carries exactly one
// document.
func (ms *State) WritePath(fp string, p []byte) error {
	if fp == StdioPath {
		_, err := ms.Stdout.Write(p)
		if err != nil {
			return err
		}
		return ms.Stdout.Close()
	}
	err := os.MkdirAll(filepath.Dir(fp), 0755)
	if err != nil {
		return err
	}
	return os.WriteFile(fp, p, 0644)
}
