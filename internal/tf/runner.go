package tf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joelmoss/tfx/internal/errs"
)

// Listener receives the output of one tf process. StdoutLine and StderrLine
// may be called concurrently from different goroutines.
type Listener interface {
	StdoutLine(line string)
	StderrLine(line string)
	// Exception reports that the process could not be started or was
	// terminated abnormally.
	Exception(err error)
	Exit(code int)
}

// Runner starts a tf process for the given arguments and streams its output
// to the listener. Start must not block until the process exits.
type Runner interface {
	Start(args *ArgumentBuilder, l Listener)
}

// ExecRunner runs the tf executable at Path.
type ExecRunner struct {
	Path string
	// Env is appended to the current environment.
	Env []string
}

func (r *ExecRunner) Start(args *ArgumentBuilder, l Listener) {
	go r.run(args, l)
}

func (r *ExecRunner) run(args *ArgumentBuilder, l Listener) {
	start := time.Now()
	log := slog.With("tool", r.Path, "args", args.String())
	if dir := args.WorkingDirectory(); dir != "" {
		log = log.With("dir", dir)
	}
	log.Debug("starting tf")

	argv := args.Build(r.Path)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = args.WorkingDirectory()
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		l.Exception(&errs.LaunchError{Tool: r.Path, Err: err})
		return
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		l.Exception(&errs.LaunchError{Tool: r.Path, Err: err})
		return
	}
	if err := cmd.Start(); err != nil {
		log.Debug("tf failed to start", "error", err)
		l.Exception(&errs.LaunchError{Tool: r.Path, Err: err})
		return
	}

	var g errgroup.Group
	g.Go(func() error { return scanLines(stdout, l.StdoutLine) })
	g.Go(func() error { return scanLines(stderr, l.StderrLine) })
	readErr := g.Wait()

	r.report(l, log, readErr, cmd.Wait(), start)
}

// report sends the terminal event for a finished process. A failed read
// wins over the exit code.
func (r *ExecRunner) report(l Listener, log *slog.Logger, readErr, waitErr error, start time.Time) {
	var exitErr *exec.ExitError
	switch {
	case readErr != nil:
		log.Warn("reading tf output failed", "error", readErr)
		l.Exception(&errs.LaunchError{Tool: r.Path, Err: fmt.Errorf("reading output: %w", readErr)})
	case waitErr == nil:
		log.Debug("tf exited", "code", 0, "elapsed", time.Since(start))
		l.Exit(0)
	case errors.As(waitErr, &exitErr) && exitErr.ExitCode() >= 0:
		log.Debug("tf exited", "code", exitErr.ExitCode(), "elapsed", time.Since(start))
		l.Exit(exitErr.ExitCode())
	default:
		// killed by a signal, or Wait itself failed
		log.Debug("tf terminated", "error", waitErr, "elapsed", time.Since(start))
		l.Exception(&errs.LaunchError{Tool: r.Path, Err: waitErr})
	}
}

// scanLines reads r line by line with no limit on the line length. A
// trailing \r is dropped; a final line without a newline is still reported.
func scanLines(r io.Reader, fn func(string)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			fn(strings.TrimSuffix(line, "\r"))
		}
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			// keep the pipe drained so the process can still exit
			_, _ = io.Copy(io.Discard, br)
			return err
		}
	}
}
