package tf

import (
	"errors"
	"strings"
	"sync"

	"github.com/joelmoss/tfx/internal/errs"
)

// Stream tells which output a progress line came from.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

// Progress is one raw output line, forwarded as it is read.
type Progress struct {
	Stream Stream
	Line   string
}

// Execution is a running command. Its outcome is published exactly once, and
// only after every progress line has been delivered and the progress channel
// closed.
type Execution[T any] struct {
	progress chan Progress
	done     chan struct{}
	result   T
	err      error
}

func newExecution[T any]() *Execution[T] {
	return &Execution[T]{
		progress: make(chan Progress),
		done:     make(chan struct{}),
	}
}

// Progress returns the stream of output lines. It is closed before the
// outcome becomes available. Lines not received before Wait is called are
// discarded by Wait.
func (e *Execution[T]) Progress() <-chan Progress {
	return e.progress
}

// Wait blocks until the command completes and returns its outcome. It may be
// called more than once.
func (e *Execution[T]) Wait() (T, error) {
	for range e.progress {
	}
	<-e.done
	return e.result, e.err
}

// collector is the Listener for one Execution. It accumulates output, queues
// progress lines without blocking the runner and publishes the outcome once.
type collector[T any] struct {
	cmd  *Command[T]
	exec *Execution[T]

	mu     sync.Mutex
	cond   *sync.Cond
	stdout strings.Builder
	stderr strings.Builder
	queue  []Progress
	// finished is set by the first terminal event; later lines are dropped.
	finished bool
	resolved bool
}

func newCollector[T any](cmd *Command[T], e *Execution[T]) *collector[T] {
	c := &collector[T]{cmd: cmd, exec: e}
	c.cond = sync.NewCond(&c.mu)
	go c.pump()
	return c
}

func (c *collector[T]) StdoutLine(line string) {
	c.line(Stdout, line, &c.stdout)
}

func (c *collector[T]) StderrLine(line string) {
	c.line(Stderr, line, &c.stderr)
}

func (c *collector[T]) line(s Stream, line string, buf *strings.Builder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.finished {
		return
	}
	buf.WriteString(line)
	buf.WriteByte('\n')
	c.queue = append(c.queue, Progress{Stream: s, Line: line})
	c.cond.Signal()
}

func (c *collector[T]) Exception(err error) {
	var launchErr *errs.LaunchError
	if !errors.As(err, &launchErr) {
		err = &errs.LaunchError{Tool: c.cmd.kind.Subcommand(), Err: err}
	}
	c.finish(func(string, string) (T, error) {
		var zero T
		return zero, err
	})
}

func (c *collector[T]) Exit(code int) {
	c.finish(func(stdout, stderr string) (T, error) {
		return c.cmd.Decode(stdout, stderr, code)
	})
}

// finish publishes the outcome of the first terminal event and ignores any
// later ones.
func (c *collector[T]) finish(outcome func(stdout, stderr string) (T, error)) {
	c.mu.Lock()
	if c.finished {
		c.mu.Unlock()
		return
	}
	c.finished = true
	stdout, stderr := c.stdout.String(), c.stderr.String()
	c.mu.Unlock()

	result, err := outcome(stdout, stderr)

	c.mu.Lock()
	c.exec.result, c.exec.err = result, err
	c.resolved = true
	c.cond.Signal()
	c.mu.Unlock()
}

// pump forwards queued lines to the progress channel. Once the queue is empty
// and the outcome is stored it closes the channel, then publishes the outcome.
func (c *collector[T]) pump() {
	for {
		c.mu.Lock()
		for len(c.queue) == 0 && !c.resolved {
			c.cond.Wait()
		}
		if len(c.queue) == 0 {
			c.mu.Unlock()
			close(c.exec.progress)
			close(c.exec.done)
			return
		}
		p := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		c.exec.progress <- p
	}
}
