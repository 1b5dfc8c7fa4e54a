package tf

import (
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/joelmoss/tfx/internal/errs"
)

// Context is the server a command talks to. A nil Context runs the command
// against whatever collection tf infers from the working directory.
type Context struct {
	Collection  string
	Credentials *Credentials
	// Proxy is a TFS proxy URL passed with -proxy.
	Proxy string
}

// Decoder turns the complete stdout and stderr of a process into a result.
// Decoders are pure and never look at the exit code.
type Decoder[T any] func(stdout, stderr string) (T, error)

// Command is one configured tf invocation that yields a T.
type Command[T any] struct {
	kind      Kind
	ctx       *Context
	args      func(b *ArgumentBuilder)
	decode    Decoder[T]
	checkExit bool
	// commit runs after the exit code check and may replace the result.
	commit func(T) (T, error)
}

func newCommand[T any](kind Kind, ctx *Context, args func(b *ArgumentBuilder), decode Decoder[T]) *Command[T] {
	return &Command[T]{
		kind:      kind,
		ctx:       ctx,
		args:      args,
		decode:    decode,
		checkExit: kind.ChecksExitCode(),
	}
}

func (c *Command[T]) Kind() Kind { return c.kind }

// Arguments builds the argv, without the tool path:
// subcommand -noprompt [-collection:uri [-login:...] [-proxy:uri]] ...
func (c *Command[T]) Arguments() *ArgumentBuilder {
	b := NewArgumentBuilder(c.kind.Subcommand()).AddSwitch("noprompt")
	if c.ctx != nil && c.ctx.Collection != "" {
		b.AddSwitchValue("collection", collectionArgument(c.ctx.Collection))
		if c.ctx.Credentials != nil {
			b.AddCredentials(*c.ctx.Credentials)
		}
		if c.ctx.Proxy != "" {
			b.AddSwitchValue("proxy", c.ctx.Proxy)
		}
	}
	if c.args != nil {
		c.args(b)
	}
	return b
}

// collectionArgument decodes an escaped collection URL; tf does not accept
// percent-encoding.
func collectionArgument(uri string) string {
	decoded, err := url.PathUnescape(uri)
	if err != nil {
		slog.Warn("could not decode collection url, using it as is", "url", uri, "error", err)
		return uri
	}
	return decoded
}

// Decode runs the decoder and the exit code policy against captured output.
func (c *Command[T]) Decode(stdout, stderr string, exitCode int) (T, error) {
	var zero T
	result, err := c.decode(stdout, stderr)
	if err != nil {
		return zero, c.classify(err, stdout)
	}
	if code := c.kind.RemapExitCode(exitCode); c.checkExit && code != 0 {
		return zero, c.classify(&errs.ToolError{
			Command:  c.kind.String(),
			ExitCode: code,
			Message:  strings.TrimSpace(stderr),
		}, stdout)
	}
	if c.commit != nil {
		committed, err := c.commit(result)
		if err != nil {
			return zero, err
		}
		result = committed
	}
	return result, nil
}

const (
	outOfMemoryMarker = "java.lang.OutOfMemoryError"
	eulaMarker        = "tf eula"
)

func (c *Command[T]) classify(err error, stdout string) error {
	var toolErr *errs.ToolError
	if errors.As(err, &toolErr) && toolErr.Command == "" {
		toolErr.Command = c.kind.String()
	}
	var decodeErr *errs.DecodeError
	if errors.As(err, &decodeErr) && decodeErr.Command == "" {
		decodeErr.Command = c.kind.String()
	}

	switch {
	case strings.Contains(strings.ReplaceAll(stdout, "\r\n", "\n"), outOfMemoryMarker):
		slog.Warn("tf ran out of memory", "command", c.kind.String())
		return errors.Join(errs.ErrToolOutOfMemory, err)
	case strings.Contains(err.Error(), eulaMarker):
		return errors.Join(errs.ErrEulaNotAccepted, err)
	}
	return err
}

// Run starts the command and returns immediately. Callers must call Wait on
// the returned Execution, or drain Progress, or the progress goroutine stays
// blocked on its next line.
func (c *Command[T]) Run(r Runner) *Execution[T] {
	e := newExecution[T]()
	r.Start(c.Arguments(), newCollector(c, e))
	return e
}

// RunAndWait runs the command and blocks until it completes, discarding
// progress.
func (c *Command[T]) RunAndWait(r Runner) (T, error) {
	start := time.Now()
	result, err := c.Run(r).Wait()
	slog.Debug("command finished", "command", c.kind.String(), "elapsed", time.Since(start), "error", err)
	return result, err
}

func required(kind Kind, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &errs.ArgumentError{Command: kind.String(), Field: field}
	}
	return nil
}

func requiredItems(kind Kind, field string, items []string) error {
	if len(items) == 0 {
		return &errs.ArgumentError{Command: kind.String(), Field: field, Reason: "must contain at least one item"}
	}
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			return &errs.ArgumentError{Command: kind.String(), Field: field, Reason: "must not contain empty paths"}
		}
	}
	return nil
}

func toolError(message string) error {
	return &errs.ToolError{Message: strings.TrimSpace(message)}
}

// failIfStderr is the default classification: any stderr text is an error.
func failIfStderr(stderr string) error {
	if strings.TrimSpace(stderr) != "" {
		return toolError(stderr)
	}
	return nil
}

func logSkipped(kind Kind, line string) {
	slog.Debug("skipping unrecognised output", "command", kind.String(), "line", line)
}
