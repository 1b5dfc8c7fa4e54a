package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrArgument               = errors.New("invalid argument")
	ErrLaunch                 = errors.New("tf could not be started")
	ErrDecode                 = errors.New("unexpected output from tf")
	ErrTool                   = errors.New("tf reported an error")
	ErrToolNotFound           = errors.New("tf command line client not found. Install Team Explorer Everywhere and set TF_HOME, or configure the tool path with `tfx config set tool <path>`")
	ErrToolVersion            = errors.New("tf command line client is too old")
	ErrAuthentication         = errors.New("authentication with the TFS server failed")
	ErrWorkspaceNotDetermined = errors.New("the workspace could not be determined from the given paths or the current directory")
	ErrEulaNotAccepted        = errors.New("the tf end user license agreement has not been accepted. Run `tf eula` first")
	ErrToolOutOfMemory        = errors.New("tf ran out of memory. Increase the heap size in the TF_ADDITIONAL_JAVA_ARGS environment variable")
	ErrCheckinFailed          = errors.New("checkin failed for an unknown reason")
)

// ArgumentError is returned synchronously by command constructors before any
// process is launched.
type ArgumentError struct {
	Command string
	Field   string
	Reason  string
}

func (e *ArgumentError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is required"
	}
	if e.Command == "" {
		return fmt.Sprintf("%s %s", e.Field, reason)
	}
	return fmt.Sprintf("%s: %s %s", e.Command, e.Field, reason)
}

func (e *ArgumentError) Unwrap() error { return ErrArgument }

// LaunchError means the process could not be started or its output could
// not be read completely; no output was decoded.
type LaunchError struct {
	Tool string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrLaunch, e.Tool, e.Err)
}

func (e *LaunchError) Unwrap() []error { return []error{ErrLaunch, e.Err} }

// DecodeError reports output that does not follow the grammar of a command.
type DecodeError struct {
	Command string
	Line    string
	Err     error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Command, ErrDecode)
	if e.Line != "" {
		fmt.Fprintf(&b, " %q", e.Line)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDecode}
	}
	return []error{ErrDecode, e.Err}
}

// ToolError is either a non-zero exit code after remapping, or stderr text
// classified as a real failure. ExitCode is zero in the latter case.
type ToolError struct {
	Command  string
	ExitCode int
	Message  string
}

func (e *ToolError) Error() string {
	msg := strings.TrimSpace(e.Message)
	switch {
	case msg != "" && e.ExitCode != 0:
		return fmt.Sprintf("%s failed with exit code %d: %s", e.Command, e.ExitCode, msg)
	case msg != "":
		return fmt.Sprintf("%s failed: %s", e.Command, msg)
	default:
		return fmt.Sprintf("%s failed with exit code %d", e.Command, e.ExitCode)
	}
}

func (e *ToolError) Unwrap() error { return ErrTool }

// DollarInPathError is raised when a server path component starts with '$'
// (TF10122), which tf refuses to handle.
type DollarInPathError struct {
	ServerPath string
}

func (e *DollarInPathError) Error() string {
	return fmt.Sprintf("the path %q contains a '$' at the beginning of a path component", e.ServerPath)
}

func (e *DollarInPathError) Unwrap() error { return ErrTool }
