package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/joelmoss/tfx/internal/config"
	"github.com/joelmoss/tfx/internal/tf"
	"github.com/joelmoss/tfx/internal/ui"
)

// PromptFunc abstracts interactive prompts for testability.
type PromptFunc func(message string, options []string) ([]string, error)
type ConfirmFunc func(message string) (bool, error)

// Format is how results are written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts table, json or yaml.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	}
	return "", fmt.Errorf("%w: unknown output format %q, expected table, json or yaml", ErrArgument, s)
}

// Service runs tf commands and renders their results.
type Service struct {
	Config    *config.Config
	Runner    tf.Runner
	Out       io.Writer
	Verbose   bool
	Format    Format
	PromptFn  PromptFunc
	ConfirmFn ConfirmFunc
}

func (s *Service) output() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}

func (s *Service) say(msg string) {
	fmt.Fprintln(s.output(), msg)
}

func (s *Service) sayColor(msg string, colorize func(a ...any) string) {
	fmt.Fprintln(s.output(), colorize(msg))
}

func (s *Service) sayStatus(status, msg string) {
	if s.Verbose {
		fmt.Fprintf(s.output(), "%12s  %s\n", status, msg)
	}
}

func (s *Service) context() *tf.Context {
	if s.Config == nil {
		return nil
	}
	return s.Config.Context()
}

// runner finds tf the first time a command needs it.
func (s *Service) runner() (tf.Runner, error) {
	if s.Runner != nil {
		return s.Runner, nil
	}
	configured := ""
	if s.Config != nil {
		configured = s.Config.ToolPath()
	}
	path, err := tf.Locator{Configured: configured}.Detect()
	if err != nil {
		return nil, err
	}
	slog.Debug("using tf", "path", path)
	s.Runner = &tf.ExecRunner{Path: path}
	return s.Runner, nil
}

// run executes cmd, echoing its raw output when verbose.
func run[T any](s *Service, cmd *tf.Command[T]) (T, error) {
	var zero T
	r, err := s.runner()
	if err != nil {
		return zero, err
	}
	s.sayStatus("run", "tf "+cmd.Arguments().String())
	exec := cmd.Run(r)
	for p := range exec.Progress() {
		s.sayStatus(p.Stream.String(), p.Line)
	}
	return exec.Wait()
}

// render writes v as JSON or YAML, or calls table for the table format.
func (s *Service) render(v any, table func()) error {
	switch s.Format {
	case FormatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(s.output(), string(b))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(s.output())
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		table()
		return nil
	}
}

func (s *Service) table(header []string, rows [][]string) {
	ui.PrintTable(s.output(), header, rows, 0)
}

// done prints a one-line success message in table format only.
func (s *Service) done(msg string) {
	if s.Format == FormatTable || s.Format == "" {
		s.sayColor(msg, ui.Green)
	}
}
