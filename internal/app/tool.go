package app

import (
	"errors"
	"fmt"

	"github.com/joelmoss/tfx/internal/config"
	"github.com/joelmoss/tfx/internal/tf"
	"github.com/joelmoss/tfx/internal/tfvc"
	"github.com/joelmoss/tfx/internal/ui"
)

// ToolReport describes the tf client tfx uses.
type ToolReport struct {
	Path      string           `json:"path" yaml:"path"`
	Version   tfvc.ToolVersion `json:"version" yaml:"version"`
	Minimum   tfvc.ToolVersion `json:"minimum" yaml:"minimum"`
	Supported bool             `json:"supported" yaml:"supported"`
}

// Tool finds tf and checks that its version is supported. An unsupported
// version is reported, then returned as the error.
func (s *Service) Tool() error {
	r, err := s.runner()
	if err != nil {
		return err
	}
	report := ToolReport{Minimum: tfvc.MinimumToolVersion, Supported: true}
	if exec, ok := r.(*tf.ExecRunner); ok {
		report.Path = exec.Path
	}

	report.Version, err = tf.CheckVersion(r)
	if errors.Is(err, ErrToolVersion) {
		report.Supported = false
	} else if err != nil {
		return err
	}

	if renderErr := s.render(report, func() {
		rows := [][]string{
			{ui.Dim("Path"), ui.DisplayPath(report.Path)},
			{ui.Dim("Version"), report.Version.String()},
		}
		if !report.Supported {
			rows = append(rows, []string{ui.Dim("Status"), ui.Red(fmt.Sprintf("unsupported, %s or later is required", report.Minimum))})
		} else {
			rows = append(rows, []string{ui.Dim("Status"), ui.Green("supported")})
		}
		s.table(nil, rows)
	}); renderErr != nil {
		return renderErr
	}
	return err
}

// ShowConfig prints the effective settings and where they are stored. The
// password is only reported as set or unset.
func (s *Service) ShowConfig() error {
	settings := s.Config.Settings()
	password := "unset"
	if s.Config.Password() != "" {
		password = "set"
	}
	out := map[string]any{"path": s.Config.Path(), "settings": settings, "password": password}
	return s.render(out, func() {
		s.say(ui.Dim(ui.DisplayPath(s.Config.Path())))
		var rows [][]string
		for _, key := range config.Keys {
			value := settings[key]
			if value == "" {
				value = ui.Dim("(unset)")
			}
			rows = append(rows, []string{ui.Bold(key), value})
		}
		rows = append(rows, []string{ui.Bold("password"), ui.Dim(password)})
		s.table(nil, rows)
	})
}

// SetConfig stores one setting in the config file.
func (s *Service) SetConfig(key, value string) error {
	if err := s.Config.Set(key, value); err != nil {
		return err
	}
	if err := s.Config.Save(); err != nil {
		return err
	}
	s.done(fmt.Sprintf("Saved %s to %s.", key, ui.DisplayPath(s.Config.Path())))
	return nil
}
