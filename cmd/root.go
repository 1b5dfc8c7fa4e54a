package cmd

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/joelmoss/tfx/internal/app"
	"github.com/joelmoss/tfx/internal/config"
	"github.com/joelmoss/tfx/internal/ui"
)

var (
	verbose    bool
	configPath string
	outputFlag string
	versionStr = "dev"

	cfg *config.Config
)

func SetVersion(v string) {
	versionStr = v
}

var rootCmd = &cobra.Command{
	Use:           "tfx",
	Short:         "Drive the TFVC command line client",
	Long:          "Run Team Foundation Version Control commands through the tf client of Team Explorer Everywhere and print their results as tables, JSON or YAML.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(verbose)
		cfg = config.New(configPath)
		if err := cfg.Load(); err != nil {
			return err
		}
		flags := cmd.Root().PersistentFlags()
		for _, key := range []string{config.KeyCollection, config.KeyUser, config.KeyTool} {
			if f := flags.Lookup(key); f != nil {
				if err := cfg.BindFlag(key, f); err != nil {
					return err
				}
			}
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print tf command lines, raw output and debug logs")
	flags.StringVar(&configPath, "config", "", "Config file (default ~/.config/tfx/config.json)")
	flags.String(config.KeyCollection, "", "Collection URL, e.g. http://server:8080/tfs/DefaultCollection")
	flags.String(config.KeyUser, "", `User name, optionally DOMAIN\user. The password is read from `+config.PasswordEnv)
	flags.String(config.KeyTool, "", "Path to the tf executable or its folder")
	flags.StringVarP(&outputFlag, "output", "o", string(app.FormatTable), "Output format: table, json or yaml")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		slog.Debug("command failed", "error", err)
		rootCmd.PrintErrln(ui.Red("Error: " + err.Error()))
	}
	return err
}

// setupLogging sends logs to stderr so they never mix with rendered output.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})))
}

func newService() (*app.Service, error) {
	format, err := app.ParseFormat(outputFlag)
	if err != nil {
		return nil, err
	}
	return &app.Service{
		Config:    cfg,
		Out:       os.Stdout,
		Verbose:   verbose,
		Format:    format,
		PromptFn:  ui.MultiSelect,
		ConfirmFn: ui.Confirm,
	}, nil
}

func getCwd() (string, error) {
	return os.Getwd()
}
