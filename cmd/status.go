package cmd

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status [PATH...]",
	Aliases: []string{"st"},
	Short:   "List pending and detected changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.Status(args)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info PATH...",
	Short: "Show local and server details of items",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		cwd, err := getCwd()
		if err != nil {
			return err
		}
		return svc.Info(cwd, args)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd, infoCmd)
}
