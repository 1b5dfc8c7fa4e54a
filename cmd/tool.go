package cmd

import (
	"github.com/spf13/cobra"
)

var toolCmd = &cobra.Command{
	Use:   "tool",
	Short: "Show which tf client is used and whether it is supported",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.Tool()
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the stored settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.ShowConfig()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY [VALUE]",
	Short: "Store a setting; without a value the setting is removed",
	Long:  "Store a setting in the config file. Keys are tool, collection, user, domain and proxy. The password is never stored; set TFX_PASSWORD instead.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		value := ""
		if len(args) > 1 {
			value = args[1]
		}
		return svc.SetConfig(args[0], value)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(toolCmd, configCmd)
}
