package cmd

import (
	"github.com/spf13/cobra"

	"github.com/joelmoss/tfx/internal/tf"
)

var (
	messageFlag   string
	workItemFlags []int
	forceFlag     bool
	strictGet     bool
)

var checkinCmd = &cobra.Command{
	Use:     "checkin PATH...",
	Aliases: []string{"ci"},
	Short:   "Check in pending changes",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.Checkin(args, messageFlag, workItemFlags)
	},
}

var getCmd = &cobra.Command{
	Use:     "get PATH...",
	Aliases: []string{"sync"},
	Short:   "Get the latest version of items",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.Get(args, syncOptions())
	},
}

// syncOptions keeps the partial results of a get that ended with conflicts
// or warnings unless --strict is given.
func syncOptions() tf.SyncOptions {
	return tf.SyncOptions{
		Recursive:      recursiveFlag,
		Force:          forceFlag,
		IgnoreExitCode: !strictGet,
	}
}

func init() {
	checkinCmd.Flags().StringVarP(&messageFlag, "comment", "m", "", "Checkin comment")
	checkinCmd.Flags().IntSliceVar(&workItemFlags, "associate", nil, "Work item ids to associate, comma separated")

	getCmd.Flags().BoolVarP(&recursiveFlag, "recursive", "r", false, "Include the contents of folders")
	getCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Download every file even if it is up to date")
	getCmd.Flags().BoolVar(&strictGet, "strict", false, "Fail on a non-zero exit code instead of reporting per-item problems")

	rootCmd.AddCommand(checkinCmd, getCmd)
}
