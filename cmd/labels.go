package cmd

import (
	"github.com/spf13/cobra"

	"github.com/joelmoss/tfx/internal/tf"
	"github.com/joelmoss/tfx/internal/tfvc"
)

var (
	labelComment string
	userFlag     string
	stopAfter    int
	itemModeFlag bool
)

var labelsCmd = &cobra.Command{
	Use:   "labels [FILTER]",
	Short: "List labels",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		cwd, err := getCwd()
		if err != nil {
			return err
		}
		filter := ""
		if len(args) > 0 {
			filter = args[0]
		}
		return svc.Labels(cwd, filter)
	},
}

var labelCmd = &cobra.Command{
	Use:   "label NAME ITEM...",
	Short: "Apply a label to items",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		cwd, err := getCwd()
		if err != nil {
			return err
		}
		return svc.Label(cwd, args[0], args[1:], tf.LabelOptions{Comment: labelComment, Recursive: recursiveFlag})
	},
}

var historyCmd = &cobra.Command{
	Use:     "history ITEM",
	Aliases: []string{"log"},
	Short:   "List the changesets of an item",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		cwd, err := getCwd()
		if err != nil {
			return err
		}
		return svc.History(cwd, args[0], tf.HistoryOptions{
			Version:   versionFlag,
			User:      userFlag,
			StopAfter: stopAfter,
			Recursive: recursiveFlag,
			ItemMode:  itemModeFlag,
		})
	},
}

var printCmd = &cobra.Command{
	Use:   "print ITEM DESTINATION",
	Short: "Download one version of a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		var version *tfvc.VersionSpec
		if versionFlag != "" {
			v := tfvc.ParseVersionSpec(versionFlag)
			version = &v
		}
		return svc.Print(args[0], version, args[1])
	},
}

func init() {
	labelCmd.Flags().StringVarP(&labelComment, "comment", "m", "", "Label comment")
	labelCmd.Flags().BoolVarP(&recursiveFlag, "recursive", "r", false, "Include the contents of folders")

	historyCmd.Flags().StringVar(&versionFlag, "version", "", "Version range, e.g. C10~C25")
	historyCmd.Flags().StringVar(&userFlag, "owner", "", "Only changesets by this user")
	historyCmd.Flags().IntVarP(&stopAfter, "stop-after", "n", 0, "Maximum number of changesets")
	historyCmd.Flags().BoolVarP(&recursiveFlag, "recursive", "r", false, "Include the contents of folders")
	historyCmd.Flags().BoolVar(&itemModeFlag, "itemmode", false, "Query the item itself rather than its namespace")

	printCmd.Flags().StringVar(&versionFlag, "version", "", "Version to download, e.g. C25 or Lmylabel")

	rootCmd.AddCommand(labelsCmd, labelCmd, historyCmd, printCmd)
}
