package cmd

import (
	"github.com/spf13/cobra"
)

var recursiveFlag bool

var addCmd = &cobra.Command{
	Use:   "add PATH...",
	Short: "Pend the addition of files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.Add(args)
	},
}

var checkoutCmd = &cobra.Command{
	Use:     "checkout PATH...",
	Aliases: []string{"edit"},
	Short:   "Pend an edit of files",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.Checkout(args, recursiveFlag)
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo PATH...",
	Short: "Undo pending changes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.Undo(args, recursiveFlag)
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete PATH...",
	Aliases: []string{"rm"},
	Short:   "Pend the deletion of files",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		cwd, err := getCwd()
		if err != nil {
			return err
		}
		return svc.Delete(cwd, args, recursiveFlag)
	},
}

var renameCmd = &cobra.Command{
	Use:     "rename OLD NEW",
	Aliases: []string{"mv"},
	Short:   "Pend a rename or move",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.Rename(args[0], args[1])
	},
}

func init() {
	for _, c := range []*cobra.Command{checkoutCmd, undoCmd, deleteCmd} {
		c.Flags().BoolVarP(&recursiveFlag, "recursive", "r", false, "Include the contents of folders")
	}
	rootCmd.AddCommand(addCmd, checkoutCmd, undoCmd, deleteCmd, renameCmd)
}
