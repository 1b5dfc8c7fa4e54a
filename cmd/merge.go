package cmd

import (
	"github.com/spf13/cobra"

	"github.com/joelmoss/tfx/internal/tf"
	"github.com/joelmoss/tfx/internal/tfvc"
)

var (
	versionFlag string
	authorFlag  string
	checkinFlag bool
	lockFlag    string
	resolveFlag string
	branchDesc  string
)

var mergeCmd = &cobra.Command{
	Use:   "merge SOURCE TARGET",
	Short: "Pend a merge from one branch into another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		cwd, err := getCwd()
		if err != nil {
			return err
		}
		opts := tf.MergeOptions{Recursive: recursiveFlag}
		if versionFlag != "" {
			v := tfvc.ParseVersionSpec(versionFlag)
			opts.Version = &v
		}
		return svc.Merge(cwd, args[0], args[1], opts)
	},
}

var branchesCmd = &cobra.Command{
	Use:   "branches ITEM",
	Short: "List the branches related to an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		cwd, err := getCwd()
		if err != nil {
			return err
		}
		return svc.Branches(cwd, args[0])
	},
}

var branchCmd = &cobra.Command{
	Use:   "branch EXISTING NEW",
	Short: "Branch an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		cwd, err := getCwd()
		if err != nil {
			return err
		}
		return svc.Branch(cwd, args[0], args[1], tf.BranchOptions{
			Checkin:   checkinFlag,
			Comment:   branchDesc,
			Author:    authorFlag,
			Recursive: recursiveFlag,
		})
	},
}

var conflictsCmd = &cobra.Command{
	Use:   "conflicts [ROOT]",
	Short: "List conflicts without resolving them",
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
		root := cwd
		if len(args) > 0 {
			root = args[0]
		}
		return svc.Conflicts(cwd, root, true)
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [PATH...]",
	Short: "Resolve conflicts automatically",
	Long:  "Resolve conflicts automatically. Without paths, the conflicts under the current directory are offered for selection.",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolution, err := tfvc.ParseResolveType(resolveFlag)
		if err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		cwd, err := getCwd()
		if err != nil {
			return err
		}
		return svc.Resolve(cwd, args, resolution)
	},
}

var lockCmd = &cobra.Command{
	Use:   "lock ITEM...",
	Short: "Lock or unlock items",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := tfvc.ParseLockLevel(lockFlag)
		if err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		cwd, err := getCwd()
		if err != nil {
			return err
		}
		return svc.Lock(cwd, level, recursiveFlag, args)
	},
}

func init() {
	mergeCmd.Flags().StringVar(&versionFlag, "version", "", "Version to merge, e.g. C25 or C10~C25")
	branchCmd.Flags().BoolVar(&checkinFlag, "checkin", false, "Check the branch in immediately")
	branchCmd.Flags().StringVarP(&branchDesc, "comment", "m", "", "Checkin comment")
	branchCmd.Flags().StringVar(&authorFlag, "author", "", "Author of the checkin")
	for _, c := range []*cobra.Command{mergeCmd, branchCmd, lockCmd} {
		c.Flags().BoolVarP(&recursiveFlag, "recursive", "r", false, "Include the contents of folders")
	}
	resolveCmd.Flags().StringVar(&resolveFlag, "auto", string(tfvc.AcceptYours), "AcceptYours, AcceptTheirs, AcceptMerge, AcceptYoursRenameTheirs or OverwriteLocal")
	lockCmd.Flags().StringVar(&lockFlag, "lock", string(tfvc.LockCheckin), "none, checkin or checkout")

	rootCmd.AddCommand(mergeCmd, branchesCmd, branchCmd, conflictsCmd, resolveCmd, lockCmd)
}
