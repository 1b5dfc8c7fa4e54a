package cmd

import (
	"github.com/spf13/cobra"

	"github.com/joelmoss/tfx/internal/app"
	"github.com/joelmoss/tfx/internal/tf"
	"github.com/joelmoss/tfx/internal/tfvc"
)

var (
	confirmFlag    string
	commentFlag    string
	fileTimeFlag   string
	permissionFlag string
	newNameFlag    string
	mapFlags       []string
	cloakFlags     []string
	oneLevelFlag   bool
)

var workspacesCmd = &cobra.Command{
	Use:     "workspaces",
	Aliases: []string{"ws"},
	Short:   "List the workspaces of every known collection",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.Workspaces()
	},
}

var workspaceCmd = &cobra.Command{
	Use:     "workspace",
	Aliases: []string{"w"},
	Short:   "Show and manage one workspace",
}

var workspaceShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a workspace and its working folders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.ShowWorkspace(args[0])
	},
}

var workspaceFindCmd = &cobra.Command{
	Use:   "find [NAME]",
	Short: "Find the workspace mapping the current directory",
	Long:  "Find the workspace mapping the current directory. With a name and a configured collection, the named workspace is read instead.",
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
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return svc.FindWorkspace(cwd, name)
	},
}

var workspaceCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		mappings, err := mappingFlags()
		if err != nil {
			return err
		}
		return svc.CreateWorkspace(args[0], workspaceOptions(), mappings)
	},
}

var workspaceUpdateCmd = &cobra.Command{
	Use:   "update NAME",
	Short: "Rename a workspace, change its settings or replace its working folders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		mappings, err := mappingFlags()
		if err != nil {
			return err
		}
		return svc.UpdateWorkspace(args[0], newNameFlag, workspaceOptions(), mappings)
	},
}

var workspaceDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.DeleteWorkspace(args[0], confirmFlag)
	},
}

var workspaceMapCmd = &cobra.Command{
	Use:   "map WORKSPACE SERVER_PATH LOCAL_PATH",
	Short: "Map a server folder to a local folder",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.Map(args[0], tfvc.Mapping{ServerPath: args[1], LocalPath: args[2]}, oneLevelFlag)
	},
}

var workspaceUnmapCmd = &cobra.Command{
	Use:   "unmap WORKSPACE SERVER_PATH",
	Short: "Remove the mapping of a server folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.Unmap(args[0], args[1])
	},
}

var workspaceCloakCmd = &cobra.Command{
	Use:   "cloak WORKSPACE SERVER_PATH",
	Short: "Exclude a server folder from the workspace",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.Cloak(args[0], args[1])
	},
}

var workspaceLocalPathCmd = &cobra.Command{
	Use:   "localpath WORKSPACE SERVER_PATH",
	Short: "Print the local folder a server path is mapped to",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.LocalPath(args[0], args[1])
	},
}

func workspaceOptions() tf.WorkspaceOptions {
	return tf.WorkspaceOptions{
		Comment:    commentFlag,
		FileTime:   tfvc.FileTime(fileTimeFlag),
		Permission: tfvc.Permission(permissionFlag),
	}
}

func mappingFlags() ([]tfvc.Mapping, error) {
	var mappings []tfvc.Mapping
	for _, s := range mapFlags {
		m, err := app.ParseMapping(s)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	for _, server := range cloakFlags {
		mappings = append(mappings, tfvc.Mapping{ServerPath: server, Cloaked: true})
	}
	return mappings, nil
}

func init() {
	for _, c := range []*cobra.Command{workspaceCreateCmd, workspaceUpdateCmd} {
		c.Flags().StringVar(&commentFlag, "comment", "", "Workspace comment")
		c.Flags().StringVar(&fileTimeFlag, "filetime", "", "File time of downloaded files: current or checkin")
		c.Flags().StringVar(&permissionFlag, "permission", "", "Private, PublicLimited or Public")
		c.Flags().StringArrayVar(&mapFlags, "map", nil, "Working folder as SERVER=LOCAL, repeatable")
		c.Flags().StringArrayVar(&cloakFlags, "cloak", nil, "Server folder to cloak, repeatable")
	}
	workspaceUpdateCmd.Flags().StringVar(&newNameFlag, "newname", "", "New name of the workspace")
	workspaceDeleteCmd.Flags().StringVar(&confirmFlag, "confirm", "", "Skip confirmation if value matches the workspace name")
	workspaceMapCmd.Flags().BoolVar(&oneLevelFlag, "one-level", false, "Map only the folder itself, not its subfolders")

	workspaceCmd.AddCommand(workspaceShowCmd, workspaceFindCmd, workspaceCreateCmd, workspaceUpdateCmd,
		workspaceDeleteCmd, workspaceMapCmd, workspaceUnmapCmd, workspaceCloakCmd, workspaceLocalPathCmd)
	rootCmd.AddCommand(workspacesCmd, workspaceCmd)
}
