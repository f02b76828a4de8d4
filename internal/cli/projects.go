package cli

import (
	"github.com/spf13/cobra"

	"github.com/rwese/gitlab-toolbox/internal/gitlab"
	"github.com/rwese/gitlab-toolbox/internal/render"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Query GitLab projects",
	}
	cmd.AddCommand(newProjectsListCmd(), newProjectsShowCmd())
	return cmd
}

func newProjectsListCmd() *cobra.Command {
	var (
		group  string
		search string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Example: `  # All projects of a group
  gitlab-toolbox projects list --group mygroup

  # Search projects, export as markdown
  gitlab-toolbox projects list --search tooling --output markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(cmd, render.Table, render.CSV)
			if err != nil {
				return err
			}

			svc := gitlab.NewProjectsService(newSource(), logger)
			projects, err := svc.List(cmd.Context(), gitlab.ProjectListOptions{
				Group:  group,
				Search: search,
				Limit:  limit,
			})
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				cmd.PrintErrln("No projects found.")
				return nil
			}
			return render.Projects(cmd.OutOrStdout(), format, projects)
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "restrict to projects of this group (full path)")
	cmd.Flags().StringVar(&search, "search", "", "search projects by name")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of projects to fetch (0 = all)")
	addOutputFlag(cmd, "table, json, csv, markdown")
	return cmd
}

func newProjectsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show one project by full path or ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(cmd, render.Detail, render.JSON)
			if err != nil {
				return err
			}

			svc := gitlab.NewProjectsService(newSource(), logger)
			project, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render.ProjectDetail(cmd.OutOrStdout(), format, project)
		},
	}
	addOutputFlag(cmd, "detail, json")
	return cmd
}
