package cli

import (
	"github.com/spf13/cobra"

	"github.com/rwese/gitlab-toolbox/internal/gitlab"
	"github.com/rwese/gitlab-toolbox/internal/render"
)

func newGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Query GitLab groups and their members",
	}
	cmd.AddCommand(newGroupsListCmd(), newGroupsShowCmd())
	return cmd
}

func newGroupsListCmd() *cobra.Command {
	var (
		search     string
		limit      int
		members    bool
		noMembers  bool
		activeOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups as a hierarchy",
		Long:  "List all available groups, assembled into their parent/child hierarchy. Groups whose parent is outside the fetched batch are shown at the top level.",
		Example: `  # All groups with members, as a tree
  gitlab-toolbox groups list --output tree

  # Group paths only, as CSV
  gitlab-toolbox groups list --no-members --output csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noMembers {
				members = false
			}
			format, err := resolveFormat(cmd, render.Table, render.CSV)
			if err != nil {
				return err
			}

			svc := gitlab.NewGroupsService(newSource(), logger)
			groups, err := svc.List(cmd.Context(), gitlab.GroupListOptions{
				Search: search,
				Limit:  limit,
			})
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				cmd.PrintErrln("No groups found.")
				return nil
			}

			if members {
				if err := svc.AttachMembers(cmd.Context(), groups, activeOnly); err != nil {
					return err
				}
			}

			forest := gitlab.BuildGroupTree(groups)
			return render.Groups(cmd.OutOrStdout(), format, forest, render.GroupOptions{
				ShowMembers: members,
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "search groups by name")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of groups to fetch (0 = all)")
	cmd.Flags().BoolVar(&members, "members", true, "fetch and show group members")
	cmd.Flags().BoolVar(&noMembers, "no-members", false, "skip fetching group members")
	cmd.MarkFlagsMutuallyExclusive("members", "no-members")
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "only show members with active user accounts")
	addOutputFlag(cmd, "table, tree, json, csv, markdown")
	return cmd
}

func newGroupsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show GROUP",
		Short: "Show one group with its members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(cmd, render.Detail, render.JSON)
			if err != nil {
				return err
			}

			svc := gitlab.NewGroupsService(newSource(), logger)
			group, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			group.Members, err = svc.Members(cmd.Context(), group.ID, false)
			if err != nil {
				return err
			}
			return render.GroupDetail(cmd.OutOrStdout(), format, group)
		},
	}
	addOutputFlag(cmd, "detail, json")
	return cmd
}
