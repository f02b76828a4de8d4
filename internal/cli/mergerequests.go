package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rwese/gitlab-toolbox/internal/gitlab"
	"github.com/rwese/gitlab-toolbox/internal/render"
)

// mrStates are the accepted values for --state.
var mrStates = map[string]bool{ //nolint:gochecknoglobals // Fixed API vocabulary
	"opened": true,
	"merged": true,
	"closed": true,
	"all":    true,
}

func newMergeRequestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mergerequests",
		Short: "Query GitLab merge requests",
	}
	cmd.AddCommand(newMergeRequestsListCmd(), newMergeRequestsShowCmd())
	return cmd
}

func newMergeRequestsListCmd() *cobra.Command {
	var (
		project        string
		state          string
		search         string
		author         string
		noDrafts       bool
		pipelineStatus string
		limit          int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List merge requests",
		Long:  "List merge requests, optionally filtered by the status of each one's most recently created pipeline.",
		Example: `  # Open merge requests of one project
  gitlab-toolbox mr list --project mygroup/myproject

  # Merge requests whose latest pipeline succeeded
  gitlab-toolbox mr list --project mygroup/myproject --pipeline-status success

  # Non-draft merge requests by one author, as JSON
  gitlab-toolbox mr list --author jdoe --no-drafts --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !mrStates[state] {
				return fmt.Errorf("invalid --state %q (opened, merged, closed, all)", state)
			}
			format, err := resolveFormat(cmd, render.Table, render.CSV)
			if err != nil {
				return err
			}

			svc := gitlab.NewMergeRequestsService(newSource(), logger)
			mrs, err := svc.List(cmd.Context(), gitlab.MergeRequestListOptions{
				Project:        project,
				State:          state,
				Search:         search,
				Author:         author,
				ExcludeDrafts:  noDrafts,
				PipelineStatus: pipelineStatus,
				Limit:          limit,
			})
			if err != nil {
				return err
			}
			if len(mrs) == 0 {
				cmd.PrintErrln("No merge requests found.")
				return nil
			}
			return render.MergeRequests(cmd.OutOrStdout(), format, mrs)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "restrict to one project (full path or ID)")
	cmd.Flags().StringVar(&state, "state", "opened", "merge request state (opened, merged, closed, all)")
	cmd.Flags().StringVar(&search, "search", "", "search by title or description")
	cmd.Flags().StringVar(&author, "author", "", "filter by author username")
	cmd.Flags().BoolVar(&noDrafts, "no-drafts", false, "exclude draft merge requests")
	cmd.Flags().StringVar(&pipelineStatus, "pipeline-status", "",
		"keep only merge requests whose latest pipeline has this status (success, failed, running, ...)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of merge requests to fetch (0 = all)")
	addOutputFlag(cmd, "table, json, csv, markdown")
	return cmd
}

func newMergeRequestsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show PROJECT IID",
		Short: "Show one merge request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			iid, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid merge request IID %q", args[1])
			}
			format, err := resolveFormat(cmd, render.Detail, render.JSON)
			if err != nil {
				return err
			}

			svc := gitlab.NewMergeRequestsService(newSource(), logger)
			mr, err := svc.Get(cmd.Context(), args[0], iid)
			if err != nil {
				return err
			}
			return render.MergeRequestDetail(cmd.OutOrStdout(), format, mr)
		},
	}
	addOutputFlag(cmd, "detail, json")
	return cmd
}
