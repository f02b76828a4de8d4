package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rwese/gitlab-toolbox/internal/gitlab"
	"github.com/rwese/gitlab-toolbox/internal/render"
)

func newPipelinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipelines",
		Short: "Query GitLab CI pipelines",
	}
	cmd.AddCommand(newPipelinesListCmd(), newPipelinesShowCmd(), newPipelinesJobsCmd())
	return cmd
}

func newPipelinesListCmd() *cobra.Command {
	var (
		status       string
		source       string
		createdAfter string
		limit        int
	)

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List pipelines of a project",
		Args:  cobra.ExactArgs(1),
		Example: `  # Recent pipelines
  gitlab-toolbox pipelines list mygroup/myproject --limit 20

  # Failed pipelines triggered by pushes
  gitlab-toolbox pipelines list mygroup/myproject --status failed --source push`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(cmd, render.Table, render.CSV)
			if err != nil {
				return err
			}

			svc := gitlab.NewPipelinesService(newSource(), logger)
			pipelines, err := svc.List(cmd.Context(), args[0], gitlab.PipelineListOptions{
				Status:       status,
				Source:       source,
				CreatedAfter: createdAfter,
				Limit:        limit,
			})
			if err != nil {
				return err
			}
			if len(pipelines) == 0 {
				cmd.PrintErrln("No pipelines found.")
				return nil
			}
			return render.Pipelines(cmd.OutOrStdout(), format, pipelines)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by pipeline status")
	cmd.Flags().StringVar(&source, "source", "", "filter by pipeline source (push, merge_request_event, schedule, ...)")
	cmd.Flags().StringVar(&createdAfter, "created-after", "", "only pipelines created after this ISO 8601 timestamp")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of pipelines to fetch (0 = all)")
	addOutputFlag(cmd, "table, json, csv, markdown")
	return cmd
}

func newPipelinesShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show PROJECT ID",
		Short: "Show one pipeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid pipeline ID %q", args[1])
			}
			format, err := resolveFormat(cmd, render.Detail, render.JSON)
			if err != nil {
				return err
			}

			svc := gitlab.NewPipelinesService(newSource(), logger)
			pipeline, err := svc.Get(cmd.Context(), args[0], id)
			if err != nil {
				return err
			}
			return render.PipelineDetail(cmd.OutOrStdout(), format, pipeline)
		},
	}
	addOutputFlag(cmd, "detail, json")
	return cmd
}

func newPipelinesJobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs PROJECT ID",
		Short: "List the jobs of one pipeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid pipeline ID %q", args[1])
			}
			format, err := resolveFormat(cmd, render.Table, render.CSV)
			if err != nil {
				return err
			}

			svc := gitlab.NewPipelinesService(newSource(), logger)
			jobs, err := svc.Jobs(cmd.Context(), args[0], id)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				cmd.PrintErrln("No jobs found.")
				return nil
			}
			return render.Jobs(cmd.OutOrStdout(), format, jobs)
		},
	}
	addOutputFlag(cmd, "table, json, csv, markdown")
	return cmd
}
