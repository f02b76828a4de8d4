package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rwese/gitlab-toolbox/internal/gitlab"
	"github.com/rwese/gitlab-toolbox/internal/render"
)

func newSchedulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedules",
		Short: "Query GitLab pipeline schedules",
	}
	cmd.AddCommand(newSchedulesListCmd(), newSchedulesShowCmd())
	return cmd
}

func newSchedulesListCmd() *cobra.Command {
	var (
		scope            string
		limit            int
		withLastPipeline bool
	)

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List pipeline schedules of a project",
		Args:  cobra.ExactArgs(1),
		Example: `  # Active schedules with their most recent pipeline
  gitlab-toolbox schedules list mygroup/myproject --scope active --with-last-pipeline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scope != "" && scope != "active" && scope != "inactive" {
				return fmt.Errorf("invalid --scope %q (active, inactive)", scope)
			}
			format, err := resolveFormat(cmd, render.Table, render.CSV)
			if err != nil {
				return err
			}

			svc := gitlab.NewSchedulesService(newSource(), logger)
			schedules, err := svc.List(cmd.Context(), args[0], gitlab.ScheduleListOptions{
				Scope:            scope,
				Limit:            limit,
				WithLastPipeline: withLastPipeline,
			})
			if err != nil {
				return err
			}
			if len(schedules) == 0 {
				cmd.PrintErrln("No pipeline schedules found.")
				return nil
			}
			return render.Schedules(cmd.OutOrStdout(), format, schedules)
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "filter by scope (active, inactive)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of schedules to fetch (0 = all)")
	cmd.Flags().BoolVar(&withLastPipeline, "with-last-pipeline", false,
		"resolve each schedule's most recent pipeline (one extra request per schedule)")
	addOutputFlag(cmd, "table, json, csv, markdown")
	return cmd
}

func newSchedulesShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show PROJECT ID",
		Short: "Show one pipeline schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid schedule ID %q", args[1])
			}
			format, err := resolveFormat(cmd, render.Detail, render.JSON)
			if err != nil {
				return err
			}

			svc := gitlab.NewSchedulesService(newSource(), logger)
			schedule, err := svc.Get(cmd.Context(), args[0], id)
			if err != nil {
				return err
			}
			return render.ScheduleDetail(cmd.OutOrStdout(), format, schedule)
		},
	}
	addOutputFlag(cmd, "detail, json")
	return cmd
}
