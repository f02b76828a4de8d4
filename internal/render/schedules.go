package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rwese/gitlab-toolbox/internal/gitlab"
)

func scheduleOwner(s gitlab.Schedule) string {
	if s.Owner == nil {
		return ""
	}
	return s.Owner.Username
}

func scheduleLastStatus(s gitlab.Schedule) string {
	if s.LastPipeline == nil {
		return ""
	}
	return s.LastPipeline.Status
}

// Schedules renders a pipeline schedule listing. Supported formats: table,
// json, csv, markdown. The OWNER and LAST PIPELINE columns are part of the
// fixed row shape and render empty when unset.
func Schedules(w io.Writer, format Format, schedules []gitlab.Schedule) error {
	switch format {
	case Table:
		tw := newTable(w)
		tableHeader(tw, "ID", "DESCRIPTION", "REF", "CRON", "NEXT RUN", "ACTIVE", "OWNER", "LAST PIPELINE")
		for _, s := range schedules {
			active := ""
			if s.Active {
				active = "✓"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				s.ID, s.Description, s.Ref, s.Cron, s.NextRunAt,
				active, scheduleOwner(s), scheduleLastStatus(s))
		}
		return tw.Flush()
	case JSON:
		if schedules == nil {
			schedules = []gitlab.Schedule{}
		}
		return writeJSON(w, schedules)
	case CSV:
		cw := csv.NewWriter(w)
		header := []string{
			"ID", "Description", "Ref", "Cron", "Timezone",
			"Next Run", "Active", "Owner", "Last Pipeline",
		}
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, s := range schedules {
			record := []string{
				strconv.Itoa(s.ID), s.Description, s.Ref, s.Cron, s.CronTimezone,
				s.NextRunAt, boolYesNo(s.Active), scheduleOwner(s), scheduleLastStatus(s),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case Markdown:
		rows := make([][]string, 0, len(schedules))
		for _, s := range schedules {
			rows = append(rows, []string{
				strconv.Itoa(s.ID), s.Description, s.Ref, s.Cron,
				s.NextRunAt, boolYesNo(s.Active), scheduleOwner(s), scheduleLastStatus(s),
			})
		}
		header := []string{"ID", "Description", "Ref", "Cron", "Next Run", "Active", "Owner", "Last Pipeline"}
		return mdTable(w, header, rows)
	default:
		return &UnsupportedError{Format: format, Entity: "schedules"}
	}
}

// ScheduleDetail renders a single pipeline schedule. Supported formats:
// detail, json.
func ScheduleDetail(w io.Writer, format Format, s *gitlab.Schedule) error {
	switch format {
	case Detail:
		fmt.Fprintln(w, nameStyle.Render(fmt.Sprintf("Schedule #%d - %s", s.ID, s.Description)))
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Ref:"), s.Ref)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Cron:"), s.Cron)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Timezone:"), s.CronTimezone)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Next Run:"), s.NextRunAt)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Active:"), boolYesNo(s.Active))
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Owner:"), scheduleOwner(*s))
		if s.LastPipeline != nil {
			fmt.Fprintf(w, "%s #%d %s (%s)\n", labelStyle.Render("Last Pipeline:"),
				s.LastPipeline.ID, styleStatus(s.LastPipeline.Status), s.LastPipeline.Ref)
		} else {
			fmt.Fprintf(w, "%s\n", labelStyle.Render("Last Pipeline:"))
		}
		return nil
	case JSON:
		return writeJSON(w, s)
	default:
		return &UnsupportedError{Format: format, Entity: "schedule"}
	}
}
