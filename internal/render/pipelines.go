package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rwese/gitlab-toolbox/internal/gitlab"
)

// shortSHALen truncates commit SHAs in listings.
const shortSHALen = 8

func shortSHA(sha string) string {
	if len(sha) <= shortSHALen {
		return sha
	}
	return sha[:shortSHALen]
}

func pipelineDuration(d *int) string {
	if d == nil {
		return ""
	}
	return strconv.Itoa(*d) + "s"
}

// Pipelines renders a pipeline listing. Supported formats: table, json, csv,
// markdown.
func Pipelines(w io.Writer, format Format, pipelines []gitlab.Pipeline) error {
	switch format {
	case Table:
		tw := newTable(w)
		tableHeader(tw, "ID", "STATUS", "REF", "SHA", "DURATION", "CREATED")
		for _, p := range pipelines {
			fmt.Fprintf(tw, "#%d\t%s %s\t%s\t%s\t%s\t%s\n",
				p.ID, statusIcon(p.Status), p.Status, p.Ref,
				shortSHA(p.SHA), pipelineDuration(p.Duration), p.CreatedAt)
		}
		return tw.Flush()
	case JSON:
		if pipelines == nil {
			pipelines = []gitlab.Pipeline{}
		}
		return writeJSON(w, pipelines)
	case CSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"ID", "Status", "Ref", "SHA", "Duration", "Created", "URL"}); err != nil {
			return err
		}
		for _, p := range pipelines {
			duration := ""
			if p.Duration != nil {
				duration = strconv.Itoa(*p.Duration)
			}
			record := []string{
				strconv.Itoa(p.ID), p.Status, p.Ref, shortSHA(p.SHA),
				duration, p.CreatedAt, p.WebURL,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case Markdown:
		rows := make([][]string, 0, len(pipelines))
		for _, p := range pipelines {
			duration := ""
			if p.Duration != nil {
				duration = strconv.Itoa(*p.Duration)
			}
			rows = append(rows, []string{
				strconv.Itoa(p.ID), p.Status, p.Ref, shortSHA(p.SHA), duration, p.CreatedAt,
			})
		}
		return mdTable(w, []string{"ID", "Status", "Ref", "SHA", "Duration", "Created"}, rows)
	default:
		return &UnsupportedError{Format: format, Entity: "pipelines"}
	}
}

// PipelineDetail renders a single pipeline. Supported formats: detail, json.
func PipelineDetail(w io.Writer, format Format, p *gitlab.Pipeline) error {
	switch format {
	case Detail:
		fmt.Fprintln(w, nameStyle.Render(fmt.Sprintf("Pipeline #%d", p.ID)))
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Status:"), styleStatus(p.Status))
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Ref:"), p.Ref)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("SHA:"), p.SHA)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Duration:"), pipelineDuration(p.Duration))
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Created:"), p.CreatedAt)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Updated:"), p.UpdatedAt)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("URL:"), p.WebURL)
		return nil
	case JSON:
		return writeJSON(w, p)
	default:
		return &UnsupportedError{Format: format, Entity: "pipeline"}
	}
}

func jobDuration(d *float64) string {
	if d == nil {
		return ""
	}
	return strconv.FormatFloat(*d, 'f', 1, 64) + "s"
}

// Jobs renders a pipeline's jobs. Supported formats: table, json, csv,
// markdown.
func Jobs(w io.Writer, format Format, jobs []gitlab.Job) error {
	switch format {
	case Table:
		tw := newTable(w)
		tableHeader(tw, "NAME", "STAGE", "STATUS", "DURATION", "STARTED")
		for _, j := range jobs {
			fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\n",
				j.Name, j.Stage, statusIcon(j.Status), j.Status,
				jobDuration(j.Duration), j.StartedAt)
		}
		return tw.Flush()
	case JSON:
		if jobs == nil {
			jobs = []gitlab.Job{}
		}
		return writeJSON(w, jobs)
	case CSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"Name", "Stage", "Status", "Duration", "Started", "URL"}); err != nil {
			return err
		}
		for _, j := range jobs {
			duration := ""
			if j.Duration != nil {
				duration = strconv.FormatFloat(*j.Duration, 'f', 1, 64)
			}
			record := []string{j.Name, j.Stage, j.Status, duration, j.StartedAt, j.WebURL}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case Markdown:
		rows := make([][]string, 0, len(jobs))
		for _, j := range jobs {
			duration := ""
			if j.Duration != nil {
				duration = strconv.FormatFloat(*j.Duration, 'f', 1, 64)
			}
			rows = append(rows, []string{j.Name, j.Stage, j.Status, duration, j.StartedAt})
		}
		return mdTable(w, []string{"Name", "Stage", "Status", "Duration", "Started"}, rows)
	default:
		return &UnsupportedError{Format: format, Entity: "jobs"}
	}
}
