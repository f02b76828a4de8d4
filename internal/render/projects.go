package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rwese/gitlab-toolbox/internal/gitlab"
)

// Projects renders a project listing. Supported formats: table, json, csv,
// markdown.
func Projects(w io.Writer, format Format, projects []gitlab.Project) error {
	switch format {
	case Table:
		tw := newTable(w)
		tableHeader(tw, "PATH", "VISIBILITY", "STARS", "FORKS", "DESCRIPTION")
		for _, p := range projects {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
				p.PathWithNamespace, p.Visibility, p.StarCount, p.ForksCount, p.Description)
		}
		return tw.Flush()
	case JSON:
		if projects == nil {
			projects = []gitlab.Project{}
		}
		return writeJSON(w, projects)
	case CSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"Path", "Visibility", "Stars", "Forks", "Description", "URL"}); err != nil {
			return err
		}
		for _, p := range projects {
			record := []string{
				p.PathWithNamespace, p.Visibility,
				strconv.Itoa(p.StarCount), strconv.Itoa(p.ForksCount),
				p.Description, p.WebURL,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case Markdown:
		rows := make([][]string, 0, len(projects))
		for _, p := range projects {
			rows = append(rows, []string{
				p.PathWithNamespace, p.Visibility,
				strconv.Itoa(p.StarCount), strconv.Itoa(p.ForksCount), p.Description,
			})
		}
		return mdTable(w, []string{"Path", "Visibility", "Stars", "Forks", "Description"}, rows)
	default:
		return &UnsupportedError{Format: format, Entity: "projects"}
	}
}

// ProjectDetail renders a single project. Supported formats: detail, json.
func ProjectDetail(w io.Writer, format Format, p *gitlab.Project) error {
	switch format {
	case Detail:
		fmt.Fprintln(w, nameStyle.Render(p.Name))
		fmt.Fprintln(w, pathStyle.Render(p.PathWithNamespace))
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Description:"), p.Description)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Visibility:"), p.Visibility)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Default Branch:"), p.DefaultBranch)
		fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Stars:"), p.StarCount)
		fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Forks:"), p.ForksCount)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("URL:"), p.WebURL)
		return nil
	case JSON:
		return writeJSON(w, p)
	default:
		return &UnsupportedError{Format: format, Entity: "project"}
	}
}
