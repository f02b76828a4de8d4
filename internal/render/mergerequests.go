package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rwese/gitlab-toolbox/internal/gitlab"
)

// MergeRequests renders a merge request listing. Supported formats: table,
// json, csv, markdown. The PIPELINE column is part of the fixed row shape and
// renders empty when no status was resolved.
func MergeRequests(w io.Writer, format Format, mrs []gitlab.MergeRequest) error {
	switch format {
	case Table:
		tw := newTable(w)
		tableHeader(tw, "IID", "TITLE", "AUTHOR", "STATE", "BRANCHES", "DRAFT", "PIPELINE")
		for _, mr := range mrs {
			draft := ""
			if mr.IsDraft() {
				draft = "✓"
			}
			fmt.Fprintf(tw, "!%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				mr.IID, mr.Title, mr.Author.Username, mr.State,
				mr.SourceBranch+" -> "+mr.TargetBranch, draft, mr.PipelineStatus)
		}
		return tw.Flush()
	case JSON:
		if mrs == nil {
			mrs = []gitlab.MergeRequest{}
		}
		return writeJSON(w, mrs)
	case CSV:
		cw := csv.NewWriter(w)
		header := []string{
			"IID", "Title", "Author", "State",
			"Source Branch", "Target Branch", "Draft", "Pipeline", "URL",
		}
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, mr := range mrs {
			record := []string{
				strconv.Itoa(mr.IID), mr.Title, mr.Author.Username, mr.State,
				mr.SourceBranch, mr.TargetBranch, boolYesNo(mr.IsDraft()),
				mr.PipelineStatus, mr.WebURL,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case Markdown:
		rows := make([][]string, 0, len(mrs))
		for _, mr := range mrs {
			rows = append(rows, []string{
				"!" + strconv.Itoa(mr.IID), mr.Title, mr.Author.Username, mr.State,
				mr.SourceBranch + " -> " + mr.TargetBranch,
				boolYesNo(mr.IsDraft()), mr.PipelineStatus,
			})
		}
		header := []string{"IID", "Title", "Author", "State", "Branches", "Draft", "Pipeline"}
		return mdTable(w, header, rows)
	default:
		return &UnsupportedError{Format: format, Entity: "merge requests"}
	}
}

// MergeRequestDetail renders a single merge request. Supported formats:
// detail, json.
func MergeRequestDetail(w io.Writer, format Format, mr *gitlab.MergeRequest) error {
	switch format {
	case Detail:
		fmt.Fprintln(w, nameStyle.Render(fmt.Sprintf("!%d - %s", mr.IID, mr.Title)))
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("State:"), mr.State)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Author:"), mr.Author.Username)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Source Branch:"), mr.SourceBranch)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Target Branch:"), mr.TargetBranch)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Draft:"), boolYesNo(mr.IsDraft()))
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Created:"), mr.CreatedAt)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Updated:"), mr.UpdatedAt)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Merged:"), mr.MergedAt)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("URL:"), mr.WebURL)
		fmt.Fprintln(w)
		fmt.Fprintln(w, labelStyle.Render("Description:"))
		fmt.Fprintln(w, mr.Description)
		return nil
	case JSON:
		return writeJSON(w, mr)
	default:
		return &UnsupportedError{Format: format, Entity: "merge request"}
	}
}
