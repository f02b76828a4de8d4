package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rwese/gitlab-toolbox/internal/gitlab"
)

// GroupOptions tunes the group renderers.
type GroupOptions struct {
	// ShowMembers switches the listing to one row per member.
	ShowMembers bool
}

// Groups renders a group forest. Supported formats: table, tree, json, csv,
// markdown.
func Groups(w io.Writer, format Format, forest []*gitlab.Group, opts GroupOptions) error {
	switch format {
	case Table:
		return groupsTable(w, forest, opts)
	case Tree:
		return groupsTree(w, forest, opts)
	case JSON:
		if forest == nil {
			forest = []*gitlab.Group{}
		}
		return writeJSON(w, forest)
	case CSV:
		return groupsCSV(w, forest, opts)
	case Markdown:
		return groupsMarkdown(w, forest, opts)
	case Detail:
		return &UnsupportedError{Format: format, Entity: "groups"}
	default:
		return &UnsupportedError{Format: format, Entity: "groups"}
	}
}

// GroupDetail renders a single group. Supported formats: detail, json.
func GroupDetail(w io.Writer, format Format, group *gitlab.Group) error {
	switch format {
	case Detail:
		fmt.Fprintln(w, nameStyle.Render(group.Name))
		fmt.Fprintln(w, pathStyle.Render(group.FullPath))
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %d\n", labelStyle.Render("ID:"), group.ID)
		parent := ""
		if group.ParentID != nil {
			parent = strconv.Itoa(*group.ParentID)
		}
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Parent ID:"), parent)
		fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Members:"), len(group.Members))
		for _, m := range group.Members {
			fmt.Fprintf(w, "  %s (%s) - %s\n", m.Username, m.Name, m.AccessLevelName)
		}
		return nil
	case JSON:
		return writeJSON(w, group)
	default:
		return &UnsupportedError{Format: format, Entity: "group"}
	}
}

// groupRow pairs a group with its depth in the forest, in pre-order.
type groupRow struct {
	group *gitlab.Group
	depth int
}

func flattenGroups(forest []*gitlab.Group) []groupRow {
	var rows []groupRow
	var walk func(g *gitlab.Group, depth int)
	walk = func(g *gitlab.Group, depth int) {
		rows = append(rows, groupRow{group: g, depth: depth})
		for _, sub := range g.Subgroups {
			walk(sub, depth+1)
		}
	}
	for _, root := range forest {
		walk(root, 0)
	}
	return rows
}

// indentedPath renders a group path with hierarchy indentation for the flat
// formats.
func indentedPath(row groupRow) string {
	if row.depth == 0 {
		return row.group.FullPath
	}
	return strings.Repeat("  ", row.depth) + "└─ " + row.group.FullPath
}

func groupsTable(w io.Writer, forest []*gitlab.Group, opts GroupOptions) error {
	tw := newTable(w)
	if opts.ShowMembers {
		tableHeader(tw, "GROUP", "USERNAME", "NAME", "ROLE", "STATE", "MEMBERSHIP")
		for _, row := range flattenGroups(forest) {
			path := indentedPath(row)
			if len(row.group.Members) == 0 {
				fmt.Fprintf(tw, "%s\t(no members)\t\t\t\t\n", path)
				continue
			}
			for i, m := range row.group.Members {
				col := path
				if i > 0 {
					col = ""
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					col, m.Username, m.Name, m.AccessLevelName, m.State, m.MembershipState)
			}
		}
		return tw.Flush()
	}

	tableHeader(tw, "GROUP PATH", "ID")
	for _, row := range flattenGroups(forest) {
		fmt.Fprintf(tw, "%s\t%d\n", indentedPath(row), row.group.ID)
	}
	return tw.Flush()
}

func groupsTree(w io.Writer, forest []*gitlab.Group, opts GroupOptions) error {
	var walk func(g *gitlab.Group, prefix string, last bool)
	walk = func(g *gitlab.Group, prefix string, last bool) {
		connector := "├── "
		childPrefix := prefix + "│   "
		if last {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		fmt.Fprintf(w, "%s%s%s %s\n",
			prefix, connector, nameStyle.Render(g.Name), pathStyle.Render("("+g.FullPath+")"))

		if opts.ShowMembers {
			for _, m := range g.Members {
				fmt.Fprintf(w, "%s%s - %s (%s)\n",
					childPrefix, m.Username, m.Name, m.AccessLevelName)
			}
		}
		for i, sub := range g.Subgroups {
			walk(sub, childPrefix, i == len(g.Subgroups)-1)
		}
	}

	fmt.Fprintln(w, labelStyle.Render("Groups"))
	for i, root := range forest {
		walk(root, "", i == len(forest)-1)
	}
	return nil
}

func groupsCSV(w io.Writer, forest []*gitlab.Group, opts GroupOptions) error {
	cw := csv.NewWriter(w)
	if opts.ShowMembers {
		if err := cw.Write([]string{"Group", "Username", "Name", "Role", "State", "Membership"}); err != nil {
			return err
		}
		for _, row := range flattenGroups(forest) {
			for _, m := range row.group.Members {
				record := []string{
					row.group.FullPath, m.Username, m.Name,
					m.AccessLevelName, m.State, m.MembershipState,
				}
				if err := cw.Write(record); err != nil {
					return err
				}
			}
		}
	} else {
		if err := cw.Write([]string{"Group Path", "Group ID"}); err != nil {
			return err
		}
		for _, row := range flattenGroups(forest) {
			if err := cw.Write([]string{row.group.FullPath, strconv.Itoa(row.group.ID)}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func groupsMarkdown(w io.Writer, forest []*gitlab.Group, opts GroupOptions) error {
	if opts.ShowMembers {
		var rows [][]string
		for _, row := range flattenGroups(forest) {
			path := indentedPath(row)
			if len(row.group.Members) == 0 {
				rows = append(rows, []string{path, "*no members*", "", "", "", ""})
				continue
			}
			for i, m := range row.group.Members {
				col := path
				if i > 0 {
					col = ""
				}
				rows = append(rows, []string{
					col, m.Username, m.Name, m.AccessLevelName, m.State, m.MembershipState,
				})
			}
		}
		return mdTable(w, []string{"Group", "Username", "Name", "Role", "State", "Membership"}, rows)
	}

	var rows [][]string
	for _, row := range flattenGroups(forest) {
		rows = append(rows, []string{indentedPath(row), strconv.Itoa(row.group.ID)})
	}
	return mdTable(w, []string{"Group Path", "Group ID"}, rows)
}
