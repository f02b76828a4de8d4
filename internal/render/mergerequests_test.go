package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwese/gitlab-toolbox/internal/gitlab"
)

func sampleMRs() []gitlab.MergeRequest {
	return []gitlab.MergeRequest{
		{
			IID:            12,
			Title:          "Add widget cache",
			State:          "opened",
			SourceBranch:   "feature/cache",
			TargetBranch:   "main",
			Author:         gitlab.User{Username: "kara"},
			WebURL:         "https://gitlab.example.com/acme/app/-/merge_requests/12",
			PipelineStatus: "success",
		},
		{
			IID:          13,
			Title:        "Draft: rework auth",
			State:        "opened",
			Draft:        true,
			SourceBranch: "wip/auth",
			TargetBranch: "main",
			Author:       gitlab.User{Username: "lee"},
		},
	}
}

func TestMergeRequestsTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, MergeRequests(&buf, Table, sampleMRs()))

	out := buf.String()
	assert.Contains(t, out, "!12")
	assert.Contains(t, out, "feature/cache -> main")
	assert.Contains(t, out, "success")
	assert.NotContains(t, out, "\x1b")

	// The pipeline column exists on every row even when no status was
	// resolved; the draft MR renders it empty rather than dropping it.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[3], "!13")
	assert.NotContains(t, lines[3], "success")
}

func TestMergeRequestsCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, MergeRequests(&buf, CSV, sampleMRs()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "IID,Title,Author,State,Source Branch,Target Branch,Draft,Pipeline,URL", lines[0])
	assert.Equal(t, "12,Add widget cache,kara,opened,feature/cache,main,No,success,"+
		"https://gitlab.example.com/acme/app/-/merge_requests/12", lines[1])
	assert.Equal(t, "13,Draft: rework auth,lee,opened,wip/auth,main,Yes,,", lines[2])
}

func TestMergeRequestsJSONEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, MergeRequests(&buf, JSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestMergeRequestsUnsupportedFormats(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{Tree, Detail} {
		var unsupported *UnsupportedError
		err := MergeRequests(&bytes.Buffer{}, format, sampleMRs())
		require.ErrorAs(t, err, &unsupported, "format %s", format)
		assert.Equal(t, "merge requests", unsupported.Entity)
	}
}

func TestMergeRequestDetail(t *testing.T) {
	t.Parallel()

	mr := sampleMRs()[0]
	mr.Description = "Speeds up widget lookups."

	var buf bytes.Buffer
	require.NoError(t, MergeRequestDetail(&buf, Detail, &mr))

	out := buf.String()
	assert.Contains(t, out, "!12 - Add widget cache")
	assert.Contains(t, out, "kara")
	assert.Contains(t, out, "Speeds up widget lookups.")

	var unsupported *UnsupportedError
	require.ErrorAs(t, MergeRequestDetail(&bytes.Buffer{}, Markdown, &mr), &unsupported)
}
