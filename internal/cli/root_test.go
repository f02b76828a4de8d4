package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwese/gitlab-toolbox/internal/gitlab"
)

func noEnv(string) (string, bool) { return "", false }

// stubSource serves canned records per resource, all on page 1.
type stubSource struct {
	pages map[string][]json.RawMessage
}

func (s *stubSource) FetchPage(
	_ context.Context,
	resource string,
	page, _ int,
	_ url.Values,
) ([]json.RawMessage, error) {
	if page > 1 {
		return nil, nil
	}
	return s.pages[resource], nil
}

func (s *stubSource) FetchOne(_ context.Context, resource, kind, id string, out any) error {
	records, ok := s.pages[resource]
	if !ok || len(records) == 0 {
		return &gitlab.NotFoundError{Kind: kind, ID: id}
	}
	return json.Unmarshal(records[0], out)
}

// runCommand executes the root command against a stub source and captures
// stdout and stderr. Not parallel-safe: it swaps the package-level source
// factory.
func runCommand(t *testing.T, stub *stubSource, args ...string) (string, string, error) {
	t.Helper()

	orig := newSource
	newSource = func() gitlab.Source { return stub }
	t.Cleanup(func() { newSource = orig })

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmdWithEnv("test", noEnv)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommandWiring(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd("1.2.3")
	assert.Equal(t, "1.2.3", cmd.Version)

	wantAliases := map[string]string{
		"groups":        "g",
		"projects":      "proj",
		"mergerequests": "mr",
		"pipelines":     "p",
		"schedules":     "ps",
	}
	for name, alias := range wantAliases {
		sub := findCommand(cmd, name)
		require.NotNil(t, sub, "missing subcommand %s", name)
		assert.Contains(t, sub.Aliases, alias)
		require.NotNil(t, findCommand(sub, "list"), "%s has no list", name)
		require.NotNil(t, findCommand(sub, "show"), "%s has no show", name)
	}

	pipelines := findCommand(cmd, "pipelines")
	require.NotNil(t, findCommand(pipelines, "jobs"))
}

func findCommand(parent *cobra.Command, name string) *cobra.Command {
	for _, sub := range parent.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

func TestGroupsListCSV(t *testing.T) {
	stub := &stubSource{pages: map[string][]json.RawMessage{
		"groups": {
			json.RawMessage(`{"id":1,"name":"Alpha","full_path":"alpha"}`),
			json.RawMessage(`{"id":2,"name":"Beta","full_path":"alpha/beta","parent_id":1}`),
		},
	}}

	stdout, _, err := runCommand(t, stub, "groups", "list", "--members=false", "--output", "csv")
	require.NoError(t, err)

	want := "Group Path,Group ID\n" +
		"alpha,1\n" +
		"alpha/beta,2\n"
	assert.Equal(t, want, stdout)
}

func TestGroupsListNoMembers(t *testing.T) {
	stub := &stubSource{pages: map[string][]json.RawMessage{
		"groups": {
			json.RawMessage(`{"id":1,"name":"Alpha","full_path":"alpha"}`),
		},
		"groups/1/members": {
			json.RawMessage(`{"id":10,"username":"kara","name":"Kara","access_level":40,"state":"active"}`),
		},
	}}

	stdout, _, err := runCommand(t, stub, "groups", "list", "--no-members", "--output", "csv")
	require.NoError(t, err)

	want := "Group Path,Group ID\n" +
		"alpha,1\n"
	assert.Equal(t, want, stdout, "--no-members switches to the path-only listing")
}

func TestGroupsListMembersFlagsConflict(t *testing.T) {
	_, _, err := runCommand(t, &stubSource{}, "groups", "list", "--members", "--no-members")
	require.Error(t, err)
}

func TestGroupsListEmpty(t *testing.T) {
	stub := &stubSource{pages: map[string][]json.RawMessage{}}

	stdout, stderr, err := runCommand(t, stub, "groups", "list", "--output", "csv")
	require.NoError(t, err, "an empty listing is not an error")
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "No groups found.")
}

func TestMergeRequestsListInvalidState(t *testing.T) {
	_, _, err := runCommand(t, &stubSource{}, "mr", "list", "--state", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --state")
}

func TestMergeRequestsShowNotFound(t *testing.T) {
	stub := &stubSource{pages: map[string][]json.RawMessage{}}

	_, _, err := runCommand(t, stub, "mr", "show", "acme/app", "7", "--output", "json")

	var notFound *gitlab.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestMergeRequestsShowBadIID(t *testing.T) {
	_, _, err := runCommand(t, &stubSource{}, "mr", "show", "acme/app", "seven")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid merge request IID")
}

func TestPipelinesListJSON(t *testing.T) {
	stub := &stubSource{pages: map[string][]json.RawMessage{
		"projects/acme%2Fapp/pipelines": {
			json.RawMessage(`{"id":1,"status":"success","ref":"main","sha":"deadbeef"}`),
		},
	}}

	stdout, _, err := runCommand(t, stub, "pipelines", "list", "acme/app", "--output", "json")
	require.NoError(t, err)

	var decoded []gitlab.Pipeline
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "success", decoded[0].Status)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, _, err := runCommand(t, &stubSource{}, "groups", "list", "--output", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestSchedulesListWithLastPipeline(t *testing.T) {
	stub := &stubSource{pages: map[string][]json.RawMessage{
		"projects/42/pipeline_schedules": {
			json.RawMessage(`{"id":9,"description":"nightly","ref":"main","cron":"0 2 * * *","active":true}`),
		},
		"projects/42/pipeline_schedules/9/pipelines": {
			json.RawMessage(`{"id":305,"sha":"bbb","ref":"main","status":"success"}`),
		},
	}}

	stdout, _, err := runCommand(t, stub,
		"ps", "list", "42", "--with-last-pipeline", "--output", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "success")
}
