package gitlab

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectsListScopedToGroup(t *testing.T) {
	t.Parallel()

	src := &routedSource{pages: map[string][]json.RawMessage{
		// The search can return partial matches; only the exact full path
		// resolves.
		"groups": {
			json.RawMessage(`{"id":5,"name":"Platform Tools","full_path":"acme/platform-tools"}`),
			json.RawMessage(`{"id":7,"name":"Platform","full_path":"acme/platform"}`),
		},
		"groups/7/projects": {
			json.RawMessage(`{"id":42,"name":"app","path_with_namespace":"acme/platform/app"}`),
		},
	}}
	svc := NewProjectsService(src, zerolog.Nop())

	projects, err := svc.List(context.Background(), ProjectListOptions{Group: "acme/platform"})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "acme/platform/app", projects[0].PathWithNamespace)
}

func TestProjectsListUnknownGroup(t *testing.T) {
	t.Parallel()

	src := &routedSource{pages: map[string][]json.RawMessage{
		"groups": {
			json.RawMessage(`{"id":5,"full_path":"acme/platform-tools"}`),
		},
	}}
	svc := NewProjectsService(src, zerolog.Nop())

	_, err := svc.List(context.Background(), ProjectListOptions{Group: "acme/nope"})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "group", notFound.Kind)
	assert.Equal(t, "acme/nope", notFound.ID)
}

func TestProjectsGet(t *testing.T) {
	t.Parallel()

	src := &routedSource{pages: map[string][]json.RawMessage{
		"projects/acme%2Fapp": {
			json.RawMessage(`{"id":42,"name":"app","path_with_namespace":"acme/app","visibility":"internal"}`),
		},
	}}
	svc := NewProjectsService(src, zerolog.Nop())

	project, err := svc.Get(context.Background(), "acme/app")
	require.NoError(t, err)
	assert.Equal(t, 42, project.ID)
	assert.Equal(t, "internal", project.Visibility)
}
