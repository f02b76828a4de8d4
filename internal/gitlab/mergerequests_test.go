package gitlab

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestPipeline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pipelines []Pipeline
		wantID    int
		wantNil   bool
	}{
		{
			name:    "empty slice",
			wantNil: true,
		},
		{
			name: "latest by creation time, not slice order",
			pipelines: []Pipeline{
				{ID: 5, Status: "success", CreatedAt: "2025-06-01T10:00:05Z"},
				{ID: 1, Status: "failed", CreatedAt: "2025-06-01T10:00:01Z"},
			},
			wantID: 5,
		},
		{
			name: "later element wins on equal timestamps",
			pipelines: []Pipeline{
				{ID: 7, Status: "failed", CreatedAt: "2025-06-01T10:00:00Z"},
				{ID: 8, Status: "success", CreatedAt: "2025-06-01T10:00:00Z"},
			},
			wantID: 8,
		},
		{
			name: "unparseable timestamp sorts first",
			pipelines: []Pipeline{
				{ID: 3, Status: "success", CreatedAt: "2025-06-01T10:00:00Z"},
				{ID: 4, Status: "failed", CreatedAt: "garbage"},
			},
			wantID: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			latest := LatestPipeline(tt.pipelines)
			if tt.wantNil {
				assert.Nil(t, latest)
				return
			}
			require.NotNil(t, latest)
			assert.Equal(t, tt.wantID, latest.ID)
		})
	}
}

func TestFilterByLatestStatus(t *testing.T) {
	t.Parallel()

	mrs := []MergeRequest{
		{IID: 1, PipelineStatus: "success"},
		{IID: 2, PipelineStatus: "failed"},
		{IID: 3}, // no pipelines, no annotation
	}

	t.Run("matches annotated status", func(t *testing.T) {
		t.Parallel()
		filtered := FilterByLatestStatus(mrs, "success")
		require.Len(t, filtered, 1)
		assert.Equal(t, 1, filtered[0].IID)
	})

	t.Run("merge request without pipelines never matches", func(t *testing.T) {
		t.Parallel()
		for _, status := range []string{"success", "failed", "running", ""} {
			for _, mr := range FilterByLatestStatus(mrs, status) {
				assert.NotEqual(t, 3, mr.IID, "status %q matched a pipeline-less merge request", status)
			}
		}
	})
}

// routedSource maps resource paths to canned pages, one page per resource.
type routedSource struct {
	pages map[string][]json.RawMessage
}

func (s *routedSource) FetchPage(
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

func (s *routedSource) FetchOne(_ context.Context, resource, kind, id string, out any) error {
	records, ok := s.pages[resource]
	if !ok || len(records) == 0 {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return json.Unmarshal(records[0], out)
}

func TestMergeRequestsListPipelineStatusFilter(t *testing.T) {
	t.Parallel()

	src := &routedSource{pages: map[string][]json.RawMessage{
		"projects/acme%2Fapp/merge_requests": {
			json.RawMessage(`{"iid":1,"project_id":42,"title":"one","state":"opened"}`),
			json.RawMessage(`{"iid":2,"project_id":42,"title":"two","state":"opened"}`),
			json.RawMessage(`{"iid":3,"project_id":42,"title":"three","state":"opened"}`),
		},
		// MR 1: failed at t=1, success at t=5 -> latest is success.
		"projects/42/merge_requests/1/pipelines": {
			json.RawMessage(`{"id":100,"status":"failed","created_at":"2025-06-01T00:00:01Z"}`),
			json.RawMessage(`{"id":101,"status":"success","created_at":"2025-06-01T00:00:05Z"}`),
		},
		// MR 2: single failed pipeline.
		"projects/42/merge_requests/2/pipelines": {
			json.RawMessage(`{"id":102,"status":"failed","created_at":"2025-06-01T00:00:03Z"}`),
		},
		// MR 3: no pipelines at all.
		"projects/42/merge_requests/3/pipelines": {},
	}}

	svc := NewMergeRequestsService(src, zerolog.Nop())

	t.Run("success includes the MR whose latest run succeeded", func(t *testing.T) {
		t.Parallel()
		mrs, err := svc.List(context.Background(), MergeRequestListOptions{
			Project:        "acme/app",
			PipelineStatus: "success",
		})
		require.NoError(t, err)
		require.Len(t, mrs, 1)
		assert.Equal(t, 1, mrs[0].IID)
		assert.Equal(t, "success", mrs[0].PipelineStatus)
	})

	t.Run("failed excludes the MR whose failure was superseded", func(t *testing.T) {
		t.Parallel()
		mrs, err := svc.List(context.Background(), MergeRequestListOptions{
			Project:        "acme/app",
			PipelineStatus: "failed",
		})
		require.NoError(t, err)
		require.Len(t, mrs, 1)
		assert.Equal(t, 2, mrs[0].IID)
	})
}

func TestMergeRequestsGetNotFound(t *testing.T) {
	t.Parallel()

	svc := NewMergeRequestsService(&routedSource{pages: map[string][]json.RawMessage{}}, zerolog.Nop())
	_, err := svc.Get(context.Background(), "acme/app", 7)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "merge request", notFound.Kind)
	assert.Equal(t, "!7", notFound.ID)
}
