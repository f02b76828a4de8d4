package gitlab

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
)

// MergeRequest is a merge request. PipelineStatus is not part of the API
// payload; it is annotated by the service when a pipeline-status filter is
// requested and holds the status of the most recently created pipeline.
type MergeRequest struct {
	ID             int    `json:"id"`
	IID            int    `json:"iid"`
	ProjectID      int    `json:"project_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	State          string `json:"state"`
	Author         User   `json:"author"`
	SourceBranch   string `json:"source_branch"`
	TargetBranch   string `json:"target_branch"`
	WebURL         string `json:"web_url"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
	MergedAt       string `json:"merged_at"`
	Draft          bool   `json:"draft"`
	WorkInProgress bool   `json:"work_in_progress"`

	PipelineStatus string `json:"pipeline_status,omitempty"`
}

// User identifies a GitLab user on a record.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// IsDraft reports whether the merge request is marked draft under either the
// current or the legacy WIP flag.
func (mr MergeRequest) IsDraft() bool {
	return mr.Draft || mr.WorkInProgress
}

// MergeRequestListOptions filters a merge request listing.
type MergeRequestListOptions struct {
	// Project scopes the listing to one project (full path or ID); empty
	// lists the caller's merge requests across projects.
	Project       string
	State         string
	Search        string
	Author        string
	ExcludeDrafts bool

	// PipelineStatus keeps only merge requests whose latest pipeline has
	// this status. Resolving it costs one extra fetch per merge request.
	PipelineStatus string

	Limit int
}

// MergeRequestsService queries merge requests.
type MergeRequestsService struct {
	src       Source
	pipelines *PipelinesService
	log       zerolog.Logger
}

// NewMergeRequestsService returns a MergeRequestsService backed by src.
func NewMergeRequestsService(src Source, logger zerolog.Logger) *MergeRequestsService {
	return &MergeRequestsService{
		src:       src,
		pipelines: NewPipelinesService(src, logger),
		log:       logger,
	}
}

// List fetches merge requests and, when requested, filters them by the
// status of each one's latest pipeline.
func (s *MergeRequestsService) List(ctx context.Context, opts MergeRequestListOptions) ([]MergeRequest, error) {
	filters := url.Values{}
	state := opts.State
	if state == "" {
		state = "opened"
	}
	filters.Set("state", state)
	if opts.Search != "" {
		filters.Set("search", opts.Search)
	}
	if opts.Author != "" {
		filters.Set("author_username", opts.Author)
	}
	if opts.ExcludeDrafts {
		filters.Set("wip", "no")
	}

	resource := "merge_requests"
	if opts.Project != "" {
		resource = projectResource(opts.Project) + "/merge_requests"
	}

	mrs, err := fetchAll[MergeRequest](ctx, s.src, resource, filters, opts.Limit)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("count", len(mrs)).Str("state", state).Msg("fetched merge requests")

	if opts.PipelineStatus == "" {
		return mrs, nil
	}

	if err := s.AnnotatePipelineStatus(ctx, mrs); err != nil {
		return nil, err
	}
	return FilterByLatestStatus(mrs, opts.PipelineStatus), nil
}

// Get fetches a single merge request by project and IID.
func (s *MergeRequestsService) Get(ctx context.Context, project string, iid int) (*MergeRequest, error) {
	var mr MergeRequest
	resource := projectResource(project) + "/merge_requests/" + itoa(iid)
	if err := s.src.FetchOne(ctx, resource, "merge request", "!"+itoa(iid), &mr); err != nil {
		return nil, err
	}
	return &mr, nil
}

// AnnotatePipelineStatus resolves and stores the latest pipeline status for
// every merge request in place. Merge requests without pipelines keep an
// empty status.
func (s *MergeRequestsService) AnnotatePipelineStatus(ctx context.Context, mrs []MergeRequest) error {
	for i := range mrs {
		resource := "projects/" + itoa(mrs[i].ProjectID) + "/merge_requests/" + itoa(mrs[i].IID) + "/pipelines"
		pipelines, err := fetchAll[Pipeline](ctx, s.src, resource, nil, 0)
		if err != nil {
			return err
		}
		if latest := LatestPipeline(pipelines); latest != nil {
			mrs[i].PipelineStatus = latest.Status
		}
	}
	return nil
}

// LatestPipeline returns the pipeline with the most recent creation
// timestamp. API return order is not chronological, so every element is
// inspected. Equal timestamps resolve toward the element appearing later in
// the sequence. Returns nil for an empty slice.
func LatestPipeline(pipelines []Pipeline) *Pipeline {
	var latest *Pipeline
	for i := range pipelines {
		if latest == nil || !pipelines[i].CreatedTime().Before(latest.CreatedTime()) {
			latest = &pipelines[i]
		}
	}
	return latest
}

// FilterByLatestStatus returns the merge requests whose annotated latest
// pipeline status equals status. A merge request with no pipelines carries an
// empty annotation and never matches, whatever the target status.
func FilterByLatestStatus(mrs []MergeRequest, status string) []MergeRequest {
	filtered := make([]MergeRequest, 0, len(mrs))
	for _, mr := range mrs {
		if mr.PipelineStatus != "" && mr.PipelineStatus == status {
			filtered = append(filtered, mr)
		}
	}
	return filtered
}
