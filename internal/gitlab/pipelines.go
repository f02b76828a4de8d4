package gitlab

import (
	"context"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Pipeline is one CI pipeline run.
type Pipeline struct {
	ID        int    `json:"id"`
	IID       int    `json:"iid"`
	ProjectID int    `json:"project_id"`
	Status    string `json:"status"`
	Ref       string `json:"ref"`
	SHA       string `json:"sha"`
	WebURL    string `json:"web_url"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Duration  *int   `json:"duration"`
}

// CreatedTime parses the pipeline creation timestamp. Unparseable or empty
// timestamps yield the zero time, which sorts before everything.
func (p Pipeline) CreatedTime() time.Time {
	t, err := time.Parse(time.RFC3339, p.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Job is one job within a pipeline.
type Job struct {
	ID         int         `json:"id"`
	Name       string      `json:"name"`
	Stage      string      `json:"stage"`
	Status     string      `json:"status"`
	Ref        string      `json:"ref"`
	CreatedAt  string      `json:"created_at"`
	StartedAt  string      `json:"started_at"`
	FinishedAt string      `json:"finished_at"`
	Duration   *float64    `json:"duration"`
	WebURL     string      `json:"web_url"`
	Pipeline   JobPipeline `json:"pipeline"`
}

// JobPipeline references the pipeline a job belongs to.
type JobPipeline struct {
	ID int `json:"id"`
}

// PipelineListOptions filters a pipeline listing.
type PipelineListOptions struct {
	Status       string
	Source       string
	CreatedAfter string
	Limit        int
}

// PipelinesService queries CI pipelines and their jobs.
type PipelinesService struct {
	src Source
	log zerolog.Logger
}

// NewPipelinesService returns a PipelinesService backed by src.
func NewPipelinesService(src Source, logger zerolog.Logger) *PipelinesService {
	return &PipelinesService{src: src, log: logger}
}

// List fetches pipelines for a project (full path or numeric ID).
func (s *PipelinesService) List(ctx context.Context, project string, opts PipelineListOptions) ([]Pipeline, error) {
	filters := url.Values{}
	if opts.Status != "" {
		filters.Set("status", opts.Status)
	}
	if opts.Source != "" {
		filters.Set("source", opts.Source)
	}
	if opts.CreatedAfter != "" {
		filters.Set("created_after", opts.CreatedAfter)
	}

	resource := projectResource(project) + "/pipelines"
	pipelines, err := fetchAll[Pipeline](ctx, s.src, resource, filters, opts.Limit)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("count", len(pipelines)).Str("project", project).Msg("fetched pipelines")
	return pipelines, nil
}

// Get fetches a single pipeline.
func (s *PipelinesService) Get(ctx context.Context, project string, pipelineID int) (*Pipeline, error) {
	var pipeline Pipeline
	resource := projectResource(project) + "/pipelines/" + itoa(pipelineID)
	if err := s.src.FetchOne(ctx, resource, "pipeline", itoa(pipelineID), &pipeline); err != nil {
		return nil, err
	}
	return &pipeline, nil
}

// Jobs fetches the jobs of one pipeline.
func (s *PipelinesService) Jobs(ctx context.Context, project string, pipelineID int) ([]Job, error) {
	resource := projectResource(project) + "/pipelines/" + itoa(pipelineID) + "/jobs"
	return fetchAll[Job](ctx, s.src, resource, nil, 0)
}
