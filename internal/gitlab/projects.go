package gitlab

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
)

// Project is a GitLab project.
type Project struct {
	ID                int              `json:"id"`
	Name              string           `json:"name"`
	Path              string           `json:"path"`
	PathWithNamespace string           `json:"path_with_namespace"`
	Description       string           `json:"description"`
	Visibility        string           `json:"visibility"`
	DefaultBranch     string           `json:"default_branch"`
	WebURL            string           `json:"web_url"`
	Namespace         ProjectNamespace `json:"namespace"`
	StarCount         int              `json:"star_count"`
	ForksCount        int              `json:"forks_count"`
}

// ProjectNamespace is the namespace a project lives in.
type ProjectNamespace struct {
	FullPath string `json:"full_path"`
}

// ProjectListOptions filters a project listing.
type ProjectListOptions struct {
	// Group restricts the listing to projects of the group with this full
	// path.
	Group  string
	Search string
	Limit  int
}

// ProjectsService queries projects.
type ProjectsService struct {
	src Source
	log zerolog.Logger
}

// NewProjectsService returns a ProjectsService backed by src.
func NewProjectsService(src Source, logger zerolog.Logger) *ProjectsService {
	return &ProjectsService{src: src, log: logger}
}

// List fetches projects, optionally scoped to a group.
func (s *ProjectsService) List(ctx context.Context, opts ProjectListOptions) ([]Project, error) {
	filters := url.Values{}
	if opts.Search != "" {
		filters.Set("search", opts.Search)
	}

	resource := "projects"
	if opts.Group != "" {
		group, err := s.resolveGroup(ctx, opts.Group)
		if err != nil {
			return nil, err
		}
		resource = "groups/" + itoa(group.ID) + "/projects"
	}

	projects, err := fetchAll[Project](ctx, s.src, resource, filters, opts.Limit)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("count", len(projects)).Str("resource", resource).Msg("fetched projects")
	return projects, nil
}

// Get fetches a single project by full path or numeric ID.
func (s *ProjectsService) Get(ctx context.Context, pathOrID string) (*Project, error) {
	var project Project
	if err := s.src.FetchOne(ctx, projectResource(pathOrID), "project", pathOrID, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// resolveGroup finds a group by exact full path via the search API.
func (s *ProjectsService) resolveGroup(ctx context.Context, fullPath string) (*Group, error) {
	filters := url.Values{}
	filters.Set("search", fullPath)

	groups, err := fetchAll[Group](ctx, s.src, "groups", filters, 0)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		if groups[i].FullPath == fullPath {
			return &groups[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "group", ID: fullPath}
}
