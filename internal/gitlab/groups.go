package gitlab

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
)

// Group is a GitLab group or subgroup. Members and Subgroups are populated
// separately: members by GroupsService.AttachMembers, subgroups by
// BuildGroupTree.
type Group struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	FullPath  string   `json:"full_path"`
	ParentID  *int     `json:"parent_id"`
	Members   []Member `json:"members"`
	Subgroups []*Group `json:"subgroups"`
}

// Member is a user's membership in a group.
type Member struct {
	ID              int    `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	AccessLevel     int    `json:"access_level"`
	AccessLevelName string `json:"access_level_name"`
	State           string `json:"state"`
	MembershipState string `json:"membership_state"`
}

// accessLevelNames maps GitLab numeric access levels to display names.
var accessLevelNames = map[int]string{ //nolint:gochecknoglobals // Fixed API mapping
	0:  "No Access",
	5:  "Minimal Access",
	10: "Guest",
	20: "Reporter",
	30: "Developer",
	40: "Maintainer",
	50: "Owner",
}

// AccessLevelName returns the display name for a numeric access level.
func AccessLevelName(level int) string {
	if name, ok := accessLevelNames[level]; ok {
		return name
	}
	return "Unknown"
}

// GroupListOptions filters a group listing.
type GroupListOptions struct {
	Search string
	Limit  int
}

// GroupsService queries groups and their members.
type GroupsService struct {
	src Source
	log zerolog.Logger
}

// NewGroupsService returns a GroupsService backed by src.
func NewGroupsService(src Source, logger zerolog.Logger) *GroupsService {
	return &GroupsService{src: src, log: logger}
}

// List fetches all available groups, including subgroups, as a flat batch.
func (s *GroupsService) List(ctx context.Context, opts GroupListOptions) ([]Group, error) {
	filters := url.Values{}
	filters.Set("all_available", "true")
	if opts.Search != "" {
		filters.Set("search", opts.Search)
	}

	groups, err := fetchAll[Group](ctx, s.src, "groups", filters, opts.Limit)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("count", len(groups)).Msg("fetched groups")
	return groups, nil
}

// Get fetches a single group by numeric ID or full path.
func (s *GroupsService) Get(ctx context.Context, idOrPath string) (*Group, error) {
	var group Group
	resource := "groups/" + url.PathEscape(idOrPath)
	if err := s.src.FetchOne(ctx, resource, "group", idOrPath, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// Members fetches the members of one group. When activeOnly is set, members
// whose user account is not active are dropped.
func (s *GroupsService) Members(ctx context.Context, groupID int, activeOnly bool) ([]Member, error) {
	raw, err := fetchAll[Member](ctx, s.src, "groups/"+itoa(groupID)+"/members", nil, 0)
	if err != nil {
		return nil, err
	}

	members := make([]Member, 0, len(raw))
	for _, m := range raw {
		m.AccessLevelName = AccessLevelName(m.AccessLevel)
		// Records without a state field count as active; default before
		// filtering so they survive activeOnly.
		if m.State == "" {
			m.State = "active"
		}
		if m.MembershipState == "" {
			m.MembershipState = "active"
		}
		if activeOnly && m.State != "active" {
			continue
		}
		members = append(members, m)
	}
	return members, nil
}

// AttachMembers populates Members on every group in the flat batch. It runs
// before tree assembly so each group is visited exactly once regardless of
// hierarchy shape.
func (s *GroupsService) AttachMembers(ctx context.Context, groups []Group, activeOnly bool) error {
	for i := range groups {
		members, err := s.Members(ctx, groups[i].ID, activeOnly)
		if err != nil {
			return err
		}
		groups[i].Members = members
	}
	return nil
}
