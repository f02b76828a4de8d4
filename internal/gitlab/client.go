// Package gitlab implements the read-only GitLab REST data source and the
// domain logic built on top of it: pagination, the group tree builder, and the
// merge-request pipeline-status filter.
package gitlab

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/rwese/gitlab-toolbox/internal/config"
)

// defaultTimeout bounds a single API request.
const defaultTimeout = 30 * time.Second

// Source is the remote data source abstraction the services consume. A page
// fetch returns raw records so each service decodes into its own types; an
// empty page signals exhaustion.
type Source interface {
	// FetchPage retrieves page (1-based) of the resource with at most
	// perPage records matching filters.
	FetchPage(ctx context.Context, resource string, page, perPage int, filters url.Values) ([]json.RawMessage, error)

	// FetchOne retrieves a single record and decodes it into out. A 404
	// becomes a *NotFoundError carrying kind and id.
	FetchOne(ctx context.Context, resource, kind, id string, out any) error
}

// Client is the HTTP implementation of Source against the GitLab v4 API.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewClient builds a client for the configured instance. The logger should
// already carry the invocation trace ID.
func NewClient(settings config.Settings, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: settings.BaseURL,
		token:   settings.Token,
		httpc:   &http.Client{Timeout: defaultTimeout},
		log:     logger,
	}
}

// FetchPage implements Source.
func (c *Client) FetchPage(
	ctx context.Context,
	resource string,
	page, perPage int,
	filters url.Values,
) ([]json.RawMessage, error) {
	query := url.Values{}
	for key, vals := range filters {
		for _, v := range vals {
			query.Add(key, v)
		}
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	body, _, err := c.get(ctx, resource, query)
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &ResponseFormatError{Resource: resource, Page: page, Err: err}
	}
	return records, nil
}

// FetchOne implements Source.
func (c *Client) FetchOne(ctx context.Context, resource, kind, id string, out any) error {
	body, status, err := c.get(ctx, resource, nil)
	if err != nil {
		if status == http.StatusNotFound {
			return &NotFoundError{Kind: kind, ID: id}
		}
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ResponseFormatError{Resource: resource, Err: err}
	}
	return nil
}

// get performs one GET request and returns the body. The returned status is
// non-zero whenever a response was received, including error statuses.
func (c *Client) get(ctx context.Context, resource string, query url.Values) ([]byte, int, error) {
	u := c.baseURL + "/api/v4/" + resource
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, &TransportError{URL: u, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug().
		Str("method", http.MethodGet).
		Str("url", u).
		Msg("api request")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, &TransportError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{URL: u, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Debug().
			Int("status", resp.StatusCode).
			Str("url", u).
			Msg("api request failed")
		return nil, resp.StatusCode, &TransportError{URL: u, Status: resp.StatusCode}
	}

	return body, resp.StatusCode, nil
}

// projectResource returns the API path segment for a project given either a
// numeric ID or a full path like "group/project".
func projectResource(project string) string {
	if _, err := strconv.Atoi(project); err == nil {
		return "projects/" + project
	}
	return "projects/" + url.PathEscape(project)
}

// itoa is a tiny alias used when building resource paths.
func itoa(n int) string { return strconv.Itoa(n) }

var _ Source = (*Client)(nil)
