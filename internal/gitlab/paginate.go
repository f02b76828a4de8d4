package gitlab

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
)

// PageSize is the fixed number of records requested per page, matching the
// GitLab API maximum.
const PageSize = 100

// ErrNegativeLimit rejects negative --limit values before any fetch happens.
var ErrNegativeLimit = errors.New("limit must be >= 0")

// ValidateLimit checks a caller-supplied result limit. Zero means unlimited.
func ValidateLimit(limit int) error {
	if limit < 0 {
		return ErrNegativeLimit
	}
	return nil
}

// fetchAll drains a paginated resource into typed records. Pages are fetched
// in strictly increasing order starting at 1 until a page comes back empty or
// the accumulated count reaches limit (0 = unlimited). When the limit is hit
// mid-page the result is truncated to exactly limit. Any fetch or decode
// error discards everything accumulated so far.
func fetchAll[T any](
	ctx context.Context,
	src Source,
	resource string,
	filters url.Values,
	limit int,
) ([]T, error) {
	if err := ValidateLimit(limit); err != nil {
		return nil, err
	}

	var items []T
	for page := 1; ; page++ {
		raw, err := src.FetchPage(ctx, resource, page, PageSize, filters)
		if err != nil {
			return nil, err
		}
		if len(raw) == 0 {
			break
		}

		for _, record := range raw {
			var item T
			if err := json.Unmarshal(record, &item); err != nil {
				return nil, &ResponseFormatError{Resource: resource, Page: page, Err: err}
			}
			items = append(items, item)
		}

		if limit > 0 && len(items) >= limit {
			items = items[:limit]
			break
		}

		// A short page means the source is exhausted; skip the
		// would-be-empty next fetch.
		if len(raw) < PageSize {
			break
		}
	}
	return items, nil
}
