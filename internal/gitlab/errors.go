package gitlab

import "fmt"

// TransportError indicates the GitLab instance could not be reached or
// answered with a non-success status. It is never retried.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gitlab request %s failed with status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("gitlab request %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseFormatError indicates a response body could not be decoded as the
// expected structure. Resource and Page identify the failing fetch.
type ResponseFormatError struct {
	Resource string
	Page     int
	Err      error
}

func (e *ResponseFormatError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("decoding %s page %d: %v", e.Resource, e.Page, e.Err)
	}
	return fmt.Sprintf("decoding %s: %v", e.Resource, e.Err)
}

func (e *ResponseFormatError) Unwrap() error { return e.Err }

// NotFoundError indicates a show operation's identifier did not resolve to
// any record. It is a recoverable condition, not a crash.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
