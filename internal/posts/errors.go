package posts

import (
	"errors"
	"fmt"
)

// ErrInvalidPostID is returned by GetPostByIDWithValidation for ids below 1.
var ErrInvalidPostID = errors.New("post_id must be greater than 0")

// StatusError describes a non-2xx response from the upstream API.
type StatusError struct {
	Op         string
	URL        string
	StatusCode int
	Body       string // truncated, for debugging
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: GET %s: HTTP %d", e.Op, e.URL, e.StatusCode)
}

// IsStatusError reports whether err carries a non-2xx upstream response.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
