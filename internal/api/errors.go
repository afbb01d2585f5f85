package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyID is returned before any I/O when an item lookup gets no id.
var ErrEmptyID = errors.New("id required")

// Error is an answer from the API that carries no usable data: an HTTP
// status >= 400, or an envelope with success=false or no data.
type Error struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.StatusCode >= 400 {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.StatusCode, msg)
	}
	return fmt.Sprintf("api %s: %s", e.Path, msg)
}

// IsNotFound reports whether err means the API has no such item: a 404, or
// an envelope-level failure on an otherwise successful response.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrEmptyID) {
		return true
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusNotFound || apiErr.StatusCode < 400
}
