package graph

import (
	"errors"
	"fmt"
)

var (
	ErrNoPages           = errors.New("no manageable pages returned, check permissions/roles and the Page<->IG link")
	ErrNoPublishablePage = errors.New("no page carries both instagram_business_account and access_token")
	ErrNoAccessToken     = errors.New("no access_token in token response")
	ErrNoContainerID     = errors.New("no container id in response")
	ErrNoMediaID         = errors.New("no media id in response")
	ErrProcessingTimeout = errors.New("timed out waiting for video processing")
)

// APIError is returned whenever the Graph API answers with a client or
// server error status. Response holds the decoded JSON body, or a
// {"_raw": ...} wrapper when the body is not JSON.
type APIError struct {
	URL        string
	StatusCode int
	Response   map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph api call failed: %s (status %d)", e.URL, e.StatusCode)
}

// ProcessingError reports a container that reached a terminal failure
// state (ERROR or EXPIRED) during remote transcoding. Not retryable.
type ProcessingError struct {
	ContainerID string
	StatusCode  string
	Status      string
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("container %s processing failed: %s", e.ContainerID, e.StatusCode)
}
