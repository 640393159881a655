package publisher

import (
	"fmt"

	"igpublisher/graph"
)

// ValidationError marks a request rejected before any upstream call is
// made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var validMediaTypes = map[string]bool{
	graph.MediaTypeReels:   true,
	graph.MediaTypeVideo:   true,
	graph.MediaTypeStories: true,
}
