package llm

import (
	"errors"
	"fmt"
)

// ErrNoContent indicates the upstream call succeeded but the response
// carried no completion content.
var ErrNoContent = errors.New("no content returned from completion API")

// UpstreamError indicates the completion API rejected or failed the
// call. StatusCode carries the upstream's own status so the handler can
// mirror it.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion API error (status %d): %s", e.StatusCode, e.Message)
}

// ParseError indicates the model returned content that is not valid
// JSON. RawContent preserves the unparsed text for diagnosis.
type ParseError struct {
	RawContent string
	Cause      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
