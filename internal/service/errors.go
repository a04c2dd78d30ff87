package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a scrape or search request is malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when Notion reports a page or database as missing
	// or not shared with the integration.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when Notion or the embeddings endpoint fails.
	ErrExternalService = errors.New("upstream service error")
)

// ValidationError names the request field that failed validation. Field uses
// the JSON name of the request body or query parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// WrapError prefixes err with msg, keeping it matchable with errors.Is.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
