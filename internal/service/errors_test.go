package service

import (
	"errors"
	"net/http"
	"testing"

	"notion-intel/internal/notion"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "scrape target",
			err:  &ValidationError{Field: "page_ids", Message: "must not contain empty ids"},
			want: "page_ids must not contain empty ids",
		},
		{
			name: "range bound",
			err:  &ValidationError{Field: "chunk_overlap", Message: "must be between 0 and 500"},
			want: "chunk_overlap must be between 0 and 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationError_IsInvalidInput(t *testing.T) {
	err := WrapError(&ValidationError{Field: "page_id", Message: "cannot be empty"}, "scrape page")
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("a wrapped ValidationError should match ErrInvalidInput")
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrExternalService) {
		t.Error("a ValidationError must not match other sentinels")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "page_id" {
		t.Errorf("errors.As() = %+v", validationErr)
	}
}

func TestWrapError(t *testing.T) {
	notionErr := &notion.StatusError{Op: "get page", StatusCode: http.StatusNotFound, Body: "object_not_found"}

	tests := []struct {
		name     string
		err      error
		msg      string
		wantNil  bool
		wantMsg  string
		sentinel error
	}{
		{
			name:    "nil error",
			msg:     "scrape page",
			wantNil: true,
		},
		{
			name:     "missing page",
			err:      ErrNotFound,
			msg:      "page 1f2e",
			wantMsg:  "page 1f2e: not found",
			sentinel: ErrNotFound,
		},
		{
			name:     "notion failure",
			err:      errors.Join(ErrExternalService, notionErr),
			msg:      "scrape page",
			wantMsg:  "scrape page: upstream service error\nget page: bad status 404: object_not_found",
			sentinel: ErrExternalService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.err, tt.msg)
			if tt.wantNil {
				if got != nil {
					t.Errorf("WrapError() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("WrapError() = nil, want error")
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("WrapError() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if !errors.Is(got, tt.sentinel) {
				t.Errorf("WrapError() should keep %v matchable", tt.sentinel)
			}
		})
	}
}

func TestErrorSentinels_Distinct(t *testing.T) {
	sentinels := []error{ErrInvalidInput, ErrNotFound, ErrExternalService}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if (i == j) != errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = %v", a, b, errors.Is(a, b))
			}
		}
	}
}
