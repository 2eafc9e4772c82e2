package service

import (
	"fmt"
	"strings"
	"time"
)

// UsageLimitExceededError is returned when a user has exhausted the AI
// usage quota for the current window. Recoverable by waiting for the
// window to reset.
type UsageLimitExceededError struct {
	Limit  int
	Window time.Duration
}

func (e *UsageLimitExceededError) Error() string {
	return fmt.Sprintf("AI usage limit of %d calls per %s exceeded", e.Limit, e.Window)
}

// ProviderError is returned when the completion provider call fails or
// times out. It is never retried internally.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when the provider output is not
// syntactically valid JSON.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed provider response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// MissingFieldsError is returned when the provider output parses but
// lacks required recipe keys.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing keys in recipe: %s", strings.Join(e.Fields, ", "))
}
