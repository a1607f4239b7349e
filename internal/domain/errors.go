package domain

import (
	"errors"
	"fmt"
)

// MaxErrorBodyLength caps upstream response bodies carried in errors
const MaxErrorBodyLength = 400

var (
	// ErrConfiguration is returned when a required setting is missing
	ErrConfiguration = errors.New("configuration error")

	// ErrUpstreamFetch is returned when the vendor endpoint fails or answers non-2xx
	ErrUpstreamFetch = errors.New("upstream fetch failed")

	// ErrAuthExhausted is returned when every auth header scheme was rejected
	ErrAuthExhausted = errors.New("all auth schemes rejected")
)

// FetchError describes a non-success response from an upstream endpoint
type FetchError struct {
	Status int
	Body   string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("upstream fetch failed: status %d", e.Status)
}

func (e *FetchError) Unwrap() error { return ErrUpstreamFetch }

// NewFetchError builds a FetchError with the body truncated for diagnostics
func NewFetchError(status int, body []byte) *FetchError {
	return &FetchError{Status: status, Body: TruncateBody(string(body))}
}

// AuthError is returned once the last auth scheme has been rejected
type AuthError struct {
	Status   int
	Body     string
	Attempts int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth failed after %d attempts: status %d: %s", e.Attempts, e.Status, e.Body)
}

func (e *AuthError) Unwrap() error { return ErrAuthExhausted }

// MissingSetting reports a required configuration key that is empty
func MissingSetting(key string) error {
	return fmt.Errorf("%w: missing %s", ErrConfiguration, key)
}

// TruncateBody shortens s to at most MaxErrorBodyLength runes
func TruncateBody(s string) string {
	r := []rune(s)
	if len(r) <= MaxErrorBodyLength {
		return s
	}
	return string(r[:MaxErrorBodyLength])
}
