package entities

import (
	"errors"
	"fmt"
)

var (
	ErrProviderUnreachable    = errors.New("provider unreachable")
	ErrProviderAuthRequired   = errors.New("provider requires authentication")
	ErrProviderEmptyResult    = errors.New("provider returned no listings")
	ErrUpstreamSchemaMismatch = errors.New("upstream schema mismatch")
	ErrUnsupportedPair        = errors.New("unsupported exchange pair")
)

// ProviderError records why one pair failed to produce metrics
type ProviderError struct {
	Pair Pair
	Kind error
	Err  error
}

func NewProviderError(pair Pair, kind error, err error) *ProviderError {
	return &ProviderError{
		Pair: pair,
		Kind: kind,
		Err:  err,
	}
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Pair, e.Kind)
	}
	if errors.Is(e.Err, e.Kind) {
		return fmt.Sprintf("%s: %v", e.Pair, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Pair, e.Kind, e.Err)
}

// Unwrap exposes both the taxonomy kind and the underlying cause
func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ErrorKind returns a stable label for logs and metrics
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrProviderAuthRequired):
		return "provider_auth_required"
	case errors.Is(err, ErrProviderEmptyResult):
		return "provider_empty_result"
	case errors.Is(err, ErrUpstreamSchemaMismatch):
		return "upstream_schema_mismatch"
	case errors.Is(err, ErrProviderUnreachable):
		return "provider_unreachable"
	case errors.Is(err, ErrUnsupportedPair):
		return "unsupported_pair"
	default:
		return "unknown"
	}
}

// IsAbsent reports whether the failure means "no data" rather than a broken call
func IsAbsent(err error) bool {
	return errors.Is(err, ErrProviderEmptyResult) || errors.Is(err, ErrProviderAuthRequired)
}
