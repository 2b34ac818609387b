// ABOUTME: Custom error types for the extraction pipeline
// ABOUTME: Provides structured errors so boundaries can decide how far a failure spreads

package errors

import (
	"errors"
	"fmt"
)

// FetchError reports a failed page fetch: non-2xx status, timeout, or
// transport failure. It is caught at the extractor boundary and degraded
// to a synthetic error candidate, never propagated.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap exposes the transport error, if any.
func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a malformed HTML or JSON fragment. It is contained
// per candidate: the candidate is skipped, siblings continue.
type ParseError struct {
	URL    string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.URL, e.Reason)
}

// ConfigError reports a missing or malformed input document. It degrades
// to the built-in default configuration and is never fatal by itself.
type ConfigError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ConfigError) Unwrap() error { return e.Err }

// AssemblyError reports feed serialization that could not be verified even
// after the manual fallback. It is fatal for one group's output only.
type AssemblyError struct {
	Group  string
	Reason string
}

// Error implements the error interface.
func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assemble feed for %s: %s", e.Group, e.Reason)
}

// IsFetch checks if an error is a FetchError.
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsParse checks if an error is a ParseError.
func IsParse(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsConfig checks if an error is a ConfigError.
func IsConfig(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsAssembly checks if an error is an AssemblyError.
func IsAssembly(err error) bool {
	var assemblyErr *AssemblyError
	return errors.As(err, &assemblyErr)
}

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
