package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFetchError_Error_WithStatus(t *testing.T) {
	err := &FetchError{
		URL:        "https://artist.bandcamp.com/music",
		StatusCode: 503,
	}

	expected := "fetch https://artist.bandcamp.com/music: status 503"
	if err.Error() != expected {
		t.Errorf("FetchError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestFetchError_Error_WithTransportError(t *testing.T) {
	err := &FetchError{
		URL: "https://artist.bandcamp.com/music",
		Err: errors.New("connection refused"),
	}

	expected := "fetch https://artist.bandcamp.com/music: connection refused"
	if err.Error() != expected {
		t.Errorf("FetchError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{
		URL:    "https://open.spotify.com/artist/x",
		Reason: "ld+json block is not valid JSON",
	}

	expected := "parse https://open.spotify.com/artist/x: ld+json block is not valid JSON"
	if err.Error() != expected {
		t.Errorf("ParseError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{
		Path: "config/groups.json",
		Err:  errors.New("unexpected end of JSON input"),
	}

	expected := "config config/groups.json: unexpected end of JSON input"
	if err.Error() != expected {
		t.Errorf("ConfigError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestAssemblyError_Error(t *testing.T) {
	err := &AssemblyError{
		Group:  "electronic",
		Reason: "rendered output carries no items",
	}

	expected := "assemble feed for electronic: rendered output carries no items"
	if err.Error() != expected {
		t.Errorf("AssemblyError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIsFetch_True(t *testing.T) {
	err := &FetchError{URL: "https://soundcloud.com/someone", StatusCode: 404}

	if !IsFetch(err) {
		t.Error("IsFetch should return true for FetchError")
	}
}

func TestIsFetch_False(t *testing.T) {
	err := errors.New("some other error")

	if IsFetch(err) {
		t.Error("IsFetch should return false for non-FetchError")
	}
}

func TestIsFetch_WrappedError(t *testing.T) {
	fetchErr := &FetchError{URL: "https://soundcloud.com/someone", StatusCode: 500}
	wrapped := fmt.Errorf("listing page: %w", fetchErr)

	if !IsFetch(wrapped) {
		t.Error("IsFetch should unwrap and match FetchError")
	}
}

func TestIsParse_WrappedError(t *testing.T) {
	parseErr := &ParseError{URL: "https://x.bandcamp.com", Reason: "bad fragment"}
	wrapped := fmt.Errorf("candidate 3: %w", parseErr)

	if !IsParse(wrapped) {
		t.Error("IsParse should unwrap and match ParseError")
	}
}

func TestIsConfig_False(t *testing.T) {
	if IsConfig(errors.New("boom")) {
		t.Error("IsConfig should return false for plain errors")
	}
}

func TestIsAssembly_True(t *testing.T) {
	err := &AssemblyError{Group: "ambient", Reason: "manual writer failed"}

	if !IsAssembly(err) {
		t.Error("IsAssembly should return true for AssemblyError")
	}
}

func TestWrapError_NilStaysNil(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
}

func TestWrapError_KeepsChain(t *testing.T) {
	fetchErr := &FetchError{URL: "https://x.bandcamp.com/music", StatusCode: 429}
	wrapped := WrapError(fetchErr, "artist page")

	if !IsFetch(wrapped) {
		t.Error("WrapError should preserve the error chain")
	}
	expected := "artist page: fetch https://x.bandcamp.com/music: status 429"
	if wrapped.Error() != expected {
		t.Errorf("WrapError message = %v, want %v", wrapped.Error(), expected)
	}
}
