package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	err := New(ErrCodeInvalidInput, "missing %s", "pubspec.yaml")
	if got, want := err.Error(), "INVALID_INPUT: missing pubspec.yaml"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("exit status 1")
	wrapped := Wrap(ErrCodeSetupFailure, cause, "flutter pub get")
	if got, want := wrapped.Error(), "SETUP_FAILURE: flutter pub get: exit status 1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is(wrapped, cause) = false, want true")
	}
	if errors.Unwrap(wrapped) != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeParseFailure, "bad tree"), ErrCodeParseFailure, true},
		{"other code", New(ErrCodeParseFailure, "bad tree"), ErrCodeSetupFailure, false},
		{"outer code only", Wrap(ErrCodeSetupFailure, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInvalidInput, false},
		{"fmt wrapped", fmt.Errorf("scan: %w", New(ErrCodeParseFailure, "bad tree")), ErrCodeParseFailure, true},
		{"plain error", errors.New("plain"), ErrCodeParseFailure, false},
		{"nil", nil, ErrCodeParseFailure, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded", New(ErrCodeInvalidPackage, "x"), ErrCodeInvalidPackage},
		{"outermost wins", Wrap(ErrCodeRecordFailure, New(ErrCodeLookupInconsistency, "inner"), "http(1.0.0)"), ErrCodeRecordFailure},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDegrades(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeParseFailure, "bad json"), true},
		{New(ErrCodeLookupInconsistency, "meta"), true},
		{fmt.Errorf("row: %w", New(ErrCodeRecordFailure, "http")), true},
		{New(ErrCodeSetupFailure, "flutter"), false},
		{New(ErrCodeFileNotFound, "catalog"), false},
		{errors.New("plain"), false},
	}
	for _, tt := range tests {
		if got := Degrades(tt.err); got != tt.want {
			t.Errorf("Degrades(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeFileNotFound, "nothing to report")); got != "nothing to report" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q", got)
	}
}
