package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeConfigMissing, "missing variable: %s", "NOTION_KEY")

	if err.Code != ErrCodeConfigMissing {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeConfigMissing)
	}

	if err.Message != "missing variable: NOTION_KEY" {
		t.Errorf("Message = %v, want %v", err.Message, "missing variable: NOTION_KEY")
	}

	expected := "CONFIG_MISSING: missing variable: NOTION_KEY"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeFetch, cause, "query database")

	if err.Code != ErrCodeFetch {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFetch)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeNetwork, "test"),
			code:     ErrCodeNetwork,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeNetwork, "test"),
			code:     ErrCodeFetch,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeFetch, New(ErrCodeNetwork, "inner"), "outer"),
			code:     ErrCodeFetch,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeNetwork,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeFetch, "database unreachable")); got != "database unreachable" {
		t.Errorf("UserMessage() = %q, want %q", got, "database unreachable")
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain")
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(New(ErrCodeConfigMissing, "no token")) {
		t.Error("IsFatal(CONFIG_MISSING) = false, want true")
	}
	if IsFatal(New(ErrCodeFetch, "timeout")) {
		t.Error("IsFatal(FETCH_FAILED) = true, want false")
	}
	if IsFatal(errors.New("plain")) {
		t.Error("IsFatal(plain) = true, want false")
	}
}
