package logger

import (
	"context"
	"testing"
)

func TestNewLogger_NotNil(t *testing.T) {
	l := NewLogger("test")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	// must not panic
	l.Info().Str("k", "v").Msg("discarded")
}

func TestGetChildLogger_Independent(t *testing.T) {
	parent := Nop()
	child := parent.GetChildLogger()
	if child == parent {
		t.Fatal("expected a new logger instance")
	}
}

func TestFromContext_NoAttachedLogger(t *testing.T) {
	l := FromContext(context.Background())
	if l == nil {
		t.Fatal("expected fallback logger, got nil")
	}
}

func TestFromContext_RoundTrip(t *testing.T) {
	parent := Nop()
	ctx := parent.WithContext(context.Background())

	got := FromContext(ctx)
	if got == nil {
		t.Fatal("expected logger from context")
	}
}
