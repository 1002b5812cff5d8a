package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelChecks(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", ErrValidation, IsValidation},
		{"busy", ErrBusy, IsBusy},
		{"not found", ErrNotFound, IsNotFound},
		{"service", ErrService, IsService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("expected check to match bare sentinel")
			}
			wrapped := fmt.Errorf("submitting query: %w", tt.err)
			if !tt.check(wrapped) {
				t.Errorf("expected check to match wrapped sentinel")
			}
			if tt.check(errors.New("unrelated")) {
				t.Errorf("expected check to reject unrelated error")
			}
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	if errors.Is(ErrBusy, ErrValidation) {
		t.Error("ErrBusy should not match ErrValidation")
	}
	if errors.Is(ErrService, ErrNotFound) {
		t.Error("ErrService should not match ErrNotFound")
	}
}

func TestDoubleWrapPreservesSentinel(t *testing.T) {
	err := fmt.Errorf("query failed: %w", fmt.Errorf("status 500: %w", ErrService))
	if !IsService(err) {
		t.Error("expected ErrService through two wrap levels")
	}
}
