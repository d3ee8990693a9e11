package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSyncError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *SyncError
		expected string
	}{
		{
			name: "error with cause",
			err: &SyncError{
				Type:      ErrorTypeSync,
				Operation: "rescan",
				Message:   "rescan did not complete",
				Cause:     errors.New("connection reset"),
			},
			expected: "sync error in rescan: rescan did not complete: connection reset",
		},
		{
			name: "error without cause",
			err: &SyncError{
				Type:      ErrorTypeValidation,
				Operation: "sync_wallet",
				Message:   "birthday is not a number",
			},
			expected: "validation error in sync_wallet: birthday is not a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("SyncError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("bad key")

	err := Wrap(cause, ErrorTypeWalletConstruction, "new_wallet", "cannot build wallet")
	if !errors.Is(err, cause) {
		t.Errorf("Wrap() result does not unwrap to its cause")
	}
	if !IsType(err, ErrorTypeWalletConstruction) {
		t.Errorf("IsType() = false, want true")
	}
	if IsType(err, ErrorTypeSync) {
		t.Errorf("IsType(ErrorTypeSync) = true, want false")
	}

	if Wrap(nil, ErrorTypeSync, "rescan", "ignored") != nil {
		t.Errorf("Wrap(nil) should return nil")
	}
}

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New(ErrorTypeExtraction, "balance", "no balance"))

	if got := TypeOf(wrapped); got != ErrorTypeExtraction {
		t.Errorf("TypeOf() = %q, want %q", got, ErrorTypeExtraction)
	}
	if got := TypeOf(errors.New("plain")); got != ErrorTypeInternal {
		t.Errorf("TypeOf(plain) = %q, want %q", got, ErrorTypeInternal)
	}
}
