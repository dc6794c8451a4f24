package domain

import "testing"

// TestValidationError_Error tests that ValidationError correctly formats error messages.
func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *ValidationError
		wantMsg string
	}{
		{
			name:    "with field",
			err:     &ValidationError{Field: "fileName", Message: "fileName is required"},
			wantMsg: "fileName: fileName is required",
		},
		{
			name:    "without field",
			err:     &ValidationError{Message: "validation failed"},
			wantMsg: "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("ValidationError.Error() = %v, want %v", got, tt.wantMsg)
			}
		})
	}
}
