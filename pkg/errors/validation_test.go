package errors

import "testing"

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"one", 1, false},
		{"large", 500, false},
		{"zero", 0, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("width", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidatePositive(%d) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("cities", 0); err != nil {
		t.Errorf("zero should pass: %v", err)
	}
	if err := ValidateNonNegative("cities", -1); err == nil {
		t.Error("negative should fail")
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		v       int
		wantErr bool
	}{
		{"lower bound", 1, false},
		{"upper bound", 10, false},
		{"inside", 5, false},
		{"below", 0, true},
		{"above", 11, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("boxes", tt.v, 1, 10)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%d) error = %v, wantErr %v", tt.v, err, tt.wantErr)
			}
		})
	}
}

func TestValidateScale(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  float64
		wantErr bool
	}{
		{"equal", 1, 1, false},
		{"interval", 0.5, 1.2, false},
		{"zero low", 0, 1, true},
		{"negative high", 0.5, -1, true},
		{"inverted", 1.5, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScale("scale", tt.lo, tt.hi)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScale(%g, %g) error = %v, wantErr %v", tt.lo, tt.hi, err, tt.wantErr)
			}
		})
	}
}
