package errors

// ValidatePositive rejects zero and negative values for a named parameter.
func ValidatePositive(name string, v int) error {
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %d", name, v)
	}
	return nil
}

// ValidateNonNegative rejects negative values for a named parameter.
func ValidateNonNegative(name string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative, got %d", name, v)
	}
	return nil
}

// ValidateRange checks lo <= v <= hi.
func ValidateRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return New(ErrCodeInvalidInput, "%s must be within [%d, %d], got %d", name, lo, hi, v)
	}
	return nil
}

// ValidateScale checks a scale interval: 0 < lo <= hi.
// Scales are multiplied into box dimensions, so zero would collapse a box.
func ValidateScale(name string, lo, hi float64) error {
	if lo <= 0 || hi <= 0 {
		return New(ErrCodeInvalidInput, "%s bounds must be positive, got [%g, %g]", name, lo, hi)
	}
	if lo > hi {
		return New(ErrCodeInvalidInput, "%s lower bound %g exceeds upper bound %g", name, lo, hi)
	}
	return nil
}
