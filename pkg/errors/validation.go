package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxPrecision is the largest number of decimal places accepted for rounding
// heights. float64 carries about 15 significant digits.
const MaxPrecision = 12

// ValidatePrecision checks a rounding precision. Negative values disable
// rounding and are accepted.
func ValidatePrecision(places int) error {
	if places > MaxPrecision {
		return New(ErrCodeInvalidInput, "precision %d exceeds maximum of %d decimal places", places, MaxPrecision)
	}
	return nil
}

// ValidateGraphSize rejects graphs larger than maxNodes. The solver is cubic
// in the node count, so hosts cap it. A maxNodes of zero or less disables
// the check.
func ValidateGraphSize(nodes, maxNodes int) error {
	if maxNodes > 0 && nodes > maxNodes {
		return New(ErrCodeInvalidGraph, "graph has %d nodes, limit is %d", nodes, maxNodes)
	}
	return nil
}

// ValidateCoordinate rejects NaN and infinite coordinates, which would
// poison the rescale range.
func ValidateCoordinate(id string, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return New(ErrCodeInvalidGraph, "node %q has non-finite x coordinate", id)
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "path too long (max 500 characters)")
	}
	if strings.ContainsRune(path, 0) {
		return New(ErrCodeInvalidPath, "path contains null byte")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}
	return nil
}
