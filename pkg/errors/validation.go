package errors

import (
	"math"
	"regexp"
	"strings"
)

// The validators in this file implement the input boundary that gates the
// chart pipeline. The pipeline stages themselves are total functions and
// never fail; every rejection of malformed input happens here, before any
// stage runs.

// ValidateFieldID validates a dimension or measure field identifier.
// Field ids key into data rows, so they must be non-empty and printable.
func ValidateFieldID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidField, "field id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidField, "field id too long (max 256 characters)")
	}
	for _, r := range id {
		if r < 0x20 || r == 0x7f {
			return New(ErrCodeInvalidField, "field id contains control characters")
		}
	}
	return nil
}

// ValidateRadius checks that a radius value is finite and non-negative.
func ValidateRadius(name string, r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %v", name, r)
	}
	if r < 0 {
		return New(ErrCodeInvalidConfig, "%s must be >= 0, got %v", name, r)
	}
	return nil
}

// ValidateAngle checks that an angle value (radians) is finite.
func ValidateAngle(name string, a float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %v", name, a)
	}
	return nil
}

// ValidateUnitInterval checks that a value lies in [0, 1].
// Used for opacities and gradient stop offsets.
func ValidateUnitInterval(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidTheme, "%s must be in [0, 1], got %v", name, v)
	}
	return nil
}

// hexColorRegex matches 3-, 6-, and 8-digit hex color notation.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// cssColorFuncRegex matches rgb()/rgba()/hsl()/hsla() functional notation.
// The arguments are not range-checked; painters are tolerant of those.
var cssColorFuncRegex = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\([^)]*\)$`)

// ValidateColor checks that a color string is hex, functional, or a CSS
// keyword. Keywords are not enumerated; any bare lowercase word is accepted.
func ValidateColor(name, c string) error {
	if c == "" {
		return New(ErrCodeInvalidTheme, "%s cannot be empty", name)
	}
	if hexColorRegex.MatchString(c) || cssColorFuncRegex.MatchString(c) {
		return nil
	}
	for _, r := range c {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return New(ErrCodeInvalidTheme, "%s is not a recognized color: %q", name, c)
		}
	}
	return nil
}

// ValidateAnnotationType checks an annotation type tag.
func ValidateAnnotationType(t string) error {
	switch t {
	case "circle", "rect", "text", "icon", "image":
		return nil
	}
	return New(ErrCodeInvalidAnnotation, "unknown annotation type: %q", t)
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http, https, or data for inline images).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidAnnotation, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") &&
		!strings.HasPrefix(rawURL, "https://") &&
		!strings.HasPrefix(rawURL, "data:") {
		return New(ErrCodeInvalidAnnotation, "URL must use http, https, or data scheme")
	}
	return nil
}
