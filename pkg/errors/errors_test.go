package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidConfig, "bad radius"),
			want: "INVALID_CONFIG: bad radius",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeInvalidDataset, fmt.Errorf("eof"), "failed to load rows"),
			want: "INVALID_DATASET: failed to load rows: eof",
		},
		{
			name: "FormattedMessage",
			err:  New(ErrCodeInvalidTheme, "opacity %v out of range", 1.5),
			want: "INVALID_THEME: opacity 1.5 out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeInvalidOverride, "bad override")
	wrapped := fmt.Errorf("outer: %w", err)

	if !Is(wrapped, ErrCodeInvalidOverride) {
		t.Error("Is() should match through wrapping")
	}
	if Is(wrapped, ErrCodeInvalidTheme) {
		t.Error("Is() should not match a different code")
	}
	if got := GetCode(wrapped); got != ErrCodeInvalidOverride {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidOverride)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ErrCodeInternal, cause, "wrapped")
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "pad angle must be finite")
	if got := UserMessage(err); got != "pad angle must be finite" {
		t.Errorf("UserMessage() = %q", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateRadius(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"Zero", 0, false},
		{"Positive", 150, false},
		{"Negative", -1, true},
		{"NaN", nan(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRadius("outer radius", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRadius(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUnitInterval(t *testing.T) {
	if err := ValidateUnitInterval("offset", 0.5); err != nil {
		t.Errorf("0.5 should be valid: %v", err)
	}
	if err := ValidateUnitInterval("offset", 1.0); err != nil {
		t.Errorf("1.0 should be valid: %v", err)
	}
	if err := ValidateUnitInterval("offset", 1.01); err == nil {
		t.Error("1.01 should be rejected")
	}
	if err := ValidateUnitInterval("offset", -0.01); err == nil {
		t.Error("-0.01 should be rejected")
	}
}

func TestValidateColor(t *testing.T) {
	valid := []string{"#fff", "#4E79A7", "#4e79a7ff", "rgb(1,2,3)", "rgba(0,0,0,0.5)", "white", "transparent"}
	for _, c := range valid {
		if err := ValidateColor("fill", c); err != nil {
			t.Errorf("ValidateColor(%q) = %v, want nil", c, err)
		}
	}
	invalid := []string{"", "#12", "#ggg", "12px", "url(javascript:x)"}
	for _, c := range invalid {
		if err := ValidateColor("fill", c); err == nil {
			t.Errorf("ValidateColor(%q) = nil, want error", c)
		}
	}
}

func TestValidateAnnotationType(t *testing.T) {
	for _, typ := range []string{"circle", "rect", "text", "icon", "image"} {
		if err := ValidateAnnotationType(typ); err != nil {
			t.Errorf("type %q should be valid: %v", typ, err)
		}
	}
	err := ValidateAnnotationType("arrow")
	if err == nil {
		t.Fatal("unknown type should be rejected")
	}
	if !strings.Contains(err.Error(), "arrow") {
		t.Errorf("error should name the bad type: %v", err)
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://example.com/icon.png"); err != nil {
		t.Errorf("https URL should be valid: %v", err)
	}
	if err := ValidateURL("data:image/png;base64,AAAA"); err != nil {
		t.Errorf("data URL should be valid: %v", err)
	}
	if err := ValidateURL("ftp://example.com/x"); err == nil {
		t.Error("ftp URL should be rejected")
	}
}

// nan returns NaN without importing math in the test body signature.
func nan() float64 {
	var zero float64
	return zero / zero
}
