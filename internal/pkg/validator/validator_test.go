package validator

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"09:00", "23:59", "00:00:00", "17:30:15"}
	invalid := []string{"24:00", "9am", "12:60", "", "2025-08-01T09:00"}
	for _, s := range valid {
		if _, ok := IsValidClock(s); !ok {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidClock(s); ok {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidIP(t *testing.T) {
	valid := []string{"127.0.0.1", "10.0.0.12", "::1", "fe80::1"}
	invalid := []string{"", "localhost", "300.1.1.1", "10.0.0"}
	for _, s := range valid {
		if !IsValidIP(s) {
			t.Errorf("IsValidIP(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidIP(s) {
			t.Errorf("IsValidIP(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "correction_date", Message: "invalid"},
		{Field: "reason", Message: "required"},
	}
	got := errs.Error()
	want := "correction_date: invalid; reason: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "correction_date", Message: "invalid"},
		{Field: "reason", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"correction_date": "invalid", "reason": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestValidationErrors_IsInvalidInput(t *testing.T) {
	wrapped := fmt.Errorf("submit correction: %w", Field("reason", "reason is required"))
	if !errors.Is(wrapped, ErrInvalidInput) {
		t.Errorf("errors.Is(wrapped ValidationErrors, ErrInvalidInput) = false, want true")
	}

	var errs ValidationErrors
	if !errors.As(wrapped, &errs) {
		t.Fatalf("errors.As did not find ValidationErrors")
	}
	if errs.ToMap()["reason"] != "reason is required" {
		t.Errorf("unexpected details: %v", errs.ToMap())
	}
}
