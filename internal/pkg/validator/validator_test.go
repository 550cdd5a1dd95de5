package validator

import (
	"testing"

	"github.com/shopspring/decimal"
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

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // v7
		"123e4567-e89b-12d3-a456-426614174000", // v1
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // uppercase
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"urn:uuid:0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-12-31"); !ok {
		t.Error("IsValidDate(2024-12-31) = false, want true")
	}
	for _, s := range []string{"2024-13-01", "31-12-2024", "2024/12/31", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidTimezone(t *testing.T) {
	for _, tz := range []string{"America/Toronto", "Asia/Jakarta", "UTC"} {
		if !IsValidTimezone(tz) {
			t.Errorf("IsValidTimezone(%q) = false, want true", tz)
		}
	}
	for _, tz := range []string{"", "  ", "Moon/Base"} {
		if IsValidTimezone(tz) {
			t.Errorf("IsValidTimezone(%q) = true, want false", tz)
		}
	}
}

func TestIsNonNegative(t *testing.T) {
	if !IsNonNegative(decimal.Zero) {
		t.Error("IsNonNegative(0) = false, want true")
	}
	if IsNonNegative(decimal.RequireFromString("-0.01")) {
		t.Error("IsNonNegative(-0.01) = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "status", Message: "status is required"},
		{Field: "price", Message: "price must not be negative"},
	}
	if got := errs.Error(); got != "status: status is required; price: price must not be negative" {
		t.Errorf("Error() = %q", got)
	}
	m := errs.ToMap()
	if m["status"] != "status is required" || len(m) != 2 {
		t.Errorf("ToMap() = %v", m)
	}
}
