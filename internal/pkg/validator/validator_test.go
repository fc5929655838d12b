package validator

import (
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

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", " ", ""}
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

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2026-03-10"); !ok {
		t.Error("IsValidDate(\"2026-03-10\") = false, want true")
	}
	for _, input := range []string{"10-03-2026", "2026/03/10", "2026-13-01", ""} {
		if _, ok := IsValidDate(input); ok {
			t.Errorf("IsValidDate(%q) = true, want false", input)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	month, ok := IsValidMonth("2026-03")
	if !ok {
		t.Fatal("IsValidMonth(\"2026-03\") = false, want true")
	}
	if month.Year() != 2026 || month.Month() != 3 {
		t.Errorf("IsValidMonth(\"2026-03\") parsed as %v", month)
	}
	for _, input := range []string{"03-2026", "2026-3", "2026-00", ""} {
		if _, ok := IsValidMonth(input); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", input)
		}
	}
}

func TestIsValidCoordinate(t *testing.T) {
	cases := []struct {
		lat, lng float64
		want     bool
	}{
		{18.5204, 73.8567, true},
		{-90, -180, true},
		{90, 180, true},
		{90.1, 0, false},
		{0, 180.1, false},
		{-91, 0, false},
	}
	for _, c := range cases {
		if got := IsValidCoordinate(c.lat, c.lng); got != c.want {
			t.Errorf("IsValidCoordinate(%v, %v) = %v, want %v", c.lat, c.lng, got, c.want)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"all", "admin", "employee"}
	if !IsInSlice("admin", slice) {
		t.Error("IsInSlice(\"admin\") = false, want true")
	}
	if IsInSlice("Admin", slice) {
		t.Error("IsInSlice(\"Admin\") = true, want false")
	}
	if IsInSlice("x", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "password", Message: "password is required"},
	}
	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() returned %d entries, want 2", len(m))
	}
	if m["email"] != "email is required" {
		t.Errorf("ToMap()[\"email\"] = %q", m["email"])
	}
	if errs.Error() == "" {
		t.Error("Error() returned empty string")
	}
}
