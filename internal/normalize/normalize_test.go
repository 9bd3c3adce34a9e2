package normalize

import (
	"testing"
)

func TestDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"iso_unchanged", "2024-03-15", "2024-03-15"},
		{"slash_form", "15/03/2024", "2024-03-15"},
		{"slash_single_digits", "5/1/2024", "2024-01-05"},
		{"garbage_unchanged", "yesterday", "yesterday"},
		{"empty", "", ""},
		{"timestamp_unchanged", "2024-03-15T10:00:00Z", "2024-03-15T10:00:00Z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Date(tc.in); got != tc.want {
				t.Errorf("Date(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDateIdempotent(t *testing.T) {
	for _, in := range []string{"2024-03-15", "15/03/2024", "1/2/2023", "nope", " 2024-01-01 "} {
		once := Date(in)
		if twice := Date(once); twice != once {
			t.Errorf("Date not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestParseDate(t *testing.T) {
	t.Run("valid_slash", func(t *testing.T) {
		d, err := ParseDate("31/01/2024")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Year != 2024 || d.Month != 1 || d.Day != 31 {
			t.Errorf("unexpected date %v", d)
		}
	})

	t.Run("impossible_day", func(t *testing.T) {
		if _, err := ParseDate("2024-02-30"); err == nil {
			t.Error("expected error for 2024-02-30")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := ParseDate("soon"); err == nil {
			t.Error("expected error for garbage input")
		}
	})
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey("2024-03-15"); got != "2024-03" {
		t.Errorf("expected 2024-03, got %q", got)
	}
	if got := MonthKey("15/03/2024"); got != "2024-03" {
		t.Errorf("expected 2024-03 for slash date, got %q", got)
	}
	if got := MonthKey("x"); got != "" {
		t.Errorf("expected empty key, got %q", got)
	}
}

func TestSubgroup(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"plain", "Gym", "Gym"},
		{"plain_trimmed", "  Gym  ", "Gym"},
		{"slice", []string{"Gym", "Pool"}, "Gym"},
		{"empty_slice", []string{}, ""},
		{"any_slice", []any{"Gym"}, "Gym"},
		{"serialized_array", `["Gym"]`, "Gym"},
		{"serialized_object", `{"name":"Gym"}`, "Gym"},
		{"quoted_string", `"Gym"`, "Gym"},
		{"nested_serialization", `["[\"Gym\"]"]`, "Gym"},
		{"malformed_array", `["Gym`, "Gym"},
		{"single_quotes", `'Gym'`, "Gym"},
		{"empty_string", "", ""},
		{"empty_array", "[]", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Subgroup(tc.in); got != tc.want {
				t.Errorf("Subgroup(%#v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSubgroupIdempotent(t *testing.T) {
	inputs := []string{"Gym", `["Gym"]`, `{"name":"Gym"}`, `["Gym`, `'x'`, "{bad", `"[\"a\"]"`, ""}
	for _, in := range inputs {
		once := Subgroup(in)
		if twice := Subgroup(once); twice != once {
			t.Errorf("Subgroup not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSubgroups(t *testing.T) {
	got := Subgroups([]string{"Gym", `["Pool"]`, "", "gym", " Rent "})
	want := []string{"Gym", "Pool", "Rent"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
