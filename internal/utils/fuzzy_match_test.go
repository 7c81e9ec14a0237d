package utils

import "testing"

func TestNormalizePropertyType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "House", want: "House"},
		{input: "  villa ", want: "Villa"},
		{input: "Condominium", want: "Condo"},
		{input: "flat", want: "Apartment"},
		{input: "shophouse", want: "Commercial"},
		{input: "Castle", want: "Castle"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizePropertyType(tt.input); got != tt.want {
				t.Errorf("NormalizePropertyType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchesAny(t *testing.T) {
	if !MatchesAny("OCEAN", "Ocean View Villa", "12 Beach Rd") {
		t.Error("Expected case-insensitive match on name")
	}
	if !MatchesAny("beach", "Ocean View Villa", "12 Beach Rd") {
		t.Error("Expected match on address")
	}
	if MatchesAny("mountain", "Ocean View Villa", "12 Beach Rd") {
		t.Error("Expected no match")
	}
	if !MatchesAny("   ", "anything") {
		t.Error("Expected blank term to match")
	}
}

func TestBuildContainsCondition(t *testing.T) {
	cond, param, next := BuildContainsCondition("name", " 100%_off ", 3)

	if cond != "name ILIKE $3" {
		t.Errorf("condition = %q", cond)
	}
	if param != `%100\%\_off%` {
		t.Errorf("param = %v", param)
	}
	if next != 4 {
		t.Errorf("next index = %d, want 4", next)
	}
}
