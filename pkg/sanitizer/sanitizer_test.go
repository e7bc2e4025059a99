package sanitizer

import "testing"

func TestSanitizePersonName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Asha  Rao ", "Asha Rao"},
		{"Asha\x00Rao", "AshaRao"},
		{"Asha\x1b[31m Rao", "Asha[31m Rao"},
		{"\t\n", ""},
	}

	for _, tt := range tests {
		if got := SanitizePersonName(tt.input); got != tt.want {
			t.Errorf("SanitizePersonName(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if again := SanitizePersonName(SanitizePersonName(tt.input)); again != tt.want {
			t.Errorf("SanitizePersonName is not idempotent for %q: %q", tt.input, again)
		}
	}
}

func TestSanitizeRoomID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" 101 ", "101"},
		{"board-room_2", "board-room_2"},
		{"10 1", "10 1"},
		{"10.1", "10.1"},
		{"<101>", "<101>"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeRoomID(tt.input); got != tt.want {
			t.Errorf("SanitizeRoomID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPipeline_AppliesInOrder(t *testing.T) {
	p := Pipeline{
		func(s string) string { return s + "a" },
		func(s string) string { return s + "b" },
	}
	if got := p.Apply("x"); got != "xab" {
		t.Errorf("Apply = %q, want xab", got)
	}
}
