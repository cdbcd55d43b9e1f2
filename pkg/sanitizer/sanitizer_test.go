package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Harbor Point Clinic  ",
			want:  "Harbor Point Clinic",
		},
		{
			name:  "collapse internal runs",
			input: "Harbor    Point\t\nClinic",
			want:  "Harbor Point Clinic",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: " \t\n ",
			want:  "",
		},
		{
			name:  "preserve punctuation",
			input: " Dr. O'Neill — intake ",
			want:  "Dr. O'Neill — intake",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeID(t *testing.T) {
	if got := NormalizeID("  Loc-MAIN  "); got != "loc-main" {
		t.Errorf("NormalizeID = %q, want %q", got, "loc-main")
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid E.164 passthrough",
			input: "+12125551234",
			want:  "+12125551234",
		},
		{
			name:  "US national format",
			input: "(212) 555-1234",
			want:  "+12125551234",
		},
		{
			name:  "spaces and dashes",
			input: " 212-555-1234 ",
			want:  "+12125551234",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "garbage",
			input: "not-a-number",
			want:  "",
		},
		{
			name:  "too short",
			input: "12345",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
