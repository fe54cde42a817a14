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
			input: "  Misty Mountain Hike  ",
			want:  "Misty Mountain Hike",
		},
		{
			name:  "multiple spaces between words",
			input: "Misty    Mountain Hike",
			want:  "Misty Mountain Hike",
		},
		{
			name:  "tabs and newlines",
			input: "Misty\t\nMountain Hike",
			want:  "Misty Mountain Hike",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Ålesund, Norway™ ",
			want:  "Ålesund, Norway™",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases",
			input: "Guide@Adventure.COM",
			want:  "guide@adventure.com",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  guide@adventure.com ",
			want:  "guide@adventure.com",
		},
		{
			name:  "already normalized",
			input: "guide@adventure.com",
			want:  "guide@adventure.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEmail(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
