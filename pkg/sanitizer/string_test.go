package sanitizer

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Luis  ",
			want:  "Luis",
		},
		{
			name:  "multiple spaces between words",
			input: "Ana    Maria",
			want:  "Ana Maria",
		},
		{
			name:  "tabs and newlines",
			input: "Ana\t\nMaria",
			want:  "Ana Maria",
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
			name:  "accents and apostrophes",
			input: " D'Ávila  Marques ",
			want:  "D'Ávila Marques",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" Luis@Example.COM ", "luis@example.com"},
		{"luis@example.com.", "luis@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeEmail(tt.input); got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizationIsIdempotent(t *testing.T) {
	inputs := []string{"  Luis \t Marques ", " A@B.C. ", "x"}

	for _, in := range inputs {
		once := NormalizeName(in)
		if twice := NormalizeName(once); twice != once {
			t.Errorf("NormalizeName not idempotent for %q: %q then %q", in, once, twice)
		}
		onceEmail := NormalizeEmail(in)
		if twice := NormalizeEmail(onceEmail); twice != onceEmail {
			t.Errorf("NormalizeEmail not idempotent for %q: %q then %q", in, onceEmail, twice)
		}
	}
}
