package format

import (
	"strings"
	"testing"
)

func TestStripAnsi(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text", input: "hello", want: "hello"},
		{name: "colored text", input: "\033[31mred\033[0m", want: "red"},
		{name: "mixed", input: "a\033[1mb\033[0mc", want: "abc"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripAnsi(tt.input); got != tt.want {
				t.Errorf("StripAnsi(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "ascii", input: "hello", want: 5},
		{name: "ansi stripped", input: "\033[31mred\033[0m", want: 3},
		{name: "wide runes", input: "日本", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayWidth(tt.input); got != tt.want {
				t.Errorf("DisplayWidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	got, width := TruncateToWidth("a-very-long-repository-name", 10)
	if width != 10 {
		t.Errorf("TruncateToWidth() width = %d, want 10", width)
	}
	if !strings.Contains(got, "...") {
		t.Errorf("TruncateToWidth() = %q, want ellipsis", got)
	}
	if w := DisplayWidth(got); w > 10 {
		t.Errorf("TruncateToWidth() visible width = %d, want <= 10", w)
	}

	// Fitting strings are returned unchanged.
	got, width = TruncateToWidth("short", 10)
	if got != "short" || width != 5 {
		t.Errorf("TruncateToWidth(short) = %q, %d", got, width)
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 2, 5); got != "ab   " {
		t.Errorf("PadRight() = %q, want %q", got, "ab   ")
	}
	if got := PadRight("abcdef", 6, 4); got != "abcdef" {
		t.Errorf("PadRight() should not trim: got %q", got)
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1000, "1k"},
		{1234, "1.2k"},
		{20500, "20.5k"},
		{2000000, "2M"},
		{3400000, "3.4M"},
	}

	for _, tt := range tests {
		if got := Count(tt.n); got != tt.want {
			t.Errorf("Count(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
