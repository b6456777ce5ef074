package layout

import "testing"

func TestTruncateText(t *testing.T) {
	cfg := TextConfig{Ellipsis: "..."}

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"fits", "short", 10, "short", false},
		{"exact fit", "exactly10!", 10, "exactly10!", false},
		{"needs truncation", "this is a long sentence", 10, "this is...", true},
		{"unicode aware", "héllo wörld", 8, "héllo...", true},
		{"zero width", "anything", 0, "", true},
		{"width smaller than ellipsis", "anything", 2, "..", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncateWithPrefixSuffix(t *testing.T) {
	cfg := TextConfig{Ellipsis: "..."}

	tests := []struct {
		name     string
		text     string
		maxWidth int
		prefix   string
		suffix   string
		want     string
	}{
		{"fits with suffix", "Quotes", 10, "", "/", "Quotes/"},
		{"truncates keeping suffix", "Observations", 10, "", "/", "Observ.../"},
		{"keeps prefix and suffix", "Quotes", 8, "> ", "/", "> Qu.../"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := TruncateWithPrefixSuffix(tt.text, tt.maxWidth, tt.prefix, tt.suffix, cfg)
			if got != tt.want {
				t.Errorf("TruncateWithPrefixSuffix(%q, %d, %q, %q) = %q, want %q",
					tt.text, tt.maxWidth, tt.prefix, tt.suffix, got, tt.want)
			}
		})
	}
}

func TestStripANSI(t *testing.T) {
	styled := "\x1b[1mBold\x1b[0m and \x1b[38;5;212mcolored\x1b[0m"
	if got := StripANSI(styled); got != "Bold and colored" {
		t.Errorf("StripANSI() = %q", got)
	}
}

func TestVisibleLength(t *testing.T) {
	if got := VisibleLength("\x1b[1mhéllo\x1b[0m"); got != 5 {
		t.Errorf("VisibleLength() = %d, want 5", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("one\ntwo\nthree"); got != "one" {
		t.Errorf("FirstLine() = %q", got)
	}
	if got := FirstLine("no breaks"); got != "no breaks" {
		t.Errorf("FirstLine() = %q", got)
	}
}
