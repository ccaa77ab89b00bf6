package sanitizer

import "testing"

func TestSanitizeStripsEscapeSequences(t *testing.T) {
	s := NewTerminalSanitizer(NoteConfig())
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "a calm arrival", "a calm arrival"},
		{"csi color", "warm\x1b[31m glow", "warm glow"},
		{"cursor move", "\x1b[2Jopen", "open"},
		{"osc title", "\x1b]0;evil\x07still here", "still here"},
		{"osc st terminated", "\x1b]52;c;payload\x1b\\note", "note"},
		{"charset", "\x1b(Bshift", "shift"},
		{"control chars", "be\x07ll\x00s", "bells"},
		{"tab becomes space", "low\thum", "low hum"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Sanitize(tc.input); got != tc.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNoteConfigKeepsNewlines(t *testing.T) {
	s := NewTerminalSanitizer(NoteConfig())
	if got := s.Sanitize("first\nsecond"); got != "first\nsecond" {
		t.Fatalf("got %q", got)
	}
}

func TestLineConfigCollapsesNewlines(t *testing.T) {
	s := NewTerminalSanitizer(LineConfig())
	if got := s.Sanitize("first\nsecond"); got != "first second" {
		t.Fatalf("got %q", got)
	}
}

func TestMaxLengthTruncates(t *testing.T) {
	s := NewTerminalSanitizer(Config{AllowNewlines: true, MaxLength: 4})
	if got := s.Sanitize("resonance"); got != "reso" {
		t.Fatalf("got %q", got)
	}
}

func TestNopSanitizerPassesThrough(t *testing.T) {
	if got := NewNopSanitizer().Sanitize("\x1b[31mred"); got != "\x1b[31mred" {
		t.Fatalf("got %q", got)
	}
}
