// Package sanitizer strips terminal escape sequences and control
// characters from traveler-supplied text. Shared notes and survey
// answers are stored verbatim and replayed full-screen later, so
// anything that could reprogram the terminal is removed first.
package sanitizer

import "regexp"

type InputSanitizer interface {
	Sanitize(input string) string
}

type Config struct {
	AllowNewlines      bool
	ReplaceNewlineWith string
	MaxLength          int
}

// LineConfig suits single-line fields: pings, resonances, one-word
// follow-ups. Newlines collapse to spaces.
func LineConfig() Config {
	return Config{
		AllowNewlines:      false,
		ReplaceNewlineWith: " ",
	}
}

// NoteConfig suits sonic notes and long-form answers.
func NoteConfig() Config {
	return Config{AllowNewlines: true}
}

type EscapePattern struct {
	Name    string
	Pattern *regexp.Regexp
}

var csiEscapePattern = &EscapePattern{
	Name:    "CSI",
	Pattern: regexp.MustCompile(`\x1b\[[<>?=]?[0-9;]*[A-Za-z@^` + "`" + `~{|}!]`),
}

var oscEscapePattern = &EscapePattern{
	Name:    "OSC",
	Pattern: regexp.MustCompile(`\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`),
}

var charsetEscapePattern = &EscapePattern{
	Name:    "Charset",
	Pattern: regexp.MustCompile(`\x1b[()][AB012]`),
}

var allEscapePatterns = []*EscapePattern{
	csiEscapePattern,
	oscEscapePattern,
	charsetEscapePattern,
}

type TerminalSanitizer struct {
	config Config
}

func NewTerminalSanitizer(config Config) *TerminalSanitizer {
	return &TerminalSanitizer{config: config}
}

func (s *TerminalSanitizer) Sanitize(input string) string {
	if input == "" {
		return input
	}
	for _, p := range allEscapePatterns {
		input = p.Pattern.ReplaceAllString(input, "")
	}

	var result []rune
	for _, r := range input {
		kept, replacement := s.shouldKeep(r)
		if kept {
			result = append(result, r)
		} else if replacement != "" {
			result = append(result, []rune(replacement)...)
		}
	}
	sanitized := string(result)

	if s.config.MaxLength > 0 && len(sanitized) > s.config.MaxLength {
		sanitized = sanitized[:s.config.MaxLength]
	}
	return sanitized
}

func (s *TerminalSanitizer) shouldKeep(r rune) (bool, string) {
	switch {
	case r == '\n':
		if s.config.AllowNewlines {
			return true, ""
		}
		return false, s.config.ReplaceNewlineWith
	case r == '\t':
		return false, " "
	case r < 32 || r == 127:
		return false, ""
	default:
		return true, ""
	}
}

type NopSanitizer struct{}

func NewNopSanitizer() *NopSanitizer {
	return &NopSanitizer{}
}

func (n *NopSanitizer) Sanitize(input string) string {
	return input
}
