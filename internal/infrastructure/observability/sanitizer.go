package observability

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// ContentLevel controls how much user text reaches span attributes.
type ContentLevel string

const (
	// ContentLevelNone drops user text entirely.
	ContentLevelNone ContentLevel = "none"
	// ContentLevelHashed keeps the text but replaces contact details with salted hashes.
	ContentLevelHashed ContentLevel = "hashed"
	// ContentLevelFull records text as is.
	ContentLevelFull ContentLevel = "full"
)

const redacted = "[REDACTED]"

// ParseContentLevel maps a config string to a level. Unknown values fall back to none.
func ParseContentLevel(v string) ContentLevel {
	switch ContentLevel(strings.ToLower(strings.TrimSpace(v))) {
	case ContentLevelHashed:
		return ContentLevelHashed
	case ContentLevelFull:
		return ContentLevelFull
	default:
		return ContentLevelNone
	}
}

// Sanitizer scrubs journal and chat text before it is attached to traces.
type Sanitizer struct {
	level ContentLevel
	salt  string

	patterns []piiPattern
}

type piiPattern struct {
	re     *regexp.Regexp
	label  string
	hashed bool
}

func NewSanitizer(level ContentLevel, salt string) *Sanitizer {
	return &Sanitizer{
		level: level,
		salt:  salt,
		patterns: []piiPattern{
			{re: regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), label: "EMAIL", hashed: true},
			{re: regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`), label: "CC"},
			{re: regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), label: "SSN"},
			{re: regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`), label: "PHONE", hashed: true},
			{re: regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`), label: "IP", hashed: true},
		},
	}
}

// Level reports the configured level. A nil sanitizer behaves as ContentLevelNone.
func (s *Sanitizer) Level() ContentLevel {
	if s == nil {
		return ContentLevelNone
	}
	return s.level
}

// Text returns text fit for a span attribute at the configured level.
func (s *Sanitizer) Text(text string) string {
	switch s.Level() {
	case ContentLevelFull:
		return text
	case ContentLevelHashed:
		return s.scrub(text)
	default:
		return redacted
	}
}

// Owner hashes the owner id unless full content is allowed.
func (s *Sanitizer) Owner(owner string) string {
	if owner == "" {
		return ""
	}
	switch s.Level() {
	case ContentLevelFull:
		return owner
	case ContentLevelHashed:
		return s.hash(owner)
	default:
		return redacted
	}
}

func (s *Sanitizer) scrub(text string) string {
	for _, p := range s.patterns {
		p := p
		text = p.re.ReplaceAllStringFunc(text, func(match string) string {
			if p.hashed {
				return "[" + p.label + ":" + s.hash(match) + "]"
			}
			return "[" + p.label + ":REDACTED]"
		})
	}
	return text
}

func (s *Sanitizer) hash(v string) string {
	sum := sha256.Sum256([]byte(v + s.salt))
	return hex.EncodeToString(sum[:])[:8]
}
