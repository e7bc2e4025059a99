package sanitizer

import (
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func dropControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// SanitizePersonName keeps the name as typed apart from control characters
// and redundant whitespace.
func SanitizePersonName(input string) string {
	p := Pipeline{
		dropControl,
		TrimAndNormalize,
	}
	return p.Apply(input)
}

// SanitizeRoomID only trims the key. Any other character is kept so a
// malformed key fails validation instead of naming a different room.
func SanitizeRoomID(input string) string {
	return strings.TrimSpace(input)
}
