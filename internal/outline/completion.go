package outline

import (
	"strings"

	"github.com/rivo/uniseg"
)

const (
	// Marker brackets the text of a completed item in outline text.
	Marker = "~~"

	// StrikeMark is U+0336 COMBINING LONG STROKE OVERLAY.
	StrikeMark = '\u0336'
)

// Mark wraps text in completion markers.
func Mark(text string) string {
	return Marker + text + Marker
}

// Unmark strips the completion markers from text. The second result is false,
// and text is returned unchanged, when text is not bracketed on both ends.
// The two markers may not overlap, so "~~" and "~~~" are not marked text.
func Unmark(text string) (string, bool) {
	if len(text) < 2*len(Marker) || !strings.HasPrefix(text, Marker) || !strings.HasSuffix(text, Marker) {
		return text, false
	}
	return text[len(Marker) : len(text)-len(Marker)], true
}

// Strike places StrikeMark after every user-perceived character of text,
// including the last one. Applying it twice stacks a second overlay on each
// character, so callers apply it once per render.
func Strike(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text) * 3)
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		b.WriteString(g.Str())
		b.WriteRune(StrikeMark)
	}
	return b.String()
}

// DecodeLabel turns outline item text into its display form: marked text
// loses its markers and is struck through, anything else is returned as is.
func DecodeLabel(text string) string {
	inner, ok := Unmark(text)
	if !ok {
		return text
	}
	return Strike(inner)
}
