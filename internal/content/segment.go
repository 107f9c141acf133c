package content

import (
	"regexp"
	"strings"
)

// paragraphBreak matches a blank line or a bare newline. Because of the
// second alternative every line break starts a new paragraph.
var paragraphBreak = regexp.MustCompile(`\r?\n\s*\r?\n|\r?\n`)

// Segment splits free text into trimmed, non-empty paragraphs. The result is
// never nil.
func Segment(raw string) []string {
	paragraphs := []string{}
	for _, piece := range paragraphBreak.Split(raw, -1) {
		if p := strings.TrimSpace(piece); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
