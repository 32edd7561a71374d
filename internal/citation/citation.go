// Package citation resolves bracketed citation markers in generated answer
// text against the source list returned with that answer.
package citation

import (
	"regexp"
	"strconv"

	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
)

var markerPattern = regexp.MustCompile(`\[(\d+)\]`)

// Segment is one piece of answer text: literal text, or a citation marker
// resolved to its source.
type Segment struct {
	Text   string
	Source *domain.Source
}

func (s Segment) IsCitation() bool { return s.Source != nil }

// Resolve scans text for [n] markers and resolves each marker whose numeric
// value equals some source's citation index. Unresolved markers stay inside
// the surrounding literal text unchanged. Repeated indices resolve
// independently, one segment per occurrence. Concatenating the Text fields of
// the result reproduces the input byte-for-byte.
func Resolve(text string, sources []domain.Source) []Segment {
	if text == "" {
		return nil
	}

	byIndex := make(map[int]int, len(sources))
	for i, src := range sources {
		byIndex[src.Index] = i
	}

	matches := markerPattern.FindAllStringSubmatchIndex(text, -1)
	segments := make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		num, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		pos, ok := byIndex[num]
		if !ok {
			continue
		}
		if m[0] > last {
			segments = append(segments, Segment{Text: text[last:m[0]]})
		}
		segments = append(segments, Segment{Text: text[m[0]:m[1]], Source: &sources[pos]})
		last = m[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}
