package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// Kind identifies what a line of the document introduces
type Kind int

const (
	PlainText Kind = iota
	DayHeader
	ResourceLine
	SectionHeader
)

func (k Kind) String() string {
	switch k {
	case DayHeader:
		return "day"
	case ResourceLine:
		return "resource"
	case SectionHeader:
		return "section"
	default:
		return "text"
	}
}

// Line is a classified, trimmed line of the source text
type Line struct {
	Kind Kind
	Text string
	Date string // DayHeader only, empty when the header carries no DD/MM token
	URL  string // ResourceLine only
}

var (
	// e.g. "Segunda-Feira (08/12)"
	dayHeaderRegex = regexp.MustCompile(`^.+\(\d{2}/\d{2}\)\s*$`)
	dateRegex      = regexp.MustCompile(`\((\d{2}/\d{2})\)`)
	// non-whitespace includes the Unicode separators Word likes to emit (NBSP and friends)
	urlRegex = regexp.MustCompile(`(?i)https?://[^\s\x0B\p{Z}\x{FEFF}]+`)
)

var sectionPrefixes = []string{"link ", "links ", "activities "}

// Classify decides what a single line is, in priority order:
// day header, resource line, section header, plain text.
func Classify(line string) Line {
	line = trim(line)

	if dayHeaderRegex.MatchString(line) {
		l := Line{Kind: DayHeader, Text: line}
		if m := dateRegex.FindStringSubmatch(line); m != nil {
			l.Date = m[1]
		}
		return l
	}

	if url := urlRegex.FindString(line); url != "" {
		return Line{Kind: ResourceLine, Text: line, URL: url}
	}

	lower := strings.ToLower(line)
	for _, prefix := range sectionPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return Line{Kind: SectionHeader, Text: line}
		}
	}

	return Line{Kind: PlainText, Text: line}
}

// SplitLines splits on \n or \r\n, trims every line and drops the empty ones
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = trim(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
