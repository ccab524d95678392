package parser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/takak2166/docx2schedule/internal/models"
)

// InferType guesses the resource category from its title and URL.
// The checks run in order and the first hit wins.
func InferType(text, url string) models.ResourceType {
	lower := strings.ToLower(text)
	lowerURL := strings.ToLower(url)

	switch {
	case strings.Contains(lower, "zoom") || strings.Contains(lowerURL, "zoom"):
		return models.TypeZoom
	case strings.Contains(lower, "form") ||
		strings.Contains(lowerURL, "forms.gle") ||
		strings.Contains(lowerURL, "docs.google.com/forms"):
		return models.TypeForm
	case strings.Contains(lower, "resource") ||
		strings.Contains(lower, "material") ||
		strings.Contains(lowerURL, "drive.google.com"):
		return models.TypeResource
	default:
		return models.TypeOther
	}
}

var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the label, strips accents and collapses everything
// that is not [a-z0-9] into single hyphens.
func Slugify(label string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, strings.ToLower(label))
	if err != nil {
		folded = strings.ToLower(label)
	}
	return strings.Trim(nonAlnumRegex.ReplaceAllString(folded, "-"), "-")
}
