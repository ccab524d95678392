package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/takak2166/docx2schedule/internal/docx"
	"github.com/takak2166/docx2schedule/internal/logger"
	"github.com/takak2166/docx2schedule/internal/models"
)

const (
	defaultSectionID    = "general"
	defaultSectionLabel = "General"
	defaultTitle        = "Resource"
)

var trailingPunctRegex = regexp.MustCompile(`[:\-–]+$`)

// Parser turns the raw text of a course document into a schedule
type Parser struct {
	days []models.Day
}

// New creates a new Parser instance
func New() *Parser {
	return &Parser{}
}

// ParseFile extracts the text of a .docx file and parses it
func (p *Parser) ParseFile(filepath string) error {
	logger.Debug("Reading Word document", map[string]interface{}{
		"filepath": filepath,
	})

	text, err := docx.ExtractText(filepath)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	p.days = Parse(text)

	logger.Info("Successfully parsed Word document", map[string]interface{}{
		"days_count": len(p.days),
	})

	return nil
}

// GetDays returns the days produced by the last ParseFile call
func (p *Parser) GetDays() []models.Day {
	return p.days
}

// state is the accumulator carried across lines
type state struct {
	days         []models.Day
	day          int // index into days, -1 before the first header
	section      int // index into days[day].Sections, -1 when none is open
	pendingTitle string
	counter      int
}

// Parse builds the schedule from the document text. It never fails: lines it
// cannot place are dropped.
func Parse(text string) []models.Day {
	s := state{days: []models.Day{}, day: -1, section: -1}
	for _, line := range SplitLines(text) {
		s = s.apply(Classify(line))
	}
	return s.days
}

func (s state) apply(l Line) state {
	if l.Kind == DayHeader {
		return s.openDay(l)
	}
	// preamble before the first day
	if s.day < 0 {
		return s
	}

	switch l.Kind {
	case ResourceLine:
		return s.addResource(l)
	case SectionHeader:
		return s.openSection(l)
	default:
		s.pendingTitle = l.Text
		return s
	}
}

func (s state) openDay(l Line) state {
	s.counter++
	day := models.Day{
		ID:       fmt.Sprintf("day-%d", s.counter),
		Label:    l.Text,
		Order:    s.counter,
		Date:     l.Date,
		Sections: []models.Section{},
	}
	s.days = append(s.days, day)
	s.day = len(s.days) - 1
	s.section = -1
	s.pendingTitle = ""

	logger.Debug("Found day", map[string]interface{}{
		"id":    day.ID,
		"label": day.Label,
	})
	return s
}

func (s state) openSection(l Line) state {
	day := &s.days[s.day]
	label := strings.TrimSuffix(trim(l.Text), ":")
	id := Slugify(label)
	if id == "" {
		id = fmt.Sprintf("section-%d", len(day.Sections)+1)
	}

	day.Sections = append(day.Sections, models.Section{
		ID:    id,
		Label: label,
		Items: []models.Resource{},
	})
	s.section = len(day.Sections) - 1
	s.pendingTitle = ""

	logger.Debug("Found section", map[string]interface{}{
		"day":     day.ID,
		"section": id,
	})
	return s
}

func (s state) addResource(l Line) state {
	day := &s.days[s.day]

	titleText := trim(strings.Replace(l.Text, l.URL, "", 1))
	titleText = trim(trailingPunctRegex.ReplaceAllString(titleText, ""))
	if titleText == "" {
		titleText = trim(s.pendingTitle)
	}
	title := titleText
	if title == "" {
		title = defaultTitle
	}

	if s.section < 0 {
		day.Sections = append(day.Sections, models.Section{
			ID:    defaultSectionID,
			Label: defaultSectionLabel,
			Items: []models.Resource{},
		})
		s.section = len(day.Sections) - 1
	}

	section := &day.Sections[s.section]
	section.Items = append(section.Items, models.Resource{
		ID:          fmt.Sprintf("%s-%d", day.ID, len(section.Items)+1),
		Title:       title,
		Description: "",
		Type:        InferType(titleText, l.URL),
		URL:         l.URL,
	})
	s.pendingTitle = ""
	return s
}

// ConvertToMarkdown renders a day as markdown: the label as the title,
// one second-level heading per section and a link bullet per resource.
func (p *Parser) ConvertToMarkdown(day *models.Day) string {
	logger.Debug("Converting day to markdown", map[string]interface{}{
		"day": day.ID,
	})

	var md strings.Builder
	md.WriteString(fmt.Sprintf("# %s\n\n", day.Label))

	for i, section := range day.Sections {
		if i > 0 {
			md.WriteString("\n")
		}
		md.WriteString(fmt.Sprintf("## %s\n", section.Label))
		for _, item := range section.Items {
			md.WriteString(fmt.Sprintf("- [%s](%s)\n", item.Title, item.URL))
		}
	}

	return md.String()
}
