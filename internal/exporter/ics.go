package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/takak2166/docx2schedule/internal/logger"
	"github.com/takak2166/docx2schedule/internal/models"

	ics "github.com/arran4/golang-ical"
)

// GenerateICS writes one all-day event per dated course day. The documents
// only carry DD/MM, so the year has to be supplied.
func GenerateICS(days []models.Day, year int, loc *time.Location, w io.Writer) error {
	if loc == nil {
		loc = time.Local
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//docx2schedule//course schedule//EN")

	now := time.Now()
	for _, day := range days {
		if day.Date == "" {
			logger.Debug("Skipping day without date", map[string]interface{}{
				"day": day.ID,
			})
			continue
		}

		start, err := time.ParseInLocation("02/01/2006", fmt.Sprintf("%s/%d", day.Date, year), loc)
		if err != nil {
			logger.Warn("Skipping day with invalid date", map[string]interface{}{
				"day":  day.ID,
				"date": day.Date,
			})
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%d-%s@docx2schedule", year, day.ID))
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(start.AddDate(0, 0, 1))
		event.SetSummary(day.Label)
		event.SetDescription(describe(&day))
	}

	return cal.SerializeTo(w)
}

func describe(day *models.Day) string {
	var b strings.Builder
	for _, section := range day.Sections {
		b.WriteString(section.Label)
		b.WriteString("\n")
		for _, item := range section.Items {
			fmt.Fprintf(&b, "- %s: %s\n", item.Title, item.URL)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
