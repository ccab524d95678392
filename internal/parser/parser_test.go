package parser

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/takak2166/docx2schedule/internal/models"
)

const sample = `Cronograma da 2ª Turma
https://example.com/ignored-before-first-day

Segunda-Feira (08/12)
Link Reuniões do Zoom:
Aula 1 https://zoom.us/j/12345
Link Presenças:
Formulário de presença
https://forms.gle/abc

Terça-Feira (09/12)
Material de apoio: https://drive.google.com/file/d/1
`

func TestParse(t *testing.T) {
	days := Parse(sample)

	expected := []models.Day{
		{
			ID:    "day-1",
			Label: "Segunda-Feira (08/12)",
			Order: 1,
			Date:  "08/12",
			Sections: []models.Section{
				{
					ID:    "link-reunioes-do-zoom",
					Label: "Link Reuniões do Zoom",
					Items: []models.Resource{
						{ID: "day-1-1", Title: "Aula 1", Type: models.TypeZoom, URL: "https://zoom.us/j/12345"},
					},
				},
				{
					ID:    "link-presencas",
					Label: "Link Presenças",
					Items: []models.Resource{
						{ID: "day-1-1", Title: "Formulário de presença", Type: models.TypeForm, URL: "https://forms.gle/abc"},
					},
				},
			},
		},
		{
			ID:    "day-2",
			Label: "Terça-Feira (09/12)",
			Order: 2,
			Date:  "09/12",
			Sections: []models.Section{
				{
					ID:    "general",
					Label: "General",
					Items: []models.Resource{
						{ID: "day-2-1", Title: "Material de apoio", Type: models.TypeResource, URL: "https://drive.google.com/file/d/1"},
					},
				},
			},
		},
	}

	if !reflect.DeepEqual(days, expected) {
		t.Errorf("Parse() = %+v, want %+v", days, expected)
	}
}

func TestParseWithoutDays(t *testing.T) {
	inputs := []string{
		"",
		"   \n\n\t",
		"Segunda-Feira\nLink Zoom:\nAula https://zoom.us/j/1",
		"Segunda-Feira (8/12)",
	}

	for _, input := range inputs {
		days := Parse(input)
		if days == nil || len(days) != 0 {
			t.Errorf("Parse(%q) = %v, want empty schedule", input, days)
		}
	}
}

func TestParseDayOrder(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&b, "Dia %d (%02d/12)\r\n", i, i)
		b.WriteString("texto solto\r\n\r\n")
	}

	days := Parse(b.String())
	if len(days) != 12 {
		t.Fatalf("Expected 12 days, got %d", len(days))
	}
	for i, d := range days {
		if d.Order != i+1 {
			t.Errorf("days[%d].Order = %d, want %d", i, d.Order, i+1)
		}
		if d.ID != fmt.Sprintf("day-%d", i+1) {
			t.Errorf("days[%d].ID = %s", i, d.ID)
		}
		if d.Date != fmt.Sprintf("%02d/12", i+1) {
			t.Errorf("days[%d].Date = %s", i, d.Date)
		}
		if len(d.Sections) != 0 {
			t.Errorf("days[%d] should have no sections, got %d", i, len(d.Sections))
		}
	}
}

func TestParseDayHeaderWins(t *testing.T) {
	days := Parse("Link da semana (10/12)\nhttps://zoom.us/j/9 (11/12)")
	if len(days) != 2 {
		t.Fatalf("Expected 2 days, got %d", len(days))
	}
	if days[0].Label != "Link da semana (10/12)" || len(days[0].Sections) != 0 {
		t.Errorf("Unexpected first day: %+v", days[0])
	}
	if days[1].Date != "11/12" {
		t.Errorf("Expected date 11/12, got %s", days[1].Date)
	}
}

func TestParseTitleFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		title    string
		itemType models.ResourceType
	}{
		{
			name:     "Inline text",
			input:    "Aula 1 https://zoom.us/j/12345",
			title:    "Aula 1",
			itemType: models.TypeZoom,
		},
		{
			name:     "Trailing colon and dash",
			input:    "Gravação – https://example.com/v",
			title:    "Gravação",
			itemType: models.TypeOther,
		},
		{
			name:     "Colon before URL",
			input:    "Aula 2: https://example.com/a2",
			title:    "Aula 2",
			itemType: models.TypeOther,
		},
		{
			name:     "Pending title",
			input:    "Formulário de presença\nhttps://example.com/p",
			title:    "Formulário de presença",
			itemType: models.TypeForm,
		},
		{
			name:     "Latest pending title wins",
			input:    "Primeiro\nSegundo\nhttps://example.com/x",
			title:    "Segundo",
			itemType: models.TypeOther,
		},
		{
			name:     "No title at all",
			input:    "https://example.com/x",
			title:    "Resource",
			itemType: models.TypeOther,
		},
		{
			name:     "Section header clears pending title",
			input:    "Perdido\nLinks Extras\nhttps://example.com/x",
			title:    "Resource",
			itemType: models.TypeOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := Parse("Segunda-Feira (08/12)\n" + tt.input)
			if len(days) != 1 {
				t.Fatalf("Expected 1 day, got %d", len(days))
			}
			sections := days[0].Sections
			last := sections[len(sections)-1]
			if len(last.Items) != 1 {
				t.Fatalf("Expected 1 item, got %d", len(last.Items))
			}
			item := last.Items[0]
			if item.Title != tt.title {
				t.Errorf("Title = %q, want %q", item.Title, tt.title)
			}
			if item.Type != tt.itemType {
				t.Errorf("Type = %q, want %q", item.Type, tt.itemType)
			}
		})
	}
}

func TestParsePendingTitleConsumed(t *testing.T) {
	days := Parse("Segunda-Feira (08/12)\nFormulário\nhttps://example.com/1\nhttps://example.com/2")
	items := days[0].Sections[0].Items
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Formulário" || items[1].Title != "Resource" {
		t.Errorf("Unexpected titles %q, %q", items[0].Title, items[1].Title)
	}
	if items[0].ID != "day-1-1" || items[1].ID != "day-1-2" {
		t.Errorf("Unexpected ids %q, %q", items[0].ID, items[1].ID)
	}
}

func TestParseDuplicateSectionSlugs(t *testing.T) {
	days := Parse("Segunda-Feira (08/12)\nLink Zoom:\nLINK ZOOM\nhttps://zoom.us/j/1")
	sections := days[0].Sections
	if len(sections) != 2 {
		t.Fatalf("Expected both sections to be kept, got %d", len(sections))
	}
	if sections[0].ID != "link-zoom" || sections[1].ID != "link-zoom" {
		t.Errorf("Expected identical ids, got %q and %q", sections[0].ID, sections[1].ID)
	}
	if len(sections[0].Items) != 0 || len(sections[1].Items) != 1 {
		t.Errorf("Resource should land in the latest section")
	}
}

func TestParseSectionSlugs(t *testing.T) {
	days := Parse("Segunda-Feira (08/12)\nhttps://zoom.us/j/1\nLinks ::::")
	sections := days[0].Sections
	if len(sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(sections))
	}
	if sections[0].ID != "general" {
		t.Errorf("Expected general section first, got %q", sections[0].ID)
	}
	if sections[1].ID != "links" {
		t.Errorf("Expected links slug, got %q", sections[1].ID)
	}

	days = Parse("Segunda-Feira (08/12)\nLink 日本語")
	if got := days[0].Sections[0].ID; got != "link" {
		t.Errorf("Expected link slug, got %q", got)
	}
}

func TestParseJSONRoundTrip(t *testing.T) {
	days := Parse(sample)

	data, err := json.Marshal(days)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if strings.Contains(string(data), "notes") {
		t.Errorf("notes should be omitted: %s", data)
	}
	if !strings.Contains(string(data), `"description":""`) {
		t.Errorf("description should always be present: %s", data)
	}

	var decoded []models.Day
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if !reflect.DeepEqual(days, decoded) {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", decoded, days)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "links.docx")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("Failed to add document part: %v", err)
	}
	w.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>Segunda-Feira (08/12)</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Aula 1 https://zoom.us/j/12345</w:t></w:r></w:p>` +
		`</w:body></w:document>`))
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close archive: %v", err)
	}
	f.Close()

	p := New()
	if err := p.ParseFile(path); err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	days := p.GetDays()
	if len(days) != 1 {
		t.Fatalf("Expected 1 day, got %d", len(days))
	}
	if days[0].Sections[0].Items[0].URL != "https://zoom.us/j/12345" {
		t.Errorf("Unexpected item %+v", days[0].Sections[0].Items[0])
	}

	if err := New().ParseFile(filepath.Join(dir, "missing.docx")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestConvertToMarkdown(t *testing.T) {
	days := Parse(sample)

	p := New()
	result := p.ConvertToMarkdown(&days[0])
	expected := "# Segunda-Feira (08/12)\n\n" +
		"## Link Reuniões do Zoom\n" +
		"- [Aula 1](https://zoom.us/j/12345)\n" +
		"\n" +
		"## Link Presenças\n" +
		"- [Formulário de presença](https://forms.gle/abc)\n"
	if result != expected {
		t.Errorf("ConvertToMarkdown() = %q, want %q", result, expected)
	}
}
