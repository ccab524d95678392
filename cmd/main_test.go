package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/takak2166/docx2schedule/internal/parser"
)

const sampleText = "Segunda-Feira (08/12)\nLink Zoom:\nAula 1 https://zoom.us/j/1\nTerça-Feira (09/12)\nhttps://forms.gle/a\n"

func TestWriteMarkdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "md")
	days := parser.Parse(sampleText)

	if err := writeMarkdown(parser.New(), days, dir); err != nil {
		t.Fatalf("writeMarkdown() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "day-1.md"))
	if err != nil {
		t.Fatalf("Expected day-1.md: %v", err)
	}
	if !strings.Contains(string(data), "- [Aula 1](https://zoom.us/j/1)") {
		t.Errorf("Unexpected markdown:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "day-2.md")); err != nil {
		t.Errorf("Expected day-2.md: %v", err)
	}
}

func TestWriteICS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "schedule.ics")
	days := parser.Parse(sampleText)

	if err := writeICS(days, 2026, path); err != nil {
		t.Fatalf("writeICS() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read calendar: %v", err)
	}
	if n := strings.Count(string(data), "BEGIN:VEVENT"); n != 2 {
		t.Errorf("Expected 2 events, got %d", n)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SCHEDULE_OUTPUT", "")
	if got := envOr("SCHEDULE_OUTPUT", "fallback"); got != "fallback" {
		t.Errorf("envOr() = %q, want fallback", got)
	}
	t.Setenv("SCHEDULE_OUTPUT", "public/schedule.json")
	if got := envOr("SCHEDULE_OUTPUT", "fallback"); got != "public/schedule.json" {
		t.Errorf("envOr() = %q", got)
	}

	t.Setenv("SCHEDULE_YEAR", "not-a-year")
	if got := envInt("SCHEDULE_YEAR", 2026); got != 2026 {
		t.Errorf("envInt() = %d, want 2026", got)
	}
	t.Setenv("SCHEDULE_YEAR", "2027")
	if got := envInt("SCHEDULE_YEAR", 2026); got != 2027 {
		t.Errorf("envInt() = %d, want 2027", got)
	}
}

func TestCountResources(t *testing.T) {
	if n := countResources(parser.Parse(sampleText)); n != 2 {
		t.Errorf("countResources() = %d, want 2", n)
	}
}
