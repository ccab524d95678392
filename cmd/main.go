package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/takak2166/docx2schedule/internal/docx"
	"github.com/takak2166/docx2schedule/internal/exporter"
	"github.com/takak2166/docx2schedule/internal/logger"
	"github.com/takak2166/docx2schedule/internal/models"
	"github.com/takak2166/docx2schedule/internal/notion"
	"github.com/takak2166/docx2schedule/internal/output"
	"github.com/takak2166/docx2schedule/internal/parser"
)

const defaultInput = "Links 2ª Turma.docx"

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	inputFile := flag.String("input", envOr("SCHEDULE_INPUT", defaultInput), "Path to the Word document")
	outputFile := flag.String("output", envOr("SCHEDULE_OUTPUT", filepath.Join("src", "data", "schedule.json")), "Path of the generated JSON schedule")
	markdownDir := flag.String("markdown", os.Getenv("MARKDOWN_DIR"), "Directory to save one markdown file per day (optional)")
	icsFile := flag.String("ics", os.Getenv("ICS_OUTPUT"), "Path of an iCalendar export (optional)")
	year := flag.Int("year", envInt("SCHEDULE_YEAR", time.Now().Year()), "Year used for the calendar export")
	publish := flag.Bool("notion", false, "Publish every day as a Notion page")
	flag.Parse()

	logLevel := envOr("LOG_LEVEL", "info")
	if err := logger.Init(logLevel); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.SetFormat(os.Getenv("LOG_FORMAT")); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Reading Word document", map[string]interface{}{
		"input": *inputFile,
	})

	p := parser.New()
	if err := p.ParseFile(*inputFile); err != nil {
		if errors.Is(err, docx.ErrNotFound) {
			wd, _ := os.Getwd()
			logger.Error("Document not found in project root", err, map[string]interface{}{
				"input":        *inputFile,
				"project_root": wd,
			})
		} else {
			logger.Error("Failed to parse input file", err, nil)
		}
		os.Exit(1)
	}

	days := p.GetDays()
	if err := output.WriteJSON(*outputFile, days); err != nil {
		logger.Error("Failed to write schedule", err, map[string]interface{}{
			"output": *outputFile,
		})
		os.Exit(1)
	}

	logger.Info("Schedule generated", map[string]interface{}{
		"output":    *outputFile,
		"days":      len(days),
		"resources": countResources(days),
	})

	if *markdownDir != "" {
		if err := writeMarkdown(p, days, *markdownDir); err != nil {
			logger.Error("Failed to write markdown", err, map[string]interface{}{
				"markdown_output": *markdownDir,
			})
			os.Exit(1)
		}
	}

	if *icsFile != "" {
		if err := writeICS(days, *year, *icsFile); err != nil {
			logger.Error("Failed to write calendar", err, map[string]interface{}{
				"ics_output": *icsFile,
			})
			os.Exit(1)
		}
	}

	if *publish {
		if err := publishDays(context.Background(), p, days); err != nil {
			logger.Error("Failed to publish to Notion", err, nil)
			os.Exit(1)
		}
	}
}

func writeMarkdown(p *parser.Parser, days []models.Day, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create markdown directory: %w", err)
	}

	for i := range days {
		// labels carry the "/" of the date, so name files by id
		mdFilePath := filepath.Join(dir, days[i].ID+".md")
		if err := os.WriteFile(mdFilePath, []byte(p.ConvertToMarkdown(&days[i])), 0644); err != nil {
			return fmt.Errorf("failed to save %s: %w", mdFilePath, err)
		}
	}

	logger.Info("Markdown written", map[string]interface{}{
		"markdown_output": dir,
		"files":           len(days),
	})
	return nil
}

func writeICS(days []models.Day, year int, path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create calendar directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := exporter.GenerateICS(days, year, time.Local, f); err != nil {
		return fmt.Errorf("failed to generate calendar: %w", err)
	}

	logger.Info("Calendar written", map[string]interface{}{
		"ics_output": path,
		"year":       year,
	})
	return nil
}

func publishDays(ctx context.Context, p *parser.Parser, days []models.Day) error {
	notionClient, err := notion.New()
	if err != nil {
		return err
	}

	successCount, skipped := 0, 0
	for i := range days {
		markdown := p.ConvertToMarkdown(&days[i])
		if err := notionClient.CreatePage(ctx, days[i].Label, markdown); err != nil {
			if errors.Is(err, notion.ErrPageExists) {
				logger.Info("Notion page already exists", map[string]interface{}{
					"day": days[i].Label,
				})
				skipped++
				continue
			}
			logger.Error("Failed to create Notion page", err, map[string]interface{}{
				"day": days[i].Label,
			})
			continue
		}
		successCount++
	}

	logger.Info("Publishing completed", map[string]interface{}{
		"total_days":    len(days),
		"success_count": successCount,
		"skipped_count": skipped,
		"failure_count": len(days) - successCount - skipped,
	})
	return nil
}

func countResources(days []models.Day) int {
	n := 0
	for i := range days {
		n += days[i].ResourceCount()
	}
	return n
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
