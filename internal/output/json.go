package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/takak2166/docx2schedule/internal/logger"
	"github.com/takak2166/docx2schedule/internal/models"
)

// WriteJSON writes the schedule as an indented JSON array, creating the
// parent directory when needed
func WriteJSON(path string, days []models.Day) (err error) {
	if days == nil {
		days = []models.Day{}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(days); err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}

	logger.Debug("Wrote schedule", map[string]interface{}{
		"filepath": path,
		"days":     len(days),
	})
	return nil
}

// ReadJSON loads a schedule previously written by WriteJSON
func ReadJSON(path string) ([]models.Day, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var days []models.Day
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return days, nil
}
