package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
)

// ErrInvalidExport is returned for export files missing the habits or progress arrays
var ErrInvalidExport = errors.New("invalid export file")

// ExportFileName returns the default export file name for t.
func ExportFileName(t time.Time) string {
	return constants.ExportFilePrefix + t.Format(constants.DateFormat) + constants.ExportFileSuffix
}

// EncodeExport renders data as indented JSON.
func EncodeExport(data models.ExportData) ([]byte, error) {
	if data.Habits == nil {
		data.Habits = []models.Habit{}
	}
	if data.Progress == nil {
		data.Progress = []models.Progress{}
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return out, nil
}

// WriteExport writes data to path with owner-only permissions.
func WriteExport(path string, data models.ExportData) error {
	out, err := EncodeExport(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// DecodeExport parses an export document. Both arrays must be present.
func DecodeExport(raw []byte) (models.ExportData, error) {
	var doc struct {
		Habits     *[]models.Habit    `json:"habits"`
		Progress   *[]models.Progress `json:"progress"`
		ExportDate string             `json:"exportDate"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.ExportData{}, fmt.Errorf("%w: %v", ErrInvalidExport, err)
	}
	if doc.Habits == nil || doc.Progress == nil {
		return models.ExportData{}, fmt.Errorf("%w: expected habits and progress arrays", ErrInvalidExport)
	}
	return models.ExportData{
		Habits:     *doc.Habits,
		Progress:   *doc.Progress,
		ExportDate: doc.ExportDate,
	}, nil
}

// ReadExport loads an export file from path.
func ReadExport(path string) (models.ExportData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.ExportData{}, fmt.Errorf("failed to read export: %w", err)
	}
	return DecodeExport(raw)
}
