package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/forecast/arima"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the persisted model artifact.
type Document struct {
	Model       *arima.State  `json:"model"`
	SeriesStart domain.Period `json:"series_start"`
	SeriesEnd   domain.Period `json:"series_end"`
	Horizon     int           `json:"horizon"`
	FittedAt    time.Time     `json:"fitted_at"`
}

// Save writes doc to path as indented JSON, replacing any previous file.
func Save(path string, doc *Document) error {
	if doc == nil || doc.Model == nil {
		return fmt.Errorf("artifact %s: empty model", path)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding artifact: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating artifact directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing artifact: %w", err)
	}

	return nil
}

// Load reads an artifact written by Save.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading artifact: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("error decoding artifact %s: %w", path, err)
	}
	if doc.Model == nil {
		return nil, fmt.Errorf("artifact %s has no model", path)
	}

	return doc, nil
}

// Restore rebuilds the fitted model described by the document.
func (d *Document) Restore() (*arima.Model, error) {
	return arima.FromState(d.Model)
}

// FileStore saves and loads artifacts on the local file system.
type FileStore struct{}

func NewFileStore() *FileStore {
	return &FileStore{}
}

func (s *FileStore) Save(path string, doc *Document) error {
	return Save(path, doc)
}

func (s *FileStore) Load(path string) (*Document, error) {
	return Load(path)
}
