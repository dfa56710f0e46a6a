package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/codyseavey/mtga-ko/internal/models"
)

// DefaultOutputName is the document the lookup service reads.
const DefaultOutputName = "cards_data_for_api.json"

// ExportResult summarizes one written snapshot.
type ExportResult struct {
	Path     string
	Records  int
	Bytes    int
	Checksum uint64
}

// writeFile is replaced in tests to simulate a failing disk.
var writeFile = os.WriteFile

// SnapshotExporter writes card records as one JSON document.
type SnapshotExporter struct{}

func NewSnapshotExporter() *SnapshotExporter {
	return &SnapshotExporter{}
}

// Encode renders records plus the ping record as indented JSON. HTML
// characters are kept literal since exported text carries bracketed tags.
func (e *SnapshotExporter) Encode(records []models.CardRecord) ([]byte, error) {
	doc := make([]models.CardRecord, 0, len(records)+1)
	doc = append(doc, records...)
	doc = append(doc, models.PingRecord())

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Write replaces the file at path with the encoded document. The data is
// written to a sibling temp file first and renamed into place.
func (e *SnapshotExporter) Write(path string, records []models.CardRecord) (*ExportResult, error) {
	data, err := e.Encode(records)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpPath := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.New().String()+".tmp")
	if err := writeFile(tmpPath, data, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to move snapshot into place: %w", err)
	}

	return &ExportResult{
		Path:     path,
		Records:  len(records) + 1,
		Bytes:    len(data),
		Checksum: xxhash.Sum64(data),
	}, nil
}
