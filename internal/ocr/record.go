// Package ocr produces and persists per-image recognition records.
//
// A Record mirrors the PaddleOCR result layout: three parallel arrays of
// recognized texts, confidence scores, and corner bounding boxes. Records
// are written to `<dir>/<stem>_res.json` next to the rendered output,
// which doubles as the cache consulted by the skip-OCR run mode.
package ocr

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMalformedRecord indicates a record whose parallel arrays are missing
// or of mismatched lengths.
var ErrMalformedRecord = errors.New("malformed OCR record")

// Record is the recognition result for one image. The three slices are
// parallel: index i describes one detection. Boxes hold corner
// coordinates [x1, y1, x2, y2], not width/height.
type Record struct {
	Texts  []string  `json:"rec_texts"`
	Scores []float64 `json:"rec_scores"`
	Boxes  [][4]int  `json:"rec_boxes"`
}

// Len returns the number of detections in the record.
func (r *Record) Len() int {
	return len(r.Texts)
}

// Validate checks that the parallel arrays are present and equal length.
func (r *Record) Validate() error {
	if r.Texts == nil || r.Scores == nil || r.Boxes == nil {
		return fmt.Errorf("%w: missing result arrays", ErrMalformedRecord)
	}
	if len(r.Scores) != len(r.Texts) || len(r.Boxes) != len(r.Texts) {
		return fmt.Errorf("%w: %d texts, %d scores, %d boxes",
			ErrMalformedRecord, len(r.Texts), len(r.Scores), len(r.Boxes))
	}
	return nil
}

// Save writes the record as JSON, creating parent directories as needed.
func (r *Record) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create record directory: %w", err)
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// LoadRecord reads and validates a record previously written by Save (or
// by a compatible external recognizer).
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Stem returns the image filename without directory or extension.
func Stem(imagePath string) string {
	base := filepath.Base(imagePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CachePath returns the record location for imagePath under dir:
// `<dir>/<stem>_res.json`.
func CachePath(dir, imagePath string) string {
	return filepath.Join(dir, Stem(imagePath)+"_res.json")
}
