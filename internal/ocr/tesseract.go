package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// binarizeLevel is the grayscale cutoff used when preprocessing pages
// before recognition. Screentone backgrounds confuse Tesseract; a hard
// threshold keeps the glyph strokes and drops most of the pattern.
const binarizeLevel = 128

// Engine recognizes text on page images using Tesseract.
type Engine struct {
	// Language is the Tesseract language code, e.g. "jpn" or "jpn_vert".
	Language string

	// Binarize enables grayscale+threshold preprocessing before
	// recognition.
	Binarize bool
}

// NewEngine returns an Engine for the given Tesseract language with
// preprocessing enabled.
func NewEngine(language string) *Engine {
	return &Engine{Language: language, Binarize: true}
}

// Recognize runs OCR over the image at path and returns line-level
// detections as a Record. Confidence scores are normalized to 0..1 and
// boxes are corner coordinates in the original image.
func (e *Engine) Recognize(path string) (*Record, error) {
	imagePath := path
	if e.Binarize {
		prepared, err := e.prepare(path)
		if err != nil {
			return nil, err
		}
		defer os.Remove(prepared)
		imagePath = prepared
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.Language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	rec := &Record{
		Texts:  make([]string, 0, len(boxes)),
		Scores: make([]float64, 0, len(boxes)),
		Boxes:  make([][4]int, 0, len(boxes)),
	}
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		rec.Texts = append(rec.Texts, box.Word)
		rec.Scores = append(rec.Scores, box.Confidence/100.0)
		rec.Boxes = append(rec.Boxes, [4]int{
			box.Box.Min.X, box.Box.Min.Y, box.Box.Max.X, box.Box.Max.Y,
		})
	}
	return rec, nil
}

// prepare binarizes the page and writes it to a temporary PNG, returning
// its path. The caller removes the file.
func (e *Engine) prepare(path string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}

	var prepared image.Image = segment.Threshold(effect.Grayscale(img), binarizeLevel)

	tmp, err := os.CreateTemp("", "manfan-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if err := png.Encode(tmp, prepared); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
