// Package pipeline sequences OCR, clustering, translation, and rendering
// across a batch of page images.
//
// The pipeline is strictly sequential. Each stage runs over the whole
// batch before the next begins, and a failure on one page drops that page
// from later stages without stopping the rest.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/manfanocr/manfan/internal/ocr"
	"github.com/manfanocr/manfan/internal/page"
	"github.com/manfanocr/manfan/internal/render"
	"github.com/manfanocr/manfan/internal/translate"
)

var (
	// ErrInputNotFound marks an input path that does not exist.
	ErrInputNotFound = errors.New("input image not found")

	// ErrUnsupportedFormat marks an input that is not a supported
	// raster format.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Recognizer produces an OCR record for an image file.
type Recognizer interface {
	Recognize(imagePath string) (*ocr.Record, error)
}

// Config carries the run-time settings resolved by the CLI layer. The
// core holds no hard-coded paths.
type Config struct {
	// OutputDir receives rendered pages and cached OCR records.
	OutputDir string

	// SkipOCR reuses an existing cached record when present instead of
	// re-recognizing. A missing cache falls back to fresh OCR.
	SkipOCR bool

	// Debug logs per-page region diagnostics.
	Debug bool
}

// Driver runs the batch pipeline.
type Driver struct {
	cfg        Config
	recognizer Recognizer
	translator translate.Translator
	renderer   *render.Renderer
}

// New assembles a Driver from its collaborators.
func New(cfg Config, recognizer Recognizer, translator translate.Translator, renderer *render.Renderer) *Driver {
	return &Driver{
		cfg:        cfg,
		recognizer: recognizer,
		translator: translator,
		renderer:   renderer,
	}
}

// IsRasterImage reports whether path has a supported raster extension.
func IsRasterImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// OutputPath returns where the rendered page for imagePath is written:
// `<dir>/<stem>.jpg`, JPEG regardless of the input format.
func OutputPath(dir, imagePath string) string {
	return filepath.Join(dir, ocr.Stem(imagePath)+".jpg")
}

// Run processes images in order: recognition, page building, translation,
// rendering. It returns the pages that completed every stage. The only
// batch-fatal failure is an unusable output directory.
func (d *Driver) Run(ctx context.Context, images []string) ([]*page.Page, error) {
	if err := os.MkdirAll(d.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	recognized := d.recognize(images)
	pages := d.build(recognized)
	d.translate(ctx, pages)
	return d.draw(pages), nil
}

// recognize checks each input and ensures a cached OCR record exists for
// it, running the recognizer unless a reusable record is found. It
// returns the paths that have a record.
func (d *Driver) recognize(images []string) []string {
	processed := make([]string, 0, len(images))
	for _, img := range images {
		if _, err := os.Stat(img); err != nil {
			log.Printf("skipping %q: %v", img, ErrInputNotFound)
			continue
		}
		if !IsRasterImage(img) {
			log.Printf("skipping %q: %v", img, ErrUnsupportedFormat)
			continue
		}

		cachePath := ocr.CachePath(d.cfg.OutputDir, img)
		if d.cfg.SkipOCR {
			if _, err := os.Stat(cachePath); err == nil {
				log.Printf("Skipping OCR for %q", img)
				processed = append(processed, img)
				continue
			}
			log.Printf("no cached OCR record for %q, recognizing", img)
		}

		log.Printf("Reading image: %q", img)
		rec, err := d.recognizer.Recognize(img)
		if err != nil {
			log.Printf("OCR failed for %q: %v", img, err)
			continue
		}
		if err := rec.Save(cachePath); err != nil {
			log.Printf("failed to cache OCR record for %q: %v", img, err)
			continue
		}
		processed = append(processed, img)
	}
	return processed
}

// build loads and clusters each recognized page. A malformed record fails
// that page only.
func (d *Driver) build(images []string) []*page.Page {
	pages := make([]*page.Page, 0, len(images))
	for _, img := range images {
		p, err := page.Load(d.cfg.OutputDir, img)
		if err != nil {
			log.Printf("failed to build page: %v", err)
			continue
		}
		if d.cfg.Debug {
			log.Printf("page diagnostics:\n%s", p.Describe())
		}
		pages = append(pages, p)
	}
	return pages
}

// translate fills each region's translation, page order then region
// order. A failed region is reported and left untranslated; the page
// still renders with the original text masked.
func (d *Driver) translate(ctx context.Context, pages []*page.Page) {
	for _, p := range pages {
		log.Printf("Translating image: %q", p.ImagePath)
		for i, region := range p.Regions {
			if region.Text == "" {
				continue
			}
			out, err := d.translator.Translate(ctx, region.Text)
			if err != nil {
				log.Printf("translation failed for %q region %d: %v", p.ImagePath, i, err)
				continue
			}
			region.Translation = out
		}
	}
}

// draw composites each page and writes `<outdir>/<stem>.jpg`. It returns
// the pages whose output was written.
func (d *Driver) draw(pages []*page.Page) []*page.Page {
	done := make([]*page.Page, 0, len(pages))
	for _, p := range pages {
		log.Printf("Drawing image: %q", p.ImagePath)
		outPath := OutputPath(d.cfg.OutputDir, p.ImagePath)
		if err := d.renderer.Compose(p, outPath); err != nil {
			log.Printf("failed to render %q: %v", p.ImagePath, err)
			continue
		}
		done = append(done, p)
	}
	return done
}
