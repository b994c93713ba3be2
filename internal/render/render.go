package render

import (
	"fmt"
	"image/color"
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
)

// Options configure overlay rendering. Colors are hex strings like
// "#ffffff"; zero values fall back to white mask, black ink, red debug.
type Options struct {
	FontPath   string
	FontSize   float64
	MaskColor  string
	InkColor   string
	DebugColor string

	// Debug outlines each region's enclosing rectangle.
	Debug bool

	// JPEGQuality for saved pages, 1-100. Zero means 90.
	JPEGQuality int
}

// Renderer composites translated regions onto page images.
type Renderer struct {
	face    font.Face
	mask    color.Color
	ink     color.Color
	outline color.Color
	debug   bool
	quality int
}

// New loads the TrueType font named in opts and returns a Renderer.
func New(opts Options) (*Renderer, error) {
	data, err := os.ReadFile(opts.FontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	ft, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ft, &truetype.Options{Size: opts.FontSize})
	return NewWithFace(face, opts)
}

// NewWithFace builds a Renderer around an existing font face. Used by New
// and by tests that substitute a fixed-metric face.
func NewWithFace(face font.Face, opts Options) (*Renderer, error) {
	mask, err := parseColor(opts.MaskColor, "#ffffff")
	if err != nil {
		return nil, fmt.Errorf("invalid mask color: %w", err)
	}
	ink, err := parseColor(opts.InkColor, "#000000")
	if err != nil {
		return nil, fmt.Errorf("invalid ink color: %w", err)
	}
	outline, err := parseColor(opts.DebugColor, "#ff0000")
	if err != nil {
		return nil, fmt.Errorf("invalid debug color: %w", err)
	}
	quality := opts.JPEGQuality
	if quality == 0 {
		quality = 90
	}
	return &Renderer{
		face:    face,
		mask:    mask,
		ink:     ink,
		outline: outline,
		debug:   opts.Debug,
		quality: quality,
	}, nil
}

func parseColor(hex, fallback string) (color.Color, error) {
	if hex == "" {
		hex = fallback
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Measure reports the rendered width of one line in pixels using the
// renderer's font face. It satisfies the layout engine's MeasureFunc.
func (r *Renderer) Measure(line string) float64 {
	return FaceMeasure(r.face)(line)
}
