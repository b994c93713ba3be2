package render

import (
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/manfanocr/manfan/internal/page"
)

// Compose renders the page's translations onto its image and writes the
// result to outPath. Each member box is blanked with the mask color, then
// the wrapped translation is drawn from the enclosing rectangle's
// top-left corner using the rectangle's width as the wrap target.
// Regions whose translation is empty are masked but left blank.
func (r *Renderer) Compose(p *page.Page, outPath string) error {
	img, err := imaging.Open(p.ImagePath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}

	dc := gg.NewContextForImage(img)
	dc.SetFontFace(r.face)

	metrics := r.face.Metrics()
	ascent := float64(metrics.Ascent.Ceil())
	lineHeight := float64(metrics.Height.Ceil())

	for _, region := range p.Regions {
		dc.SetColor(r.mask)
		for _, idx := range region.Members {
			f := p.Fragments[idx]
			dc.DrawRectangle(float64(f.X), float64(f.Y), float64(f.W), float64(f.H))
			dc.Fill()
		}

		if r.debug {
			b := region.Bounds
			dc.SetColor(r.outline)
			dc.SetLineWidth(1)
			dc.DrawRectangle(float64(b.X), float64(b.Y), float64(b.W), float64(b.H))
			dc.Stroke()
		}

		if region.Translation == "" {
			continue
		}

		wrapped := Wrap(region.Translation, float64(region.Bounds.W), r.Measure)
		dc.SetColor(r.ink)
		x := float64(region.Bounds.X)
		baseline := float64(region.Bounds.Y) + ascent
		for _, line := range strings.Split(wrapped, "\n") {
			if line != "" {
				dc.DrawString(line, x, baseline)
			}
			baseline += lineHeight
		}
	}

	if err := imaging.Save(dc.Image(), outPath, imaging.JPEGQuality(r.quality)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
