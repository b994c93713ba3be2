// Package page builds the clustered region model for one image from its
// OCR record.
package page

import (
	"fmt"
	"strings"

	"github.com/manfanocr/manfan/internal/cluster"
	"github.com/manfanocr/manfan/internal/ocr"
)

// ScoreThreshold is the minimum recognizer confidence, inclusive, for a
// detection to become a fragment. Detections below it are dropped
// silently.
const ScoreThreshold = 0.75

// Page holds everything derived from one image's OCR record: the
// confidence-filtered fragments and the regions clustered from them.
// A page owns its fragments and regions; nothing is shared across pages.
type Page struct {
	ImagePath string
	Fragments []cluster.Fragment
	Regions   []*cluster.Region
}

// Load reads the OCR record cached for imagePath under dir and builds the
// fully clustered page. A missing or malformed record fails this page
// only; callers decide whether the batch continues.
func Load(dir, imagePath string) (*Page, error) {
	rec, err := ocr.LoadRecord(ocr.CachePath(dir, imagePath))
	if err != nil {
		return nil, fmt.Errorf("page %q: %w", imagePath, err)
	}
	return FromRecord(imagePath, rec)
}

// FromRecord builds a page directly from a record. Corner boxes are
// converted to x/y/w/h here; detections scoring below ScoreThreshold
// never become fragments.
func FromRecord(imagePath string, rec *ocr.Record) (*Page, error) {
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("page %q: %w", imagePath, err)
	}

	p := &Page{ImagePath: imagePath}
	for i := 0; i < rec.Len(); i++ {
		if rec.Scores[i] < ScoreThreshold {
			continue
		}
		box := rec.Boxes[i]
		p.Fragments = append(p.Fragments, cluster.Fragment{
			Rect: cluster.Rect{
				X: box[0],
				Y: box[1],
				W: box[2] - box[0],
				H: box[3] - box[1],
			},
			Text:  rec.Texts[i],
			Score: rec.Scores[i],
		})
	}
	p.Regions = cluster.Cluster(p.Fragments)
	return p, nil
}

// Describe returns a multi-line diagnostic summary of the page's regions,
// used by debug mode.
func (p *Page) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d fragments, %d regions\n",
		p.ImagePath, len(p.Fragments), len(p.Regions))
	for i, region := range p.Regions {
		fmt.Fprintf(&b, "  region %d: bounds=%+v text=%q\n", i, region.Bounds, region.Text)
		for _, idx := range region.Members {
			f := p.Fragments[idx]
			fmt.Fprintf(&b, "    fragment %d: %d,%d %dx%d score=%.3f text=%q\n",
				idx, f.X, f.Y, f.W, f.H, f.Score, f.Text)
		}
	}
	return b.String()
}
