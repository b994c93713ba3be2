// Package render lays translated text back into a region's footprint and
// composites it onto the page image.
package render

import (
	"strings"

	"golang.org/x/image/font"
)

// MeasureFunc reports the rendered pixel width of a single line of text.
type MeasureFunc func(line string) float64

// Wrap breaks text into lines no wider than width using a greedy policy:
// each word joins the current line if the joined line still measures
// within width, otherwise it starts a new line. A single word wider than
// width gets a line of its own and overflows.
//
// Wrap is pure; it knows nothing about colors or compositing.
func Wrap(text string, width float64, measure MeasureFunc) string {
	lines := []string{""}
	for _, word := range strings.Fields(text) {
		candidate := strings.TrimSpace(lines[len(lines)-1] + " " + word)
		if measure(candidate) <= width {
			lines[len(lines)-1] = candidate
		} else {
			lines = append(lines, word)
		}
	}
	return strings.Join(lines, "\n")
}

// FaceMeasure adapts a font.Face into a MeasureFunc.
func FaceMeasure(face font.Face) MeasureFunc {
	return func(line string) float64 {
		return float64(font.MeasureString(face, line).Ceil())
	}
}
