package render

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/basicfont"

	"github.com/manfanocr/manfan/internal/cluster"
	"github.com/manfanocr/manfan/internal/page"
)

// writeTestPage saves a solid red page image and returns a Page with one
// translated region over it.
func writeTestPage(t *testing.T, dir string) *page.Page {
	t.Helper()

	img := imaging.New(200, 200, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	imgPath := filepath.Join(dir, "panel.png")
	if err := imaging.Save(img, imgPath); err != nil {
		t.Fatalf("failed to save test image: %v", err)
	}

	fragments := []cluster.Fragment{
		{Rect: cluster.Rect{X: 20, Y: 20, W: 80, H: 30}, Text: "こんにちは", Score: 0.9},
		{Rect: cluster.Rect{X: 20, Y: 45, W: 80, H: 30}, Text: "世界", Score: 0.9},
	}
	regions := cluster.Cluster(fragments)
	if len(regions) != 1 {
		t.Fatalf("test fragments clustered into %d regions, want 1", len(regions))
	}
	regions[0].Translation = "hello world"

	return &page.Page{ImagePath: imgPath, Fragments: fragments, Regions: regions}
}

func TestComposeMasksAndWrites(t *testing.T) {
	dir := t.TempDir()
	p := writeTestPage(t, dir)

	r, err := NewWithFace(basicfont.Face7x13, Options{})
	if err != nil {
		t.Fatalf("NewWithFace failed: %v", err)
	}

	outPath := filepath.Join(dir, "panel.jpg")
	if err := r.Compose(p, outPath); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	out, err := imaging.Open(outPath)
	if err != nil {
		t.Fatalf("failed to reopen output: %v", err)
	}
	if out.Bounds().Dx() != 200 || out.Bounds().Dy() != 200 {
		t.Errorf("output size = %v, want 200x200", out.Bounds())
	}

	// The masked fragment interior should now be near-white even after
	// JPEG round-tripping. Sample away from the drawn text.
	assertNearWhite(t, out, 95, 70)

	// A point outside every fragment stays red.
	red, green, _, _ := out.At(150, 150).RGBA()
	if red>>8 < 120 || green>>8 > 90 {
		t.Errorf("background at (150,150) changed: %v", out.At(150, 150))
	}
}

func TestComposeUntranslatedRegionStillMasked(t *testing.T) {
	dir := t.TempDir()
	p := writeTestPage(t, dir)
	p.Regions[0].Translation = ""

	r, err := NewWithFace(basicfont.Face7x13, Options{})
	if err != nil {
		t.Fatalf("NewWithFace failed: %v", err)
	}

	outPath := filepath.Join(dir, "panel.jpg")
	if err := r.Compose(p, outPath); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	out, err := imaging.Open(outPath)
	if err != nil {
		t.Fatalf("failed to reopen output: %v", err)
	}
	assertNearWhite(t, out, 95, 70)
}

func TestComposeMissingImage(t *testing.T) {
	dir := t.TempDir()
	p := writeTestPage(t, dir)
	p.ImagePath = filepath.Join(dir, "gone.png")

	r, err := NewWithFace(basicfont.Face7x13, Options{})
	if err != nil {
		t.Fatalf("NewWithFace failed: %v", err)
	}
	if err := r.Compose(p, filepath.Join(dir, "out.jpg")); err == nil {
		t.Error("Compose succeeded with a missing source image")
	}
}

func TestNewWithFaceRejectsBadColor(t *testing.T) {
	if _, err := NewWithFace(basicfont.Face7x13, Options{MaskColor: "not-a-color"}); err == nil {
		t.Error("NewWithFace accepted an invalid mask color")
	}
}

func assertNearWhite(t *testing.T, img image.Image, x, y int) {
	t.Helper()
	red, green, blue, _ := img.At(x, y).RGBA()
	if red>>8 < 200 || green>>8 < 200 || blue>>8 < 200 {
		t.Errorf("pixel at (%d,%d) = %v, want near-white mask", x, y, img.At(x, y))
	}
}
