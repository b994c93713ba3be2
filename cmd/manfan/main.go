package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/manfanocr/manfan/internal/ocr"
	"github.com/manfanocr/manfan/internal/pipeline"
	"github.com/manfanocr/manfan/internal/render"
	"github.com/manfanocr/manfan/internal/translate"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("manfan %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		skipOCR  bool
		debug    bool
		outDir   string
		fontPath string
		fontSize float64
		ocrLang  string
		fromLang string
		toLang   string
		model    string
		baseURL  string
	)

	flag.BoolVar(&skipOCR, "s", false, "skip OCR for previously processed files")
	flag.BoolVar(&skipOCR, "skip-ocr", false, "skip OCR for previously processed files")
	flag.BoolVar(&debug, "d", false, "enable debug mode")
	flag.BoolVar(&debug, "debug", false, "enable debug mode")
	flag.StringVar(&outDir, "o", "output", "output directory for rendered pages and OCR records")
	flag.StringVar(&fontPath, "font", "", "path to a TrueType font for the overlay text")
	flag.Float64Var(&fontSize, "font-size", 24, "overlay font size in points")
	flag.StringVar(&ocrLang, "ocr-lang", "jpn", "Tesseract language code")
	flag.StringVar(&fromLang, "from", "ja", "source language")
	flag.StringVar(&toLang, "to", "en", "target language")
	flag.StringVar(&model, "model", "", "translation model (default "+translate.DefaultModel+")")
	flag.StringVar(&baseURL, "base-url", os.Getenv("OPENAI_BASE_URL"), "OpenAI-compatible API base URL")
	flag.Usage = usage
	flag.Parse()

	images := flag.Args()
	if len(images) == 0 {
		usage()
		os.Exit(2)
	}
	if fontPath == "" {
		fmt.Fprintln(os.Stderr, "manfan: -font is required")
		os.Exit(2)
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	renderer, err := render.New(render.Options{
		FontPath: fontPath,
		FontSize: fontSize,
		Debug:    debug,
	})
	if err != nil {
		log.Fatalf("renderer setup failed: %v", err)
	}

	translator := translate.NewOpenAI(
		os.Getenv("OPENAI_API_KEY"), baseURL, model, fromLang, toLang)

	driver := pipeline.New(
		pipeline.Config{OutputDir: outDir, SkipOCR: skipOCR, Debug: debug},
		ocr.NewEngine(ocrLang),
		translator,
		renderer,
	)

	pages, err := driver.Run(context.Background(), images)
	if err != nil {
		log.Fatalf("pipeline error: %v", err)
	}
	if len(pages) < len(images) {
		log.Printf("completed %d of %d images", len(pages), len(images))
	}
	fmt.Println("Done!")
}

func usage() {
	fmt.Fprintln(os.Stderr, "manfan - recognize comic text, translate it, and redraw it in place")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage: manfan [options] FILE ...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Environment variables:")
	fmt.Fprintln(os.Stderr, "  OPENAI_API_KEY    API key for the translation endpoint")
	fmt.Fprintln(os.Stderr, "  OPENAI_BASE_URL   override the translation endpoint")
}
