package app

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/cardextract/internal/dom"
	"github.com/hyperifyio/cardextract/internal/extract"
	"github.com/hyperifyio/cardextract/internal/fetch"
	"github.com/hyperifyio/cardextract/internal/output"
	"github.com/hyperifyio/cardextract/internal/pdftext"
	"github.com/hyperifyio/cardextract/internal/record"
)

// PageFetcher downloads an HTML page.
type PageFetcher interface {
	Get(ctx context.Context, url string) (fetch.Page, error)
}

// PDFReader returns the text of a PDF, using OCR when needed.
type PDFReader interface {
	ReadText(ctx context.Context, path string) (string, error)
}

// PDFConverter OCRs a PDF and writes a text-based copy.
type PDFConverter interface {
	Convert(ctx context.Context, src, dst string) (string, error)
}

// App wires acquisition, extraction and output for one source.
type App struct {
	cfg       Config
	log       zerolog.Logger
	fetcher   PageFetcher
	reader    PDFReader
	converter PDFConverter
}

// Option customizes App construction.
type Option func(*App)

// WithFetcher replaces the HTTP page fetcher.
func WithFetcher(f PageFetcher) Option { return func(a *App) { a.fetcher = f } }

// WithPDFReader replaces the PDF text reader.
func WithPDFReader(r PDFReader) Option { return func(a *App) { a.reader = r } }

// WithPDFConverter replaces the OCR converter used by --convert-pdf.
func WithPDFConverter(c PDFConverter) Option { return func(a *App) { a.converter = c } }

// New validates cfg and builds the default collaborators.
func New(cfg Config, log zerolog.Logger, opts ...Option) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, log: log}

	a.fetcher = &fetch.Client{
		HTTPClient:        newHTTPClient(),
		UserAgent:         cfg.UserAgent,
		PerRequestTimeout: cfg.Timeout,
		MaxBodyBytes:      cfg.MaxBodyBytes,
		Log:               log,
	}
	ocr := pdftext.OCR{
		Rasterizer: pdftext.Pdftoppm{Path: cfg.PdftoppmPath, DPI: cfg.OCRDPI},
		Recognizer: pdftext.Tesseract{Path: cfg.TesseractPath, Lang: cfg.OCRLang},
		Log:        log,
	}
	a.reader = pdftext.Reader{
		Direct:   pdftext.PlainText{Log: log},
		OCR:      ocr,
		MinChars: cfg.MinTextChars,
		Log:      log,
	}
	a.converter = pdftext.Converter{OCR: ocr, Log: log}

	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Run extracts records from the configured source and writes the requested
// artifacts. Nothing is written when an error occurs or no cards are found.
func (a *App) Run(ctx context.Context) error {
	format, err := output.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}
	recs, err := a.Extract(ctx, a.cfg.Source)
	if err != nil {
		return err
	}
	w := output.Writer{Base: a.cfg.OutputBase, Log: a.log}
	paths, err := w.Write(recs, format)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if len(paths) > 0 {
		a.log.Info().Int("cards", len(recs)).Strs("files", paths).Msg("extraction complete")
	}
	return nil
}

// Extract routes the source to the HTML or PDF path and returns the records.
func (a *App) Extract(ctx context.Context, source string) ([]record.Record, error) {
	kind, err := ClassifySource(source)
	if err != nil {
		return nil, err
	}
	a.log.Info().Str("source", source).Stringer("kind", kind).Msg("extracting cards")

	var recs []record.Record
	switch kind {
	case SourceURL:
		recs, err = a.extractWebsite(ctx, source)
	case SourcePDF:
		recs, err = a.extractPDF(ctx, source)
	}
	if err != nil {
		a.log.Error().Err(err).Str("source", source).Msg("extraction failed")
		return nil, err
	}
	a.log.Info().Int("cards", len(recs)).Msg("cards extracted")
	return recs, nil
}

func (a *App) extractWebsite(ctx context.Context, rawURL string) ([]record.Record, error) {
	domain, err := sourceDomain(rawURL)
	if err != nil {
		return nil, err
	}
	page, err := a.fetcher.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	root, err := dom.ParseContentType(bytes.NewReader(page.Body), page.ContentType)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return extract.HTMLExtractor{Log: a.log}.Extract(root, domain), nil
}

func (a *App) extractPDF(ctx context.Context, path string) ([]record.Record, error) {
	var (
		text string
		err  error
	)
	if a.cfg.ConvertPDF {
		dst := a.cfg.OutputPDF
		if dst == "" {
			dst = DeriveOutputPDFPath(path)
		}
		a.log.Info().Str("pdf", path).Str("output_pdf", dst).Msg("converting pdf with OCR")
		text, err = a.converter.Convert(ctx, path, dst)
	} else {
		text, err = a.reader.ReadText(ctx, path)
	}
	if err != nil {
		return nil, err
	}
	return extract.PDFExtractor{Log: a.log}.Extract(text), nil
}
