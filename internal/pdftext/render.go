package pdftext

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

// WriteTextPDF renders plain text into a searchable Letter-size PDF. Blank
// lines separate paragraphs; line breaks inside a paragraph are kept.
func WriteTextPDF(text string, outPath string) error {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(72, 72, 72)
	pdf.SetAutoPageBreak(true, 72)
	pdf.SetFont("Helvetica", "", 10)
	pdf.AddPage()

	// core fonts are cp1252; anything outside it becomes '.'
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	blank := false
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			if !blank {
				pdf.Ln(6)
			}
			blank = true
			continue
		}
		blank = false
		pdf.MultiCell(0, 12, tr(s), "", "L", false)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan text: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf %s: %w", outPath, err)
	}
	return nil
}

// Converter OCRs a scanned PDF and saves the recognized text as a new PDF.
type Converter struct {
	OCR TextExtractor
	Log zerolog.Logger
}

// Convert returns the recognized text of src, normalized like ReadText. The
// searchable copy is written to dst unless dst is empty.
func (c Converter) Convert(ctx context.Context, src, dst string) (string, error) {
	if c.OCR == nil {
		return "", ErrNoOCR
	}
	text, err := c.OCR.ExtractText(ctx, src)
	if err != nil {
		return "", fmt.Errorf("ocr %s: %w", src, err)
	}
	if dst != "" {
		if err := WriteTextPDF(text, dst); err != nil {
			return "", err
		}
		c.Log.Info().Str("path", dst).Msg("created text-based pdf")
	}
	return norm.NFKC.String(text), nil
}
