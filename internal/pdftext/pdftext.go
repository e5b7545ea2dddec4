// Package pdftext turns PDF documents into plain text, either directly from
// the text layer or, for scanned documents, through OCR.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

// DefaultMinChars is the amount of direct text below which a document is
// treated as image-based.
const DefaultMinChars = 100

// ErrNoOCR is returned when a document needs OCR but none is configured.
var ErrNoOCR = errors.New("pdf has no text layer and OCR is not configured")

// TextExtractor pulls the text of a whole PDF file.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// Reader reads the text layer and falls back to OCR when it is too thin.
type Reader struct {
	Direct   TextExtractor
	OCR      TextExtractor
	MinChars int
	Log      zerolog.Logger
}

// ReadText returns the document text, NFKC-normalized so ligatures and
// non-breaking spaces do not defeat the extraction patterns.
func (r Reader) ReadText(ctx context.Context, path string) (string, error) {
	direct := r.Direct
	if direct == nil {
		direct = PlainText{Log: r.Log}
	}
	text, err := direct.ExtractText(ctx, path)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	minChars := r.MinChars
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(text)); n < minChars {
		r.Log.Info().Int("chars", n).Int("min", minChars).Msg("pdf appears to be image-based; attempting OCR")
		if r.OCR == nil {
			return "", ErrNoOCR
		}
		text, err = r.OCR.ExtractText(ctx, path)
		if err != nil {
			return "", fmt.Errorf("ocr pdf: %w", err)
		}
	}
	return norm.NFKC.String(text), nil
}
