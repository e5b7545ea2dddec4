package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnsupportedSource is returned for sources that are neither an http(s)
// URL nor a path ending in .pdf.
var ErrUnsupportedSource = errors.New("unsupported source: expected an http(s) URL or a .pdf file")

// SourceKind tells how a source is acquired.
type SourceKind int

const (
	SourceUnknown SourceKind = iota
	SourceURL
	SourcePDF
)

func (k SourceKind) String() string {
	switch k {
	case SourceURL:
		return "url"
	case SourcePDF:
		return "pdf"
	}
	return "unknown"
}

// ClassifySource decides the acquisition path from the source string alone.
func ClassifySource(source string) (SourceKind, error) {
	s := strings.TrimSpace(source)
	switch {
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return SourceURL, nil
	case strings.HasSuffix(strings.ToLower(s), ".pdf"):
		return SourcePDF, nil
	}
	return SourceUnknown, fmt.Errorf("%w: %q", ErrUnsupportedSource, source)
}

// sourceDomain returns the host[:port] of a URL source.
func sourceDomain(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	return u.Host, nil
}

// DeriveOutputPDFPath maps "scan.pdf" to "scan_text.pdf". Only the trailing
// extension is replaced, whatever its case.
func DeriveOutputPDFPath(source string) string {
	s := strings.TrimSpace(source)
	if strings.HasSuffix(strings.ToLower(s), ".pdf") {
		return s[:len(s)-len(".pdf")] + "_text.pdf"
	}
	return s + "_text.pdf"
}
