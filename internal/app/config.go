package app

import "time"

// Defaults shared by flag parsing and config layering.
const (
	DefaultOutput       = "output"
	DefaultFormat       = "all"
	DefaultTimeout      = 30 * time.Second
	DefaultMinTextChars = 100
	DefaultOCRLang      = "eng"
	DefaultOCRDPI       = 300
)

// Config holds runtime configuration for the application.
type Config struct {
	// Source is an http(s) URL or a path to a .pdf file.
	Source string
	// OutputBase is the artifact path without extension.
	OutputBase string
	Format     string

	ConvertPDF bool
	// OutputPDF is where the converted text PDF goes. Empty derives it from Source.
	OutputPDF string

	// HTTP
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64 // zero reads the whole body

	// PDF / OCR
	MinTextChars  int
	OCRLang       string
	OCRDPI        int
	TesseractPath string
	PdftoppmPath  string

	Verbose bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		OutputBase:   DefaultOutput,
		Format:       DefaultFormat,
		Timeout:      DefaultTimeout,
		MinTextChars: DefaultMinTextChars,
		OCRLang:      DefaultOCRLang,
		OCRDPI:       DefaultOCRDPI,
	}
}
