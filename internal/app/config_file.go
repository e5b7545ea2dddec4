package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/cardextract/internal/output"
)

// FileConfig represents the single-file configuration schema.
// Nested sections map naturally to the dotted flag names.
type FileConfig struct {
	Output     string `yaml:"output" json:"output"`
	Format     string `yaml:"format" json:"format"`
	ConvertPDF *bool  `yaml:"convertPDF" json:"convertPDF"`
	OutputPDF  string `yaml:"outputPDF" json:"outputPDF"`
	Verbose    bool   `yaml:"verbose" json:"verbose"`

	HTTP struct {
		Timeout      time.Duration `yaml:"timeout" json:"timeout"`
		UserAgent    string        `yaml:"userAgent" json:"userAgent"`
		MaxBodyBytes int64         `yaml:"maxBodyBytes" json:"maxBodyBytes"`
	} `yaml:"http" json:"http"`

	PDF struct {
		MinTextChars int `yaml:"minTextChars" json:"minTextChars"`
	} `yaml:"pdf" json:"pdf"`

	OCR struct {
		Lang      string `yaml:"lang" json:"lang"`
		DPI       int    `yaml:"dpi" json:"dpi"`
		Tesseract string `yaml:"tesseract" json:"tesseract"`
		Pdftoppm  string `yaml:"pdftoppm" json:"pdftoppm"`
	} `yaml:"ocr" json:"ocr"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays every value set in fc onto cfg. It runs before
// env and flag overrides, so anything it sets can still be replaced.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if fc.Output != "" {
		cfg.OutputBase = fc.Output
	}
	if fc.Format != "" {
		cfg.Format = fc.Format
	}
	if fc.ConvertPDF != nil {
		cfg.ConvertPDF = *fc.ConvertPDF
	}
	if fc.OutputPDF != "" {
		cfg.OutputPDF = fc.OutputPDF
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
	if fc.HTTP.Timeout > 0 {
		cfg.Timeout = fc.HTTP.Timeout
	}
	if fc.HTTP.UserAgent != "" {
		cfg.UserAgent = fc.HTTP.UserAgent
	}
	if fc.HTTP.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = fc.HTTP.MaxBodyBytes
	}
	if fc.PDF.MinTextChars > 0 {
		cfg.MinTextChars = fc.PDF.MinTextChars
	}
	if fc.OCR.Lang != "" {
		cfg.OCRLang = fc.OCR.Lang
	}
	if fc.OCR.DPI > 0 {
		cfg.OCRDPI = fc.OCR.DPI
	}
	if fc.OCR.Tesseract != "" {
		cfg.TesseractPath = fc.OCR.Tesseract
	}
	if fc.OCR.Pdftoppm != "" {
		cfg.PdftoppmPath = fc.OCR.Pdftoppm
	}
}

// ValidateConfig performs minimal validation for required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Source) == "" {
		return errors.New("config: source is required")
	}
	if strings.TrimSpace(cfg.OutputBase) == "" {
		return errors.New("config: output path is required")
	}
	if _, err := output.ParseFormat(cfg.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.MinTextChars < 0 || cfg.OCRDPI < 0 || cfg.Timeout < 0 || cfg.MaxBodyBytes < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	return nil
}
