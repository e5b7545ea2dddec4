package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix namespaces every environment variable the tool reads.
const EnvPrefix = "CARDEXTRACT_"

// ApplyEnvOverrides forcefully overrides cfg fields with environment variables
// when the corresponding env vars are set. This lets env take precedence over
// values coming from a config file while flags remain highest precedence.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}
	env := func(key string) string { return strings.TrimSpace(os.Getenv(EnvPrefix + key)) }

	if v := env("OUTPUT"); v != "" {
		cfg.OutputBase = v
	}
	if v := env("FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := env("OUTPUT_PDF"); v != "" {
		cfg.OutputPDF = v
	}
	if v := env("USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := env("TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := env("MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			cfg.MaxBodyBytes = n
		}
	}
	if v := env("MIN_TEXT_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MinTextChars = n
		}
	}
	if v := env("OCR_LANG"); v != "" {
		cfg.OCRLang = v
	}
	if v := env("OCR_DPI"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.OCRDPI = n
		}
	}
	if v := env("TESSERACT"); v != "" {
		cfg.TesseractPath = v
	}
	if v := env("PDFTOPPM"); v != "" {
		cfg.PdftoppmPath = v
	}

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, key string) {
		switch strings.ToLower(env(key)) {
		case "1", "true", "yes", "on":
			*dst = true
		case "0", "false", "no", "off":
			*dst = false
		}
	}
	setBool(&cfg.ConvertPDF, "CONVERT_PDF")
	setBool(&cfg.Verbose, "VERBOSE")
}
