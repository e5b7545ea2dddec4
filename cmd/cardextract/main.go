package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/hyperifyio/cardextract/internal/app"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			os.Exit(1)
		}
	}
}

// options are the values only the command line can set.
type options struct {
	configPath  string
	envFile     string
	showVersion bool
}

func newFlagSet(cfg *app.Config, opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("cardextract", pflag.ContinueOnError)
	fs.StringVarP(&cfg.OutputBase, "output", "o", app.DefaultOutput, "Output file base name; the extension is added per format")
	fs.StringVarP(&cfg.Format, "format", "f", app.DefaultFormat, "Output format: json, csv, excel or all")
	fs.BoolVar(&cfg.ConvertPDF, "convert-pdf", false, "OCR the PDF first and extract from the recognized text")
	fs.StringVar(&cfg.OutputPDF, "output-pdf", "", "Path for the converted text PDF (default: <source>_text.pdf)")
	fs.DurationVar(&cfg.Timeout, "timeout", app.DefaultTimeout, "HTTP request timeout")
	fs.StringVar(&cfg.UserAgent, "user-agent", "", "User-Agent header for page fetches (default: desktop browser)")
	fs.Int64Var(&cfg.MaxBodyBytes, "max-body-bytes", 0, "Maximum page body bytes to read (0 = unlimited)")
	fs.IntVar(&cfg.MinTextChars, "min-text-chars", app.DefaultMinTextChars, "PDFs with less direct text than this are OCRed")
	fs.StringVar(&cfg.OCRLang, "ocr.lang", app.DefaultOCRLang, "Tesseract language")
	fs.IntVar(&cfg.OCRDPI, "ocr.dpi", app.DefaultOCRDPI, "Rasterization resolution for OCR")
	fs.StringVar(&cfg.TesseractPath, "tesseract", "", "Path to the tesseract binary")
	fs.StringVar(&cfg.PdftoppmPath, "pdftoppm", "", "Path to the pdftoppm binary")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose logging")
	fs.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML or JSON config file")
	fs.StringVar(&opts.envFile, "env-file", ".env", "Dotenv file loaded before reading CARDEXTRACT_* variables")
	fs.BoolVar(&opts.showVersion, "version", false, "Print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: cardextract [flags] <url|file.pdf>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	return fs
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

// resolveConfig layers defaults, config file, environment and explicitly
// set flags, in increasing precedence.
func resolveConfig(fs *pflag.FlagSet, flags app.Config, opts options) (app.Config, error) {
	if err := app.LoadEnvFiles(opts.envFile); err != nil {
		return app.Config{}, fmt.Errorf("load env file: %w", err)
	}
	cfg := app.DefaultConfig()
	if opts.configPath != "" {
		fc, err := app.LoadConfigFile(opts.configPath)
		if err != nil {
			return app.Config{}, fmt.Errorf("load config %s: %w", opts.configPath, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("output", func() { cfg.OutputBase = flags.OutputBase })
	set("format", func() { cfg.Format = flags.Format })
	set("convert-pdf", func() { cfg.ConvertPDF = flags.ConvertPDF })
	set("output-pdf", func() { cfg.OutputPDF = flags.OutputPDF })
	set("timeout", func() { cfg.Timeout = flags.Timeout })
	set("user-agent", func() { cfg.UserAgent = flags.UserAgent })
	set("max-body-bytes", func() { cfg.MaxBodyBytes = flags.MaxBodyBytes })
	set("min-text-chars", func() { cfg.MinTextChars = flags.MinTextChars })
	set("ocr.lang", func() { cfg.OCRLang = flags.OCRLang })
	set("ocr.dpi", func() { cfg.OCRDPI = flags.OCRDPI })
	set("tesseract", func() { cfg.TesseractPath = flags.TesseractPath })
	set("pdftoppm", func() { cfg.PdftoppmPath = flags.PdftoppmPath })
	set("verbose", func() { cfg.Verbose = flags.Verbose })

	cfg.Source = fs.Arg(0)
	return cfg, nil
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	var (
		flags app.Config
		opts  options
	)
	fs := newFlagSet(&flags, &opts)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.showVersion {
		fmt.Fprintf(stderr, "cardextract %s (%s, %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		return nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one source argument")
	}

	cfg, err := resolveConfig(fs, flags, opts)
	log := newLogger(stderr, flags.Verbose)
	if err != nil {
		log.Error().Err(err).Msg("configuration failed")
		return err
	}
	log = newLogger(stderr, cfg.Verbose)

	a, err := app.New(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return err
	}
	if err := a.Run(ctx); err != nil {
		log.Error().Err(err).Msg("run failed")
		return err
	}
	return nil
}
