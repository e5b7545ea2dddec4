package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"
)

// PageRasterizer renders a single page to an image file inside dir and
// returns the image path.
type PageRasterizer interface {
	RasterizePage(ctx context.Context, pdfPath string, page int, dir string) (string, error)
}

// Recognizer returns the text recognized in an image file.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// OCR rasterizes every page and recognizes them one after another.
type OCR struct {
	// Pages returns the page count; PageCount is used when nil.
	Pages      func(path string) (int, error)
	Rasterizer PageRasterizer
	Recognizer Recognizer
	Log        zerolog.Logger
}

// ExtractText returns the recognized text of all pages, each followed by a
// blank line so pages never merge into one block.
func (o OCR) ExtractText(ctx context.Context, path string) (string, error) {
	if o.Rasterizer == nil || o.Recognizer == nil {
		return "", errors.New("ocr: rasterizer and recognizer are required")
	}
	pages := o.Pages
	if pages == nil {
		pages = PageCount
	}
	n, err := pages(path)
	if err != nil {
		return "", fmt.Errorf("count pages: %w", err)
	}

	dir, err := os.MkdirTemp("", "cardextract-ocr-")
	if err != nil {
		return "", fmt.Errorf("ocr temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	o.Log.Info().Str("pdf", path).Int("pages", n).Msg("converting pdf pages to images")
	var b strings.Builder
	for i := 1; i <= n; i++ {
		o.Log.Info().Msgf("processing page %d/%d", i, n)
		img, err := o.Rasterizer.RasterizePage(ctx, path, i, dir)
		if err != nil {
			return "", fmt.Errorf("rasterize page %d: %w", i, err)
		}
		text, err := o.Recognizer.Recognize(ctx, img)
		if err != nil {
			return "", fmt.Errorf("recognize page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

// PageCount reads the page count with pdfcpu in relaxed validation mode.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.PageCount(f, conf)
}

// Pdftoppm rasterizes pages with poppler's pdftoppm.
type Pdftoppm struct {
	Path string
	DPI  int
}

func (p Pdftoppm) RasterizePage(ctx context.Context, pdfPath string, page int, dir string) (string, error) {
	bin := p.Path
	if bin == "" {
		bin = "pdftoppm"
	}
	dpi := p.DPI
	if dpi <= 0 {
		dpi = 300
	}
	prefix := filepath.Join(dir, "page-"+strconv.Itoa(page))
	pg := strconv.Itoa(page)
	args := []string{"-f", pg, "-l", pg, "-r", strconv.Itoa(dpi), "-png", "-singlefile", pdfPath, prefix}
	if _, err := run(ctx, bin, args...); err != nil {
		return "", err
	}
	return prefix + ".png", nil
}

// Tesseract recognizes text with the tesseract CLI.
type Tesseract struct {
	Path string
	Lang string
}

func (t Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	bin := t.Path
	if bin == "" {
		bin = "tesseract"
	}
	args := []string{imagePath, "stdout"}
	if t.Lang != "" {
		args = append(args, "-l", t.Lang)
	}
	out, err := run(ctx, bin, args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func run(ctx context.Context, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", filepath.Base(bin), err, msg)
		}
		return nil, fmt.Errorf("%s: %w", filepath.Base(bin), err)
	}
	return out, nil
}
