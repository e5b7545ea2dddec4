package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/cardextract/internal/record"
)

// Writer saves records next to a base path, one file per format.
type Writer struct {
	Base string
	Log  zerolog.Logger
}

// Path is the artifact path for a concrete format.
func (w Writer) Path(f Format) string { return w.Base + f.Ext() }

// Write saves recs in every format f expands to and returns the paths
// written. Nothing is written for an empty record list.
func (w Writer) Write(recs []record.Record, f Format) ([]string, error) {
	if len(recs) == 0 {
		w.Log.Warn().Msg("no cards found; nothing written")
		return nil, nil
	}
	var paths []string
	for _, ff := range f.Expand() {
		enc, err := encoderFor(ff)
		if err != nil {
			return paths, err
		}
		p := w.Path(ff)
		if err := writeFile(p, func(out io.Writer) error { return enc(out, recs) }); err != nil {
			return paths, err
		}
		w.Log.Info().Str("path", p).Int("cards", len(recs)).Msgf("saved %d cards to %s", len(recs), p)
		paths = append(paths, p)
	}
	return paths, nil
}

func encoderFor(f Format) (func(io.Writer, []record.Record) error, error) {
	switch f {
	case JSON:
		return WriteJSON, nil
	case CSV:
		return WriteCSV, nil
	case Excel:
		return WriteXLSX, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

func writeFile(path string, fn func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
