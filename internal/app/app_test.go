package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/cardextract/internal/fetch"
	"github.com/hyperifyio/cardextract/internal/record"
)

const cardTablePage = `<html><body>
<h1>Compare our cards</h1>
<table>
  <tr><th>Card Name</th><th>Issuing Bank</th><th>Annual Fee</th></tr>
  <tr><td>Gold Card</td><td>ABC Bank</td><td>$500</td></tr>
  <tr><td></td><td>ABC Bank</td><td>$100</td></tr>
</table>
</body></html>`

const platinumText = "XYZ Platinum Credit Card\nABC Bank\nAnnual Fee: 500\nNo joining fee, waived\n\nContact us at 1800 000 000\n"

type fakeReader struct {
	text  string
	err   error
	paths []string
}

func (f *fakeReader) ReadText(ctx context.Context, path string) (string, error) {
	f.paths = append(f.paths, path)
	return f.text, f.err
}

type fakeConverter struct {
	text string
	src  string
	dst  string
}

func (f *fakeConverter) Convert(ctx context.Context, src, dst string) (string, error) {
	f.src, f.dst = src, dst
	return f.text, nil
}

type fetcherFunc func(ctx context.Context, url string) (fetch.Page, error)

func (f fetcherFunc) Get(ctx context.Context, url string) (fetch.Page, error) { return f(ctx, url) }

func testConfig(t *testing.T, source string) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Source = source
	cfg.OutputBase = filepath.Join(t.TempDir(), "cards")
	return cfg
}

func newTestApp(t *testing.T, cfg Config, opts ...Option) *App {
	t.Helper()
	a, err := New(cfg, zerolog.Nop(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func readJSON(t *testing.T, path string) []record.Record {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var recs []record.Record
	if err := json.Unmarshal(b, &recs); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return recs
}

func TestRun_Website_WritesAllFormats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(cardTablePage))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL+"/cards")
	if err := newTestApp(t, cfg).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	recs := readJSON(t, cfg.OutputBase+".json")
	if len(recs) != 1 {
		t.Fatalf("expected 1 card, got %d", len(recs))
	}
	if recs[0].Name() != "Gold Card" || recs[0].Text(record.AnnualFee) != "$500" || recs[0].Text(record.IssuingBank) != "ABC Bank" {
		t.Fatalf("unexpected record: %+v", recs[0].Fields())
	}
	for _, ext := range []string{".csv", ".xlsx"} {
		if _, err := os.Stat(cfg.OutputBase + ext); err != nil {
			t.Fatalf("expected %s output: %v", ext, err)
		}
	}
}

func TestRun_PDF_NullFilledRecord(t *testing.T) {
	cfg := testConfig(t, "statement.PDF")
	cfg.Format = "json"
	reader := &fakeReader{text: platinumText}
	if err := newTestApp(t, cfg, WithPDFReader(reader)).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(reader.paths) != 1 || reader.paths[0] != "statement.PDF" {
		t.Fatalf("reader not used as expected: %v", reader.paths)
	}

	recs := readJSON(t, cfg.OutputBase+".json")
	if len(recs) != 1 {
		t.Fatalf("expected 1 card, got %d", len(recs))
	}
	r := recs[0]
	if r.Name() != "XYZ Platinum Credit Card" || r.Text(record.JoiningFee) != "$0" || r.Text(record.AnnualFee) != "$500" {
		t.Fatalf("unexpected record: %+v", r.Fields())
	}
	if v, ok := r.Get(record.Rewards); !ok || !v.IsNull() {
		t.Fatalf("rewards should be present and null")
	}
	if _, err := os.Stat(cfg.OutputBase + ".csv"); !os.IsNotExist(err) {
		t.Fatalf("csv should not be written for format json")
	}
}

func TestExtract_ConvertPDFUsesDerivedPath(t *testing.T) {
	cfg := testConfig(t, "/tmp/scans/card.pdf")
	cfg.ConvertPDF = true
	conv := &fakeConverter{text: platinumText}
	reader := &fakeReader{}

	recs, err := newTestApp(t, cfg, WithPDFConverter(conv), WithPDFReader(reader)).Extract(context.Background(), cfg.Source)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 card, got %d", len(recs))
	}
	if conv.src != "/tmp/scans/card.pdf" || conv.dst != "/tmp/scans/card_text.pdf" {
		t.Fatalf("unexpected converter paths: %q -> %q", conv.src, conv.dst)
	}
	if len(reader.paths) != 0 {
		t.Fatalf("direct reader should be bypassed when converting")
	}

	cfg.OutputPDF = "/out/custom.pdf"
	if _, err := newTestApp(t, cfg, WithPDFConverter(conv)).Extract(context.Background(), cfg.Source); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if conv.dst != "/out/custom.pdf" {
		t.Fatalf("explicit output pdf ignored: %q", conv.dst)
	}
}

func TestRun_UnsupportedSource(t *testing.T) {
	cfg := testConfig(t, "cards.docx")
	err := newTestApp(t, cfg).Run(context.Background())
	if !errors.Is(err, ErrUnsupportedSource) {
		t.Fatalf("expected ErrUnsupportedSource, got %v", err)
	}
	if _, err := os.Stat(cfg.OutputBase + ".json"); !os.IsNotExist(err) {
		t.Fatalf("no output expected on error")
	}
}

func TestRun_FetchErrorWritesNothing(t *testing.T) {
	cfg := testConfig(t, "https://bank.example/cards")
	boom := errors.New("connection refused")
	f := fetcherFunc(func(context.Context, string) (fetch.Page, error) { return fetch.Page{}, boom })
	err := newTestApp(t, cfg, WithFetcher(f)).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	entries, _ := os.ReadDir(filepath.Dir(cfg.OutputBase))
	if len(entries) != 0 {
		t.Fatalf("no output expected on error, found %d files", len(entries))
	}
}

func TestRun_NoCardsWritesNothing(t *testing.T) {
	cfg := testConfig(t, "https://bank.example/about")
	var gotURL string
	f := fetcherFunc(func(_ context.Context, url string) (fetch.Page, error) {
		gotURL = url
		return fetch.Page{URL: url, Body: []byte("<html><body><p>About us</p></body></html>")}, nil
	})
	if err := newTestApp(t, cfg, WithFetcher(f)).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if gotURL != cfg.Source {
		t.Fatalf("fetcher called with %q", gotURL)
	}
	entries, _ := os.ReadDir(filepath.Dir(cfg.OutputBase))
	if len(entries) != 0 {
		t.Fatalf("no output expected without cards, found %d files", len(entries))
	}
}

func TestNew_ValidatesConfig(t *testing.T) {
	cfg := testConfig(t, "cards.pdf")
	cfg.Format = "xml"
	if _, err := New(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected invalid format error")
	}
}

func TestNew_PassesBodyCapToFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(cardTablePage))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.MaxBodyBytes = 64
	a := newTestApp(t, cfg)
	c, ok := a.fetcher.(*fetch.Client)
	if !ok {
		t.Fatalf("unexpected fetcher %T", a.fetcher)
	}
	if c.MaxBodyBytes != 64 {
		t.Fatalf("MaxBodyBytes=%d, want 64", c.MaxBodyBytes)
	}

	// the table never arrives within 64 bytes, so nothing is extracted
	recs, err := a.Extract(context.Background(), cfg.Source)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected truncated page to yield no cards, got %d", len(recs))
	}
}

func TestExtract_DecodesDeclaredCharset(t *testing.T) {
	page := "<table><tr><th>Card Name</th><th>Issuing Bank</th></tr>" +
		"<tr><td>Platinum Card</td><td>Soci\xe9t\xe9 G\xe9n\xe9rale</td></tr></table>"
	f := fetcherFunc(func(_ context.Context, url string) (fetch.Page, error) {
		return fetch.Page{URL: url, ContentType: "text/html; charset=iso-8859-1", Body: []byte(page)}, nil
	})
	cfg := testConfig(t, "https://bank.example/cards")
	recs, err := newTestApp(t, cfg, WithFetcher(f)).Extract(context.Background(), cfg.Source)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(recs) != 1 || recs[0].Text(record.IssuingBank) != "Société Générale" {
		t.Fatalf("unexpected records: %+v", recs)
	}
}
