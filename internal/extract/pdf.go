package extract

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/cardextract/internal/record"
)

// sampleChars is how much of the document text is logged before extraction.
const sampleChars = 200

var blankLines = regexp.MustCompile(`\n[\s\p{Z}]*\n+`)

// Sections splits document text into blocks separated by blank lines.
func Sections(text string) []string {
	return blankLines.Split(text, -1)
}

// Relevant reports whether a block mentions a card product.
func Relevant(section string) bool {
	_, ok := pdfRelevant.Match(strings.ToLower(section))
	return ok
}

// PDFExtractor finds card records in the plain text of a PDF. Every record
// carries the same core fields, holding the null marker when not found.
// Blocks are assumed to be disjoint, so records are not deduplicated.
type PDFExtractor struct {
	Log zerolog.Logger
}

// Extract returns one record per relevant block that yields a card name.
func (e PDFExtractor) Extract(text string) []record.Record {
	e.Log.Info().Str("sample", sample(text, sampleChars)).Msg("extracted text sample")

	var set record.Set
	sections := Sections(text)
	relevant := 0
	for _, s := range sections {
		if !Relevant(s) {
			continue
		}
		relevant++
		if r, ok := SectionRecord(s); ok {
			set.Append(r)
		}
	}
	e.Log.Debug().Int("sections", len(sections)).Int("relevant", relevant).Int("records", set.Len()).Msg("pdf sections done")
	return set.Records()
}

// SectionRecord extracts a card from one text block. It returns false when
// no card name is found.
func SectionRecord(section string) (record.Record, bool) {
	var r record.Record
	lower := strings.ToLower(section)

	if v, ok := pdfCardName.Apply(section); ok {
		r.SetText(record.CardName, v)
	}
	if v, ok := pdfIssuingBank.Apply(section); ok {
		r.SetText(record.IssuingBank, v)
	}

	for _, fee := range pdfFees {
		if v, ok := fee.Apply(lower); ok {
			r.SetText(fee.Field, v)
			continue
		}
		if feeIsWaived(fee.Field, lower) {
			r.SetText(fee.Field, FreeFee)
		}
	}

	for _, f := range []FieldRules{pdfRewards, pdfCashback, pdfOffers} {
		if v, ok := f.Apply(lower); ok {
			r.SetText(f.Field, v)
		}
	}
	for _, f := range pdfExtras {
		if v, ok := f.Apply(lower); ok {
			r.SetText(f.Field, v)
		}
	}

	r.SetNullIfAbsent(pdfNullFilled...)
	return r, r.Valid()
}

func sample(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
