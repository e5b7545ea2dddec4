package extract

import (
	"regexp"
	"strings"

	"github.com/hyperifyio/cardextract/internal/record"
)

// FreeFee is the normalized value of a zero or waived fee.
const FreeFee = "$0"

// NormalizeFee maps zero amounts to FreeFee and prefixes a dollar sign when
// the amount carries no currency marker.
func NormalizeFee(v string) string {
	v = strings.TrimSpace(v)
	switch v {
	case "0", "$0", "₹0":
		return FreeFee
	}
	if strings.HasPrefix(v, "$") || strings.HasPrefix(v, "₹") {
		return v
	}
	return "$" + v
}

// waivedFee holds the free-fee phrasings per field for lower-cased text.
var waivedFee = map[string]waivedPhrases{
	record.JoiningFee: newWaivedPhrases(record.JoiningFee),
	record.AnnualFee:  newWaivedPhrases(record.AnnualFee),
}

// waivedPhrases matches "<label> free/nil/waived/zero" and "no <label>". The
// "no <label>" form does not count when the label only qualifies a noun, as
// in "no annual fee waiver".
type waivedPhrases struct {
	declared *regexp.Regexp
	absent   *regexp.Regexp
}

func newWaivedPhrases(field string) waivedPhrases {
	label := strings.ReplaceAll(field, "_", sp+`+`)
	return waivedPhrases{
		declared: regexp.MustCompile(`\b` + label + `[\s\p{Z}:,\-]*(?:is` + sp + `+)?(?:free|nil|waived|zero)\b`),
		absent:   regexp.MustCompile(`\bno` + sp + `+` + label + `\b`),
	}
}

var nextWord = regexp.MustCompile(`^[\s\p{Z}]*([\p{L}\p{N}_]+)`)

func (w waivedPhrases) match(lower string) bool {
	if w.declared.MatchString(lower) {
		return true
	}
	for _, loc := range w.absent.FindAllStringIndex(lower, -1) {
		m := nextWord.FindStringSubmatch(lower[loc[1]:])
		if m == nil || !strings.HasPrefix(m[1], "waiver") {
			return true
		}
	}
	return false
}

// feeIsWaived reports whether lower-cased text declares the fee free.
func feeIsWaived(field, lower string) bool {
	w, ok := waivedFee[field]
	return ok && w.match(lower)
}
