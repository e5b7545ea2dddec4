package extract

import "github.com/hyperifyio/cardextract/internal/record"

// RE2's \s and \w are ASCII-only. Page text is full of no-break spaces and
// accented names, so the tables spell out the Unicode classes.
const (
	sp     = `[\s\p{Z}]`
	sep    = `[:\s\p{Z}]*`
	wordSp = `[\p{L}\p{N}_\s\p{Z}]`
	// nameRun is a run of words that never crosses a line break.
	nameRun = `[\p{L}\p{N}_ \t\p{Zs}]+`
)

// Amounts must start with a digit so that punctuation after a label ("fee,")
// is never captured as a value.
const (
	htmlAmount = `([₹$]?\d[\d,]*)`
	pdfAmount  = `([₹$]?\d[\d,]*(?:\.\d+)?)`
	// phrase is the free-text capture used by the descriptive PDF fields.
	phrase = `([\p{L}\p{N}_\s\p{Z}.,%]+)`
)

// label joins the words of a field label with any whitespace run.
func label(words ...string) string {
	out := words[0]
	for _, w := range words[1:] {
		out += sp + `+` + w
	}
	return out
}

// HTML container fee patterns, matched against lower-cased text strings.
var (
	htmlJoiningFee = Compile(
		label("joining", "fee")+sep+htmlAmount,
		`joining`+sep+htmlAmount,
	)
	htmlAnnualFee = Compile(
		label("annual", "fee")+sep+htmlAmount,
		`annual`+sep+htmlAmount,
	)
)

// pdfRelevant selects text blocks that describe a card product. It runs on
// lower-cased text.
var pdfRelevant = NewRule(`(credit card|platinum card|gold card|rewards card|buzz card|travel card)`)

// Card names and issuers do not cross line breaks: OCR output puts the
// product title and the issuer on separate lines.
var pdfCardName = FieldRules{
	Field: record.CardName,
	Rules: Compile(
		`(?i)(`+nameRun+`(?:Credit|Platinum|Gold|Rewards|Cashback|Signature|Infinite|World|Buzz|Travel)[ \t\p{Zs}]+Card)`,
		`(?i)([A-Z][A-Za-z \t]+CARD)`,
		`(?i)(`+nameRun+`Card)`,
	),
}

var pdfIssuingBank = FieldRules{
	Field: record.IssuingBank,
	Rules: Compile(
		`(`+nameRun+`Bank)`,
		`(`+nameRun+`Financial)`,
		`(`+nameRun+`Express)`,
		`(`+nameRun+`Banking)`,
		`(Axis)`,
		`(ICICI)`,
		`(HDFC)`,
		`(SBI)`,
		`(Citi)`,
		`(American Express)`,
	),
}

var pdfFees = []FieldRules{
	{
		Field: record.JoiningFee,
		Rules: Compile(
			label("joining", "fee")+sep+pdfAmount,
			`joining`+sep+pdfAmount,
			`one[ -]?time`+sp+`+fee`+sep+pdfAmount,
			label("enrollment", "fee")+sep+pdfAmount,
		),
		Clean: NormalizeFee,
	},
	{
		Field: record.AnnualFee,
		Rules: Compile(
			label("annual", "fee")+sep+pdfAmount,
			`annual`+sep+pdfAmount,
			label("yearly", "fee")+sep+pdfAmount,
			label("renewal", "fee")+sep+pdfAmount,
		),
		Clean: NormalizeFee,
	},
}

var pdfRewards = FieldRules{
	Field: record.Rewards,
	Rules: Compile(
		`rewards?`+sep+phrase,
		label("reward", "points")+sep+phrase,
		`points`+sep+phrase,
		`(\d+[xX]`+wordSp+`+(?:on|for)`+wordSp+`+)`,
		`earn`+wordSp+`+(\d+%|\d+[xX]`+wordSp+`+)`,
		`miles`+sep+phrase,
	),
	Clean: collapseSpace,
}

var pdfCashback = FieldRules{
	Field: record.Cashback,
	Rules: Compile(
		`cashback`+sep+phrase,
		label("cash", "back")+sep+phrase,
		`(\d+%`+sp+`*cash`+sp+`*back)`,
		`(cash`+sp+`*back`+sp+`*of`+sp+`*\d+%)`,
		`(earn`+sp+`*\d+%`+sp+`*cash)`,
	),
	Clean: collapseSpace,
}

var pdfOffers = FieldRules{
	Field: record.Offers,
	Rules: Compile(
		`offers?`+sep+phrase,
		`benefits?`+sep+phrase,
		`welcome`+sp+`*offers?`+sep+phrase,
		`bonus`+sep+phrase,
		`complimentary`+sep+phrase,
		`free`+sep+`([\p{L}\p{N}_\s\p{Z}.,%]+access)`,
		`([\d,]+ bonus points after spending)`,
		`([\d,]+ welcome points)`,
		`(free `+wordSp+`+)`,
	),
	Clean: collapseSpace,
}

// pdfExtras are single-rule supplementary fields.
var pdfExtras = []FieldRules{
	{Field: record.TravelBenefits, Rules: Compile(`travel` + sep + phrase)},
	{Field: record.Insurance, Rules: Compile(`insurance` + sep + phrase)},
	{Field: record.LoungeAccess, Rules: Compile(`lounge` + sep + phrase)},
	{Field: record.ForeignTransactionFee, Rules: Compile(label("foreign", "transaction", "fee") + sep + `([₹$]?[\d.,]+%?)`)},
}

// pdfNullFilled fields are always present on PDF records.
var pdfNullFilled = []string{record.Rewards, record.Cashback, record.Offers, record.JoiningFee, record.AnnualFee}
