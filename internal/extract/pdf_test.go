package extract

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/cardextract/internal/record"
)

const platinumBlock = "XYZ Platinum Credit Card\nABC Bank\nAnnual Fee: 500\nNo joining fee, waived"

func TestSectionRecord_PlatinumScenario(t *testing.T) {
	r, ok := SectionRecord(platinumBlock)
	require.True(t, ok)

	assert.Equal(t, "XYZ Platinum Credit Card", r.Name())
	assert.Equal(t, "ABC Bank", r.Text(record.IssuingBank))
	assert.Equal(t, "$500", r.Text(record.AnnualFee))
	assert.Equal(t, "$0", r.Text(record.JoiningFee))

	for _, f := range []string{record.Rewards, record.Cashback, record.Offers} {
		v, present := r.Get(f)
		require.True(t, present, f)
		assert.True(t, v.IsNull(), f)
	}
	assert.Equal(t, []string{
		record.CardName, record.IssuingBank, record.JoiningFee, record.AnnualFee,
		record.Rewards, record.Cashback, record.Offers,
	}, r.Names())
}

func TestSectionRecord_DescriptiveFields(t *testing.T) {
	block := "Acme Travel Card\n" +
		"Issued by Acme Financial\n" +
		"Joining fee: ₹1,000\n" +
		"Renewal fee: 0\n" +
		"Lounge: 8 free visits per year;\n" +
		"Foreign transaction fee: 3.5%;\n" +
		"Rewards: 5x   points on\nflights"

	r, ok := SectionRecord(block)
	require.True(t, ok)
	assert.Equal(t, "Acme Travel Card", r.Name())
	assert.Equal(t, "Issued by Acme Financial", r.Text(record.IssuingBank))
	assert.Equal(t, "₹1,000", r.Text(record.JoiningFee))
	assert.Equal(t, "$0", r.Text(record.AnnualFee))
	assert.Equal(t, "5x points on flights", r.Text(record.Rewards))
	assert.Equal(t, "free visits per year", r.Text(record.Offers))
	assert.Equal(t, "8 free visits per year", r.Text(record.LoungeAccess))
	assert.Equal(t, "3.5%", r.Text(record.ForeignTransactionFee))

	cb, present := r.Get(record.Cashback)
	require.True(t, present)
	assert.True(t, cb.IsNull())
	assert.False(t, r.Has(record.Insurance))
}

func TestSectionRecord_CashbackPatterns(t *testing.T) {
	cases := []struct {
		block string
		want  string
	}{
		{"Everyday Rewards Card\ncashback: 1.5% on all spends;", "1.5% on all spends"},
		{"Everyday Gold Card\nget 5% cash back at grocers;", "at grocers"},
		{"Everyday Gold Card\nget 5% cash back;", "5% cash back"},
		{"Everyday Gold Card\nunlimited cash\nback of 2% everywhere", "cash back of 2%"},
	}
	for _, tc := range cases {
		r, ok := SectionRecord(tc.block)
		require.True(t, ok, tc.block)
		assert.Equal(t, tc.want, r.Text(record.Cashback), tc.block)
	}
}

func TestSectionRecord_KnownIssuerFallback(t *testing.T) {
	r, ok := SectionRecord("MY ZONE CREDIT CARD from Axis;")
	require.True(t, ok)
	assert.Equal(t, "MY ZONE CREDIT CARD", r.Name())
	assert.Equal(t, "Axis", r.Text(record.IssuingBank))
}

func TestRelevant(t *testing.T) {
	assert.True(t, Relevant("The BUZZ CARD is here"))
	assert.True(t, Relevant("our platinum card"))
	assert.False(t, Relevant("Debit card terms\nAnnual fee: 500"))
	assert.False(t, Relevant("Rewards programme overview"))
}

func TestPDFExtractor_SkipsIrrelevantBlocks(t *testing.T) {
	text := "Terms and conditions apply.\nAnnual fee: 500 for the Standard Card\n\n\n" +
		"Contact us at 1800 000 000"
	recs := PDFExtractor{Log: zerolog.Nop()}.Extract(text)
	assert.Empty(t, recs)
}

func TestPDFExtractor_DoesNotDedup(t *testing.T) {
	text := platinumBlock + "\n\n  \n" + platinumBlock
	recs := PDFExtractor{Log: zerolog.Nop()}.Extract(text)
	require.Len(t, recs, 2)
	assert.True(t, recs[0].Equal(recs[1]))
}

func TestSections(t *testing.T) {
	got := Sections("a\nb\n\nc\n \t\n\nd")
	assert.Equal(t, []string{"a\nb", "c", "d"}, got)
}

func TestSectionRecord_AccentedNamesAndNoBreakSpaces(t *testing.T) {
	block := "Société Générale Platinum Card\nSociété Générale Bank\nAnnual fee: 1,200\nNo joining fee waiver"

	r, ok := SectionRecord(block)
	require.True(t, ok)
	assert.Equal(t, "Société Générale Platinum Card", r.Name())
	assert.Equal(t, "Société Générale Bank", r.Text(record.IssuingBank))
	assert.Equal(t, "$1,200", r.Text(record.AnnualFee))

	jf, present := r.Get(record.JoiningFee)
	require.True(t, present)
	assert.True(t, jf.IsNull(), "a fee waiver programme does not make the fee free")
}
