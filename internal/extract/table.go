package extract

import (
	"strings"

	"github.com/hyperifyio/cardextract/internal/dom"
	"github.com/hyperifyio/cardextract/internal/record"
)

// defaultHeaders is assumed when a table has no usable header row.
var defaultHeaders = []string{
	record.CardName, record.IssuingBank, record.JoiningFee, record.AnnualFee,
	record.Rewards, record.Cashback, record.Offers,
}

// headerRule maps a header label onto a field when it contains any keyword.
type headerRule struct {
	keywords []string
	field    string
}

// headerRules are checked in order; the first hit wins.
var headerRules = []headerRule{
	{[]string{"card", "name"}, record.CardName},
	{[]string{"bank", "issuer"}, record.IssuingBank},
	{[]string{"join"}, record.JoiningFee},
	{[]string{"annual"}, record.AnnualFee},
	{[]string{"reward"}, record.Rewards},
	{[]string{"cash"}, record.Cashback},
	{[]string{"offer", "benefit"}, record.Offers},
}

// HeaderField returns the record field for a lower-cased header label.
// Unrecognized labels are used as field names as-is.
func HeaderField(header string) string {
	for _, hr := range headerRules {
		if containsAny(header, hr.keywords...) {
			return hr.field
		}
	}
	return header
}

// TableRecords maps each data row of a table onto a record. Rows without a
// card name are dropped.
func TableRecords(table dom.Node) []record.Record {
	rows := table.Find("tr")
	var headers []string
	if len(rows) > 0 {
		for _, cell := range rows[0].Find("th", "td") {
			headers = append(headers, strings.ToLower(strings.TrimSpace(cell.Text())))
		}
	}
	data := rows
	if len(headers) == 0 {
		headers = defaultHeaders
	} else {
		data = rows[1:]
	}

	var out []record.Record
	for _, row := range data {
		var r record.Record
		for i, cell := range row.Find("td", "th") {
			if i >= len(headers) {
				break
			}
			r.SetText(HeaderField(headers[i]), strings.TrimSpace(cell.Text()))
		}
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}
