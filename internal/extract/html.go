package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/cardextract/internal/dom"
	"github.com/hyperifyio/cardextract/internal/record"
)

var (
	containerTags = []string{"div", "section"}
	headingTags   = []string{"h1", "h2", "h3", "h4", "h5"}
	nameTags      = []string{"h1", "h2", "h3", "h4", "h5", "strong", "b"}
	fallbackTags  = []string{"div", "p", "section"}
	bankKeywords  = []string{"bank", "issuer", "issuing bank"}
)

// maxLooseNameLen bounds a card name taken from free text.
const maxLooseNameLen = 100

// HTMLExtractor finds card records in a marketing page. Records found by more
// than one strategy are kept once.
type HTMLExtractor struct {
	Log zerolog.Logger
}

// Extract runs the container, heading and table strategies over root, and the
// keyword fallback when none of them produced a record. domain is logged
// only; every site shares the same strategies.
func (e HTMLExtractor) Extract(root dom.Node, domain string) []record.Record {
	var set record.Set

	containers := root.Filter(isCardContainer)
	for _, c := range containers {
		if r, ok := ContainerRecord(c); ok {
			set.Add(r)
		}
	}

	headings := root.Filter(isCardHeading)
	for _, h := range headings {
		parent, ok := h.Closest(containerTags...)
		if !ok {
			continue
		}
		if r, ok := ContainerRecord(parent); ok {
			set.Add(r)
		}
	}

	tables := root.Find("table")
	for _, t := range tables {
		for _, r := range TableRecords(t) {
			set.Add(r)
		}
	}

	e.Log.Debug().
		Str("domain", domain).
		Int("containers", len(containers)).
		Int("headings", len(headings)).
		Int("tables", len(tables)).
		Int("records", set.Len()).
		Msg("html strategies done")

	if set.Len() == 0 {
		blocks := root.Filter(isFeatureBlock)
		for _, b := range blocks {
			parent, ok := b.Closest(containerTags...)
			if !ok {
				continue
			}
			if r, ok := ContainerRecord(parent); ok {
				set.Add(r)
			}
		}
		e.Log.Debug().Str("domain", domain).Int("blocks", len(blocks)).Int("records", set.Len()).Msg("html fallback done")
	}
	return set.Records()
}

func hasTag(n dom.Node, tags []string) bool {
	t := n.Tag()
	for _, want := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func isCardContainer(n dom.Node) bool {
	if !hasTag(n, containerTags) {
		return false
	}
	class := strings.ToLower(n.Attr("class"))
	return containsAny(class, "card", "product")
}

func isCardHeading(n dom.Node) bool {
	if !hasTag(n, headingTags) {
		return false
	}
	s, ok := n.SoleString()
	return ok && containsAny(strings.ToLower(s), "card", "credit")
}

func isFeatureBlock(n dom.Node) bool {
	if !hasTag(n, fallbackTags) {
		return false
	}
	return containsAny(strings.ToLower(n.OwnText()), "annual fee", "reward", "cashback")
}

// ContainerRecord extracts a single card from a container element. It
// returns false when no card name can be found.
func ContainerRecord(c dom.Node) (record.Record, bool) {
	var r record.Record

	name := ""
	if tags := c.Find(nameTags...); len(tags) > 0 {
		name = strings.TrimSpace(tags[0].Text())
	}
	if name == "" {
		for _, s := range c.Strings() {
			if strings.Contains(strings.ToLower(s), "card") && utf8.RuneCountInString(s) < maxLooseNameLen {
				name = s
				break
			}
		}
	}
	if name == "" {
		return r, false
	}
	r.SetText(record.CardName, name)

	texts := c.TextNodes()
	for _, kw := range bankKeywords {
		if bank, ok := siblingAfterKeyword(texts, kw); ok {
			r.SetText(record.IssuingBank, bank)
			break
		}
	}

	strs := c.Strings()
	lowered := make([]string, len(strs))
	for i, s := range strs {
		lowered[i] = strings.ToLower(s)
	}
	if v, ok := htmlJoiningFee.FirstMatchIn(lowered); ok {
		r.SetText(record.JoiningFee, v)
	}
	if v, ok := htmlAnnualFee.FirstMatchIn(lowered); ok {
		r.SetText(record.AnnualFee, v)
	}

	for _, f := range []struct{ field, keyword string }{
		{record.Rewards, "reward"},
		{record.Cashback, "cashback"},
		{record.Offers, "offer"},
	} {
		if v, ok := parentTextOf(texts, f.keyword); ok {
			r.SetText(f.field, v)
		}
	}
	return r, true
}

// firstTextWith returns the first text node whose content contains keyword,
// case-insensitively.
func firstTextWith(texts []dom.Node, keyword string) (dom.Node, bool) {
	for _, t := range texts {
		if strings.Contains(strings.ToLower(t.Text()), keyword) {
			return t, true
		}
	}
	return nil, false
}

// siblingAfterKeyword returns the text following the element that holds the
// keyword, e.g. "<b>Issuer:</b> ABC Bank".
func siblingAfterKeyword(texts []dom.Node, keyword string) (string, bool) {
	t, ok := firstTextWith(texts, keyword)
	if !ok {
		return "", false
	}
	parent, ok := t.Parent()
	if !ok {
		return "", false
	}
	next, ok := parent.NextSibling()
	if !ok {
		return "", false
	}
	v := strings.TrimSpace(next.Text())
	return v, v != ""
}

// parentTextOf joins the stripped strings of the element holding keyword.
func parentTextOf(texts []dom.Node, keyword string) (string, bool) {
	t, ok := firstTextWith(texts, keyword)
	if !ok {
		return "", false
	}
	parent, ok := t.Parent()
	if !ok {
		return "", false
	}
	v := strings.TrimSpace(strings.Join(parent.Strings(), " "))
	return v, v != ""
}
