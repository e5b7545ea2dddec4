package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!doctype html>
<html><body>
  <section id="s1" class="Product-Tile">
    <div class="inner">
      <h3>Gold Card</h3>
      <p><span>Issuer</span> ABC Bank</p>
      <script>var reward = 1;</script>
      <p>Earn <b>2x</b> rewards</p>
    </div>
  </section>
</body></html>`

func parse(t *testing.T, s string) Node {
	t.Helper()
	root, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return root
}

func TestFindDocumentOrder(t *testing.T) {
	root := parse(t, page)
	got := root.Find("b", "h3", "p")
	require.Len(t, got, 4)
	assert.Equal(t, []string{"h3", "p", "p", "b"}, []string{got[0].Tag(), got[1].Tag(), got[2].Tag(), got[3].Tag()})
}

func TestFilterByClass(t *testing.T) {
	root := parse(t, page)
	got := root.Filter(func(n Node) bool {
		return strings.Contains(strings.ToLower(n.Attr("class")), "product")
	})
	require.Len(t, got, 1)
	assert.Equal(t, "section", got[0].Tag())
	assert.Equal(t, "s1", got[0].Attr("id"))
}

func TestStringsSkipScripts(t *testing.T) {
	root := parse(t, page)
	strs := root.Strings()
	assert.Contains(t, strs, "Gold Card")
	assert.Contains(t, strs, "2x")
	for _, s := range strs {
		assert.NotContains(t, s, "var reward")
	}
}

func TestClosestExcludesSelf(t *testing.T) {
	root := parse(t, page)
	inner := root.Find("div")[0]
	anc, ok := inner.Closest("div", "section")
	require.True(t, ok)
	assert.Equal(t, "section", anc.Tag())

	h3 := root.Find("h3")[0]
	anc, ok = h3.Closest("div", "section")
	require.True(t, ok)
	assert.Equal(t, "inner", anc.Attr("class"))
}

func TestParentAndNextSibling(t *testing.T) {
	root := parse(t, page)
	var issuer Node
	for _, tn := range root.TextNodes() {
		if strings.Contains(tn.Text(), "Issuer") {
			issuer = tn
			break
		}
	}
	require.NotNil(t, issuer)
	assert.True(t, issuer.IsText())

	span, ok := issuer.Parent()
	require.True(t, ok)
	assert.Equal(t, "span", span.Tag())

	next, ok := span.NextSibling()
	require.True(t, ok)
	assert.True(t, next.IsText())
	assert.Equal(t, "ABC Bank", strings.TrimSpace(next.Text()))
}

func TestOwnText(t *testing.T) {
	root := parse(t, page)
	p := root.Find("p")[1]
	assert.Equal(t, "Earn  rewards", p.OwnText())
	assert.Equal(t, "Earn 2x rewards", p.Text())
}

func TestParseContentTypeDecodesCharset(t *testing.T) {
	body := "<html><body><h3>Soci\xe9t\xe9 G\xe9n\xe9rale Card</h3></body></html>"
	root, err := ParseContentType(strings.NewReader(body), "text/html; charset=iso-8859-1")
	require.NoError(t, err)
	h := root.Find("h3")
	require.Len(t, h, 1)
	assert.Equal(t, "Société Générale Card", h[0].Text())
}

func TestSoleString(t *testing.T) {
	root := parse(t, `<div>
	  <h2 id="plain">Gold Card</h2>
	  <h2 id="wrapped"><a href="/gold">Gold Credit Card</a></h2>
	  <h2 id="mixed">Compare <a href="/x">credit cards</a></h2>
	  <h2 id="empty"></h2>
	</div>`)
	hs := root.Find("h2")
	require.Len(t, hs, 4)

	s, ok := hs[0].SoleString()
	assert.True(t, ok)
	assert.Equal(t, "Gold Card", s)

	s, ok = hs[1].SoleString()
	assert.True(t, ok)
	assert.Equal(t, "Gold Credit Card", s)

	_, ok = hs[2].SoleString()
	assert.False(t, ok)
	_, ok = hs[3].SoleString()
	assert.False(t, ok)
}
