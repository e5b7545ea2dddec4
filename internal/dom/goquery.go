package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Parse reads an HTML document and returns its root node.
func Parse(r io.Reader) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return selNode{sel: doc.Selection}, nil
}

// ParseContentType decodes r to UTF-8 using the charset declared in
// contentType, a <meta> tag or a BOM, then parses it.
func ParseContentType(r io.Reader, contentType string) (Node, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("decode html: %w", err)
	}
	return Parse(utf8Reader)
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(b []byte) (Node, error) {
	return Parse(bytes.NewReader(b))
}

// selNode wraps a goquery selection holding exactly one node.
type selNode struct {
	sel *goquery.Selection
}

func (n selNode) node() *html.Node { return n.sel.Nodes[0] }

func (n selNode) Tag() string {
	if n.node().Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.node().Data)
}

func (n selNode) IsText() bool { return n.node().Type == html.TextNode }

func (n selNode) Text() string { return n.sel.Text() }

func (n selNode) OwnText() string {
	var b strings.Builder
	for c := n.node().FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func (n selNode) SoleString() (string, bool) {
	c := n.node()
	for c.Type == html.ElementNode || c.Type == html.DocumentNode {
		if c.FirstChild == nil || c.FirstChild != c.LastChild {
			return "", false
		}
		c = c.FirstChild
	}
	if c.Type != html.TextNode {
		return "", false
	}
	return c.Data, true
}

func (n selNode) Attr(name string) string {
	v, _ := n.sel.Attr(name)
	return v
}

func (n selNode) Find(tags ...string) []Node {
	if len(tags) == 0 || n.IsText() {
		return nil
	}
	return wrapAll(n.sel.Find(strings.Join(tags, ", ")))
}

func (n selNode) Filter(keep func(Node) bool) []Node {
	if n.IsText() {
		return nil
	}
	return wrapAll(n.sel.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return keep(selNode{sel: s})
	}))
}

func (n selNode) TextNodes() []Node {
	var out []Node
	var walk func(s *goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			switch c.Nodes[0].Type {
			case html.TextNode:
				out = append(out, selNode{sel: c})
			case html.ElementNode:
				switch strings.ToLower(c.Nodes[0].Data) {
				case "script", "style", "noscript":
					return
				}
				walk(c)
			}
		})
	}
	if n.IsText() {
		return []Node{n}
	}
	walk(n.sel)
	return out
}

func (n selNode) Strings() []string {
	var out []string
	for _, t := range n.TextNodes() {
		if s := strings.TrimSpace(t.Text()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (n selNode) Parent() (Node, bool) {
	p := n.sel.Parent()
	if p.Length() == 0 {
		return nil, false
	}
	return selNode{sel: p.First()}, true
}

func (n selNode) Closest(tags ...string) (Node, bool) {
	if len(tags) == 0 {
		return nil, false
	}
	c := n.sel.Parent().Closest(strings.Join(tags, ", "))
	if c.Length() == 0 {
		return nil, false
	}
	return selNode{sel: c.First()}, true
}

func (n selNode) NextSibling() (Node, bool) {
	var next *html.Node
	for c := n.node().NextSibling; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			next = c
			break
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			next = c
			break
		}
	}
	if next == nil {
		return nil, false
	}
	s := n.sel.Parent().Contents().FilterNodes(next)
	if s.Length() == 0 {
		// top-level nodes have no element parent to select through
		s = goquery.NewDocumentFromNode(next).Selection
	}
	return selNode{sel: s}, true
}

func wrapAll(s *goquery.Selection) []Node {
	out := make([]Node, 0, s.Length())
	s.Each(func(_ int, c *goquery.Selection) {
		out = append(out, selNode{sel: c})
	})
	return out
}
