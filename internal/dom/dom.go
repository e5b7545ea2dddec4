// Package dom exposes the small set of DOM capabilities the card extractors
// need, so extraction logic does not depend on a particular HTML library.
package dom

// Node is an element or text node in a parsed document.
type Node interface {
	// Tag returns the lower-case element name, or "" for text and document nodes.
	Tag() string
	// IsText reports whether the node is a text node.
	IsText() bool
	// Text returns all descendant text concatenated, as rendered in source.
	Text() string
	// OwnText returns the concatenated text of direct text children only.
	OwnText() string
	// SoleString returns the text of a node whose only child is a text node,
	// descending through elements that have exactly one child. It reports
	// false for nodes with mixed or multiple children.
	SoleString() (string, bool)
	// Attr returns the attribute value, or "" if the attribute is missing.
	Attr(name string) string

	// Find returns descendant elements with any of the given tags, in
	// document order.
	Find(tags ...string) []Node
	// Filter returns descendant elements for which keep returns true, in
	// document order.
	Filter(keep func(Node) bool) []Node
	// TextNodes returns descendant text nodes in document order, skipping
	// script and style content.
	TextNodes() []Node
	// Strings returns the trimmed, non-empty text of TextNodes.
	Strings() []string

	// Parent returns the parent element.
	Parent() (Node, bool)
	// Closest returns the nearest ancestor element (excluding the node
	// itself) with any of the given tags.
	Closest(tags ...string) (Node, bool)
	// NextSibling returns the next sibling that is an element or a text node
	// with visible content.
	NextSibling() (Node, bool)
}
