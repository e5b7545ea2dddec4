package extract

import (
	"regexp"
	"strings"
)

// Rule is one entry in a field's ordered pattern list. The first capture
// group is the extracted value.
type Rule struct {
	re *regexp.Regexp
}

// NewRule compiles pattern into a Rule. It panics on invalid patterns; rule
// tables are package-level literals.
func NewRule(pattern string) Rule {
	return Rule{re: regexp.MustCompile(pattern)}
}

// Match returns the trimmed first capture group of the leftmost match.
func (r Rule) Match(s string) (string, bool) {
	m := r.re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	if len(m) < 2 {
		return strings.TrimSpace(m[0]), true
	}
	return strings.TrimSpace(m[1]), true
}

// String returns the source pattern.
func (r Rule) String() string { return r.re.String() }

// Rules is an ordered pattern list for a single field: the first rule that
// matches wins and later rules are not tried.
type Rules []Rule

// Compile builds Rules from patterns, keeping their order.
func Compile(patterns ...string) Rules {
	out := make(Rules, len(patterns))
	for i, p := range patterns {
		out[i] = NewRule(p)
	}
	return out
}

// FirstMatch evaluates the rules in order against s.
func (rs Rules) FirstMatch(s string) (string, bool) {
	for _, r := range rs {
		if v, ok := r.Match(s); ok {
			return v, true
		}
	}
	return "", false
}

// FirstMatchIn evaluates the rules in order, trying each rule against every
// text before moving on to the next rule.
func (rs Rules) FirstMatchIn(texts []string) (string, bool) {
	for _, r := range rs {
		for _, t := range texts {
			if v, ok := r.Match(t); ok {
				return v, true
			}
		}
	}
	return "", false
}

// FieldRules binds an output field to its ordered rules and an optional
// cleanup applied to the matched value.
type FieldRules struct {
	Field string
	Rules Rules
	Clean func(string) string
}

// Apply returns the cleaned first match for the field.
func (f FieldRules) Apply(s string) (string, bool) {
	v, ok := f.Rules.FirstMatch(s)
	if !ok {
		return "", false
	}
	if f.Clean != nil {
		v = f.Clean(v)
	}
	return v, true
}

var spaceRun = regexp.MustCompile(`[\s\p{Z}]+`)

// collapseSpace trims s and folds every whitespace run, newlines included,
// into a single space.
func collapseSpace(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
