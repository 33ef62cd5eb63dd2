// Package label maps free-text model completions onto a fixed label set.
package label

import (
	"regexp"
	"sort"
	"strings"
)

// Rule binds a label to the keywords that select it when the completion
// names no label outright.
type Rule struct {
	Label    string
	Keywords []string
}

// Table is the label vocabulary of one classification task. Rules are
// evaluated in slice order, so the first rule is the highest priority.
type Table struct {
	Labels  []string
	Rules   []Rule
	Default string

	exact    *regexp.Regexp
	keywords []compiledRule
}

type compiledRule struct {
	label   string
	pattern *regexp.Regexp
}

// NewTable compiles the label and keyword patterns. It panics when the
// default or a rule label is not part of labels, since tables are static.
func NewTable(labels []string, defaultLabel string, rules []Rule) *Table {
	allowed := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		allowed[l] = struct{}{}
	}
	if _, ok := allowed[defaultLabel]; !ok {
		panic("label: default " + defaultLabel + " is not an allowed label")
	}

	t := &Table{
		Labels:  append([]string(nil), labels...),
		Rules:   append([]Rule(nil), rules...),
		Default: defaultLabel,
	}

	// Longest first so that general_upwork wins over general.
	ordered := append([]string(nil), labels...)
	sort.SliceStable(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })
	t.exact = regexp.MustCompile(`\b(` + quoteAll(ordered) + `)\b[.!?]*`)

	for _, rule := range rules {
		if _, ok := allowed[rule.Label]; !ok {
			panic("label: rule label " + rule.Label + " is not an allowed label")
		}
		if len(rule.Keywords) == 0 {
			continue
		}
		t.keywords = append(t.keywords, compiledRule{
			label:   rule.Label,
			pattern: regexp.MustCompile(`\b(?:` + quoteAll(rule.Keywords) + `)\b`),
		})
	}
	return t
}

// Normalize resolves raw to one of the table's labels. It never returns a
// value outside Labels.
func (t *Table) Normalize(raw string) string {
	label, _ := t.Resolve(raw)
	return label
}

// Resolve is Normalize plus a flag reporting whether anything in raw matched.
// An unmatched completion resolves to Default.
func (t *Table) Resolve(raw string) (string, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return t.Default, false
	}

	if m := t.exact.FindStringSubmatch(text); m != nil {
		return m[1], true
	}

	for _, rule := range t.keywords {
		if rule.pattern.MatchString(text) {
			return rule.label, true
		}
	}
	return t.Default, false
}

// Contains reports whether label belongs to the table.
func (t *Table) Contains(label string) bool {
	for _, l := range t.Labels {
		if l == label {
			return true
		}
	}
	return false
}

func quoteAll(words []string) string {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	return strings.Join(quoted, "|")
}
