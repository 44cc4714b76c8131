package rumetaphone

import (
	"fmt"
	"regexp"
)

// Rule is a single (pattern => replacement) pair of a rule table.
//
// Replacement is inserted literally; '$' does not expand to a sub-match.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// String returns the rule in rule-file notation, e.g. "(ОВ)$ 4".
func (r Rule) String() string {
	return r.Pattern.String() + " " + r.Replacement
}

// RuleTable is an ordered sequence of rules. Order is significant: suffix
// tables stop at the first matching rule, and the vowel table feeds the
// output of every rule into the next one.
//
// A RuleTable is not modified after construction.
type RuleTable struct {
	name  string
	rules []Rule
}

// NewRuleTable compiles pairs of (pattern, replacement) into a rule table,
// keeping their order. Duplicate patterns are kept as they are.
func NewRuleTable(name string, pairs ...[2]string) (RuleTable, error) {
	table := RuleTable{name: name, rules: make([]Rule, 0, len(pairs))}
	for _, p := range pairs {
		if err := table.add(p[0], p[1]); err != nil {
			return RuleTable{}, err
		}
	}
	return table, nil
}

func mustRuleTable(name string, pairs ...[2]string) RuleTable {
	table, err := NewRuleTable(name, pairs...)
	if err != nil {
		panic(err)
	}
	return table
}

func (t *RuleTable) add(pattern, replacement string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("table %s: invalid pattern %q: %w", t.name, pattern, err)
	}
	t.rules = append(t.rules, Rule{Pattern: re, Replacement: replacement})
	return nil
}

// Name returns the identifier of the table ("suffixes", "vowels", ...).
func (t RuleTable) Name() string {
	return t.name
}

// Len returns the number of rules, duplicates included.
func (t RuleTable) Len() int {
	return len(t.rules)
}

// Rules returns a copy of the rules in table order. Patterns are copies as
// well, changing them does not affect t.
func (t RuleTable) Rules() []Rule {
	rules := make([]Rule, len(t.rules))
	for i, rule := range t.rules {
		rules[i] = Rule{
			Pattern:     regexp.MustCompile(rule.Pattern.String()),
			Replacement: rule.Replacement,
		}
	}
	return rules
}

// FirstMatch replaces the leftmost match of the first matching rule and
// returns. At most one rule fires; if none matches, s is returned unchanged.
//
// Suffix patterns are anchored at the end of the token, so the replaced span
// is always the matched tail.
func (t RuleTable) FirstMatch(s string) string {
	for _, rule := range t.rules {
		loc := rule.Pattern.FindStringIndex(s)
		if loc == nil {
			continue
		}
		return s[:loc[0]] + rule.Replacement + s[loc[1]:]
	}
	return s
}

// ApplyAll applies every rule in order, each one replacing all
// non-overlapping matches in the output of its predecessor.
func (t RuleTable) ApplyAll(s string) string {
	for _, rule := range t.rules {
		s = rule.Pattern.ReplaceAllLiteralString(s, rule.Replacement)
	}
	return s
}
