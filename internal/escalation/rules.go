// Package escalation implements the crisis detection and predictive
// risk-scoring engine: a priority-ordered rule matcher over post text,
// weighted heuristic predictors for escalation likelihood, user needs and
// peak usage, and an analytics aggregator for moderator reporting.
//
// Everything in this package is a pure, stateless computation over data
// fetched through the injected source interfaces; nothing here persists
// state or spawns background work.
package escalation

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"solace/internal/models"
)

// Rule is one entry of the escalation rule table. Rules are immutable once
// loaded; their position in the table encodes priority.
type Rule struct {
	Name       string                 `yaml:"name"`
	Level      models.EscalationLevel `yaml:"level"`
	Categories []models.Category      `yaml:"categories"`
	Keywords   []string               `yaml:"keywords"`
	Phrases    []string               `yaml:"phrases"`
}

// appliesTo reports whether the rule should be evaluated for a post in the
// given category. CategoryCrisis acts as a wildcard: crisis-tagged rules
// apply to every post.
func (r Rule) appliesTo(category models.Category) bool {
	for _, c := range r.Categories {
		if c == category || c == models.CategoryCrisis {
			return true
		}
	}
	return false
}

type ruleDocument struct {
	Rules []Rule `yaml:"rules"`
}

//go:embed rules.yaml
var defaultRulesYAML []byte

var defaultRules = func() []Rule {
	rules, err := ParseRules(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("escalation: embedded rule table invalid: %v", err))
	}
	return rules
}()

// DefaultRules returns the production rule table, loaded once from the
// embedded YAML document.
func DefaultRules() []Rule {
	return defaultRules
}

// ParseRules decodes and validates a YAML rule table.
func ParseRules(data []byte) ([]Rule, error) {
	var doc ruleDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode rule table: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("rule table is empty")
	}
	for i, rule := range doc.Rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("rule %d has no name", i)
		}
		if rule.Level.Rank() < models.LevelLow.Rank() {
			return nil, fmt.Errorf("rule %q has invalid level %q", rule.Name, rule.Level)
		}
		if len(rule.Categories) == 0 {
			return nil, fmt.Errorf("rule %q has no categories", rule.Name)
		}
		for _, c := range rule.Categories {
			if !c.Valid() {
				return nil, fmt.Errorf("rule %q has unknown category %q", rule.Name, c)
			}
		}
		if len(rule.Keywords) == 0 && len(rule.Phrases) == 0 {
			return nil, fmt.Errorf("rule %q has neither keywords nor phrases", rule.Name)
		}
	}
	return doc.Rules, nil
}

// Matcher scans post content against an ordered rule table.
type Matcher struct {
	rules []Rule
}

// NewMatcher returns a Matcher over the given rules. The slice is copied so
// later mutation by the caller cannot change matching behavior.
func NewMatcher(rules []Rule) *Matcher {
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return &Matcher{rules: owned}
}

// Check scans content against the rule table and returns the level and a
// human-readable reason for the first hit.
//
// Rules are tried strictly in table order and within a rule keywords are
// tried before phrases, each in listed order. The first match wins even if a
// later rule carries a higher level; the table is ordered so that self-harm
// and abuse rules come first.
func (m *Matcher) Check(content string, category models.Category) (models.EscalationLevel, string) {
	text := strings.ToLower(content)
	for _, rule := range m.rules {
		if !rule.appliesTo(category) {
			continue
		}
		for _, kw := range rule.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				return rule.Level, fmt.Sprintf("contains flagged keyword %q", kw)
			}
		}
		for _, ph := range rule.Phrases {
			if strings.Contains(text, strings.ToLower(ph)) {
				return rule.Level, fmt.Sprintf("contains flagged phrase %q", ph)
			}
		}
	}
	return models.LevelNone, ""
}
