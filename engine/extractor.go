// api/engine/extractor.go
package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/policyguard/api/model"
)

// SourceRegex and SourceGemini tag which extraction tier produced a rule.
const (
	SourceRegex  = "regex"
	SourceGemini = "gemini"
)

// minStatementLen filters out fragments too short to state a rule.
const minStatementLen = 8

var (
	listPrefixRe = regexp.MustCompile(`^\d+\.\s*`)
	// A sentence boundary followed by a numbered list marker starts a new
	// statement even without a newline ("... month. 2. Sales must ...").
	listBoundaryRe = regexp.MustCompile(`\.\s+(\d+\.)`)
	numberRe       = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
)

// fieldPattern maps a schema field to the phrases that identify it. Patterns
// are compiled regexps over the lowercased statement, classifier style.
type fieldPattern struct {
	field    string
	patterns []*regexp.Regexp
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// fieldPatterns is scanned in order; more specific fields first so e.g. a
// sales sentence is never claimed by the satisfaction field.
var fieldPatterns = []fieldPattern{
	{"working_days", compilePatterns(
		`working days`, `days per month`, `days/month`, `attendance days`)},
	{"actual_sales", compilePatterns(
		`sales target`, `target sales`, `actual sales`, `sales must`,
		`meet.*target`, `exceed.*target`)},
	{"customer_satisfaction_score", compilePatterns(
		`customer satisfaction`, `csat`, `satisfaction score`,
		`satisfaction rating`, `satisfaction`)},
	{"policy_compliance", compilePatterns(
		`policy compliance`, `must adhere`, `adhere to`,
		`company policy`, `compliance policy`)},
}

// severityTiers is scanned highest tier first; the first tier with any
// matching keyword wins regardless of keyword position in the statement.
var severityTiers = []struct {
	severity string
	keywords []string
}{
	{model.SeverityCritical, []string{"critical", "termination", "zero tolerance"}},
	{model.SeverityHigh, []string{"strict", "must", "required", "violation"}},
	{model.SeverityMedium, []string{"expected", "should", "recommended"}},
	{model.SeverityLow, []string{"relaxed", "minor", "advisory"}},
}

var (
	exactCues      = []string{"perfect", "exactly", "must be exactly", "precisely"}
	lowerBoundCues = []string{
		"at least", "minimum", "no less", "or more", "or above", "or exceeded",
		"met or exceed", "must be met", "or higher", "relaxed to", "days per month",
	}
	upperBoundCues = []string{"at most", "no more than", "or less", "or below", "maximum"}
)

// Extractor derives candidate rules from free policy text using keyword and
// regex heuristics only. It is precision-oriented: sentences that name no
// known column yield nothing, and each column gets at most one rule, claimed
// by the first statement that references it.
type Extractor struct {
	registry *Registry
}

func NewExtractor(registry *Registry) *Extractor {
	return &Extractor{registry: registry}
}

// Extract parses policy text into raw rules. Identical input always yields
// an identical, order-stable sequence.
func (e *Extractor) Extract(text string) []model.Rule {
	var rules []model.Rule
	seen := make(map[string]bool)

	for _, raw := range splitStatements(text) {
		statement := strings.TrimSpace(raw)
		if len(statement) < minStatementLen {
			continue
		}

		field := detectField(statement)
		if field == "" || seen[field] {
			continue
		}
		description := stripListPrefix(statement)

		column, ok := e.registry.Lookup(field)
		if !ok {
			continue
		}

		var rule model.Rule
		switch {
		case column.Kind == KindReference:
			op := OpGreaterOrEqual
			if containsAny(strings.ToLower(statement), []string{"exact", "exactly"}) {
				op = OpEqual
			}
			rule = model.Rule{
				Description: description,
				Field:       field,
				Condition:   op.String() + " " + column.ReferenceColumn,
			}
		case column.Kind == KindString:
			// Policy prose states the positive requirement; the rule checks
			// for the positive canonical value.
			rule = model.Rule{
				Description: description,
				Field:       field,
				Condition:   "== '" + column.AllowedValues[0] + "'",
			}
		default:
			threshold, ok := extractThreshold(statement)
			if !ok {
				continue
			}
			op := detectOperator(statement)
			rule = model.Rule{
				Description: description,
				Field:       field,
				Condition:   op.String() + " " + formatNumber(threshold),
			}
		}

		rule.Severity = detectSeverity(statement, field, rule.Condition)
		rule.Source = SourceRegex
		rule.IsActive = true
		rules = append(rules, rule)
		seen[field] = true
	}

	return rules
}

// splitStatements breaks text on newlines and on sentence boundaries that
// precede a numbered list marker.
func splitStatements(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		start := 0
		for _, m := range listBoundaryRe.FindAllStringSubmatchIndex(line, -1) {
			// m[2] is where the "N." marker begins; the preceding sentence
			// ends at the period just before the gap.
			out = append(out, line[start:m[2]])
			start = m[2]
		}
		out = append(out, line[start:])
	}
	return out
}

func stripListPrefix(s string) string {
	return listPrefixRe.ReplaceAllString(strings.TrimSpace(s), "")
}

func detectField(statement string) string {
	lower := strings.ToLower(stripListPrefix(statement))
	for _, fp := range fieldPatterns {
		for _, re := range fp.patterns {
			if re.MatchString(lower) {
				return fp.field
			}
		}
	}
	return ""
}

func detectOperator(statement string) Operator {
	lower := strings.ToLower(stripListPrefix(statement))
	// Upper-bound cues are checked before lower-bound ones: "no more than 22
	// working days per month" also contains the weak lower-bound cue "days
	// per month".
	switch {
	case containsAny(lower, exactCues):
		return OpEqual
	case containsAny(lower, upperBoundCues):
		return OpLessOrEqual
	case containsAny(lower, lowerBoundCues):
		return OpGreaterOrEqual
	}
	// Thresholds in policy prose are lower bounds far more often than not.
	return OpGreaterOrEqual
}

// extractThreshold returns the largest number in the statement. Ordinal list
// prefixes are small integers; the governing threshold is almost always the
// biggest number present.
func extractThreshold(statement string) (float64, bool) {
	clean := stripListPrefix(statement)
	matches := numberRe.FindAllString(clean, -1)
	if len(matches) == 0 {
		return 0, false
	}
	var max float64
	for i, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		if i == 0 || v > max {
			max = v
		}
	}
	return max, true
}

// detectSeverity scans the severity keyword tiers first; when no keyword
// matches, it falls back to a field and operator heuristic.
func detectSeverity(statement, field, condition string) string {
	lower := strings.ToLower(statement)
	for _, tier := range severityTiers {
		if containsAny(lower, tier.keywords) {
			return tier.severity
		}
	}
	switch field {
	case "policy_compliance":
		return model.SeverityCritical
	case "customer_satisfaction_score":
		if strings.HasPrefix(condition, OpEqual.String()) {
			return model.SeverityCritical
		}
		return model.SeverityHigh
	}
	return model.SeverityHigh
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
