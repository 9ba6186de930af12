// api/engine/gemini.go
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/policyguard/api/model"
)

// geminiRule is the JSON shape the model is instructed to return.
type geminiRule struct {
	Description string `json:"description"`
	Field       string `json:"field"`
	Condition   string `json:"condition"`
	Severity    string `json:"severity"`
}

// maxPromptText caps how much policy text is sent to the model.
const maxPromptText = 30000

// GeminiExtractor is the Tier-1 rule extractor backed by the Gemini API.
// Temperature is pinned to zero so identical documents produce identical
// rule sets.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates the Tier-1 extractor. A missing API key is an
// error here so the caller wires a nil extractor and the deterministic tier
// carries the whole load.
func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiExtractor{client: client, model: model}, nil
}

// ExtractRules implements TierOneExtractor.
func (g *GeminiExtractor) ExtractRules(ctx context.Context, text string, columns []string) ([]model.Rule, error) {
	if len(text) > maxPromptText {
		text = text[:maxPromptText]
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(buildPrompt(text, columns)),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](0),
			TopP:        genai.Ptr[float32](0.1),
		})
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	payload := stripFences(strings.TrimSpace(resp.Text()))

	var raw []geminiRule
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("gemini returned unparseable JSON: %w", err)
	}

	rules := make([]model.Rule, 0, len(raw))
	for _, r := range raw {
		rules = append(rules, model.Rule{
			Description: r.Description,
			Field:       r.Field,
			Condition:   r.Condition,
			Severity:    r.Severity,
		})
	}
	return rules, nil
}

func buildPrompt(text string, columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = `"` + c + `"`
	}

	return fmt.Sprintf(`You are a highly precise, deterministic compliance engine.
Extract every measurable compliance rule from the policy text below and return a
JSON array of rule objects. Each object MUST have exactly these keys:

- "description" : Short restatement of the rule.
- "field"       : The exact dataset column this rule checks. The employee dataset
  has EXACTLY these column headers (use them verbatim): %s.
  DO NOT invent column names not in this list.
- "condition"   : A comparison string. Rules:
    - Numeric fields  -> operators like ">= 25", "< 15", "== 5"
    - Sales vs target -> ">= target_sales" or "< target_sales"
    - String compliance columns -> ONLY "== 'Yes'" or "== 'No'"
      (the column contains the literal string 'Yes' or 'No', never True/False/'Compliant')
- "severity"    : One of "Low", "Medium", "High", "Critical" based on language cues
    - "critical", "termination", "zero tolerance" -> Critical
    - "strict", "must", "required", "violation" -> High
    - "expected", "should", "recommended" -> Medium
    - "relaxed", "minor", "advisory" -> Low

Return ONLY a valid JSON array. No markdown, no explanation.

Policy Text:
%s`, strings.Join(quoted, ", "), text)
}

// stripFences removes an optional markdown code fence around the JSON array.
func stripFences(s string) string {
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(s[:len(s)-3])
	}
	return s
}
