// api/engine/tierone.go
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
)

// TierOneExtractor is the optional richer extraction service. Implementations
// must respect the context deadline and return an error for every failure
// mode — missing credentials, malformed output, I/O — rather than panic.
type TierOneExtractor interface {
	ExtractRules(ctx context.Context, text string, columns []string) ([]model.Rule, error)
}

// DefaultTierOneTimeout bounds the external extraction call.
const DefaultTierOneTimeout = 30 * time.Second

// ExtractWithFallback runs the deterministic extractor first, then attempts
// the Tier-1 extractor and keeps its output only when the call succeeds with
// a non-empty, well-formed rule sequence. Any Tier-1 failure is absorbed; the
// caller always gets a usable result. The returned string names the tier that
// produced the rules.
func (e *Extractor) ExtractWithFallback(ctx context.Context, text string, tierOne TierOneExtractor, timeout time.Duration) ([]model.Rule, string) {
	fallback := e.Extract(text)
	if tierOne == nil {
		return fallback, SourceRegex
	}

	if timeout <= 0 {
		timeout = DefaultTierOneTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rules, err := tierOne.ExtractRules(ctx, text, e.registry.ColumnNames())
	if err != nil {
		logger.Warn("Tier-1 extraction failed, using deterministic fallback",
			zap.Error(err), zap.Int("fallbackRules", len(fallback)))
		return fallback, SourceRegex
	}
	if !wellFormed(rules) {
		logger.Warn("Tier-1 extraction returned empty or malformed rules, using deterministic fallback",
			zap.Int("tierOneRules", len(rules)), zap.Int("fallbackRules", len(fallback)))
		return fallback, SourceRegex
	}

	for i := range rules {
		rules[i].Source = SourceGemini
		rules[i].IsActive = true
		if !model.ValidSeverity(rules[i].Severity) {
			rules[i].Severity = model.SeverityMedium
		}
	}
	logger.Info("Tier-1 extraction succeeded", zap.Int("rules", len(rules)))
	return rules, SourceGemini
}

// wellFormed rejects an empty sequence and any rule missing a field or
// condition; a partially broken Tier-1 payload is not trusted at all.
func wellFormed(rules []model.Rule) bool {
	if len(rules) == 0 {
		return false
	}
	for _, r := range rules {
		if r.Field == "" || r.Condition == "" {
			return false
		}
	}
	return true
}
