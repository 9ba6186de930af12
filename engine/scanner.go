// api/engine/scanner.go
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
)

// Pair identifies one (employee, rule) combination for dedup purposes.
type Pair struct {
	EmployeeID string
	RuleID     string
}

// PairSet is the caller-owned set of pairs that already produced a
// persisted violation. The scanner copies it; the caller's set is never
// mutated.
type PairSet map[Pair]struct{}

// ScanResult carries the scan output plus per-rule normalization
// diagnostics for operability.
type ScanResult struct {
	Violations []model.Violation
	Rejected   []*RejectionError
	RulesUsed  int
}

// Scanner evaluates active rules across employees. It holds only read-only
// schema state and a concurrency bound; every Scan call is independent.
type Scanner struct {
	normalizer  *Normalizer
	concurrency int
}

func NewScanner(registry *Registry, concurrency int) *Scanner {
	if concurrency <= 0 {
		concurrency = 10
	}
	return &Scanner{normalizer: NewNormalizer(registry), concurrency: concurrency}
}

// Scan evaluates every employee against every active, normalizable rule,
// skipping pairs present in existing. Rules that fail normalization are
// reported in the result and excluded; they never abort the batch. Running
// Scan again with existing seeded from a previous result's violations yields
// nothing new.
func (s *Scanner) Scan(ctx context.Context, rules []model.Rule, employees []model.Employee, existing PairSet) ScanResult {
	var result ScanResult
	if len(rules) == 0 || len(employees) == 0 {
		return result
	}

	type normalizedPair struct {
		rule model.Rule
		norm *NormalizedRule
	}
	var active []normalizedPair
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		norm, err := s.normalizer.Normalize(rule)
		if err != nil {
			rej, ok := err.(*RejectionError)
			if !ok {
				rej = &RejectionError{Field: rule.Field, Condition: rule.Condition, Reason: err.Error()}
			}
			logger.Warn("Skipping rule that could not be normalized",
				zap.String("ruleID", rule.ID),
				zap.String("field", rej.Field),
				zap.String("condition", rej.Condition),
				zap.String("reason", rej.Reason))
			result.Rejected = append(result.Rejected, rej)
			continue
		}
		active = append(active, normalizedPair{rule: rule, norm: norm})
	}
	result.RulesUsed = len(active)
	if len(active) == 0 {
		return result
	}

	logger.Info("Scanning employees against rules",
		zap.Int("employees", len(employees)),
		zap.Int("rules", len(active)),
		zap.Int("rejected", len(result.Rejected)))

	// Local copy so a duplicate pair inside this batch is suppressed too,
	// without mutating the caller's set.
	seen := make(PairSet, len(existing))
	for p := range existing {
		seen[p] = struct{}{}
	}

	// One slot per employee keeps the output order deterministic while the
	// evaluation itself fans out. Dedup check+insert is a single critical
	// section per pair.
	perEmployee := make([][]model.Violation, len(employees))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	semaphore := make(chan struct{}, s.concurrency)

	for i := range employees {
		i := i
		g.Go(func() error {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			emp := &employees[i]
			var found []model.Violation
			for _, ap := range active {
				pair := Pair{EmployeeID: emp.ID, RuleID: ap.rule.ID}

				mu.Lock()
				_, dup := seen[pair]
				mu.Unlock()
				if dup {
					continue
				}

				description, violated := Evaluate(emp, ap.norm)
				if !violated {
					continue
				}

				mu.Lock()
				seen[pair] = struct{}{}
				mu.Unlock()

				found = append(found, model.Violation{
					ID:          uuid.New().String(),
					EmployeeID:  emp.ID,
					RuleID:      ap.rule.ID,
					Description: description,
					Severity:    severityOrDefault(ap.rule.Severity),
					Timestamp:   time.Now().UTC(),
				})
			}
			perEmployee[i] = found
			return nil
		})
	}
	// Workers only ever return nil; Wait is for completion.
	_ = g.Wait()

	for _, vs := range perEmployee {
		result.Violations = append(result.Violations, vs...)
	}

	logger.Info("Scan completed", zap.Int("newViolations", len(result.Violations)))
	return result
}

func severityOrDefault(s string) string {
	if model.ValidSeverity(s) {
		return s
	}
	return model.SeverityMedium
}
