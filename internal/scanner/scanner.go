package scanner

import (
	"context"
	"fmt"
	"os"
	"time"

	"wasp/internal/baseline"
	"wasp/internal/evaluator"
	"wasp/internal/models"
	"wasp/internal/providers"
	"wasp/internal/resolver"
)

var (
	EnableDiagnostics = false
)

func logDiagnostic(format string, args ...interface{}) {
	if EnableDiagnostics {
		fmt.Fprintf(os.Stderr, "[DIAG-SCANNER] "+format+"\n", args...)
	}
}

// Options controls which rules a scan evaluates.
type Options struct {
	Level              string
	SkipRegistry       bool
	SkipServices       bool
	SkipAuditPolicy    bool
	SkipSecurityPolicy bool
	ProviderTimeout    time.Duration
}

// Scanner drives one pass over a baseline: capture the two policy snapshots,
// then resolve and evaluate each rule in order.
type Scanner struct {
	providers providers.Bundle
}

func New(bundle providers.Bundle) *Scanner {
	return &Scanner{providers: bundle}
}

// Run evaluates the baseline and always returns a report, even when every
// provider is unavailable. Rules are processed strictly one at a time;
// cancellation is honored between rules, never mid-rule.
func (s *Scanner) Run(ctx context.Context, b *models.Baseline, opts Options) *models.ScanReport {
	rules := baseline.FilterByLevel(b.Rules, opts.Level)
	logDiagnostic("scanning %d of %d rules (level filter: %q)", len(rules), len(b.Rules), opts.Level)

	// Both snapshots are captured sequentially, at most once, before any rule
	// is evaluated. The security policy snapshot also serves registry rules,
	// so it is skipped only when neither kind is in play.
	var secpol *models.SecurityPolicySnapshot
	var auditpol *models.AuditPolicySnapshot
	if s.needsKind(rules, opts, models.SecurityPolicyCheck) || s.needsKind(rules, opts, models.RegistryCheck) {
		secpol, _ = s.providers.SecurityPolicy.Export(ctx)
		if secpol == nil {
			logDiagnostic("security policy snapshot unavailable")
		}
	}
	if s.needsKind(rules, opts, models.AuditPolicyCheck) {
		auditpol, _ = s.providers.AuditPolicy.Export(ctx)
		if auditpol == nil {
			logDiagnostic("audit policy snapshot unavailable")
		}
	}

	res := resolver.New(s.providers, secpol, auditpol)

	var results []models.RuleResult
	for _, rule := range rules {
		if ctx.Err() != nil {
			logDiagnostic("scan cancelled after %d rules", len(results))
			break
		}
		if rule.Skip || skippedByKind(rule.CheckType, opts) {
			continue
		}
		results = append(results, s.evaluateRule(ctx, res, rule))
	}

	return BuildReport(b.Name, results)
}

func (s *Scanner) needsKind(rules []models.Rule, opts Options, kind models.CheckType) bool {
	if skippedByKind(kind, opts) {
		return false
	}
	for _, r := range rules {
		if !r.Skip && r.CheckType == kind {
			return true
		}
	}
	return false
}

func skippedByKind(kind models.CheckType, opts Options) bool {
	switch kind {
	case models.RegistryCheck:
		return opts.SkipRegistry
	case models.ServiceCheck:
		return opts.SkipServices
	case models.AuditPolicyCheck:
		return opts.SkipAuditPolicy
	case models.SecurityPolicyCheck:
		return opts.SkipSecurityPolicy
	}
	return false
}

// evaluateRule is the per-rule fault boundary: a panic anywhere in resolution
// or evaluation becomes a RuleResult with Error set, and the scan moves on.
func (s *Scanner) evaluateRule(ctx context.Context, res *resolver.Resolver, rule models.Rule) (result models.RuleResult) {
	result = models.RuleResult{
		RuleID:        rule.ID,
		Title:         rule.Title,
		CheckType:     rule.CheckType,
		ExpectedValue: expectedForReport(rule),
	}

	defer func() {
		if r := recover(); r != nil {
			logDiagnostic("rule %s faulted: %v", rule.ID, r)
			result.Compliant = false
			result.Error = fmt.Sprintf("unexpected fault: %v", r)
		}
	}()

	switch rule.CheckType {
	case models.RegistryCheck, models.ServiceCheck, models.AuditPolicyCheck, models.SecurityPolicyCheck:
	default:
		result.Details = "unknown check type"
		return result
	}

	resolution := res.Resolve(ctx, rule)
	result.CurrentValue = resolution.Value
	result.Resolved = resolution.Found
	result.Details = resolution.Details
	if !resolution.Found {
		return result
	}

	if rule.CheckType == models.ServiceCheck && resolution.Service != nil {
		result.Compliant = serviceCompliant(*resolution.Service, rule)
	} else {
		result.Compliant = evaluator.Evaluate(resolution.Value, rule.ExpectedValue)
	}

	logDiagnostic("rule %s: current=%q expected=%q compliant=%v",
		rule.ID, result.CurrentValue, result.ExpectedValue, result.Compliant)
	return result
}

// serviceCompliant judges a service rule. Typed expectations are each checked
// against their own field and must all hold; a bare expected_value passes if
// either the status or the start type satisfies it, which covers baselines
// that just say "Disabled".
func serviceCompliant(state models.ServiceState, rule models.Rule) bool {
	if rule.ExpectedStatus != "" || rule.ExpectedStartType != "" {
		if rule.ExpectedStatus != "" && !evaluator.Evaluate(state.Status, rule.ExpectedStatus) {
			return false
		}
		if rule.ExpectedStartType != "" && !evaluator.Evaluate(state.StartType, rule.ExpectedStartType) {
			return false
		}
		return true
	}
	if rule.ExpectedValue == "" {
		return false
	}
	return evaluator.Evaluate(state.Status, rule.ExpectedValue) ||
		evaluator.Evaluate(state.StartType, rule.ExpectedValue)
}

func expectedForReport(rule models.Rule) string {
	if rule.ExpectedValue != "" {
		return rule.ExpectedValue
	}
	if rule.ExpectedStatus != "" && rule.ExpectedStartType != "" {
		return fmt.Sprintf("%s (start type: %s)", rule.ExpectedStatus, rule.ExpectedStartType)
	}
	if rule.ExpectedStatus != "" {
		return rule.ExpectedStatus
	}
	if rule.ExpectedStartType != "" {
		return fmt.Sprintf("start type: %s", rule.ExpectedStartType)
	}
	return ""
}
