package models

import "time"

// RuleResult is the outcome of evaluating one rule. Immutable once returned
// by the scanner.
type RuleResult struct {
	RuleID        string    `json:"rule_id"`
	Title         string    `json:"title"`
	CheckType     CheckType `json:"check_type"`
	CurrentValue  string    `json:"current_value,omitempty"`
	Resolved      bool      `json:"resolved"`
	ExpectedValue string    `json:"expected_value,omitempty"`
	Compliant     bool      `json:"compliant"`
	Details       string    `json:"details,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// ScanSummary contains aggregate statistics about a completed scan.
type ScanSummary struct {
	BaselineName   string  `json:"baseline_name"`
	TotalRules     int     `json:"total_rules"`
	Compliant      int     `json:"compliant"`
	NonCompliant   int     `json:"non_compliant"`
	ComplianceRate float64 `json:"compliance_rate"`
}

// ScanReport is the summary plus the per-rule results in baseline order.
type ScanReport struct {
	Summary  ScanSummary  `json:"summary"`
	Results  []RuleResult `json:"results"`
	ScanTime time.Time    `json:"scan_time"`
}
