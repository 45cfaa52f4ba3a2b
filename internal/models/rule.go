package models

import "strings"

type CheckType string
type Level string

const (
	RegistryCheck       CheckType = "registry"
	ServiceCheck        CheckType = "service"
	AuditPolicyCheck    CheckType = "audit_policy"
	SecurityPolicyCheck CheckType = "security_policy"

	Level1 Level = "Level 1"
	Level2 Level = "Level 2"
)

// Rule is a single compliance requirement from a baseline. Only the subset of
// fields relevant to its CheckType is populated; the rest stay empty and are
// ignored during evaluation.
type Rule struct {
	ID                string    `json:"id" yaml:"id"`
	Title             string    `json:"title" yaml:"title"`
	CheckType         CheckType `json:"check_type" yaml:"check_type"`
	Target            string    `json:"target,omitempty" yaml:"target,omitempty"`
	RegistryName      string    `json:"registry_name,omitempty" yaml:"registry_name,omitempty"`
	ExpectedValue     string    `json:"expected_value,omitempty" yaml:"expected_value,omitempty"`
	ServiceName       string    `json:"service_name,omitempty" yaml:"service_name,omitempty"`
	ExpectedStatus    string    `json:"expected_status,omitempty" yaml:"expected_status,omitempty"`
	ExpectedStartType string    `json:"expected_start_type,omitempty" yaml:"expected_start_type,omitempty"`
	Skip              bool      `json:"skip,omitempty" yaml:"skip,omitempty"`
	Level             string    `json:"level,omitempty" yaml:"level,omitempty"`
}

// Baseline is an ordered, immutable collection of rules plus metadata.
type Baseline struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Rules   []Rule `json:"rules" yaml:"rules"`
}

// NormalizeCheckType maps the check_type spellings accepted in baseline files
// onto the canonical CheckType constants. Unrecognized values are returned
// unchanged so the orchestrator can report them instead of the loader
// rejecting the rule.
func NormalizeCheckType(s string) CheckType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "registry":
		return RegistryCheck
	case "service":
		return ServiceCheck
	case "audit_policy", "auditpol":
		return AuditPolicyCheck
	case "security_policy", "secpol":
		return SecurityPolicyCheck
	}
	return CheckType(s)
}
