package scanner

import (
	"context"
	"strings"
	"testing"

	"wasp/internal/models"
	"wasp/internal/providers"
)

type fakeRegistry struct {
	values map[string]string
}

func (f *fakeRegistry) ReadValue(_ context.Context, path, name string) (string, bool) {
	v, ok := f.values[path+`\`+name]
	return v, ok
}

type panickyRegistry struct{}

func (panickyRegistry) ReadValue(_ context.Context, _, _ string) (string, bool) {
	panic("registry provider blew up")
}

type fakeSecurityPolicy struct {
	snapshot *models.SecurityPolicySnapshot
	exports  int
}

func (f *fakeSecurityPolicy) Export(_ context.Context) (*models.SecurityPolicySnapshot, bool) {
	f.exports++
	return f.snapshot, f.snapshot != nil
}

type fakeAuditPolicy struct {
	snapshot *models.AuditPolicySnapshot
	exports  int
}

func (f *fakeAuditPolicy) Export(_ context.Context) (*models.AuditPolicySnapshot, bool) {
	f.exports++
	return f.snapshot, f.snapshot != nil
}

type fakeServices struct {
	states map[string]models.ServiceState
}

func (f *fakeServices) ReadStatus(_ context.Context, serviceName string) (models.ServiceState, bool) {
	s, ok := f.states[serviceName]
	return s, ok
}

func emptyBundle() providers.Bundle {
	return providers.Bundle{
		Registry:       &fakeRegistry{},
		SecurityPolicy: &fakeSecurityPolicy{},
		AuditPolicy:    &fakeAuditPolicy{},
		Services:       &fakeServices{},
	}
}

func TestScanServiceRuleEndToEnd(t *testing.T) {
	bundle := emptyBundle()
	bundle.Services = &fakeServices{states: map[string]models.ServiceState{
		"Spooler": {Status: "Stopped", StartType: "Disabled"},
	}}

	b := &models.Baseline{
		Name: "test",
		Rules: []models.Rule{
			{ID: "T1", CheckType: models.ServiceCheck, Target: "Spooler", ExpectedValue: "Disabled"},
		},
	}

	report := New(bundle).Run(context.Background(), b, Options{})
	if len(report.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(report.Results))
	}
	if !report.Results[0].Compliant {
		t.Errorf("result = %+v, want compliant", report.Results[0])
	}
}

func TestScanServiceTypedExpectations(t *testing.T) {
	bundle := emptyBundle()
	bundle.Services = &fakeServices{states: map[string]models.ServiceState{
		"Telnet": {Status: "Running", StartType: "Automatic"},
	}}

	tests := []struct {
		name string
		rule models.Rule
		want bool
	}{
		{
			"both fields match",
			models.Rule{ID: "1", CheckType: models.ServiceCheck, ServiceName: "Telnet",
				ExpectedStatus: "Running", ExpectedStartType: "Automatic"},
			true,
		},
		{
			"start type mismatch fails",
			models.Rule{ID: "2", CheckType: models.ServiceCheck, ServiceName: "Telnet",
				ExpectedStatus: "Running", ExpectedStartType: "Disabled"},
			false,
		},
		{
			"expected value matches status",
			models.Rule{ID: "3", CheckType: models.ServiceCheck, ServiceName: "Telnet",
				ExpectedValue: "Running"},
			true,
		},
		{
			"no expectations at all",
			models.Rule{ID: "4", CheckType: models.ServiceCheck, ServiceName: "Telnet"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &models.Baseline{Name: "t", Rules: []models.Rule{tt.rule}}
			report := New(bundle).Run(context.Background(), b, Options{})
			if got := report.Results[0].Compliant; got != tt.want {
				t.Errorf("compliant = %v, want %v (%+v)", got, tt.want, report.Results[0])
			}
		})
	}
}

func TestScanSkipsRules(t *testing.T) {
	b := &models.Baseline{
		Name: "test",
		Rules: []models.Rule{
			{ID: "1", CheckType: models.ServiceCheck, ServiceName: "A", Skip: true},
			{ID: "2", CheckType: models.ServiceCheck, ServiceName: "B"},
			{ID: "3", CheckType: models.RegistryCheck, Target: `HKLM:\X`, RegistryName: "Y"},
		},
	}

	report := New(emptyBundle()).Run(context.Background(), b, Options{SkipRegistry: true})

	if report.Summary.TotalRules != 1 {
		t.Fatalf("TotalRules = %d, want 1 (skip flag and per-kind skip excluded)", report.Summary.TotalRules)
	}
	if report.Results[0].RuleID != "2" {
		t.Errorf("surviving rule = %q, want 2", report.Results[0].RuleID)
	}
}

func TestScanFaultIsolation(t *testing.T) {
	bundle := emptyBundle()
	bundle.Registry = panickyRegistry{}
	bundle.Services = &fakeServices{states: map[string]models.ServiceState{
		"Spooler": {Status: "Stopped", StartType: "Disabled"},
	}}

	b := &models.Baseline{
		Name: "test",
		Rules: []models.Rule{
			{ID: "R1", CheckType: models.RegistryCheck, Target: `HKLM:\X`, RegistryName: "Y", ExpectedValue: "1"},
			{ID: "S1", CheckType: models.ServiceCheck, ServiceName: "Spooler", ExpectedValue: "Disabled"},
		},
	}

	report := New(bundle).Run(context.Background(), b, Options{})
	if len(report.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2: a provider fault must not abort the scan", len(report.Results))
	}

	faulted := report.Results[0]
	if faulted.Compliant {
		t.Error("faulted rule marked compliant")
	}
	if !strings.Contains(faulted.Error, "registry provider blew up") {
		t.Errorf("Error = %q, want the panic recorded", faulted.Error)
	}
	if !report.Results[1].Compliant {
		t.Errorf("rule after the fault = %+v, want compliant", report.Results[1])
	}
}

func TestScanUnknownCheckType(t *testing.T) {
	b := &models.Baseline{
		Name:  "test",
		Rules: []models.Rule{{ID: "W1", CheckType: "wmi", ExpectedValue: "x"}},
	}

	report := New(emptyBundle()).Run(context.Background(), b, Options{})
	r := report.Results[0]
	if r.Compliant {
		t.Error("unknown check type marked compliant")
	}
	if r.Error != "" {
		t.Errorf("Error = %q, want empty: unknown kind is not a fault", r.Error)
	}
	if r.Details != "unknown check type" {
		t.Errorf("Details = %q, want unknown check type", r.Details)
	}
}

func TestScanSnapshotsCapturedOnce(t *testing.T) {
	secpol := models.NewSecurityPolicySnapshot()
	secpol.Set("Registry Values", `MACHINE\A\B`, "1")
	audit := models.NewAuditPolicySnapshot()
	audit.Set("Credential Validation", "Success and Failure")

	sp := &fakeSecurityPolicy{snapshot: secpol}
	ap := &fakeAuditPolicy{snapshot: audit}
	bundle := emptyBundle()
	bundle.SecurityPolicy = sp
	bundle.AuditPolicy = ap

	b := &models.Baseline{
		Name: "test",
		Rules: []models.Rule{
			{ID: "1", CheckType: models.RegistryCheck, Target: `HKLM:\A`, RegistryName: "B", ExpectedValue: "1"},
			{ID: "2", CheckType: models.RegistryCheck, Target: `HKLM:\A`, RegistryName: "B", ExpectedValue: "1"},
			{ID: "3", CheckType: models.AuditPolicyCheck,
				Title: "Ensure 'Audit Credential Validation' is set to 'Success and Failure'",
				ExpectedValue: "Success and Failure"},
		},
	}

	report := New(bundle).Run(context.Background(), b, Options{})
	if sp.exports != 1 {
		t.Errorf("security policy exports = %d, want 1", sp.exports)
	}
	if ap.exports != 1 {
		t.Errorf("audit policy exports = %d, want 1", ap.exports)
	}
	if report.Summary.Compliant != 3 {
		t.Errorf("Compliant = %d, want 3 (%+v)", report.Summary.Compliant, report.Results)
	}
}

func TestScanSkippedKindsAvoidExports(t *testing.T) {
	sp := &fakeSecurityPolicy{}
	ap := &fakeAuditPolicy{}
	bundle := emptyBundle()
	bundle.SecurityPolicy = sp
	bundle.AuditPolicy = ap

	b := &models.Baseline{
		Name: "test",
		Rules: []models.Rule{
			{ID: "1", CheckType: models.RegistryCheck, Target: `HKLM:\A`, RegistryName: "B"},
			{ID: "2", CheckType: models.AuditPolicyCheck, Title: "Ensure 'Audit Logon'"},
		},
	}

	New(bundle).Run(context.Background(), b, Options{SkipRegistry: true, SkipSecurityPolicy: true, SkipAuditPolicy: true})
	if sp.exports != 0 {
		t.Errorf("security policy exports = %d, want 0 when its kinds are skipped", sp.exports)
	}
	if ap.exports != 0 {
		t.Errorf("audit policy exports = %d, want 0 when audit rules are skipped", ap.exports)
	}
}

func TestScanCancelledBetweenRules(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &models.Baseline{
		Name:  "test",
		Rules: []models.Rule{{ID: "1", CheckType: models.ServiceCheck, ServiceName: "A"}},
	}

	report := New(emptyBundle()).Run(ctx, b, Options{})
	if report == nil {
		t.Fatal("Run() returned nil report on cancelled context")
	}
	if len(report.Results) != 0 {
		t.Errorf("len(Results) = %d, want 0 after pre-scan cancellation", len(report.Results))
	}
}

func TestBuildReportComplianceRate(t *testing.T) {
	tests := []struct {
		name      string
		compliant []bool
		wantRate  float64
	}{
		{"two of three", []bool{true, true, false}, 66.67},
		{"all compliant", []bool{true, true}, 100},
		{"none compliant", []bool{false}, 0},
		{"empty is zero", nil, 0},
		{"one of six", []bool{true, false, false, false, false, false}, 16.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var results []models.RuleResult
			for _, c := range tt.compliant {
				results = append(results, models.RuleResult{Compliant: c})
			}
			report := BuildReport("b", results)
			if report.Summary.ComplianceRate != tt.wantRate {
				t.Errorf("ComplianceRate = %v, want %v", report.Summary.ComplianceRate, tt.wantRate)
			}
			if report.Summary.TotalRules != len(tt.compliant) {
				t.Errorf("TotalRules = %d, want %d", report.Summary.TotalRules, len(tt.compliant))
			}
		})
	}
}

func TestScanResultsKeepBaselineOrder(t *testing.T) {
	bundle := emptyBundle()
	bundle.Services = &fakeServices{states: map[string]models.ServiceState{
		"A": {Status: "Running", StartType: "Automatic"},
		"B": {Status: "Stopped", StartType: "Disabled"},
	}}

	b := &models.Baseline{
		Name: "test",
		Rules: []models.Rule{
			{ID: "z", CheckType: models.ServiceCheck, ServiceName: "A", ExpectedValue: "Running"},
			{ID: "a", CheckType: models.ServiceCheck, ServiceName: "B", ExpectedValue: "Disabled"},
			{ID: "m", CheckType: models.ServiceCheck, ServiceName: "A", ExpectedValue: "Stopped"},
		},
	}

	report := New(bundle).Run(context.Background(), b, Options{})
	wantOrder := []string{"z", "a", "m"}
	for i, id := range wantOrder {
		if report.Results[i].RuleID != id {
			t.Errorf("Results[%d].RuleID = %q, want %q", i, report.Results[i].RuleID, id)
		}
	}
}
