package scanner

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"wasp/internal/models"
)

// BuildReport aggregates the ordered rule results into a report. Pure over
// its inputs apart from the timestamp; the compliance rate is rounded
// half-up to two decimals and defined as 0 for an empty result set.
func BuildReport(baselineName string, results []models.RuleResult) *models.ScanReport {
	compliant := 0
	for _, r := range results {
		if r.Compliant {
			compliant++
		}
	}

	total := len(results)
	rate := 0.0
	if total > 0 {
		rate = math.Round(float64(compliant)/float64(total)*100*100) / 100
	}

	return &models.ScanReport{
		Summary: models.ScanSummary{
			BaselineName:   baselineName,
			TotalRules:     total,
			Compliant:      compliant,
			NonCompliant:   total - compliant,
			ComplianceRate: rate,
		},
		Results:  results,
		ScanTime: time.Now(),
	}
}

// WriteTextReport renders the report to a plain-text file: the summary block
// followed by one record per rule.
func WriteTextReport(report *models.ScanReport, outputPath string) error {
	var b strings.Builder

	b.WriteString("============================================\n")
	b.WriteString("        WASP COMPLIANCE SCAN REPORT         \n")
	b.WriteString("============================================\n\n")
	fmt.Fprintf(&b, "Baseline:        %s\n", report.Summary.BaselineName)
	fmt.Fprintf(&b, "Scan Time:       %s\n", report.ScanTime.Format(time.RFC3339))
	fmt.Fprintf(&b, "Total Rules:     %d\n", report.Summary.TotalRules)
	fmt.Fprintf(&b, "Compliant:       %d\n", report.Summary.Compliant)
	fmt.Fprintf(&b, "Non-Compliant:   %d\n", report.Summary.NonCompliant)
	fmt.Fprintf(&b, "Compliance Rate: %.2f%%\n\n", report.Summary.ComplianceRate)

	for _, r := range report.Results {
		status := "FAIL"
		if r.Compliant {
			status = "PASS"
		}
		fmt.Fprintf(&b, "[%s] %s %s\n", status, r.RuleID, r.Title)
		fmt.Fprintf(&b, "    Check Type: %s\n", r.CheckType)
		if r.Resolved {
			fmt.Fprintf(&b, "    Current:    %s\n", r.CurrentValue)
		} else {
			b.WriteString("    Current:    <not resolved>\n")
		}
		if r.ExpectedValue != "" {
			fmt.Fprintf(&b, "    Expected:   %s\n", r.ExpectedValue)
		}
		if r.Details != "" {
			fmt.Fprintf(&b, "    Details:    %s\n", r.Details)
		}
		if r.Error != "" {
			fmt.Fprintf(&b, "    Error:      %s\n", r.Error)
		}
		b.WriteString("\n")
	}

	return os.WriteFile(outputPath, []byte(b.String()), 0644)
}

// ExportJSON writes the full report as indented JSON.
func ExportJSON(report *models.ScanReport, outputPath string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(outputPath, data, 0644)
}
