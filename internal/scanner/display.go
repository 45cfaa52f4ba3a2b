package scanner

import (
	"fmt"

	"github.com/fatih/color"

	"wasp/internal/models"
)

// DisplayReport formats and prints the scan results to the console
func DisplayReport(report *models.ScanReport) {
	fmt.Println("============================================")
	fmt.Println("           WASP COMPLIANCE RESULTS          ")
	fmt.Println("============================================")
	fmt.Println()

	fmt.Printf("Baseline: %s\n", report.Summary.BaselineName)
	fmt.Printf("Total rules evaluated: %d\n", report.Summary.TotalRules)
	color.Green("Compliant:     %d", report.Summary.Compliant)
	color.Red("Non-Compliant: %d", report.Summary.NonCompliant)

	rateColor := color.New(color.FgRed, color.Bold)
	switch {
	case report.Summary.ComplianceRate >= 90:
		rateColor = color.New(color.FgGreen, color.Bold)
	case report.Summary.ComplianceRate >= 70:
		rateColor = color.New(color.FgYellow, color.Bold)
	}
	rateColor.Printf("Compliance Rate: %.2f%%\n", report.Summary.ComplianceRate)
	fmt.Println()

	if report.Summary.TotalRules == 0 {
		fmt.Println("No rules were evaluated.")
		return
	}

	if report.Summary.NonCompliant == 0 {
		color.Green("✅ All evaluated rules are compliant.")
		return
	}

	failColor := color.New(color.FgRed)
	failColor.Printf("=== NON-COMPLIANT (%d) ===\n", report.Summary.NonCompliant)
	for _, r := range report.Results {
		if r.Compliant {
			continue
		}
		failColor.Printf("%s %s\n", r.RuleID, r.Title)
		fmt.Printf("   Check Type: %s\n", r.CheckType)
		if r.Resolved {
			fmt.Printf("   Current:  %s\n", r.CurrentValue)
		} else {
			fmt.Println("   Current:  <not resolved>")
		}
		if r.ExpectedValue != "" {
			fmt.Printf("   Expected: %s\n", r.ExpectedValue)
		}
		if r.Details != "" {
			fmt.Printf("   Details:  %s\n", r.Details)
		}
		if r.Error != "" {
			color.Yellow("   Error:    %s", r.Error)
		}
	}
	fmt.Println()

	passColor := color.New(color.FgGreen)
	passColor.Printf("=== COMPLIANT (%d) ===\n", report.Summary.Compliant)
	for _, r := range report.Results {
		if r.Compliant {
			fmt.Printf("- %s %s\n", r.RuleID, r.Title)
		}
	}
}
