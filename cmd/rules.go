package cmd

import (
	"fmt"

	"wasp/internal/baseline"
	"wasp/internal/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	rulesBaselineFile string
	rulesLevelFilter  string
	showSkipped       bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Shows the rules in a baseline",
	Long:  `Show the rules a baseline contains, with per-kind and per-level counts.`,
	Run: func(cmd *cobra.Command, args []string) {
		b, err := baseline.LoadBaseline(rulesBaselineFile)
		if err != nil {
			er(fmt.Sprintf("Error loading baseline: %v", err))
		}

		rules := baseline.FilterByLevel(b.Rules, rulesLevelFilter)

		color.Cyan("Baseline: %s", b.Name)
		if b.Version != "" {
			fmt.Printf("Version: %s\n", b.Version)
		}
		fmt.Printf("Rules: %d\n\n", len(rules))

		byKind := make(map[models.CheckType]int)
		skipped := 0
		for _, r := range rules {
			byKind[r.CheckType]++
			if r.Skip {
				skipped++
			}
		}
		for _, kind := range []models.CheckType{
			models.RegistryCheck, models.ServiceCheck,
			models.AuditPolicyCheck, models.SecurityPolicyCheck,
		} {
			if byKind[kind] > 0 {
				fmt.Printf("  %s: %d\n", kind, byKind[kind])
			}
		}
		if skipped > 0 {
			color.Yellow("  skipped: %d", skipped)
		}
		fmt.Println()

		for _, r := range rules {
			if r.Skip && !showSkipped {
				continue
			}
			marker := " "
			if r.Skip {
				marker = "S"
			}
			fmt.Printf("%s %-10s [%s] %s\n", marker, r.ID, r.CheckType, r.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().StringVar(&rulesBaselineFile, "baseline",
		envOrDefault("WASP_BASELINE", "baseline.json"), "Path to the baseline file (JSON or YAML)")
	rulesCmd.Flags().StringVar(&rulesLevelFilter, "level", "Both", "Profile level filter (Level1, Level2, Both)")
	rulesCmd.Flags().BoolVar(&showSkipped, "show-skipped", false, "Include rules marked skip")
}
