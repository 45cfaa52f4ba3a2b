package cmd

import (
	"fmt"
	"os"

	"wasp/internal/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wasp",
	Short: "WASP - Windows compliance scanner",
	Long: `WASP (Windows Audit & Security Profiler) evaluates a Windows host
against a declarative CIS baseline and reports per-rule compliance.`,
}

func Execute() error {
	utils.DisplayBanner()

	return rootCmd.Execute()
}

func init() {
	// Optional .env so WASP_* variables can seed flag defaults.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().Bool("diagnostics", false, "Enable diagnostic output for debugging")
}

func er(msg interface{}) {
	fmt.Println("Error:", msg)
	os.Exit(1)
}

// envOrDefault returns the value of an environment variable, or the fallback
// when it is unset.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
