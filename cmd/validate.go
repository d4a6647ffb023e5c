package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardsmith/primerforge/internal/primer"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [config.csv]",
	Short: "Validate a primer config spreadsheet",
	Long: `Validate parses a primer config spreadsheet and reports every problem it
finds without rendering any images: unparseable cells that would fall back to
defaults, duplicate image names, and rows with no text to render.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := "config.csv"
		if len(args) > 0 {
			configPath = args[0]
		}

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return fmt.Errorf("config not found: %s", configPath)
		}

		primers, warnings, err := primer.Load(configPath)
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		errors := checkPrimers(primers)

		// Display validation results
		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(errors) == 0 {
			fmt.Printf("✅ Config '%s' is valid (%d primers).\n", configPath, len(primers))
		} else {
			fmt.Printf("❌ Config '%s' has %d validation errors:\n", configPath, len(errors))
			for i, e := range errors {
				fmt.Printf("%d. %s\n", i+1, e)
			}
		}

		if len(warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warning := range warnings {
				fmt.Printf("%d. %s\n", i+1, warning)
			}
		}

		if len(errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

// checkPrimers reports problems that would produce broken or clobbered
// output files.
func checkPrimers(primers []primer.Primer) []string {
	var errors []string

	seen := make(map[string]int)
	for i, p := range primers {
		if prev, ok := seen[p.ImageName]; ok {
			errors = append(errors, fmt.Sprintf(
				"row %d: image name %q duplicates row %d, output files would overwrite each other",
				i+1, p.ImageName, prev+1))
		} else {
			seen[p.ImageName] = i
		}

		if p.TitleText == "" && p.PointsText == "" && p.SummaryText == "" &&
			p.BackTitleText == "" && p.BackBodyText == "" {
			errors = append(errors, fmt.Sprintf("row %d: no text in any section", i+1))
		}
	}

	return errors
}
