package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cardsmith/primerforge/internal/config"
	"github.com/cardsmith/primerforge/internal/primer"
	"github.com/cardsmith/primerforge/internal/render"
)

var (
	generateOutput   string
	generateVariants string
	generateLogFile  string
	generateMargins  bool
	generateVerbose  bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [config.csv]",
	Short: "Render primer card images for every deck in a config spreadsheet",
	Long: `Generate reads a primer config spreadsheet and renders the front and back
card images for every row, along with each deck's QR code.

Variants control which files are written:
  physical  full-bleed canvas for uploading to the print service (default)
  bleed     physical canvas with safe-area guide lines drawn on top
  digital   canvas cropped to the trimmed card

Examples:
  primerforge generate
  primerforge generate decks.csv --output out --variants physical,digital
  primerforge generate --margins --verbose`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := "config.csv"
		if len(args) > 0 {
			configPath = args[0]
		}

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return fmt.Errorf("%s not found, please ensure it exists and run again", configPath)
		}

		appConfig, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %v", err)
		}

		outputDir := appConfig.OutputDir
		if generateOutput != "" {
			outputDir = generateOutput
		}

		variantsRaw := appConfig.Variants
		if generateVariants != "" {
			variantsRaw = generateVariants
		}
		variants, err := render.ParseVariants(variantsRaw)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %v", err)
		}

		logPath := generateLogFile
		if logPath == "" {
			logPath = filepath.Join(outputDir, appConfig.LogFile)
		}
		log, closeLog, err := newRenderLogger(logPath, generateVerbose)
		if err != nil {
			return err
		}
		defer closeLog()

		primers, warnings, err := primer.Load(configPath)
		if err != nil {
			return err
		}
		for _, warning := range warnings {
			log.Warn(warning)
		}

		rendered := 0
		for _, p := range primers {
			log.Info("processing", "primer", p.ImageName)

			card, err := render.Render(p, generateMargins, log)
			if err != nil {
				log.Error("render failed", "primer", p.ImageName, "error", err)
				continue
			}
			if err := render.Save(p, card, outputDir, variants, log); err != nil {
				log.Error("save failed", "primer", p.ImageName, "error", err)
				continue
			}
			rendered++
		}
		log.Info("processing complete", "primers", rendered)

		color.Green("✅ Rendered %d of %d primers into %s", rendered, len(primers), outputDir)
		if rendered != len(primers) {
			return fmt.Errorf("some primers failed to render, see %s", logPath)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Directory to write images into (default from config)")
	generateCmd.Flags().StringVar(&generateVariants, "variants", "", "Comma-separated variants: physical, bleed, digital")
	generateCmd.Flags().StringVar(&generateLogFile, "log-file", "", "Render log path (default logs.txt inside the output directory)")
	generateCmd.Flags().BoolVar(&generateMargins, "margins", false, "Draw safe-area guide lines on the rendered canvases")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Also write the render log to stderr")
}

// newRenderLogger writes the render log to the given file, and to stderr as
// well when verbose is set. The returned func closes the log file.
func newRenderLogger(path string, verbose bool) (*slog.Logger, func() error, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating log file: %v", err)
	}

	var w io.Writer = file
	if verbose {
		w = io.MultiWriter(file, os.Stderr)
	}

	log := slog.New(slog.NewTextHandler(w, nil))
	return log, file.Close, nil
}
