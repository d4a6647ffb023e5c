package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "primerforge",
	Short: "Tool for generating printable deck primer cards",
	Long: `Primerforge renders high-resolution deck primer card images from a CSV
spreadsheet describing each deck. Output images are sized for MakePlayingCards
print sheets, with front and back faces, optional bleed-line and digital
variants, and QR codes linking to each full deck list.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
