package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardsmith/primerforge/internal/config"
)

const starterConfig = `image_name,title_text,points_text,summary_text,back_title_text,back_body_text,title_font_scale,points_font_scale,summary_font_scale,back_title_font_scale,back_body_font_scale,title_font_color,points_font_color,summary_font_color,back_title_font_color,back_body_font_color,title_line_spacing,points_line_spacing,summary_line_spacing,back_title_line_spacing,back_body_line_spacing,top_margin,bot_margin,left_margin,right_margin,qr_url,qr_size,qr_offset,line_break_spacing,bullet_points,bold_words,paragraph_spacing
sample_deck,Sample Deck,Sol Ring;Mana Crypt,A midrange deck that grinds out value and closes with big threats.,How to Pilot,Mulligan for early ramp.\pUse removal on mana creatures.\pClose the game before turn ten.,,,,,,,,,,,,,,,,,,,,https://moxfield.com/decks/example,,,,1,big threats,
`

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter config spreadsheet and the app config",
	Run: func(cmd *cobra.Command, args []string) {
		// Initialize app config
		_, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error initializing config: %v\n", err)
			return
		}

		configPath := config.GetConfigFilePath()
		fmt.Println("Config file initialized at:", configPath)

		// Write a starter spreadsheet unless one already exists
		if _, err := os.Stat("config.csv"); err == nil {
			fmt.Println("config.csv already exists, leaving it in place.")
			return
		}

		if err := os.WriteFile("config.csv", []byte(starterConfig), 0644); err != nil {
			fmt.Printf("Error writing config.csv: %v\n", err)
			return
		}

		fmt.Println("Starter spreadsheet written to config.csv")
		fmt.Println("Edit it and run 'primerforge generate' to render your primers.")
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
