package cmd

import (
	"crypto/md5"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cardsmith/primerforge/internal/ansi"
	"github.com/cardsmith/primerforge/internal/config"
	"github.com/cardsmith/primerforge/internal/primer"
	"github.com/cardsmith/primerforge/internal/render"
)

// Preview art is sized to the card aspect ratio with half-block cells,
// which pack two pixel rows per character.
const (
	previewWidth  = 40
	previewHeight = 27
)

var previewSide string

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview [config.csv] <image_name>",
	Short: "Render a primer in the terminal as ANSI art",
	Long: `Preview renders one primer from a config spreadsheet and displays it as
ANSI terminal art alongside its metadata, without writing any image files.
Rendered art is cached, so repeat previews of an unchanged row are instant.

Examples:
  primerforge preview esika_jund
  primerforge preview decks.csv esika_jund --side back`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := "config.csv"
		name := args[0]
		if len(args) == 2 {
			configPath = args[0]
			name = args[1]
		}

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return fmt.Errorf("config not found: %s", configPath)
		}

		primers, _, err := primer.Load(configPath)
		if err != nil {
			return err
		}

		var target *primer.Primer
		for i := range primers {
			if primers[i].ImageName == name {
				target = &primers[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("primer not found in %s: %s", configPath, name)
		}

		frontArt, backArt, err := primerArt(*target)
		if err != nil {
			return err
		}

		switch previewSide {
		case "front":
			displayPrimer(*target, frontArt, "Front")
		case "back":
			displayPrimer(*target, backArt, "Back")
		case "both":
			displayPrimer(*target, frontArt, "Front")
			displayPrimer(*target, backArt, "Back")
		default:
			return fmt.Errorf("invalid side: %s (supported: front, back, both)", previewSide)
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewSide, "side", "front", "Card face to preview: front, back, or both")
}

// primerArt returns the ANSI art for both faces, rendering and caching it
// when no cached copy exists for this exact row.
func primerArt(p primer.Primer) (front, back string, err error) {
	cacheDir := filepath.Join(config.GetCacheDir(), "ansi_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create ANSI cache directory: %v", err)
	}

	// The cache key covers every field that affects the rendered pixels
	key := fmt.Sprintf("%x", md5.Sum([]byte(fmt.Sprintf("%+v|%dx%d", p, previewWidth, previewHeight))))
	frontPath := filepath.Join(cacheDir, key+"_front.ansi")
	backPath := filepath.Join(cacheDir, key+"_back.ansi")

	if frontBytes, err := os.ReadFile(frontPath); err == nil {
		if backBytes, err := os.ReadFile(backPath); err == nil {
			return string(frontBytes), string(backBytes), nil
		}
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	card, err := render.Render(p, false, log)
	if err != nil {
		return "", "", fmt.Errorf("error rendering primer: %v", err)
	}

	front = ansi.Render(card.Front.Image(), previewWidth, previewHeight)
	back = ansi.Render(card.Back.Image(), previewWidth, previewHeight)

	if err := os.WriteFile(frontPath, []byte(front), 0644); err != nil {
		return "", "", fmt.Errorf("failed to cache ANSI art: %v", err)
	}
	if err := os.WriteFile(backPath, []byte(back), 0644); err != nil {
		return "", "", fmt.Errorf("failed to cache ANSI art: %v", err)
	}

	return front, back, nil
}

// displayPrimer prints one face's ANSI art with the primer metadata alongside
func displayPrimer(p primer.Primer, art, side string) {
	artLines := strings.Split(art, "\n")
	maxArtWidth := 0
	for _, line := range artLines {
		visibleWidth := len(ansi.StripEscapes(line))
		if visibleWidth > maxArtWidth {
			maxArtWidth = visibleWidth
		}
	}

	// Get terminal width
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	var infoLines []string
	infoLines = append(infoLines, colorize.CyanString("Primer: ")+colorize.HiWhiteString(p.ImageName))
	infoLines = append(infoLines, colorize.CyanString("Face:   ")+colorize.HiWhiteString(side))
	if p.TitleText != "" {
		infoLines = append(infoLines, colorize.CyanString("Title:  ")+colorize.HiWhiteString(p.TitleText))
	}
	if p.PointsText != "" {
		points := strings.Join(strings.Split(p.PointsText, ";"), ", ")
		infoLines = append(infoLines, colorize.CyanString("Points: ")+colorize.HiWhiteString(points))
	}
	if p.QRURL != "" {
		infoLines = append(infoLines, colorize.CyanString("List:   ")+colorize.HiWhiteString(p.QRURL))
	}

	spacing := 4
	infoStartCol := maxArtWidth + spacing

	infoWidth := width - infoStartCol - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	if p.SummaryText != "" {
		infoLines = append(infoLines, "")
		infoLines = append(infoLines, colorize.CyanString("Summary:"))
		infoLines = append(infoLines, wrapText(p.SummaryText, infoWidth)...)
	}

	fmt.Println()

	maxLines := max(len(artLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Print("  ")
		if i < len(artLines) {
			fmt.Print(artLines[i])
			visibleWidth := len(ansi.StripEscapes(artLines[i]))
			fmt.Print(strings.Repeat(" ", infoStartCol-visibleWidth))
		} else {
			fmt.Print(strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Print(infoLines[i])
		}

		fmt.Println()
	}

	fmt.Println()
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}
