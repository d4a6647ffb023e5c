package render

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"

	"github.com/cardsmith/primerforge/internal/primer"
)

// BleedMargin is the MakePlayingCards bleed allowance in pixels at the
// card canvas resolution. The digital variant crops it away.
const BleedMargin = 144

// Variant selects which output images Save writes for each primer.
type Variant string

const (
	// VariantPhysical is the full-bleed canvas uploaded to the printer.
	VariantPhysical Variant = "physical"
	// VariantBleed is the physical canvas with safe-area guide lines drawn.
	VariantBleed Variant = "bleed"
	// VariantDigital is the canvas cropped to the trimmed card.
	VariantDigital Variant = "digital"
)

// ParseVariants parses a comma-separated variant list.
func ParseVariants(raw string) ([]Variant, error) {
	var variants []Variant
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch v := Variant(part); v {
		case VariantPhysical, VariantBleed, VariantDigital:
			variants = append(variants, v)
		default:
			return nil, fmt.Errorf("unknown variant: %s (supported: physical, bleed, digital)", part)
		}
	}
	if len(variants) == 0 {
		variants = []Variant{VariantPhysical}
	}
	return variants, nil
}

// Save writes the requested variants of a rendered card, plus its QR code,
// into the output directory.
func Save(p primer.Primer, card *Card, outputDir string, variants []Variant, log *slog.Logger) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	if card.QR != nil {
		log.Info("saving QR code", "primer", p.ImageName)
		qrPath := filepath.Join(outputDir, p.ImageName+"_qr.png")
		if err := gg.SavePNG(qrPath, card.QR); err != nil {
			return fmt.Errorf("error saving QR code: %w", err)
		}
	}

	faces := []struct {
		side string
		dc   *gg.Context
	}{
		{"front", card.Front},
		{"back", card.Back},
	}

	for _, variant := range variants {
		for _, face := range faces {
			img := variantImage(face.dc, variant, float64(p.LeftMargin), float64(p.TopMargin))

			name := fmt.Sprintf("%s_%s.png", p.ImageName, face.side)
			if variant != VariantPhysical {
				name = fmt.Sprintf("%s_%s_%s.png", p.ImageName, face.side, variant)
			}

			log.Info("saving image", "primer", p.ImageName, "file", name)
			if err := gg.SavePNG(filepath.Join(outputDir, name), img); err != nil {
				return fmt.Errorf("error saving %s: %w", name, err)
			}
		}
	}

	return nil
}

// variantImage derives the image for one variant without touching the
// rendered canvas.
func variantImage(dc *gg.Context, variant Variant, leftMargin, topMargin float64) image.Image {
	switch variant {
	case VariantBleed:
		overlay := gg.NewContextForImage(dc.Image())
		drawMargins(overlay, leftMargin-50, topMargin-50)
		return overlay.Image()
	case VariantDigital:
		return cropBleed(dc.Image())
	default:
		return dc.Image()
	}
}

// cropBleed trims the bleed allowance from every edge.
func cropBleed(img image.Image) image.Image {
	bounds := img.Bounds()
	inner := image.Rect(
		bounds.Min.X+BleedMargin, bounds.Min.Y+BleedMargin,
		bounds.Max.X-BleedMargin, bounds.Max.Y-BleedMargin,
	)

	type subImager interface {
		SubImage(image.Rectangle) image.Image
	}
	if src, ok := img.(subImager); ok {
		return src.SubImage(inner)
	}

	// Fallback for image types without SubImage support
	cropped := gg.NewContext(inner.Dx(), inner.Dy())
	cropped.DrawImage(img, -inner.Min.X, -inner.Min.Y)
	return cropped.Image()
}
