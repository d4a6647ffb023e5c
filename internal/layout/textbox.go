package layout

import (
	"image/color"
	"log/slog"
	"regexp"
	"strings"

	"github.com/fogleman/gg"
)

// ParagraphSeparator splits back-body text into bulleted paragraphs.
const ParagraphSeparator = `\p`

// boldMarker tags words that belong to a bold phrase after wrapping.
const boldMarker = "~"

// Box is a measured bounding box in canvas pixels.
type Box struct {
	W float64
	H float64
}

// TextBox lays out one block of text on a card face: it wraps words against
// the canvas margins, shrinks the font until the block fits its height
// budget, and draws the resulting lines with optional centering, bullet
// points and bold phrase highlighting.
type TextBox struct {
	Name        string
	Text        string
	Scale       float64
	Color       color.Color
	LineSpacing float64
	LeftMargin  float64
	RightMargin float64

	ParagraphBreak   bool
	Bullet           bool
	BulletSize       float64
	ParagraphSpacing float64
	BoldWords        []string
	Delim            string
	Splitter         string

	// Computed by Measure
	LineHeight float64
	Width      float64
	Height     float64
	Bound      Box
	Paragraphs [][]string
}

// New creates a TextBox with the common parameters and default options.
// Optional fields (paragraph mode, delimiters, bold words) are set directly
// on the returned value before calling Measure.
func New(name, text string, scale float64, grayLevel int, lineSpacing, leftMargin, rightMargin float64) *TextBox {
	return &TextBox{
		Name:             name,
		Text:             text,
		Scale:            scale,
		Color:            color.Gray{Y: uint8(grayLevel)},
		LineSpacing:      lineSpacing,
		LeftMargin:       leftMargin,
		RightMargin:      rightMargin,
		Bullet:           true,
		BulletSize:       25,
		ParagraphSpacing: 1.5,
		Delim:            " ",
	}
}

// Measure wraps the text against the canvas width and computes the bounding
// box. If the box is taller than maxBoxHeight the font scale is reduced in
// 0.5 steps and the text remeasured, stopping at minScale.
func (tb *TextBox) Measure(dc *gg.Context, maxBoxHeight, minScale float64, log *slog.Logger) {
	for {
		tb.measure(dc)
		if tb.Bound.H <= maxBoxHeight {
			return
		}
		if tb.Scale <= minScale {
			log.Warn("reached minimum font scale", "box", tb.Name, "scale", tb.Scale)
			return
		}
		tb.Scale -= 0.5
		if tb.Scale < minScale {
			tb.Scale = minScale
		}
		log.Info("exceeded maximum bounding box, rescaling",
			"box", tb.Name, "scale", tb.Scale)
	}
}

func (tb *TextBox) measure(dc *gg.Context) {
	dc.SetFontFace(Face(tb.Scale, false))
	spaceW, spaceH := dc.MeasureString(" ")
	tb.LineHeight = spaceH
	tb.Width = 0
	tb.Height = 0

	// Paragraph mode indents every line past the bullet point
	left := tb.LeftMargin
	if tb.ParagraphBreak {
		left += tb.BulletSize + spaceW
	}
	maxX := float64(dc.Width()) - tb.RightMargin

	delim := tb.Delim
	if delim == "" {
		delim = " "
	}

	var rawParagraphs []string
	if tb.ParagraphBreak {
		rawParagraphs = strings.Split(tb.Text, ParagraphSeparator)
	} else {
		rawParagraphs = []string{tb.Text}
	}

	// Greedy wrap: words accumulate on a line until the next one would
	// cross the right margin.
	tb.Paragraphs = tb.Paragraphs[:0]
	for _, raw := range rawParagraphs {
		words := strings.Split(raw, delim)
		currentX := left
		var wrapped strings.Builder

		for ix, word := range words {
			word = strings.TrimLeft(word, " ")
			if ix != 0 {
				word = " " + word
			}
			if ix != len(words)-1 && delim != " " {
				word += tb.Splitter
			}

			wordW, _ := dc.MeasureString(word)
			if currentX+wordW <= maxX {
				wrapped.WriteString(word)
				currentX += wordW
			} else {
				trimmed := strings.TrimPrefix(word, " ")
				wrapped.WriteString("\n")
				wrapped.WriteString(trimmed)
				trimmedW, _ := dc.MeasureString(trimmed)
				currentX = left + trimmedW
			}
		}

		tb.Paragraphs = append(tb.Paragraphs, strings.Split(wrapped.String(), "\n"))
	}

	for i, paragraph := range tb.Paragraphs {
		if i != 0 {
			tb.Height += spaceH * tb.ParagraphSpacing * tb.LineSpacing
		}
		for j, line := range paragraph {
			lineW, lineH := dc.MeasureString(line)
			tb.Height += lineH
			if j != len(paragraph)-1 {
				tb.Height += spaceH * tb.LineSpacing
			}
			if lineW > tb.Width {
				tb.Width = lineW
			}
		}
	}

	tb.Bound = Box{W: tb.Width + 100, H: tb.Height + 80}
}

// PlaceOptions control how Place draws the measured text.
type PlaceOptions struct {
	Centered bool
	Bold     bool
}

// Place draws the measured paragraphs starting at the given baseline origin
// and returns the Y coordinate below the bounding box.
func (tb *TextBox) Place(dc *gg.Context, x, y float64, opts PlaceOptions) float64 {
	face := Face(tb.Scale, false)
	boldFace := Face(tb.Scale, true)
	dc.SetFontFace(face)
	spaceW, spaceH := dc.MeasureString(" ")

	// Center the text block inside its padded bounding box
	currentY := y + (tb.Bound.H-tb.Height)/2

	for i, paragraph := range tb.Paragraphs {
		if i != 0 {
			currentY += (1 + tb.ParagraphSpacing*tb.LineSpacing) * spaceH
		}

		xLeft := x
		if tb.ParagraphBreak && tb.Bullet {
			dc.SetColor(tb.Color)
			dc.DrawCircle(x, currentY-spaceH/2, tb.BulletSize)
			dc.Fill()
			xLeft = x + tb.BulletSize + spaceW
		}

		lines := paragraph
		if opts.Bold && len(tb.BoldWords) > 0 {
			lines = markBoldPhrases(paragraph, tb.BoldWords)
		}

		for j, line := range lines {
			currentX := xLeft
			if opts.Centered {
				lineW, _ := dc.MeasureString(line)
				currentX = (float64(dc.Width()) - lineW) / 2
			}

			for k, word := range strings.Split(line, " ") {
				bold := false
				if opts.Bold && strings.Contains(word, boldMarker) {
					word = strings.ReplaceAll(word, boldMarker, "")
					bold = true
				}
				if k != 0 {
					word = " " + word
				}

				if bold {
					dc.SetFontFace(boldFace)
					dc.SetColor(color.White)
				} else {
					dc.SetFontFace(face)
					dc.SetColor(tb.Color)
				}

				wordW, _ := dc.MeasureString(word)
				dc.DrawString(word, currentX, currentY)
				currentX += wordW
			}
			dc.SetFontFace(face)

			if j != len(lines)-1 {
				currentY += spaceH * (1 + tb.LineSpacing)
			}
		}
	}

	return y + tb.Bound.H
}

// markBoldPhrases tags every word of each bold phrase with the bold marker.
// Phrases are matched across wrapped line boundaries.
func markBoldPhrases(lines []string, phrases []string) []string {
	joined := strings.Join(lines, "\n")

	for _, phrase := range phrases {
		words := strings.Fields(phrase)
		if len(words) == 0 {
			continue
		}
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		re := regexp.MustCompile(strings.Join(quoted, `[ \n]`))

		joined = re.ReplaceAllStringFunc(joined, func(match string) string {
			var out strings.Builder
			var word strings.Builder
			flush := func() {
				if word.Len() > 0 {
					out.WriteString(boldMarker)
					out.WriteString(word.String())
					word.Reset()
				}
			}
			for _, r := range match {
				if r == ' ' || r == '\n' {
					flush()
					out.WriteRune(r)
				} else {
					word.WriteRune(r)
				}
			}
			flush()
			return out.String()
		})
	}

	return strings.Split(joined, "\n")
}
