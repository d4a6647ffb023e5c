package render

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/fogleman/gg"

	"github.com/cardsmith/primerforge/internal/layout"
	"github.com/cardsmith/primerforge/internal/primer"
)

// Canvas dimensions and background for MakePlayingCards bridge-size sheets.
const (
	CanvasWidth  = 3288
	CanvasHeight = 4488
	Background   = 34
)

// QRCaption is printed to the left of the QR code on the front face.
const QRCaption = "Scan the QR code on the right to see the full deck list on Moxfield. " +
	"For more information, see the other side of this card."

// Card is a fully rendered primer: both faces plus the raw QR code image.
type Card struct {
	Front *gg.Context
	Back  *gg.Context
	QR    image.Image

	// Overflow is set when a face's text could not fit the canvas even at
	// minimum font scale, in which case that face is left blank.
	FrontOverflow bool
	BackOverflow  bool
}

// Render composes the front and back faces of a primer card. When
// showMargins is set the safe-area guide lines are drawn onto both faces.
func Render(p primer.Primer, showMargins bool, log *slog.Logger) (*Card, error) {
	log.Info("calculating bounding boxes", "primer", p.ImageName)

	front := newCanvas()
	back := newCanvas()

	left := float64(p.LeftMargin)
	right := float64(p.RightMargin)
	top := float64(p.TopMargin)
	lineBreak := float64(p.LineBreakSpacing)

	summary := layout.New("summary", p.SummaryText,
		p.SummaryFontScale, p.SummaryFontColor, p.SummaryLineSpacing, left, right)
	summary.BoldWords = p.BoldWords
	summary.Measure(front, 1000, 2.5, log)

	// The QR code reserves horizontal room for its caption
	var qrRaw, qrImg image.Image
	var qrCaption *layout.TextBox
	if p.QRURL != "" {
		raw, scaled, err := qrImages(p.QRURL, p.QRSize)
		if err != nil {
			return nil, err
		}
		qrRaw = raw
		qrImg = scaled

		qrCaption = layout.New("qr caption", QRCaption,
			summary.Scale, p.SummaryFontColor, p.SummaryLineSpacing,
			left, right+float64(p.QROffset)+float64(qrImg.Bounds().Dx()))
		qrCaption.Measure(front, 500, summary.Scale, log)
	} else {
		log.Warn("no QR URL set, skipping QR code", "primer", p.ImageName)
	}

	// The prefix width sets the left margin for the points list
	pointsPrefix := layout.New("points prefix", "Points: ",
		p.PointsFontScale, p.PointsFontColor, p.PointsLineSpacing, left, right)
	pointsPrefix.Measure(front, 200, summary.Scale+0.5, log)

	points := layout.New("points", p.PointsText,
		p.PointsFontScale, p.PointsFontColor, p.PointsLineSpacing,
		left+pointsPrefix.Width, right)
	points.Delim = ";"
	points.Splitter = ","
	points.Measure(front, 600, summary.Scale+0.5, log)

	// If the points list shrank below the prefix, bring the prefix down to
	// match and rewrap the list against the narrower prefix.
	if points.Scale < pointsPrefix.Scale {
		log.Info("points text smaller than prefix, recalculating", "primer", p.ImageName)
		pointsPrefix.Scale = points.Scale
		pointsPrefix.Measure(front, 200, points.Scale, log)
		points.LeftMargin = left + pointsPrefix.Width
		points.Measure(front, 600, points.Scale, log)
	}

	title := layout.New("front title", p.TitleText,
		p.TitleFontScale, p.TitleFontColor, p.TitleLineSpacing, left, right)
	title.Measure(front, 280, points.Scale+0.5, log)

	backBody := layout.New("back body", p.BackBodyText,
		p.BackBodyFontScale, p.BackBodyFontColor, p.BackBodyLineSpacing, left, right)
	backBody.BoldWords = p.BoldWords
	backBody.ParagraphBreak = true
	backBody.Bullet = p.BulletPoints
	backBody.ParagraphSpacing = p.ParagraphSpacing
	backBody.Measure(back, 2400, 2.5, log)

	backTitle := layout.New("back title", p.BackTitleText,
		p.BackTitleFontScale, p.BackTitleFontColor, p.BackTitleLineSpacing, left, right)
	backTitle.Measure(back, 280, backBody.Scale+1, log)

	var qrHeight float64
	if qrImg != nil {
		qrHeight = float64(qrImg.Bounds().Dy())
	}
	frontSpace := verticalSpace([]*layout.TextBox{title, points, summary},
		qrHeight, top, float64(p.BotMargin), lineBreak, 2, 100)
	backSpace := verticalSpace([]*layout.TextBox{backTitle},
		0, top, float64(p.BotMargin), lineBreak, 1, backBody.LineHeight+backBody.Height)

	card := &Card{Front: front, Back: back, QR: qrRaw}

	if frontSpace <= CanvasHeight {
		titleY := top + title.LineHeight
		titlePointsLineY := titleY + title.Bound.H - lineBreak
		pointsY := titlePointsLineY + 2*lineBreak + points.LineHeight
		summaryY := pointsY + points.Bound.H + summary.LineHeight
		summaryQRLineY := summaryY + summary.Bound.H + lineBreak

		title.Place(front, left, titleY, layout.PlaceOptions{Centered: true})
		placeLine(front, left-50, float64(CanvasWidth)-right+50,
			titlePointsLineY, titlePointsLineY, color.White, 5)
		pointsPrefix.Place(front, left, pointsY, layout.PlaceOptions{})
		points.Place(front, left+pointsPrefix.Width, pointsY, layout.PlaceOptions{})
		summary.Place(front, left, summaryY, layout.PlaceOptions{Bold: true})
		placeLine(front, left-50, float64(CanvasWidth)-right+50,
			summaryQRLineY, summaryQRLineY, color.White, 5)

		if qrImg != nil {
			qrX := CanvasWidth - p.RightMargin - qrImg.Bounds().Dx()
			qrBottom := placeQR(front, qrImg, qrX, int(summaryQRLineY), 200)
			qrCaption.Place(front, left,
				float64(qrBottom)-qrCaption.Bound.H+(qrCaption.Bound.H-qrCaption.Height)/2,
				layout.PlaceOptions{})
		}
	} else {
		log.Warn("front text uses too much vertical space", "primer", p.ImageName)
		card.FrontOverflow = true
	}

	if backSpace <= CanvasHeight {
		backTitleY := top + backTitle.LineHeight
		backTitleBodyLineY := backTitleY + backTitle.Bound.H - lineBreak
		backBodyY := backTitleBodyLineY + 2*lineBreak + backBody.LineHeight

		backTitle.Place(back, left, backTitleY, layout.PlaceOptions{Centered: true})
		placeLine(back, left-50, float64(CanvasWidth)-right+50,
			backTitleBodyLineY, backTitleBodyLineY, color.White, 5)
		backBody.Place(back, left, backBodyY, layout.PlaceOptions{Bold: true})
	} else {
		log.Warn("back text uses too much vertical space", "primer", p.ImageName)
		card.BackOverflow = true
	}

	if showMargins {
		drawMargins(front, left-50, top-50)
		drawMargins(back, left-50, top-50)
	}

	return card, nil
}

func newCanvas() *gg.Context {
	dc := gg.NewContext(CanvasWidth, CanvasHeight)
	dc.SetRGB255(Background, Background, Background)
	dc.Clear()
	return dc
}

// verticalSpace totals the height the given boxes need, including margins,
// separator line spacing, QR height and extra padding.
func verticalSpace(boxes []*layout.TextBox, qrHeight, topMargin, botMargin, lineBreakSpacing float64, numLineBreaks int, padding float64) float64 {
	space := topMargin + botMargin + float64(numLineBreaks)*lineBreakSpacing + qrHeight + padding
	for _, box := range boxes {
		space += box.Bound.H + box.LineHeight
	}
	return space
}

func placeLine(dc *gg.Context, x1, x2, y1, y2 float64, c color.Color, width float64) {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()
}

// placeQR pastes the QR code with half the padding above it and returns the
// Y coordinate of its bottom edge.
func placeQR(dc *gg.Context, qr image.Image, x, y, padding int) int {
	top := y + padding/2
	dc.DrawImage(qr, x, top)
	return top + qr.Bounds().Dy()
}

// drawMargins overlays the safe-area guide lines used to check bleed
// placement before uploading to a print service.
func drawMargins(dc *gg.Context, xMargin, yMargin float64) {
	horizontal := color.RGBA{R: 255, G: 255, B: 0, A: 255}
	vertical := color.RGBA{G: 255, B: 255, A: 255}
	w := float64(dc.Width())
	h := float64(dc.Height())

	placeLine(dc, xMargin, w-xMargin, yMargin, yMargin, horizontal, 5)
	placeLine(dc, xMargin, w-xMargin, h-yMargin, h-yMargin, horizontal, 5)
	placeLine(dc, xMargin, xMargin, yMargin, h-yMargin, vertical, 5)
	placeLine(dc, w-xMargin, w-xMargin, yMargin, h-yMargin, vertical, 5)
}
