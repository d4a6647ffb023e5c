package layout

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMeasureWrapsWithinMargins(t *testing.T) {
	dc := gg.NewContext(1000, 1000)
	tb := New("body", strings.Repeat("wrapping words flow onto new lines ", 6), 1.5, 255, 1.2, 100, 100)

	tb.Measure(dc, 10000, 0.5, testLogger())

	require.Len(t, tb.Paragraphs, 1)
	require.Greater(t, len(tb.Paragraphs[0]), 1, "long text should wrap onto multiple lines")

	dc.SetFontFace(Face(tb.Scale, false))
	maxLineWidth := float64(dc.Width()) - tb.LeftMargin - tb.RightMargin
	for _, line := range tb.Paragraphs[0] {
		w, _ := dc.MeasureString(line)
		// Allow a couple of pixels for kerning differences between
		// per-word and whole-line measurement
		require.LessOrEqual(t, w, maxLineWidth+2, "line crosses right margin: %q", line)
	}
}

func TestMeasureBoundingBoxPadding(t *testing.T) {
	dc := gg.NewContext(1000, 1000)
	tb := New("title", "Jund", 2, 255, 1.2, 100, 100)

	tb.Measure(dc, 10000, 0.5, testLogger())

	require.Equal(t, tb.Width+100, tb.Bound.W)
	require.Equal(t, tb.Height+80, tb.Bound.H)
	require.Greater(t, tb.LineHeight, 0.0)
}

func TestMeasureShrinksFontToFit(t *testing.T) {
	dc := gg.NewContext(1000, 1000)
	tb := New("body", strings.Repeat("far too much text to ever fit ", 40), 4, 255, 1.2, 100, 100)

	tb.Measure(dc, 300, 2, testLogger())

	require.Less(t, tb.Scale, 4.0, "scale should shrink when the box is too tall")
	require.GreaterOrEqual(t, tb.Scale, 2.0, "scale never drops below the minimum")
}

func TestMeasureStopsAtMinimumScale(t *testing.T) {
	dc := gg.NewContext(600, 600)
	tb := New("body", strings.Repeat("unfittable text keeps going ", 80), 5, 255, 1.2, 50, 50)

	tb.Measure(dc, 100, 2.5, testLogger())

	require.Equal(t, 2.5, tb.Scale)
	require.Greater(t, tb.Bound.H, 100.0, "text still overflows at the minimum scale")
}

func TestMeasureSplitsParagraphs(t *testing.T) {
	dc := gg.NewContext(1000, 1000)
	tb := New("back", `Mulligan for ramp.\pRemove blockers.\pClose fast.`, 1.5, 255, 1.1, 100, 100)
	tb.ParagraphBreak = true

	tb.Measure(dc, 10000, 0.5, testLogger())

	require.Len(t, tb.Paragraphs, 3)
	require.Equal(t, "Mulligan for ramp.", tb.Paragraphs[0][0])
	require.Equal(t, "Close fast.", tb.Paragraphs[2][0])
}

func TestMeasureCustomDelimiter(t *testing.T) {
	dc := gg.NewContext(2000, 1000)
	tb := New("points", "Sol Ring;Mana Crypt;Mox Diamond", 1.5, 255, 1.2, 100, 100)
	tb.Delim = ";"
	tb.Splitter = ","

	tb.Measure(dc, 10000, 0.5, testLogger())

	require.Equal(t, "Sol Ring, Mana Crypt, Mox Diamond", strings.Join(tb.Paragraphs[0], " "))
}

func TestPlaceReturnsNextY(t *testing.T) {
	dc := gg.NewContext(1000, 1000)
	tb := New("title", "Jund", 2, 255, 1.2, 100, 100)
	tb.Measure(dc, 10000, 0.5, testLogger())

	nextY := tb.Place(dc, 100, 200, PlaceOptions{})
	require.Equal(t, 200+tb.Bound.H, nextY)
}

func TestMarkBoldPhrases(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		phrases []string
		want    []string
	}{
		{
			name:    "phrase within a line",
			lines:   []string{"play Sol Ring early", "and win"},
			phrases: []string{"Sol Ring"},
			want:    []string{"play ~Sol ~Ring early", "and win"},
		},
		{
			name:    "phrase split across wrapped lines",
			lines:   []string{"win with Sol", "Ring on turn one"},
			phrases: []string{"Sol Ring"},
			want:    []string{"win with ~Sol", "~Ring on turn one"},
		},
		{
			name:    "multiple phrases",
			lines:   []string{"Ramp into Esika then grind"},
			phrases: []string{"Esika", "grind"},
			want:    []string{"Ramp into ~Esika then ~grind"},
		},
		{
			name:    "no match leaves lines untouched",
			lines:   []string{"nothing to see"},
			phrases: []string{"Sol Ring"},
			want:    []string{"nothing to see"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, markBoldPhrases(tt.lines, tt.phrases))
		})
	}
}
