package primer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"image_name,title_text,summary_text,title_font_scale,points_font_color,back_body_line_spacing,top_margin,qr_size,bullet_points,paragraph_spacing",
		"My Deck,Jund,Grindy midrange,,,,,,,",
	}, "\n"))

	primers, warnings, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, primers, 1)

	p := primers[0]
	require.Equal(t, "my_deck", p.ImageName)
	require.Equal(t, "Jund", p.TitleText)
	require.Equal(t, "Grindy midrange", p.SummaryText)
	require.Equal(t, DefaultTitleFontScale, p.TitleFontScale)
	require.Equal(t, DefaultPointsFontColor, p.PointsFontColor)
	require.Equal(t, DefaultBackBodyLineSpacing, p.BackBodyLineSpacing)
	require.Equal(t, DefaultMargin, p.TopMargin)
	require.Equal(t, DefaultQRSize, p.QRSize)
	require.True(t, p.BulletPoints)
	require.Equal(t, DefaultParagraphSpacing, p.ParagraphSpacing)
}

func TestLoadInvalidCellsFallBackWithWarnings(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"image_name,title_font_scale,top_margin,bullet_points",
		"deck,huge,-5,0",
	}, "\n"))

	primers, warnings, err := Load(path)
	require.NoError(t, err)
	require.Len(t, primers, 1)

	p := primers[0]
	require.Equal(t, DefaultTitleFontScale, p.TitleFontScale)
	require.Equal(t, DefaultMargin, p.TopMargin)
	require.False(t, p.BulletPoints)

	require.Len(t, warnings, 2)
	require.Contains(t, warnings[0], "title_font_scale")
	require.Contains(t, warnings[1], "top_margin")
}

func TestLoadDropsUnnamedColumns(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"image_name,title_text,Unnamed: 2",
		"deck,Jund,leftover",
	}, "\n"))

	primers, _, err := Load(path)
	require.NoError(t, err)
	require.Len(t, primers, 1)
	require.Equal(t, "Jund", primers[0].TitleText)
}

func TestLoadSplitsBoldWords(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"image_name,bold_words",
		"deck,Sol Ring; Mana Crypt ;",
	}, "\n"))

	primers, _, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Sol Ring", "Mana Crypt"}, primers[0].BoldWords)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestCleanImageName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rowIx int
		want  string
	}{
		{
			name:  "spaces and punctuation",
			input: `"My Deck!"`,
			want:  "my_deck_",
		},
		{
			name:  "already clean",
			input: "esika_jund",
			want:  "esika_jund",
		},
		{
			name:  "edge characters trimmed",
			input: " .-_Deck_-. ",
			want:  "deck",
		},
		{
			name:  "empty falls back to numbered name",
			input: "",
			rowIx: 4,
			want:  "image_05",
		},
		{
			name:  "only unsafe characters falls back",
			input: `" ."`,
			rowIx: 0,
			want:  "image_01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, cleanImageName(tt.input, tt.rowIx))
		})
	}
}
