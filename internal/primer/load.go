package primer

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Default values applied when a spreadsheet cell is missing or invalid.
const (
	DefaultTitleFontScale     = 6.0
	DefaultPointsFontScale    = 5.0
	DefaultSummaryFontScale   = 3.5
	DefaultBackTitleFontScale = 6.0
	DefaultBackBodyFontScale  = 3.5

	DefaultTitleFontColor     = 255
	DefaultPointsFontColor    = 220
	DefaultSummaryFontColor   = 180
	DefaultBackTitleFontColor = 255
	DefaultBackBodyFontColor  = 180

	DefaultLineSpacing         = 1.2
	DefaultBackBodyLineSpacing = 1.1

	DefaultMargin           = 400
	DefaultQRSize           = 600
	DefaultQROffset         = 75
	DefaultLineBreakSpacing = 35
	DefaultParagraphSpacing = 1.5
)

var (
	floatPattern    = regexp.MustCompile(`^\d+\.?\d*$`)
	intPattern      = regexp.MustCompile(`^\d+$`)
	unsafeNameRunes = regexp.MustCompile(`[.#<$+%>!` + "`" + `&*'"|{}?=/:\\@, ]`)
	unnamedColumn   = regexp.MustCompile(`^Unnamed: \d+$`)
)

// Load reads a primer config spreadsheet and returns one Primer per row.
// Missing or invalid cells fall back to documented defaults; the returned
// warnings describe every substitution so a validate run can surface them.
func Load(path string) ([]Primer, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening config: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing config: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("config %s has no header row", path)
	}

	// Map column names to indices, dropping spreadsheet-export artifacts
	columns := make(map[string]int)
	for i, name := range records[0] {
		name = strings.TrimSpace(name)
		if name == "" || unnamedColumn.MatchString(name) {
			continue
		}
		columns[name] = i
	}

	var primers []Primer
	var warnings []string

	for rowIx, record := range records[1:] {
		row := rowReader{columns: columns, record: record, row: rowIx}
		p := Primer{
			ImageName:     cleanImageName(row.cell("image_name"), rowIx),
			TitleText:     row.cell("title_text"),
			PointsText:    row.cell("points_text"),
			SummaryText:   row.cell("summary_text"),
			BackTitleText: row.cell("back_title_text"),
			BackBodyText:  row.cell("back_body_text"),

			TitleFontScale:     row.float("title_font_scale", DefaultTitleFontScale),
			PointsFontScale:    row.float("points_font_scale", DefaultPointsFontScale),
			SummaryFontScale:   row.float("summary_font_scale", DefaultSummaryFontScale),
			BackTitleFontScale: row.float("back_title_font_scale", DefaultBackTitleFontScale),
			BackBodyFontScale:  row.float("back_body_font_scale", DefaultBackBodyFontScale),

			TitleFontColor:     row.int("title_font_color", DefaultTitleFontColor),
			PointsFontColor:    row.int("points_font_color", DefaultPointsFontColor),
			SummaryFontColor:   row.int("summary_font_color", DefaultSummaryFontColor),
			BackTitleFontColor: row.int("back_title_font_color", DefaultBackTitleFontColor),
			BackBodyFontColor:  row.int("back_body_font_color", DefaultBackBodyFontColor),

			TitleLineSpacing:     row.float("title_line_spacing", DefaultLineSpacing),
			PointsLineSpacing:    row.float("points_line_spacing", DefaultLineSpacing),
			SummaryLineSpacing:   row.float("summary_line_spacing", DefaultLineSpacing),
			BackTitleLineSpacing: row.float("back_title_line_spacing", DefaultLineSpacing),
			BackBodyLineSpacing:  row.float("back_body_line_spacing", DefaultBackBodyLineSpacing),

			TopMargin:   row.int("top_margin", DefaultMargin),
			BotMargin:   row.int("bot_margin", DefaultMargin),
			LeftMargin:  row.int("left_margin", DefaultMargin),
			RightMargin: row.int("right_margin", DefaultMargin),

			QRURL:    row.cell("qr_url"),
			QRSize:   row.int("qr_size", DefaultQRSize),
			QROffset: row.int("qr_offset", DefaultQROffset),

			LineBreakSpacing: row.int("line_break_spacing", DefaultLineBreakSpacing),
			BulletPoints:     row.bool("bullet_points", true),
			BoldWords:        splitBoldWords(row.cell("bold_words")),
			ParagraphSpacing: row.float("paragraph_spacing", DefaultParagraphSpacing),
		}

		warnings = append(warnings, row.warnings...)
		primers = append(primers, p)
	}

	return primers, warnings, nil
}

// rowReader fetches typed cells from one CSV record, recording a warning each
// time an invalid cell is replaced with its default.
type rowReader struct {
	columns  map[string]int
	record   []string
	row      int
	warnings []string
}

func (r *rowReader) cell(name string) string {
	ix, ok := r.columns[name]
	if !ok || ix >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[ix])
}

func (r *rowReader) float(name string, alt float64) float64 {
	raw := r.cell(name)
	if raw == "" {
		return alt
	}
	if !floatPattern.MatchString(raw) {
		r.warn(name, raw, fmt.Sprintf("%g", alt))
		return alt
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.warn(name, raw, fmt.Sprintf("%g", alt))
		return alt
	}
	return v
}

func (r *rowReader) int(name string, alt int) int {
	raw := r.cell(name)
	if raw == "" {
		return alt
	}
	if !intPattern.MatchString(raw) {
		r.warn(name, raw, strconv.Itoa(alt))
		return alt
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.warn(name, raw, strconv.Itoa(alt))
		return alt
	}
	return v
}

func (r *rowReader) bool(name string, alt bool) bool {
	switch r.cell(name) {
	case "1":
		return true
	case "0":
		return false
	default:
		return alt
	}
}

func (r *rowReader) warn(name, raw, used string) {
	r.warnings = append(r.warnings,
		fmt.Sprintf("row %d: invalid %s %q, using %s", r.row+1, name, raw, used))
}

// cleanImageName sanitizes a user-provided image name for use as a filename.
// Empty names fall back to a numbered placeholder.
func cleanImageName(name string, rowIx int) string {
	if name == "" {
		return fmt.Sprintf("image_%02d", rowIx+1)
	}
	name = strings.ToLower(name)
	name = strings.Trim(name, `" .-_`)
	name = unsafeNameRunes.ReplaceAllString(name, "_")
	if name == "" {
		return fmt.Sprintf("image_%02d", rowIx+1)
	}
	return name
}

func splitBoldWords(raw string) []string {
	if raw == "" {
		return nil
	}
	var words []string
	for _, w := range strings.Split(raw, ";") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}
