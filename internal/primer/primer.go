package primer

// Primer holds the full description of one deck primer card: the text for the
// front and back faces plus the typography and layout parameters used to
// render them. One Primer corresponds to one row of the config spreadsheet.
type Primer struct {
	ImageName string

	// Front face
	TitleText   string
	PointsText  string
	SummaryText string

	// Back face
	BackTitleText string
	BackBodyText  string

	// Font scales
	TitleFontScale     float64
	PointsFontScale    float64
	SummaryFontScale   float64
	BackTitleFontScale float64
	BackBodyFontScale  float64

	// Grayscale font colors (0-255)
	TitleFontColor     int
	PointsFontColor    int
	SummaryFontColor   int
	BackTitleFontColor int
	BackBodyFontColor  int

	// Line spacings
	TitleLineSpacing     float64
	PointsLineSpacing    float64
	SummaryLineSpacing   float64
	BackTitleLineSpacing float64
	BackBodyLineSpacing  float64

	// Margins
	TopMargin   int
	BotMargin   int
	LeftMargin  int
	RightMargin int

	// QR code
	QRURL    string
	QRSize   int
	QROffset int

	LineBreakSpacing int
	BulletPoints     bool
	BoldWords        []string
	ParagraphSpacing float64
}
