package layout

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// pointsPerScale maps a config font scale to a point size. Scale 1.0 is
// roughly a 22px glyph, which keeps the documented scale values (3.5 for
// body text, 6.0 for titles) readable on the 3288x4488 canvas.
const pointsPerScale = 22.0

var (
	regularFont = mustParseFont(goregular.TTF)
	boldFont    = mustParseFont(gobold.TTF)

	faceMu    sync.Mutex
	faceCache = map[faceKey]font.Face{}
)

type faceKey struct {
	scale float64
	bold  bool
}

func mustParseFont(ttf []byte) *sfnt.Font {
	f, err := opentype.Parse(ttf)
	if err != nil {
		panic(err)
	}
	return f
}

// Face returns a cached font face for the given config scale.
func Face(scale float64, bold bool) font.Face {
	faceMu.Lock()
	defer faceMu.Unlock()

	key := faceKey{scale: scale, bold: bold}
	if f, ok := faceCache[key]; ok {
		return f
	}

	src := regularFont
	if bold {
		src = boldFont
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    scale * pointsPerScale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic(err)
	}

	faceCache[key] = face
	return face
}
