package image

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// The cards use a single embedded bold face so rendering does not depend on
// system fonts. Faces are cached per size; the renderer only ever uses a
// handful of sizes.
var (
	fontOnce   sync.Once
	parsedFont *truetype.Font

	faceMu sync.Mutex
	faces  = map[float64]font.Face{}
)

func boldFace(size float64) font.Face {
	fontOnce.Do(func() {
		f, err := truetype.Parse(gobold.TTF)
		if err != nil {
			// The embedded font is a build-time constant; failing to parse
			// it is a programming error.
			panic("image: parse embedded font: " + err.Error())
		}
		parsedFont = f
	})
	faceMu.Lock()
	defer faceMu.Unlock()
	if face, ok := faces[size]; ok {
		return face
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{Size: size})
	faces[size] = face
	return face
}
