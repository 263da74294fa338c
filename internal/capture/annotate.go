package capture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	labelDPI     float64 = 72
	labelSize    float64 = 14
	labelPadding         = 4
)

var labelBackground = color.RGBA{A: 0xa0}

// Annotator writes slot names onto composite tiles.
type Annotator struct {
	font *truetype.Font
}

func NewAnnotator() (*Annotator, error) {
	parsed, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &Annotator{font: parsed}, nil
}

// Label draws text in the top-left corner of tile on a translucent band.
func (a *Annotator) Label(img *image.RGBA, tile image.Rectangle, text string) error {
	ctx := freetype.NewContext()
	ctx.SetDPI(labelDPI)
	ctx.SetFont(a.font)
	ctx.SetFontSize(labelSize)
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(tile)
	ctx.SetDst(img)
	ctx.SetSrc(image.White)

	lineHeight := int(ctx.PointToFixed(labelSize) >> 6)
	band := image.Rect(tile.Min.X, tile.Min.Y, tile.Max.X, tile.Min.Y+lineHeight+2*labelPadding).Intersect(tile)
	draw.Draw(img, band, image.NewUniform(labelBackground), image.Point{}, draw.Over)

	pt := freetype.Pt(tile.Min.X+labelPadding, tile.Min.Y+labelPadding+lineHeight)
	if _, err := ctx.DrawString(strings.ToUpper(text), pt); err != nil {
		return fmt.Errorf("draw %q: %w", text, err)
	}
	return nil
}
