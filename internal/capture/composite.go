package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

const (
	contentTypePNG = "image/png"

	// CombinedField is the multipart field of the composite strip.
	CombinedField = "photo_combined"

	DefaultTileWidth  = 320
	DefaultTileHeight = 240
)

// Compositor concatenates captures side by side at a fixed tile size.
type Compositor struct {
	TileWidth  int
	TileHeight int
	// Annotator labels each tile with its slot name when set.
	Annotator *Annotator
}

// NewCompositor returns a compositor for w×h tiles; non-positive sizes fall
// back to 320×240.
func NewCompositor(w, h int, annotator *Annotator) *Compositor {
	if w <= 0 || h <= 0 {
		w, h = DefaultTileWidth, DefaultTileHeight
	}
	return &Compositor{TileWidth: w, TileHeight: h, Annotator: annotator}
}

// Combine draws frames left to right in the given order and returns the PNG.
func (c *Compositor) Combine(slots []Slot, frames []*Frame) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrNothingCaptured
	}
	if len(slots) != len(frames) {
		return nil, fmt.Errorf("got %d slots for %d frames", len(slots), len(frames))
	}

	strip := image.NewRGBA(image.Rect(0, 0, c.TileWidth*len(frames), c.TileHeight))
	for i, f := range frames {
		tile := image.Rect(i*c.TileWidth, 0, (i+1)*c.TileWidth, c.TileHeight)
		draw.ApproxBiLinear.Scale(strip, tile, f.Image, f.Image.Bounds(), draw.Over, nil)
		if c.Annotator != nil {
			if err := c.Annotator.Label(strip, tile, slots[i].String()); err != nil {
				return nil, fmt.Errorf("label %s tile: %w", slots[i], err)
			}
		}
	}
	return encodePNG(strip)
}

// NewFrame scales img to the tile size and keeps its PNG encoding.
func (c *Compositor) NewFrame(img image.Image) (*Frame, error) {
	dst := image.NewRGBA(image.Rect(0, 0, c.TileWidth, c.TileHeight))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	data, err := encodePNG(dst)
	if err != nil {
		return nil, err
	}
	return &Frame{Image: dst, PNG: data}, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
