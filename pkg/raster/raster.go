package raster

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"image"
	"image/color"
	"image/png"
	"slices"

	"github.com/dmitrymomot/qrgen/pkg/qrcode"
)

const dataURIPrefix = "data:image/png;base64,"

// Palette indices of the rendered image.
const (
	backgroundIndex = 0
	foregroundIndex = 1
)

// Option configures rendering.
type Option func(*options)

type options struct {
	foreground color.Color
	background color.Color
}

func defaultOptions() *options {
	return &options{
		foreground: color.Black,
		background: color.White,
	}
}

// WithForeground sets the colour of dark modules. Nil is ignored.
func WithForeground(c color.Color) Option {
	return func(o *options) {
		if c != nil {
			o.foreground = c
		}
	}
}

// WithBackground sets the colour of light modules and the quiet zone. Nil is ignored.
func WithBackground(c color.Color) Option {
	return func(o *options) {
		if c != nil {
			o.background = c
		}
	}
}

// Image is an immutable rendering of a matrix.
type Image struct {
	matrix *qrcode.Matrix
	img    *image.Paletted
	png    []byte
	scale  int
	margin int
}

// Rasterize renders m with scale pixels per module and margin quiet-zone
// modules on every side. Both sides of the result measure
// (m.Size() + 2*margin) * scale pixels.
func Rasterize(m *qrcode.Matrix, scale, margin int, opts ...Option) (*Image, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if scale < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidScale, scale)
	}
	if margin < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMargin, margin)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	side := (m.Size() + 2*margin) * scale
	palette := color.Palette{backgroundIndex: o.background, foregroundIndex: o.foreground}
	img := image.NewPaletted(image.Rect(0, 0, side, side), palette)

	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			if m.Dark(x, y) {
				fillModule(img, (x+margin)*scale, (y+margin)*scale, scale)
			}
		}
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, errors.Join(ErrEncodePNG, err)
	}

	return &Image{
		matrix: m,
		img:    img,
		png:    buf.Bytes(),
		scale:  scale,
		margin: margin,
	}, nil
}

// fillModule paints a scale×scale block whose top-left pixel is (px, py).
func fillModule(img *image.Paletted, px, py, scale int) {
	for dy := 0; dy < scale; dy++ {
		row := img.Pix[(py+dy)*img.Stride:]
		for dx := 0; dx < scale; dx++ {
			row[px+dx] = foregroundIndex
		}
	}
}

func (i *Image) Width() int  { return i.img.Bounds().Dx() }
func (i *Image) Height() int { return i.img.Bounds().Dy() }

// Scale is the number of pixels per module.
func (i *Image) Scale() int { return i.scale }

// Margin is the quiet zone width in modules.
func (i *Image) Margin() int { return i.margin }

// Matrix returns the symbol the image was rendered from.
func (i *Image) Matrix() *qrcode.Matrix { return i.matrix }

// Image returns the rendered pixels.
func (i *Image) Image() image.Image { return i.img }

// PNG returns a copy of the encoded PNG bytes.
func (i *Image) PNG() []byte { return slices.Clone(i.png) }

// Len is the size of the encoded PNG in bytes.
func (i *Image) Len() int { return len(i.png) }

// DataURI returns the PNG as a base64 data URI.
func (i *Image) DataURI() string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(i.png)
}

// Equal reports whether both images have identical PNG bytes.
func (i *Image) Equal(other *Image) bool {
	if i == nil || other == nil {
		return i == other
	}
	return bytes.Equal(i.png, other.png)
}

// HTML returns an <img> element embedding the image. The pixelated rendering
// hint keeps module edges sharp when the element is scaled up.
func (i *Image) HTML(alt string) string {
	return fmt.Sprintf(
		`<img src="%s" alt="%s" width="%d" height="%d" style="image-rendering: pixelated">`,
		i.DataURI(), html.EscapeString(alt), i.Width(), i.Height(),
	)
}
