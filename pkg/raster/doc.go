// Package raster renders QR symbol matrices into pixel images.
//
// Rasterize converts a qrcode.Matrix into a two-colour paletted image where
// every module becomes a scale×scale block and a quiet zone of margin modules
// surrounds the symbol. The image is PNG-encoded once, so the returned Image
// carries the raw PNG bytes, a data URI that can be embedded directly into an
// <img> tag, and the decoded image.Image for further processing.
//
// Module edges are never blended: a pixel is either the foreground or the
// background colour. When an embedded image is displayed larger than its
// native size, HTML adds the "image-rendering: pixelated" hint so browsers keep
// scaling with nearest-neighbour sampling.
//
// Terminal renders the same matrix as text with Unicode half blocks, two
// module rows per line, for previews in a console.
//
// # Usage
//
//	import "github.com/dmitrymomot/qrgen/pkg/raster"
//
//	img, err := raster.Rasterize(m, 4, 4)
//	if err != nil {
//		// handle error
//	}
//	_ = os.WriteFile("qrcode.png", img.PNG(), 0o644)
//	fmt.Println(img.DataURI()) // data:image/png;base64,iVBORw0KGgo...
//
// # Error Handling
//
//   • ErrNilMatrix     – no matrix was given.
//   • ErrInvalidScale  – scale is smaller than one pixel per module.
//   • ErrInvalidMargin – margin is negative.
//   • ErrInvalidColor  – a colour string could not be parsed.
//   • ErrEncodePNG     – the PNG encoder failed.
package raster
