package imageio

import (
	"fmt"
	"image"
	"image/color"

	"github.com/nfnt/resize"
)

// ToPixels converts img into a [height][width][3] RGB array with values in
// [0,255]. Alpha is discarded without premultiplying.
func ToPixels(img image.Image) [][][]float32 {
	b := img.Bounds()
	out := make([][][]float32, b.Dy())
	for y := range out {
		row := make([][]float32, b.Dx())
		flat := make([]float32, 3*b.Dx())
		for x := range row {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			px := flat[3*x : 3*x+3 : 3*x+3]
			px[0], px[1], px[2] = float32(c.R), float32(c.G), float32(c.B)
			row[x] = px
		}
		out[y] = row
	}
	return out
}

// FromPixels converts a [height][width][channels] array into an
// NRGBA image. One channel is read as grey, three as RGB and four as RGBA.
// Values are rounded and clamped to [0,255].
func FromPixels(pixels [][][]float32) (*image.NRGBA, error) {
	if len(pixels) == 0 || len(pixels[0]) == 0 {
		return nil, fmt.Errorf("%w: empty pixel array", ErrMalformed)
	}
	height, width := len(pixels), len(pixels[0])
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y, row := range pixels {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrMalformed, y, len(row), width)
		}
		for x, px := range row {
			var c color.NRGBA
			switch len(px) {
			case 1:
				v := to8(px[0])
				c = color.NRGBA{R: v, G: v, B: v, A: 255}
			case 3:
				c = color.NRGBA{R: to8(px[0]), G: to8(px[1]), B: to8(px[2]), A: 255}
			case 4:
				c = color.NRGBA{R: to8(px[0]), G: to8(px[1]), B: to8(px[2]), A: to8(px[3])}
			default:
				return nil, fmt.Errorf("%w: %d channels at (%d,%d)", ErrMalformed, len(px), y, x)
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}

// Resize scales a pixel array to width x height with bilinear interpolation.
func Resize(pixels [][][]float32, width, height int) ([][][]float32, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: resize to %dx%d", ErrMalformed, width, height)
	}
	img, err := FromPixels(pixels)
	if err != nil {
		return nil, err
	}
	return ToPixels(resize.Resize(uint(width), uint(height), img, resize.Bilinear)), nil
}
