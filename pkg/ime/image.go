package ime

import (
	"fmt"
	"slices"

	"github.com/chewxy/math32"
)

// Image is an immutable height x width grid of pixels sharing one Layout.
type Image struct {
	layout Layout
	width  int
	height int
	// channel-interleaved, row-major
	pix []float32
}

// New builds an image from a [height][width][channels] array. Each pixel
// must carry exactly layout.ChannelCount() values within [0,255].
func New(values [][][]float32, layout Layout) (*Image, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyImage
	}
	if layout.ChannelCount() == 0 {
		return nil, fmt.Errorf("%w: layout %q has no channels", ErrChannelCount, layout.Name)
	}
	img := blank(len(values[0]), len(values), layout)
	n := layout.ChannelCount()
	for i, row := range values {
		if len(row) != img.width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrRaggedRows, i, len(row), img.width)
		}
		for j, px := range row {
			if len(px) != n {
				return nil, fmt.Errorf("%w: pixel (%d,%d) has %d values, want %d", ErrChannelCount, i, j, len(px), n)
			}
			for k, v := range px {
				if err := validateChannelValue(v); err != nil {
					return nil, fmt.Errorf("pixel (%d,%d) channel %d: %w", i, j, k, err)
				}
			}
			copy(img.pix[img.offset(i, j):], px)
		}
	}
	return img, nil
}

// FromPixels builds an image from an existing pixel grid.
func FromPixels(pixels [][]Pixel, layout Layout) (*Image, error) {
	if len(pixels) == 0 || len(pixels[0]) == 0 {
		return nil, ErrEmptyImage
	}
	values := make([][][]float32, len(pixels))
	for i, row := range pixels {
		values[i] = make([][]float32, len(row))
		for j, px := range row {
			values[i][j] = px.values
		}
	}
	return New(values, layout)
}

// blank allocates a zeroed image; callers fill every value they need.
func blank(width, height int, layout Layout) *Image {
	return &Image{
		layout: layout,
		width:  width,
		height: height,
		pix:    make([]float32, width*height*layout.ChannelCount()),
	}
}

func (img *Image) offset(row, col int) int {
	return (row*img.width + col) * img.layout.ChannelCount()
}

// px returns the live channel slice of a pixel; never hand it out.
func (img *Image) px(row, col int) []float32 {
	o := img.offset(row, col)
	return img.pix[o : o+img.layout.ChannelCount()]
}

// Width returns the number of columns.
func (img *Image) Width() int { return img.width }

// Height returns the number of rows.
func (img *Image) Height() int { return img.height }

// Layout returns the channel layout.
func (img *Image) Layout() Layout { return img.layout }

// ChannelCount returns the number of channels per pixel.
func (img *Image) ChannelCount() int { return img.layout.ChannelCount() }

// At returns a copy of the pixel at (row, col).
func (img *Image) At(row, col int) (Pixel, error) {
	values, err := img.PixelValues(row, col)
	if err != nil {
		return Pixel{}, err
	}
	return Pixel{values: values}, nil
}

// PixelValues returns a copy of the channel values at (row, col).
func (img *Image) PixelValues(row, col int) ([]float32, error) {
	if row < 0 || row >= img.height || col < 0 || col >= img.width {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrPixelLocation, row, col, img.width, img.height)
	}
	return slices.Clone(img.px(row, col)), nil
}

// Array returns the image as a freshly allocated [height][width][channels] array.
func (img *Image) Array() [][][]float32 {
	n := img.layout.ChannelCount()
	out := make([][][]float32, img.height)
	for i := range out {
		row := make([][]float32, img.width)
		// one backing slice per row
		buf := make([]float32, img.width*n)
		copy(buf, img.pix[img.offset(i, 0):img.offset(i, 0)+img.width*n])
		for j := range row {
			row[j] = buf[j*n : (j+1)*n : (j+1)*n]
		}
		out[i] = row
	}
	return out
}

// Equal reports whether both images share dimensions and channel count and
// every value differs by at most tolerance.
func (img *Image) Equal(o *Image, tolerance float32) bool {
	if img == nil || o == nil {
		return img == o
	}
	if img.width != o.width || img.height != o.height || img.ChannelCount() != o.ChannelCount() {
		return false
	}
	for i := range img.pix {
		if math32.Abs(img.pix[i]-o.pix[i]) > tolerance {
			return false
		}
	}
	return true
}

func (img *Image) String() string {
	return fmt.Sprintf("%s %dx%d", img.layout.Name, img.width, img.height)
}

// mapPixels builds a same-sized image whose pixel values come from fn.
// fn writes into dst, which starts zeroed.
func (img *Image) mapPixels(fn func(src, dst []float32)) *Image {
	out := blank(img.width, img.height, img.layout)
	for i := 0; i < img.height; i++ {
		for j := 0; j < img.width; j++ {
			fn(img.px(i, j), out.px(i, j))
		}
	}
	return out
}
