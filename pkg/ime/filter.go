package ime

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BlurKernel is a 3x3 Gaussian blur.
var BlurKernel = [][]float32{
	{1.0 / 16, 1.0 / 8, 1.0 / 16},
	{1.0 / 8, 1.0 / 4, 1.0 / 8},
	{1.0 / 16, 1.0 / 8, 1.0 / 16},
}

// SharpenKernel is a 5x5 sharpening filter.
var SharpenKernel = [][]float32{
	{-1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8},
	{-1.0 / 8, 1.0 / 4, 1.0 / 4, 1.0 / 4, -1.0 / 8},
	{-1.0 / 8, 1.0 / 4, 1, 1.0 / 4, -1.0 / 8},
	{-1.0 / 8, 1.0 / 4, 1.0 / 4, 1.0 / 4, -1.0 / 8},
	{-1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8},
}

// SepiaMatrix recolours RGB pixels to sepia tones.
var SepiaMatrix = [][]float32{
	{0.393, 0.769, 0.189},
	{0.349, 0.686, 0.168},
	{0.272, 0.534, 0.131},
}

// Blur applies BlurKernel.
func (img *Image) Blur() *Image {
	out, _ := img.ApplyFilter(BlurKernel)
	return out
}

// Sharpen applies SharpenKernel.
func (img *Image) Sharpen() *Image {
	out, _ := img.ApplyFilter(SharpenKernel)
	return out
}

// ApplyFilter convolves every channel with a square, odd-sized kernel
// centred on each pixel. Near the borders only the kernel cells that
// overlap the image contribute; the weights are not rescaled. Results are
// clamped to [0,255].
func (img *Image) ApplyFilter(kernel [][]float32) (*Image, error) {
	if err := validateKernel(kernel); err != nil {
		return nil, err
	}
	out := blank(img.width, img.height, img.layout)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < img.height; i++ {
		i := i // per-iteration copy (go.mod targets go1.21 loop semantics)
		g.Go(func() error {
			for j := 0; j < img.width; j++ {
				img.convolve(i, j, kernel, out.px(i, j))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func validateKernel(kernel [][]float32) error {
	size := len(kernel)
	if size == 0 || size%2 == 0 {
		return fmt.Errorf("%w: %d rows", ErrKernelShape, size)
	}
	for i, row := range kernel {
		if len(row) != size {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrKernelShape, i, len(row), size)
		}
	}
	return nil
}

// convolve writes the kernel response at (row, col) into dst
func (img *Image) convolve(row, col int, kernel [][]float32, dst []float32) {
	half := len(kernel) / 2
	top := max(0, half-row)
	bottom := min(len(kernel), img.height-row+half)
	left := max(0, half-col)
	right := min(len(kernel), img.width-col+half)

	for k := range dst {
		var sum float32
		for m := top; m < bottom; m++ {
			for n := left; n < right; n++ {
				sum += kernel[m][n] * img.px(row-half+m, col-half+n)[k]
			}
		}
		dst[k] = clamp(sum)
	}
}

// ColorTransform multiplies every pixel by a channel-count sized square matrix.
func (img *Image) ColorTransform(matrix [][]float32) (*Image, error) {
	if err := validateMatrix(matrix, img.ChannelCount()); err != nil {
		return nil, err
	}
	return img.mapPixels(func(src, dst []float32) {
		p, _ := Pixel{values: src}.Transform(matrix)
		copy(dst, p.values)
	}), nil
}

// Sepia applies SepiaMatrix; the layout must have three channels.
func (img *Image) Sepia() (*Image, error) {
	return img.ColorTransform(SepiaMatrix)
}

// Brighten adds c to every channel, clamping to [0,255].
func (img *Image) Brighten(c float32) *Image {
	return img.mapPixels(func(src, dst []float32) {
		for k, v := range src {
			dst[k] = clamp(v + c)
		}
	})
}

// ValueImage broadcasts each pixel's Value to all of its channels.
func (img *Image) ValueImage() *Image {
	return img.greyscale(func(p Pixel) float32 { return p.Value() })
}

// IntensityImage broadcasts each pixel's Intensity to all of its channels.
func (img *Image) IntensityImage() *Image {
	return img.greyscale(func(p Pixel) float32 { return p.Intensity() })
}

// LumaImage broadcasts each pixel's Luma to all of its channels.
func (img *Image) LumaImage() (*Image, error) {
	if img.ChannelCount() < 3 {
		return nil, ErrLumaUndefined
	}
	return img.greyscale(func(p Pixel) float32 {
		l, _ := p.Luma()
		return l
	}), nil
}

func (img *Image) greyscale(metric func(Pixel) float32) *Image {
	return img.mapPixels(func(src, dst []float32) {
		v := metric(Pixel{values: src})
		for k := range dst {
			dst[k] = v
		}
	})
}
