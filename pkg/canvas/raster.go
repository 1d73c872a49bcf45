package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

var (
	ErrNoCanvas   = errors.New("canvas not set up")
	ErrCoordinate = errors.New("coordinate outside canvas")
)

// Raster is an in-memory drawing surface backed by an *image.RGBA. Lines are
// one pixel wide and not anti-aliased. Points on the far edge (x == width or
// y == height) are accepted and clipped when plotted.
type Raster struct {
	img   *image.RGBA
	color color.RGBA
}

// New returns a Raster; call SetUp before drawing.
func New() *Raster {
	return &Raster{}
}

// SetUp allocates a white width x height surface and resets the colour to black.
func (r *Raster) SetUp(width, height int) {
	r.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	draw.Draw(r.img, r.img.Bounds(), image.White, image.Point{}, draw.Src)
	r.color = color.RGBA{A: 255}
}

// SetColor selects the colour of subsequent lines.
func (r *Raster) SetColor(c color.RGBA) error {
	if r.img == nil {
		return ErrNoCanvas
	}
	c.A = 255
	r.color = c
	return nil
}

// DrawLine draws from (x1,y1) to (x2,y2) using Bresenham's algorithm.
func (r *Raster) DrawLine(x1, y1, x2, y2 int) error {
	if r.img == nil {
		return ErrNoCanvas
	}
	if !r.valid(x1, y1) || !r.valid(x2, y2) {
		return fmt.Errorf("%w: (%d,%d)-(%d,%d) on %v", ErrCoordinate, x1, y1, x2, y2, r.img.Bounds().Size())
	}
	dx, sx := abs(x2-x1), sign(x2-x1)
	dy, sy := -abs(y2-y1), sign(y2-y1)
	e := dx + dy
	for {
		// SetRGBA ignores points outside the bounds
		r.img.SetRGBA(x1, y1, r.color)
		if x1 == x2 && y1 == y2 {
			return nil
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

func (r *Raster) valid(x, y int) bool {
	b := r.img.Bounds()
	return x >= 0 && y >= 0 && x <= b.Dx() && y <= b.Dy()
}

// Drawing returns the surface as a [height][width][3] RGB array.
func (r *Raster) Drawing() ([][][]float32, error) {
	if r.img == nil {
		return nil, ErrNoCanvas
	}
	b := r.img.Bounds()
	out := make([][][]float32, b.Dy())
	for y := range out {
		out[y] = make([][]float32, b.Dx())
		for x := range out[y] {
			c := r.img.RGBAAt(x, y)
			out[y][x] = []float32{float32(c.R), float32(c.G), float32(c.B)}
		}
	}
	return out, nil
}

// Image exposes the backing raster.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
