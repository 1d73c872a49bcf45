package ime

import (
	"fmt"
	"image/color"
)

// Canvas is the drawing surface a HistogramDrawer renders onto.
// SetUp must be called before any other method.
type Canvas interface {
	// SetUp allocates a blank width x height surface.
	SetUp(width, height int)
	// SetColor selects the colour of subsequent lines.
	SetColor(c color.RGBA) error
	// DrawLine draws a straight line between two points, y growing downwards.
	DrawLine(x1, y1, x2, y2 int) error
	// Drawing returns the surface as a [height][width][3] array.
	Drawing() ([][][]float32, error)
}

// GridColor is the colour of the histogram background grid.
var GridColor = color.RGBA{R: 211, G: 211, B: 211, A: 255}

const gridCells = 16

// HistogramDrawer plots a Histogram as one line graph per channel.
type HistogramDrawer struct {
	Width  int
	Height int
	canvas Canvas
}

// NewHistogramDrawer returns a drawer that renders width x height plots on canvas.
func NewHistogramDrawer(width, height int, canvas Canvas) *HistogramDrawer {
	return &HistogramDrawer{Width: width, Height: height, canvas: canvas}
}

// Draw renders h and returns the canvas contents.
func (d *HistogramDrawer) Draw(h *Histogram) ([][][]float32, error) {
	if d.Width < gridCells || d.Height < gridCells {
		return nil, fmt.Errorf("%w: plot %dx%d", ErrRange, d.Width, d.Height)
	}
	d.canvas.SetUp(d.Width, d.Height)
	if err := d.grid(); err != nil {
		return nil, err
	}
	maxCount := maxFrequency(h)
	for k, ch := range h.Channels() {
		if err := d.canvas.SetColor(ch.Color()); err != nil {
			return nil, err
		}
		prev := d.scale(h.bins[k][0], maxCount)
		for x := 0; x < d.Width-1 && x+1 < Bins; x++ {
			next := d.scale(h.bins[k][x+1], maxCount)
			if err := d.canvas.DrawLine(x, d.Height-prev, x+1, d.Height-next); err != nil {
				return nil, fmt.Errorf("plotting %s: %w", ch, err)
			}
			prev = next
		}
	}
	return d.canvas.Drawing()
}

func (d *HistogramDrawer) grid() error {
	if err := d.canvas.SetColor(GridColor); err != nil {
		return err
	}
	for x := 0; x < d.Width; x += d.Width / gridCells {
		if err := d.canvas.DrawLine(x, 0, x, d.Height); err != nil {
			return err
		}
	}
	for y := 0; y < d.Height; y += d.Height / gridCells {
		if err := d.canvas.DrawLine(0, y, d.Width, y); err != nil {
			return err
		}
	}
	return nil
}

// scale maps a frequency to a plot height
func (d *HistogramDrawer) scale(freq, maxCount int) int {
	if maxCount == 0 {
		return 0
	}
	return d.Height * freq / maxCount
}

// maxFrequency is the tallest bin across every channel
func maxFrequency(h *Histogram) int {
	var m int
	for k := range h.bins {
		m = max(m, h.peak(k, 0, Bins-1))
	}
	return m
}
