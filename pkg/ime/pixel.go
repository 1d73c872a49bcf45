package ime

import (
	"fmt"
	"slices"

	"github.com/chewxy/math32"
)

// Luma coefficients for the first three channels
const (
	lumaRed   = 0.2126
	lumaGreen = 0.7152
	lumaBlue  = 0.0722
)

// Pixel is a fixed-size vector of channel intensities in [0,255].
type Pixel struct {
	values []float32
}

// NewPixel validates values and returns a pixel holding a copy of them.
func NewPixel(values ...float32) (Pixel, error) {
	if len(values) == 0 {
		return Pixel{}, fmt.Errorf("%w: pixel needs at least one channel", ErrChannelCount)
	}
	for i, v := range values {
		if err := validateChannelValue(v); err != nil {
			return Pixel{}, fmt.Errorf("channel %d: %w", i, err)
		}
	}
	return Pixel{values: slices.Clone(values)}, nil
}

func validateChannelValue(v float32) error {
	if !(v >= 0 && v <= 255) {
		return fmt.Errorf("%w: %v", ErrChannelValue, v)
	}
	return nil
}

// clamp limits v to [0,255]; NaN becomes 0
func clamp(v float32) float32 {
	if !(v >= 0) {
		return 0
	}
	return math32.Min(255, v)
}

// ChannelCount returns the number of channels.
func (p Pixel) ChannelCount() int {
	return len(p.values)
}

// Values returns a copy of the channel values.
func (p Pixel) Values() []float32 {
	return slices.Clone(p.values)
}

// Channel returns the value of channel i.
func (p Pixel) Channel(i int) (float32, error) {
	if i < 0 || i >= len(p.values) {
		return 0, fmt.Errorf("%w: %d of %d", ErrChannelIndex, i, len(p.values))
	}
	return p.values[i], nil
}

// SetChannel sets channel i to v after validating both.
func (p *Pixel) SetChannel(i int, v float32) error {
	if i < 0 || i >= len(p.values) {
		return fmt.Errorf("%w: %d of %d", ErrChannelIndex, i, len(p.values))
	}
	if err := validateChannelValue(v); err != nil {
		return err
	}
	p.values[i] = v
	return nil
}

// SetAll replaces every channel. Nothing changes unless all values are valid.
func (p *Pixel) SetAll(values []float32) error {
	if len(values) != len(p.values) {
		return fmt.Errorf("%w: want %d, got %d", ErrChannelCount, len(p.values), len(values))
	}
	for i, v := range values {
		if err := validateChannelValue(v); err != nil {
			return fmt.Errorf("channel %d: %w", i, err)
		}
	}
	copy(p.values, values)
	return nil
}

// Value is the largest channel.
func (p Pixel) Value() float32 {
	var m float32
	for _, v := range p.values {
		m = math32.Max(m, v)
	}
	return m
}

// Intensity is the mean of the channels.
func (p Pixel) Intensity() float32 {
	if len(p.values) == 0 {
		return 0
	}
	var sum float32
	for _, v := range p.values {
		sum += v
	}
	return sum / float32(len(p.values))
}

// Luma is the perceptual brightness of the first three channels.
func (p Pixel) Luma() (float32, error) {
	if len(p.values) < 3 {
		return 0, ErrLumaUndefined
	}
	return clamp(lumaRed*p.values[0] + lumaGreen*p.values[1] + lumaBlue*p.values[2]), nil
}

// Brighten adds c to every channel, clamping to [0,255]. Negative c darkens.
func (p Pixel) Brighten(c float32) Pixel {
	out := make([]float32, len(p.values))
	for i, v := range p.values {
		out[i] = clamp(v + c)
	}
	return Pixel{values: out}
}

// Transform multiplies the channel vector by a square matrix sized to the
// channel count, clamping each result.
func (p Pixel) Transform(matrix [][]float32) (Pixel, error) {
	n := len(p.values)
	if err := validateMatrix(matrix, n); err != nil {
		return Pixel{}, err
	}
	out := make([]float32, n)
	for k := 0; k < n; k++ {
		var sum float32
		for j := 0; j < n; j++ {
			sum += matrix[k][j] * p.values[j]
		}
		out[k] = clamp(sum)
	}
	return Pixel{values: out}, nil
}

func validateMatrix(matrix [][]float32, n int) error {
	if len(matrix) != n {
		return fmt.Errorf("%w: %d rows for %d channels", ErrMatrixShape, len(matrix), n)
	}
	for i, row := range matrix {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d columns for %d channels", ErrMatrixShape, i, len(row), n)
		}
	}
	return nil
}

// Equal reports whether both pixels have the same channels within tolerance.
func (p Pixel) Equal(o Pixel, tolerance float32) bool {
	if len(p.values) != len(o.values) {
		return false
	}
	for i := range p.values {
		if math32.Abs(p.values[i]-o.values[i]) > tolerance {
			return false
		}
	}
	return true
}

func (p Pixel) String() string {
	return fmt.Sprint(p.values)
}
