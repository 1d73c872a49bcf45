package haar

import (
	"slices"

	"github.com/chewxy/math32"
)

// Haar implements the orthonormal 2D Haar wavelet used for lossy image
// compression. Planes are square, row-major and sized to a power of two.

var sqrt2 = math32.Sqrt(2)

// Forward1D performs one level of the Haar transform in-place.
// Pair averages land in the first half, pair differences in the second half.
// len(signal) must be even; shorter than 2 is a no-op.
func Forward1D(signal []float32) {
	n := len(signal)
	if n < 2 {
		return
	}
	half := n / 2
	out := make([]float32, n)
	for i := 0; i < half; i++ {
		a, b := signal[2*i], signal[2*i+1]
		out[i] = (a + b) / sqrt2
		out[half+i] = (a - b) / sqrt2
	}
	copy(signal, out)
}

// Inverse1D undoes Forward1D in-place, interleaving the reconstructed pairs
// back into their original order.
func Inverse1D(signal []float32) {
	n := len(signal)
	if n < 2 {
		return
	}
	half := n / 2
	out := make([]float32, n)
	for i := 0; i < half; i++ {
		avg, diff := signal[i], signal[half+i]
		out[2*i] = (avg + diff) / sqrt2
		out[2*i+1] = (avg - diff) / sqrt2
	}
	copy(signal, out)
}

// PaddedSize returns the smallest power of two >= n (1 for n <= 1).
func PaddedSize(n int) int {
	size := 1
	for size < n {
		size *= 2
	}
	return size
}

// Forward2D performs the full multi-level decomposition of a size x size plane.
// Each level transforms the rows then the columns of the top-left c x c
// region, halving c until it reaches 1.
func Forward2D(data []float32, size int) {
	for c := size; c > 1; c /= 2 {
		forwardRegion(data, size, c)
	}
}

// Inverse2D reconstructs a plane produced by Forward2D, smallest region first.
func Inverse2D(data []float32, size int) {
	for c := 2; c <= size; c *= 2 {
		inverseRegion(data, size, c)
	}
}

// forwardRegion transforms only the top-left c x c region
func forwardRegion(data []float32, stride, c int) {
	row := make([]float32, c)
	for y := 0; y < c; y++ {
		offset := y * stride
		copy(row, data[offset:offset+c])
		Forward1D(row)
		copy(data[offset:offset+c], row)
	}

	col := make([]float32, c)
	for x := 0; x < c; x++ {
		for y := 0; y < c; y++ {
			col[y] = data[y*stride+x]
		}
		Forward1D(col)
		for y := 0; y < c; y++ {
			data[y*stride+x] = col[y]
		}
	}
}

// inverseRegion reconstructs only the top-left c x c region, columns first
func inverseRegion(data []float32, stride, c int) {
	col := make([]float32, c)
	for x := 0; x < c; x++ {
		for y := 0; y < c; y++ {
			col[y] = data[y*stride+x]
		}
		Inverse1D(col)
		for y := 0; y < c; y++ {
			data[y*stride+x] = col[y]
		}
	}

	row := make([]float32, c)
	for y := 0; y < c; y++ {
		offset := y * stride
		copy(row, data[offset:offset+c])
		Inverse1D(row)
		copy(data[offset:offset+c], row)
	}
}

// Magnitudes returns the distinct absolute coefficient values across all
// planes in ascending order.
func Magnitudes(planes ...[]float32) []float32 {
	var total int
	for _, p := range planes {
		total += len(p)
	}
	mags := make([]float32, 0, total)
	for _, p := range planes {
		for _, v := range p {
			mags = append(mags, math32.Abs(v))
		}
	}
	slices.Sort(mags)
	return slices.Compact(mags)
}

// Threshold picks the cut-off magnitude for discarding percent of the
// distinct magnitudes. ok is false when nothing should be discarded.
func Threshold(percent int, planes ...[]float32) (threshold float32, ok bool) {
	if percent <= 0 {
		return 0, false
	}
	mags := Magnitudes(planes...)
	idx := percent*len(mags)/100 - 1
	if idx < 0 {
		return 0, false
	}
	if idx >= len(mags) {
		idx = len(mags) - 1
	}
	return mags[idx], true
}

// Discard zeroes every coefficient whose magnitude is <= threshold and
// returns how many were dropped.
func Discard(threshold float32, planes ...[]float32) int {
	var dropped int
	for _, p := range planes {
		for i, v := range p {
			if v != 0 && math32.Abs(v) <= threshold {
				p[i] = 0
				dropped++
			}
		}
	}
	return dropped
}
