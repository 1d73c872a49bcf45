package ime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress_LosslessAtZero(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"1x1", 1, 1},
		{"2x2", 2, 2},
		{"3x5 odd", 3, 5},
		{"8x8", 8, 8},
		{"13x7 rect", 13, 7},
		{"33x17 just past power of two", 33, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := gradient(t, tt.width, tt.height)
			out, err := img.Compress(0)
			require.NoError(t, err)
			assert.Equal(t, img.Width(), out.Width())
			assert.Equal(t, img.Height(), out.Height())
			assert.True(t, img.Equal(out, 0.05), "compress(0) should round-trip")
		})
	}
}

func TestCompress_BlackAtHundred(t *testing.T) {
	img := gradient(t, 10, 6)
	out, err := img.Compress(100)
	require.NoError(t, err)
	for _, v := range out.pix {
		assert.Zero(t, v)
	}
}

func TestCompress_LossyLosesDetail(t *testing.T) {
	img := gradient(t, 16, 16)

	sse := func(out *Image) float64 {
		var sum float64
		for i := range img.pix {
			d := float64(img.pix[i] - out.pix[i])
			sum += d * d
		}
		return sum
	}

	lossless, err := img.Compress(0)
	require.NoError(t, err)
	lossy, err := img.Compress(90)
	require.NoError(t, err)
	assert.Greater(t, sse(lossy), sse(lossless))
	assert.Equal(t, img.Width(), lossy.Width())
}

func TestCompress_ConstantImageSurvives(t *testing.T) {
	values := [][][]float32{
		{{60, 60, 60}, {60, 60, 60}},
		{{60, 60, 60}, {60, 60, 60}},
	}
	img := mustNew(t, values)

	// only two distinct magnitudes exist (0 and the DC term); half of them
	// are the zeros, so the image is untouched
	out, err := img.Compress(50)
	require.NoError(t, err)
	assert.True(t, img.Equal(out, 1e-3))
}

func TestCompress_InvalidPercent(t *testing.T) {
	img := gradient(t, 2, 2)
	for _, p := range []int{-1, 101} {
		_, err := img.Compress(p)
		assert.ErrorIs(t, err, ErrPercent)
	}
}
