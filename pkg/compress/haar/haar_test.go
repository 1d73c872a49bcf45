package haar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForward1D_Inverse1D_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		signal []float32
	}{
		{
			name:   "two elements",
			signal: []float32{100, 200},
		},
		{
			name:   "simple 4 elements",
			signal: []float32{1, 2, 3, 4},
		},
		{
			name:   "constant signal",
			signal: []float32{100, 100, 100, 100},
		},
		{
			name:   "alternating",
			signal: []float32{0, 255, 0, 255, 0, 255, 0, 255},
		},
		{
			name:   "ramp",
			signal: []float32{0, 16, 32, 48, 64, 80, 96, 112},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := make([]float32, len(tt.signal))
			copy(original, tt.signal)

			Forward1D(tt.signal)
			Inverse1D(tt.signal)

			assert.InDeltaSlice(t, original, tt.signal, 1e-3)
		})
	}
}

func TestForward1D_KnownValues(t *testing.T) {
	signal := []float32{5, 3, 2, 2}
	Forward1D(signal)

	assert.InDelta(t, 8/sqrt2, signal[0], 1e-5, "average of first pair")
	assert.InDelta(t, 4/sqrt2, signal[1], 1e-5, "average of second pair")
	assert.InDelta(t, 2/sqrt2, signal[2], 1e-5, "difference of first pair")
	assert.InDelta(t, 0, signal[3], 1e-5, "difference of second pair")
}

func TestForward1D_ShortSignal(t *testing.T) {
	signal := []float32{42}
	Forward1D(signal)
	assert.Equal(t, []float32{42}, signal)
	Inverse1D(signal)
	assert.Equal(t, []float32{42}, signal)
}

func TestPaddedSize(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{100, 128},
		{256, 256},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PaddedSize(tt.n), "PaddedSize(%d)", tt.n)
	}
}

func TestForward2D_Inverse2D_RoundTrip(t *testing.T) {
	for _, size := range []int{1, 2, 4, 8, 16, 64} {
		data := make([]float32, size*size)
		for i := range data {
			data[i] = float32(i % 256)
		}
		original := make([]float32, len(data))
		copy(original, data)

		Forward2D(data, size)
		Inverse2D(data, size)

		assert.InDeltaSlice(t, original, data, 0.05, "size %d", size)
	}
}

func TestForward2D_ConstantPlane(t *testing.T) {
	// a constant plane collapses into the single DC coefficient
	size := 8
	data := make([]float32, size*size)
	for i := range data {
		data[i] = 100
	}

	Forward2D(data, size)

	// orthonormal: DC = mean * size
	assert.InDelta(t, 800, data[0], 1e-2)
	for i := 1; i < len(data); i++ {
		assert.InDelta(t, 0, data[i], 1e-3, "coefficient %d", i)
	}
}

func TestMagnitudes(t *testing.T) {
	a := []float32{-3, 1, 0, 3}
	b := []float32{2, -1, 0.5}

	mags := Magnitudes(a, b)
	assert.Equal(t, []float32{0, 0.5, 1, 2, 3}, mags)
}

func TestThreshold(t *testing.T) {
	plane := []float32{0, 1, -2, 3, 4, -5, 6, 7, 8, 9}

	tests := []struct {
		name    string
		percent int
		want    float32
		ok      bool
	}{
		{"zero percent", 0, 0, false},
		{"below one bucket", 5, 0, false},
		{"ten percent", 10, 0, true},
		{"half", 50, 4, true},
		{"all", 100, 9, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Threshold(tt.percent, plane)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscard(t *testing.T) {
	a := []float32{-3, 1, 0, 3}
	b := []float32{2, -1, 0.5}

	dropped := Discard(1, a, b)

	assert.Equal(t, 3, dropped)
	assert.Equal(t, []float32{-3, 0, 0, 3}, a)
	assert.Equal(t, []float32{2, 0, 0}, b)
}

func BenchmarkForward2D(b *testing.B) {
	size := 512
	data := make([]float32, size*size)
	for i := range data {
		data[i] = float32(i % 256)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Forward2D(data, size)
	}
}
