package canvas

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaster_NotSetUp(t *testing.T) {
	r := New()
	assert.ErrorIs(t, r.SetColor(color.RGBA{}), ErrNoCanvas)
	assert.ErrorIs(t, r.DrawLine(0, 0, 1, 1), ErrNoCanvas)
	_, err := r.Drawing()
	assert.ErrorIs(t, err, ErrNoCanvas)
}

func TestRaster_WhiteBackground(t *testing.T) {
	r := New()
	r.SetUp(4, 3)
	out, err := r.Drawing()
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Len(t, out[0], 4)
	for _, row := range out {
		for _, px := range row {
			assert.Equal(t, []float32{255, 255, 255}, px)
		}
	}
}

func TestRaster_DrawLine(t *testing.T) {
	r := New()
	r.SetUp(8, 8)
	require.NoError(t, r.SetColor(color.RGBA{R: 255}))

	// horizontal
	require.NoError(t, r.DrawLine(1, 2, 5, 2))
	// diagonal
	require.NoError(t, r.DrawLine(0, 7, 7, 0))
	// reaching the far edge is clipped
	require.NoError(t, r.DrawLine(3, 8, 3, 6))

	out, err := r.Drawing()
	require.NoError(t, err)

	red := []float32{255, 0, 0}
	white := []float32{255, 255, 255}
	for x := 1; x <= 5; x++ {
		assert.Equal(t, red, out[2][x], "horizontal x=%d", x)
	}
	assert.Equal(t, white, out[2][6])
	for i := 0; i < 8; i++ {
		assert.Equal(t, red, out[7-i][i], "diagonal %d", i)
	}
	assert.Equal(t, red, out[7][3])
	assert.Equal(t, red, out[6][3])
	assert.Equal(t, white, out[0][0])
}

func TestRaster_BadCoordinates(t *testing.T) {
	r := New()
	r.SetUp(8, 8)
	assert.ErrorIs(t, r.DrawLine(-1, 0, 1, 1), ErrCoordinate)
	assert.ErrorIs(t, r.DrawLine(0, 0, 9, 1), ErrCoordinate)
	assert.ErrorIs(t, r.DrawLine(0, 0, 1, 9), ErrCoordinate)
	assert.NoError(t, r.DrawLine(8, 8, 0, 0))
}

func TestRaster_SetUpResets(t *testing.T) {
	r := New()
	r.SetUp(2, 2)
	require.NoError(t, r.SetColor(color.RGBA{G: 200}))
	require.NoError(t, r.DrawLine(0, 0, 1, 1))

	r.SetUp(2, 2)
	out, err := r.Drawing()
	require.NoError(t, err)
	assert.Equal(t, []float32{255, 255, 255}, out[0][0])
	assert.Equal(t, 2, r.Image().Bounds().Dx())
}
