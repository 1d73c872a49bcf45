package util

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashUUID(t *testing.T) {
	a := HashUUID(map[string]int{"w": 3, "h": 2})
	b := HashUUID(map[string]int{"h": 2, "w": 3})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, HashUUID(map[string]int{"w": 3, "h": 3}))
	_, err := uuid.Parse(a)
	require.NoError(t, err)

	assert.Empty(t, HashUUID(func() {}))
}

func TestPixelsUUID(t *testing.T) {
	one := [][][]float32{{{1, 2, 3}, {4, 5, 6}}}
	same := [][][]float32{{{1, 2, 3}, {4, 5, 6}}}
	reshaped := [][][]float32{{{1, 2, 3}}, {{4, 5, 6}}}
	changed := [][][]float32{{{1, 2, 3}, {4, 5, 7}}}

	assert.Equal(t, PixelsUUID(one), PixelsUUID(same))
	assert.NotEqual(t, PixelsUUID(one), PixelsUUID(reshaped))
	assert.NotEqual(t, PixelsUUID(one), PixelsUUID(changed))
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
