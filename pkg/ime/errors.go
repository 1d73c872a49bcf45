package ime

import "errors"

var (
	ErrEmptyImage        = errors.New("image must contain at least one pixel")
	ErrRaggedRows        = errors.New("image rows have differing lengths")
	ErrChannelCount      = errors.New("wrong number of channel values")
	ErrChannelValue      = errors.New("channel value outside [0,255]")
	ErrChannelIndex      = errors.New("invalid channel index")
	ErrChannelUndefined  = errors.New("channel not defined by image layout")
	ErrLumaUndefined     = errors.New("luma requires at least three channels")
	ErrPixelLocation     = errors.New("pixel location out of bounds")
	ErrMatrixShape       = errors.New("transform matrix does not match channel count")
	ErrKernelShape       = errors.New("filter kernel must be square and odd-sized")
	ErrPercent           = errors.New("percentage must be within [0,100]")
	ErrLevels            = errors.New("levels must satisfy 0 <= black < mid < white <= 255")
	ErrRange             = errors.New("invalid value range")
	ErrDimensionMismatch = errors.New("image dimensions do not match")
)
