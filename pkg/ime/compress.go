package ime

import (
	"fmt"

	"github.com/jpfielding/ime.go/pkg/compress/haar"
)

// Compress applies lossy Haar wavelet compression, discarding percent of the
// distinct coefficient magnitudes shared by all channels. 0 is lossless
// (within float error); 100 produces a black image.
func (img *Image) Compress(percent int) (*Image, error) {
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("%w: compress %d", ErrPercent, percent)
	}
	size := haar.PaddedSize(max(img.width, img.height))
	planes := img.paddedPlanes(size)
	for _, p := range planes {
		haar.Forward2D(p, size)
	}
	if threshold, ok := haar.Threshold(percent, planes...); ok {
		haar.Discard(threshold, planes...)
	}
	for _, p := range planes {
		haar.Inverse2D(p, size)
	}
	return img.fromPlanes(planes, size), nil
}

// paddedPlanes copies each channel into its own zero-padded size x size plane
func (img *Image) paddedPlanes(size int) [][]float32 {
	n := img.ChannelCount()
	planes := make([][]float32, n)
	for k := range planes {
		planes[k] = make([]float32, size*size)
	}
	for i := 0; i < img.height; i++ {
		for j := 0; j < img.width; j++ {
			px := img.px(i, j)
			for k := 0; k < n; k++ {
				planes[k][i*size+j] = px[k]
			}
		}
	}
	return planes
}

// fromPlanes crops the planes back to the image size and clamps
func (img *Image) fromPlanes(planes [][]float32, size int) *Image {
	out := blank(img.width, img.height, img.layout)
	for i := 0; i < img.height; i++ {
		for j := 0; j < img.width; j++ {
			dst := out.px(i, j)
			for k := range dst {
				dst[k] = clamp(planes[k][i*size+j])
			}
		}
	}
	return out
}
