package ime

import (
	"fmt"

	"github.com/chewxy/math32"
)

// FlipHorizontal mirrors the image left to right.
func (img *Image) FlipHorizontal() *Image {
	out := blank(img.width, img.height, img.layout)
	for i := 0; i < img.height; i++ {
		for j := 0; j < img.width; j++ {
			copy(out.px(i, j), img.px(i, img.width-j-1))
		}
	}
	return out
}

// FlipVertical mirrors the image top to bottom.
func (img *Image) FlipVertical() *Image {
	out := blank(img.width, img.height, img.layout)
	rowLen := img.width * img.ChannelCount()
	for i := 0; i < img.height; i++ {
		src := img.offset(img.height-i-1, 0)
		copy(out.pix[out.offset(i, 0):], img.pix[src:src+rowLen])
	}
	return out
}

// Append places other to the right of img. Heights and channel counts must match.
func (img *Image) Append(other *Image) (*Image, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: nothing to append", ErrDimensionMismatch)
	}
	if other.height != img.height {
		return nil, fmt.Errorf("%w: heights %d and %d", ErrDimensionMismatch, img.height, other.height)
	}
	if other.ChannelCount() != img.ChannelCount() {
		return nil, fmt.Errorf("%w: %d and %d channels", ErrChannelCount, img.ChannelCount(), other.ChannelCount())
	}
	out := blank(img.width+other.width, img.height, img.layout)
	n := img.ChannelCount()
	for i := 0; i < img.height; i++ {
		dst := out.offset(i, 0)
		copy(out.pix[dst:], img.pix[img.offset(i, 0):img.offset(i, 0)+img.width*n])
		copy(out.pix[dst+img.width*n:], other.pix[other.offset(i, 0):other.offset(i, 0)+other.width*n])
	}
	return out, nil
}

// SplitVertically cuts the image at round(percent*width/100) columns.
// A cut at or before the first column yields (nil, whole); a cut at or past
// the last column yields (whole, nil).
func (img *Image) SplitVertically(percent int) (left, right *Image, err error) {
	if percent < 0 || percent > 100 {
		return nil, nil, fmt.Errorf("%w: split %d", ErrPercent, percent)
	}
	pos := int(math32.Round(float32(percent*img.width) / 100))
	switch {
	case pos <= 0:
		return nil, img, nil
	case pos >= img.width:
		return img, nil, nil
	}
	return img.crop(0, pos), img.crop(pos, img.width), nil
}

// crop returns columns [from, to)
func (img *Image) crop(from, to int) *Image {
	out := blank(to-from, img.height, img.layout)
	n := img.ChannelCount()
	for i := 0; i < img.height; i++ {
		src := img.offset(i, from)
		copy(out.pix[out.offset(i, 0):], img.pix[src:src+(to-from)*n])
	}
	return out
}

// SplitChannels returns one image per channel in which only that channel
// keeps its values.
func (img *Image) SplitChannels() []*Image {
	out := make([]*Image, img.ChannelCount())
	for k := range out {
		out[k] = img.channel(k)
	}
	return out
}

func (img *Image) channel(k int) *Image {
	return img.mapPixels(func(src, dst []float32) {
		dst[k] = src[k]
	})
}

// Combine takes channel 0 from img and channel k from others[k-1].
// Exactly ChannelCount()-1 same-sized images are required.
func (img *Image) Combine(others ...*Image) (*Image, error) {
	n := img.ChannelCount()
	if len(others) != n-1 {
		return nil, fmt.Errorf("%w: combine needs %d images, got %d", ErrChannelCount, n-1, len(others))
	}
	for k, o := range others {
		if o == nil || o.width != img.width || o.height != img.height {
			return nil, fmt.Errorf("%w: image %d", ErrDimensionMismatch, k+1)
		}
		if o.ChannelCount() != n {
			return nil, fmt.Errorf("%w: image %d has %d channels, want %d", ErrChannelCount, k+1, o.ChannelCount(), n)
		}
	}
	out := blank(img.width, img.height, img.layout)
	for i := 0; i < img.height; i++ {
		for j := 0; j < img.width; j++ {
			dst := out.px(i, j)
			dst[0] = img.px(i, j)[0]
			for k := 1; k < n; k++ {
				dst[k] = others[k-1].px(i, j)[k]
			}
		}
	}
	return out, nil
}

// Component keeps only channel c, zeroing the others.
func (img *Image) Component(c ColorChannel) (*Image, error) {
	k := img.layout.ChannelIndex(c)
	if k < 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrChannelUndefined, c, img.layout)
	}
	return img.channel(k), nil
}

// RedComponent keeps only the red channel.
func (img *Image) RedComponent() (*Image, error) { return img.Component(Red) }

// GreenComponent keeps only the green channel.
func (img *Image) GreenComponent() (*Image, error) { return img.Component(Green) }

// BlueComponent keeps only the blue channel.
func (img *Image) BlueComponent() (*Image, error) { return img.Component(Blue) }
