package ime

// Operation is an image-to-image transform that can be applied to a whole
// image or, through a split preview, to part of one.
type Operation func(*Image) (*Image, error)

// infallible lifts a transform that cannot fail.
func infallible(fn func(*Image) *Image) Operation {
	return func(img *Image) (*Image, error) {
		return fn(img), nil
	}
}

// Operations for the fixed transforms
var (
	OpBlur           = infallible((*Image).Blur)
	OpSharpen        = infallible((*Image).Sharpen)
	OpFlipHorizontal = infallible((*Image).FlipHorizontal)
	OpFlipVertical   = infallible((*Image).FlipVertical)
	OpValue          = infallible((*Image).ValueImage)
	OpIntensity      = infallible((*Image).IntensityImage)
	OpLuma           = Operation((*Image).LumaImage)
	OpSepia          = Operation((*Image).Sepia)
	OpColorCorrect   = Operation((*Image).ColorCorrect)
	OpRed            = Operation((*Image).RedComponent)
	OpGreen          = Operation((*Image).GreenComponent)
	OpBlue           = Operation((*Image).BlueComponent)
)

// OpBrighten adds c to every channel.
func OpBrighten(c float32) Operation {
	return func(img *Image) (*Image, error) {
		return img.Brighten(c), nil
	}
}

// OpFilter convolves with kernel.
func OpFilter(kernel [][]float32) Operation {
	return func(img *Image) (*Image, error) {
		return img.ApplyFilter(kernel)
	}
}

// OpColorTransform applies a channel matrix.
func OpColorTransform(matrix [][]float32) Operation {
	return func(img *Image) (*Image, error) {
		return img.ColorTransform(matrix)
	}
}

// OpLevels adjusts levels with the given control points.
func OpLevels(black, mid, white int) Operation {
	return func(img *Image) (*Image, error) {
		return img.LevelsAdjust(black, mid, white)
	}
}

// OpCompress applies Haar compression.
func OpCompress(percent int) Operation {
	return func(img *Image) (*Image, error) {
		return img.Compress(percent)
	}
}
