package ime

import "fmt"

// LevelsAdjust remaps every channel through the quadratic curve that passes
// through (black,0), (mid,128) and (white,255). Values at or below black
// become 0 and values at or above white become 255.
func (img *Image) LevelsAdjust(black, mid, white int) (*Image, error) {
	if black < 0 || white > 255 || !(black < mid && mid < white) {
		return nil, fmt.Errorf("%w: got %d, %d, %d", ErrLevels, black, mid, white)
	}
	a, b, c := levelsCurve(black, mid, white)
	lo, hi := float32(black), float32(white)
	return img.mapPixels(func(src, dst []float32) {
		for k, x := range src {
			switch {
			case x <= lo:
				dst[k] = 0
			case x >= hi:
				dst[k] = 255
			default:
				dst[k] = clamp(a*x*x + b*x + c)
			}
		}
	}), nil
}

// levelsCurve solves y = a*x^2 + b*x + c through the three control points
// by Cramer's rule.
func levelsCurve(black, mid, white int) (a, b, c float32) {
	bl, m, w := float64(black), float64(mid), float64(white)
	d := bl*bl*(m-w) - bl*(m*m-w*w) + w*m*m - m*w*w
	da := -bl*(128-255) + 128*w - 255*m
	db := bl*bl*(128-255) + 255*m*m - 128*w*w
	dc := bl*bl*(255*m-128*w) - bl*(255*m*m-128*w*w)
	return float32(da / d), float32(db / d), float32(dc / d)
}
