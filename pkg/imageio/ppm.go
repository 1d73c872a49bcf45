package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

// MaxPixels caps the raster size DecodePPM will allocate.
const MaxPixels = 1 << 26

// DecodePPM reads a plain (P3) or raw (P6) portable pixmap. Comments start
// with '#' and run to the end of the line. Samples are rescaled to 8 bits
// when the header's maximum value is not 255.
func DecodePPM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	magic, err := ppmToken(br)
	if err != nil {
		return nil, err
	}
	if magic != "P3" && magic != "P6" {
		return nil, fmt.Errorf("%w: ppm magic %q", ErrMalformed, magic)
	}
	var header [3]int
	for i := range header {
		if header[i], err = ppmInt(br); err != nil {
			return nil, err
		}
	}
	width, height, maxVal := header[0], header[1], header[2]
	if width <= 0 || height <= 0 || maxVal <= 0 || maxVal > 65535 {
		return nil, fmt.Errorf("%w: ppm header %dx%d max %d", ErrMalformed, width, height, maxVal)
	}
	if width > MaxPixels || height > MaxPixels/width {
		return nil, fmt.Errorf("%w: ppm %dx%d exceeds %d pixels", ErrMalformed, width, height, MaxPixels)
	}

	sample := func() (int, error) { return ppmInt(br) }
	if magic == "P6" {
		// ppmToken already consumed the single whitespace byte ending the header
		sample = func() (int, error) { return ppmRaw(br, maxVal > 255) }
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var rgb [3]int
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for k := range rgb {
				v, err := sample()
				if err != nil {
					return nil, fmt.Errorf("pixel (%d,%d): %w", y, x, err)
				}
				if v > maxVal {
					return nil, fmt.Errorf("%w: sample %d above max %d", ErrMalformed, v, maxVal)
				}
				rgb[k] = v * 255 / maxVal
			}
			img.SetRGBA(x, y, color.RGBA{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: 255})
		}
	}
	return img, nil
}

// ppmToken returns the next whitespace-delimited token, skipping comments.
func ppmToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", fmt.Errorf("%w: ppm: %v", ErrMalformed, err)
		}
		switch {
		case b == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}

func ppmInt(br *bufio.Reader) (int, error) {
	tok, err := ppmToken(br)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: ppm value %q", ErrMalformed, tok)
	}
	return v, nil
}

func ppmRaw(br *bufio.Reader, wide bool) (int, error) {
	hi, err := br.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: ppm raster: %v", ErrMalformed, err)
	}
	if !wide {
		return int(hi), nil
	}
	lo, err := br.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: ppm raster: %v", ErrMalformed, err)
	}
	return int(hi)<<8 | int(lo), nil
}

// EncodePPM writes img as an 8-bit PPM, plain (P3) text when plain is set
// and raw (P6) otherwise. Alpha is dropped.
func EncodePPM(w io.Writer, img image.Image, plain bool) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	magic := "P6"
	if plain {
		magic = "P3"
	}
	fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if !plain {
				bw.Write([]byte{c.R, c.G, c.B})
				continue
			}
			if x > b.Min.X {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%d %d %d", c.R, c.G, c.B)
		}
		if plain {
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
