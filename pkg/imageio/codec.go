package imageio

import (
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrDecodeOnly        = errors.New("format is decode only")
	ErrMalformed         = errors.New("malformed image data")
)

// Codec reads and writes one file format
type Codec interface {
	// Encode writes img to w
	Encode(w io.Writer, img image.Image) error
	// Decode reads a single image from r
	Decode(r io.Reader) (image.Image, error)
	// Name returns the format identifier (e.g., "ppm")
	Name() string
}

// ppmCodec implements Codec for plain (P3) or raw (P6) PPM
type ppmCodec struct {
	plain bool
}

func (c *ppmCodec) Encode(w io.Writer, img image.Image) error {
	return EncodePPM(w, img, c.plain)
}

func (c *ppmCodec) Decode(r io.Reader) (image.Image, error) {
	return DecodePPM(r)
}

func (c *ppmCodec) Name() string {
	if c.plain {
		return "ppm"
	}
	return "ppm-raw"
}

// pngCodec implements Codec for PNG
type pngCodec struct{}

func (c *pngCodec) Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func (c *pngCodec) Decode(r io.Reader) (image.Image, error) {
	return png.Decode(r)
}

func (c *pngCodec) Name() string {
	return "png"
}

// jpegCodec implements Codec for baseline JPEG
type jpegCodec struct {
	quality int
}

func (c *jpegCodec) Encode(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: c.quality})
}

func (c *jpegCodec) Decode(r io.Reader) (image.Image, error) {
	return jpeg.Decode(r)
}

func (c *jpegCodec) Name() string {
	return "jpeg"
}

// bmpCodec implements Codec for BMP
type bmpCodec struct{}

func (c *bmpCodec) Encode(w io.Writer, img image.Image) error {
	return bmp.Encode(w, img)
}

func (c *bmpCodec) Decode(r io.Reader) (image.Image, error) {
	return bmp.Decode(r)
}

func (c *bmpCodec) Name() string {
	return "bmp"
}

// tiffCodec implements Codec for TIFF, deflate compressed on write
type tiffCodec struct{}

func (c *tiffCodec) Encode(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

func (c *tiffCodec) Decode(r io.Reader) (image.Image, error) {
	return tiff.Decode(r)
}

func (c *tiffCodec) Name() string {
	return "tiff"
}

// webpCodec implements Codec for WebP; x/image only ships a decoder
type webpCodec struct{}

func (c *webpCodec) Encode(w io.Writer, img image.Image) error {
	return ErrDecodeOnly
}

func (c *webpCodec) Decode(r io.Reader) (image.Image, error) {
	return webp.Decode(r)
}

func (c *webpCodec) Name() string {
	return "webp"
}

// codecsByName maps format names to implementations
var codecsByName = map[string]Codec{
	"ppm":     &ppmCodec{plain: true},
	"ppm-raw": &ppmCodec{},
	"png":     &pngCodec{},
	"jpeg":    &jpegCodec{quality: 95},
	"bmp":     &bmpCodec{},
	"tiff":    &tiffCodec{},
	"webp":    &webpCodec{},
}

// codecsByExt maps lower-case file extensions to implementations
var codecsByExt = map[string]Codec{
	".ppm":  codecsByName["ppm"],
	".pnm":  codecsByName["ppm-raw"],
	".png":  codecsByName["png"],
	".jpg":  codecsByName["jpeg"],
	".jpeg": codecsByName["jpeg"],
	".bmp":  codecsByName["bmp"],
	".tif":  codecsByName["tiff"],
	".tiff": codecsByName["tiff"],
	".webp": codecsByName["webp"],
}

// Predefined codec instances for convenience
var (
	CodecPPM    Codec = codecsByName["ppm"]
	CodecPPMRaw Codec = codecsByName["ppm-raw"]
	CodecPNG    Codec = codecsByName["png"]
	CodecJPEG   Codec = codecsByName["jpeg"]
	CodecBMP    Codec = codecsByName["bmp"]
	CodecTIFF   Codec = codecsByName["tiff"]
	CodecWebP   Codec = codecsByName["webp"]
)

// CodecByName returns a codec by name, or nil if not found
func CodecByName(name string) Codec {
	return codecsByName[strings.ToLower(name)]
}

// CodecByPath picks a codec from the file extension of path, or nil if not found
func CodecByPath(path string) Codec {
	return codecsByExt[strings.ToLower(filepath.Ext(path))]
}
