package imageio

import (
	"fmt"
	"io"
	"os"
)

// Read decodes pixels from r with codec.
func Read(r io.Reader, codec Codec) ([][][]float32, error) {
	img, err := codec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", codec.Name(), err)
	}
	return ToPixels(img), nil
}

// Write encodes pixels to w with codec.
func Write(w io.Writer, codec Codec, pixels [][][]float32) error {
	img, err := FromPixels(pixels)
	if err != nil {
		return err
	}
	if err := codec.Encode(w, img); err != nil {
		return fmt.Errorf("encode %s: %w", codec.Name(), err)
	}
	return nil
}

// Load reads the image at path, choosing the codec by extension.
func Load(path string) ([][][]float32, error) {
	codec := CodecByPath(path)
	if codec == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, codec)
}

// Save writes pixels to path, choosing the codec by extension. A failed
// encode removes the partial file.
func Save(path string, pixels [][][]float32) error {
	codec := CodecByPath(path)
	if codec == nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	img, err := FromPixels(pixels)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := codec.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode %s: %w", codec.Name(), err)
	}
	return f.Close()
}
