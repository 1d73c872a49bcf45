package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/jpfielding/ime.go/pkg/ime"
)

var (
	ErrImageNotFound = errors.New("image not found")
	ErrInvalidName   = errors.New("invalid image name")
)

// HistogramSize is the edge length of rendered histogram plots.
const HistogramSize = 256

// Store keeps images under unique names. Writing an existing name replaces
// it. A Store is safe for concurrent use; transforms run outside the lock.
type Store struct {
	mu     sync.RWMutex
	images map[string]*ime.Image
	log    *slog.Logger
}

// New returns an empty store logging through logger (slog.Default when nil).
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		images: map[string]*ime.Image{},
		log:    logger,
	}
}

// Load builds an image from a pixel array and stores it as name. The layout
// follows the channel count of the first pixel: gray, rgb or rgba.
func (s *Store) Load(name string, pixels [][][]float32) error {
	layout := ime.RGB
	if len(pixels) > 0 && len(pixels[0]) > 0 {
		n := len(pixels[0][0])
		l, ok := ime.LayoutForChannels(n)
		if !ok {
			return fmt.Errorf("loading %q: %w: no layout has %d channels", name, ime.ErrChannelCount, n)
		}
		layout = l
	}
	img, err := ime.New(pixels, layout)
	if err != nil {
		return fmt.Errorf("loading %q: %w", name, err)
	}
	return s.Put(name, img)
}

// Put stores img under name.
func (s *Store) Put(name string, img *ime.Image) error {
	if name == "" {
		return ErrInvalidName
	}
	if img == nil {
		return fmt.Errorf("%w: nil image for %q", ErrInvalidName, name)
	}
	s.mu.Lock()
	s.images[name] = img
	s.mu.Unlock()
	s.log.Debug("stored image", "name", name, "image", img.String())
	return nil
}

// Get returns the image stored as name.
func (s *Store) Get(name string) (*ime.Image, error) {
	s.mu.RLock()
	img, ok := s.images[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrImageNotFound, name)
	}
	return img, nil
}

// Pixels returns the stored image as a [height][width][channels] array.
func (s *Store) Pixels(name string) ([][][]float32, error) {
	img, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return img.Array(), nil
}

// Has reports whether name is stored.
func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.images[name]
	return ok
}

// Delete removes name; deleting an unknown name fails.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[name]; !ok {
		return fmt.Errorf("%w: %q", ErrImageNotFound, name)
	}
	delete(s.images, name)
	return nil
}

// Names lists the stored names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.images))
	for n := range s.images {
		names = append(names, n)
	}
	s.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Len returns the number of stored images.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

// Apply runs op on src and stores the result as dst.
func (s *Store) Apply(src, dst string, op ime.Operation) error {
	img, err := s.Get(src)
	if err != nil {
		return err
	}
	out, err := op(img)
	if err != nil {
		return fmt.Errorf("%s -> %s: %w", src, dst, err)
	}
	return s.Put(dst, out)
}

// Preview applies op to the left percent of src and stores it, joined with
// the untouched remainder, as dst. The partial result lives only in this
// call and never enters the store's namespace.
func (s *Store) Preview(src, dst string, op ime.Operation, percent int) error {
	img, err := s.Get(src)
	if err != nil {
		return err
	}
	out, err := Preview(img, op, percent)
	if err != nil {
		return fmt.Errorf("preview %s -> %s: %w", src, dst, err)
	}
	return s.Put(dst, out)
}

// Preview splits img at percent, applies op to the left part and appends
// the unmodified right part.
func Preview(img *ime.Image, op ime.Operation, percent int) (*ime.Image, error) {
	left, right, err := img.SplitVertically(percent)
	if err != nil {
		return nil, err
	}
	if left == nil {
		return right, nil
	}
	done, err := op(left)
	if err != nil {
		return nil, err
	}
	if right == nil {
		return done, nil
	}
	return done.Append(right)
}

// SplitChannels stores one single-channel image per destination name.
func (s *Store) SplitChannels(src string, dsts []string) error {
	img, err := s.Get(src)
	if err != nil {
		return err
	}
	if len(dsts) != img.ChannelCount() {
		return fmt.Errorf("%w: %d names for %d channels", ime.ErrChannelCount, len(dsts), img.ChannelCount())
	}
	for i, part := range img.SplitChannels() {
		if err := s.Put(dsts[i], part); err != nil {
			return err
		}
	}
	return nil
}

// Combine stores the combination of srcs (first image supplies channel 0)
// as dst. Every source must exist before anything is computed.
func (s *Store) Combine(srcs []string, dst string) error {
	if len(srcs) == 0 {
		return fmt.Errorf("%w: no sources", ime.ErrChannelCount)
	}
	images := make([]*ime.Image, len(srcs))
	for i, name := range srcs {
		img, err := s.Get(name)
		if err != nil {
			return err
		}
		images[i] = img
	}
	out, err := images[0].Combine(images[1:]...)
	if err != nil {
		return fmt.Errorf("combine -> %s: %w", dst, err)
	}
	return s.Put(dst, out)
}

// Histogram renders the histogram of src on canvas and stores the plot as dst.
func (s *Store) Histogram(src, dst string, canvas ime.Canvas) error {
	img, err := s.Get(src)
	if err != nil {
		return err
	}
	drawing, err := ime.NewHistogramDrawer(HistogramSize, HistogramSize, canvas).Draw(ime.NewHistogram(img))
	if err != nil {
		return fmt.Errorf("histogram %s: %w", src, err)
	}
	return s.Load(dst, drawing)
}
