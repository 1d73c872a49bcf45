package store

import "github.com/jpfielding/ime.go/pkg/ime"

// Named wrappers around Apply for the common transforms.

// Brighten stores src with c added to every channel as dst.
func (s *Store) Brighten(src, dst string, c float32) error {
	return s.Apply(src, dst, ime.OpBrighten(c))
}

// Blur stores a 3x3 gaussian blur of src as dst.
func (s *Store) Blur(src, dst string) error {
	return s.Apply(src, dst, ime.OpBlur)
}

// Sharpen stores a 5x5 sharpened copy of src as dst.
func (s *Store) Sharpen(src, dst string) error {
	return s.Apply(src, dst, ime.OpSharpen)
}

// FlipHorizontal stores src mirrored left to right as dst.
func (s *Store) FlipHorizontal(src, dst string) error {
	return s.Apply(src, dst, ime.OpFlipHorizontal)
}

// FlipVertical stores src mirrored top to bottom as dst.
func (s *Store) FlipVertical(src, dst string) error {
	return s.Apply(src, dst, ime.OpFlipVertical)
}

// Value stores the per-pixel channel maximum of src as dst.
func (s *Store) Value(src, dst string) error {
	return s.Apply(src, dst, ime.OpValue)
}

// Intensity stores the per-pixel channel mean of src as dst.
func (s *Store) Intensity(src, dst string) error {
	return s.Apply(src, dst, ime.OpIntensity)
}

// Luma stores the weighted luma of src as dst.
func (s *Store) Luma(src, dst string) error {
	return s.Apply(src, dst, ime.OpLuma)
}

// Sepia stores a sepia-toned copy of src as dst.
func (s *Store) Sepia(src, dst string) error {
	return s.Apply(src, dst, ime.OpSepia)
}

// Red stores src with every channel but red zeroed as dst.
func (s *Store) Red(src, dst string) error {
	return s.Apply(src, dst, ime.OpRed)
}

// Green stores src with every channel but green zeroed as dst.
func (s *Store) Green(src, dst string) error {
	return s.Apply(src, dst, ime.OpGreen)
}

// Blue stores src with every channel but blue zeroed as dst.
func (s *Store) Blue(src, dst string) error {
	return s.Apply(src, dst, ime.OpBlue)
}

// Compress stores src with percent of its haar coefficients discarded
// as dst.
func (s *Store) Compress(src, dst string, percent int) error {
	return s.Apply(src, dst, ime.OpCompress(percent))
}

// LevelsAdjust stores src remapped through the black, mid and white
// points as dst.
func (s *Store) LevelsAdjust(src, dst string, black, mid, white int) error {
	return s.Apply(src, dst, ime.OpLevels(black, mid, white))
}

// ColorCorrect stores src with its histogram peaks aligned as dst.
func (s *Store) ColorCorrect(src, dst string) error {
	return s.Apply(src, dst, ime.OpColorCorrect)
}
