package ime

// Peaks outside this band are ignored when colour correcting, so clipped
// shadows and highlights do not dominate.
const (
	correctLow  = 10
	correctHigh = 245
)

// ColorCorrect aligns the histogram peaks of all channels. Each channel is
// shifted by the difference between the mean peak and its own peak.
func (img *Image) ColorCorrect() (*Image, error) {
	h := NewHistogram(img)
	n := img.ChannelCount()
	peaks := make([]int, n)
	var sum int
	for k := range peaks {
		p, err := h.MostFrequentValue(k, correctLow, correctHigh)
		if err != nil {
			return nil, err
		}
		peaks[k] = p
		sum += p
	}
	mean := sum / n

	if n == 1 {
		return img.Brighten(float32(mean - peaks[0])), nil
	}
	shifted := make([]*Image, n)
	for k, p := range peaks {
		shifted[k] = img.Brighten(float32(mean - p))
	}
	return shifted[0].Combine(shifted[1:]...)
}
