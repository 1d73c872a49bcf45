package ime

import "fmt"

// Bins is the number of histogram buckets per channel.
const Bins = 256

// Histogram is a per-channel frequency table of the integer values 0..255.
type Histogram struct {
	layout Layout
	bins   [][Bins]int
}

// NewHistogram counts the values of every channel of img. Values are
// truncated to int for binning.
func NewHistogram(img *Image) *Histogram {
	n := img.ChannelCount()
	h := &Histogram{layout: img.layout, bins: make([][Bins]int, n)}
	for i := 0; i < len(img.pix); i += n {
		for k := 0; k < n; k++ {
			h.bins[k][int(img.pix[i+k])]++
		}
	}
	return h
}

// ChannelCount returns the number of channels counted.
func (h *Histogram) ChannelCount() int {
	return len(h.bins)
}

// Channels returns the colour channels in histogram order.
func (h *Histogram) Channels() []ColorChannel {
	return h.layout.Channels
}

// Frequencies returns a copy of one channel's table.
func (h *Histogram) Frequencies(channel int) ([Bins]int, error) {
	if err := h.validate(channel, 0, Bins-1); err != nil {
		return [Bins]int{}, err
	}
	return h.bins[channel], nil
}

// Total is the sum of one channel's frequencies, which equals width*height.
func (h *Histogram) Total(channel int) (int, error) {
	if err := h.validate(channel, 0, Bins-1); err != nil {
		return 0, err
	}
	var total int
	for _, f := range h.bins[channel] {
		total += f
	}
	return total, nil
}

// PeakValue returns the highest frequency within [start, end].
func (h *Histogram) PeakValue(channel, start, end int) (int, error) {
	if err := h.validate(channel, start, end); err != nil {
		return 0, err
	}
	return h.peak(channel, start, end), nil
}

// MostFrequentValue returns the smallest value in [start, end] holding the
// peak frequency; start when every frequency in range is zero.
func (h *Histogram) MostFrequentValue(channel, start, end int) (int, error) {
	if err := h.validate(channel, start, end); err != nil {
		return 0, err
	}
	peak := h.peak(channel, start, end)
	for v := start; v <= end; v++ {
		if h.bins[channel][v] == peak {
			return v, nil
		}
	}
	return start, nil
}

func (h *Histogram) peak(channel, start, end int) int {
	var peak int
	for _, f := range h.bins[channel][start : end+1] {
		peak = max(peak, f)
	}
	return peak
}

func (h *Histogram) validate(channel, start, end int) error {
	if channel < 0 || channel >= len(h.bins) {
		return fmt.Errorf("%w: %d of %d", ErrChannelIndex, channel, len(h.bins))
	}
	if start < 0 || end > Bins-1 || start > end {
		return fmt.Errorf("%w: [%d,%d]", ErrRange, start, end)
	}
	return nil
}
