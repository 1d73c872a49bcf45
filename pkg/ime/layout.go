package ime

import (
	"image/color"
	"slices"
	"strings"
)

// ColorChannel names the meaning of one pixel channel.
type ColorChannel int

const (
	Red ColorChannel = iota
	Green
	Blue
	Alpha
	Grey
)

var channelNames = map[ColorChannel]string{
	Red:   "red",
	Green: "green",
	Blue:  "blue",
	Alpha: "alpha",
	Grey:  "grey",
}

func (c ColorChannel) String() string {
	if s, ok := channelNames[c]; ok {
		return s
	}
	return "unknown"
}

// Color is the colour used when plotting this channel.
func (c ColorChannel) Color() color.RGBA {
	switch c {
	case Red:
		return color.RGBA{R: 255, A: 255}
	case Green:
		return color.RGBA{G: 255, A: 255}
	case Blue:
		return color.RGBA{B: 255, A: 255}
	case Grey:
		return color.RGBA{R: 90, G: 90, B: 90, A: 255}
	default:
		return color.RGBA{A: 255}
	}
}

// Layout describes the channel arrangement shared by every pixel of an image.
// New layouts can be declared without touching any transform.
type Layout struct {
	Name     string
	Channels []ColorChannel
}

// Predefined layouts
var (
	RGB  = Layout{Name: "rgb", Channels: []ColorChannel{Red, Green, Blue}}
	RGBA = Layout{Name: "rgba", Channels: []ColorChannel{Red, Green, Blue, Alpha}}
	Gray = Layout{Name: "gray", Channels: []ColorChannel{Grey}}
)

var layoutsByName = map[string]Layout{
	"rgb":  RGB,
	"rgba": RGBA,
	"gray": Gray,
	"grey": Gray, // alias
}

// LayoutByName returns a predefined layout, case-insensitively.
func LayoutByName(name string) (Layout, bool) {
	l, ok := layoutsByName[strings.ToLower(name)]
	return l, ok
}

// LayoutForChannels picks the predefined layout with n channels.
func LayoutForChannels(n int) (Layout, bool) {
	switch n {
	case 1:
		return Gray, true
	case 3:
		return RGB, true
	case 4:
		return RGBA, true
	}
	return Layout{}, false
}

// ChannelCount returns the number of channels per pixel.
func (l Layout) ChannelCount() int {
	return len(l.Channels)
}

// ChannelIndex returns the position of c, or -1 if the layout lacks it.
func (l Layout) ChannelIndex(c ColorChannel) int {
	return slices.Index(l.Channels, c)
}

// NewPixel returns a zero-valued pixel of this layout.
func (l Layout) NewPixel() Pixel {
	return Pixel{values: make([]float32, len(l.Channels))}
}

func (l Layout) String() string {
	return l.Name
}

func (l Layout) equal(o Layout) bool {
	return l.Name == o.Name && slices.Equal(l.Channels, o.Channels)
}
