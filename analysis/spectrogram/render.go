package spectrogram

import (
	"fmt"
	"image"

	"github.com/RyanBlaney/sonido-mix/logging"
)

// RenderOptions sizes a rendered image
type RenderOptions struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	MinFrequency float64 `json:"min_frequency"`
	MaxFrequency float64 `json:"max_frequency"`
	MaxPixels    int     `json:"max_pixels"` // 0 = unlimited
}

// Images holds one rendering per computed view
type Images struct {
	Mono  *image.RGBA `json:"-"`
	Left  *image.RGBA `json:"-"`
	Right *image.RGBA `json:"-"`
}

// Get returns the image for channel, or nil
func (im *Images) Get(channel Channel) *image.RGBA {
	switch channel {
	case ChannelMono:
		return im.Mono
	case ChannelLeft:
		return im.Left
	case ChannelRight:
		return im.Right
	default:
		return nil
	}
}

// Render draws dB frames into a len(rows) x width image. Column x samples
// frame floor(x·F/width) and row y reads bin rows[y].
func Render(frames [][]float64, rows []int, width int) *image.RGBA {
	height := len(rows)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if len(frames) == 0 || width <= 0 || height == 0 {
		return img
	}

	table := LUT()
	numFrames := len(frames)
	for x := range width {
		frame := frames[min(numFrames-1, x*numFrames/width)]
		for y, bin := range rows {
			db := -90.0
			if bin < len(frame) {
				db = frame[bin]
			}
			c := table[ColorIndex(db)]

			off := img.PixOffset(x, y)
			img.Pix[off+0] = c.R
			img.Pix[off+1] = c.G
			img.Pix[off+2] = c.B
			img.Pix[off+3] = c.A
		}
	}
	return img
}

// RenderAll renders every computed view of s at the requested size
func RenderAll(s *Spectrogram, opts RenderOptions) (*Images, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("image size %dx%d must be positive", opts.Width, opts.Height)
	}
	if opts.MaxPixels > 0 && opts.Width > opts.MaxPixels/opts.Height {
		return nil, fmt.Errorf("%w: %dx%d image, limit %d pixels", ErrTooLarge, opts.Width, opts.Height, opts.MaxPixels)
	}

	rows := LogScale(opts.Height, opts.MinFrequency, opts.MaxFrequency, s.SampleRate, s.FFTSize)
	images := &Images{}
	for _, channel := range s.Channels() {
		img := Render(s.View(channel).DB, rows, opts.Width)
		switch channel {
		case ChannelMono:
			images.Mono = img
		case ChannelLeft:
			images.Left = img
		case ChannelRight:
			images.Right = img
		}
	}

	logging.Component("spectrogram_renderer").Debug("Spectrogram rendered", logging.Fields{
		"width":  opts.Width,
		"height": opts.Height,
		"views":  len(s.Channels()),
	})
	return images, nil
}
