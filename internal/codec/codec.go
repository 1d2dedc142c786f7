// Package codec turns raw RGBA frames into encoded still and animated images.
package codec

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"time"

	"github.com/ericpauley/go-quantize/quantize"
	"go.uber.org/zap"
)

var ErrNoFrames = errors.New("animation has no frames")

const (
	DefaultDelay       = time.Second
	DefaultPaletteSize = 24
)

type Options struct {
	// Delay is shown after every frame; GIF stores it in hundredths of a second.
	Delay time.Duration
	// PaletteSize bounds each frame's palette, 2..256.
	PaletteSize int
	// RGB444 snaps colours to 4 bits per channel before quantization.
	RGB444 bool
	Logger *zap.Logger
}

type Codec struct {
	opts   Options
	logger *zap.Logger
}

func New(opts Options) *Codec {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.PaletteSize < 2 || opts.PaletteSize > 256 {
		opts.PaletteSize = DefaultPaletteSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Codec{opts: opts, logger: logger}
}

// EncodeStill writes img as PNG.
func (c *Codec) EncodeStill(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// EncodeAnimation writes frames, in order, as an infinitely looping GIF.
func (c *Codec) EncodeAnimation(w io.Writer, frames []*image.RGBA) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	delay := int(c.opts.Delay / (10 * time.Millisecond))
	if delay < 1 {
		delay = 1
	}
	anim := &gif.GIF{LoopCount: 0}
	for i, frame := range frames {
		if frame == nil {
			return fmt.Errorf("frame %d is nil", i)
		}
		anim.Image = append(anim.Image, c.Quantize(frame))
		anim.Delay = append(anim.Delay, delay)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	c.logger.Debug("gif_encoded", zap.Int("frames", len(frames)), zap.Int("delay_cs", delay))
	return nil
}

// Quantize maps img onto a median-cut palette of at most PaletteSize colours.
func (c *Codec) Quantize(img image.Image) *image.Paletted {
	src := img
	if c.opts.RGB444 {
		src = snapRGB444(img)
	}
	q := quantize.MedianCutQuantizer{}
	palette := q.Quantize(make(color.Palette, 0, c.opts.PaletteSize), src)
	if len(palette) == 0 {
		palette = color.Palette{color.Black}
	}
	b := src.Bounds()
	out := image.NewPaletted(b, palette)
	draw.Draw(out, b, src, b.Min, draw.Src)
	return out
}

func snapRGB444(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = (out.Pix[i+0] >> 4) * 17
		out.Pix[i+1] = (out.Pix[i+1] >> 4) * 17
		out.Pix[i+2] = (out.Pix[i+2] >> 4) * 17
	}
	return out
}
