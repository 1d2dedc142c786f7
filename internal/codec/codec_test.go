package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"testing"
	"time"
)

func solid(c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestEncodeAnimationFrameOrderAndLoop(t *testing.T) {
	c := New(Options{Delay: 500 * time.Millisecond, PaletteSize: 24})
	colors := []color.RGBA{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}}
	var frames []*image.RGBA
	for _, clr := range colors {
		frames = append(frames, solid(clr))
	}

	var buf bytes.Buffer
	if err := c.EncodeAnimation(&buf, frames); err != nil {
		t.Fatalf("EncodeAnimation: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(anim.Image) != len(colors) {
		t.Fatalf("frames = %d want %d", len(anim.Image), len(colors))
	}
	if anim.LoopCount != 0 {
		t.Fatalf("loop count = %d want 0 (forever)", anim.LoopCount)
	}
	for i, want := range colors {
		if anim.Delay[i] != 50 {
			t.Fatalf("frame %d delay = %d want 50", i, anim.Delay[i])
		}
		r, g, b, _ := anim.Image[i].At(8, 8).RGBA()
		if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
			t.Fatalf("frame %d pixel = %d,%d,%d want %v", i, r>>8, g>>8, b>>8, want)
		}
	}
}

func TestEncodeAnimationNoFrames(t *testing.T) {
	var buf bytes.Buffer
	if err := New(Options{}).EncodeAnimation(&buf, nil); !errors.Is(err, ErrNoFrames) {
		t.Fatalf("err = %v want ErrNoFrames", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("wrote %d bytes for an empty animation", buf.Len())
	}
}

func TestQuantizeBoundsPalette(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 4), uint8(y * 4), uint8(x + y), 255})
		}
	}
	for _, rgb444 := range []bool{false, true} {
		p := New(Options{PaletteSize: 24, RGB444: rgb444}).Quantize(img)
		if len(p.Palette) == 0 || len(p.Palette) > 24 {
			t.Fatalf("rgb444=%v palette size %d", rgb444, len(p.Palette))
		}
		if p.Bounds() != img.Bounds() {
			t.Fatalf("bounds changed: %v", p.Bounds())
		}
	}
}

func TestSnapRGB444(t *testing.T) {
	out := snapRGB444(solid(color.RGBA{0x1F, 0x80, 0xFF, 0xFF}))
	got := out.RGBAAt(0, 0)
	if got.R != 0x11 || got.G != 0x88 || got.B != 0xFF {
		t.Fatalf("snapped = %#v", got)
	}
}

func TestEncodeStillPNG(t *testing.T) {
	img := solid(color.RGBA{10, 20, 30, 255})
	var buf bytes.Buffer
	if err := New(Options{}).EncodeStill(&buf, img); err != nil {
		t.Fatalf("EncodeStill: %v", err)
	}
	dec, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if r, g, b, _ := dec.At(3, 3).RGBA(); r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}
