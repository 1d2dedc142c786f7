package render

import (
	"errors"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
)

var ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

// Surface is the 2D drawing target a frame is composed on.
type Surface interface {
	Bounds() image.Rectangle
	// Fill paints r with c, blending when c is translucent.
	Fill(r image.Rectangle, c color.Color)
	// DrawImage draws img scaled to exactly cover r.
	DrawImage(img image.Image, r image.Rectangle)
	// DrawText draws text anchored at (x, y); ax and ay are fractions of the text extent,
	// (0, 0) meaning x is the left edge and y the baseline.
	DrawText(text string, face font.Face, x, y, ax, ay float64, c color.Color)
	// Image exposes the backing pixels. Callers must not keep it past the surface's life.
	Image() *image.RGBA
}

// SurfaceFactory acquires a fresh surface of the given size.
type SurfaceFactory func(width, height int) (Surface, error)

type ggSurface struct {
	im *image.RGBA
	dc *gg.Context
}

// NewSurface is the default SurfaceFactory, backed by a gg context.
func NewSurface(width, height int) (Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrSurfaceUnavailable
	}
	return wrapRGBA(image.NewRGBA(image.Rect(0, 0, width, height))), nil
}

func wrapRGBA(im *image.RGBA) *ggSurface {
	return &ggSurface{im: im, dc: gg.NewContextForRGBA(im)}
}

func (s *ggSurface) Bounds() image.Rectangle { return s.im.Bounds() }

func (s *ggSurface) Fill(r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	s.dc.SetColor(c)
	s.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	s.dc.Fill()
}

func (s *ggSurface) DrawImage(img image.Image, r image.Rectangle) {
	if img == nil || r.Empty() {
		return
	}
	sb := img.Bounds()
	if sb.Dx() == r.Dx() && sb.Dy() == r.Dy() {
		xdraw.Draw(s.im, r, img, sb.Min, xdraw.Over)
		return
	}
	xdraw.CatmullRom.Scale(s.im, r, img, sb, xdraw.Over, nil)
}

func (s *ggSurface) DrawText(text string, face font.Face, x, y, ax, ay float64, c color.Color) {
	if text == "" || face == nil {
		return
	}
	s.dc.SetFontFace(face)
	s.dc.SetColor(c)
	s.dc.DrawStringAnchored(text, x, y, ax, ay)
}

func (s *ggSurface) Image() *image.RGBA { return s.im }

// offsetSurface translates every drawing call by off, so board coordinates can be used on a
// canvas where the board does not start at the top-left corner.
type offsetSurface struct {
	Surface
	off image.Point
}

func (s offsetSurface) Bounds() image.Rectangle {
	return s.Surface.Bounds().Sub(s.off)
}

func (s offsetSurface) Fill(r image.Rectangle, c color.Color) {
	s.Surface.Fill(r.Add(s.off), c)
}

func (s offsetSurface) DrawImage(img image.Image, r image.Rectangle) {
	s.Surface.DrawImage(img, r.Add(s.off))
}

func (s offsetSurface) DrawText(text string, face font.Face, x, y, ax, ay float64, c color.Color) {
	s.Surface.DrawText(text, face, x+float64(s.off.X), y+float64(s.off.Y), ax, ay, c)
}

// cloneRGBA returns a private copy of src with the same bounds.
func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
