package render

import (
	"fmt"
	"image"

	"github.com/park285/boardframe/internal/board"
)

const DefaultFrameSide = 50

type TemplateOptions struct {
	Perspective board.Perspective
	// Side is the square side in pixels; the canvas is 8*Side on each axis.
	Side        int
	Theme       Theme
	Coordinates bool
}

// FrameTemplate is the pre-painted board (squares and optional labels) shared by every
// frame of an animation. Its pixels never change after construction.
type FrameTemplate struct {
	opts TemplateOptions
	base *image.RGBA
}

// NewTemplate paints a template on a surface from newSurface (NewSurface when nil).
func NewTemplate(opts TemplateOptions, newSurface SurfaceFactory) (*FrameTemplate, error) {
	if opts.Side == 0 {
		opts.Side = DefaultFrameSide
	}
	opts.Theme = opts.Theme.withDefaults()
	if newSurface == nil {
		newSurface = NewSurface
	}
	s, err := newSurface(8*opts.Side, 8*opts.Side)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSurfaceUnavailable
	}
	if err := paintBase(s, opts); err != nil {
		return nil, err
	}
	return &FrameTemplate{opts: opts, base: cloneRGBA(s.Image())}, nil
}

func (t *FrameTemplate) Perspective() board.Perspective { return t.opts.Perspective }
func (t *FrameTemplate) Side() int                      { return t.opts.Side }
func (t *FrameTemplate) Size() int                      { return 8 * t.opts.Side }
func (t *FrameTemplate) Theme() Theme                   { return t.opts.Theme }
func (t *FrameTemplate) Coordinates() bool              { return t.opts.Coordinates }

// Clone returns a private, mutable copy of the template pixels.
func (t *FrameTemplate) Clone() *image.RGBA {
	return cloneRGBA(t.base)
}

// paintBase draws the checkerboard and, when enabled, the coordinate labels.
func paintBase(s Surface, opts TemplateOptions) error {
	side := opts.Side
	s.Fill(image.Rect(0, 0, 8*side, 8*side), opts.Theme.Light)
	// Pixel-space parity; a1 lands on a dark square from either side.
	for col := 0; col < 8; col++ {
		for row := 1; row <= 8; row++ {
			if (col+row)%2 == 0 {
				s.Fill(image.Rect(side*col, side*(row-1), side*(col+1), side*row), opts.Theme.Dark)
			}
		}
	}
	if !opts.Coordinates {
		return nil
	}
	return paintLabels(s, opts)
}

// paintLabels puts file letters on the bottom edge and rank numbers on the right edge,
// each in the colour of the opposite square shade.
func paintLabels(s Surface, opts TemplateOptions) error {
	side := opts.Side
	face, err := labelFace(float64(side) / 6)
	if err != nil {
		return err
	}
	defer face.Close()

	fileRank, rankFile := 1, 7
	if opts.Perspective == board.Black {
		fileRank, rankFile = 8, 0
	}
	inset := float64(side) / 10
	for file := 0; file < 8; file++ {
		for rank := 1; rank <= 8; rank++ {
			if rank != fileRank && file != rankFile {
				continue
			}
			sq, _ := board.NewSquare(file, rank)
			clr := opts.Theme.Dark
			if sq.Dark() {
				clr = opts.Theme.Light
			}
			o := SquareOrigin(sq, opts.Perspective, side)
			x, y := float64(o.X), float64(o.Y)
			if rank == fileRank {
				s.DrawText(board.FileLetter(file), face, x+inset, y+float64(side)-inset, 0, 0, clr)
			}
			if file == rankFile {
				s.DrawText(fmt.Sprint(rank), face, x+float64(side)-inset, y+inset, 1, 1, clr)
			}
		}
	}
	return nil
}
