package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"github.com/park285/boardframe/internal/board"
	"github.com/park285/boardframe/internal/codec"
	"go.uber.org/zap"
)

const DefaultPictureSide = 100

// Encoder is the codec collaborator that turns raw frames into image files.
type Encoder interface {
	EncodeStill(w io.Writer, img image.Image) error
	EncodeAnimation(w io.Writer, frames []*image.RGBA) error
}

type Options struct {
	Sprites    SpriteSource
	Encoder    Encoder
	NewSurface SurfaceFactory
	Theme      Theme
	// PictureSide is the square side of still images; animation frames default to half of it.
	PictureSide        int
	PictureCoordinates bool
	Logger             *zap.Logger
}

// Renderer composes still pictures and animation frames. It holds no per-render state and
// may be shared between goroutines.
type Renderer struct {
	sprites     SpriteSource
	encoder     Encoder
	newSurface  SurfaceFactory
	theme       Theme
	pictureSide int
	pictureLbl  bool
	logger      *zap.Logger
}

func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		sprites:     opts.Sprites,
		encoder:     opts.Encoder,
		newSurface:  opts.NewSurface,
		theme:       opts.Theme.withDefaults(),
		pictureSide: opts.PictureSide,
		pictureLbl:  opts.PictureCoordinates,
		logger:      opts.Logger,
	}
	if r.sprites == nil {
		r.sprites = NewSVGSprites()
	}
	if r.encoder == nil {
		r.encoder = codec.New(codec.Options{Logger: opts.Logger})
	}
	if r.newSurface == nil {
		r.newSurface = NewSurface
	}
	if r.pictureSide <= 0 {
		r.pictureSide = DefaultPictureSide
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Picture renders b as a PNG still at the picture side. A nil result with a nil error
// means no drawing surface could be acquired.
func (r *Renderer) Picture(ctx context.Context, b *board.Board, perspective board.Perspective) ([]byte, error) {
	frame, err := r.PictureFrame(ctx, b, perspective)
	if err != nil || frame == nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.encoder.EncodeStill(&buf, frame); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PictureMargin is the width of the background frame around a still picture's board.
func PictureMargin(side int) int { return side / 4 }

// BoardOrigin is the top-left pixel of the board inside a still picture.
func (r *Renderer) BoardOrigin() image.Point {
	m := PictureMargin(r.pictureSide)
	return image.Point{X: m, Y: m}
}

// PictureFrame is Picture without the encoding step. The board sits at BoardOrigin on a
// canvas framed by the perspective's background.
func (r *Renderer) PictureFrame(ctx context.Context, b *board.Board, perspective board.Perspective) (*image.RGBA, error) {
	if b == nil {
		return nil, fmt.Errorf("board is nil")
	}
	side := r.pictureSide
	boardOrigin := r.BoardOrigin()
	size := 8*side + 2*boardOrigin.X

	s, err := r.newSurface(size, size)
	if err != nil || s == nil {
		r.logger.Warn("surface_unavailable", zap.Int("size", size), zap.Error(err))
		return nil, nil
	}

	sprites, err := resolvePieces(ctx, r.sprites, b.Pieces(), side)
	if err != nil {
		return nil, err
	}
	background, err := r.sprites.Background(ctx, perspective, size)
	if err != nil {
		return nil, fmt.Errorf("resolve background: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.DrawImage(background, s.Bounds())
	bs := offsetSurface{Surface: s, off: boardOrigin}
	opts := TemplateOptions{Perspective: perspective, Side: side, Theme: r.theme, Coordinates: r.pictureLbl}
	if err := paintBase(bs, opts); err != nil {
		return nil, err
	}
	paintSquares(bs, b, perspective, side, r.theme, sprites)
	return s.Image(), nil
}

// RenderFrame composes b over a private copy of t.
func (r *Renderer) RenderFrame(ctx context.Context, t *FrameTemplate, b *board.Board) (*image.RGBA, error) {
	if t == nil || b == nil {
		return nil, fmt.Errorf("template and board are required")
	}
	sprites, err := resolvePieces(ctx, r.sprites, b.Pieces(), t.Side())
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return composeFrame(t, b, sprites), nil
}

func composeFrame(t *FrameTemplate, b *board.Board, sprites map[board.Piece]image.Image) *image.RGBA {
	im := t.Clone()
	paintSquares(wrapRGBA(im), b, t.Perspective(), t.Side(), t.Theme(), sprites)
	return im
}

// paintSquares lays the highlight overlay and then the piece sprite on every square,
// walking ranks from 8 down to 1.
func paintSquares(s Surface, b *board.Board, perspective board.Perspective, side int, theme Theme, sprites map[board.Piece]image.Image) {
	highlights := b.Highlights()
	for file := 0; file < 8; file++ {
		for rank := 8; rank >= 1; rank-- {
			sq, _ := board.NewSquare(file, rank)
			rect := squareRect(sq, perspective, side)
			if containsSquare(highlights, sq) {
				s.Fill(rect, theme.Highlight)
			}
			p := b.At(sq)
			if p.Empty() {
				continue
			}
			s.DrawImage(sprites[p], rect)
		}
	}
}
