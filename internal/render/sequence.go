package render

import (
	"bytes"
	"context"
	"image"

	"github.com/park285/boardframe/internal/board"
	"go.uber.org/zap"
)

type SequenceOptions struct {
	Perspective board.Perspective
	Coordinates bool
	// Theme colours left nil fall back to the renderer's theme.
	Theme Theme
	// Side defaults to half the renderer's picture side.
	Side int
}

// Sequence collects board snapshots that share one template and renders them as the
// frames of an animation. It is not safe for concurrent Add calls.
type Sequence struct {
	r        *Renderer
	template *FrameTemplate
	boards   []*board.Board
}

func (r *Renderer) NewSequence(opts SequenceOptions) (*Sequence, error) {
	side := opts.Side
	if side == 0 {
		side = r.pictureSide / 2
	}
	t, err := NewTemplate(TemplateOptions{
		Perspective: opts.Perspective,
		Side:        side,
		Theme:       opts.Theme.or(r.theme),
		Coordinates: opts.Coordinates,
	}, r.newSurface)
	if err != nil {
		return nil, err
	}
	return &Sequence{r: r, template: t}, nil
}

func (s *Sequence) Template() *FrameTemplate { return s.template }

func (s *Sequence) Len() int { return len(s.boards) }

// Add appends a frame from a rank-major grid and its highlighted squares. A malformed grid
// produces an empty board; invalid highlight squares are skipped.
func (s *Sequence) Add(grid board.Grid, highlights []string) {
	b := board.FromGrid(grid)
	for _, h := range highlights {
		b.Highlight(h)
	}
	s.boards = append(s.boards, b)
}

// AddBoard appends a snapshot of b, including its highlights.
func (s *Sequence) AddBoard(b *board.Board) {
	if b == nil {
		b = board.NewBoard()
	}
	s.boards = append(s.boards, b.Clone())
}

// Frames renders every added snapshot in order. It returns nil, nil when nothing was added.
func (s *Sequence) Frames(ctx context.Context) ([]*image.RGBA, error) {
	if len(s.boards) == 0 {
		s.r.logger.Debug("sequence_empty")
		return nil, nil
	}
	sprites, err := resolvePieces(ctx, s.r.sprites, s.pieces(), s.template.Side())
	if err != nil {
		return nil, err
	}
	frames := make([]*image.RGBA, 0, len(s.boards))
	for _, b := range s.boards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frames = append(frames, composeFrame(s.template, b, sprites))
	}
	return frames, nil
}

// GIF renders and encodes the animation. It returns nil, nil when nothing was added.
func (s *Sequence) GIF(ctx context.Context) ([]byte, error) {
	frames, err := s.Frames(ctx)
	if err != nil || len(frames) == 0 {
		return nil, err
	}
	var buf bytes.Buffer
	if err := s.r.encoder.EncodeAnimation(&buf, frames); err != nil {
		return nil, err
	}
	s.r.logger.Debug("sequence_encoded", zap.Int("frames", len(frames)), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (s *Sequence) pieces() []board.Piece {
	seen := make(map[board.Piece]struct{})
	var out []board.Piece
	for _, b := range s.boards {
		for _, p := range b.Pieces() {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
