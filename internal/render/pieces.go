package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/park285/boardframe/internal/board"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/sync/errgroup"
)

//go:embed assets/pieces/*.svg assets/background/*.svg
var spriteFiles embed.FS

// SpriteSource resolves the images a frame is composed from.
type SpriteSource interface {
	Piece(ctx context.Context, piece board.Piece, size int) (image.Image, error)
	Background(ctx context.Context, perspective board.Perspective, size int) (image.Image, error)
}

type spriteKey struct {
	name string
	size int
}

// SVGSprites rasterises the embedded SVG assets and caches each (asset, size) pair.
type SVGSprites struct {
	mu    sync.RWMutex
	cache map[spriteKey]image.Image
}

func NewSVGSprites() *SVGSprites {
	return &SVGSprites{cache: make(map[spriteKey]image.Image)}
}

func (s *SVGSprites) Piece(ctx context.Context, piece board.Piece, size int) (image.Image, error) {
	if piece.Empty() {
		return nil, fmt.Errorf("no sprite for empty square")
	}
	return s.load(ctx, pieceAssetName(piece), size)
}

func (s *SVGSprites) Background(ctx context.Context, perspective board.Perspective, size int) (image.Image, error) {
	return s.load(ctx, fmt.Sprintf("assets/background/%s.svg", perspective), size)
}

func (s *SVGSprites) load(ctx context.Context, name string, size int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("sprite %s: invalid size %d", name, size)
	}
	key := spriteKey{name: name, size: size}

	s.mu.RLock()
	if img, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return img, nil
	}
	s.mu.RUnlock()

	data, err := spriteFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read sprite asset %s: %w", name, err)
	}
	img, err := rasterizeSVG(data, size)
	if err != nil {
		return nil, fmt.Errorf("sprite %s: %w", name, err)
	}

	s.mu.Lock()
	s.cache[key] = img
	s.mu.Unlock()
	return img, nil
}

func rasterizeSVG(data []byte, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(sanitizeSVG(data)))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	if icon.ViewBox.W <= 0 {
		icon.ViewBox.W = float64(size)
	}
	if icon.ViewBox.H <= 0 {
		icon.ViewBox.H = float64(size)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

// sanitizeSVG normalises style declarations oksvg rejects (spaces after colons, bare hex).
func sanitizeSVG(svg []byte) []byte {
	for _, r := range [][2]string{
		{"fill: #", "fill:#"},
		{"stroke: #", "stroke:#"},
		{"stop-color: #", "stop-color:#"},
		{"fill:000000", "fill:#000000"},
		{"stroke:000000", "stroke:#000000"},
	} {
		svg = bytes.ReplaceAll(svg, []byte(r[0]), []byte(r[1]))
	}
	return svg
}

func pieceAssetName(piece board.Piece) string {
	var suffix string
	switch piece.Type {
	case board.King:
		suffix = "K"
	case board.Queen:
		suffix = "Q"
	case board.Rook:
		suffix = "R"
	case board.Bishop:
		suffix = "B"
	case board.Knight:
		suffix = "N"
	case board.Pawn:
		suffix = "P"
	}
	return fmt.Sprintf("assets/pieces/%s%s.svg", piece.Color, suffix)
}

// resolvePieces fetches every sprite up front so painting never waits on an asset.
func resolvePieces(ctx context.Context, src SpriteSource, pieces []board.Piece, size int) (map[board.Piece]image.Image, error) {
	imgs := make([]image.Image, len(pieces))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range pieces {
		g.Go(func() error {
			img, err := src.Piece(gctx, p, size)
			if err != nil {
				return fmt.Errorf("resolve sprite %s: %w", p, err)
			}
			imgs[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[board.Piece]image.Image, len(pieces))
	for i, p := range pieces {
		out[p] = imgs[i]
	}
	return out, nil
}
