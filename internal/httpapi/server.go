package httpapi

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/park285/boardframe/internal/board"
	"github.com/park285/boardframe/internal/cache"
	"github.com/park285/boardframe/internal/render"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const (
	contentPNG = "image/png"
	contentGIF = "image/gif"

	maxMoves = 600
)

// ImageCache is the optional store for encoded images.
type ImageCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

type Config struct {
	Perspective board.Perspective
	Coordinates bool
	FrameSide   int
	Timeout     time.Duration
}

// Handler serves rendered boards over HTTP.
type Handler struct {
	r      *render.Renderer
	cache  ImageCache
	cfg    Config
	logger *zap.Logger
}

func NewHandler(r *render.Renderer, c ImageCache, cfg Config, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Handler{r: r, cache: c, cfg: cfg, logger: logger}
}

// Serve handles a single request; it is the fasthttp.RequestHandler of the server.
func (h *Handler) Serve(ctx *fasthttp.RequestCtx) {
	reqID := string(ctx.Request.Header.Peek("X-Request-ID"))
	if reqID == "" {
		reqID = uuid.NewString()
	}
	ctx.Response.Header.Set("X-Request-ID", reqID)
	logger := h.logger.With(zap.String("request_id", reqID), zap.ByteString("path", ctx.Path()))
	start := time.Now()

	if !ctx.IsGet() && !ctx.IsHead() {
		ctx.Error("method not allowed", fasthttp.StatusMethodNotAllowed)
		return
	}

	switch string(ctx.Path()) {
	case "/healthz":
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("ok")
	case "/board.png":
		h.serveBoard(ctx, logger)
	case "/game.gif":
		h.serveGame(ctx, logger)
	default:
		ctx.Error("not found", fasthttp.StatusNotFound)
	}
	logger.Info("http_request", zap.Int("status", ctx.Response.StatusCode()), zap.Duration("elapsed", time.Since(start)))
}

func (h *Handler) serveBoard(ctx *fasthttp.RequestCtx, logger *zap.Logger) {
	args := ctx.QueryArgs()
	fen := strings.TrimSpace(string(args.Peek("fen")))
	b, err := board.FromFEN(fen)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	perspective, err := h.perspective(args)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	highlights := string(args.Peek("highlight"))
	for _, sq := range board.ParseSquares(highlights) {
		b.Highlight(sq.String())
	}

	key := cache.Key("png", fen, perspective.String(), highlights)
	h.respond(ctx, logger, key, contentPNG, func(rctx context.Context) ([]byte, error) {
		return h.r.Picture(rctx, b, perspective)
	})
}

func (h *Handler) serveGame(ctx *fasthttp.RequestCtx, logger *zap.Logger) {
	args := ctx.QueryArgs()
	fen := strings.TrimSpace(string(args.Peek("fen")))
	moves := strings.Fields(strings.ReplaceAll(string(args.Peek("moves")), ",", " "))
	if len(moves) > maxMoves {
		badRequest(ctx, errors.New("too many moves"))
		return
	}
	perspective, err := h.perspective(args)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	coords := h.cfg.Coordinates
	if raw := args.Peek("coords"); len(raw) > 0 {
		v, err := strconv.ParseBool(string(raw))
		if err != nil {
			badRequest(ctx, errors.New("coords must be a boolean"))
			return
		}
		coords = v
	}
	game, err := board.ReplayUCI(fen, moves)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	if code, title := board.Opening(game); code != "" {
		ctx.Response.Header.Set("X-Opening-ECO", code)
		ctx.Response.Header.Set("X-Opening", title)
	}

	key := cache.Key("gif", fen, strings.Join(moves, " "), perspective.String(), strconv.FormatBool(coords))
	h.respond(ctx, logger, key, contentGIF, func(rctx context.Context) ([]byte, error) {
		seq, err := h.r.NewSequence(render.SequenceOptions{
			Perspective: perspective,
			Coordinates: coords,
			Side:        h.cfg.FrameSide,
		})
		if err != nil {
			return nil, err
		}
		for _, snap := range board.GameSnapshots(game) {
			seq.AddBoard(snap)
		}
		return seq.GIF(rctx)
	})
}

func (h *Handler) respond(ctx *fasthttp.RequestCtx, logger *zap.Logger, key, contentType string, build func(context.Context) ([]byte, error)) {
	rctx, cancel := context.WithTimeout(context.Background(), h.cfg.Timeout)
	defer cancel()

	if h.cache != nil {
		data, err := h.cache.Get(rctx, key)
		if err != nil {
			logger.Warn("cache_get_failed", zap.Error(err))
		} else if data != nil {
			ctx.Response.Header.Set("X-Cache", "hit")
			writeImage(ctx, contentType, data)
			return
		}
	}

	data, err := build(rctx)
	if err != nil {
		logger.Error("render_failed", zap.Error(err))
		ctx.Error("render failed", fasthttp.StatusInternalServerError)
		return
	}
	if data == nil {
		logger.Warn("render_empty")
		ctx.Error("no image produced", fasthttp.StatusServiceUnavailable)
		return
	}
	if h.cache != nil {
		if err := h.cache.Put(rctx, key, data); err != nil {
			logger.Warn("cache_put_failed", zap.Error(err))
		}
	}
	ctx.Response.Header.Set("X-Cache", "miss")
	writeImage(ctx, contentType, data)
}

func (h *Handler) perspective(args *fasthttp.Args) (board.Perspective, error) {
	raw := strings.TrimSpace(string(args.Peek("perspective")))
	if raw == "" {
		return h.cfg.Perspective, nil
	}
	return board.ParsePerspective(raw)
}

func writeImage(ctx *fasthttp.RequestCtx, contentType string, data []byte) {
	ctx.SetContentType(contentType)
	ctx.Response.Header.Set("Cache-Control", "public, max-age=3600")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(data)
}

func badRequest(ctx *fasthttp.RequestCtx, err error) {
	ctx.Error(err.Error(), fasthttp.StatusBadRequest)
}

// ListenAndServe runs the server until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, h *Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &fasthttp.Server{
		Handler:      h.Serve,
		Name:         "boardframe",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(addr) }()
	logger.Info("http_listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("http_shutdown")
		return srv.Shutdown()
	}
}
