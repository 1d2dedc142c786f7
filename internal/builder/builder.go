package builder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/park285/boardframe/internal/cache"
	"github.com/park285/boardframe/internal/codec"
	"github.com/park285/boardframe/internal/config"
	"github.com/park285/boardframe/internal/httpapi"
	"github.com/park285/boardframe/internal/render"
	"go.uber.org/zap"
)

type Deps struct {
	Renderer *render.Renderer
	Codec    *codec.Codec
	Cache    *cache.Store
	Handler  *httpapi.Handler
}

// New wires the renderer stack from configuration. Redis is optional.
func New(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	enc := codec.New(codec.Options{
		Delay:       cfg.FrameDelay,
		PaletteSize: cfg.PaletteSize,
		RGB444:      cfg.RGB444,
		Logger:      logger.Named("codec"),
	})
	r := render.NewRenderer(render.Options{
		Encoder:            enc,
		Theme:              cfg.Theme,
		PictureSide:        cfg.PictureSide,
		PictureCoordinates: cfg.Coordinates,
		Logger:             logger.Named("render"),
	})

	var store *cache.Store
	if strings.TrimSpace(cfg.RedisURL) != "" {
		cconf, err := cache.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		store, err = cache.Dial(ctx, *cconf, cfg.CacheTTL, logger.Named("cache"))
		if err != nil {
			return nil, fmt.Errorf("init cache: %w", err)
		}
	}

	var imgCache httpapi.ImageCache
	if store != nil {
		imgCache = store
	}
	h := httpapi.NewHandler(r, imgCache, httpapi.Config{
		Perspective: cfg.Perspective,
		Coordinates: cfg.Coordinates,
		FrameSide:   cfg.FrameSide,
		Timeout:     30 * time.Second,
	}, logger.Named("http"))

	return &Deps{Renderer: r, Codec: enc, Cache: store, Handler: h}, nil
}

// Close releases external connections.
func (d *Deps) Close() error {
	if d == nil || d.Cache == nil {
		return nil
	}
	return d.Cache.Close()
}
