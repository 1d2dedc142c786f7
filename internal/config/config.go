package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/park285/boardframe/internal/board"
	"github.com/park285/boardframe/internal/obslog"
	"github.com/park285/boardframe/internal/render"
	yaml "gopkg.in/yaml.v3"
)

type AppConfig struct {
	Perspective board.Perspective
	Coordinates bool
	FrameSide   int
	PictureSide int
	Theme       render.Theme

	FrameDelay  time.Duration
	PaletteSize int
	RGB444      bool

	HTTPAddr string
	RedisURL string
	CacheTTL time.Duration

	Log obslog.Options
}

type themeFile struct {
	Light     string `yaml:"light"`
	Dark      string `yaml:"dark"`
	Highlight string `yaml:"highlight"`
}

// Load reads the configuration from the environment.
func Load() (*AppConfig, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*AppConfig, error) {
	env := func(k string) string { return strings.TrimSpace(getenv(k)) }

	cfg := &AppConfig{
		Perspective: board.White,
		Coordinates: true,
		FrameSide:   50,
		PictureSide: 100,
		FrameDelay:  time.Second,
		PaletteSize: 24,
		RGB444:      true,
		HTTPAddr:    ":8080",
		CacheTTL:    time.Hour,
		Log: obslog.Options{
			Level:   "info",
			Format:  "legacy",
			Console: true,
		},
	}

	if v := env("RENDER_PERSPECTIVE"); v != "" {
		p, err := board.ParsePerspective(v)
		if err != nil {
			return nil, fmt.Errorf("RENDER_PERSPECTIVE: %w", err)
		}
		cfg.Perspective = p
	}
	if v := env("RENDER_COORDINATES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Coordinates = b
		}
	}
	if v := env("RENDER_FRAME_SIDE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FrameSide = n
		}
	}
	if v := env("RENDER_PICTURE_SIDE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PictureSide = n
		}
	}

	light, dark, highlight := env("THEME_LIGHT"), env("THEME_DARK"), env("THEME_HIGHLIGHT")
	if path := env("THEME_FILE"); path != "" {
		tf, err := readThemeFile(path)
		if err != nil {
			return nil, err
		}
		light, dark, highlight = firstNonEmpty(tf.Light, light), firstNonEmpty(tf.Dark, dark), firstNonEmpty(tf.Highlight, highlight)
	}
	theme, err := render.ParseTheme(light, dark, highlight)
	if err != nil {
		return nil, err
	}
	cfg.Theme = theme

	if v := env("GIF_FRAME_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FrameDelay = time.Duration(n) * time.Millisecond
		}
	}
	if v := env("GIF_PALETTE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 2 && n <= 256 {
			cfg.PaletteSize = n
		}
	}
	if v := env("GIF_RGB444"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RGB444 = b
		}
	}

	if v := env("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	cfg.RedisURL = env("REDIS_URL")
	if v := env("CACHE_TTL_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheTTL = time.Duration(n) * time.Second
		}
	}

	if v := env("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := env("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := env("LOG_TO_CONSOLE"); v != "" {
		cfg.Log.Console = strings.EqualFold(v, "true")
	}
	cfg.Log.File = env("LOG_FILE")
	cfg.Log.Caller = strings.EqualFold(env("LOG_CALLER"), "true")

	if cfg.RedisURL != "" && !strings.HasPrefix(cfg.RedisURL, "redis://") && !strings.HasPrefix(cfg.RedisURL, "rediss://") {
		return nil, errors.New("REDIS_URL must use the redis:// or rediss:// scheme")
	}
	return cfg, nil
}

func readThemeFile(path string) (*themeFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme file: %w", err)
	}
	var tf themeFile
	if err := yaml.Unmarshal(raw, &tf); err != nil {
		return nil, fmt.Errorf("parse theme file: %w", err)
	}
	return &tf, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
