package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/park285/boardframe/internal/board"
	"github.com/park285/boardframe/internal/render"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(envMap(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Perspective != board.White || !cfg.Coordinates || cfg.FrameSide != 50 || cfg.PictureSide != 100 {
		t.Fatalf("unexpected render defaults: %+v", cfg)
	}
	if cfg.FrameDelay != time.Second || cfg.PaletteSize != 24 || !cfg.RGB444 {
		t.Fatalf("unexpected gif defaults: %+v", cfg)
	}
	if cfg.Theme != render.DefaultTheme {
		t.Fatalf("theme = %+v", cfg.Theme)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(envMap(map[string]string{
		"RENDER_PERSPECTIVE":  "black",
		"RENDER_COORDINATES":  "false",
		"RENDER_FRAME_SIDE":   "64",
		"GIF_FRAME_DELAY_MS":  "250",
		"GIF_PALETTE_SIZE":    "999",
		"THEME_DARK":          "#000000",
		"CACHE_TTL_SEC":       "60",
		"REDIS_URL":           "redis://localhost:6379/2",
		"RENDER_PICTURE_SIDE": "nope",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Perspective != board.Black || cfg.Coordinates || cfg.FrameSide != 64 {
		t.Fatalf("render overrides not applied: %+v", cfg)
	}
	if cfg.PictureSide != 100 || cfg.PaletteSize != 24 {
		t.Fatalf("invalid values should keep defaults: %+v", cfg)
	}
	if cfg.FrameDelay != 250*time.Millisecond || cfg.CacheTTL != time.Minute {
		t.Fatalf("durations: %v %v", cfg.FrameDelay, cfg.CacheTTL)
	}
	if cfg.Theme.Dark != (color.NRGBA{0, 0, 0, 255}) {
		t.Fatalf("dark = %v", cfg.Theme.Dark)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"perspective": {"RENDER_PERSPECTIVE": "red"},
		"colour":      {"THEME_LIGHT": "not-a-colour"},
		"redis":       {"REDIS_URL": "http://localhost"},
		"theme file":  {"THEME_FILE": "/does/not/exist.yaml"},
	} {
		if _, err := load(envMap(env)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadThemeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	body := "light: \"#eeeed2\"\ndark: \"#769656\"\nhighlight: \"rgba(255, 255, 0, 0.5)\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := load(envMap(map[string]string{"THEME_FILE": path, "THEME_LIGHT": "#000"}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme.Light != (color.NRGBA{0xEE, 0xEE, 0xD2, 0xFF}) {
		t.Fatalf("file should win over env: %v", cfg.Theme.Light)
	}
	if cfg.Theme.Highlight != (color.NRGBA{255, 255, 0, 127}) {
		t.Fatalf("highlight = %v", cfg.Theme.Highlight)
	}
}
