package builder

import (
	"context"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/park285/boardframe/internal/config"
	"github.com/park285/boardframe/internal/render"
)

func TestNewWithoutRedis(t *testing.T) {
	deps, err := New(context.Background(), &config.AppConfig{PictureSide: 40, Theme: render.DefaultTheme}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer deps.Close()
	if deps.Renderer == nil || deps.Handler == nil || deps.Codec == nil {
		t.Fatalf("missing deps: %+v", deps)
	}
	if deps.Cache != nil {
		t.Fatalf("cache should be disabled without REDIS_URL")
	}
}

func TestNewWithRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()
	cfg := &config.AppConfig{RedisURL: fmt.Sprintf("redis://%s/1", mr.Addr())}
	deps, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer deps.Close()
	if deps.Cache == nil {
		t.Fatalf("expected cache")
	}
}

func TestNewRejectsNilConfig(t *testing.T) {
	if _, err := New(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error")
	}
}
