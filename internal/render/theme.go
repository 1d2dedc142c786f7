package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Theme holds the three colours a board is painted with.
type Theme struct {
	Light     color.Color
	Dark      color.Color
	Highlight color.Color
}

var DefaultTheme = Theme{
	Light:     color.NRGBA{R: 0xF0, G: 0xD9, B: 0xB5, A: 0xFF},
	Dark:      color.NRGBA{R: 0xB5, G: 0x88, B: 0x63, A: 0xFF},
	Highlight: color.NRGBA{R: 15, G: 164, B: 46, A: 89},
}

func (t Theme) withDefaults() Theme { return t.or(DefaultTheme) }

// or fills unset colours from fallback.
func (t Theme) or(fallback Theme) Theme {
	if t.Light == nil {
		t.Light = fallback.Light
	}
	if t.Dark == nil {
		t.Dark = fallback.Dark
	}
	if t.Highlight == nil {
		t.Highlight = fallback.Highlight
	}
	return t
}

// ParseTheme parses three colour strings; empty strings keep the default colour.
func ParseTheme(light, dark, highlight string) (Theme, error) {
	t := DefaultTheme
	for _, f := range []struct {
		name string
		raw  string
		dst  *color.Color
	}{
		{"light", light, &t.Light},
		{"dark", dark, &t.Dark},
		{"highlight", highlight, &t.Highlight},
	} {
		if strings.TrimSpace(f.raw) == "" {
			continue
		}
		c, err := ParseColor(f.raw)
		if err != nil {
			return Theme{}, fmt.Errorf("theme %s: %w", f.name, err)
		}
		*f.dst = c
	}
	return t, nil
}

// ParseColor understands #rgb, #rrggbb, #rrggbbaa and rgba(r, g, b, a) with a in [0,1].
func ParseColor(raw string) (color.NRGBA, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseRGBA(s[len("rgba(") : len(s)-1])
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGBA(s[len("rgb(") : len(s)-1])
	}
	return color.NRGBA{}, fmt.Errorf("unsupported colour %q", raw)
}

func parseHex(h string) (color.NRGBA, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("bad hex colour #%s", h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad hex colour #%s: %w", h, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func parseRGBA(body string) (color.NRGBA, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("bad rgba(%s)", body)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return color.NRGBA{}, fmt.Errorf("bad channel %q in rgba(%s)", parts[i], body)
		}
		ch[i] = uint8(n)
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.NRGBA{}, fmt.Errorf("bad alpha %q in rgba(%s)", parts[3], body)
		}
		alpha = uint8(a * 255)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}
