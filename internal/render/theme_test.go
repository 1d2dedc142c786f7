package render

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#F0D9B5", color.NRGBA{0xF0, 0xD9, 0xB5, 0xFF}, true},
		{"#fff", color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}, true},
		{"#11223380", color.NRGBA{0x11, 0x22, 0x33, 0x80}, true},
		{"rgba(15, 164, 46, 0.35)", color.NRGBA{15, 164, 46, 89}, true},
		{"rgb(1,2,3)", color.NRGBA{1, 2, 3, 255}, true},
		{"rgba(300, 0, 0, 1)", color.NRGBA{}, false},
		{"rgba(1, 2, 3, 2)", color.NRGBA{}, false},
		{"#12345", color.NRGBA{}, false},
		{"tomato", color.NRGBA{}, false},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("ParseColor(%q) err = %v", tc.in, err)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ParseColor(%q) = %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseThemeKeepsDefaults(t *testing.T) {
	th, err := ParseTheme("", "#000000", "")
	if err != nil {
		t.Fatalf("ParseTheme: %v", err)
	}
	if th.Light != DefaultTheme.Light || th.Highlight != DefaultTheme.Highlight {
		t.Fatalf("defaults not kept: %+v", th)
	}
	if th.Dark != (color.NRGBA{0, 0, 0, 255}) {
		t.Fatalf("dark = %v", th.Dark)
	}
	if _, err := ParseTheme("nope", "", ""); err == nil {
		t.Fatalf("expected error")
	}
}
