package shape

import (
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// LookupColor resolves a PGML color attribute value. It accepts the SVG
// color keywords and #rgb / #rrggbb hex forms; anything else yields the
// fallback.
func LookupColor(v string, fallback color.RGBA) color.RGBA {
	v = strings.ToLower(strings.TrimSpace(v))
	if c, ok := colornames.Map[v]; ok {
		return c
	}
	if strings.HasPrefix(v, "#") {
		if c, ok := parseHexColor(v[1:]); ok {
			return c
		}
	}
	return fallback
}

func parseHexColor(s string) (color.RGBA, bool) {
	hex := func(c byte) (uint8, bool) {
		switch {
		case c >= '0' && c <= '9':
			return c - '0', true
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10, true
		}
		return 0, false
	}
	c := color.RGBA{A: 0xff}
	switch len(s) {
	case 3:
		for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
			n, ok := hex(s[i])
			if !ok {
				return c, false
			}
			*dst = n * 0x11
		}
		return c, true
	case 6:
		for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
			hi, ok1 := hex(s[2*i])
			lo, ok2 := hex(s[2*i+1])
			if !ok1 || !ok2 {
				return c, false
			}
			*dst = hi<<4 | lo
		}
		return c, true
	}
	return c, false
}
