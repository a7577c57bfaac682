// Package badge renders flat SVG badges with text measured from a real
// font, so labels fit without truncation.
package badge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// DefaultFont is the built-in font used when none is configured.
const DefaultFont = "go-regular"

// DefaultFontSize is the point size used when none is configured.
const DefaultFontSize = 11

var builtinFonts = map[string][]byte{
	"go-regular": goregular.TTF,
	"go-bold":    gobold.TTF,
	"go-mono":    gomono.TTF,
}

// FontNames lists the built-in fonts in name order.
func FontNames() []string {
	names := make([]string, 0, len(builtinFonts))
	for name := range builtinFonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FontMetrics holds glyph advances and the raw font for embedding.
type FontMetrics struct {
	name     string
	size     float64
	data     []byte
	advances map[rune]float64 // printable ASCII
	fallback float64          // mean advance, for everything else
}

// TextWidth returns the rendered width of s in pixels.
func (m *FontMetrics) TextWidth(s string) float64 {
	var w float64
	for _, r := range s {
		if adv, ok := m.advances[r]; ok {
			w += adv
			continue
		}
		w += m.fallback
	}
	return w
}

func (m *FontMetrics) FontData() []byte { return m.data }
func (m *FontMetrics) FontName() string { return m.name }
func (m *FontMetrics) FontSize() float64 { return m.size }

// LoadFont parses a TTF or OTF and measures printable ASCII at size.
func LoadFont(name string, data []byte, size float64) (*FontMetrics, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", name, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72})
	if err != nil {
		return nil, fmt.Errorf("creating face for %s: %w", name, err)
	}
	defer face.Close()

	m := &FontMetrics{name: name, size: size, data: data, advances: make(map[rune]float64, 95)}
	var total float64
	for r := rune(32); r <= 126; r++ {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		px := fixedToFloat(adv)
		m.advances[r] = px
		total += px
	}
	if len(m.advances) > 0 {
		m.fallback = total / float64(len(m.advances))
	} else {
		m.fallback = size * 0.6
	}

	if family, err := f.Name(&sfnt.Buffer{}, sfnt.NameIDFamily); err == nil && family != "" {
		m.name = family
	}
	return m, nil
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// LoadBuiltinFont loads one of FontNames.
func LoadBuiltinFont(name string, size float64) (*FontMetrics, error) {
	data, ok := builtinFonts[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in font %q (available: %s)", name, strings.Join(FontNames(), ", "))
	}
	return LoadFont(name, data, size)
}

// LoadFontFile loads a TTF or OTF from disk.
func LoadFontFile(path string, size float64) (*FontMetrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font file %s: %w", path, err)
	}
	return LoadFont(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), data, size)
}
