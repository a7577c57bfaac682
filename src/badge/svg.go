package badge

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"
)

const (
	badgeHeight = 20
	textPadding = 10
)

func (e *Engine) renderSVG(b Badge) string {
	lw := e.textBox(b.Label)
	vw := e.textBox(b.Value)
	total := lw + vw
	label, value := xmlEscape(b.Label), xmlEscape(b.Value)
	family := xmlEscape(fmt.Sprintf("'%s',Verdana,Geneva,sans-serif", e.metrics.FontName()))

	var s strings.Builder
	fmt.Fprintf(&s, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" role="img" aria-label="%s: %s">`, total, badgeHeight, label, value)
	fmt.Fprintf(&s, `<title>%s: %s</title>`, label, value)
	fmt.Fprintf(&s, `<defs><style type="text/css">%s</style>`, fontFaceCSS(e.metrics.FontName(), e.metrics.FontData()))
	s.WriteString(`<linearGradient id="s" x2="0" y2="100%"><stop offset="0" stop-color="#bbb" stop-opacity=".1"/><stop offset="1" stop-opacity=".1"/></linearGradient></defs>`)
	fmt.Fprintf(&s, `<clipPath id="r"><rect width="%d" height="%d" rx="3" fill="#fff"/></clipPath>`, total, badgeHeight)
	s.WriteString(`<g clip-path="url(#r)">`)
	fmt.Fprintf(&s, `<rect width="%d" height="%d" fill="#555"/>`, lw, badgeHeight)
	fmt.Fprintf(&s, `<rect x="%d" width="%d" height="%d" fill="%s"/>`, lw, vw, badgeHeight, xmlEscape(b.Color))
	fmt.Fprintf(&s, `<rect width="%d" height="%d" fill="url(#s)"/>`, total, badgeHeight)
	s.WriteString(`</g>`)
	fmt.Fprintf(&s, `<g fill="#fff" text-anchor="middle" font-family="%s" font-size="%g">`, family, e.metrics.FontSize())
	writeText(&s, lw/2, label)
	writeText(&s, lw+vw/2, value)
	s.WriteString(`</g></svg>`)
	return s.String()
}

// textBox is the padded pixel width of one side of the badge.
func (e *Engine) textBox(text string) int {
	return int(math.Round(e.metrics.TextWidth(text))) + textPadding
}

// writeText draws text with a one pixel drop shadow.
func writeText(s *strings.Builder, x int, text string) {
	fmt.Fprintf(s, `<text x="%d" y="15" fill="#010101" fill-opacity=".3">%s</text>`, x, text)
	fmt.Fprintf(s, `<text x="%d" y="14">%s</text>`, x, text)
}

func fontFaceCSS(name string, data []byte) string {
	format, css := "ttf", "truetype"
	if len(data) >= 4 && string(data[:4]) == "OTTO" {
		format, css = "otf", "opentype"
	}
	return fmt.Sprintf(`@font-face{font-family:'%s';src:url(data:font/%s;base64,%s) format('%s')}`,
		name, format, base64.StdEncoding.EncodeToString(data), css)
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

func xmlEscape(s string) string { return xmlReplacer.Replace(s) }
