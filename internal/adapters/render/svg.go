// Package render turns radar geometry into a standalone SVG document.
package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/comitanigiacomo/kanso-balance/internal/core/radar"
)

const (
	GridColor    = "#e5e7eb"
	AxisColor    = "#d1d5db"
	ShapeColor   = "#8b5cf6"
	LabelColor   = "#374151"
	ShapeOpacity = "0.3"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WheelSVG renders g with its grid rings, axes, labels and the score
// polygon drawn last so it sits on top.
func WheelSVG(g radar.Geometry) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(g.Width), num(g.Height), num(g.Width), num(g.Height))
	b.WriteByte('\n')

	for _, c := range g.Grid {
		fmt.Fprintf(&b, `  <circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="1"/>`,
			num(c.CX), num(c.CY), num(c.R), GridColor)
		b.WriteByte('\n')
	}

	for _, a := range g.Axes {
		fmt.Fprintf(&b, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`,
			num(a.From.X), num(a.From.Y), num(a.To.X), num(a.To.Y), AxisColor)
		b.WriteByte('\n')
	}

	if g.Path != "" {
		fmt.Fprintf(&b, `  <path d="%s" fill="%s" fill-opacity="%s" stroke="%s" stroke-width="2"/>`,
			g.Path, ShapeColor, ShapeOpacity, ShapeColor)
		b.WriteByte('\n')
	}

	for _, v := range g.Vertices {
		fmt.Fprintf(&b, `  <circle cx="%s" cy="%s" r="4" fill="%s"/>`, num(v.X), num(v.Y), ShapeColor)
		b.WriteByte('\n')
	}

	for _, l := range g.Labels {
		fmt.Fprintf(&b, `  <text x="%s" y="%s" text-anchor="%s" dominant-baseline="middle" font-size="12" fill="%s">%s</text>`,
			num(l.At.X), num(l.At.Y), l.Anchor, LabelColor, html.EscapeString(l.Text))
		b.WriteByte('\n')
	}

	b.WriteString("</svg>\n")
	return b.String()
}
