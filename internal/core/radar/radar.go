// Package radar lays out a wheel chart: one axis per category, clockwise
// from 12 o'clock, with vertex distance proportional to a 0..10 score.
package radar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MaxScore     = 10.0
	AnchorMiddle = "middle"
)

// GridSteps are the score levels drawn as reference rings.
var GridSteps = []int{2, 4, 6, 8, 10}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Circle struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`
}

type Line struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

type Label struct {
	Text   string  `json:"text"`
	At     Point   `json:"at"`
	Anchor string  `json:"anchor"`
	Angle  float64 `json:"angle"`
}

type Geometry struct {
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Center   Point    `json:"center"`
	Radius   float64  `json:"radius"`
	Vertices []Point  `json:"vertices"`
	Path     string   `json:"path"`
	Grid     []Circle `json:"grid"`
	Axes     []Line   `json:"axes"`
	Labels   []Label  `json:"labels"`
}

type Chart struct {
	CenterX float64
	CenterY float64
	Radius  float64
	// LabelRatio places labels at LabelRatio*Radius from the center.
	LabelRatio float64
}

// DefaultChart matches a 400x400 canvas with a 150 radius wheel and labels
// at 170.
func DefaultChart() Chart {
	return Chart{
		CenterX:    200,
		CenterY:    200,
		Radius:     150,
		LabelRatio: 170.0 / 150.0,
	}
}

func AngleStep(n int) float64 {
	if n <= 0 {
		return 0
	}
	return 360.0 / float64(n)
}

// Angle is the clockwise angle in degrees from 12 o'clock of axis i.
func Angle(i, n int) float64 {
	return float64(i) * AngleStep(n)
}

// PolarToCartesian converts a clockwise-from-top angle to canvas
// coordinates, where y grows downward.
func PolarToCartesian(cx, cy, r, angleDeg float64) Point {
	rad := (angleDeg - 90) * math.Pi / 180.0
	return Point{
		X: cx + r*math.Cos(rad),
		Y: cy + r*math.Sin(rad),
	}
}

func (c Chart) center() Point {
	return Point{X: c.CenterX, Y: c.CenterY}
}

// Vertices maps each score to its point on the matching axis.
func (c Chart) Vertices(scores []float64) []Point {
	n := len(scores)
	points := make([]Point, 0, n)
	for i, s := range scores {
		r := (s / MaxScore) * c.Radius
		points = append(points, PolarToCartesian(c.CenterX, c.CenterY, r, Angle(i, n)))
	}
	return points
}

// Path renders the closed polygon as an SVG path ("M x y L x y ... Z").
func (c Chart) Path(scores []float64) string {
	return PathOf(c.Vertices(scores))
}

func PathOf(points []Point) string {
	if len(points) == 0 {
		return ""
	}

	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(formatCoord(p.X))
		b.WriteByte(' ')
		b.WriteString(formatCoord(p.Y))
	}
	b.WriteString(" Z")
	return b.String()
}

func formatCoord(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // normalizes -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c Chart) GridCircles() []Circle {
	circles := make([]Circle, 0, len(GridSteps))
	for _, k := range GridSteps {
		circles = append(circles, Circle{
			CX: c.CenterX,
			CY: c.CenterY,
			R:  (float64(k) / MaxScore) * c.Radius,
		})
	}
	return circles
}

func (c Chart) Axes(n int) []Line {
	lines := make([]Line, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, Line{
			From: c.center(),
			To:   PolarToCartesian(c.CenterX, c.CenterY, c.Radius, Angle(i, n)),
		})
	}
	return lines
}

func (c Chart) Labels(texts []string) []Label {
	n := len(texts)
	r := c.LabelRatio * c.Radius
	labels := make([]Label, 0, n)
	for i, text := range texts {
		labels = append(labels, Label{
			Text:   text,
			At:     PolarToCartesian(c.CenterX, c.CenterY, r, Angle(i, n)),
			Anchor: AnchorMiddle,
			Angle:  Angle(i, n),
		})
	}
	return labels
}

// Build lays out the whole chart. labels and scores are parallel slices in
// category order.
func (c Chart) Build(labels []string, scores []float64) (Geometry, error) {
	if len(labels) != len(scores) {
		return Geometry{}, fmt.Errorf("radar: %d labels for %d scores", len(labels), len(scores))
	}

	vertices := c.Vertices(scores)
	return Geometry{
		Width:    2 * c.CenterX,
		Height:   2 * c.CenterY,
		Center:   c.center(),
		Radius:   c.Radius,
		Vertices: vertices,
		Path:     PathOf(vertices),
		Grid:     c.GridCircles(),
		Axes:     c.Axes(len(scores)),
		Labels:   c.Labels(labels),
	}, nil
}
