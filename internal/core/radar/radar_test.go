package radar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// clockwiseFromTop recovers the chart angle of p around c, in [0, 360).
func clockwiseFromTop(c, p Point) float64 {
	deg := math.Atan2(p.Y-c.Y, p.X-c.X)*180/math.Pi + 90
	if deg < 0 {
		deg += 360
	}
	if deg >= 360-1e-6 {
		deg -= 360
	}
	return deg
}

func TestPolarToCartesian(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  Point
	}{
		{"Top", 0, Point{200, 50}},
		{"Right", 90, Point{350, 200}},
		{"Bottom", 180, Point{200, 350}},
		{"Left", 270, Point{50, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PolarToCartesian(200, 200, 150, tt.angle)
			assert.InDelta(t, tt.want.X, got.X, eps)
			assert.InDelta(t, tt.want.Y, got.Y, eps)
		})
	}
}

func TestVertices_FullScores(t *testing.T) {
	c := DefaultChart()
	scores := []float64{10, 10, 10, 10, 10}

	vertices := c.Vertices(scores)
	require.Len(t, vertices, 5)

	wantAngles := []float64{0, 72, 144, 216, 288}
	for i, v := range vertices {
		assert.InDelta(t, c.Radius, distance(c.center(), v), eps, "vertex %d radius", i)
		assert.InDelta(t, wantAngles[i], clockwiseFromTop(c.center(), v), 1e-6, "vertex %d angle", i)
	}
}

func TestVertices_ZeroScoresCollapse(t *testing.T) {
	c := DefaultChart()
	for _, v := range c.Vertices([]float64{0, 0, 0, 0, 0}) {
		assert.InDelta(t, c.CenterX, v.X, eps)
		assert.InDelta(t, c.CenterY, v.Y, eps)
	}
}

func TestVertices_ProportionalRadius(t *testing.T) {
	c := Chart{CenterX: 0, CenterY: 0, Radius: 100, LabelRatio: 1}
	v := c.Vertices([]float64{5, 2.5})

	assert.InDelta(t, 50, distance(Point{}, v[0]), eps)
	assert.InDelta(t, 25, distance(Point{}, v[1]), eps)
	assert.InDelta(t, -50, v[0].Y, eps, "first axis points up")
	assert.InDelta(t, 25, v[1].Y, eps, "second of two axes points down")
}

func TestPath(t *testing.T) {
	c := Chart{CenterX: 200, CenterY: 200, Radius: 150, LabelRatio: 1}

	t.Run("Closed polygon in index order", func(t *testing.T) {
		got := c.Path([]float64{10, 10, 10, 10})
		assert.Equal(t, "M 200 50 L 350 200 L 200 350 L 50 200 Z", got)
	})

	t.Run("Empty input", func(t *testing.T) {
		assert.Equal(t, "", c.Path(nil))
	})
}

func TestGridCircles(t *testing.T) {
	circles := DefaultChart().GridCircles()
	require.Len(t, circles, 5)

	want := []float64{30, 60, 90, 120, 150}
	for i, circle := range circles {
		assert.InDelta(t, want[i], circle.R, eps)
		assert.Equal(t, 200.0, circle.CX)
		assert.Equal(t, 200.0, circle.CY)
	}
}

func TestAxesAndLabels(t *testing.T) {
	c := DefaultChart()

	axes := c.Axes(8)
	require.Len(t, axes, 8)
	for _, a := range axes {
		assert.Equal(t, c.center(), a.From)
		assert.InDelta(t, c.Radius, distance(a.From, a.To), eps)
	}

	labels := c.Labels([]string{"Health", "Career", "Finance"})
	require.Len(t, labels, 3)
	for _, l := range labels {
		assert.InDelta(t, 170, distance(c.center(), l.At), 1e-9)
		assert.Equal(t, AnchorMiddle, l.Anchor)
	}
	assert.InDelta(t, 120, labels[1].Angle, eps)
}

func TestBuild(t *testing.T) {
	c := DefaultChart()

	t.Run("Success", func(t *testing.T) {
		g, err := c.Build([]string{"a", "b", "c"}, []float64{3, 6, 9})
		require.NoError(t, err)

		assert.Equal(t, 400.0, g.Width)
		assert.Len(t, g.Vertices, 3)
		assert.Len(t, g.Axes, 3)
		assert.Len(t, g.Labels, 3)
		assert.Len(t, g.Grid, 5)
		assert.Equal(t, PathOf(g.Vertices), g.Path)
	})

	t.Run("Deterministic", func(t *testing.T) {
		a, err := c.Build([]string{"a", "b"}, []float64{4, 7})
		require.NoError(t, err)
		b, err := c.Build([]string{"a", "b"}, []float64{4, 7})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("Empty chart", func(t *testing.T) {
		g, err := c.Build(nil, nil)
		require.NoError(t, err)
		assert.Empty(t, g.Vertices)
		assert.Empty(t, g.Path)
		assert.Len(t, g.Grid, 5)
	})

	t.Run("Fail: Mismatched lengths", func(t *testing.T) {
		_, err := c.Build([]string{"a"}, []float64{1, 2})
		assert.Error(t, err)
	})
}

func TestAngleStep(t *testing.T) {
	assert.Equal(t, 72.0, AngleStep(5))
	assert.Equal(t, 45.0, AngleStep(8))
	assert.Equal(t, 0.0, AngleStep(0))
	assert.Equal(t, 216.0, Angle(3, 5))
}
