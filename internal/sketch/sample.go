package sketch

import (
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/shape"
)

// SampleName is the name the sample sketch is saved under.
const SampleName = "Sample"

// Sample returns a small demo sketch with one object of every kind.
func Sample() []*shape.Object {
	// House: a square body with a closed-polygon roof, grouped.
	body := shape.NewRectangle(geom.Pt(120, 220), geom.Pt(200, 300), "#8b4513", true)
	roof := shape.NewPolygon([]geom.Point{
		geom.Pt(110, 220), geom.Pt(230, 100), geom.Pt(350, 220),
	}, "#b22222", true)
	door := shape.NewRectangle(geom.Pt(210, 330), geom.Pt(250, 260), "#654321", false)
	house := shape.NewGroup([]*shape.Object{body, roof, door}, "#8b4513")

	sun := shape.NewEllipse(geom.Pt(460, 60), geom.Pt(520, 120), "#ffa500", true)
	cloud := shape.NewEllipse(geom.Pt(540, 80), geom.Pt(680, 130), "#87ceeb", false)
	ground := shape.NewLine(geom.Pt(40, 330), geom.Pt(720, 330), "#228b22")
	path := shape.NewPolygon([]geom.Point{
		geom.Pt(230, 330), geom.Pt(260, 380), geom.Pt(240, 430), geom.Pt(280, 480),
	}, "#a0522d", false)

	grass := make([]geom.Point, 0, 32)
	for i := 0; i < 32; i++ {
		y := 325.0
		if i%2 == 1 {
			y = 310
		}
		grass = append(grass, geom.Pt(400+float64(i)*8, y))
	}

	return []*shape.Object{
		ground,
		house,
		sun,
		cloud,
		path,
		shape.NewFreehandPath(grass, "#2e8b57"),
	}
}
