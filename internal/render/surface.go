// Package render defines the drawing surface the sketch model paints onto and
// provides two implementations: a command recorder for browser canvases and a
// software rasterizer for PNG previews.
package render

import "github.com/sketchpad/sketchpad/internal/geom"

// Surface accepts primitive draw calls. Stroke state set through SetStroke and
// SetDash applies to every following primitive until changed.
type Surface interface {
	// Clear wipes everything drawn so far.
	Clear()
	SetStroke(color string, width float64)
	// SetDash sets the dash pattern. No arguments means a solid line.
	SetDash(pattern ...float64)
	StrokePath(points []geom.Point, closed bool)
	StrokeRect(b geom.Bounds)
	StrokeEllipse(center geom.Point, rx, ry float64)
	// FillCircle fills a small circular marker in the current stroke color.
	FillCircle(center geom.Point, r float64)
}

const (
	// DefaultStrokeWidth is the line width used for every committed shape.
	DefaultStrokeWidth = 2.0
	// MarkerRadius is the radius of polygon vertex markers.
	MarkerRadius = 3.0
)
