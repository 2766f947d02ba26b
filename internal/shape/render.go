package shape

import (
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/render"
)

// Selection highlight styles.
const (
	highlightColor      = "#007bff"
	groupHighlightColor = "#ff6b6b"
)

// Render draws the object and, when selected, its dashed highlight box.
func (o *Object) Render(s render.Surface) {
	switch o.Kind {
	case KindGroup:
		for _, c := range o.children {
			c.Render(s)
		}
		if o.Selected {
			s.SetStroke(groupHighlightColor, 2)
			s.SetDash(10, 5)
			s.StrokeRect(o.bounds.Inflate(3))
			s.SetDash()
		}
		return

	case KindFreehandPath, KindPolygon:
		if len(o.points) < 2 {
			return
		}
		s.SetStroke(o.Color, render.DefaultStrokeWidth)
		s.StrokePath(o.points, o.Kind == KindPolygon && o.IsClosed && len(o.points) > 2)

	case KindLine:
		if len(o.points) != 2 {
			return
		}
		s.SetStroke(o.Color, render.DefaultStrokeWidth)
		s.StrokePath(o.points, false)

	case KindRectangle:
		if len(o.points) != 2 {
			return
		}
		s.SetStroke(o.Color, render.DefaultStrokeWidth)
		s.StrokeRect(geom.BoundsOf(o.points))

	case KindEllipse:
		if len(o.points) != 2 {
			return
		}
		c, rx, ry := o.ellipseFrame()
		s.SetStroke(o.Color, render.DefaultStrokeWidth)
		s.StrokeEllipse(c, rx, ry)

	default:
		return
	}

	if o.Selected {
		s.SetStroke(highlightColor, 1)
		s.SetDash(5, 5)
		s.StrokeRect(o.bounds.Inflate(2))
		s.SetDash()
	}
}
