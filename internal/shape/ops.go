package shape

import (
	"math"

	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/typeid"
)

// ComputeBounds returns the tight box around the object's geometry. Groups
// aggregate the boxes of their children. An object without geometry yields
// the zero box.
func (o *Object) ComputeBounds() geom.Bounds {
	if o.Kind != KindGroup {
		return geom.BoundsOf(o.points)
	}

	if len(o.children) == 0 {
		return geom.Bounds{}
	}
	b := o.children[0].bounds
	for _, c := range o.children[1:] {
		b = b.Union(c.bounds)
	}
	return b
}

// Move translates the object by delta and recomputes its bounds.
func (o *Object) Move(delta geom.Point) {
	if o.Kind == KindGroup {
		for _, c := range o.children {
			c.Move(delta)
		}
		o.refresh()
		return
	}

	for i := range o.points {
		o.points[i] = o.points[i].Add(delta)
	}
	o.bounds = o.ComputeBounds()
}

// SetColor recolors the object. Groups recolor every descendant.
func (o *Object) SetColor(color string) {
	o.Color = color
	for _, c := range o.children {
		c.SetColor(color)
	}
}

// Clone returns an unselected deep copy with fresh identities throughout.
func (o *Object) Clone() *Object {
	if o.Kind == KindGroup {
		children := make([]*Object, len(o.children))
		for i, c := range o.children {
			children[i] = c.Clone()
		}
		return NewGroup(children, o.Color)
	}

	return &Object{
		ID:       typeid.NewObjectID(),
		Kind:     o.Kind,
		Color:    o.Color,
		IsSquare: o.IsSquare,
		IsCircle: o.IsCircle,
		IsClosed: o.IsClosed,
		points:   o.Points(),
		bounds:   o.bounds,
	}
}

// HitTest reports whether p lies on the object's outline within tolerance.
// Interiors of rectangles, ellipses and closed polygons are not hits.
func (o *Object) HitTest(p geom.Point, tolerance float64) bool {
	switch o.Kind {
	case KindFreehandPath, KindLine:
		return nearPolyline(p, o.points, false, tolerance)
	case KindPolygon:
		return nearPolyline(p, o.points, o.IsClosed, tolerance)
	case KindRectangle:
		return o.hitRectangle(p, tolerance)
	case KindEllipse:
		return o.hitEllipse(p, tolerance)
	case KindGroup:
		for _, c := range o.children {
			if c.HitTest(p, tolerance) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func nearPolyline(p geom.Point, points []geom.Point, closed bool, tolerance float64) bool {
	for i := 0; i+1 < len(points); i++ {
		if geom.DistanceToSegment(p, points[i], points[i+1]) <= tolerance {
			return true
		}
	}
	if closed && len(points) > 2 {
		return geom.DistanceToSegment(p, points[len(points)-1], points[0]) <= tolerance
	}
	return false
}

func (o *Object) hitRectangle(p geom.Point, tolerance float64) bool {
	if len(o.points) != 2 {
		return false
	}
	b := geom.BoundsOf(o.points)

	withinY := p.Y >= b.Y-tolerance && p.Y <= b.MaxY()+tolerance
	withinX := p.X >= b.X-tolerance && p.X <= b.MaxX()+tolerance

	left := math.Abs(p.X-b.X) <= tolerance && withinY
	right := math.Abs(p.X-b.MaxX()) <= tolerance && withinY
	top := math.Abs(p.Y-b.Y) <= tolerance && withinX
	bottom := math.Abs(p.Y-b.MaxY()) <= tolerance && withinX

	return left || right || top || bottom
}

// hitEllipse scales p into the ellipse's unit-circle frame and accepts points
// whose radius is within tolerance/min(rx, ry) of 1. This is not the true
// distance to the curve; along the major axis the effective band is wider.
func (o *Object) hitEllipse(p geom.Point, tolerance float64) bool {
	if len(o.points) != 2 {
		return false
	}
	c, rx, ry := o.ellipseFrame()

	// A flat ellipse is drawn as a segment; test it as one.
	if rx == 0 || ry == 0 {
		a := geom.Pt(c.X-rx, c.Y-ry)
		b := geom.Pt(c.X+rx, c.Y+ry)
		return geom.DistanceToSegment(p, a, b) <= tolerance
	}

	nx := (p.X - c.X) / rx
	ny := (p.Y - c.Y) / ry
	d := math.Hypot(nx, ny)

	return math.Abs(d-1) <= tolerance/math.Min(rx, ry)
}

// ellipseFrame returns the center and radii of an ellipse's anchor box.
func (o *Object) ellipseFrame() (center geom.Point, rx, ry float64) {
	a, b := o.points[0], o.points[1]
	center = geom.Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
	return center, math.Abs(b.X-a.X) / 2, math.Abs(b.Y-a.Y) / 2
}

// MakeSquare snaps the free corner of a rectangle drag so both sides equal the
// larger drag extent, keeping the quadrant the user dragged toward.
func MakeSquare(anchor, free geom.Point) geom.Point {
	size := math.Max(math.Abs(free.X-anchor.X), math.Abs(free.Y-anchor.Y))
	return snap(anchor, free, size)
}

// MakeCircle snaps the free corner of an ellipse drag so both radii equal half
// the larger drag extent, keeping the quadrant the user dragged toward.
func MakeCircle(anchor, free geom.Point) geom.Point {
	radius := math.Max(math.Abs(free.X-anchor.X), math.Abs(free.Y-anchor.Y)) / 2
	return snap(anchor, free, radius*2)
}

func snap(anchor, free geom.Point, size float64) geom.Point {
	dx, dy := size, size
	if free.X < anchor.X {
		dx = -size
	}
	if free.Y < anchor.Y {
		dy = -size
	}
	return geom.Pt(anchor.X+dx, anchor.Y+dy)
}
