// Package shape implements the drawable objects of a sketch: freehand paths,
// lines, rectangles, ellipses, polygons and groups of those.
//
// All six kinds share one Object record tagged by Kind. Operations switch over
// the tag, so adding a kind means touching every switch in this package.
package shape

import (
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/typeid"
)

// Kind tags which variant an Object is. The values are the wire names.
type Kind string

const (
	KindFreehandPath Kind = "freehand_path"
	KindLine         Kind = "line"
	KindRectangle    Kind = "rectangle"
	KindEllipse      Kind = "ellipse"
	KindPolygon      Kind = "polygon"
	KindGroup        Kind = "group"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindFreehandPath, KindLine, KindRectangle, KindEllipse, KindPolygon, KindGroup:
		return true
	default:
		return false
	}
}

const (
	// DefaultTolerance is the hit-test distance in surface units.
	DefaultTolerance = 5.0
	// DefaultColor is the stroke color new groups carry.
	DefaultColor = "#000000"
)

// Object is one drawable entity.
//
// Line, Rectangle and Ellipse hold exactly two anchor points. FreehandPath and
// Polygon hold any number. A Group owns its children exclusively and its
// points are the flattened points of its descendants.
type Object struct {
	ID       string
	Kind     Kind
	Color    string
	Selected bool

	IsSquare bool // Rectangle only
	IsCircle bool // Ellipse only
	IsClosed bool // Polygon only

	points   []geom.Point
	children []*Object
	bounds   geom.Bounds
}

func newObject(kind Kind, points []geom.Point, color string) *Object {
	o := &Object{
		ID:     typeid.NewObjectID(),
		Kind:   kind,
		Color:  color,
		points: append([]geom.Point(nil), points...),
	}
	o.bounds = o.ComputeBounds()
	return o
}

// NewFreehandPath creates a freehand stroke through points.
func NewFreehandPath(points []geom.Point, color string) *Object {
	return newObject(KindFreehandPath, points, color)
}

// NewLine creates a straight segment from start to end.
func NewLine(start, end geom.Point, color string) *Object {
	return newObject(KindLine, []geom.Point{start, end}, color)
}

// NewRectangle creates an axis-aligned rectangle spanned by two corners.
// When square is set the free corner is snapped with MakeSquare.
func NewRectangle(start, end geom.Point, color string, square bool) *Object {
	if square {
		end = MakeSquare(start, end)
	}
	o := newObject(KindRectangle, []geom.Point{start, end}, color)
	o.IsSquare = square
	return o
}

// NewEllipse creates the ellipse inscribed in the box spanned by two corners.
// When circle is set the free corner is snapped with MakeCircle.
func NewEllipse(start, end geom.Point, color string, circle bool) *Object {
	if circle {
		end = MakeCircle(start, end)
	}
	o := newObject(KindEllipse, []geom.Point{start, end}, color)
	o.IsCircle = circle
	return o
}

// NewPolygon creates a polyline through points. A closed polygon with more
// than two points has an implicit edge from the last point to the first.
func NewPolygon(points []geom.Point, color string, closed bool) *Object {
	o := newObject(KindPolygon, points, color)
	o.IsClosed = closed
	return o
}

// NewGroup wraps children in a new group that takes ownership of them.
// Callers must not pass a group that (transitively) contains itself.
func NewGroup(children []*Object, color string) *Object {
	o := &Object{
		ID:       typeid.NewObjectID(),
		Kind:     KindGroup,
		Color:    color,
		children: append([]*Object(nil), children...),
	}
	o.refresh()
	return o
}

// Points returns a copy of the object's points.
func (o *Object) Points() []geom.Point {
	return append([]geom.Point(nil), o.points...)
}

// Children returns the immediate children of a group, nil for other kinds.
func (o *Object) Children() []*Object {
	if o.Kind != KindGroup {
		return nil
	}
	return append([]*Object(nil), o.children...)
}

// IsGroup reports whether o is a group.
func (o *Object) IsGroup() bool {
	return o.Kind == KindGroup
}

// Bounds returns the cached bounding box.
func (o *Object) Bounds() geom.Bounds {
	return o.bounds
}

// Walk calls fn for o and every descendant, parents before children.
func (o *Object) Walk(fn func(*Object)) {
	fn(o)
	for _, c := range o.children {
		c.Walk(fn)
	}
}

// refresh recomputes the derived state of a group from its children.
func (o *Object) refresh() {
	if o.Kind == KindGroup {
		o.points = o.points[:0]
		for _, c := range o.children {
			o.points = append(o.points, c.points...)
		}
	}
	o.bounds = o.ComputeBounds()
}
