package editor

import (
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/shape"
)

// SetMode switches the active tool. It clears the selection and abandons any
// gesture in progress; a drag that already moved objects is still recorded.
func (d *Document) SetMode(m Mode) {
	d.endDrag()
	d.drawing = false
	d.path = nil
	d.CancelPolygon()
	d.clearSelection()
	d.mode = m
}

// PointerDown handles a press at p. modifier is the multi-select key.
// Presses at non-finite positions are ignored.
func (d *Document) PointerDown(p geom.Point, modifier bool) {
	if !d.finite("down", p) {
		return
	}
	switch {
	case d.mode == ModeSelect:
		d.selectAt(p, modifier)
	case d.mode.isPolygon():
		d.addPolygonVertex(p)
	default:
		d.drawing = true
		d.anchor = p
		d.cursor = p
		if d.mode == ModeFreehand {
			d.path = []geom.Point{p}
		}
		d.clearSelection()
	}
}

// PointerMove handles pointer motion to p. Non-finite positions are ignored.
func (d *Document) PointerMove(p geom.Point) {
	if !d.finite("move", p) {
		return
	}
	switch {
	case d.dragging:
		delta := p.Sub(d.dragLast)
		d.dragLast = p
		if delta == (geom.Point{}) || !delta.IsFinite() {
			return
		}
		for _, o := range d.selection {
			o.Move(delta)
		}
		d.dragMoved = true
	case d.drawing:
		d.cursor = p
		if d.mode == ModeFreehand {
			d.path = append(d.path, p)
		}
	case d.CollectingPolygon():
		d.cursor = p
	}
}

// PointerUp handles a release at p, ending a drag or committing the shape
// being drawn. A release at a non-finite position commits at the last
// position seen.
func (d *Document) PointerUp(p geom.Point) {
	if d.dragging {
		d.endDrag()
		return
	}
	if !d.drawing {
		return
	}
	d.drawing = false
	if !d.finite("up", p) {
		p = d.cursor
	}

	var obj *shape.Object
	switch d.mode {
	case ModeFreehand:
		if len(d.path) > 1 {
			obj = shape.NewFreehandPath(d.path, d.color)
		}
	case ModeLine:
		obj = shape.NewLine(d.anchor, p, d.color)
	case ModeRectangle, ModeSquare:
		obj = shape.NewRectangle(d.anchor, p, d.color, d.mode == ModeSquare)
	case ModeEllipse, ModeCircle:
		obj = shape.NewEllipse(d.anchor, p, d.color, d.mode == ModeCircle)
	}
	d.path = nil

	if obj != nil {
		d.addObject(obj)
	}
}

// PointerLeave handles the pointer leaving the surface. It behaves exactly
// like a release so no gesture is left hanging.
func (d *Document) PointerLeave(p geom.Point) {
	d.PointerUp(p)
}

// DoubleClick finishes a polygon in progress.
func (d *Document) DoubleClick() {
	if d.CollectingPolygon() {
		d.FinishPolygon()
	}
}

// Escape cancels a polygon in progress, otherwise clears the selection.
func (d *Document) Escape() {
	if d.CollectingPolygon() {
		d.CancelPolygon()
		return
	}
	d.clearSelection()
}

// Enter finishes a polygon in progress.
func (d *Document) Enter() {
	if d.CollectingPolygon() {
		d.FinishPolygon()
	}
}

// FinishPolygon commits the collected vertices as a polygon. Fewer than two
// vertices are discarded. It reports whether an object was added.
func (d *Document) FinishPolygon() bool {
	defer d.CancelPolygon()
	if len(d.polygon) < 2 {
		return false
	}
	return d.addObject(shape.NewPolygon(d.polygon, d.color, d.polygonClosed))
}

// CancelPolygon discards collected vertices without touching the document.
func (d *Document) CancelPolygon() {
	d.polygon = nil
}

func (d *Document) addPolygonVertex(p geom.Point) {
	if !d.CollectingPolygon() {
		d.polygonClosed = d.mode == ModeClosedPolygon
	}
	d.polygon = append(d.polygon, p)
	d.cursor = p
}

// selectAt applies a select-mode click. The topmost hit wins.
func (d *Document) selectAt(p geom.Point, modifier bool) {
	for i := len(d.objects) - 1; i >= 0; i-- {
		o := d.objects[i]
		if !o.HitTest(p, shape.DefaultTolerance) {
			continue
		}
		switch {
		case modifier:
			d.toggleSelection(o)
		case d.isSelected(o):
			d.startDrag(p)
		default:
			d.selectOnly(o)
		}
		return
	}

	if !modifier {
		d.clearSelection()
	}
}

// startDrag refuses to begin when the pre-drag state cannot be recorded.
func (d *Document) startDrag(p geom.Point) {
	snap, err := d.snapshot()
	if err != nil {
		d.log.Warn("failed to snapshot before drag", "error", err)
		return
	}
	d.dragging = true
	d.dragLast = p
	d.dragSnapshot = snap
	d.dragMoved = false
}

// endDrag records the pre-drag state as a single undo step when the drag
// actually moved something.
func (d *Document) endDrag() {
	if !d.dragging {
		return
	}
	if d.dragMoved {
		d.history.Push(d.dragSnapshot)
		d.log.Debug("drag finished", "objects", len(d.selection))
	}
	d.dragging = false
	d.dragSnapshot = ""
	d.dragMoved = false
}

func (d *Document) finite(event string, p geom.Point) bool {
	if p.IsFinite() {
		return true
	}
	d.log.Debug("ignoring non-finite pointer position", "event", event, "x", p.X, "y", p.Y)
	return false
}
