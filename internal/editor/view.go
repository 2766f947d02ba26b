package editor

import (
	"fmt"

	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/shape"
)

// State summarizes what the toolbar needs to show.
type State struct {
	Mode              Mode   `json:"mode"`
	Color             string `json:"color"`
	ObjectCount       int    `json:"objectCount"`
	SelectionCount    int    `json:"selectionCount"`
	CanUndo           bool   `json:"canUndo"`
	CanRedo           bool   `json:"canRedo"`
	CanCopy           bool   `json:"canCopy"`
	CanPaste          bool   `json:"canPaste"`
	CanDelete         bool   `json:"canDelete"`
	CanRecolor        bool   `json:"canRecolor"`
	CanGroup          bool   `json:"canGroup"`
	CanUngroup        bool   `json:"canUngroup"`
	CollectingPolygon bool   `json:"collectingPolygon"`
	Status            string `json:"status"`
}

func (d *Document) State() State {
	n := len(d.selection)
	return State{
		Mode:              d.mode,
		Color:             d.color,
		ObjectCount:       len(d.objects),
		SelectionCount:    n,
		CanUndo:           d.history.CanUndo(),
		CanRedo:           d.history.CanRedo(),
		CanCopy:           n > 0,
		CanPaste:          len(d.clipboard) > 0,
		CanDelete:         n > 0,
		CanRecolor:        n > 0,
		CanGroup:          n >= 2,
		CanUngroup:        n == 1 && d.selection[0].IsGroup(),
		CollectingPolygon: d.CollectingPolygon(),
		Status:            d.status(),
	}
}

// status is the selection hint, empty when nothing is selected.
func (d *Document) status() string {
	n := len(d.selection)
	switch {
	case n == 0:
		return ""
	case n > 1:
		return fmt.Sprintf("%d objects selected • Ctrl+G to group", n)
	case d.selection[0].IsGroup():
		return "1 object selected • Group • Ctrl+Shift+G to ungroup"
	default:
		return "1 object selected • Drag to move • Change color"
	}
}

// Render clears s and draws every object followed by any live preview.
func (d *Document) Render(s render.Surface) {
	s.Clear()
	for _, o := range d.objects {
		o.Render(s)
	}

	switch {
	case d.drawing:
		d.renderShapePreview(s)
	case d.CollectingPolygon():
		d.renderPolygonPreview(s)
	}
}

func (d *Document) renderShapePreview(s render.Surface) {
	s.SetStroke(d.color, render.DefaultStrokeWidth)

	if d.mode == ModeFreehand {
		if len(d.path) > 1 {
			s.SetDash()
			s.StrokePath(d.path, false)
		}
		return
	}
	if d.cursor == d.anchor {
		return
	}

	s.SetDash(5, 5)
	switch d.mode {
	case ModeLine:
		s.StrokePath([]geom.Point{d.anchor, d.cursor}, false)
	case ModeRectangle:
		s.StrokeRect(geom.BoundsOf([]geom.Point{d.anchor, d.cursor}))
	case ModeSquare:
		s.StrokeRect(geom.BoundsOf([]geom.Point{d.anchor, shape.MakeSquare(d.anchor, d.cursor)}))
	case ModeEllipse, ModeCircle:
		end := d.cursor
		if d.mode == ModeCircle {
			end = shape.MakeCircle(d.anchor, d.cursor)
		}
		b := geom.BoundsOf([]geom.Point{d.anchor, end})
		s.StrokeEllipse(b.Center(), b.Width/2, b.Height/2)
	}
	s.SetDash()
}

func (d *Document) renderPolygonPreview(s render.Surface) {
	s.SetStroke(d.color, render.DefaultStrokeWidth)
	s.SetDash()
	if len(d.polygon) > 1 {
		s.StrokePath(d.polygon, false)
	}

	// Rubber band from the last vertex to the pointer, back to the first
	// vertex for closed polygons.
	band := []geom.Point{d.polygon[len(d.polygon)-1], d.cursor}
	if d.polygonClosed && len(d.polygon) > 2 {
		band = append(band, d.polygon[0])
	}
	if d.cursor != band[0] || len(band) > 2 {
		s.SetDash(5, 5)
		s.StrokePath(band, false)
		s.SetDash()
	}

	for _, p := range d.polygon {
		s.FillCircle(p, render.MarkerRadius)
	}
}
