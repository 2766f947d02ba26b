// Package editor holds the state of one sketch being edited: its objects,
// the selection, the active tool, in-progress gestures, the clipboard and the
// undo history.
//
// A Document is not safe for concurrent use. Callers feed it one input event
// at a time, in arrival order.
package editor

import (
	"fmt"
	"log/slog"

	"github.com/sketchpad/sketchpad/internal/codec"
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/history"
	"github.com/sketchpad/sketchpad/internal/shape"
	"github.com/sketchpad/sketchpad/internal/sketch"
	"github.com/sketchpad/sketchpad/internal/store"
)

// PasteOffset is added to every pasted clone.
var PasteOffset = geom.Pt(20, 20)

// Options configures a Document. The zero value is usable.
type Options struct {
	// Library stores saved sketches. Nil means an unlimited in-memory store.
	Library *sketch.Library
	// HistoryLimit caps the undo stack. Zero keeps everything.
	HistoryLimit int
	Logger       *slog.Logger
}

// Document is the editable scene.
type Document struct {
	mode  Mode
	color string

	objects   []*shape.Object
	selection []*shape.Object
	clipboard []*shape.Object

	history *history.Manager
	library *sketch.Library
	log     *slog.Logger

	// Shape drawing
	drawing bool
	anchor  geom.Point
	cursor  geom.Point
	path    []geom.Point

	// Polygon collection
	polygon       []geom.Point
	polygonClosed bool

	// Selection drag
	dragging     bool
	dragLast     geom.Point
	dragSnapshot string
	dragMoved    bool
}

// New creates an empty document in freehand mode drawing in black.
func New(opts Options) *Document {
	lib := opts.Library
	if lib == nil {
		lib = sketch.NewLibrary(store.NewMemory(0))
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Document{
		mode:    ModeFreehand,
		color:   shape.DefaultColor,
		history: history.NewManager(opts.HistoryLimit),
		library: lib,
		log:     log,
	}
}

// --- Queries ---

// Mode returns the active tool.
func (d *Document) Mode() Mode { return d.mode }

// Color returns the color new objects are drawn in.
func (d *Document) Color() string { return d.color }

// Objects returns the top-level objects, bottom to top.
func (d *Document) Objects() []*shape.Object {
	return append([]*shape.Object(nil), d.objects...)
}

// Selection returns the selected top-level objects in selection order.
func (d *Document) Selection() []*shape.Object {
	return append([]*shape.Object(nil), d.selection...)
}

// CollectingPolygon reports whether polygon vertices are being collected.
func (d *Document) CollectingPolygon() bool {
	return len(d.polygon) > 0
}

// Gesturing reports whether a stroke, drag or polygon is in progress, i.e.
// whether pointer motion changes what Render draws.
func (d *Document) Gesturing() bool {
	return d.drawing || d.dragging || d.CollectingPolygon()
}

// --- Internal state helpers ---

// snapshot serializes the top-level list.
func (d *Document) snapshot() (string, error) {
	return codec.EncodeSnapshot(d.objects)
}

// pushSnapshot records the current state before a mutation. A drag in
// progress is closed first so its own step stays ahead of this one. Callers
// must not mutate when it fails, or the change could never be undone.
func (d *Document) pushSnapshot() error {
	d.endDrag()
	snap, err := d.snapshot()
	if err != nil {
		d.log.Warn("failed to snapshot document", "error", err)
		return fmt.Errorf("snapshot document: %w", err)
	}
	d.history.Push(snap)
	return nil
}

// replace swaps in a new top-level list, dropping selection and gestures.
func (d *Document) replace(objs []*shape.Object) {
	for _, o := range objs {
		o.Walk(func(o *shape.Object) { o.Selected = false })
	}
	d.objects = objs
	d.selection = nil
	d.resetGestures()
}

func (d *Document) resetGestures() {
	d.drawing = false
	d.path = nil
	d.polygon = nil
	d.dragging = false
	d.dragSnapshot = ""
	d.dragMoved = false
}

func (d *Document) isSelected(o *shape.Object) bool {
	for _, s := range d.selection {
		if s == o {
			return true
		}
	}
	return false
}

func (d *Document) clearSelection() {
	for _, o := range d.selection {
		o.Selected = false
	}
	d.selection = nil
}

func (d *Document) selectOnly(o *shape.Object) {
	d.clearSelection()
	o.Selected = true
	d.selection = []*shape.Object{o}
}

func (d *Document) toggleSelection(o *shape.Object) {
	if d.isSelected(o) {
		o.Selected = false
		d.selection = removeObject(d.selection, o)
		return
	}
	o.Selected = true
	d.selection = append(d.selection, o)
}

// addObject appends a committed object as one undoable step.
func (d *Document) addObject(o *shape.Object) bool {
	if d.pushSnapshot() != nil {
		return false
	}
	d.objects = append(d.objects, o)
	d.log.Debug("object added", "kind", o.Kind, "id", o.ID)
	return true
}

func removeObject(list []*shape.Object, o *shape.Object) []*shape.Object {
	out := list[:0]
	for _, x := range list {
		if x != o {
			out = append(out, x)
		}
	}
	return out
}
