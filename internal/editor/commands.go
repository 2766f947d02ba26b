package editor

import (
	"github.com/sketchpad/sketchpad/internal/codec"
	"github.com/sketchpad/sketchpad/internal/shape"
)

// Every command reports whether it changed anything. Commands whose
// preconditions do not hold are no-ops.

// Undo restores the state before the last recorded mutation.
func (d *Document) Undo() bool {
	return d.travel(d.history.Undo)
}

// Redo reapplies the last undone mutation.
func (d *Document) Redo() bool {
	return d.travel(d.history.Redo)
}

func (d *Document) travel(step func(current string) (string, bool)) bool {
	d.endDrag()
	current, err := d.snapshot()
	if err != nil {
		d.log.Warn("failed to snapshot document", "error", err)
		return false
	}

	target, ok := step(current)
	if !ok {
		return false
	}

	objs, err := codec.DecodeSnapshot(target)
	if err != nil {
		d.log.Error("failed to restore snapshot", "error", err)
		return false
	}
	d.replace(objs)
	return true
}

// Copy replaces the clipboard with clones of the selection.
func (d *Document) Copy() bool {
	if len(d.selection) == 0 {
		return false
	}
	d.clipboard = make([]*shape.Object, len(d.selection))
	for i, o := range d.selection {
		d.clipboard[i] = o.Clone()
	}
	d.log.Debug("copied objects", "count", len(d.clipboard))
	return true
}

// Paste appends fresh clones of the clipboard offset by PasteOffset and
// selects them.
func (d *Document) Paste() bool {
	if len(d.clipboard) == 0 {
		return false
	}
	if d.pushSnapshot() != nil {
		return false
	}
	d.clearSelection()

	for _, c := range d.clipboard {
		o := c.Clone()
		o.Move(PasteOffset)
		o.Selected = true
		d.objects = append(d.objects, o)
		d.selection = append(d.selection, o)
	}
	return true
}

// DeleteSelected removes the selected objects.
func (d *Document) DeleteSelected() bool {
	if len(d.selection) == 0 {
		return false
	}
	if d.pushSnapshot() != nil {
		return false
	}
	for _, o := range d.selection {
		d.objects = removeObject(d.objects, o)
	}
	d.selection = nil
	return true
}

// SetColor sets the drawing color. A non-empty selection is recolored too,
// as one undoable step.
func (d *Document) SetColor(color string) {
	d.color = color
	d.ChangeColor(color)
}

// ChangeColor recolors the selection without touching the drawing color.
func (d *Document) ChangeColor(color string) bool {
	if len(d.selection) == 0 {
		return false
	}
	if d.pushSnapshot() != nil {
		return false
	}
	for _, o := range d.selection {
		o.SetColor(color)
	}
	return true
}

// Recolor applies the drawing color to the selection.
func (d *Document) Recolor() bool {
	return d.ChangeColor(d.color)
}

// Group wraps two or more selected objects in a new group placed on top,
// keeping their stacking order, and selects it.
func (d *Document) Group() bool {
	if len(d.selection) < 2 {
		return false
	}
	if d.pushSnapshot() != nil {
		return false
	}

	members := make([]*shape.Object, 0, len(d.selection))
	rest := make([]*shape.Object, 0, len(d.objects))
	for _, o := range d.objects {
		if d.isSelected(o) {
			o.Selected = false
			members = append(members, o)
		} else {
			rest = append(rest, o)
		}
	}

	g := shape.NewGroup(members, shape.DefaultColor)
	g.Selected = true
	d.objects = append(rest, g)
	d.selection = []*shape.Object{g}
	d.log.Debug("grouped objects", "group", g.ID, "count", len(members))
	return true
}

// Ungroup dissolves the single selected group, appending its children on
// top and selecting them.
func (d *Document) Ungroup() bool {
	if len(d.selection) != 1 || !d.selection[0].IsGroup() {
		return false
	}
	if d.pushSnapshot() != nil {
		return false
	}

	g := d.selection[0]
	children := g.Children()
	d.objects = append(removeObject(d.objects, g), children...)

	d.selection = children
	for _, c := range children {
		c.Selected = true
	}
	d.log.Debug("ungrouped objects", "group", g.ID, "count", len(children))
	return true
}

// Clear removes every object.
func (d *Document) Clear() bool {
	if len(d.objects) == 0 {
		return false
	}
	if d.pushSnapshot() != nil {
		return false
	}
	d.replace(nil)
	return true
}
