package editor

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchpad/sketchpad/internal/codec"
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/shape"
	"github.com/sketchpad/sketchpad/internal/sketch"
	"github.com/sketchpad/sketchpad/internal/store"
)

func drag(d *Document, from, to geom.Point) {
	d.PointerDown(from, false)
	d.PointerMove(to)
	d.PointerUp(to)
}

func drawLine(d *Document, from, to geom.Point) {
	d.SetMode(ModeLine)
	drag(d, from, to)
}

func snapshotOf(t *testing.T, d *Document) string {
	t.Helper()
	s, err := codec.EncodeSnapshot(d.Objects())
	require.NoError(t, err)
	return s
}

func undoDepth(d *Document) int {
	n, _ := d.history.Depth()
	return n
}

func TestDrawShapes(t *testing.T) {
	tests := []struct {
		mode Mode
		kind shape.Kind
		want []geom.Point
	}{
		{ModeLine, shape.KindLine, []geom.Point{{X: 0, Y: 0}, {X: 30, Y: 80}}},
		{ModeRectangle, shape.KindRectangle, []geom.Point{{X: 0, Y: 0}, {X: 30, Y: 80}}},
		{ModeSquare, shape.KindRectangle, []geom.Point{{X: 0, Y: 0}, {X: 80, Y: 80}}},
		{ModeEllipse, shape.KindEllipse, []geom.Point{{X: 0, Y: 0}, {X: 30, Y: 80}}},
		{ModeCircle, shape.KindEllipse, []geom.Point{{X: 0, Y: 0}, {X: 80, Y: 80}}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			d := New(Options{})
			d.SetMode(tt.mode)
			drag(d, geom.Pt(0, 0), geom.Pt(30, 80))

			objs := d.Objects()
			require.Len(t, objs, 1)
			assert.Equal(t, tt.kind, objs[0].Kind)
			assert.Equal(t, tt.want, objs[0].Points())
			assert.Equal(t, shape.DefaultColor, objs[0].Color)
			assert.Equal(t, 1, undoDepth(d))
		})
	}
}

func TestFreehand(t *testing.T) {
	d := New(Options{})
	d.SetColor("#ff0000")

	// A click without motion is degenerate.
	d.PointerDown(geom.Pt(5, 5), false)
	d.PointerUp(geom.Pt(5, 5))
	assert.Empty(t, d.Objects())
	assert.False(t, d.State().CanUndo)

	d.PointerDown(geom.Pt(0, 0), false)
	d.PointerMove(geom.Pt(1, 1))
	d.PointerMove(geom.Pt(2, 3))
	d.PointerUp(geom.Pt(2, 3))

	objs := d.Objects()
	require.Len(t, objs, 1)
	assert.Equal(t, shape.KindFreehandPath, objs[0].Kind)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 3}}, objs[0].Points())
	assert.Equal(t, "#ff0000", objs[0].Color)
}

func TestPointerLeaveCommits(t *testing.T) {
	d := New(Options{})
	d.SetMode(ModeLine)
	d.PointerDown(geom.Pt(0, 0), false)
	d.PointerMove(geom.Pt(50, 0))
	d.PointerLeave(geom.Pt(60, 0))

	require.Len(t, d.Objects(), 1)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 60, Y: 0}}, d.Objects()[0].Points())

	// Nothing is left in progress.
	d.PointerMove(geom.Pt(70, 0))
	d.PointerUp(geom.Pt(70, 0))
	assert.Len(t, d.Objects(), 1)
}

func TestPolygon(t *testing.T) {
	d := New(Options{})
	d.SetMode(ModeClosedPolygon)

	d.PointerDown(geom.Pt(0, 0), false)
	d.PointerDown(geom.Pt(10, 0), false)
	d.PointerDown(geom.Pt(10, 10), false)
	assert.True(t, d.State().CollectingPolygon)
	assert.Empty(t, d.Objects())

	d.DoubleClick()
	require.Len(t, d.Objects(), 1)
	poly := d.Objects()[0]
	assert.Equal(t, shape.KindPolygon, poly.Kind)
	assert.True(t, poly.IsClosed)
	assert.Len(t, poly.Points(), 3)
	assert.False(t, d.CollectingPolygon())
}

func TestPolygonFinishAndCancel(t *testing.T) {
	d := New(Options{})
	d.SetMode(ModeOpenPolygon)

	d.PointerDown(geom.Pt(0, 0), false)
	assert.False(t, d.FinishPolygon(), "one vertex is not enough")
	assert.Empty(t, d.Objects())

	d.PointerDown(geom.Pt(0, 0), false)
	d.PointerDown(geom.Pt(5, 5), false)
	d.Escape()
	assert.False(t, d.CollectingPolygon())
	assert.Empty(t, d.Objects())
	assert.False(t, d.State().CanUndo)

	d.PointerDown(geom.Pt(0, 0), false)
	d.PointerDown(geom.Pt(5, 5), false)
	d.SetMode(ModeOpenPolygon)
	assert.False(t, d.CollectingPolygon(), "mode change cancels")

	d.PointerDown(geom.Pt(0, 0), false)
	d.PointerDown(geom.Pt(5, 5), false)
	d.Enter()
	require.Len(t, d.Objects(), 1)
	assert.False(t, d.Objects()[0].IsClosed)
}

func TestSelection(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	drawLine(d, geom.Pt(0, 0), geom.Pt(0, 100))
	drawLine(d, geom.Pt(0, 1), geom.Pt(100, 1))
	objs := d.Objects()
	d.SetMode(ModeSelect)

	// Overlapping lines: the topmost wins.
	d.PointerDown(geom.Pt(50, 0), false)
	assert.Equal(t, []*shape.Object{objs[2]}, d.Selection())
	assert.True(t, objs[2].Selected)

	d.PointerDown(geom.Pt(0, 50), true)
	assert.Equal(t, []*shape.Object{objs[2], objs[1]}, d.Selection())

	d.PointerDown(geom.Pt(0, 50), true)
	assert.Equal(t, []*shape.Object{objs[2]}, d.Selection())
	assert.False(t, objs[1].Selected)

	d.PointerDown(geom.Pt(300, 300), true)
	assert.Len(t, d.Selection(), 1, "modifier click on empty space keeps the selection")

	d.PointerDown(geom.Pt(300, 300), false)
	assert.Empty(t, d.Selection())
	assert.False(t, objs[2].Selected)
}

func TestSelectionClearedByModeAndEscape(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	d.SetMode(ModeSelect)

	d.PointerDown(geom.Pt(50, 0), false)
	require.Len(t, d.Selection(), 1)
	d.Escape()
	assert.Empty(t, d.Selection())

	d.PointerDown(geom.Pt(50, 0), false)
	d.SetMode(ModeLine)
	assert.Empty(t, d.Selection())
	assert.False(t, d.Objects()[0].Selected)
}

func TestDrawingClearsSelection(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	d.SetMode(ModeSelect)
	d.PointerDown(geom.Pt(50, 0), false)
	d.PointerUp(geom.Pt(50, 0))

	d.mode = ModeLine
	d.PointerDown(geom.Pt(0, 50), false)
	assert.Empty(t, d.Selection())
}

func TestDragMovesSelectionAsOneStep(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	drawLine(d, geom.Pt(0, 50), geom.Pt(100, 50))
	before := snapshotOf(t, d)
	d.SetMode(ModeSelect)

	d.PointerDown(geom.Pt(50, 0), false)
	d.PointerDown(geom.Pt(50, 50), true)
	d.PointerUp(geom.Pt(50, 50))
	depth := undoDepth(d)

	// Pressing on a selected object starts a drag.
	d.PointerDown(geom.Pt(50, 0), false)
	d.PointerMove(geom.Pt(60, 5))
	d.PointerMove(geom.Pt(70, 10))
	d.PointerUp(geom.Pt(70, 10))

	objs := d.Objects()
	assert.Equal(t, []geom.Point{{X: 20, Y: 10}, {X: 120, Y: 10}}, objs[0].Points())
	assert.Equal(t, []geom.Point{{X: 20, Y: 60}, {X: 120, Y: 60}}, objs[1].Points())
	assert.Equal(t, geom.Bounds{X: 20, Y: 10, Width: 100, Height: 0}, objs[0].Bounds())
	assert.Equal(t, depth+1, undoDepth(d))

	require.True(t, d.Undo())
	assert.Equal(t, before, snapshotOf(t, d))
}

func TestDragWithoutMotionRecordsNothing(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	d.SetMode(ModeSelect)
	d.PointerDown(geom.Pt(50, 0), false)
	d.PointerDown(geom.Pt(50, 0), false)
	d.PointerLeave(geom.Pt(50, 0))

	assert.Equal(t, 1, undoDepth(d))
}

func TestPointerLeaveEndsMovedDrag(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	before := snapshotOf(t, d)
	d.SetMode(ModeSelect)

	d.PointerDown(geom.Pt(50, 0), false)
	d.PointerDown(geom.Pt(50, 0), false)
	d.PointerMove(geom.Pt(60, 20))
	d.PointerLeave(geom.Pt(60, 20))

	assert.False(t, d.Gesturing())
	assert.Equal(t, 2, undoDepth(d))

	// Motion after the pointer left does not resume the drag.
	d.PointerMove(geom.Pt(90, 90))
	assert.Equal(t, []geom.Point{{X: 10, Y: 20}, {X: 110, Y: 20}}, d.Objects()[0].Points())

	require.True(t, d.Undo())
	assert.Equal(t, before, snapshotOf(t, d))
	assert.Equal(t, 1, undoDepth(d))
}

func TestNonFinitePointerKeepsHistoryUsable(t *testing.T) {
	d := New(Options{})
	d.SetMode(ModeLine)
	d.PointerDown(geom.Pt(math.NaN(), 0), false)
	assert.False(t, d.Gesturing())

	d.PointerDown(geom.Pt(0, 0), false)
	d.PointerMove(geom.Pt(40, 10))
	d.PointerMove(geom.Pt(math.Inf(1), 10))
	d.PointerUp(geom.Pt(math.NaN(), 10))

	objs := d.Objects()
	require.Len(t, objs, 1)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 40, Y: 10}}, objs[0].Points())

	drawLine(d, geom.Pt(0, 50), geom.Pt(100, 50))
	assert.Equal(t, 2, undoDepth(d))
	require.NoError(t, d.Save(context.Background(), "finite"))

	require.True(t, d.Undo())
	require.True(t, d.Undo())
	assert.Empty(t, d.Objects())
	assert.False(t, d.State().CanUndo)
	require.True(t, d.Redo())
	assert.Len(t, d.Objects(), 1)
}

func TestFailedSnapshotAbortsMutations(t *testing.T) {
	ctx := context.Background()
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	require.NoError(t, d.Save(ctx, "ok"))
	first := d.Objects()[0].Points()

	// An overflowed coordinate cannot be serialized.
	broken := shape.NewLine(geom.Pt(math.Inf(1), 0), geom.Pt(0, 0), shape.DefaultColor)
	d.objects = append(d.objects, broken)
	d.selectOnly(broken)
	require.True(t, d.Copy())
	depth := undoDepth(d)

	assert.False(t, d.DeleteSelected())
	assert.False(t, d.ChangeColor("#ff0000"))
	assert.False(t, d.Paste())
	d.toggleSelection(d.objects[0])
	assert.False(t, d.Group())
	assert.False(t, d.Clear())
	assert.False(t, d.LoadSample())
	assert.Error(t, d.Load(ctx, "ok"))

	d.SetMode(ModeLine)
	drag(d, geom.Pt(0, 50), geom.Pt(100, 50))

	d.SetMode(ModeSelect)
	d.PointerDown(geom.Pt(50, 0), false)
	d.PointerDown(geom.Pt(50, 0), false)
	d.PointerMove(geom.Pt(60, 20))
	d.PointerUp(geom.Pt(60, 20))

	objs := d.Objects()
	require.Len(t, objs, 2)
	assert.Same(t, broken, objs[1])
	assert.Equal(t, shape.DefaultColor, broken.Color)
	assert.Equal(t, first, objs[0].Points())
	assert.Equal(t, depth, undoDepth(d))
}

func TestUndoRedoRestoresState(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(10, 10))
	d.SetMode(ModeSquare)
	drag(d, geom.Pt(20, 20), geom.Pt(0, 60))
	d.SetMode(ModeClosedPolygon)
	d.PointerDown(geom.Pt(0, 0), false)
	d.PointerDown(geom.Pt(5, 0), false)
	d.PointerDown(geom.Pt(5, 5), false)
	d.FinishPolygon()

	final := snapshotOf(t, d)
	for i := 0; i < 3; i++ {
		require.True(t, d.Undo())
	}
	assert.Empty(t, d.Objects())
	assert.False(t, d.Undo())

	for i := 0; i < 3; i++ {
		require.True(t, d.Redo())
	}
	assert.False(t, d.Redo())
	assert.Equal(t, final, snapshotOf(t, d))
	assert.True(t, d.Objects()[1].IsSquare)
}

func TestNewMutationDiscardsRedo(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(10, 10))
	drawLine(d, geom.Pt(0, 0), geom.Pt(20, 20))
	require.True(t, d.Undo())
	assert.True(t, d.State().CanRedo)

	drawLine(d, geom.Pt(0, 0), geom.Pt(30, 30))
	assert.False(t, d.State().CanRedo)
	assert.False(t, d.Redo())
}

func TestUndoClearsSelection(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	drawLine(d, geom.Pt(0, 50), geom.Pt(100, 50))
	d.SetMode(ModeSelect)
	d.PointerDown(geom.Pt(50, 0), false)

	require.True(t, d.Undo())
	assert.Empty(t, d.Selection())
	for _, o := range d.Objects() {
		assert.False(t, o.Selected)
	}
}

func TestHistoryLimit(t *testing.T) {
	d := New(Options{HistoryLimit: 2})
	for i := 0; i < 5; i++ {
		drawLine(d, geom.Pt(0, 0), geom.Pt(float64(i+1), 0))
	}
	assert.Equal(t, 2, undoDepth(d))
}

func TestCopyPaste(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	orig := d.Objects()[0]
	d.SetMode(ModeSelect)

	assert.False(t, d.Copy(), "nothing selected")
	assert.False(t, d.Paste(), "empty clipboard")

	d.PointerDown(geom.Pt(50, 0), false)
	require.True(t, d.Copy())
	require.True(t, d.Paste())

	objs := d.Objects()
	require.Len(t, objs, 2)
	pasted := objs[1]
	assert.Equal(t, []geom.Point{{X: 20, Y: 20}, {X: 120, Y: 20}}, pasted.Points())
	assert.NotEqual(t, orig.ID, pasted.ID)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}, orig.Points())
	assert.Equal(t, []*shape.Object{pasted}, d.Selection())
	assert.False(t, orig.Selected)

	// The clipboard is untouched, so pasting again offsets from the original.
	require.True(t, d.Paste())
	objs = d.Objects()
	require.Len(t, objs, 3)
	assert.Equal(t, []geom.Point{{X: 20, Y: 20}, {X: 120, Y: 20}}, objs[2].Points())
	assert.NotEqual(t, objs[1].ID, objs[2].ID)

	require.True(t, d.Undo())
	assert.Len(t, d.Objects(), 2)
}

func TestDeleteSelected(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	drawLine(d, geom.Pt(0, 50), geom.Pt(100, 50))
	keep := d.Objects()[1]
	d.SetMode(ModeSelect)

	assert.False(t, d.DeleteSelected())

	d.PointerDown(geom.Pt(50, 0), false)
	require.True(t, d.DeleteSelected())
	assert.Equal(t, []*shape.Object{keep}, d.Objects())
	assert.Empty(t, d.Selection())
}

func TestGroupUngroup(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	d.SetMode(ModeRectangle)
	drag(d, geom.Pt(0, 50), geom.Pt(50, 100))
	drawLine(d, geom.Pt(300, 300), geom.Pt(400, 300))
	objs := d.Objects()
	d.SetMode(ModeSelect)

	// Selected out of stacking order.
	d.PointerDown(geom.Pt(25, 50), false)
	d.PointerDown(geom.Pt(50, 0), true)
	assert.False(t, d.Ungroup(), "not a group")

	require.True(t, d.Group())
	after := d.Objects()
	require.Len(t, after, 2)
	assert.Equal(t, objs[2], after[0])
	g := after[1]
	require.True(t, g.IsGroup())
	assert.Equal(t, []*shape.Object{objs[0], objs[1]}, g.Children())
	assert.Equal(t, []*shape.Object{g}, d.Selection())
	assert.True(t, g.Selected)
	assert.False(t, objs[0].Selected)
	assert.Equal(t, geom.Bounds{X: 0, Y: 0, Width: 100, Height: 100}, g.Bounds())
	assert.Equal(t, "1 object selected • Group • Ctrl+Shift+G to ungroup", d.State().Status)
	assert.True(t, d.State().CanUngroup)
	assert.False(t, d.Group(), "group needs two objects")

	require.True(t, d.Ungroup())
	after = d.Objects()
	require.Len(t, after, 3)
	for _, o := range after {
		assert.False(t, o.IsGroup())
	}
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}, after[1].Points())
	assert.Equal(t, []geom.Point{{X: 0, Y: 50}, {X: 50, Y: 100}}, after[2].Points())
	assert.Equal(t, []*shape.Object{objs[0], objs[1]}, d.Selection())
	assert.Equal(t, "2 objects selected • Ctrl+G to group", d.State().Status)
}

func TestGroupMovesAsOne(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	drawLine(d, geom.Pt(0, 50), geom.Pt(100, 50))
	d.SetMode(ModeSelect)
	d.PointerDown(geom.Pt(50, 0), false)
	d.PointerDown(geom.Pt(50, 50), true)
	require.True(t, d.Group())

	// Inside the group's box but away from every child is a miss.
	d.PointerDown(geom.Pt(50, 25), false)
	assert.Empty(t, d.Selection())

	d.PointerDown(geom.Pt(50, 50), false)
	d.PointerDown(geom.Pt(50, 50), false)
	d.PointerMove(geom.Pt(60, 60))
	d.PointerUp(geom.Pt(60, 60))

	g := d.Objects()[0]
	assert.Equal(t, geom.Bounds{X: 10, Y: 10, Width: 100, Height: 50}, g.Bounds())
	assert.Equal(t, []geom.Point{{X: 10, Y: 10}, {X: 110, Y: 10}}, g.Children()[0].Points())
}

func TestColorChanges(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	drawLine(d, geom.Pt(0, 50), geom.Pt(100, 50))
	d.SetMode(ModeSelect)
	depth := undoDepth(d)

	d.SetColor("#00ff00")
	assert.Equal(t, "#00ff00", d.Color())
	assert.Equal(t, depth, undoDepth(d), "no selection, nothing recolored")
	assert.False(t, d.Recolor())

	d.PointerDown(geom.Pt(50, 0), false)
	d.SetColor("#0000ff")
	assert.Equal(t, "#0000ff", d.Objects()[0].Color)
	assert.Equal(t, shape.DefaultColor, d.Objects()[1].Color)
	assert.Equal(t, depth+1, undoDepth(d))

	require.True(t, d.ChangeColor("#123456"))
	assert.Equal(t, "#123456", d.Objects()[0].Color)
	assert.Equal(t, "#0000ff", d.Color())

	require.True(t, d.Recolor())
	assert.Equal(t, "#0000ff", d.Objects()[0].Color)

	require.True(t, d.Undo())
	assert.Equal(t, "#123456", d.Objects()[0].Color)
}

func TestClear(t *testing.T) {
	d := New(Options{})
	assert.False(t, d.Clear())

	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	require.True(t, d.Clear())
	assert.Empty(t, d.Objects())

	require.True(t, d.Undo())
	assert.Len(t, d.Objects(), 1)
}

func TestState(t *testing.T) {
	d := New(Options{})
	st := d.State()
	assert.Equal(t, ModeFreehand, st.Mode)
	assert.Equal(t, "", st.Status)
	assert.False(t, st.CanCopy)
	assert.False(t, st.CanGroup)

	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	d.SetMode(ModeSelect)
	d.PointerDown(geom.Pt(50, 0), false)

	st = d.State()
	assert.Equal(t, 1, st.ObjectCount)
	assert.Equal(t, 1, st.SelectionCount)
	assert.True(t, st.CanUndo)
	assert.True(t, st.CanCopy)
	assert.True(t, st.CanDelete)
	assert.True(t, st.CanRecolor)
	assert.False(t, st.CanPaste)
	assert.False(t, st.CanGroup)
	assert.False(t, st.CanUngroup)
	assert.Equal(t, "1 object selected • Drag to move • Change color", st.Status)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("closed_polygon")
	require.NoError(t, err)
	assert.Equal(t, ModeClosedPolygon, m)

	_, err = ParseMode("spray")
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	d.SetMode(ModeSelect)
	d.PointerDown(geom.Pt(50, 0), false)
	require.NoError(t, d.Save(ctx, "one"))

	drawLine(d, geom.Pt(0, 50), geom.Pt(100, 50))
	require.NoError(t, d.Load(ctx, "one"))

	objs := d.Objects()
	require.Len(t, objs, 1)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}, objs[0].Points())
	assert.False(t, objs[0].Selected, "stored selection is not restored")
	assert.Empty(t, d.Selection())

	require.True(t, d.Undo(), "load is undoable")
	assert.Len(t, d.Objects(), 2)

	names, err := d.ListSketches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, names)

	require.NoError(t, d.DeleteSketch(ctx, "one"))
	assert.ErrorIs(t, d.Load(ctx, "one"), sketch.ErrNotFound)
}

func TestLoadFailureLeavesDocument(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory(0)
	require.NoError(t, mem.Set(ctx, sketch.Key("broken"), "{not json"))

	d := New(Options{Library: sketch.NewLibrary(mem)})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	before := snapshotOf(t, d)

	require.Error(t, d.Load(ctx, "broken"))
	assert.ErrorIs(t, d.Load(ctx, "missing"), sketch.ErrNotFound)
	assert.Equal(t, before, snapshotOf(t, d))
	assert.Equal(t, 1, undoDepth(d))
}

func TestSaveFailureLeavesDocument(t *testing.T) {
	ctx := context.Background()
	d := New(Options{Library: sketch.NewLibrary(store.NewMemory(16))})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	before := snapshotOf(t, d)

	assert.ErrorIs(t, d.Save(ctx, "big"), store.ErrQuotaExceeded)
	assert.ErrorIs(t, d.Save(ctx, ""), sketch.ErrInvalidName)
	assert.Equal(t, before, snapshotOf(t, d))
}

func TestLoadSample(t *testing.T) {
	d := New(Options{})
	d.LoadSample()
	assert.Len(t, d.Objects(), len(sketch.Sample()))
	require.True(t, d.Undo())
	assert.Empty(t, d.Objects())
}

func TestRenderObjectsAndSelection(t *testing.T) {
	d := New(Options{})
	drawLine(d, geom.Pt(0, 0), geom.Pt(100, 0))
	d.SetMode(ModeSelect)
	d.PointerDown(geom.Pt(50, 0), false)

	rec := render.NewRecorder()
	d.Render(rec)
	cmds := rec.Commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, "clear", cmds[0].Op)
	assert.Equal(t, "path", cmds[1].Op)
	assert.Equal(t, "rect", cmds[2].Op)
	assert.Equal(t, "#007bff", cmds[2].Stroke)
	assert.Equal(t, []float64{5, 5}, cmds[2].Dash)
}

func TestRenderShapePreview(t *testing.T) {
	d := New(Options{})
	d.SetColor("#ff0000")
	d.SetMode(ModeSquare)
	d.PointerDown(geom.Pt(0, 0), false)

	rec := render.NewRecorder()
	d.Render(rec)
	assert.Len(t, rec.Commands(), 1, "no preview before the pointer moves")

	d.PointerMove(geom.Pt(30, 80))
	d.Render(rec)
	cmds := rec.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "rect", cmds[1].Op)
	assert.Equal(t, &geom.Bounds{X: 0, Y: 0, Width: 80, Height: 80}, cmds[1].Rect)
	assert.Equal(t, "#ff0000", cmds[1].Stroke)
	assert.Equal(t, []float64{5, 5}, cmds[1].Dash)

	d.SetMode(ModeCircle)
	d.PointerDown(geom.Pt(0, 0), false)
	d.PointerMove(geom.Pt(20, 60))
	d.Render(rec)
	cmds = rec.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "ellipse", cmds[1].Op)
	assert.Equal(t, &geom.Point{X: 30, Y: 30}, cmds[1].Center)
	assert.Equal(t, 30.0, cmds[1].RX)
	assert.Equal(t, 30.0, cmds[1].RY)
}

func TestRenderFreehandPreview(t *testing.T) {
	d := New(Options{})
	d.PointerDown(geom.Pt(0, 0), false)
	d.PointerMove(geom.Pt(5, 5))

	rec := render.NewRecorder()
	d.Render(rec)
	cmds := rec.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "path", cmds[1].Op)
	assert.Nil(t, cmds[1].Dash)
}

func TestRenderPolygonPreview(t *testing.T) {
	d := New(Options{})
	d.SetMode(ModeClosedPolygon)
	d.PointerDown(geom.Pt(0, 0), false)
	d.PointerDown(geom.Pt(10, 0), false)
	d.PointerDown(geom.Pt(10, 10), false)
	d.PointerMove(geom.Pt(0, 10))

	rec := render.NewRecorder()
	d.Render(rec)
	cmds := rec.Commands()
	require.Len(t, cmds, 6)

	assert.Equal(t, "path", cmds[1].Op)
	assert.Len(t, cmds[1].Points, 3)
	assert.Nil(t, cmds[1].Dash)

	assert.Equal(t, "path", cmds[2].Op)
	assert.Equal(t, []geom.Point{{X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}}, cmds[2].Points)
	assert.Equal(t, []float64{5, 5}, cmds[2].Dash)

	for _, c := range cmds[3:] {
		assert.Equal(t, "marker", c.Op)
		assert.Equal(t, render.MarkerRadius, c.RX)
	}
}
