//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"github.com/sketchpad/sketchpad/internal/editor"
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/sketch"
)

var (
	doc *editor.Document
	rec = render.NewRecorder()
)

func main() {
	doc = editor.New(editor.Options{
		Library: sketch.NewLibrary(newLocalStorage()),
	})

	// Create the editor API object
	sketchpad := js.Global().Get("Object").New()

	// --- Input (frontend → editor) ---
	sketchpad.Set("pointerDown", js.FuncOf(pointerDown))
	sketchpad.Set("pointerMove", js.FuncOf(pointerMove))
	sketchpad.Set("pointerUp", js.FuncOf(pointerUp))
	sketchpad.Set("pointerLeave", js.FuncOf(pointerLeave))
	sketchpad.Set("doubleClick", js.FuncOf(doubleClick))
	sketchpad.Set("escape", js.FuncOf(escape))
	sketchpad.Set("enter", js.FuncOf(enter))
	sketchpad.Set("setMode", js.FuncOf(setMode))
	sketchpad.Set("setColor", js.FuncOf(setColor))

	// --- Commands ---
	sketchpad.Set("undo", command(doc.Undo))
	sketchpad.Set("redo", command(doc.Redo))
	sketchpad.Set("copy", command(doc.Copy))
	sketchpad.Set("paste", command(doc.Paste))
	sketchpad.Set("deleteSelected", command(doc.DeleteSelected))
	sketchpad.Set("group", command(doc.Group))
	sketchpad.Set("ungroup", command(doc.Ungroup))
	sketchpad.Set("recolor", command(doc.Recolor))
	sketchpad.Set("clear", command(doc.Clear))
	sketchpad.Set("loadSample", js.FuncOf(loadSample))

	// --- Persistence ---
	sketchpad.Set("save", js.FuncOf(save))
	sketchpad.Set("load", js.FuncOf(load))
	sketchpad.Set("list", js.FuncOf(list))
	sketchpad.Set("deleteSketch", js.FuncOf(deleteSketch))

	// --- Queries (frontend ← editor) ---
	sketchpad.Set("render", js.FuncOf(renderFrame))
	sketchpad.Set("state", js.FuncOf(state))

	// Register on global scope
	js.Global().Set("sketchpad", sketchpad)

	// Signal that WASM is ready
	js.Global().Set("sketchpadWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Input Handlers ---

// point reads x and y from args, rejecting missing or non-finite values.
func point(args []js.Value) (geom.Point, bool) {
	if len(args) < 2 || args[0].Type() != js.TypeNumber || args[1].Type() != js.TypeNumber {
		return geom.Point{}, false
	}
	p := geom.Pt(args[0].Float(), args[1].Float())
	return p, p.IsFinite()
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	p, ok := point(args)
	if !ok {
		return nil
	}
	modifier := len(args) > 2 && args[2].Truthy()
	doc.PointerDown(p, modifier)
	return nil
}

// pointerMove reports whether the canvas needs a repaint.
func pointerMove(this js.Value, args []js.Value) interface{} {
	p, ok := point(args)
	if !ok {
		return js.ValueOf(false)
	}
	doc.PointerMove(p)
	return js.ValueOf(doc.Gesturing())
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if p, ok := point(args); ok {
		doc.PointerUp(p)
	}
	return nil
}

func pointerLeave(this js.Value, args []js.Value) interface{} {
	if p, ok := point(args); ok {
		doc.PointerLeave(p)
	}
	return nil
}

func doubleClick(this js.Value, args []js.Value) interface{} {
	doc.DoubleClick()
	return nil
}

func escape(this js.Value, args []js.Value) interface{} {
	doc.Escape()
	return nil
}

func enter(this js.Value, args []js.Value) interface{} {
	doc.Enter()
	return nil
}

func setMode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing mode"})
	}
	m, err := editor.ParseMode(args[0].String())
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	doc.SetMode(m)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setColor(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	doc.SetColor(args[0].String())
	return nil
}

// --- Command Handlers ---

func command(fn func() bool) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		return js.ValueOf(fn())
	})
}

func loadSample(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(doc.LoadSample())
}

func save(this js.Value, args []js.Value) interface{} {
	name := ""
	if len(args) > 0 {
		name = args[0].String()
	}
	if err := doc.Save(context.Background(), name); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func load(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing sketch name"})
	}
	if err := doc.Load(context.Background(), args[0].String()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func list(this js.Value, args []js.Value) interface{} {
	names, err := doc.ListSketches(context.Background())
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	out := make([]interface{}, len(names))
	for i, n := range names {
		out[i] = n
	}
	return js.ValueOf(out)
}

func deleteSketch(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing sketch name"})
	}
	if err := doc.DeleteSketch(context.Background(), args[0].String()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Query Handlers ---

func renderFrame(this js.Value, args []js.Value) interface{} {
	rec.Reset()
	doc.Render(rec)
	out, err := rec.JSON()
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(out)
}

func state(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(doc.State())
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}
