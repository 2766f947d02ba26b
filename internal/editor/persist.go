package editor

import (
	"context"

	"github.com/sketchpad/sketchpad/internal/sketch"
)

// Save stores the document under name. A failure leaves the document as it was.
func (d *Document) Save(ctx context.Context, name string) error {
	if _, err := d.library.Save(ctx, name, d.objects); err != nil {
		d.log.Warn("failed to save sketch", "sketch", name, "error", err)
		return err
	}
	d.log.Info("sketch saved", "sketch", name, "objects", len(d.objects))
	return nil
}

// Load replaces the document with the sketch saved under name, as one
// undoable step. Malformed objects in the record are skipped. A failure
// leaves the document as it was.
func (d *Document) Load(ctx context.Context, name string) error {
	objs, _, err := d.library.Load(ctx, name)
	if err != nil {
		d.log.Warn("failed to load sketch", "sketch", name, "error", err)
		return err
	}

	if err := d.pushSnapshot(); err != nil {
		return err
	}
	d.replace(objs)
	d.log.Info("sketch loaded", "sketch", name, "objects", len(objs))
	return nil
}

// LoadSample replaces the document with the built-in sample sketch.
func (d *Document) LoadSample() bool {
	if d.pushSnapshot() != nil {
		return false
	}
	d.replace(sketch.Sample())
	return true
}

// ListSketches returns the names of saved sketches.
func (d *Document) ListSketches(ctx context.Context) ([]string, error) {
	return d.library.List(ctx)
}

// DeleteSketch removes a saved sketch. The open document is not affected.
func (d *Document) DeleteSketch(ctx context.Context, name string) error {
	return d.library.Delete(ctx, name)
}
