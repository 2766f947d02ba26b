// Package sketch saves named sketches into a key-value store.
package sketch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/sketchpad/sketchpad/internal/codec"
	"github.com/sketchpad/sketchpad/internal/shape"
	"github.com/sketchpad/sketchpad/internal/store"
)

// KeyPrefix marks store keys that hold sketches.
const KeyPrefix = "sketch_"

var (
	ErrNotFound    = errors.New("sketch not found")
	ErrInvalidName = errors.New("invalid sketch name")
)

// Library reads and writes sketch records in a Store.
type Library struct {
	store store.Store
	now   func() time.Time
}

func NewLibrary(s store.Store) *Library {
	return &Library{store: s, now: time.Now}
}

// Key returns the store key for a sketch name.
func Key(name string) string {
	return KeyPrefix + name
}

// Save writes objs under name. Overwriting an existing sketch keeps its
// creation time.
func (l *Library) Save(ctx context.Context, name string, objs []*shape.Object) (*codec.Record, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	now := l.now()
	created := now
	if prev, err := l.Record(ctx, name); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, prev.Metadata.CreatedAt); err == nil {
			created = t
		}
	}

	rec := codec.NewRecord(name, objs, created, now)
	raw, err := codec.MarshalRecord(rec)
	if err != nil {
		return nil, err
	}

	if err := l.store.Set(ctx, Key(name), raw); err != nil {
		return nil, fmt.Errorf("save sketch %q: %w", name, err)
	}

	slog.Debug("sketch saved", "sketch", name, "objects", len(objs), "bytes", len(raw))
	return rec, nil
}

// Record fetches and parses the stored record for name.
func (l *Library) Record(ctx context.Context, name string) (*codec.Record, error) {
	raw, err := l.Raw(ctx, name)
	if err != nil {
		return nil, err
	}

	rec, err := codec.UnmarshalRecord(raw)
	if err != nil {
		if rec != nil && errors.Is(err, codec.ErrUnsupportedVersion) {
			slog.Warn("loading sketch with newer version", "sketch", name, "version", rec.Version)
			return rec, nil
		}
		return nil, fmt.Errorf("load sketch %q: %w", name, err)
	}
	return rec, nil
}

// Load returns the objects of the sketch saved under name. Objects that
// cannot be decoded are skipped.
func (l *Library) Load(ctx context.Context, name string) ([]*shape.Object, *codec.Metadata, error) {
	rec, err := l.Record(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	objs := rec.Decode()
	if skipped := len(rec.Objects) - len(objs); skipped > 0 {
		slog.Warn("skipped malformed objects", "sketch", name, "skipped", skipped)
	}
	return objs, &rec.Metadata, nil
}

// Raw returns the stored JSON for name.
func (l *Library) Raw(ctx context.Context, name string) (string, error) {
	raw, err := l.store.Get(ctx, Key(name))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read sketch %q: %w", name, err)
	}
	return raw, nil
}

// List returns the names of all saved sketches, sorted.
func (l *Library) List(ctx context.Context) ([]string, error) {
	keys, err := l.store.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sketches: %w", err)
	}

	var names []string
	for _, k := range keys {
		if name, ok := strings.CutPrefix(k, KeyPrefix); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the sketch saved under name.
func (l *Library) Delete(ctx context.Context, name string) error {
	if _, err := l.Raw(ctx, name); err != nil {
		return err
	}
	if err := l.store.Delete(ctx, Key(name)); err != nil {
		return fmt.Errorf("delete sketch %q: %w", name, err)
	}
	return nil
}
