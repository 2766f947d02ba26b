// Package codec converts sketch objects to and from their stored JSON form.
//
// The field names and kind tags here are the on-disk contract shared with
// sketches saved by earlier versions of the editor.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/shape"
	"github.com/sketchpad/sketchpad/internal/typeid"
)

// Version is written into every record.
const Version = "1.0"

var ErrUnsupportedVersion = errors.New("unsupported record version")

// Record is one saved sketch.
type Record struct {
	Version  string     `json:"version"`
	Objects  ObjectList `json:"objects"`
	Metadata Metadata   `json:"metadata"`
}

type Metadata struct {
	Name       string `json:"name"`
	CreatedAt  string `json:"createdAt"`
	ModifiedAt string `json:"modifiedAt"`
}

// ObjectData is the stored form of one object. Kind-specific flags are
// omitted for kinds that do not carry them.
type ObjectData struct {
	ID             string       `json:"id,omitempty"`
	Type           shape.Kind   `json:"type"`
	Points         []geom.Point `json:"points"`
	Color          string       `json:"color"`
	IsSelected     bool         `json:"isSelected,omitempty"`
	IsSquare       *bool        `json:"isSquare,omitempty"`
	IsCircle       *bool        `json:"isCircle,omitempty"`
	IsClosed       *bool        `json:"isClosed,omitempty"`
	GroupedObjects ObjectList   `json:"groupedObjects,omitempty"`
}

// ObjectList is a sequence of stored objects. Decoding it never fails on a
// single bad element: an element that does not parse becomes a zero
// ObjectData, which DecodeObject rejects.
type ObjectList []ObjectData

func (l *ObjectList) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	out := make(ObjectList, len(raw))
	for i, r := range raw {
		if err := json.Unmarshal(r, &out[i]); err != nil {
			slog.Debug("skipping malformed object", "index", i, "error", err)
			out[i] = ObjectData{}
		}
	}
	*l = out
	return nil
}

// EncodeObject converts an object, and for groups all descendants.
func EncodeObject(o *shape.Object) ObjectData {
	data := ObjectData{
		ID:         o.ID,
		Type:       o.Kind,
		Points:     o.Points(),
		Color:      o.Color,
		IsSelected: o.Selected,
	}
	if data.Points == nil {
		data.Points = []geom.Point{}
	}

	switch o.Kind {
	case shape.KindRectangle:
		data.IsSquare = boolPtr(o.IsSquare)
	case shape.KindEllipse:
		data.IsCircle = boolPtr(o.IsCircle)
	case shape.KindPolygon:
		data.IsClosed = boolPtr(o.IsClosed)
	case shape.KindGroup:
		data.GroupedObjects = EncodeObjects(o.Children())
	}
	return data
}

// EncodeObjects converts a list of objects in order.
func EncodeObjects(objs []*shape.Object) ObjectList {
	out := make(ObjectList, len(objs))
	for i, o := range objs {
		out[i] = EncodeObject(o)
	}
	return out
}

// DecodeObject rebuilds an object from its stored form. It returns nil when
// the kind tag is unknown or the geometry does not fit the kind. Group
// children that fail to decode are dropped, and a group left with no
// children is rejected. A stored id is kept only when it is a well-formed
// object id.
func DecodeObject(data ObjectData) *shape.Object {
	if !data.Type.Valid() {
		slog.Debug("skipping object with unknown kind", "type", data.Type)
		return nil
	}

	var o *shape.Object
	switch data.Type {
	case shape.KindFreehandPath:
		o = shape.NewFreehandPath(data.Points, data.Color)
	case shape.KindLine:
		if len(data.Points) != 2 {
			return nil
		}
		o = shape.NewLine(data.Points[0], data.Points[1], data.Color)
	case shape.KindRectangle:
		if len(data.Points) != 2 {
			return nil
		}
		o = shape.NewRectangle(data.Points[0], data.Points[1], data.Color, deref(data.IsSquare))
	case shape.KindEllipse:
		if len(data.Points) != 2 {
			return nil
		}
		o = shape.NewEllipse(data.Points[0], data.Points[1], data.Color, deref(data.IsCircle))
	case shape.KindPolygon:
		// Sketches saved before isClosed existed were always closed.
		closed := true
		if data.IsClosed != nil {
			closed = *data.IsClosed
		}
		o = shape.NewPolygon(data.Points, data.Color, closed)
	case shape.KindGroup:
		children := DecodeObjects(data.GroupedObjects)
		if len(children) == 0 {
			return nil
		}
		o = shape.NewGroup(children, data.Color)
	}

	if data.ID != "" {
		if err := typeid.Validate(data.ID, typeid.PrefixObject); err != nil {
			slog.Debug("replacing malformed object id", "id", data.ID, "error", err)
		} else {
			o.ID = data.ID
		}
	}
	o.Selected = data.IsSelected
	return o
}

// DecodeObjects rebuilds objects in order, skipping the ones DecodeObject rejects.
func DecodeObjects(data ObjectList) []*shape.Object {
	out := make([]*shape.Object, 0, len(data))
	for _, d := range data {
		if o := DecodeObject(d); o != nil {
			out = append(out, o)
		}
	}
	return out
}

// EncodeSnapshot serializes a top-level object list for the undo history.
func EncodeSnapshot(objs []*shape.Object) (string, error) {
	data, err := json.Marshal(EncodeObjects(objs))
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	return string(data), nil
}

// DecodeSnapshot rebuilds a top-level object list stored by EncodeSnapshot.
func DecodeSnapshot(snapshot string) ([]*shape.Object, error) {
	var data ObjectList
	if err := json.Unmarshal([]byte(snapshot), &data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return DecodeObjects(data), nil
}

// NewRecord builds a record for objs stamped with the given times.
func NewRecord(name string, objs []*shape.Object, createdAt, modifiedAt time.Time) *Record {
	return &Record{
		Version: Version,
		Objects: EncodeObjects(objs),
		Metadata: Metadata{
			Name:       name,
			CreatedAt:  createdAt.UTC().Format(time.RFC3339Nano),
			ModifiedAt: modifiedAt.UTC().Format(time.RFC3339Nano),
		},
	}
}

// MarshalRecord serializes a record.
func MarshalRecord(r *Record) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	return string(data), nil
}

// UnmarshalRecord parses a stored record. A record whose major version is
// newer than ours is still returned, together with ErrUnsupportedVersion, so
// callers can decide whether to use it.
func UnmarshalRecord(raw string) (*Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	if major(r.Version) > major(Version) {
		return &r, fmt.Errorf("%w: %q", ErrUnsupportedVersion, r.Version)
	}
	return &r, nil
}

// Decode returns the objects of a record.
func (r *Record) Decode() []*shape.Object {
	return DecodeObjects(r.Objects)
}

// major returns the leading component of a "major.minor" version, 0 when absent.
func major(version string) int {
	head, _, _ := strings.Cut(version, ".")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return n
}

func boolPtr(b bool) *bool { return &b }

func deref(b *bool) bool { return b != nil && *b }
