// Package session drives one editor per websocket connection. Every inbound
// message maps to a single editor call and is answered with a fresh frame.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sketchpad/sketchpad/internal/editor"
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/sketch"
	"github.com/sketchpad/sketchpad/internal/typeid"
)

// Session owns the document of one connection.
type Session struct {
	ID  string
	doc *editor.Document
	rec *render.Recorder
	log *slog.Logger
}

func New(opts editor.Options) *Session {
	id := typeid.NewSessionID()
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	opts.Logger = log.With("session", id)

	return &Session{
		ID:  id,
		doc: editor.New(opts),
		rec: render.NewRecorder(),
		log: opts.Logger,
	}
}

// Welcome returns the greeting sent when the connection opens, followed by
// the initial frame.
func (s *Session) Welcome() []*Message {
	return []*Message{
		s.message(TypeWelcome, WelcomePayload{SessionID: s.ID}),
		s.frame(),
	}
}

// Handle applies one client message and returns the replies.
func (s *Session) Handle(ctx context.Context, msg *Message) []*Message {
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp, TypePointerLeave:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return s.fail("invalid pointer payload: %v", err)
		}
		return s.pointer(msg.Type, p)

	case TypeDoubleClick:
		s.doc.DoubleClick()
	case TypeEscape:
		s.doc.Escape()
	case TypeEnter:
		s.doc.Enter()

	case TypeToolSet:
		var p ToolPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return s.fail("invalid tool payload: %v", err)
		}
		mode, err := editor.ParseMode(p.Mode)
		if err != nil {
			return s.fail("%v", err)
		}
		s.doc.SetMode(mode)

	case TypeColorSet:
		var p ColorPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.Color == "" {
			return s.fail("invalid color payload")
		}
		s.doc.SetColor(p.Color)

	case TypeCommand:
		var p CommandPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return s.fail("invalid command payload: %v", err)
		}
		return s.command(ctx, p)

	default:
		s.log.Warn("unknown message type", "type", msg.Type)
		return s.fail("unknown message type %q", msg.Type)
	}

	return []*Message{s.frame()}
}

func (s *Session) pointer(kind string, p PointerPayload) []*Message {
	pt := geom.Pt(p.X, p.Y)
	switch kind {
	case TypePointerDown:
		s.doc.PointerDown(pt, p.Modifier)
	case TypePointerMove:
		if !s.doc.Gesturing() {
			return nil
		}
		s.doc.PointerMove(pt)
	case TypePointerUp:
		s.doc.PointerUp(pt)
	case TypePointerLeave:
		s.doc.PointerLeave(pt)
	}
	return []*Message{s.frame()}
}

func (s *Session) command(ctx context.Context, p CommandPayload) []*Message {
	switch p.Name {
	case CmdUndo:
		s.doc.Undo()
	case CmdRedo:
		s.doc.Redo()
	case CmdCopy:
		s.doc.Copy()
	case CmdPaste:
		s.doc.Paste()
	case CmdDelete:
		s.doc.DeleteSelected()
	case CmdGroup:
		s.doc.Group()
	case CmdUngroup:
		s.doc.Ungroup()
	case CmdClear:
		s.doc.Clear()
	case CmdSample:
		s.doc.LoadSample()
	case CmdRecolor:
		if p.Color != "" {
			s.doc.ChangeColor(p.Color)
		} else {
			s.doc.Recolor()
		}

	case CmdSave:
		if err := s.doc.Save(ctx, p.Sketch); err != nil {
			return []*Message{s.notice(LevelError, "Error saving sketch: "+describe(err))}
		}
		return []*Message{s.notice(LevelInfo, "Sketch saved successfully!")}

	case CmdLoad:
		if err := s.doc.Load(ctx, p.Sketch); err != nil {
			return []*Message{s.notice(LevelError, "Error loading sketch: "+describe(err))}
		}
		return []*Message{s.notice(LevelInfo, "Sketch loaded successfully!"), s.frame()}

	case CmdList:
		names, err := s.doc.ListSketches(ctx)
		if err != nil {
			return []*Message{s.notice(LevelError, "Error listing sketches: "+describe(err))}
		}
		if names == nil {
			names = []string{}
		}
		return []*Message{s.message(TypeSketches, SketchesPayload{Names: names})}

	default:
		return s.fail("unknown command %q", p.Name)
	}

	return []*Message{s.frame()}
}

// describe turns storage errors into user-facing text.
func describe(err error) string {
	switch {
	case errors.Is(err, sketch.ErrNotFound):
		return "sketch not found"
	case errors.Is(err, sketch.ErrInvalidName):
		return "sketch name is required"
	default:
		return err.Error()
	}
}

func (s *Session) frame() *Message {
	s.rec.Reset()
	s.doc.Render(s.rec)
	return s.message(TypeFrame, FramePayload{
		Commands: s.rec.Commands(),
		State:    s.doc.State(),
	})
}

func (s *Session) notice(level, text string) *Message {
	return s.message(TypeNotice, NoticePayload{Level: level, Message: text})
}

func (s *Session) fail(format string, args ...any) []*Message {
	return []*Message{s.message(TypeError, ErrorPayload{Message: fmt.Sprintf(format, args...)})}
}

// message marshals payload right away, so it may alias buffers that the
// next call reuses.
func (s *Session) message(typ string, payload any) *Message {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("marshal payload", "type", typ, "error", err)
		data = nil
	}
	return &Message{Type: typ, SessionID: s.ID, Payload: data}
}
