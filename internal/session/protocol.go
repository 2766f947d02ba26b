package session

import (
	"encoding/json"

	"github.com/sketchpad/sketchpad/internal/editor"
	"github.com/sketchpad/sketchpad/internal/render"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client -> server
	TypePointerDown  = "pointer.down"
	TypePointerMove  = "pointer.move"
	TypePointerUp    = "pointer.up"
	TypePointerLeave = "pointer.leave"
	TypeDoubleClick  = "pointer.dblclick"
	TypeEscape       = "key.escape"
	TypeEnter        = "key.enter"
	TypeToolSet      = "tool.set"
	TypeColorSet     = "color.set"
	TypeCommand      = "command"

	// Server -> client
	TypeWelcome  = "welcome"
	TypeFrame    = "frame"
	TypeSketches = "sketches"
	TypeNotice   = "notice"
	TypeError    = "error"
)

// Command names carried by TypeCommand.
const (
	CmdUndo    = "undo"
	CmdRedo    = "redo"
	CmdCopy    = "copy"
	CmdPaste   = "paste"
	CmdDelete  = "delete"
	CmdGroup   = "group"
	CmdUngroup = "ungroup"
	CmdRecolor = "recolor"
	CmdClear   = "clear"
	CmdSave    = "save"
	CmdLoad    = "load"
	CmdList    = "list"
	CmdSample  = "sample"
)

type PointerPayload struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Modifier bool    `json:"modifier,omitempty"`
}

type ToolPayload struct {
	Mode string `json:"mode"`
}

type ColorPayload struct {
	Color string `json:"color"`
}

type CommandPayload struct {
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
	Sketch string `json:"sketch,omitempty"`
}

type WelcomePayload struct {
	SessionID string `json:"sessionId"`
}

// FramePayload is everything a client needs to repaint.
type FramePayload struct {
	Commands []render.DrawCommand `json:"commands"`
	State    editor.State         `json:"state"`
}

type SketchesPayload struct {
	Names []string `json:"names"`
}

const (
	LevelInfo  = "info"
	LevelError = "error"
)

type NoticePayload struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
