package render

import (
	"encoding/json"

	"github.com/sketchpad/sketchpad/internal/geom"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string       `json:"op"`                    // Operation: "clear", "path", "rect", "ellipse", "marker"
	Points      []geom.Point `json:"points,omitempty"`      // Vertices for "path"
	Closed      bool         `json:"closed,omitempty"`      // Close the path back to its first vertex
	Rect        *geom.Bounds `json:"rect,omitempty"`        // Box for "rect"
	Center      *geom.Point  `json:"center,omitempty"`      // Center for "ellipse" and "marker"
	RX          float64      `json:"rx,omitempty"`          // Horizontal radius, or marker radius
	RY          float64      `json:"ry,omitempty"`          // Vertical radius
	Stroke      string       `json:"stroke,omitempty"`      // Stroke (or marker fill) color
	StrokeWidth float64      `json:"strokeWidth,omitempty"` // Stroke width
	Dash        []float64    `json:"dash,omitempty"`        // Dash pattern, empty for solid
}

// Recorder is a Surface that buffers draw commands in painter's order.
type Recorder struct {
	commands []DrawCommand
	stroke   string
	width    float64
	dash     []float64
}

// NewRecorder creates an empty command buffer.
func NewRecorder() *Recorder {
	return &Recorder{stroke: "#000000", width: DefaultStrokeWidth}
}

func (r *Recorder) Clear() {
	r.commands = append(r.commands[:0], DrawCommand{Op: "clear"})
}

func (r *Recorder) SetStroke(color string, width float64) {
	r.stroke = color
	r.width = width
}

func (r *Recorder) SetDash(pattern ...float64) {
	if len(pattern) == 0 {
		r.dash = nil
		return
	}
	r.dash = append([]float64(nil), pattern...)
}

func (r *Recorder) StrokePath(points []geom.Point, closed bool) {
	if len(points) == 0 {
		return
	}
	r.emit(DrawCommand{
		Op:     "path",
		Points: append([]geom.Point(nil), points...),
		Closed: closed,
	})
}

func (r *Recorder) StrokeRect(b geom.Bounds) {
	r.emit(DrawCommand{Op: "rect", Rect: &b})
}

func (r *Recorder) StrokeEllipse(center geom.Point, rx, ry float64) {
	r.emit(DrawCommand{Op: "ellipse", Center: &center, RX: rx, RY: ry})
}

func (r *Recorder) FillCircle(center geom.Point, radius float64) {
	r.emit(DrawCommand{Op: "marker", Center: &center, RX: radius, RY: radius})
}

// emit stamps the current stroke state onto cmd and appends it.
func (r *Recorder) emit(cmd DrawCommand) {
	cmd.Stroke = r.stroke
	cmd.StrokeWidth = r.width
	cmd.Dash = r.dash
	r.commands = append(r.commands, cmd)
}

// Commands returns the recorded commands.
func (r *Recorder) Commands() []DrawCommand {
	return r.commands
}

// Reset discards all recorded commands and restores default stroke state.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.stroke = "#000000"
	r.width = DefaultStrokeWidth
	r.dash = nil
}

// JSON serializes the recorded commands.
func (r *Recorder) JSON() (string, error) {
	return DrawCommandsToJSON(r.commands)
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
