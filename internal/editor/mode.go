package editor

import "fmt"

// Mode is the active tool.
type Mode string

const (
	ModeFreehand      Mode = "freehand"
	ModeLine          Mode = "line"
	ModeRectangle     Mode = "rectangle"
	ModeSquare        Mode = "square"
	ModeEllipse       Mode = "ellipse"
	ModeCircle        Mode = "circle"
	ModeOpenPolygon   Mode = "open_polygon"
	ModeClosedPolygon Mode = "closed_polygon"
	ModeSelect        Mode = "select"
)

var modes = []Mode{
	ModeFreehand, ModeLine, ModeRectangle, ModeSquare, ModeEllipse,
	ModeCircle, ModeOpenPolygon, ModeClosedPolygon, ModeSelect,
}

// ParseMode converts a tool name into a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown tool mode %q", s)
}

func (m Mode) isPolygon() bool {
	return m == ModeOpenPolygon || m == ModeClosedPolygon
}
