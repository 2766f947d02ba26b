package render

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/sketchpad/sketchpad/internal/geom"
)

// Raster is a Surface backed by the gg software rasterizer.
type Raster struct {
	dc *gg.Context
}

// NewRaster creates a white canvas of the given pixel size.
func NewRaster(width, height int) *Raster {
	dc := gg.NewContext(width, height)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	r := &Raster{dc: dc}
	r.Clear()
	r.SetStroke("#000000", DefaultStrokeWidth)
	return r
}

func (r *Raster) Clear() {
	r.dc.ClearWithColor(gg.White)
}

func (r *Raster) SetStroke(color string, width float64) {
	r.dc.SetHexColor(color)
	r.dc.SetLineWidth(width)
}

func (r *Raster) SetDash(pattern ...float64) {
	r.dc.SetDash(pattern...)
}

func (r *Raster) StrokePath(points []geom.Point, closed bool) {
	if len(points) == 0 {
		return
	}
	r.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	if closed {
		r.dc.ClosePath()
	}
	r.stroke()
}

func (r *Raster) StrokeRect(b geom.Bounds) {
	r.dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
	r.stroke()
}

func (r *Raster) StrokeEllipse(center geom.Point, rx, ry float64) {
	r.dc.DrawEllipse(center.X, center.Y, rx, ry)
	r.stroke()
}

func (r *Raster) FillCircle(center geom.Point, radius float64) {
	r.dc.DrawCircle(center.X, center.Y, radius)
	if err := r.dc.Fill(); err != nil {
		slog.Debug("raster fill failed", "error", err)
	}
}

func (r *Raster) stroke() {
	if err := r.dc.Stroke(); err != nil {
		slog.Debug("raster stroke failed", "error", err)
	}
}

// EncodePNG writes the canvas as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Close releases the rasterizer's resources.
func (r *Raster) Close() error {
	return r.dc.Close()
}
