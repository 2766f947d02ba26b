// Package api serves saved sketches over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sketchpad/sketchpad/internal/codec"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/shape"
	"github.com/sketchpad/sketchpad/internal/sketch"
	"github.com/sketchpad/sketchpad/internal/store"
)

const maxRecordSize = 4 << 20

type Handler struct {
	library       *sketch.Library
	previewWidth  int
	previewHeight int
}

func NewHandler(library *sketch.Library, previewWidth, previewHeight int) *Handler {
	return &Handler{
		library:       library,
		previewWidth:  previewWidth,
		previewHeight: previewHeight,
	}
}

// Routes registers the sketch endpoints on r.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/sketches", h.List).Methods("GET")
	r.HandleFunc("/sketches/{name}", h.Get).Methods("GET")
	r.HandleFunc("/sketches/{name}", h.Put).Methods("PUT")
	r.HandleFunc("/sketches/{name}", h.Delete).Methods("DELETE")
	r.HandleFunc("/sketches/{name}/preview.png", h.Preview).Methods("GET")
}

type summary struct {
	Name       string `json:"name"`
	CreatedAt  string `json:"createdAt"`
	ModifiedAt string `json:"modifiedAt"`
	Objects    int    `json:"objects"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.library.List(r.Context())
	if err != nil {
		slog.Error("list sketches failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	out := make([]summary, 0, len(names))
	for _, name := range names {
		rec, err := h.library.Record(r.Context(), name)
		if err != nil {
			// Unreadable records are still listed so they can be deleted.
			slog.Warn("unreadable sketch", "sketch", name, "error", err)
			out = append(out, summary{Name: name})
			continue
		}
		out = append(out, summary{
			Name:       name,
			CreatedAt:  rec.Metadata.CreatedAt,
			ModifiedAt: rec.Metadata.ModifiedAt,
			Objects:    len(rec.Objects),
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	raw, err := h.library.Raw(r.Context(), name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, raw)
}

// Put stores a record sent by the client under name. The objects are decoded
// and re-encoded so only well-formed objects are kept.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRecordSize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	rec, err := codec.UnmarshalRecord(string(body))
	if err != nil && !errors.Is(err, codec.ErrUnsupportedVersion) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sketch record"})
		return
	}

	saved, err := h.library.Save(r.Context(), name, rec.Decode())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saved.Metadata)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.library.Delete(r.Context(), name); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Preview rasterizes the sketch to a PNG without selection highlights.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	objs, _, err := h.library.Load(r.Context(), name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	raster := render.NewRaster(h.previewWidth, h.previewHeight)
	defer raster.Close()

	raster.Clear()
	for _, o := range objs {
		o.Walk(func(o *shape.Object) { o.Selected = false })
		o.Render(raster)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	if err := raster.EncodePNG(w); err != nil {
		slog.Error("encode preview failed", "sketch", name, "error", err)
	}
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sketch.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, sketch.ErrInvalidName):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sketch name"})
	case errors.Is(err, store.ErrQuotaExceeded):
		writeJSON(w, http.StatusInsufficientStorage, map[string]string{"error": "storage quota exceeded"})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
