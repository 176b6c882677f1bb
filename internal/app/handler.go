package app

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/gravity-particles/db"
	"github.com/suxatcode/gravity-particles/gravity"
	"github.com/suxatcode/gravity-particles/internal/controller"
	"github.com/suxatcode/gravity-particles/middleware"
)

const (
	maxFrameSize = 4096
	// maxZoom is the largest number of pixels per world unit.
	maxZoom = 1000.0
)

type handler struct {
	ctrl  *controller.Controller
	world gravity.Rect
}

// NewHandler serves the read-only view of the simulation. Areas and
// viewports default to world.
func NewHandler(ctrl *controller.Controller, world gravity.Rect) http.Handler {
	h := &handler{ctrl: ctrl, world: world}
	mux := http.NewServeMux()
	mux.HandleFunc("/particles", h.particles)
	mux.HandleFunc("/tree", h.tree)
	mux.HandleFunc("/frame.png", h.frame)
	mux.HandleFunc("/stats", h.stats)
	mux.HandleFunc("/runs", h.runs)
	mux.HandleFunc("/runs/", h.stepRecords)
	return middleware.AddAll(mux)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Ctx(r.Context()).Error().Msgf("failed to write response: %v", err)
	}
}

func parseFloat(q url.Values, key string, def float64) (float64, error) {
	s := q.Get(key)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parameter '%s'", key)
	}
	return f, nil
}

func parseInt(q url.Values, key string, def int) (int, error) {
	s := q.Get(key)
	if s == "" {
		return def, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "parameter '%s'", key)
	}
	return i, nil
}

// parseArea reads the rectangle x, y, w, h from the query.
func parseArea(q url.Values, def gravity.Rect) (gravity.Rect, error) {
	var (
		area gravity.Rect
		err  error
	)
	if area.X, err = parseFloat(q, "x", def.X); err != nil {
		return area, err
	}
	if area.Y, err = parseFloat(q, "y", def.Y); err != nil {
		return area, err
	}
	if area.Width, err = parseFloat(q, "w", def.Width); err != nil {
		return area, err
	}
	if area.Height, err = parseFloat(q, "h", def.Height); err != nil {
		return area, err
	}
	if area.Empty() {
		return area, errors.Errorf("empty area %+v", area)
	}
	return area, nil
}

func (h *handler) particles(w http.ResponseWriter, r *http.Request) {
	area, err := parseArea(r.URL.Query(), h.world)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	particles, err := h.ctrl.Particles(r.Context(), area)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, r, particles)
}

func (h *handler) tree(w http.ResponseWriter, r *http.Request) {
	bounds, err := h.ctrl.TreeBounds(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, r, bounds)
}

func (h *handler) frameConfig(q url.Values) (gravity.FrameConfig, error) {
	conf := gravity.DefaultFrameConfig
	var err error
	if conf.Viewport, err = parseArea(q, h.world); err != nil {
		return conf, err
	}
	if conf.Width, err = parseInt(q, "width", conf.Width); err != nil {
		return conf, err
	}
	if conf.Height, err = parseInt(q, "height", conf.Height); err != nil {
		return conf, err
	}
	if conf.Width <= 0 || conf.Height <= 0 || conf.Width > maxFrameSize || conf.Height > maxFrameSize {
		return conf, errors.Errorf("invalid frame size %dx%d, at most %dx%d", conf.Width, conf.Height, maxFrameSize, maxFrameSize)
	}
	if float64(conf.Width)/conf.Viewport.Width > maxZoom || float64(conf.Height)/conf.Viewport.Height > maxZoom {
		return conf, errors.Errorf("viewport %+v zooms in more than %g pixels per unit", conf.Viewport, maxZoom)
	}
	conf.DrawTree = q.Get("tree") != ""
	conf.Invert = q.Get("invert") != ""
	return conf, nil
}

func (h *handler) frame(w http.ResponseWriter, r *http.Request) {
	conf, err := h.frameConfig(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := h.ctrl.Frame(r.Context(), w, conf); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	}
}

func (h *handler) stats(w http.ResponseWriter, r *http.Request) {
	status, err := h.ctrl.Status(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, r, status)
}

func (h *handler) runs(w http.ResponseWriter, r *http.Request) {
	runs, err := h.ctrl.Runs(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, runs)
}

func (h *handler) stepRecords(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/runs/")
	records, err := h.ctrl.StepRecords(r.Context(), id)
	if errors.Is(err, db.ErrRunNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, records)
}
