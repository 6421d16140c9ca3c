// Package api provides HTTP handlers for the hueflow server.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hueflow/server/internal/palette"
	"github.com/hueflow/server/internal/service"
	"github.com/hueflow/server/pkg/colorconv"
	"github.com/hueflow/server/pkg/gradient"
)

// RouterConfig contains router configuration.
type RouterConfig struct {
	Service     *service.GradientService
	CORSOrigins []string
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	svc := cfg.Service

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/convert", convertHandler(svc))
		r.Get("/gradient", gradientHandler(svc))
		r.Get("/transition", transitionHandler(svc))
		r.Get("/stats", statsHandler(svc))

		r.Route("/palettes", func(r chi.Router) {
			r.Get("/", palettesHandler(svc))
			r.Post("/", savePaletteHandler(svc))
			r.Get("/export", exportPalettesHandler(svc))
			r.Post("/import", importPalettesHandler(svc))
			r.Get("/{name}", paletteHandler(svc))
			r.Delete("/{name}", deletePaletteHandler(svc))
		})
	})

	// PNG preview endpoints
	r.Get("/gradient/{from}/{to}/{steps}.png", gradientStripHandler(svc))
	r.Get("/palettes/{name}/{steps}.png", paletteStripHandler(svc))

	return r
}

// convertHandler returns the RGB and HSV forms of a hex color.
func convertHandler(svc *service.GradientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		colorParam := strings.TrimSpace(r.URL.Query().Get("color"))
		if colorParam == "" {
			http.Error(w, "missing required query param: color", http.StatusBadRequest)
			return
		}

		info, err := svc.Convert(colorParam)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, info)
	}
}

// gradientHandler returns an interpolated color list between two endpoints.
func gradientHandler(svc *service.GradientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := strings.TrimSpace(r.URL.Query().Get("from"))
		to := strings.TrimSpace(r.URL.Query().Get("to"))
		if from == "" || to == "" {
			http.Error(w, "missing required query params: from, to", http.StatusBadRequest)
			return
		}
		steps, err := intParam(r, "steps", 16)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		colors, err := svc.Gradient(from, to, steps)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{
			"from":   from,
			"to":     to,
			"steps":  steps,
			"colors": colors,
		})
	}
}

// transitionHandler returns a multi-stop transition color list.
func transitionHandler(svc *service.GradientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		colorsParam := strings.TrimSpace(r.URL.Query().Get("colors"))
		if colorsParam == "" {
			http.Error(w, "missing required query param: colors", http.StatusBadRequest)
			return
		}
		stops := strings.Split(colorsParam, ",")
		for i := range stops {
			stops[i] = strings.TrimSpace(stops[i])
		}

		steps, err := intParam(r, "steps", 16)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		colors, err := svc.Transition(stops, steps)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{
			"stops":  stops,
			"steps":  steps,
			"colors": colors,
		})
	}
}

// gradientStripHandler renders a gradient preview strip as PNG.
func gradientStripHandler(svc *service.GradientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := chi.URLParam(r, "from")
		to := chi.URLParam(r, "to")
		steps, err := strconv.Atoi(chi.URLParam(r, "steps"))
		if err != nil {
			http.Error(w, "invalid steps", http.StatusBadRequest)
			return
		}

		data, err := svc.GradientStrip(from, to, steps)
		if err != nil {
			writeError(w, err)
			return
		}
		writePNG(w, data)
	}
}

// palettesHandler returns all registered palettes.
func palettesHandler(svc *service.GradientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"palettes": svc.Palettes(),
		})
	}
}

// paletteHandler returns a single palette by name.
func paletteHandler(svc *service.GradientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetPalette(chi.URLParam(r, "name"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, p)
	}
}

// savePaletteHandler registers and persists a user palette.
func savePaletteHandler(svc *service.GradientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p palette.Palette
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			http.Error(w, "palette name is required", http.StatusBadRequest)
			return
		}

		if err := svc.SavePalette(p); err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"status": "saved", "name": p.Name})
	}
}

// deletePaletteHandler removes a user palette.
func deletePaletteHandler(svc *service.GradientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeletePalette(chi.URLParam(r, "name")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// paletteStripHandler renders a palette preview strip as PNG.
func paletteStripHandler(svc *service.GradientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		steps, err := strconv.Atoi(chi.URLParam(r, "steps"))
		if err != nil {
			http.Error(w, "invalid steps", http.StatusBadRequest)
			return
		}

		data, err := svc.PaletteStrip(name, steps)
		if err != nil {
			writeError(w, err)
			return
		}
		writePNG(w, data)
	}
}

// exportPalettesHandler streams a zstd-compressed snapshot of saved palettes.
func exportPalettesHandler(svc *service.GradientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := svc.ExportPalettes()
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/zstd")
		w.Header().Set("Content-Disposition", `attachment; filename="palettes.json.zst"`)
		w.Write(data)
	}
}

// importPalettesHandler loads palettes from an uploaded snapshot.
func importPalettesHandler(svc *service.GradientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 8<<20))
		if err != nil {
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}

		n, err := svc.ImportPalettes(data)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]int{"imported": n})
	}
}

// statsHandler returns cache statistics.
func statsHandler(svc *service.GradientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.CacheStats())
	}
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid query param: " + name)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// writeError maps library errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, colorconv.ErrInvalidFormat),
		errors.Is(err, gradient.ErrBadCount),
		errors.Is(err, gradient.ErrTooFewColors),
		errors.Is(err, gradient.ErrStepBudget),
		errors.Is(err, palette.ErrBadPalette):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, palette.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, palette.ErrBuiltIn):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
