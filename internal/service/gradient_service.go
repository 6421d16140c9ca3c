// Package service provides business logic for the gradient server.
package service

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/hueflow/server/internal/cache"
	"github.com/hueflow/server/internal/palette"
	"github.com/hueflow/server/internal/palettestore"
	"github.com/hueflow/server/internal/render"
	"github.com/hueflow/server/pkg/colorconv"
	"github.com/hueflow/server/pkg/gradient"
)

// GradientServiceConfig contains gradient service configuration.
type GradientServiceConfig struct {
	Cache    *cache.Manager
	Renderer *render.StripRenderer
	Registry *palette.Registry
	Store    *palettestore.Store
}

// GradientService computes gradients and transitions, renders preview
// strips, and manages named palettes.
type GradientService struct {
	cache    *cache.Manager
	renderer *render.StripRenderer
	registry *palette.Registry
	store    *palettestore.Store
}

// ColorInfo is the result of a single color conversion.
type ColorInfo struct {
	Hex string        `json:"hex"`
	RGB colorconv.RGB `json:"rgb"`
	HSV colorconv.HSV `json:"hsv"`
}

// NewGradientService creates a new gradient service and loads saved
// palettes from the store into the registry. Saved palettes that no
// longer validate are skipped with a log line rather than failing
// startup.
func NewGradientService(cfg GradientServiceConfig) (*GradientService, error) {
	s := &GradientService{
		cache:    cfg.Cache,
		renderer: cfg.Renderer,
		registry: cfg.Registry,
		store:    cfg.Store,
	}

	if s.store != nil {
		saved, err := s.store.List()
		if err != nil {
			return nil, fmt.Errorf("failed to load saved palettes: %w", err)
		}
		for _, sp := range saved {
			p := palette.Palette{Name: sp.Name, Stops: sp.Stops}
			if err := s.registry.Register(p); err != nil {
				log.Printf("Skipping saved palette %q: %v", sp.Name, err)
			}
		}
	}

	return s, nil
}

// Convert parses a hex color and returns its RGB and HSV forms.
func (s *GradientService) Convert(hex string) (ColorInfo, error) {
	rgb, err := colorconv.ParseHex(hex)
	if err != nil {
		return ColorInfo{}, err
	}
	return ColorInfo{Hex: rgb.Hex(), RGB: rgb, HSV: rgb.HSV()}, nil
}

// Gradient returns steps colors between two endpoints, cache-first.
func (s *GradientService) Gradient(from, to string, steps int) ([]string, error) {
	key := cache.GradientKey(from, to, steps)
	if data, ok := s.cache.GetResult(key); ok {
		return decodeColors(data)
	}

	colors, err := gradient.Gradient(from, to, steps)
	if err != nil {
		return nil, err
	}
	s.cache.SetResult(key, encodeColors(colors))
	return colors, nil
}

// Transition returns totalSteps colors through the given stops, cache-first.
func (s *GradientService) Transition(colors []string, totalSteps int) ([]string, error) {
	key := cache.TransitionKey(colors, totalSteps)
	if data, ok := s.cache.GetResult(key); ok {
		return decodeColors(data)
	}

	out, err := gradient.Transition(colors, totalSteps)
	if err != nil {
		return nil, err
	}
	s.cache.SetResult(key, encodeColors(out))
	return out, nil
}

// GradientStrip renders a PNG preview of a two-endpoint gradient.
// steps <= 0 renders a smooth per-pixel ramp; a positive step count
// renders that many discrete swatches.
func (s *GradientService) GradientStrip(from, to string, steps int) ([]byte, error) {
	key := cache.StripKey(from, to, steps)
	if data, ok := s.cache.GetStrip(key); ok {
		return data, nil
	}

	var data []byte
	var err error
	if steps <= 0 {
		data, err = s.renderer.RenderRamp(from, to)
	} else {
		colors, gerr := s.Gradient(from, to, steps)
		if gerr != nil {
			return nil, gerr
		}
		data, err = s.renderer.RenderStrip(colors)
	}
	if err != nil {
		return nil, err
	}

	if cerr := s.cache.SetStrip(key, data); cerr != nil {
		log.Printf("Failed to cache strip %s: %v", key, cerr)
	}
	return data, nil
}

// Palettes returns all registered palettes.
func (s *GradientService) Palettes() []palette.Palette {
	return s.registry.List()
}

// GetPalette returns a palette by name.
func (s *GradientService) GetPalette(name string) (palette.Palette, error) {
	return s.registry.Get(name)
}

// SavePalette validates, registers, and persists a user palette.
func (s *GradientService) SavePalette(p palette.Palette) error {
	if err := s.registry.Register(p); err != nil {
		return err
	}
	if s.store != nil {
		return s.store.Save(p)
	}
	return nil
}

// DeletePalette removes a user palette from the registry and the store.
func (s *GradientService) DeletePalette(name string) error {
	if err := s.registry.Remove(name); err != nil {
		return err
	}
	if s.store != nil {
		if _, err := s.store.Delete(name); err != nil {
			return err
		}
	}
	return nil
}

// PaletteTransition evaluates a named palette to totalSteps colors.
func (s *GradientService) PaletteTransition(name string, totalSteps int) ([]string, error) {
	p, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return s.Transition(p.Stops, totalSteps)
}

// PaletteStrip renders a PNG preview of a named palette.
func (s *GradientService) PaletteStrip(name string, steps int) ([]byte, error) {
	key := cache.PaletteStripKey(name, steps)
	if data, ok := s.cache.GetStrip(key); ok {
		return data, nil
	}

	colors, err := s.PaletteTransition(name, steps)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.RenderStrip(colors)
	if err != nil {
		return nil, err
	}

	if cerr := s.cache.SetStrip(key, data); cerr != nil {
		log.Printf("Failed to cache palette strip %s: %v", key, cerr)
	}
	return data, nil
}

// ExportPalettes serializes all saved palettes as zstd-compressed JSON.
func (s *GradientService) ExportPalettes() ([]byte, error) {
	if s.store == nil {
		return nil, fmt.Errorf("palette store not configured")
	}
	return s.store.Export()
}

// ImportPalettes loads palettes from a snapshot into the store and the
// registry, returning the number imported.
func (s *GradientService) ImportPalettes(data []byte) (int, error) {
	if s.store == nil {
		return 0, fmt.Errorf("palette store not configured")
	}
	n, err := s.store.Import(data)
	if err != nil {
		return n, err
	}

	saved, err := s.store.List()
	if err != nil {
		return n, err
	}
	for _, sp := range saved {
		if err := s.registry.Register(palette.Palette{Name: sp.Name, Stops: sp.Stops}); err != nil {
			log.Printf("Skipping imported palette %q: %v", sp.Name, err)
		}
	}
	return n, nil
}

// CacheStats returns cache statistics for diagnostics.
func (s *GradientService) CacheStats() map[string]interface{} {
	return s.cache.Stats()
}

func encodeColors(colors []string) []byte {
	data, _ := json.Marshal(colors)
	return data
}

func decodeColors(data []byte) ([]string, error) {
	var colors []string
	if err := json.Unmarshal(data, &colors); err != nil {
		return nil, fmt.Errorf("corrupt cached result: %w", err)
	}
	return colors, nil
}
