// Package palette provides named multi-stop color palettes.
package palette

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hueflow/server/pkg/colorconv"
)

var (
	// ErrNotFound reports a palette name with no registered palette.
	ErrNotFound = errors.New("palette not found")
	// ErrBuiltIn reports an attempt to overwrite or delete a built-in palette.
	ErrBuiltIn = errors.New("palette is built-in")
	// ErrBadPalette reports a palette with fewer than two stops or an
	// unparsable stop color.
	ErrBadPalette = errors.New("palette needs at least two valid hex stops")
)

// Palette is an ordered list of hex color stops under a name.
type Palette struct {
	Name    string   `json:"name"`
	Stops   []string `json:"stops"`
	BuiltIn bool     `json:"built_in"`
}

// Builtins returns the built-in palettes in display order.
func Builtins() []Palette {
	return []Palette{
		{Name: "sunset", Stops: []string{"#12063b", "#a63278", "#ff8c42", "#ffd97d"}, BuiltIn: true},
		{Name: "ocean", Stops: []string{"#03045e", "#0077b6", "#00b4d8", "#caf0f8"}, BuiltIn: true},
		{Name: "heat", Stops: []string{"#000004", "#65156e", "#d44842", "#fac127", "#fcffa4"}, BuiltIn: true},
		{Name: "forest", Stops: []string{"#081c15", "#2d6a4f", "#74c69d", "#d8f3dc"}, BuiltIn: true},
		{Name: "rainbow", Stops: []string{"#ff0000", "#ffff00", "#00ff00", "#00ffff", "#0000ff", "#ff00ff"}, BuiltIn: true},
	}
}

// Validate checks that the palette has at least two parsable stops.
func Validate(p Palette) error {
	if len(p.Stops) < 2 {
		return fmt.Errorf("%w: %q has %d stops", ErrBadPalette, p.Name, len(p.Stops))
	}
	for _, stop := range p.Stops {
		if _, err := colorconv.ParseHex(stop); err != nil {
			return fmt.Errorf("%w: %q stop %q", ErrBadPalette, p.Name, stop)
		}
	}
	return nil
}

// Registry holds built-in and user-registered palettes.
type Registry struct {
	mu           sync.RWMutex
	palettes     map[string]Palette
	builtinOrder []string
}

// NewRegistry creates a registry preloaded with the built-in palettes.
func NewRegistry() *Registry {
	r := &Registry{palettes: make(map[string]Palette)}
	for _, p := range Builtins() {
		r.palettes[p.Name] = p
		r.builtinOrder = append(r.builtinOrder, p.Name)
	}
	return r
}

// Get returns the palette with the given name.
func (r *Registry) Get(name string) (Palette, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.palettes[name]
	if !ok {
		return Palette{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p, nil
}

// Register adds or replaces a user palette. Built-in names are protected.
func (r *Registry) Register(p Palette) error {
	if err := Validate(p); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.palettes[p.Name]; ok && existing.BuiltIn {
		return fmt.Errorf("%w: %q", ErrBuiltIn, p.Name)
	}
	p.BuiltIn = false
	r.palettes[p.Name] = p
	return nil
}

// Remove deletes a user palette. Built-in palettes cannot be removed.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.palettes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if p.BuiltIn {
		return fmt.Errorf("%w: %q", ErrBuiltIn, name)
	}
	delete(r.palettes, name)
	return nil
}

// List returns built-in palettes in display order followed by user
// palettes sorted by name.
func (r *Registry) List() []Palette {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Palette, 0, len(r.palettes))
	for _, name := range r.builtinOrder {
		out = append(out, r.palettes[name])
	}

	var custom []string
	for name, p := range r.palettes {
		if !p.BuiltIn {
			custom = append(custom, name)
		}
	}
	sort.Strings(custom)
	for _, name := range custom {
		out = append(out, r.palettes[name])
	}
	return out
}
