package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"sort"
	"strings"

	"github.com/nlaracuente/personalspace/internal/level"
)

// LayoutRegistry holds the embedded floor layouts and provides lookup utilities.
type LayoutRegistry struct {
	layouts map[string]*level.Layout
	names   []string
}

// NewLayoutRegistry creates a registry from parsed layouts.
func NewLayoutRegistry(layouts []*level.Layout) *LayoutRegistry {
	registry := &LayoutRegistry{
		layouts: make(map[string]*level.Layout, len(layouts)),
		names:   make([]string, 0, len(layouts)),
	}
	for _, l := range layouts {
		if _, dup := registry.layouts[l.Name]; dup {
			continue
		}
		registry.layouts[l.Name] = l
		registry.names = append(registry.names, l.Name)
	}
	sort.Strings(registry.names)
	return registry
}

// LoadLayoutRegistry parses every embedded .txt layout into a registry.
// A layout is named after its file, minus the extension.
func LoadLayoutRegistry() (*LayoutRegistry, error) {
	files, err := fs.Glob(dataFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("gamedata: list layouts: %w", err)
	}

	layouts := make([]*level.Layout, 0, len(files))
	for _, file := range files {
		text, err := LoadText(file)
		if err != nil {
			return nil, err
		}
		layout, err := level.ParseText(strings.TrimSuffix(file, ".txt"), text)
		if err != nil {
			return nil, fmt.Errorf("gamedata: layout %s: %w", file, err)
		}
		layouts = append(layouts, layout)
	}

	if len(layouts) == 0 {
		return nil, errors.New("gamedata: no layouts embedded")
	}
	return NewLayoutRegistry(layouts), nil
}

// MustLoadLayoutRegistry loads a registry, panicking on error.
func MustLoadLayoutRegistry() *LayoutRegistry {
	registry, err := LoadLayoutRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByName returns the layout with the given name, or nil if not found.
func (r *LayoutRegistry) GetByName(name string) *level.Layout {
	return r.layouts[name]
}

// PickRandom selects one of the embedded layouts uniformly.
func (r *LayoutRegistry) PickRandom(rng *rand.Rand) *level.Layout {
	if len(r.names) == 0 {
		return nil
	}
	return r.layouts[r.names[rng.Intn(len(r.names))]]
}

// Names returns the layout names in sorted order.
func (r *LayoutRegistry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Count returns the number of embedded layouts.
func (r *LayoutRegistry) Count() int {
	return len(r.names)
}
