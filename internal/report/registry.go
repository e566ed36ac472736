package report

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps output format names to Renderer implementations.
type Registry struct {
	entries []entry
}

type entry struct {
	format   string
	renderer Renderer
}

// NewRegistry creates an empty renderer registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns a registry with the text, table, json and yaml renderers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("text", TextRenderer{})
	r.Register("table", TableRenderer{})
	r.Register("json", JSONRenderer{})
	r.Register("yaml", YAMLRenderer{})
	return r
}

// Register associates a format name (e.g., "json") with a renderer.
// Registering a name twice replaces the earlier renderer.
func (r *Registry) Register(format string, rd Renderer) {
	format = strings.ToLower(format)
	for i, e := range r.entries {
		if e.format == format {
			r.entries[i].renderer = rd
			return
		}
	}
	r.entries = append(r.entries, entry{format: format, renderer: rd})
}

// Lookup returns the renderer registered for format, ignoring case.
// Returns an error if no matching renderer is registered.
func (r *Registry) Lookup(format string) (Renderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	for _, e := range r.entries {
		if e.format == format {
			return e.renderer, nil
		}
	}
	return nil, fmt.Errorf("unknown output format %q (available: %s)", format, strings.Join(r.Formats(), ", "))
}

// Formats returns the registered format names in sorted order.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.format)
	}
	sort.Strings(names)
	return names
}
