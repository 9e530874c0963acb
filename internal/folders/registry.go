// Package folders holds the static registry of browsable content categories.
// Each entry ties a short internal id, known to the front end, to the Google
// Drive folder that backs it.
package folders

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Descriptor describes one content category.
type Descriptor struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Icon    string `yaml:"icon"`
	DriveID string `yaml:"drive_id"`
}

// Registry is an immutable id -> Descriptor lookup, fixed at startup.
type Registry struct {
	byID  map[string]Descriptor
	order []string
}

func New(descriptors []Descriptor) *Registry {
	r := &Registry{byID: make(map[string]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if _, exists := r.byID[d.ID]; exists {
			continue
		}
		r.byID[d.ID] = d
		r.order = append(r.order, d.ID)
	}
	return r
}

// Load builds the registry. With an empty path the built-in categories are
// used, with their Drive folder ids taken from the environment; otherwise the
// YAML file at path replaces them entirely.
func Load(path string) (*Registry, error) {
	if path == "" {
		return New(defaultDescriptors()), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read folders file %s: %w", path, err)
	}
	var descriptors []Descriptor
	if err := yaml.Unmarshal(data, &descriptors); err != nil {
		return nil, fmt.Errorf("failed to parse folders file %s: %w", path, err)
	}
	return New(descriptors), nil
}

// Resolve is a pure lookup; unknown ids are the caller's client error.
func (r *Registry) Resolve(id string) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// All returns the descriptors in registration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.byID)
}

func defaultDescriptors() []Descriptor {
	return []Descriptor{
		{ID: "keimena", Name: "Κείμενα", Icon: "📁", DriveID: os.Getenv("FOLDER_KEIMENA")},
		{ID: "biblia", Name: "Βιβλία", Icon: "📚", DriveID: os.Getenv("FOLDER_BIBLIA")},
		{ID: "diktya", Name: "Δίκτυα κειμένων", Icon: "🔗", DriveID: os.Getenv("FOLDER_DIKTYA")},
		{ID: "epexergasia", Name: "Επεξεργασία", Icon: "✏️", DriveID: os.Getenv("FOLDER_EPEXERGASIA")},
		{ID: "theoria_glossa", Name: "Θεωρία Ν. Γλώσσας", Icon: "📖", DriveID: os.Getenv("FOLDER_THEORIA_GLOSSA")},
		{ID: "theoria_logotexnia", Name: "Θεωρία Λογοτεχνίας", Icon: "📜", DriveID: os.Getenv("FOLDER_THEORIA_LOGOTEXNIA")},
		{ID: "logotexnia", Name: "Λογοτεχνία", Icon: "🎭", DriveID: os.Getenv("FOLDER_LOGOTEXNIA")},
	}
}
