package agent

import "sort"

// Persona describes a named agent the service can dispatch.
type Persona struct {
	// Name is the dispatch key clients ask for.
	Name string
	// Greeting opens every session with this persona.
	Greeting string
	// Description is shown in service listings.
	Description string
}

// Registry maps persona names to their definitions. Populated at
// startup and read-only afterwards.
type Registry struct {
	personas map[string]Persona
}

// NewRegistry returns a registry preloaded with the built-in barista.
func NewRegistry() *Registry {
	r := &Registry{personas: make(map[string]Persona)}
	r.Register(Persona{
		Name:        "ember-barista",
		Greeting:    "Welcome to Ember Coffee Shop! What can I get started for you today?",
		Description: "Friendly barista that takes drink orders",
	})
	return r
}

// Register adds or replaces a persona.
func (r *Registry) Register(p Persona) {
	r.personas[p.Name] = p
}

// Lookup finds a persona by name.
func (r *Registry) Lookup(name string) (Persona, bool) {
	p, ok := r.personas[name]
	return p, ok
}

// Names lists registered persona names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.personas))
	for name := range r.personas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
