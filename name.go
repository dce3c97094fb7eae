package arbor

import "fmt"

// nameDigits is the zero-padded width of the counter suffix.
const nameDigits = 8

// Registry hands out process-unique entity names. Every node constructed
// through the same Registry gets a distinct name; names from different
// registries may collide. The counter is a plain integer (no atomic, arbor
// is single-threaded) and is never reset.
type Registry struct {
	next uint64
}

// NewRegistry creates a Registry whose counter starts at zero.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry backs the package-level constructors.
var DefaultRegistry = NewRegistry()

// NextName returns base followed by an underscore and the zero-padded counter,
// then advances the counter.
func (r *Registry) NextName(base string) string {
	name := fmt.Sprintf("%s_%0*d", base, nameDigits, r.next)
	r.next++
	return name
}

// Issued returns how many names this registry has handed out.
func (r *Registry) Issued() uint64 {
	return r.next
}

// Entity is the identity shared by every scene graph element.
type Entity struct {
	name string
	base string
}

func newEntity(r *Registry, base string) Entity {
	if r == nil {
		r = DefaultRegistry
	}
	return Entity{name: r.NextName(base), base: base}
}

// Name returns the unique generated name.
func (e *Entity) Name() string {
	return e.name
}

// BaseName returns the display name the entity was created with.
func (e *Entity) BaseName() string {
	return e.base
}
