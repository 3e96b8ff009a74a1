package screen

// Registry is a fixed mapping from a screen identifier to a renderable unit.
// The unit type is opaque to the registry; the kiosk shell registers
// screen-model builders, tests register whatever they need.
type Registry[T any] struct {
	entries map[ID]T
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[ID]T)}
}

// Register binds a renderable unit to a screen identifier. Identifiers
// outside the closed screen set are rejected so a typo cannot create a
// screen that navigation would then refuse to reach.
func (r *Registry[T]) Register(id ID, unit T) bool {
	if !Known(id) {
		return false
	}
	r.entries[id] = unit
	return true
}

// Lookup returns the renderable unit for id.
func (r *Registry[T]) Lookup(id ID) (T, bool) {
	unit, ok := r.entries[id]
	return unit, ok
}

// Has reports whether a unit has been registered for id.
func (r *Registry[T]) Has(id ID) bool {
	_, ok := r.entries[id]
	return ok
}

// IDs returns the identifiers with registered units, in registry order.
func (r *Registry[T]) IDs() []ID {
	out := make([]ID, 0, len(r.entries))
	for _, id := range all {
		if _, ok := r.entries[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
