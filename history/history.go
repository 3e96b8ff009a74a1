// Package history mirrors session store transitions into the host's native
// navigation history and feeds native back/forward signals back into the
// store without re-triggering a push.
package history

import (
	"github.com/motorlane/kiosk/screen"
)

// Entry is what the kiosk stores in, and retrieves from, a native history
// slot. The entry active in native history must always describe the
// currently rendered screen.
type Entry struct {
	Screen    screen.ID `json:"screen"`
	Index     int       `json:"index"`
	SubRoute  string    `json:"subRoute,omitempty"`
	FullRoute string    `json:"fullRoute,omitempty"`
}

// Handler receives native back/forward events. A nil entry means the
// visitor navigated past the journey's first entry, or the host discarded
// the stored state.
type Handler func(entry *Entry)

// Native is the boundary to the host environment's history mechanism. The
// kiosk shell uses the in-process Memory implementation; an embedded
// browser host would adapt its pushState/replaceState/popstate here.
type Native interface {
	// Push appends a new history entry and makes it current.
	Push(entry Entry, label, fragment string) error
	// Replace overwrites the current history entry in place.
	Replace(entry Entry, label, fragment string) error
	// Subscribe registers the handler for navigated events. One handler is
	// enough; later calls replace the earlier one.
	Subscribe(h Handler)
}

// fullRoute derives the visible route for an entry, e.g.
// "/journey/inventory" or "/journey/modelBudget/budget".
func fullRoute(id screen.ID, subRoute string) string {
	route := "/journey/" + string(id)
	if subRoute != "" {
		route += "/" + subRoute
	}
	return route
}
