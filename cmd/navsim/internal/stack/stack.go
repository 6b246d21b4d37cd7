// Package stack is the host-side state container the simulator navigates
// with. Every mutation returns a fresh snapshot for the transitioner while
// untouched routes keep their identity, so unchanged scenes are reused.
package stack

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/go-drift/cardstack/pkg/navigation"
)

// Host holds the current routes of a navigator.
type Host struct {
	routes []*navigation.Route
	flip   bool
	newKey func() string
}

// Option configures a Host.
type Option func(*Host)

// WithKeyFunc replaces the generated route keys, mostly for tests.
func WithKeyFunc(fn func() string) Option {
	return func(h *Host) { h.newKey = fn }
}

// New creates a host whose stack holds one route per name.
func New(names []string, opts ...Option) (*Host, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("stack: at least one initial route is required")
	}
	h := &Host{newKey: newKey}
	for _, opt := range opts {
		opt(h)
	}
	for _, name := range names {
		h.routes = append(h.routes, h.route(name, false))
	}
	return h, nil
}

func newKey() string {
	return "id-" + uuid.NewString()
}

func (h *Host) route(name string, modal bool) *navigation.Route {
	return &navigation.Route{Key: h.newKey(), Name: name, AnimateFromBottom: modal}
}

// Stack returns the current snapshot.
func (h *Host) Stack() *navigation.Stack {
	routes := make([]*navigation.Route, len(h.routes))
	copy(routes, h.routes)
	return &navigation.Stack{Routes: routes, Index: len(routes) - 1, Flip: h.flip}
}

// Len returns the number of routes.
func (h *Host) Len() int { return len(h.routes) }

// Top returns the active route.
func (h *Host) Top() *navigation.Route { return h.routes[len(h.routes)-1] }

// Push adds a route on top.
func (h *Host) Push(name string, modal bool) *navigation.Stack {
	h.flip = false
	h.routes = append(h.routes, h.route(name, modal))
	return h.Stack()
}

// Pop removes the top route. It reports false, leaving the stack alone,
// when only the root is left.
func (h *Host) Pop() (*navigation.Stack, bool) {
	if len(h.routes) < 2 {
		return h.Stack(), false
	}
	h.flip = false
	h.routes = h.routes[:len(h.routes)-1]
	return h.Stack(), true
}

// Replace swaps the top route for a new one with a fresh key.
func (h *Host) Replace(name string, modal bool) *navigation.Stack {
	h.flip = false
	h.routes[len(h.routes)-1] = h.route(name, modal)
	return h.Stack()
}

// Back removes the route with key and everything above it, the way a
// committed swipe or a keyed back action does. It reports false when key
// is unknown or names the root.
func (h *Host) Back(key string) (*navigation.Stack, bool) {
	for i, r := range h.routes {
		if r.Key != key {
			continue
		}
		if i == 0 {
			return h.Stack(), false
		}
		h.flip = false
		h.routes = h.routes[:i]
		return h.Stack(), true
	}
	return h.Stack(), false
}

// BackTo pops until the most recent route called name is on top.
func (h *Host) BackTo(name string) (*navigation.Stack, bool) {
	for i := len(h.routes) - 1; i >= 0; i-- {
		if h.routes[i].Name != name {
			continue
		}
		if i == len(h.routes)-1 {
			return h.Stack(), false
		}
		return h.Back(h.routes[i+1].Key)
	}
	return h.Stack(), false
}

// Flip pushes a route that is revealed with a flip transition.
func (h *Host) Flip(name string) *navigation.Stack {
	h.routes = append(h.routes, h.route(name, false))
	h.flip = true
	return h.Stack()
}

// FlipBack pops the top route with a flip transition.
func (h *Host) FlipBack() (*navigation.Stack, bool) {
	if len(h.routes) < 2 {
		return h.Stack(), false
	}
	h.routes = h.routes[:len(h.routes)-1]
	h.flip = true
	return h.Stack(), true
}
