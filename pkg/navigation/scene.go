package navigation

import (
	"sort"

	"github.com/go-drift/cardstack/pkg/errors"
)

// Scene is the transitioner's lifecycle-tagged projection of a route.
//
// A scene's Index is fixed at creation and never changes, even when the
// stack is later truncated beneath it while it animates out.
type Scene struct {
	// Key mirrors the route key.
	Key string
	// Index is the route's position in the stack the scene was created from.
	Index int
	// Route is the owning route.
	Route *Route
	// IsActive is true for exactly one scene: the top of the current stack.
	IsActive bool
	// IsStale is true once the route left the stack but is still animating out.
	IsStale bool
	// IsPurged copies the route's purge flag at reconciliation time.
	IsPurged bool
}

func newScene(route *Route, index int, stale, active bool) *Scene {
	return &Scene{
		Key:      route.Key,
		Index:    index,
		Route:    route,
		IsActive: active,
		IsStale:  stale,
		IsPurged: route.IsPurged,
	}
}

func scenesShallowEqual(a, b *Scene) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.Key == b.Key &&
		a.Index == b.Index &&
		a.IsActive == b.IsActive &&
		a.IsStale == b.IsStale &&
		a.IsPurged == b.IsPurged &&
		routesShallowEqual(a.Route, b.Route)
}

// SameScenes reports whether two scene lists hold the same scene objects in
// the same order. Reconcile returns its input unchanged when nothing moved,
// so this is the cheap "nothing to do" check for observers.
func SameScenes(a, b []*Scene) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// keyedScenes keeps scenes by key in first-seen order. Setting an existing
// key replaces the scene but keeps its slot.
type keyedScenes struct {
	order []string
	byKey map[string]*Scene
}

func newKeyedScenes(n int) *keyedScenes {
	return &keyedScenes{byKey: make(map[string]*Scene, n)}
}

func (k *keyedScenes) set(s *Scene) {
	if _, ok := k.byKey[s.Key]; !ok {
		k.order = append(k.order, s.Key)
	}
	k.byKey[s.Key] = s
}

func (k *keyedScenes) has(key string) bool {
	_, ok := k.byKey[key]
	return ok
}

func (k *keyedScenes) remove(key string) {
	delete(k.byKey, key)
}

func (k *keyedScenes) each(fn func(*Scene)) {
	for _, key := range k.order {
		if s, ok := k.byKey[key]; ok {
			fn(s)
		}
	}
}

// Reconcile maps the previous scene list and a new stack snapshot to the
// next scene list.
//
// Routes that left the stack since prevStack stay in the list as stale
// scenes so they can keep animating out. Scenes whose key, index, flags and
// route payload are unchanged are reused by identity, and when every scene
// is unchanged the input slice itself is returned.
//
// Reconcile panics with a KindInvariant *errors.NavError when the result
// has no active scene. Duplicate route keys are not detected; the last
// route with a given key wins.
func Reconcile(scenes []*Scene, next, prevStack *Stack) []*Scene {
	if next == prevStack || stacksEqual(next, prevStack) {
		return scenes
	}

	prevByKey := make(map[string]*Scene, len(scenes))
	stale := newKeyedScenes(len(scenes))
	for _, s := range scenes {
		if s.IsStale {
			stale.set(s)
		}
		prevByKey[s.Key] = s
	}

	nextIndex := -1
	fresh := newKeyedScenes(next.Len())
	if next != nil {
		nextIndex = next.Index
		for i, route := range next.Routes {
			stale.remove(route.Key)
			fresh.set(newScene(route, i, false, i == nextIndex))
		}
	}

	if prevStack != nil {
		for i, route := range prevStack.Routes {
			if fresh.has(route.Key) {
				continue
			}
			stale.set(newScene(route, i, true, false))
		}
	}

	nextScenes := make([]*Scene, 0, len(stale.order)+len(fresh.order))
	merge := func(candidate *Scene) {
		if prev, ok := prevByKey[candidate.Key]; ok && scenesShallowEqual(prev, candidate) {
			nextScenes = append(nextScenes, prev)
			return
		}
		nextScenes = append(nextScenes, candidate)
	}
	stale.each(merge)
	fresh.each(merge)

	sort.SliceStable(nextScenes, func(i, j int) bool {
		return compareScenes(nextScenes[i], nextScenes[j]) < 0
	})

	active := 0
	for i, s := range nextScenes {
		isActive := !s.IsStale && s.Index == nextIndex
		if isActive != s.IsActive {
			cp := *s
			cp.IsActive = isActive
			nextScenes[i] = &cp
		}
		if isActive {
			active++
		}
	}
	if active == 0 && len(nextScenes) > 0 {
		panic(errors.Invariant("navigation.Reconcile", errors.ErrNoActiveScene))
	}

	if len(nextScenes) != len(scenes) {
		return nextScenes
	}
	for i := range nextScenes {
		if !scenesShallowEqual(scenes[i], nextScenes[i]) {
			return nextScenes
		}
	}
	return scenes
}

// ScenesFromStack builds a fresh scene list straight from a snapshot, with
// no stale scenes. The transitioner uses it when routes beneath the active
// one were removed and nothing visible changes.
func ScenesFromStack(stack *Stack) []*Scene {
	if stack == nil {
		return nil
	}
	seen := newKeyedScenes(len(stack.Routes))
	for i, route := range stack.Routes {
		seen.set(newScene(route, i, false, i == stack.Index))
	}
	scenes := make([]*Scene, 0, len(seen.order))
	seen.each(func(s *Scene) { scenes = append(scenes, s) })
	sort.SliceStable(scenes, func(i, j int) bool {
		return compareScenes(scenes[i], scenes[j]) < 0
	})
	return scenes
}

// compareScenes orders by index, then by key with shorter keys first.
func compareScenes(a, b *Scene) int {
	if a.Index != b.Index {
		if a.Index < b.Index {
			return -1
		}
		return 1
	}
	return compareKeys(a.Key, b.Key)
}

func compareKeys(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// activeScene returns the active scene. A non-empty list without one is an
// invariant violation and panics.
func activeScene(scenes []*Scene) *Scene {
	for _, s := range scenes {
		if s.IsActive {
			return s
		}
	}
	panic(errors.Invariant("navigation.activeScene", errors.ErrNoActiveScene))
}

// withoutStale drops stale scenes. When none are stale the input slice is
// returned so observers can detect the no-op by identity.
func withoutStale(scenes []*Scene) []*Scene {
	kept := make([]*Scene, 0, len(scenes))
	for _, s := range scenes {
		if !s.IsStale {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(scenes) {
		return scenes
	}
	return kept
}
