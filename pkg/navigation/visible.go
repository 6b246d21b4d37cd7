package navigation

// VisibleSet is what a renderer should draw for a scene list.
type VisibleSet struct {
	// Top is the scene whose chrome is shown on top.
	Top *Scene
	// HideActive is true while the active scene must stay hidden.
	HideActive bool
	// Scenes are the scenes to draw, bottom first.
	Scenes []*Scene
}

// VisibleScenes selects the scenes to draw during the given flip phase.
//
// During the first half of a flip the card beneath the active one is the
// visible top and the active card is hidden. During the second half scenes
// whose route is already stale are skipped. Scenes whose route is purged
// are never drawn.
func VisibleScenes(scenes []*Scene, phase FlipPhase) VisibleSet {
	var set VisibleSet
	if len(scenes) == 0 {
		return set
	}
	set.Top = scenes[len(scenes)-1]
	candidates := scenes

	switch phase {
	case FlipFrom:
		if len(scenes) > 1 {
			set.Top = scenes[len(scenes)-2]
		}
		set.HideActive = true
	case FlipTo:
		candidates = filterScenes(candidates, func(s *Scene) bool { return !s.Route.IsStale })
	}

	set.Scenes = filterScenes(candidates, func(s *Scene) bool { return !s.Route.IsPurged })
	return set
}

// ShouldHide reports whether s must be hidden within this set.
func (v VisibleSet) ShouldHide(s *Scene) bool {
	return v.HideActive && s.IsActive
}

func filterScenes(scenes []*Scene, keep func(*Scene) bool) []*Scene {
	out := make([]*Scene, 0, len(scenes))
	for _, s := range scenes {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
