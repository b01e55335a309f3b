package ecs

// StateStats summarizes the contents of a State.
type StateStats struct {
	EntityCount        int
	VisibleEntityCount int
	ComponentCount     int
	LinkCount          int
	NativeTypes        []NativeTypeStats
}

// NativeTypeStats counts the visible components of one native type.
type NativeTypeStats struct {
	Name         string
	VisibleCount int
}

// CollectStats gathers counts over the whole State.
func (s *State) CollectStats() StateStats {
	stats := StateStats{
		EntityCount:    s.entities.Len(),
		ComponentCount: s.components.Len(),
		LinkCount:      s.links.Len(),
	}

	for rec := range s.entities.Values() {
		if rec.visible {
			stats.VisibleEntityCount++
		}
	}

	for _, name := range s.NativeTypes() {
		stats.NativeTypes = append(stats.NativeTypes, NativeTypeStats{
			Name:         name,
			VisibleCount: s.byNative[name].Len(),
		})
	}
	return stats
}
