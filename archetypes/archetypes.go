package archetypes

import (
	"github.com/automoto/orbitsync/components"
	"github.com/automoto/orbitsync/tags"
	"github.com/yohamta/donburi"
)

var (
	Vessel = newArchetype(
		tags.Vessel,
		components.Vessel,
		components.Orbit,
		components.Proto,
		components.Trail,
	)
	Body = newArchetype(
		tags.Body,
		components.Body,
	)
	Camera = newArchetype(
		components.Camera,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
