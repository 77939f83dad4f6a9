package systems

import (
	"github.com/automoto/orbitsync/components"
	"github.com/automoto/orbitsync/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// NewCameraSystem returns an update system that keeps the map centred on the
// focused vessel, or on fallbackBody when nothing is focused.
func NewCameraSystem(world *sim.World, fallbackBody int) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		cameraEntry, ok := components.Camera.First(e.World)
		if !ok {
			return
		}
		camera := components.Camera.Get(cameraEntry)
		camera.Step(1 / float32(ebiten.TPS()))

		if focus, ok := world.Focus(); ok {
			camera.Center = focus
			return
		}
		if pos, ok := world.BodyPosition(fallbackBody); ok {
			camera.Center = pos
		}
	}
}
