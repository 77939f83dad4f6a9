package systems

import (
	"github.com/automoto/orbitsync/config"
	"github.com/automoto/orbitsync/netinterp"
	"github.com/automoto/orbitsync/network"
	"github.com/automoto/orbitsync/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// NewInterpolationSystem returns the update system that moves remote vessels:
// buffered network events are applied, every session advances one tick and
// the world refreshes the state derived from the new positions.
func NewInterpolationSystem(client *network.Client, dispatcher *network.Dispatcher, registry *netinterp.Registry, world *sim.World) func(*ecs.ECS) {
	return func(_ *ecs.ECS) {
		dispatcher.Apply(client.DrainEvents())

		registry.Advance(1 / float64(ebiten.TPS()))

		world.Update()
		world.RecordTrails(config.Viewer.TrailLength)
	}
}
