package network

import (
	"github.com/automoto/orbitsync/config"
	"github.com/automoto/orbitsync/logging"
	"github.com/automoto/orbitsync/netinterp"
	"github.com/automoto/orbitsync/shared/messages"
	"github.com/automoto/orbitsync/sim"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Dispatcher applies buffered client events to the simulation on the tick
// goroutine.
type Dispatcher struct {
	world    *sim.World
	registry *netinterp.Registry
	settings *config.InterpolationConfig
	log      *logrus.Entry
}

func NewDispatcher(world *sim.World, registry *netinterp.Registry, settings *config.InterpolationConfig) *Dispatcher {
	return &Dispatcher{
		world:    world,
		registry: registry,
		settings: settings,
		log:      logging.For("network").WithField("stage", "dispatch"),
	}
}

// Apply handles events in order.
func (d *Dispatcher) Apply(events []any) {
	for _, evt := range events {
		switch msg := evt.(type) {
		case messages.VesselPosition:
			d.vesselPosition(msg)
		case messages.VesselRemove:
			d.registry.Remove(msg.VesselID)
			d.world.RemoveVessel(msg.VesselID)
		case messages.VesselControl:
			d.vesselControl(msg)
		case messages.JoinAccepted:
			if msg.SecondaryVesselUpdatesMsInterval > 0 {
				d.settings.SecondaryVesselUpdatesMsInterval = float64(msg.SecondaryVesselUpdatesMsInterval)
			}
		default:
			d.log.Debugf("ignoring event %T", evt)
		}
	}
}

func (d *Dispatcher) vesselPosition(msg messages.VesselPosition) {
	if msg.VesselID == uuid.Nil {
		return
	}
	if _, err := d.world.SpawnVessel(msg, msg.EVA); err != nil {
		d.log.WithError(err).Warn("dropping position of unspawnable vessel")
		return
	}
	d.registry.EnqueueMessage(msg)
}

func (d *Dispatcher) vesselControl(msg messages.VesselControl) {
	if msg.Controlled {
		d.world.SetControlled(msg.VesselID)
		return
	}
	if d.world.IsLocallyControlled(msg.VesselID) {
		d.world.SetControlled(uuid.Nil)
	}
}
