// Package sim is the local simulation remote vessels are written into: a
// donburi world of celestial bodies and vessels.
package sim

import (
	"fmt"
	"sort"

	"github.com/automoto/orbitsync/archetypes"
	"github.com/automoto/orbitsync/components"
	"github.com/automoto/orbitsync/config"
	"github.com/automoto/orbitsync/logging"
	"github.com/automoto/orbitsync/netinterp"
	"github.com/automoto/orbitsync/orbit"
	"github.com/automoto/orbitsync/shared/messages"
	"github.com/automoto/orbitsync/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// Clock is the source of universal time for the simulation.
type Clock interface {
	UniversalTime() float64
}

// World implements netinterp.Adapter on top of a donburi world. It belongs
// to the tick goroutine.
type World struct {
	world donburi.World
	clock Clock
	log   *logrus.Entry

	bodies  map[int]donburi.Entity
	vessels map[uuid.UUID]donburi.Entity

	controlled uuid.UUID
	spectated  uuid.UUID
}

// NewWorld wraps w and adds bodies to it.
func NewWorld(w donburi.World, clock Clock, bodies []components.BodyData) (*World, error) {
	sw := &World{
		world:   w,
		clock:   clock,
		log:     logging.For("sim"),
		bodies:  make(map[int]donburi.Entity, len(bodies)),
		vessels: make(map[uuid.UUID]donburi.Entity),
	}
	for _, b := range bodies {
		if err := sw.AddBody(b); err != nil {
			return nil, err
		}
	}
	return sw, nil
}

// Donburi returns the underlying world.
func (w *World) Donburi() donburi.World { return w.world }

// AddBody adds a celestial body. Parents must be added before their moons.
func (w *World) AddBody(data components.BodyData) error {
	if _, ok := w.bodies[data.Index]; ok {
		return fmt.Errorf("body %d already exists", data.Index)
	}
	if data.Parent >= 0 {
		if _, ok := w.bodies[data.Parent]; !ok {
			return fmt.Errorf("parent %d of body %s not found", data.Parent, data.Name)
		}
	}
	entry := archetypes.Body.Spawn(w.world)
	components.Body.SetValue(entry, data)
	w.bodies[data.Index] = entry.Entity()
	return nil
}

func (w *World) body(index int) (*body, bool) {
	e, ok := w.bodies[index]
	if !ok || !w.world.Valid(e) {
		return nil, false
	}
	return &body{w: w, entry: w.world.Entry(e)}, true
}

// Body resolves a body by index.
func (w *World) Body(index int) (netinterp.Body, bool) {
	b, ok := w.body(index)
	if !ok {
		return nil, false
	}
	return b, true
}

// FindVessel resolves a vessel by id.
func (w *World) FindVessel(id uuid.UUID) (netinterp.Vessel, bool) {
	entry, ok := w.vesselEntry(id)
	if !ok {
		return nil, false
	}
	return &vessel{w: w, entry: entry}, true
}

func (w *World) vesselEntry(id uuid.UUID) (*donburi.Entry, bool) {
	e, ok := w.vessels[id]
	if !ok || !w.world.Valid(e) {
		return nil, false
	}
	return w.world.Entry(e), true
}

// IsLocallyControlled reports whether the local player flies id.
func (w *World) IsLocallyControlled(id uuid.UUID) bool {
	return w.controlled != uuid.Nil && w.controlled == id
}

// IsSpectating reports whether the viewer is following id.
func (w *World) IsSpectating(id uuid.UUID) bool {
	return w.spectated != uuid.Nil && w.spectated == id
}

// SetControlled marks id as flown by the local player, uuid.Nil for none.
func (w *World) SetControlled(id uuid.UUID) {
	w.untag(w.controlled, tags.Controlled)
	w.controlled = id
	w.tag(id, tags.Controlled)
}

// Spectate follows id, uuid.Nil to stop.
func (w *World) Spectate(id uuid.UUID) {
	w.untag(w.spectated, tags.Spectated)
	w.spectated = id
	w.tag(id, tags.Spectated)
}

// Spectated returns the followed vessel, uuid.Nil when none.
func (w *World) Spectated() uuid.UUID { return w.spectated }

func (w *World) tag(id uuid.UUID, t donburi.IComponentType) {
	if entry, ok := w.vesselEntry(id); ok && !entry.HasComponent(t) {
		entry.AddComponent(t)
	}
}

func (w *World) untag(id uuid.UUID, t donburi.IComponentType) {
	if entry, ok := w.vesselEntry(id); ok && entry.HasComponent(t) {
		entry.RemoveComponent(t)
	}
}

// SpawnVessel creates a vessel at the state described by msg. It returns
// false when the vessel already exists.
func (w *World) SpawnVessel(msg messages.VesselPosition, eva bool) (bool, error) {
	if _, ok := w.vesselEntry(msg.VesselID); ok {
		return false, nil
	}
	b, ok := w.body(msg.BodyIndex)
	if !ok {
		return false, fmt.Errorf("spawn vessel %s: body %d not found", msg.VesselID, msg.BodyIndex)
	}
	orbitBody, ok := w.body(int(msg.Orbit[7]))
	if !ok {
		return false, fmt.Errorf("spawn vessel %s: orbit body %d not found", msg.VesselID, int(msg.Orbit[7]))
	}

	entry := archetypes.Vessel.Spawn(w.world)
	r := msg.SrfRelRotation
	srfRel := mgl64.Quat{W: float64(r[3]), V: mgl64.Vec3{float64(r[0]), float64(r[1]), float64(r[2])}}

	components.Vessel.SetValue(entry, components.VesselData{
		ID:                msg.VesselID,
		BodyIndex:         msg.BodyIndex,
		EVA:               eva,
		Landed:            msg.Landed,
		Splashed:          msg.Splashed,
		Latitude:          msg.LatLonAlt[0],
		Longitude:         msg.LatLonAlt[1],
		Altitude:          msg.LatLonAlt[2],
		HeightFromTerrain: msg.HeightFromTerrain,
		TerrainNormal:     mgl64.Vec3(msg.NormalVector),
		SrfRelRotation:    srfRel,
		Rotation:          b.Rotation().Mul(srfRel),
		SurfaceVelocity:   mgl64.Vec3(msg.Velocity),
	})
	components.Orbit.SetValue(entry, components.OrbitData{
		Orbit:     orbit.FromElements(msg.Orbit, orbitBody),
		BodyIndex: orbitBody.Index(),
	})
	w.vessels[msg.VesselID] = entry.Entity()

	v := &vessel{w: w, entry: entry}
	v.SetProtoValues(netinterp.SnapshotFromMessage(msg))
	if v.LandedOrSplashed() {
		v.SetPosition(b.SurfacePosition(msg.LatLonAlt[0], msg.LatLonAlt[1], msg.LatLonAlt[2]))
	} else {
		v.UpdateFromParameters()
	}
	w.refresh(entry)

	// Control and spectating may be announced before the vessel shows up.
	if msg.VesselID == w.controlled {
		w.tag(msg.VesselID, tags.Controlled)
	}
	if msg.VesselID == w.spectated {
		w.tag(msg.VesselID, tags.Spectated)
	}

	w.log.WithFields(logrus.Fields{
		"vessel": msg.VesselID.String(),
		"body":   msg.BodyIndex,
	}).Info("vessel spawned")
	return true, nil
}

// RemoveVessel deletes a vessel, reporting whether it existed.
func (w *World) RemoveVessel(id uuid.UUID) bool {
	entry, ok := w.vesselEntry(id)
	if !ok {
		return false
	}
	w.world.Remove(entry.Entity())
	delete(w.vessels, id)
	if w.spectated == id {
		w.spectated = uuid.Nil
	}
	if w.controlled == id {
		w.controlled = uuid.Nil
	}
	return true
}

// VesselCount returns the number of vessels.
func (w *World) VesselCount() int { return len(w.vessels) }

// Update refreshes derived vessel state after every remote vessel was
// written for this tick.
func (w *World) Update() {
	focus, hasFocus := w.focusPosition()
	tags.Vessel.Each(w.world, func(entry *donburi.Entry) {
		w.refresh(entry)
		d := components.Vessel.Get(entry)
		d.Loaded = hasFocus && d.Position.Sub(focus).Len() <= config.Sim.LoadDistance
	})
}

func (w *World) focusPosition() (mgl64.Vec3, bool) {
	id := w.spectated
	if id == uuid.Nil {
		id = w.controlled
	}
	entry, ok := w.vesselEntry(id)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return components.Vessel.Get(entry).Position, true
}

// refresh recomputes geodetic coordinates of vessels in flight and the
// situation of every vessel.
func (w *World) refresh(entry *donburi.Entry) {
	d := components.Vessel.Get(entry)
	b, ok := w.body(d.BodyIndex)
	if !ok {
		return
	}
	if !d.Landed && !d.Splashed {
		lla := b.LatLonAlt(d.Position)
		d.Latitude, d.Longitude, d.Altitude = lla[0], lla[1], lla[2]
	}
	d.Situation = situationOf(d, components.Orbit.Get(entry), b.data())
}

func situationOf(d *components.VesselData, o *components.OrbitData, b *components.BodyData) components.Situation {
	switch {
	case d.Landed:
		return components.Landed
	case d.Splashed:
		return components.Splashed
	case b.AtmosphereDepth > 0 && d.Altitude < b.AtmosphereDepth:
		return components.Flying
	case o.Eccentricity >= 1:
		return components.Escaping
	case o.SemiMajorAxis*(1-o.Eccentricity) < b.Radius+b.AtmosphereDepth:
		return components.SubOrbital
	default:
		return components.Orbiting
	}
}

// BodyPosition returns the inertial position of a body's centre now.
func (w *World) BodyPosition(index int) (mgl64.Vec3, bool) {
	b, ok := w.body(index)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return b.PositionAt(w.clock.UniversalTime()), true
}

// Focus returns the position the viewer is centred on: the spectated vessel,
// else the controlled one.
func (w *World) Focus() (mgl64.Vec3, bool) {
	return w.focusPosition()
}

// SpectateNext follows the vessel after the current one in id order,
// wrapping around. It returns uuid.Nil when there are no vessels.
func (w *World) SpectateNext() uuid.UUID {
	if len(w.vessels) == 0 {
		w.Spectate(uuid.Nil)
		return uuid.Nil
	}
	ids := make([]uuid.UUID, 0, len(w.vessels))
	for id := range w.vessels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	next := ids[0]
	for i, id := range ids {
		if id == w.spectated {
			next = ids[(i+1)%len(ids)]
			break
		}
	}
	w.Spectate(next)
	return next
}

// RecordTrails appends every vessel's position to its trail, keeping the
// newest limit samples.
func (w *World) RecordTrails(limit int) {
	if limit <= 0 {
		return
	}
	tags.Vessel.Each(w.world, func(entry *donburi.Entry) {
		trail := components.Trail.Get(entry)
		trail.Points = append(trail.Points, components.Vessel.Get(entry).Position)
		if n := len(trail.Points); n > limit {
			trail.Points = append(trail.Points[:0], trail.Points[n-limit:]...)
		}
	})
}
