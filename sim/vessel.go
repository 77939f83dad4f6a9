package sim

import (
	"github.com/automoto/orbitsync/components"
	"github.com/automoto/orbitsync/netinterp"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
)

// vessel is a vessel entry seen through netinterp.Vessel.
type vessel struct {
	w     *World
	entry *donburi.Entry
}

func (v *vessel) data() *components.VesselData {
	return components.Vessel.Get(v.entry)
}

func (v *vessel) orbit() *components.OrbitData {
	return components.Orbit.Get(v.entry)
}

func (v *vessel) ID() uuid.UUID { return v.data().ID }

func (v *vessel) Loaded() bool { return v.data().Loaded }

func (v *vessel) IsEVA() bool { return v.data().EVA }

func (v *vessel) Situation() components.Situation { return v.data().Situation }

func (v *vessel) LandedOrSplashed() bool {
	d := v.data()
	return d.Landed || d.Splashed
}

func (v *vessel) Live() netinterp.LiveState {
	d, o := v.data(), v.orbit()
	return netinterp.LiveState{
		BodyIndex:         d.BodyIndex,
		Landed:            d.Landed,
		Splashed:          d.Splashed,
		SrfRelRotation:    d.SrfRelRotation,
		SurfaceVelocity:   d.SurfaceVelocity,
		LatLonAlt:         [3]float64{d.Latitude, d.Longitude, d.Altitude},
		TerrainNormal:     d.TerrainNormal,
		Orbit:             o.Elements(o.BodyIndex),
		HeightFromTerrain: d.HeightFromTerrain,
	}
}

func (v *vessel) LatLonAlt() [3]float64 {
	d := v.data()
	return [3]float64{d.Latitude, d.Longitude, d.Altitude}
}

func (v *vessel) SetLatLonAlt(lat, lon, alt float64) {
	d := v.data()
	d.Latitude, d.Longitude, d.Altitude = lat, lon, alt
}

func (v *vessel) SetLanded(landed bool) { v.data().Landed = landed }

func (v *vessel) SetSplashed(splashed bool) { v.data().Splashed = splashed }

func (v *vessel) SetSurfaceRotation(srfRel mgl64.Quat) { v.data().SrfRelRotation = srfRel }

func (v *vessel) SetRotation(rot mgl64.Quat) { v.data().Rotation = rot }

func (v *vessel) SetSurfaceVelocity(vel mgl64.Vec3) { v.data().SurfaceVelocity = vel }

func (v *vessel) SetPosition(pos mgl64.Vec3) { v.data().Position = pos }

func (v *vessel) SetStaticPressure(kPa float64) { v.data().StaticPressure = kPa }

func (v *vessel) SetHeightFromTerrain(height float32) { v.data().HeightFromTerrain = height }

func (v *vessel) UpdateOrbitFromStateVectors(pos, vel mgl64.Vec3, b netinterp.Body, ut float64) {
	o := v.orbit()
	o.UpdateFromStateVectors(pos, vel, b, ut)
	o.BodyIndex = b.Index()
	v.data().BodyIndex = b.Index()
}

// UpdateFromParameters places the vessel where its orbit puts it now.
func (v *vessel) UpdateFromParameters() {
	o := v.orbit()
	b, ok := v.w.body(o.BodyIndex)
	if !ok {
		return
	}
	orb := o.Orbit
	orb.ReferenceBody = b
	if !orb.Valid() {
		return
	}
	ut := v.w.clock.UniversalTime()
	v.data().Position = b.PositionAt(ut).Add(orb.RelativePositionAt(ut))
}

func (v *vessel) SetProtoValues(s *netinterp.Snapshot) {
	components.Proto.SetValue(v.entry, components.ProtoData{
		Latitude:      s.LatLonAlt[0],
		Longitude:     s.LatLonAlt[1],
		Altitude:      s.LatLonAlt[2],
		Height:        s.HeightFromTerrain,
		Normal:        s.NormalVector,
		Rotation:      s.SrfRelRotation,
		OrbitSnapshot: s.Orbit,
	})
}

func (v *vessel) RecomputeKinematics() {
	v.w.refresh(v.entry)
}
