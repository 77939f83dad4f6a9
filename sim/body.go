package sim

import (
	"math"

	"github.com/automoto/orbitsync/components"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

var zAxis = mgl64.Vec3{0, 0, 1}

// body is a celestial body entry seen through netinterp.Body.
type body struct {
	w     *World
	entry *donburi.Entry
}

func (b *body) data() *components.BodyData {
	return components.Body.Get(b.entry)
}

func (b *body) Index() int { return b.data().Index }

func (b *body) GravParameter() float64 { return b.data().GravParameter }

func (b *body) Radius() float64 { return b.data().Radius }

// Rotation returns the body-fixed to inertial rotation at the current time.
func (b *body) Rotation() mgl64.Quat {
	return b.RotationAt(b.w.clock.UniversalTime())
}

// RotationAt returns the body-fixed to inertial rotation at ut.
func (b *body) RotationAt(ut float64) mgl64.Quat {
	d := b.data()
	angle := d.InitialRotation
	if d.RotationPeriod > 0 {
		angle += 360 * math.Mod(ut/d.RotationPeriod, 1)
	}
	return mgl64.QuatRotate(mgl64.DegToRad(angle), zAxis)
}

func (b *body) parent() (*body, bool) {
	d := b.data()
	if d.Parent < 0 {
		return nil, false
	}
	return b.w.body(d.Parent)
}

// PositionAt returns the inertial position of the body's centre at ut.
func (b *body) PositionAt(ut float64) mgl64.Vec3 {
	p, ok := b.parent()
	if !ok {
		return mgl64.Vec3{}
	}
	o := b.data().Orbit
	o.ReferenceBody = p
	return p.PositionAt(ut).Add(o.RelativePositionAt(ut))
}

// FrameVelAt returns the inertial velocity of the body's centre at ut.
func (b *body) FrameVelAt(ut float64) mgl64.Vec3 {
	p, ok := b.parent()
	if !ok {
		return mgl64.Vec3{}
	}
	o := b.data().Orbit
	o.ReferenceBody = p
	return p.FrameVelAt(ut).Add(o.OrbitalVelocityAt(ut))
}

// SurfacePosition returns the inertial position of a point above the surface.
func (b *body) SurfacePosition(lat, lon, alt float64) mgl64.Vec3 {
	ut := b.w.clock.UniversalTime()
	local := surfaceVector(lat, lon, b.data().Radius+alt)
	return b.PositionAt(ut).Add(b.RotationAt(ut).Rotate(local))
}

// LatLonAlt converts an inertial position to geodetic coordinates.
func (b *body) LatLonAlt(pos mgl64.Vec3) [3]float64 {
	ut := b.w.clock.UniversalTime()
	rel := pos.Sub(b.PositionAt(ut))
	local := b.RotationAt(ut).Inverse().Rotate(rel)
	r := local.Len()
	if r == 0 {
		return [3]float64{0, 0, -b.data().Radius}
	}
	return [3]float64{
		mgl64.RadToDeg(math.Asin(mgl64.Clamp(local.Z()/r, -1, 1))),
		mgl64.RadToDeg(math.Atan2(local.Y(), local.X())),
		r - b.data().Radius,
	}
}

// StaticPressure returns the pressure in kPa at alt, zero outside the
// atmosphere.
func (b *body) StaticPressure(alt float64) float64 {
	d := b.data()
	if d.AtmosphereDepth <= 0 || alt >= d.AtmosphereDepth {
		return 0
	}
	if d.ScaleHeight <= 0 {
		return d.SeaLevelPressure
	}
	if alt < 0 {
		alt = 0
	}
	return d.SeaLevelPressure * math.Exp(-alt/d.ScaleHeight)
}

func surfaceVector(lat, lon, r float64) mgl64.Vec3 {
	sinLat, cosLat := math.Sincos(mgl64.DegToRad(lat))
	sinLon, cosLon := math.Sincos(mgl64.DegToRad(lon))
	return mgl64.Vec3{r * cosLat * cosLon, r * cosLat * sinLon, r * sinLat}
}
