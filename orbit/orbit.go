// Package orbit implements two-body Keplerian orbits: conversion between
// classical elements and Cartesian state vectors around a reference body.
//
// Frames are right-handed and inertial, centred on the reference body, with Z
// along the body's spin axis. Inclination, longitude of the ascending node and
// argument of periapsis are stored in degrees; the mean anomaly is in radians.
package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is the gravitating body an orbit is expressed around.
type Body interface {
	GravParameter() float64
}

// Orbit holds classical orbital elements around ReferenceBody.
type Orbit struct {
	Inclination         float64 // degrees
	Eccentricity        float64
	SemiMajorAxis       float64 // meters, negative for hyperbolic orbits
	LAN                 float64 // degrees
	ArgumentOfPeriapsis float64 // degrees
	MeanAnomalyAtEpoch  float64 // radians
	Epoch               float64 // seconds of universal time

	ReferenceBody Body
}

// New builds an orbit from its elements.
func New(inc, e, sma, lan, argPe, mEp, epoch float64, body Body) Orbit {
	return Orbit{
		Inclination:         inc,
		Eccentricity:        e,
		SemiMajorAxis:       sma,
		LAN:                 lan,
		ArgumentOfPeriapsis: argPe,
		MeanAnomalyAtEpoch:  mEp,
		Epoch:               epoch,
		ReferenceBody:       body,
	}
}

// FromElements builds an orbit from the first seven entries of a packed
// element array (inclination, eccentricity, semi-major axis, LAN, argument of
// periapsis, mean anomaly at epoch, epoch).
func FromElements(el [8]float64, body Body) Orbit {
	return New(el[0], el[1], el[2], el[3], el[4], el[5], el[6], body)
}

// Elements packs the orbit back into the wire layout. The eighth slot carries
// the reference body index supplied by the caller.
func (o Orbit) Elements(bodyIndex int) [8]float64 {
	return [8]float64{
		o.Inclination,
		o.Eccentricity,
		o.SemiMajorAxis,
		o.LAN,
		o.ArgumentOfPeriapsis,
		o.MeanAnomalyAtEpoch,
		o.Epoch,
		float64(bodyIndex),
	}
}

func (o Orbit) mu() float64 {
	if o.ReferenceBody == nil {
		return 0
	}
	return o.ReferenceBody.GravParameter()
}

// Valid reports whether the orbit can be propagated.
func (o Orbit) Valid() bool {
	return o.mu() > 0 && o.SemiMajorAxis != 0 && o.Eccentricity >= 0 &&
		!math.IsNaN(o.SemiMajorAxis) && !math.IsInf(o.SemiMajorAxis, 0)
}

// MeanMotion returns the mean angular motion in radians per second.
func (o Orbit) MeanMotion() float64 {
	a := math.Abs(o.SemiMajorAxis)
	return math.Sqrt(o.mu() / (a * a * a))
}

// Period returns the orbital period in seconds, or +Inf for open orbits.
func (o Orbit) Period() float64 {
	if o.Eccentricity >= 1 {
		return math.Inf(1)
	}
	return 2 * math.Pi / o.MeanMotion()
}

// MeanAnomalyAt returns the mean anomaly at universal time ut.
func (o Orbit) MeanAnomalyAt(ut float64) float64 {
	return o.MeanAnomalyAtEpoch + o.MeanMotion()*(ut-o.Epoch)
}

// TrueAnomalyAt returns the true anomaly (radians) and radius (meters) at ut.
func (o Orbit) TrueAnomalyAt(ut float64) (nu, r float64) {
	e := o.Eccentricity
	a := o.SemiMajorAxis
	m := o.MeanAnomalyAt(ut)

	if e < 1 {
		ea := solveElliptic(m, e)
		nu = 2 * math.Atan2(math.Sqrt(1+e)*math.Sin(ea/2), math.Sqrt(1-e)*math.Cos(ea/2))
		r = a * (1 - e*math.Cos(ea))
		return nu, r
	}

	ha := solveHyperbolic(m, e)
	nu = 2 * math.Atan2(math.Sqrt(e+1)*math.Sinh(ha/2), math.Sqrt(e-1)*math.Cosh(ha/2))
	r = a * (1 - e*math.Cosh(ha))
	return nu, r
}

// rotation maps the perifocal frame onto the body-centred inertial frame.
func (o Orbit) rotation() mgl64.Quat {
	z := mgl64.Vec3{0, 0, 1}
	x := mgl64.Vec3{1, 0, 0}
	return mgl64.QuatRotate(mgl64.DegToRad(o.LAN), z).
		Mul(mgl64.QuatRotate(mgl64.DegToRad(o.Inclination), x)).
		Mul(mgl64.QuatRotate(mgl64.DegToRad(o.ArgumentOfPeriapsis), z))
}

// StateVectorsAt returns position and velocity relative to the reference body.
func (o Orbit) StateVectorsAt(ut float64) (pos, vel mgl64.Vec3) {
	if !o.Valid() {
		return mgl64.Vec3{}, mgl64.Vec3{}
	}
	e := o.Eccentricity
	nu, r := o.TrueAnomalyAt(ut)
	p := o.SemiMajorAxis * (1 - e*e)

	sin, cos := math.Sincos(nu)
	pf := mgl64.Vec3{r * cos, r * sin, 0}
	k := math.Sqrt(o.mu() / p)
	vf := mgl64.Vec3{-k * sin, k * (e + cos), 0}

	q := o.rotation()
	return q.Rotate(pf), q.Rotate(vf)
}

// RelativePositionAt returns the position relative to the reference body at ut.
func (o Orbit) RelativePositionAt(ut float64) mgl64.Vec3 {
	pos, _ := o.StateVectorsAt(ut)
	return pos
}

// OrbitalVelocityAt returns the velocity relative to the reference body at ut.
func (o Orbit) OrbitalVelocityAt(ut float64) mgl64.Vec3 {
	_, vel := o.StateVectorsAt(ut)
	return vel
}

// UpdateFromStateVectors recomputes every element from a position and velocity
// relative to body at universal time ut. The resulting orbit reproduces pos and
// vel at ut.
func (o *Orbit) UpdateFromStateVectors(pos, vel mgl64.Vec3, body Body, ut float64) {
	o.ReferenceBody = body
	o.Epoch = ut

	mu := o.mu()
	r := pos.Len()
	if mu <= 0 || r == 0 {
		o.SemiMajorAxis = 0
		return
	}

	h := pos.Cross(vel)
	hLen := h.Len()
	v2 := vel.LenSqr()

	ev := pos.Mul(v2 - mu/r).Sub(vel.Mul(pos.Dot(vel))).Mul(1 / mu)
	e := ev.Len()
	if math.Abs(e-1) < parabolicGuard {
		// Exactly parabolic trajectories have no finite semi-major axis.
		e = 1 - parabolicGuard
	}
	energy := v2/2 - mu/r
	o.SemiMajorAxis = -mu / (2 * energy)
	o.Eccentricity = e

	var hHat mgl64.Vec3
	if hLen > 0 {
		hHat = h.Mul(1 / hLen)
	} else {
		hHat = mgl64.Vec3{0, 0, 1}
	}
	o.Inclination = mgl64.RadToDeg(math.Acos(mgl64.Clamp(hHat.Z(), -1, 1)))

	node := mgl64.Vec3{-h.Y(), h.X(), 0}
	var nHat mgl64.Vec3
	if nLen := node.Len(); nLen > nodeEpsilon*hLen {
		nHat = node.Mul(1 / nLen)
		o.LAN = mgl64.RadToDeg(wrapTwoPi(math.Atan2(nHat.Y(), nHat.X())))
	} else {
		// Equatorial: the node line is undefined, pin it to +X.
		nHat = mgl64.Vec3{1, 0, 0}
		o.LAN = 0
	}
	qHat := hHat.Cross(nHat)

	u := math.Atan2(pos.Dot(qHat), pos.Dot(nHat))
	var omega float64
	if e > circularEpsilon {
		omega = math.Atan2(ev.Dot(qHat), ev.Dot(nHat))
	}
	nu := u - omega
	o.ArgumentOfPeriapsis = mgl64.RadToDeg(wrapTwoPi(omega))

	if e < 1 {
		ea := 2 * math.Atan2(math.Sqrt(1-e)*math.Sin(nu/2), math.Sqrt(1+e)*math.Cos(nu/2))
		o.MeanAnomalyAtEpoch = ea - e*math.Sin(ea)
		return
	}
	ha := 2 * math.Atanh(math.Sqrt((e-1)/(e+1))*math.Tan(wrapPi(nu)/2))
	o.MeanAnomalyAtEpoch = e*math.Sinh(ha) - ha
}
