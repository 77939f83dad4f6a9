package netinterp

import (
	"github.com/go-gl/mathgl/mgl64"
)

// BlendMode selects whether blend fractions past 1 extrapolate or clamp.
type BlendMode int

const (
	Clamped BlendMode = iota
	Unclamped
)

// ModeFor returns Unclamped when extrapolation is enabled.
func ModeFor(extrapolation bool) BlendMode {
	if extrapolation {
		return Unclamped
	}
	return Clamped
}

func (m BlendMode) String() string {
	if m == Unclamped {
		return "unclamped"
	}
	return "clamped"
}

func (m BlendMode) fraction(t float64) float64 {
	if m == Unclamped {
		return t
	}
	return mgl64.Clamp(t, 0, 1)
}

// Lerp blends two scalars. The result is exactly a at t=0 and exactly b at t=1.
func Lerp(mode BlendMode, a, b, t float64) float64 {
	t = mode.fraction(t)
	return a*(1-t) + b*t
}

// LerpVec3 blends two vectors component-wise.
func LerpVec3(mode BlendMode, a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		Lerp(mode, a[0], b[0], t),
		Lerp(mode, a[1], b[1], t),
		Lerp(mode, a[2], b[2], t),
	}
}

// Slerp blends two rotations along the shorter arc.
func Slerp(mode BlendMode, a, b mgl64.Quat, t float64) mgl64.Quat {
	t = mode.fraction(t)
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return mgl64.QuatSlerp(a, b, t)
}
