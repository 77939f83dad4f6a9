package orbit

import "math"

const (
	keplerTolerance  = 1e-13
	keplerIterations = 64

	parabolicGuard  = 1e-9
	circularEpsilon = 1e-11
	nodeEpsilon     = 1e-11
)

// solveElliptic solves Kepler's equation M = E - e*sin(E) for E.
func solveElliptic(m, e float64) float64 {
	m = wrapPi(m)
	ea := m
	if e > 0.8 {
		ea = math.Copysign(math.Pi, m)
	}
	for i := 0; i < keplerIterations; i++ {
		f := ea - e*math.Sin(ea) - m
		d := f / (1 - e*math.Cos(ea))
		ea -= d
		if math.Abs(d) < keplerTolerance {
			break
		}
	}
	return ea
}

// solveHyperbolic solves M = e*sinh(H) - H for H.
func solveHyperbolic(m, e float64) float64 {
	ha := math.Copysign(math.Log(2*math.Abs(m)/e+1.8), m)
	for i := 0; i < keplerIterations; i++ {
		f := e*math.Sinh(ha) - ha - m
		d := f / (e*math.Cosh(ha) - 1)
		ha -= d
		if math.Abs(d) < keplerTolerance*math.Max(1, math.Abs(ha)) {
			break
		}
	}
	return ha
}

// wrapPi maps an angle onto (-pi, pi].
func wrapPi(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// wrapTwoPi maps an angle onto [0, 2pi).
func wrapTwoPi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
