package ott

// A state vector stacks the 2D position and the 2D velocity; a thrust vector
// holds the horizontal and vertical thrust components.
const (
	stateDim  = 4
	thrustDim = 2
)

// Dynamics evaluates the continuous-time dynamics of a vehicle moving through
// a universe. Pure; carries no internal state.
type Dynamics struct {
	Universe *Universe
	Vehicle  Vehicle
}

// Continuous returns the state derivative f(state, thrust): the velocity in
// the position slots, and thrust/m plus the net gravitational acceleration in
// the velocity slots.
func (d Dynamics) Continuous(state, thrust []float64) []float64 {
	a := d.Universe.Acceleration(state[:2])
	return []float64{
		state[2],
		state[3],
		thrust[0]/d.Vehicle.Mass + a[0],
		thrust[1]/d.Vehicle.Mass + a[1],
	}
}

// DiscreteResidual returns the implicit-Euler residual
//
//	next - state - h*f(next, thrust)
//
// which must be zero for the pair of consecutive states to verify the
// discrete dynamics. The derivative is evaluated at the next state: the
// backward scheme is stable near the stiff gravity field, at the price of a
// residual that is nonlinear in next (thrust still enters linearly).
func (d Dynamics) DiscreteResidual(state, next, thrust []float64, h float64) []float64 {
	sDot := d.Continuous(next, thrust)
	r := make([]float64, stateDim)
	for i := 0; i < stateDim; i++ {
		r[i] = next[i] - state[i] - h*sDot[i]
	}
	return r
}

// OrbitResiduals returns the three residuals which are all zero exactly when
// the state lies on the circular orbit of radius b.Orbit around b:
//
//  1. |p|^2 - r^2        (on the orbit)
//  2. p·v                (no radial velocity)
//  3. p·a + v·v          (no radial acceleration under gravity alone)
//
// with p the position relative to the body. The first two alone admit states
// that are falling straight in; the third forces the tangential speed to
// balance the gravitational pull. The acceleration is that of the body alone,
// with no thrust: boundary thrust is taken as negligible, which the fuel
// objective drives toward in practice.
func (u *Universe) OrbitResiduals(state []float64, b Body) []float64 {
	p := u.PositionWrt(state[:2], b)
	v := state[2:]
	a := u.AccelerationFrom(state[:2], b)
	return []float64{
		dot(p, p) - b.Orbit*b.Orbit,
		dot(p, v),
		dot(p, a) + dot(v, v),
	}
}
