package ott

import (
	"fmt"
	"math/rand"
)

// EarthMarsUniverse returns the two-planet universe of the interplanetary
// transfer scenario, scaled through TransferUnits, with Mars at the origin.
// The Earth orbit radius is the departure orbit, the Mars one the target.
func EarthMarsUniverse() *Universe {
	us := TransferUnits
	earth := Body{
		Name:     "Earth",
		Mass:     us.Mass(5.972e24),
		Position: us.Position([]float64{2.25e11, 0}),
		Orbit:    us.Length(2e10),
		Radius:   us.Length(6.378e6),
	}
	mars := Body{
		Name:     "Mars",
		Mass:     us.Mass(6.417e23),
		Position: us.Position([]float64{0, 0}),
		Orbit:    us.Length(1.5e10),
		Radius:   us.Length(3.389e6),
	}
	u, err := NewUniverse(us.Gravitational(GravitationalConstant), earth, mars)
	if err != nil {
		panic(err) // catalog data is static, this cannot fail
	}
	return u
}

// WithAsteroidBelt returns a copy of the universe with n pseudo-random
// asteroids added between the two planets, each carrying a keep-out zone.
// Deterministic for a given seed.
func WithAsteroidBelt(u *Universe, n int, seed int64) (*Universe, error) {
	us := TransferUnits
	rng := rand.New(rand.NewSource(seed))
	bodies := u.Bodies()
	for i := 0; i < n; i++ {
		mass := us.Mass((0.1 + rng.Float64()) * 5e22)
		pos := []float64{
			us.Length(rng.NormFloat64()*5e10 + 1e11),
			us.Length(rng.NormFloat64()*5e10 - 1e10),
		}
		danger := us.Length((0.1 + rng.Float64()) * 1e10)
		b, err := NewBody(fmt.Sprintf("Asteroid-%d", i), mass, pos, danger)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return NewUniverse(u.G, bodies...)
}

// Falcon9 returns the transfer vehicle with the deliberately tight actuation
// limits of the scenario, scaled through TransferUnits.
func Falcon9() Vehicle {
	us := TransferUnits
	return Vehicle{
		Name:        "Falcon 9",
		Mass:        us.Mass(5.49e5),
		ThrustLimit: us.Thrust(0.25),
		SpeedLimit:  us.Speed(170),
	}
}
