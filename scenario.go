package ott

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Scenario groups everything a TOML scenario file defines: the universe, the
// vehicle, the endpoints and the discretization, plus the fuel budget the
// solved transfer is expected to beat. Raw physical quantities in the file
// are scaled through the optional [units] block exactly once, at load time.
type Scenario struct {
	Name       string
	Universe   *Universe
	Vehicle    Vehicle
	Depart     string
	Arrive     string
	Steps      int
	Dt         float64
	FuelBudget float64 // in internal units; 0 means no budget check
	Seed       int64
}

// LoadScenario reads and validates a scenario TOML file. Every malformed
// value is rejected here, before any problem is assembled.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	units := UnitSystem{MassScale: 1, LengthScale: 1, TimeScale: 1}
	if v.IsSet("units") {
		units = UnitSystem{
			MassScale:   v.GetFloat64("units.mass"),
			LengthScale: v.GetFloat64("units.length"),
			TimeScale:   v.GetFloat64("units.time"),
		}
		if units.MassScale <= 0 || units.LengthScale <= 0 || units.TimeScale <= 0 {
			return nil, fmt.Errorf("%s: unit scales must be positive", path)
		}
	}

	g := GravitationalConstant
	if v.IsSet("mission.G") {
		g = v.GetFloat64("mission.G")
	}

	var bodies []Body
	for name := range v.GetStringMap("bodies") {
		key := "bodies." + name
		b, err := NewBody(name,
			units.Mass(v.GetFloat64(key+".mass")),
			[]float64{units.Length(v.GetFloat64(key + ".x")), units.Length(v.GetFloat64(key + ".y"))},
			units.Length(v.GetFloat64(key+".orbit")))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		b.Radius = units.Length(v.GetFloat64(key + ".radius"))
		bodies = append(bodies, b)
	}
	universe, err := NewUniverse(units.Gravitational(g), bodies...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	vehicle, err := NewVehicle(v.GetString("vehicle.name"),
		units.Mass(v.GetFloat64("vehicle.mass")),
		units.Thrust(v.GetFloat64("vehicle.thrust_limit")),
		units.Speed(v.GetFloat64("vehicle.speed_limit")))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	v.SetDefault("mission.seed", DefaultGuessSeed)
	sc := &Scenario{
		Name:       v.GetString("mission.name"),
		Universe:   universe,
		Vehicle:    vehicle,
		Depart:     resolveBodyName(bodies, v.GetString("mission.depart")),
		Arrive:     resolveBodyName(bodies, v.GetString("mission.arrive")),
		Steps:      v.GetInt("mission.steps"),
		Dt:         units.Time(v.GetFloat64("mission.step_length")),
		FuelBudget: v.GetFloat64("mission.fuel_budget"),
		Seed:       v.GetInt64("mission.seed"),
	}
	// NewTransfer re-validates the discretization; fail at load time instead.
	if _, err := sc.NewTransfer(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// resolveBodyName matches a configured name against the loaded bodies
// regardless of case: viper lowercases table keys.
func resolveBodyName(bodies []Body, name string) string {
	for _, b := range bodies {
		if strings.EqualFold(b.Name, name) {
			return b.Name
		}
	}
	return name
}

// NewTransfer builds the transfer this scenario describes.
func (sc *Scenario) NewTransfer() (*Transfer, error) {
	t, err := NewTransfer(sc.Universe, sc.Vehicle, sc.Depart, sc.Arrive, sc.Steps, sc.Dt)
	if err != nil {
		return nil, err
	}
	if sc.Seed != 0 {
		t.GuessSeed = sc.Seed
	}
	return t, nil
}
