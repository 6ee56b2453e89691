package roster

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration marks scheduling parameters rejected before
// model construction.
var ErrInvalidConfiguration = errors.New("invalid scheduling configuration")

// DefaultDays is the weekly cycle. The rest rule wraps Sun back to Mon.
var DefaultDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DefaultShifts is the paired shift labels of one worked day.
var DefaultShifts = [2]string{"day", "night"}

const (
	// DefaultCapacity bounds workers per (station, day, shift).
	DefaultCapacity = 2
	// DefaultFairnessWeight is the workload-deviation penalty.
	DefaultFairnessWeight = 10
)

// Params holds every input of one scheduling run. Nothing is shared
// between runs; Build receives the full set explicitly.
type Params struct {
	Workers        []string  `json:"workers" yaml:"workers"`
	Stations       int       `json:"stations" yaml:"stations"`
	Days           []string  `json:"days" yaml:"days"`
	Shifts         [2]string `json:"shifts" yaml:"shifts"`
	Capacity       int       `json:"capacity" yaml:"capacity"`
	FairnessWeight float64   `json:"fairness_weight" yaml:"fairness_weight"`
}

// SetDefaults fills unset fields with the standard week, shift pair
// and capacity. FairnessWeight is left alone: zero is a valid weight
// (pure coverage), so it cannot double as an unset marker. The config
// loader applies DefaultFairnessWeight only when the key is absent.
func (p *Params) SetDefaults() {
	if len(p.Days) == 0 {
		p.Days = append([]string(nil), DefaultDays...)
	}
	if p.Shifts[0] == "" && p.Shifts[1] == "" {
		p.Shifts = DefaultShifts
	}
	if p.Capacity == 0 {
		p.Capacity = DefaultCapacity
	}
}

// Validate rejects parameters that cannot produce a well-formed model.
// All failures wrap ErrInvalidConfiguration.
func (p Params) Validate() error {
	if len(p.Workers) == 0 {
		return fmt.Errorf("%w: worker list is empty", ErrInvalidConfiguration)
	}
	seen := make(map[string]struct{}, len(p.Workers))
	for _, w := range p.Workers {
		if w == "" {
			return fmt.Errorf("%w: empty worker id", ErrInvalidConfiguration)
		}
		if _, ok := seen[w]; ok {
			return fmt.Errorf("%w: duplicate worker id %q", ErrInvalidConfiguration, w)
		}
		seen[w] = struct{}{}
	}
	if p.Stations <= 0 {
		return fmt.Errorf("%w: stations must be positive, got %d", ErrInvalidConfiguration, p.Stations)
	}
	// The rest rule encodes "no two consecutive days" over a cyclic week;
	// it only has that meaning for a 7-day cycle.
	if len(p.Days) != 7 {
		return fmt.Errorf("%w: day cycle must have 7 entries, got %d", ErrInvalidConfiguration, len(p.Days))
	}
	if p.Shifts[0] == "" || p.Shifts[1] == "" || p.Shifts[0] == p.Shifts[1] {
		return fmt.Errorf("%w: shifts must be two distinct labels", ErrInvalidConfiguration)
	}
	if p.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfiguration, p.Capacity)
	}
	if p.FairnessWeight < 0 || math.IsNaN(p.FairnessWeight) || math.IsInf(p.FairnessWeight, 0) {
		return fmt.Errorf("%w: fairness weight must be a non-negative real", ErrInvalidConfiguration)
	}
	return nil
}

// MaxShifts is the number of slots one worker could in principle fill,
// the big-M of the needed-flag row.
func (p Params) MaxShifts() int {
	return p.Stations * len(p.Days) * len(p.Shifts)
}

// AverageHours is the fleet-wide average slots per worker, kept as a
// real-valued ratio for the deviation rows.
func (p Params) AverageHours() float64 {
	return float64(p.MaxShifts()) / float64(len(p.Workers))
}
