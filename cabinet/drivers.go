package cabinet

import (
	"fmt"
	"math"
)

// Role is the frequency band a driver covers.
type Role int

const (
	RoleFullRange Role = iota
	RoleBass
	RoleMid
	RoleTreble
	RoleSuperTreble
)

func (r Role) String() string {
	switch r {
	case RoleFullRange:
		return "full-range"
	case RoleBass:
		return "bass"
	case RoleMid:
		return "mid"
	case RoleTreble:
		return "treble"
	case RoleSuperTreble:
		return "super-treble"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// MarshalText makes roles readable in JSON output.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Driver is one recommended drive unit.
type Driver struct {
	Role          Role       `json:"role"`
	Technology    string     `json:"technology"`
	ImpedanceOhm  int        `json:"impedance_ohm"`
	DiameterMM    float64    `json:"diameter_mm"`
	PowerRatingW  float64    `json:"power_rating_w"`
	SensitivityDB float64    `json:"sensitivity_db"`
	ResonanceHz   float64    `json:"resonance_hz"`
	RangeHz       [2]float64 `json:"frequency_range_hz"`
}

var powerRatios = map[int][]float64{
	1: {1.0},
	2: {0.7, 0.3},
	3: {0.6, 0.2, 0.2},
	4: {0.6, 0.12, 0.08, 0.2},
}

// four ways with a super-tweeter appended
var powerRatiosSuper = []float64{0.6, 0.12, 0.08, 0.15, 0.05}

// SelectDrivers returns one driver per voice, lowest band first. A
// four-way high-budget cabinet gets an additional super-tweeter as the
// last entry.
func SelectDrivers(cfg Config, geo Geometry, elec Electronics) []Driver {
	cfg = cfg.Resolve()
	ratios := powerRatios[cfg.Voices]
	super := hasSuperTweeter(cfg)
	if super {
		ratios = powerRatiosSuper
	}
	if len(ratios) == 0 {
		ratios = []float64{1}
	}

	out := make([]Driver, 0, len(ratios))
	for i := 0; i < cfg.Voices && i < len(ratios); i++ {
		role := roleFor(i, cfg.Voices)
		d := Driver{
			Role:          role,
			Technology:    technologyFor(role, cfg.Budget, cfg.Style),
			ImpedanceOhm:  cfg.ImpedanceOhm,
			PowerRatingW:  math.Round(elec.PowerRMSW * ratios[i]),
			SensitivityDB: roundTo(elec.SensitivityDB+sensitivityOffset(role), 0.5),
			RangeHz:       voiceRange(i, cfg.Voices, elec),
		}
		d.ResonanceHz = resonanceFor(role, d.RangeHz[0], geo)
		d.DiameterMM = diameterFor(role, geo.VolumeL, d.RangeHz[0])
		out = append(out, d)
	}
	if super {
		out = append(out, Driver{
			Role:          RoleSuperTreble,
			Technology:    technologyFor(RoleSuperTreble, cfg.Budget, cfg.Style),
			ImpedanceOhm:  cfg.ImpedanceOhm,
			DiameterMM:    19,
			PowerRatingW:  math.Round(elec.PowerRMSW * ratios[len(ratios)-1]),
			SensitivityDB: roundTo(elec.SensitivityDB+sensitivityOffset(RoleSuperTreble), 0.5),
			ResonanceHz:   2000,
			RangeHz:       [2]float64{12000, 40000},
		})
	}
	return out
}

func hasSuperTweeter(cfg Config) bool {
	return cfg.Voices == 4 && cfg.Budget == BudgetHigh
}

func roleFor(i, voices int) Role {
	switch {
	case voices == 1:
		return RoleFullRange
	case i == 0:
		return RoleBass
	case i == voices-1:
		return RoleTreble
	default:
		return RoleMid
	}
}

// voiceRange is the band a voice reproduces: from the load corner (or the
// previous crossover) up to its crossover (or the top of the audio band).
func voiceRange(i, voices int, elec Electronics) [2]float64 {
	lo := elec.LoadCornerHz
	if i > 0 && i-1 < len(elec.CrossoversHz) {
		lo = elec.CrossoversHz[i-1]
	}
	hi := MaxFrequencyHz
	if i < voices-1 && i < len(elec.CrossoversHz) {
		hi = elec.CrossoversHz[i]
	}
	return [2]float64{math.Round(lo), math.Round(hi)}
}

func sensitivityOffset(r Role) float64 {
	switch r {
	case RoleMid:
		return 1
	case RoleTreble:
		return 2
	case RoleSuperTreble:
		return 3
	default:
		return 0
	}
}

func resonanceFor(r Role, lowerHz float64, geo Geometry) float64 {
	switch r {
	case RoleBass, RoleFullRange:
		return math.Round(0.7 * geo.SystemResonanceHz)
	case RoleMid:
		return math.Round(0.5 * lowerHz)
	case RoleTreble:
		return math.Round(math.Min(800, 0.5*lowerHz))
	default:
		return 2000
	}
}

func diameterFor(r Role, volumeL, lowerHz float64) float64 {
	bass := roundTo(100*math.Cbrt(volumeL/10), 5)
	switch r {
	case RoleBass:
		return bass
	case RoleFullRange:
		return math.Min(bass, 165)
	case RoleMid:
		if !(lowerHz > 0) {
			return 100
		}
		return math.Round(clamp(50000/lowerHz, 50, 170))
	case RoleTreble:
		return 25
	default:
		return 19
	}
}

func technologyFor(r Role, b Budget, s Style) string {
	switch r {
	case RoleBass:
		switch b {
		case BudgetHigh:
			if s == StyleBassHeavy {
				return "carbon/Rohacell sandwich cone"
			}
			return "carbon/paper sandwich cone"
		case BudgetMid:
			if s == StyleBassHeavy {
				return "reinforced long-throw polypropylene cone"
			}
			return "treated paper cone"
		default:
			return "polypropylene cone"
		}
	case RoleMid:
		switch b {
		case BudgetHigh:
			if s == StyleHiFi {
				return "woven Kevlar cone"
			}
			return "high-stiffness paper cone"
		case BudgetMid:
			return "treated paper cone"
		default:
			return "polypropylene cone"
		}
	case RoleTreble:
		switch b {
		case BudgetHigh:
			if s == StyleHiFi {
				return "treated silk dome with damped rear chamber"
			}
			return "aluminium-magnesium dome"
		case BudgetMid:
			return "treated silk dome"
		default:
			return "polyester dome"
		}
	case RoleSuperTreble:
		return "ribbon super-tweeter"
	default:
		switch b {
		case BudgetHigh:
			return "treated paper full-range cone with whizzer"
		case BudgetMid:
			return "treated paper full-range cone"
		default:
			return "polypropylene full-range cone"
		}
	}
}
