package cabinet

import (
	"fmt"
	"math"
)

const (
	MinAmplifierPowerW = 20.0
	MaxAmplifierPowerW = 250.0
	MinVoices          = 1
	MaxVoices          = 4

	MinQ     = 0.5
	MaxQ     = 1.2
	DefaultQ = 0.707

	MinFrequencyHz = 20.0
	MaxFrequencyHz = 20000.0

	MinVentTuningHz = 10.0
	MaxVentTuningHz = 200.0
)

var (
	supportedImpedances = []int{4, 8, 12, 16}
	supportedSlopes     = []int{6, 12, 18, 24}
)

// Config is a complete speaker-cabinet configuration.
//
// SlopeDBPerOct, Q, ManualCrossoversHz and VentTuningHz are only honoured
// when Advanced is set.
type Config struct {
	ImpedanceOhm    int
	AmplifierPowerW float64
	Voices          int
	Level           ListeningLevel
	Style           Style
	Shape           Shape
	Budget          Budget
	Wall            WallDistance
	Use             PrimaryUse
	Load            LoadType

	Advanced           bool
	SlopeDBPerOct      int
	Q                  float64
	ManualCrossoversHz []float64
	VentTuningHz       float64
}

// NewDefaultConfig returns the configuration a new session starts from.
func NewDefaultConfig() Config {
	return Config{
		ImpedanceOhm:       8,
		AmplifierPowerW:    100,
		Voices:             2,
		Level:              LevelMedium,
		Style:              StyleNeutral,
		Shape:              ShapeBookshelf,
		Budget:             BudgetMid,
		Wall:               WallMedium,
		Use:                UseMusic,
		Load:               LoadBassReflex,
		SlopeDBPerOct:      12,
		Q:                  DefaultQ,
		ManualCrossoversHz: DefaultManualCrossovers(2),
		VentTuningHz:       40,
	}
}

// DefaultManualCrossovers returns the starting manual crossover list for a
// way count, used when the number of voices changes in advanced mode.
func DefaultManualCrossovers(voices int) []float64 {
	switch voices {
	case 2:
		return []float64{3000}
	case 3:
		return []float64{500, 3000}
	case 4:
		return []float64{250, 1000, 3000}
	default:
		return nil
	}
}

// Validate checks every field against its domain. Advanced-only fields
// are checked only in advanced mode.
func (c *Config) Validate() error {
	if !containsInt(supportedImpedances, c.ImpedanceOhm) {
		return &ConfigurationError{Field: "impedance", Value: c.ImpedanceOhm, Reason: "expected 4, 8, 12 or 16 ohm"}
	}
	if !isFinite(c.AmplifierPowerW) || c.AmplifierPowerW < MinAmplifierPowerW || c.AmplifierPowerW > MaxAmplifierPowerW {
		return &ConfigurationError{Field: "amplifier_power", Value: c.AmplifierPowerW, Reason: fmt.Sprintf("expected %g..%g W", MinAmplifierPowerW, MaxAmplifierPowerW)}
	}
	if c.Voices < MinVoices || c.Voices > MaxVoices {
		return &ConfigurationError{Field: "voice_count", Value: c.Voices, Reason: fmt.Sprintf("expected %d..%d", MinVoices, MaxVoices)}
	}
	if !c.Level.valid() {
		return &ConfigurationError{Field: "listening_level", Value: c.Level, Reason: "unknown level"}
	}
	if !c.Shape.valid() {
		return &ConfigurationError{Field: "enclosure_shape", Value: c.Shape, Reason: "unknown shape"}
	}
	if !c.Budget.valid() {
		return &ConfigurationError{Field: "budget_tier", Value: c.Budget, Reason: "unknown budget"}
	}
	if !c.Wall.valid() {
		return &ConfigurationError{Field: "wall_distance", Value: c.Wall, Reason: "unknown distance"}
	}
	if !c.Use.valid() {
		return &ConfigurationError{Field: "primary_use", Value: c.Use, Reason: "unknown use"}
	}
	if !c.Load.valid() {
		return &ConfigurationError{Field: "load_type", Value: c.Load, Reason: "unknown load"}
	}
	if !c.Advanced {
		return nil
	}

	if !containsInt(supportedSlopes, c.SlopeDBPerOct) {
		return &ConfigurationError{Field: "filter_slope", Value: c.SlopeDBPerOct, Reason: "expected 6, 12, 18 or 24 dB/octave"}
	}
	if !isFinite(c.Q) || c.Q < MinQ || c.Q > MaxQ {
		return &ConfigurationError{Field: "q", Value: c.Q, Reason: fmt.Sprintf("expected %g..%g", MinQ, MaxQ)}
	}
	if err := validateCrossovers(c.ManualCrossoversHz, c.Voices); err != nil {
		return err
	}
	if c.VentTuningHz != 0 {
		if !isFinite(c.VentTuningHz) || c.VentTuningHz < MinVentTuningHz || c.VentTuningHz > MaxVentTuningHz {
			return &ConfigurationError{Field: "vent_tuning", Value: c.VentTuningHz, Reason: fmt.Sprintf("expected 0 (derive) or %g..%g Hz", MinVentTuningHz, MaxVentTuningHz)}
		}
	}
	return nil
}

// validateCrossovers accepts an empty list (derive automatically) or a
// strictly increasing list of voices-1 audible frequencies.
func validateCrossovers(freqs []float64, voices int) error {
	if len(freqs) == 0 {
		return nil
	}
	if len(freqs) != voices-1 {
		return &ConfigurationError{
			Field:  "manual_crossover",
			Value:  freqs,
			Reason: fmt.Sprintf("expected %d frequencies for %d voices, got %d", voices-1, voices, len(freqs)),
		}
	}
	prev := 0.0
	for i, f := range freqs {
		if !isFinite(f) || f < MinFrequencyHz || f > MaxFrequencyHz {
			return &ConfigurationError{Field: "manual_crossover", Value: freqs, Reason: fmt.Sprintf("frequency %d (%g Hz) outside %g..%g Hz", i, f, MinFrequencyHz, MaxFrequencyHz)}
		}
		if f <= prev {
			return &ConfigurationError{Field: "manual_crossover", Value: freqs, Reason: "frequencies must be strictly increasing"}
		}
		prev = f
	}
	return nil
}

// Resolve returns the effective configuration. In simple mode the advanced
// fields are overwritten with the derived values so that nothing stale
// reaches a result.
func (c Config) Resolve() Config {
	out := c
	if c.Advanced {
		if len(c.ManualCrossoversHz) > 0 {
			out.ManualCrossoversHz = append([]float64(nil), c.ManualCrossoversHz...)
		}
		return out
	}
	out.SlopeDBPerOct = derivedSlope(c)
	out.Q = DefaultQ
	out.ManualCrossoversHz = nil
	out.VentTuningHz = 0
	return out
}

// SuggestedLoad is the load type usually advised for the placement and
// style. It is informational and never replaces the configured load.
func (c Config) SuggestedLoad() LoadType {
	switch {
	case c.Wall == WallNear:
		return LoadSealed
	case c.Style == StyleHiFi:
		return LoadDoubleBassReflex
	default:
		return LoadBassReflex
	}
}

func derivedSlope(c Config) int {
	switch {
	case c.Budget == BudgetHigh || c.Style == StyleHiFi:
		return 24
	case c.Voices >= 3:
		return 18
	default:
		return 12
	}
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// isBassHeavy reports whether the style shifts crossovers downwards.
func isBassHeavy(s Style) bool { return s == StyleBassHeavy }

func effectiveQ(q float64) float64 {
	if !isFinite(q) || q <= 0 {
		return DefaultQ
	}
	return math.Min(math.Max(q, MinQ), MaxQ)
}
