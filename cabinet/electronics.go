package cabinet

import "math"

// Electronics is the electrical part of a recommendation.
type Electronics struct {
	CrossoversHz  []float64 `json:"crossovers_hz"`
	SlopeDBPerOct int       `json:"slope_db_per_octave"`
	SlopeLabel    string    `json:"slope"`
	Q             float64   `json:"q"`

	NominalImpedanceOhm int    `json:"nominal_impedance_ohm"`
	ImpedanceMinOhm     int    `json:"impedance_min_ohm"`
	ImpedanceMaxOhm     int    `json:"impedance_max_ohm"`
	ImpedanceLabel      string `json:"impedance"`

	PowerRMSW  float64 `json:"power_rms_w"`
	PowerPeakW float64 `json:"power_peak_w"`
	PowerLabel string  `json:"admissible_power"`

	SensitivityDB    float64 `json:"sensitivity_db"`
	SensitivityLabel string  `json:"sensitivity"`

	// LoadCornerHz is the vent tuning for vented loads and the system
	// resonance for sealed ones.
	LoadCornerHz float64 `json:"load_corner_hz"`
}

const baseSensitivityDB = 89.0

var (
	crossoverTable = map[int][]float64{
		2: {3000},
		3: {500, 3000},
		4: {250, 1000, 3000},
	}
	bassHeavyCrossoverTable = map[int][]float64{
		2: {2500},
		3: {400, 2500},
		4: {200, 800, 2500},
	}
)

// ComputeElectronics derives crossovers, impedance, power and sensitivity.
// geo may be nil, in which case shape defaults stand in for the vent
// tuning or box resonance.
func ComputeElectronics(cfg Config, geo *Geometry) (Electronics, error) {
	if err := cfg.Validate(); err != nil {
		return Electronics{}, err
	}
	return computeElectronics(cfg.Resolve(), geo, nil), nil
}

func computeElectronics(cfg Config, geo *Geometry, fb *fallbacks) Electronics {
	e := Electronics{
		CrossoversHz:  crossoversFor(cfg),
		SlopeDBPerOct: cfg.SlopeDBPerOct,
		Q:             effectiveQ(cfg.Q),
	}
	if !containsInt(supportedSlopes, e.SlopeDBPerOct) {
		e.SlopeDBPerOct = derivedSlope(cfg)
	}
	e.SlopeLabel = FormatSlopeLabel(e.SlopeDBPerOct)

	e.NominalImpedanceOhm = cfg.ImpedanceOhm
	if cfg.Voices >= 3 {
		e.NominalImpedanceOhm = max(4, cfg.ImpedanceOhm-2)
	}
	e.ImpedanceMinOhm = e.NominalImpedanceOhm - 1
	e.ImpedanceMaxOhm = e.NominalImpedanceOhm + 2
	e.ImpedanceLabel = FormatImpedanceLabel(e.NominalImpedanceOhm, e.ImpedanceMinOhm, e.ImpedanceMaxOhm)

	e.PowerRMSW = math.Round(cfg.AmplifierPowerW * powerMultiplier(cfg.Level))
	e.PowerPeakW = 2 * e.PowerRMSW
	e.PowerLabel = FormatPowerLabel(e.PowerRMSW, e.PowerPeakW)

	e.SensitivityDB = sensitivityDB(cfg)
	e.SensitivityLabel = FormatSensitivityLabel(e.SensitivityDB)

	def := defaultLoadCornerHz(cfg.Shape, cfg.Load)
	e.LoadCornerHz = fb.finiteMin("load corner frequency", loadCornerHz(cfg.Load, geo, def), 1, def)
	return e
}

func crossoversFor(cfg Config) []float64 {
	if cfg.Advanced && len(cfg.ManualCrossoversHz) > 0 {
		return append([]float64(nil), cfg.ManualCrossoversHz...)
	}
	table := crossoverTable
	if isBassHeavy(cfg.Style) {
		table = bassHeavyCrossoverTable
	}
	return append([]float64{}, table[cfg.Voices]...)
}

func powerMultiplier(l ListeningLevel) float64 {
	switch l {
	case LevelLow:
		return 1.2
	case LevelHigh:
		return 1.8
	default:
		return 1.5
	}
}

func sensitivityDB(cfg Config) float64 {
	s := baseSensitivityDB + float64(cfg.Voices-2)*0.5
	switch cfg.Level {
	case LevelLow:
		s -= 2
	case LevelHigh:
		s += 2
	}
	switch cfg.Use {
	case UseHomeTheater:
		s += 1
	case UseMixed:
		s += 0.5
	case UseStudio:
		s -= 0.5
	}
	return s
}

func loadCornerHz(load LoadType, geo *Geometry, def float64) float64 {
	if geo == nil {
		return def
	}
	if load.Vented() && geo.Vent != nil {
		return geo.Vent.TuningHz
	}
	return geo.SystemResonanceHz
}

func defaultLoadCornerHz(s Shape, load LoadType) float64 {
	if load == LoadSealed {
		if s == ShapeBookshelf {
			return 55
		}
		return 40
	}
	if s == ShapeBookshelf {
		return 45
	}
	return 35
}
