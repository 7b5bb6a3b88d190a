package cabinet

import "math"

// Dimensions are external cabinet dimensions in centimetres.
type Dimensions struct {
	HeightCm float64 `json:"height_cm"`
	WidthCm  float64 `json:"width_cm"`
	DepthCm  float64 `json:"depth_cm"`
}

// Vent describes a cylindrical port.
type Vent struct {
	AreaCm2        float64 `json:"area_cm2"`
	DiameterCm     float64 `json:"diameter_cm"`
	LengthCm       float64 `json:"length_cm"`
	TuningHz       float64 `json:"tuning_hz"`
	SecondTuningHz float64 `json:"second_tuning_hz,omitempty"`
}

// Geometry is the physical part of a recommendation.
type Geometry struct {
	VolumeL           float64    `json:"volume_l"`
	Dimensions        Dimensions `json:"dimensions"`
	Materials         []string   `json:"materials"`
	Vent              *Vent      `json:"vent,omitempty"`
	SystemResonanceHz float64    `json:"system_resonance_hz"`
	// First axial standing-wave mode along height, width and depth.
	InternalModesHz   [3]float64 `json:"internal_modes_hz"`
}

const (
	ventAreaPerLitreCm2 = 1.0
	minVentAreaCm2      = 5.0
	minVentLengthCm     = 1.0
	secondTuningRatio   = 1.4
	bracingThresholdL   = 50.0
)

// ComputeGeometry derives volume, dimensions, materials and vent for cfg.
func ComputeGeometry(cfg Config) (Geometry, error) {
	if err := cfg.Validate(); err != nil {
		return Geometry{}, err
	}
	return computeGeometry(cfg.Resolve(), nil)
}

func computeGeometry(cfg Config, fb *fallbacks) (Geometry, error) {
	vol := roundTo(baseVolumeL(cfg), 0.1)
	if !isFinite(vol) || vol <= 0 {
		return Geometry{}, &ConfigurationError{Field: "volume", Value: vol, Reason: "derived cabinet volume must be > 0"}
	}

	g := Geometry{
		VolumeL:           vol,
		Dimensions:        dimensionsFor(vol, cfg.Shape),
		Materials:         materialsFor(vol, cfg.Budget),
		SystemResonanceHz: systemResonanceHz(vol, cfg.Shape, cfg.Load),
	}
	g.InternalModesHz = [3]float64{
		axialModeHz(g.Dimensions.HeightCm/100, fb),
		axialModeHz(g.Dimensions.WidthCm/100, fb),
		axialModeHz(g.Dimensions.DepthCm/100, fb),
	}
	if cfg.Load.Vented() {
		g.Vent = ventFor(cfg, vol, g.SystemResonanceHz, fb)
	}
	return g, nil
}

func baseVolumeL(cfg Config) float64 {
	v := cfg.AmplifierPowerW * shapeVolumeFactor(cfg.Shape)
	if cfg.Load == LoadDoubleBassReflex {
		v *= 1.2
	}
	switch cfg.Style {
	case StyleBassHeavy:
		v *= 1.3
	case StyleAcoustic:
		v *= 0.9
	}
	switch cfg.Use {
	case UseHomeTheater:
		v *= 1.10
	case UseMixed:
		v *= 1.05
	case UseStudio:
		v *= 0.95
	}
	return v
}

func shapeVolumeFactor(s Shape) float64 {
	switch s {
	case ShapeTower:
		return 0.40
	case ShapeMonitor:
		return 0.30
	case ShapeWallMount:
		return 0.18
	default:
		return 0.20
	}
}

// shapeRatios returns the height:width:depth proportions.
func shapeRatios(s Shape) (h, w, d float64) {
	switch s {
	case ShapeTower:
		return 2.618, 1, 1.25
	case ShapeMonitor:
		return 1.25, 1.6, 1
	case ShapeWallMount:
		return 1.6, 1, 0.75
	default:
		return 1.6, 1, 1.25
	}
}

// dimensionsFor rounds height and width to the millimetre and then solves
// the depth from the volume, so the product stays within rounding of one
// dimension.
func dimensionsFor(volumeL float64, s Shape) Dimensions {
	rh, rw, rd := shapeRatios(s)
	cm3 := volumeL * 1000
	edge := math.Cbrt(cm3 / (rh * rw * rd))
	h := roundTo(edge*rh, 0.1)
	w := roundTo(edge*rw, 0.1)
	d := roundTo(cm3/(h*w), 0.1)
	return Dimensions{HeightCm: h, WidthCm: w, DepthCm: d}
}

func materialsFor(volumeL float64, b Budget) []string {
	m := []string{"MDF 19 mm"}
	if b == BudgetMid || b == BudgetHigh {
		m = append(m, "polyester acoustic wadding")
	}
	if b == BudgetHigh {
		m = append(m, "birch plywood 18 mm", "constrained-layer damping panels")
	}
	if volumeL > bracingThresholdL {
		m = append(m, "internal cross-bracing")
	}
	return m
}

// shapeResonanceBaseHz is the box resonance of a 20 l cabinet of the shape.
func shapeResonanceBaseHz(s Shape) float64 {
	switch s {
	case ShapeTower:
		return 38
	case ShapeMonitor:
		return 45
	case ShapeWallMount:
		return 55
	default:
		return 50
	}
}

func systemResonanceHz(volumeL float64, s Shape, load LoadType) float64 {
	scale := math.Cbrt(20 / volumeL)
	if load == LoadSealed {
		return roundTo(clamp(1.2*shapeResonanceBaseHz(s)*scale, 30, 120), 0.1)
	}
	return roundTo(clamp(shapeResonanceBaseHz(s)*scale, 25, 80), 0.1)
}

func ventFor(cfg Config, volumeL, resonanceHz float64, fb *fallbacks) *Vent {
	area := roundTo(math.Max(volumeL*ventAreaPerLitreCm2, minVentAreaCm2), 0.1)
	v := &Vent{
		AreaCm2:    area,
		DiameterCm: math.Sqrt(4 * area / math.Pi),
		TuningHz:   resonanceHz,
	}
	if cfg.Advanced && cfg.VentTuningHz > 0 {
		v.TuningHz = cfg.VentTuningHz
	}
	if cfg.Load == LoadDoubleBassReflex {
		v.SecondTuningHz = roundTo(v.TuningHz*secondTuningRatio, 0.1)
	}
	v.LengthCm = roundTo(fb.finiteMin("vent length", ventLengthCm(v.DiameterCm, v.TuningHz, volumeL), minVentLengthCm, minVentLengthCm), 0.1)
	return v
}

// ventLengthCm is the Helmholtz port length with a 0.732·d end correction
// (d in cm, fb in Hz, volume in litres).
func ventLengthCm(d, fb, volumeL float64) float64 {
	return 23562.5*d*d/(fb*fb*volumeL) - 0.732*d
}
