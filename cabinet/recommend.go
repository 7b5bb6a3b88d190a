// Package cabinet derives a speaker-cabinet recommendation from a user
// configuration: enclosure geometry, crossover electronics, drivers and a
// simulated frequency response. Every function is pure and deterministic.
package cabinet

// Recommendation is the full result for one configuration.
type Recommendation struct {
	Config        Config               `json:"config"`
	Geometry      Geometry             `json:"geometry"`
	Electronics   Electronics          `json:"electronics"`
	Drivers       []Driver             `json:"drivers"`
	SuggestedLoad LoadType             `json:"suggested_load"`
	Fallbacks     []NumericDomainError `json:"fallbacks,omitempty"`
}

// Recommend validates cfg and runs the pipeline
// geometry -> electronics -> drivers.
func Recommend(cfg Config) (Recommendation, error) {
	if err := cfg.Validate(); err != nil {
		return Recommendation{}, err
	}
	eff := cfg.Resolve()

	var fb fallbacks
	geo, err := computeGeometry(eff, &fb)
	if err != nil {
		return Recommendation{}, err
	}
	elec := computeElectronics(eff, &geo, &fb)
	drivers := SelectDrivers(eff, geo, elec)

	return Recommendation{
		Config:        eff,
		Geometry:      geo,
		Electronics:   elec,
		Drivers:       drivers,
		SuggestedLoad: eff.SuggestedLoad(),
		Fallbacks:     fb,
	}, nil
}

// Sample evaluates the recommendation's response at freqHz.
func (r Recommendation) Sample(freqHz float64) Sample {
	return SampleAt(freqHz, r.Config, r.Electronics)
}

// Sweep evaluates the recommendation's response over freqs.
func (r Recommendation) Sweep(freqs []float64, workers int) Curve {
	return Sweep(r.Config, r.Electronics, freqs, workers)
}
