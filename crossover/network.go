package crossover

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
	"github.com/cwbudde/algo-dsp/dsp/filter/design/pass"
)

// Network is a digital realization of a multi-way crossover: one biquad
// chain per band, lowest band first.
type Network struct {
	SampleRate    float64
	FrequenciesHz []float64
	Order         int
	Q             float64

	bands []*biquad.Chain
}

// Design builds a Network for the crossover frequencies. len(freqs)+1
// bands are produced; an empty list yields a single all-pass band.
func Design(freqs []float64, slopeDBPerOct int, q, sampleRate float64) (*Network, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("crossover: sample rate must be > 0")
	}
	switch slopeDBPerOct {
	case 6, 12, 18, 24:
	default:
		return nil, fmt.Errorf("crossover: unsupported slope %d dB/octave", slopeDBPerOct)
	}
	if !(q > 0) || math.IsInf(q, 0) {
		return nil, fmt.Errorf("crossover: q must be > 0")
	}
	nyquist := sampleRate / 2
	prev := 0.0
	for i, f := range freqs {
		if !(f > prev) || f >= nyquist {
			return nil, fmt.Errorf("crossover: frequency %d (%g Hz) must be ascending and below %g Hz", i, f, nyquist)
		}
		prev = f
	}

	n := &Network{
		SampleRate:    sampleRate,
		FrequenciesHz: append([]float64(nil), freqs...),
		Order:         Order(slopeDBPerOct),
		Q:             q,
	}
	for b := 0; b <= len(freqs); b++ {
		var coeffs []biquad.Coefficients
		if b > 0 {
			coeffs = append(coeffs, n.sections(freqs[b-1], true)...)
		}
		if b < len(freqs) {
			coeffs = append(coeffs, n.sections(freqs[b], false)...)
		}
		if len(coeffs) == 0 {
			coeffs = []biquad.Coefficients{{B0: 1}}
		}
		n.bands = append(n.bands, biquad.NewChain(coeffs))
	}
	return n, nil
}

// sections mirrors the analog model: one first-order section for odd
// orders plus order/2 second-order sections at the network Q.
func (n *Network) sections(freq float64, highpass bool) []biquad.Coefficients {
	var out []biquad.Coefficients
	if n.Order%2 == 1 {
		if highpass {
			out = append(out, pass.ButterworthHP(freq, 1, n.SampleRate)...)
		} else {
			out = append(out, pass.ButterworthLP(freq, 1, n.SampleRate)...)
		}
	}
	for i := 0; i < n.Order/2; i++ {
		if highpass {
			out = append(out, design.Highpass(freq, n.Q, n.SampleRate))
		} else {
			out = append(out, design.Lowpass(freq, n.Q, n.SampleRate))
		}
	}
	return out
}

// Bands returns the number of bands.
func (n *Network) Bands() int { return len(n.bands) }

// Band returns the chain of band i.
func (n *Network) Band(i int) *biquad.Chain { return n.bands[i] }

// MagnitudeDB evaluates band i at freqHz.
func (n *Network) MagnitudeDB(band int, freqHz float64) float64 {
	db := n.bands[band].MagnitudeDB(freqHz, n.SampleRate)
	if math.IsNaN(db) || math.IsInf(db, 0) || db < MagnitudeFloorDB {
		return MagnitudeFloorDB
	}
	return db
}

// Coefficients returns a copy of every section of band i.
func (n *Network) Coefficients(band int) []biquad.Coefficients {
	c := n.bands[band]
	out := make([]biquad.Coefficients, 0, c.NumSections())
	for i := 0; i < c.NumSections(); i++ {
		out = append(out, c.Section(i).Coefficients)
	}
	return out
}
