package main

import (
	"fmt"
	"math"
	"sort"

	"github.com/flobutbut/AcuoTune/cabinet"
	fitcommon "github.com/flobutbut/AcuoTune/internal/fitcommon"
)

type knobDef struct {
	Name  string
	Min   float64
	Max   float64
	IsInt bool
	// Log maps the normalized position exponentially between Min and Max.
	Log bool
}

type candidate struct {
	Vals []float64
}

var slopeChoices = []int{6, 12, 18, 24}

// minCrossoverRatio keeps adjacent crossover points a third of an octave
// apart.
var minCrossoverRatio = math.Pow(2, 1.0/3.0)

// initCandidate resolves base and builds the knob set together with the
// candidate matching its current recommendation. Crossover knobs span one
// octave either side of the recommended frequency.
func initCandidate(base cabinet.Config, tuneSlope bool, tuneVent bool) (cabinet.Config, []knobDef, candidate, error) {
	rec, err := cabinet.Recommend(base)
	if err != nil {
		return cabinet.Config{}, nil, candidate{}, err
	}
	eff := rec.Config

	defs := make([]knobDef, 0, 6)
	vals := make([]float64, 0, 6)
	for i, f := range rec.Electronics.CrossoversHz {
		defs = append(defs, knobDef{
			Name: fmt.Sprintf("crossover_%d", i+1),
			Min:  math.Max(f/2, cabinet.MinFrequencyHz),
			Max:  math.Min(f*2, cabinet.MaxFrequencyHz),
			Log:  true,
		})
		vals = append(vals, f)
	}
	defs = append(defs, knobDef{Name: "q", Min: cabinet.MinQ, Max: cabinet.MaxQ})
	vals = append(vals, eff.Q)

	if tuneSlope {
		defs = append(defs, knobDef{Name: "slope", Min: 0, Max: float64(len(slopeChoices) - 1), IsInt: true})
		vals = append(vals, float64(slopeIndex(eff.SlopeDBPerOct)))
	}
	if tuneVent && eff.Load.Vented() && rec.Geometry.Vent != nil {
		fb := rec.Geometry.Vent.TuningHz
		defs = append(defs, knobDef{
			Name: "vent_tuning",
			Min:  math.Max(fb/1.5, cabinet.MinVentTuningHz),
			Max:  math.Min(fb*1.5, cabinet.MaxVentTuningHz),
			Log:  true,
		})
		vals = append(vals, fb)
	}
	return eff, defs, candidate{Vals: vals}, nil
}

// applyCandidate turns the resolved base into an advanced-mode
// configuration carrying the knob values.
func applyCandidate(base cabinet.Config, defs []knobDef, cand candidate) cabinet.Config {
	cfg := base
	cfg.Advanced = true

	var xo []float64
	for i, d := range defs {
		v := cand.Vals[i]
		switch d.Name {
		case "q":
			cfg.Q = math.Round(fitcommon.Clamp(v, cabinet.MinQ, cabinet.MaxQ)*1000) / 1000
		case "slope":
			idx := int(math.Round(fitcommon.Clamp(v, 0, float64(len(slopeChoices)-1))))
			cfg.SlopeDBPerOct = slopeChoices[idx]
		case "vent_tuning":
			cfg.VentTuningHz = math.Round(v*10) / 10
		default:
			xo = append(xo, v)
		}
	}
	cfg.ManualCrossoversHz = spaceCrossovers(xo)
	return cfg
}

// spaceCrossovers sorts freqs, rounds them to whole hertz and pushes each
// point up until it clears its lower neighbour by minCrossoverRatio.
func spaceCrossovers(freqs []float64) []float64 {
	if len(freqs) == 0 {
		return nil
	}
	out := append([]float64(nil), freqs...)
	sort.Float64s(out)
	for i := range out {
		out[i] = math.Round(out[i])
		if i > 0 && out[i] < out[i-1]*minCrossoverRatio {
			out[i] = math.Ceil(out[i-1] * minCrossoverRatio)
		}
	}
	return out
}

func slopeIndex(slope int) int {
	for i, s := range slopeChoices {
		if s == slope {
			return i
		}
	}
	return 1
}

func fromNormalized(pos []float64, defs []knobDef) candidate {
	vals := make([]float64, len(defs))
	for i := range defs {
		x := 0.0
		if i < len(pos) {
			x = fitcommon.Clamp(pos[i], 0, 1)
		}
		var v float64
		if defs[i].Log && defs[i].Min > 0 {
			v = defs[i].Min * math.Pow(defs[i].Max/defs[i].Min, x)
		} else {
			v = defs[i].Min + x*(defs[i].Max-defs[i].Min)
		}
		if defs[i].IsInt {
			v = math.Round(v)
		}
		vals[i] = v
	}
	return candidate{Vals: vals}
}

func cloneCandidate(c candidate) candidate {
	return candidate{Vals: append([]float64(nil), c.Vals...)}
}

func knobMap(defs []knobDef, c candidate) map[string]float64 {
	out := make(map[string]float64, len(defs))
	for i, d := range defs {
		out[d.Name] = c.Vals[i]
	}
	return out
}
