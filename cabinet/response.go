package cabinet

import (
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/flobutbut/AcuoTune/crossover"
)

const (
	// ReferenceLevelDB is the SPL the relative response is measured from.
	ReferenceLevelDB = 89.0

	ResponseFloorDB   = -40.0
	ResponseCeilingDB = 10.0

	bassBandHz   = 200.0
	trebleBandHz = 2000.0
)

// Sample is the simulated response at one frequency.
type Sample struct {
	FrequencyHz float64   `json:"frequency_hz"`
	VoicesDB    []float64 `json:"voices_db"`
	GlobalDB    float64   `json:"global_db"`
}

// VoiceResponseDB returns the response of one voice at freqHz in dB
// relative to ReferenceLevelDB, clamped to [ResponseFloorDB,
// ResponseCeilingDB]. Out-of-range voices return the floor.
func VoiceResponseDB(freqHz float64, voice int, cfg Config, elec Electronics) float64 {
	if voice < 0 || voice >= cfg.Voices {
		return ResponseFloorDB
	}
	f := clamp(freqHz, MinFrequencyHz, MaxFrequencyHz)
	order := crossover.Order(elec.SlopeDBPerOct)
	q := effectiveQ(elec.Q)

	db := filterDB(f, voice, cfg.Voices, elec.CrossoversHz, order, q)
	if voice == 0 {
		db += enclosureDB(f, cfg.Load, elec.LoadCornerHz, q)
		db += roomGainDB(f, cfg.Wall)
	}
	db += levelDB(f, cfg.Level)
	db += styleDB(f, cfg.Style)
	if !isFinite(db) {
		return ResponseFloorDB
	}
	return clamp(db, ResponseFloorDB, ResponseCeilingDB)
}

// GlobalResponseDB combines per-voice responses as in-phase amplitudes.
func GlobalResponseDB(voicesDB []float64) float64 {
	sum := 0.0
	for _, db := range voicesDB {
		if isFinite(db) {
			sum += dspcore.DBToLinear(db)
		}
	}
	return amplitudeToResponseDB(sum)
}

// SampleAt evaluates every voice and the combined response at freqHz.
func SampleAt(freqHz float64, cfg Config, elec Electronics) Sample {
	s := Sample{FrequencyHz: freqHz, VoicesDB: make([]float64, cfg.Voices)}
	for i := range s.VoicesDB {
		s.VoicesDB[i] = VoiceResponseDB(freqHz, i, cfg, elec)
	}
	s.GlobalDB = GlobalResponseDB(s.VoicesDB)
	return s
}

func amplitudeToResponseDB(amp float64) float64 {
	if !(amp > 0) || math.IsInf(amp, 0) {
		return ResponseFloorDB
	}
	return clamp(dspcore.LinearToDB(amp), ResponseFloorDB, ResponseCeilingDB)
}

func filterDB(f float64, voice, voices int, xo []float64, order int, q float64) float64 {
	lo, hi := 0.0, 0.0
	if voice > 0 && voice-1 < len(xo) {
		lo = xo[voice-1]
	}
	if voice < voices-1 && voice < len(xo) {
		hi = xo[voice]
	}
	return crossover.BandDB(f, lo, hi, order, q)
}

// resonanceBump is a unit-height bump on a logarithmic frequency axis.
func resonanceBump(f, center float64) float64 {
	x := math.Log(f / center)
	return math.Exp(-x * x)
}

func enclosureDB(f float64, load LoadType, cornerHz, q float64) float64 {
	if !(cornerHz > 0) {
		return 0
	}
	excess := q - MinQ
	switch load {
	case LoadSealed:
		db := 2 * excess * resonanceBump(f, cornerHz)
		if f < cornerHz {
			db -= 12 * safeLog10(cornerHz/f)
		}
		return db
	case LoadDoubleBassReflex:
		db := 0.0
		for _, fb := range []float64{cornerHz, cornerHz * secondTuningRatio} {
			if f < fb {
				db += 7.5 * safeLog10(f/fb)
			}
			db += 1.5 * excess * resonanceBump(f, fb)
		}
		return db
	default:
		db := 3 * excess * resonanceBump(f, cornerHz)
		if f < cornerHz {
			db += 12 * safeLog10(f/cornerHz)
		}
		return db
	}
}

// roomGainDB is boundary reinforcement, tapering linearly to zero at a
// cutoff that depends on the wall distance.
func roomGainDB(f float64, w WallDistance) float64 {
	var gain, cutoff float64
	switch w {
	case WallNear:
		gain, cutoff = 3, 100
	case WallMedium:
		gain, cutoff = 1.5, 80
	default:
		return 0
	}
	if f >= cutoff {
		return 0
	}
	return gain * (1 - f/cutoff)
}

type bandGains struct{ bass, mid, treble float64 }

func (g bandGains) at(f float64) float64 {
	switch {
	case f < bassBandHz:
		return g.bass
	case f > trebleBandHz:
		return g.treble
	default:
		return g.mid
	}
}

func levelDB(f float64, l ListeningLevel) float64 {
	switch l {
	case LevelLow:
		return bandGains{3, 0, 1.5}.at(f)
	case LevelHigh:
		return bandGains{-1.5, 0, -1}.at(f)
	default:
		return 0
	}
}

func styleDB(f float64, s Style) float64 {
	switch s {
	case StyleHiFi:
		return bandGains{-1, 0, 1}.at(f)
	case StyleBassHeavy:
		return bandGains{3, 0, -1}.at(f)
	case StyleAcoustic:
		return bandGains{-2, 1, 1}.at(f)
	case StyleClassical:
		return bandGains{-2, 1, -1}.at(f)
	case StyleJazz:
		return bandGains{1, 2, -2}.at(f)
	case StyleRock:
		return bandGains{3, -1, 2}.at(f)
	case StyleElectronic:
		return bandGains{4, -2, 3}.at(f)
	default:
		return 0
	}
}
