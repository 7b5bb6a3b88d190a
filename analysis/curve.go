package analysis

import (
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/filter/weighting"
)

const (
	// PassbandLowHz and PassbandHighHz bound the region used for the mean
	// level, ripple and deviation.
	PassbandLowHz  = 200.0
	PassbandHighHz = 10000.0

	weightingSampleRate = 48000.0
	// crossoverWindowOct is the half-width of the region around each
	// crossover inspected for dips and peaks.
	crossoverWindowOct = 1.0 / 3.0
)

// Metrics summarizes a magnitude response in dB over a frequency grid.
type Metrics struct {
	Points int `json:"points"`

	MeanLevelDB    float64 `json:"mean_level_db"`
	RippleDB       float64 `json:"ripple_db"`
	DeviationRMSDB float64 `json:"deviation_rms_db"`

	F3Hz  float64 `json:"f3_hz"`
	F6Hz  float64 `json:"f6_hz"`
	F10Hz float64 `json:"f10_hz"`

	CrossoverDeviationDB float64 `json:"crossover_deviation_db"`
	AWeightedDB          float64 `json:"a_weighted_db"`

	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

// Evaluate measures a response curve. freqs must be ascending and match db
// in length; crossovers may be empty.
func Evaluate(freqs, db, crossovers []float64) Metrics {
	m := Metrics{Points: min(len(freqs), len(db))}
	if m.Points == 0 {
		m.Score = 1
		return m
	}
	freqs = freqs[:m.Points]
	db = db[:m.Points]

	lo, hi := passbandIndices(freqs)
	if lo > hi {
		lo, hi = 0, m.Points-1
	}
	band := db[lo : hi+1]
	m.MeanLevelDB = mean(band)
	minV, maxV := band[0], band[0]
	for _, v := range band {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	m.RippleDB = maxV - minV
	m.DeviationRMSDB = rmsAround(band, m.MeanLevelDB)

	m.F3Hz = extensionHz(freqs, db, lo, m.MeanLevelDB-3)
	m.F6Hz = extensionHz(freqs, db, lo, m.MeanLevelDB-6)
	m.F10Hz = extensionHz(freqs, db, lo, m.MeanLevelDB-10)

	m.CrossoverDeviationDB = crossoverDeviation(freqs, db, crossovers, m.MeanLevelDB)
	m.AWeightedDB = aWeightedLevel(freqs, db)

	extension := clamp01(math.Log2(math.Max(m.F6Hz, 20)/20) / 4)
	m.Score = 0.35*clamp01(m.DeviationRMSDB/4) +
		0.25*clamp01(m.RippleDB/12) +
		0.25*clamp01(m.CrossoverDeviationDB/6) +
		0.15*extension
	m.Similarity = math.Exp(-4 * m.Score)
	if !isFinite(m.Score) {
		m.Score = 1
		m.Similarity = 0
	}
	return m
}

// RMSEDB is the root-mean-square difference between two curves sampled on
// the same grid.
func RMSEDB(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

func passbandIndices(freqs []float64) (int, int) {
	lo, hi := len(freqs), -1
	for i, f := range freqs {
		if f >= PassbandLowHz && f <= PassbandHighHz {
			lo = min(lo, i)
			hi = max(hi, i)
		}
	}
	return lo, hi
}

// extensionHz walks down from the start of the passband and returns the
// lowest frequency reached before the curve first drops below threshold.
func extensionHz(freqs, db []float64, start int, threshold float64) float64 {
	i := start
	for i > 0 && db[i-1] >= threshold {
		i--
	}
	return freqs[i]
}

func crossoverDeviation(freqs, db, crossovers []float64, ref float64) float64 {
	worst := 0.0
	ratio := math.Pow(2, crossoverWindowOct)
	for _, fc := range crossovers {
		if !(fc > 0) {
			continue
		}
		for i, f := range freqs {
			if f >= fc/ratio && f <= fc*ratio {
				worst = math.Max(worst, math.Abs(db[i]-ref))
			}
		}
	}
	return worst
}

// aWeightedLevel is the power average of the curve after A-weighting.
func aWeightedLevel(freqs, db []float64) float64 {
	w := weighting.New(weighting.TypeA, weightingSampleRate)
	var sum float64
	var n int
	for i, f := range freqs {
		if !(f > 0) || f >= weightingSampleRate/2 {
			continue
		}
		a := w.MagnitudeDB(f, weightingSampleRate)
		if !isFinite(a) {
			continue
		}
		amp := dspcore.DBToLinear(db[i] + a)
		sum += amp * amp
		n++
	}
	if n == 0 {
		return linToDB(0)
	}
	return linToDB(math.Sqrt(sum / float64(n)))
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var s float64
	for _, v := range x {
		s += v
	}
	return s / float64(len(x))
}

func rmsAround(x []float64, ref float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var s float64
	for _, v := range x {
		d := v - ref
		s += d * d
	}
	return math.Sqrt(s / float64(len(x)))
}

func linToDB(x float64) float64 {
	return dspcore.LinearToDB(max(x, 1e-12))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
