// Package irsynth turns a simulated magnitude response into an impulse
// response that can be auditioned or convolved.
package irsynth

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-approx"
	"github.com/cwbudde/algo-dsp/dsp/window"
	algofft "github.com/cwbudde/algo-fft"
)

// Config controls impulse response synthesis.
type Config struct {
	SampleRate int
	// Length is the FFT size and output length in samples (power of two).
	Length int
	// TukeyAlpha is the tapered fraction of the output window.
	TukeyAlpha    float64
	NormalizePeak float64
}

func DefaultConfig() Config {
	return Config{
		SampleRate:    48000,
		Length:        8192,
		TukeyAlpha:    0.5,
		NormalizePeak: 0.9,
	}
}

func (c *Config) Validate() error {
	if c.SampleRate < 8000 {
		return fmt.Errorf("sample rate too low: %d", c.SampleRate)
	}
	if c.Length < 64 || c.Length&(c.Length-1) != 0 {
		return fmt.Errorf("length must be a power of two >= 64: %d", c.Length)
	}
	if c.TukeyAlpha < 0 || c.TukeyAlpha > 1 {
		return fmt.Errorf("tukey alpha must be in [0,1]")
	}
	if c.NormalizePeak <= 0 {
		return fmt.Errorf("normalize peak must be > 0")
	}
	return nil
}

// FromMagnitude builds a linear-phase impulse response whose magnitude
// follows db (in dB) sampled at the ascending frequencies freqs. The main
// peak sits at Length/2.
func FromMagnitude(freqs, db []float64, cfg Config) ([]float32, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(freqs) < 2 || len(freqs) != len(db) {
		return nil, fmt.Errorf("need at least two matching frequency/level points, got %d/%d", len(freqs), len(db))
	}
	if !sort.Float64sAreSorted(freqs) || freqs[0] <= 0 {
		return nil, fmt.Errorf("frequencies must be positive and ascending")
	}

	n := cfg.Length
	binHz := float64(cfg.SampleRate) / float64(n)
	spec := make([]complex128, n)
	for k := 0; k <= n/2; k++ {
		mag := float64(dbToGain(interpLogFreq(freqs, db, float64(k)*binHz)))
		// (-1)^k delays the zero-phase response by n/2 samples.
		if k%2 == 1 {
			mag = -mag
		}
		spec[k] = complex(mag, 0)
		if k > 0 && k < n/2 {
			spec[n-k] = complex(mag, 0)
		}
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("irsynth: fft plan: %w", err)
	}
	td := make([]complex128, n)
	if err := plan.Inverse(td, spec); err != nil {
		return nil, fmt.Errorf("irsynth: inverse fft: %w", err)
	}

	ir := make([]float64, n)
	for i := range td {
		ir[i] = real(td[i])
	}
	taper, err := window.Tukey(n, cfg.TukeyAlpha)
	if err != nil {
		return nil, fmt.Errorf("irsynth: window: %w", err)
	}
	if err := window.ApplyCoefficientsInPlace(ir, taper); err != nil {
		return nil, fmt.Errorf("irsynth: window: %w", err)
	}

	peak := maxAbs(ir)
	if peak <= 0 || math.IsNaN(peak) || math.IsInf(peak, 0) {
		return nil, fmt.Errorf("irsynth: degenerate impulse response")
	}
	g := cfg.NormalizePeak / peak
	out := make([]float32, n)
	for i, v := range ir {
		out[i] = float32(v * g)
	}
	return out, nil
}

// interpLogFreq interpolates db linearly on a logarithmic frequency axis
// and holds the end values outside the grid.
func interpLogFreq(freqs, db []float64, f float64) float64 {
	last := len(freqs) - 1
	if f <= freqs[0] {
		return db[0]
	}
	if f >= freqs[last] {
		return db[last]
	}
	i := sort.SearchFloat64s(freqs, f)
	if freqs[i] == f {
		return db[i]
	}
	lo, hi := freqs[i-1], freqs[i]
	t := math.Log(f/lo) / math.Log(hi/lo)
	return lerp(db[i-1], db[i], t)
}

// dbToGain is 10^(db/20) evaluated with the fast exponential.
func dbToGain(db float64) float32 {
	return approx.FastExp(float32(db * math.Ln10 / 20))
}

func maxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
