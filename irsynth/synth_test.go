package irsynth

import (
	"math"
	"testing"
)

func testCurve(n int, shape func(f float64) float64) ([]float64, []float64) {
	freqs := make([]float64, n)
	db := make([]float64, n)
	for i := range freqs {
		freqs[i] = 20 * math.Pow(1000, float64(i)/float64(n-1))
		db[i] = shape(freqs[i])
	}
	return freqs, db
}

func TestFromMagnitudeFlatIsCenteredImpulse(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Length = 1024
	freqs, db := testCurve(64, func(float64) float64 { return 0 })

	ir, err := FromMagnitude(freqs, db, cfg)
	if err != nil {
		t.Fatalf("FromMagnitude: %v", err)
	}
	if len(ir) != cfg.Length {
		t.Fatalf("unexpected length: %d", len(ir))
	}
	center := cfg.Length / 2
	if math.Abs(float64(ir[center])-cfg.NormalizePeak) > 1e-5 {
		t.Fatalf("expected normalized peak %f at center, got %f", cfg.NormalizePeak, ir[center])
	}
	for i, v := range ir {
		if i != center && math.Abs(float64(v)) > 1e-4 {
			t.Fatalf("flat response should be a single impulse, sample %d = %f", i, v)
		}
	}
}

func TestFromMagnitudeIsLinearPhase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Length = 4096
	freqs, db := testCurve(128, func(f float64) float64 {
		w := f / 80
		return 10*math.Log10(w*w*w*w/(1+w*w*w*w)) - 3*math.Log10(f/1000)
	})

	ir, err := FromMagnitude(freqs, db, cfg)
	if err != nil {
		t.Fatalf("FromMagnitude: %v", err)
	}
	center := cfg.Length / 2
	peak := 0.0
	for _, v := range ir {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("non-finite sample")
		}
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	if math.Abs(peak-cfg.NormalizePeak) > 1e-5 {
		t.Fatalf("expected peak %f, got %f", cfg.NormalizePeak, peak)
	}
	for j := 1; j < cfg.Length/8; j++ {
		a := float64(ir[center-j])
		b := float64(ir[center+j])
		if math.Abs(a-b) > 1e-5 {
			t.Fatalf("impulse not symmetric at offset %d: %f vs %f", j, a, b)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.SampleRate = 100 },
		func(c *Config) { c.Length = 1000 },
		func(c *Config) { c.TukeyAlpha = 2 },
		func(c *Config) { c.NormalizePeak = 0 },
	}
	for i, edit := range bad {
		cfg := DefaultConfig()
		edit(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
	good := DefaultConfig()
	if err := good.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestFromMagnitudeRejectsBadCurves(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := FromMagnitude([]float64{100}, []float64{0}, cfg); err == nil {
		t.Fatalf("expected error for a single point")
	}
	if _, err := FromMagnitude([]float64{200, 100}, []float64{0, 0}, cfg); err == nil {
		t.Fatalf("expected error for descending frequencies")
	}
}

func TestInterpLogFreq(t *testing.T) {
	freqs := []float64{100, 1000}
	db := []float64{0, 10}
	if got := interpLogFreq(freqs, db, math.Sqrt(100*1000)); math.Abs(got-5) > 1e-9 {
		t.Fatalf("expected 5 dB at the geometric midpoint, got %f", got)
	}
	if interpLogFreq(freqs, db, 10) != 0 || interpLogFreq(freqs, db, 1e5) != 10 {
		t.Fatalf("values outside the grid should be held")
	}
}
