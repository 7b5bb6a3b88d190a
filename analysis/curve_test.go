package analysis

import (
	"math"
	"testing"
)

func logGrid(n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo * math.Pow(hi/lo, float64(i)/float64(n-1))
	}
	return out
}

// highpassCurve is a second-order Butterworth roll-off at fc.
func highpassCurve(freqs []float64, fc float64) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		w := f / fc
		out[i] = 10 * math.Log10(w*w*w*w/(1+w*w*w*w))
	}
	return out
}

func TestEvaluateFlatCurve(t *testing.T) {
	freqs := logGrid(200, 20, 20000)
	db := make([]float64, len(freqs))
	m := Evaluate(freqs, db, []float64{3000})
	if m.RippleDB != 0 || m.DeviationRMSDB != 0 || m.CrossoverDeviationDB != 0 {
		t.Fatalf("flat curve should have no ripple or deviation: %+v", m)
	}
	if m.F3Hz != 20 || m.F6Hz != 20 {
		t.Fatalf("flat curve should extend to the grid start, got f3=%f f6=%f", m.F3Hz, m.F6Hz)
	}
	if m.Score > 1e-9 {
		t.Fatalf("flat curve should score zero, got %f", m.Score)
	}
	if math.Abs(m.Similarity-1) > 1e-9 {
		t.Fatalf("flat curve should have similarity 1, got %f", m.Similarity)
	}
	if m.AWeightedDB >= 0 || m.AWeightedDB < -20 {
		t.Fatalf("A-weighted level of a flat curve should be slightly negative, got %f", m.AWeightedDB)
	}
}

func TestEvaluateFindsLowFrequencyExtension(t *testing.T) {
	freqs := logGrid(400, 20, 20000)
	db := highpassCurve(freqs, 60)
	m := Evaluate(freqs, db, nil)
	if math.Abs(m.F3Hz-60)/60 > 0.05 {
		t.Fatalf("expected f3 near 60 Hz, got %f", m.F3Hz)
	}
	if !(m.F10Hz < m.F6Hz && m.F6Hz < m.F3Hz) {
		t.Fatalf("expected f10 < f6 < f3, got %f %f %f", m.F10Hz, m.F6Hz, m.F3Hz)
	}
	flat := Evaluate(freqs, make([]float64, len(freqs)), nil)
	if m.Score <= flat.Score {
		t.Fatalf("limited bass extension should score worse than a flat curve")
	}
}

func TestEvaluateDetectsCrossoverDip(t *testing.T) {
	freqs := logGrid(300, 20, 20000)
	db := make([]float64, len(freqs))
	for i, f := range freqs {
		x := math.Log2(f / 2500)
		db[i] = -6 * math.Exp(-x*x*16)
	}
	m := Evaluate(freqs, db, []float64{2500})
	if m.CrossoverDeviationDB < 5 {
		t.Fatalf("expected a crossover deviation near 6 dB, got %f", m.CrossoverDeviationDB)
	}
	if m.RippleDB < 5 {
		t.Fatalf("expected ripple near 6 dB, got %f", m.RippleDB)
	}
}

func TestEvaluateEmptyInput(t *testing.T) {
	m := Evaluate(nil, nil, nil)
	if m.Score != 1 || m.Similarity != 0 {
		t.Fatalf("empty input should have worst score, got %+v", m)
	}
}

func TestAWeightedLevel(t *testing.T) {
	if got := aWeightedLevel(nil, nil); math.Abs(got+240) > 1e-9 {
		t.Fatalf("empty curve level = %f, want -240", got)
	}
	if got := aWeightedLevel([]float64{1000}, []float64{-20}); math.Abs(got+20) > 0.2 {
		t.Fatalf("1 kHz level = %f, want about -20", got)
	}
	if got := aWeightedLevel([]float64{1000}, []float64{-400}); math.Abs(got+240) > 1e-9 {
		t.Fatalf("level below the floor = %f, want -240", got)
	}
}

func TestRMSEDB(t *testing.T) {
	if got := RMSEDB([]float64{1, 2, 3}, []float64{1, 2, 3}); got != 0 {
		t.Fatalf("identical curves should have zero error, got %f", got)
	}
	if got := RMSEDB([]float64{0, 0}, []float64{3, -3}); math.Abs(got-3) > 1e-12 {
		t.Fatalf("expected 3 dB, got %f", got)
	}
}
