// Package crossover models passive-style crossover filters: closed-form
// analog magnitudes for response simulation and a digital biquad
// realization of a whole multi-way network.
package crossover

import "math"

// MagnitudeFloorDB is the lowest value the analog functions return.
const MagnitudeFloorDB = -240.0

// Order returns the filter order for a slope in dB/octave (6 dB per order).
func Order(slopeDBPerOct int) int {
	n := slopeDBPerOct / 6
	if n < 1 {
		return 1
	}
	return n
}

// LowpassDB is the magnitude in dB of an order-n low-pass at cutoff fc.
// Odd orders contribute one first-order section; the remaining n/2
// second-order sections share the resonance q.
func LowpassDB(f, fc float64, order int, q float64) float64 {
	w, ok := normalized(f, fc)
	if !ok {
		return MagnitudeFloorDB
	}
	w2 := w * w
	mag2 := 1.0
	if order%2 == 1 {
		mag2 *= 1 / (1 + w2)
	}
	d := secondOrderDenominator(w, q)
	for i := 0; i < order/2; i++ {
		mag2 /= d
	}
	return powerToDB(mag2)
}

// HighpassDB is the magnitude in dB of an order-n high-pass at cutoff fc.
func HighpassDB(f, fc float64, order int, q float64) float64 {
	w, ok := normalized(f, fc)
	if !ok {
		return MagnitudeFloorDB
	}
	w2 := w * w
	mag2 := 1.0
	if order%2 == 1 {
		mag2 *= w2 / (1 + w2)
	}
	d := secondOrderDenominator(w, q)
	for i := 0; i < order/2; i++ {
		mag2 *= w2 * w2 / d
	}
	return powerToDB(mag2)
}

// BandDB is the magnitude of a band limited by a high-pass at lowHz and a
// low-pass at highHz. A zero edge leaves that side open.
func BandDB(f, lowHz, highHz float64, order int, q float64) float64 {
	db := 0.0
	if lowHz > 0 {
		db += HighpassDB(f, lowHz, order, q)
	}
	if highHz > 0 {
		db += LowpassDB(f, highHz, order, q)
	}
	return math.Max(db, MagnitudeFloorDB)
}

func normalized(f, fc float64) (float64, bool) {
	if !(f > 0) || !(fc > 0) || math.IsInf(f, 0) || math.IsInf(fc, 0) {
		return 0, false
	}
	return f / fc, true
}

func secondOrderDenominator(w, q float64) float64 {
	if !(q > 0) {
		q = math.Sqrt2 / 2
	}
	a := 1 - w*w
	b := w / q
	return a*a + b*b
}

func powerToDB(mag2 float64) float64 {
	if !(mag2 > 0) || math.IsInf(mag2, 0) {
		return MagnitudeFloorDB
	}
	return math.Max(10*math.Log10(mag2), MagnitudeFloorDB)
}
