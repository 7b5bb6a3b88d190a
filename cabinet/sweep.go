package cabinet

import (
	"math"
	"runtime"
	"sync"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Curve is a simulated response over a frequency grid. VoicesDB is indexed
// by voice, then by frequency.
type Curve struct {
	FrequenciesHz []float64   `json:"frequencies_hz"`
	VoicesDB      [][]float64 `json:"voices_db"`
	GlobalDB      []float64   `json:"global_db"`
}

// LogFrequencies returns n logarithmically spaced frequencies from lo to
// hi inclusive.
func LogFrequencies(n int, lo, hi float64) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 || !(lo > 0) || !(hi > lo) {
		return []float64{lo}
	}
	out := make([]float64, n)
	ratio := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}
	out[n-1] = hi
	return out
}

// Sweep evaluates the response over freqs using up to workers goroutines
// (0 means GOMAXPROCS). Each frequency is computed independently, so the
// result does not depend on the worker count.
func Sweep(cfg Config, elec Electronics, freqs []float64, workers int) Curve {
	n := len(freqs)
	c := Curve{
		FrequenciesHz: append([]float64(nil), freqs...),
		VoicesDB:      make([][]float64, cfg.Voices),
		GlobalDB:      make([]float64, n),
	}
	amps := make([][]float64, cfg.Voices)
	for v := range c.VoicesDB {
		c.VoicesDB[v] = make([]float64, n)
		amps[v] = make([]float64, n)
	}
	if n == 0 {
		return c
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for k := start; k < end; k++ {
				for v := range c.VoicesDB {
					db := VoiceResponseDB(freqs[k], v, cfg, elec)
					c.VoicesDB[v][k] = db
					amps[v][k] = dspcore.DBToLinear(db)
				}
			}
		}(start, end)
	}
	wg.Wait()

	sum := make([]float64, n)
	for v := range amps {
		vecmath.AddBlockInPlace(sum, amps[v])
	}
	for k, a := range sum {
		c.GlobalDB[k] = amplitudeToResponseDB(a)
	}
	return c
}
