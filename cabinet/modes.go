package cabinet

import (
	"math"

	pdefd "github.com/cwbudde/algo-pde/fd"
	pdepoisson "github.com/cwbudde/algo-pde/poisson"
)

const (
	speedOfSoundMS = 343.0
	modeGridPoints = 64
)

// axialModeHz returns the lowest standing-wave frequency between two
// parallel walls lengthM apart, from the discrete Laplacian spectrum.
func axialModeHz(lengthM float64, fb *fallbacks) float64 {
	if !(lengthM > 0) {
		return 0
	}
	h := lengthM / float64(modeGridPoints+1)
	ev := pdefd.Eigenvalues(modeGridPoints, h, pdepoisson.Dirichlet)
	exact := speedOfSoundMS / (2 * lengthM)
	if len(ev) == 0 {
		return roundTo(exact, 0.1)
	}
	k := math.Sqrt(math.Abs(ev[0]))
	f := fb.finiteMin("internal mode", speedOfSoundMS*k/(2*math.Pi), 1, exact)
	return roundTo(f, 0.1)
}
