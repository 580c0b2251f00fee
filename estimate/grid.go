package estimate

import (
	"math"

	"github.com/arloliu/guess/integral"
)

// On a uniform grid with step h the trapezoid rule integrates e^{λx}
// exactly up to a constant factor r(λh). The regression stages therefore
// recover λ/r instead of λ, and the true value follows in closed form:
//
//	exponential  λ = c   B = (2/h)·tanh(hc/2)  =>  c = (2/h)·atanh(hB/2)
//	oscillatory  λ = iω  Ω = (2/h)·tan(hω/2)   =>  ω = (2/h)·atan(hΩ/2)

// gridStep returns the step of x when the correction applies.
func gridStep(cfg *Config, x []float64) (float64, bool) {
	if !cfg.GridCorrection {
		return 0, false
	}

	return integral.UniformStep(x, cfg.UniformTolerance)
}

// correctRate maps a regressed exponential rate to the true rate.
// It reports false when no rate reproduces b on the grid.
func correctRate(b, h float64) (float64, bool) {
	u := h * b / 2
	if !(math.Abs(u) < 1) {
		return 0, false
	}

	return 2 / h * math.Atanh(u), true
}

// correctFrequency maps a regressed angular frequency to the true one.
func correctFrequency(omega, h float64) float64 {
	return 2 / h * math.Atan(h*omega/2)
}
