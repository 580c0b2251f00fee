package estimate

import (
	"math"

	"github.com/arloliu/guess/integral"
)

// SinParams describes y = A + B·sin(Omega·x) + C·cos(Omega·x).
type SinParams struct {
	A     float64
	B     float64
	C     float64
	Omega float64
}

// Eval returns the model value at x.
func (p SinParams) Eval(x float64) float64 {
	s, c := math.Sincos(p.Omega * x)

	return p.A + p.B*s + p.C*c
}

// Amplitude returns ρ such that the model equals A + ρ·sin(Omega·x + Phase()).
func (p SinParams) Amplitude() float64 {
	return math.Hypot(p.B, p.C)
}

// Phase returns φ such that the model equals A + Amplitude()·sin(Omega·x + φ).
func (p SinParams) Phase() float64 {
	return math.Atan2(p.C, p.B)
}

// sinStage holds one intermediate sinusoid estimate.
type sinStage struct {
	SinParams
	rho float64
	phi float64
}

func newSinStage(a, b, c, omega float64) sinStage {
	p := SinParams{A: a, B: b, C: c, Omega: omega}

	return sinStage{SinParams: p, rho: p.Amplitude(), phi: p.Phase()}
}

// Sin estimates the parameters of y = a + b·sin(ωx) + c·cos(ωx).
//
// The estimate is refined in three stages:
//  1. The second cumulative integral linearizes y'' = -ω²(y - a) and gives
//     a first frequency, offset and phase.
//  2. The samples are unwrapped into a sawtooth phase ωx + φ, and a straight
//     line through it refines ω and φ.
//  3. With ω fixed, a linear fit on sin(ωx) and cos(ωx) refines a, b and c.
//
// Parameters:
//   - x: Abscissae, in any order
//   - y: Ordinates, same length as x, at least 4 points
//   - opts: Estimator options
//
// Returns:
//   - SinParams: Estimated a, b, c and ω
//   - error: ErrNonPhysicalFit when the data does not oscillate, or an input
//     or solver error
func Sin(x, y []float64, opts ...Option) (SinParams, error) {
	const name = "sin"

	cfg, err := buildConfig(opts)
	if err != nil {
		return SinParams{}, err
	}

	xs, ys, err := prepare(name, &cfg, x, y, 4)
	if err != nil {
		return SinParams{}, err
	}

	s1, err := sinIntegralStage(name, &cfg, xs, ys)
	if err != nil {
		return SinParams{}, err
	}

	s2, err := sinSawtoothStage(name, &cfg, xs, ys, s1)
	if err != nil {
		return SinParams{}, err
	}

	return sinFinalStage(name, &cfg, xs, ys, s2.Omega)
}

func sinIntegralStage(name string, cfg *Config, xs, ys []float64) (sinStage, error) {
	n := len(xs)
	_, ss := integral.Second(xs, ys)

	a := newDesign(n, 4)
	for k := range n {
		a.Set(k, 0, ss[k])
		a.Set(k, 1, xs[k]*xs[k])
		a.Set(k, 2, xs[k])
		a.Set(k, 3, 1)
	}

	theta, err := solveStage(name, "integral", cfg.Solver, a, ys)
	if err != nil {
		return sinStage{}, err
	}
	A, B, C, D := theta[0], theta[1], theta[2], theta[3]

	if !(A < 0) {
		return sinStage{}, nonPhysical(name, "integral", "negative curvature", "A = %g implies no oscillation", A)
	}

	big := math.Sqrt(-A)
	omega := big
	if h, ok := gridStep(cfg, xs); ok {
		omega = correctFrequency(big, h)
	}

	// The polynomial part B·x² + C·x + D carries y and y'/ω at x₁.
	offset := -2 * B / A
	x1 := xs[0]
	y1 := B*x1*x1 + C*x1 + D
	d1 := (C + 2*B*x1) / big

	sn, cs := math.Sincos(omega * x1)
	st := newSinStage(
		offset,
		(y1-offset)*sn+d1*cs,
		(y1-offset)*cs-d1*sn,
		omega,
	)
	if err := checkFinite(name, "integral", []string{"a", "b", "c", "omega"}, st.A, st.B, st.C, st.Omega); err != nil {
		return sinStage{}, err
	}
	if st.rho == 0 {
		return sinStage{}, nonPhysical(name, "integral", "non-zero amplitude", "oscillation amplitude is zero")
	}

	return st, nil
}

func sinSawtoothStage(name string, cfg *Config, xs, ys []float64, s1 sinStage) (sinStage, error) {
	n := len(xs)
	a := newDesign(n, 2)
	phase := make([]float64, n)
	for k := range n {
		turns := math.Round((s1.Omega*xs[k] + s1.phi) / math.Pi)
		d := ys[k] - s1.A

		var ang float64
		if math.Abs(d) >= s1.rho {
			ang = math.Copysign(math.Pi/2, d)
		} else {
			ang = math.Atan(d / math.Sqrt(s1.rho*s1.rho-d*d))
		}
		if math.Mod(turns, 2) != 0 {
			ang = -ang
		}

		phase[k] = ang + turns*math.Pi
		a.Set(k, 0, xs[k])
		a.Set(k, 1, 1)
	}

	theta, err := solveStage(name, "sawtooth", cfg.Solver, a, phase)
	if err != nil {
		return sinStage{}, err
	}

	omega, phi := theta[0], theta[1]
	if !(omega > 0) {
		return sinStage{}, nonPhysical(name, "sawtooth", "positive frequency", "omega = %g", omega)
	}

	sn, cs := math.Sincos(phi)
	st := sinStage{
		SinParams: SinParams{A: s1.A, B: s1.rho * cs, C: s1.rho * sn, Omega: omega},
		rho:       s1.rho,
		phi:       phi,
	}

	return st, checkFinite(name, "sawtooth", []string{"omega", "phi"}, omega, phi)
}

func sinFinalStage(name string, cfg *Config, xs, ys []float64, omega float64) (SinParams, error) {
	n := len(xs)
	a := newDesign(n, 3)
	for k := range n {
		sn, cs := math.Sincos(omega * xs[k])
		a.Set(k, 0, 1)
		a.Set(k, 1, sn)
		a.Set(k, 2, cs)
	}

	theta, err := solveStage(name, "final", cfg.Solver, a, ys)
	if err != nil {
		return SinParams{}, err
	}

	p := SinParams{A: theta[0], B: theta[1], C: theta[2], Omega: omega}
	if err := checkFinite(name, "final", []string{"a", "b", "c"}, p.A, p.B, p.C); err != nil {
		return SinParams{}, err
	}

	return p, nil
}
