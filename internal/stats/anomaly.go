package stats

import "math"

// Verdict classifies a player's declaring-versus-defending error gap
// relative to the field.
type Verdict int

const (
	// VerdictInsufficient means a sample was too small for a z-score.
	VerdictInsufficient Verdict = iota
	// VerdictFlagged means the subject defends far better than their own
	// declaring, compared to the field. A statistical flag only.
	VerdictFlagged
	// VerdictNormal means the usual human pattern, defense weaker than
	// declaring, holds clearly.
	VerdictNormal
	// VerdictInconclusive means the gap is within noise.
	VerdictInconclusive
)

func (v Verdict) String() string {
	switch v {
	case VerdictFlagged:
		return "flagged"
	case VerdictNormal:
		return "normal"
	case VerdictInconclusive:
		return "inconclusive"
	default:
		return "insufficient data"
	}
}

// Comparison is the outcome of testing a subject's error gap against a
// baseline. Z and P are meaningful only when Defined is true.
type Comparison struct {
	Subject      string
	Baseline     string
	SubjectDiff  float64 // defending minus declaring error rate, percent
	BaselineDiff float64
	Z            float64
	P            float64 // one-tailed, lower
	Defined      bool
	Verdict      Verdict
}

// Compare runs a two-sample z-test on the defending-minus-declaring
// error gap of subject versus baseline. Either side short of minSamples
// plays in either role yields an insufficient-data verdict with no
// numbers.
func Compare(subject, baseline *PlayerStats) Comparison {
	c := Comparison{Subject: subject.Name, Baseline: baseline.Name}
	subjSE, ok := subject.DiffSE()
	if !ok {
		return c
	}
	baseSE, ok := baseline.DiffSE()
	if !ok {
		return c
	}
	denom := math.Sqrt(subjSE*subjSE + baseSE*baseSE)
	if denom == 0 {
		return c
	}

	c.SubjectDiff = subject.DefMinusDecl()
	c.BaselineDiff = baseline.DefMinusDecl()
	c.Z = (c.SubjectDiff - c.BaselineDiff) / denom
	c.P = Phi(c.Z)
	c.Defined = true
	switch {
	case c.Z < -1.96:
		c.Verdict = VerdictFlagged
	case c.Z > 1.96:
		c.Verdict = VerdictNormal
	default:
		c.Verdict = VerdictInconclusive
	}
	return c
}

// Phi is the standard normal CDF.
func Phi(z float64) float64 {
	return 0.5 * (1 + erf(z/math.Sqrt2))
}

// erf approximates the Gauss error function with the Abramowitz and
// Stegun 7.1.26 polynomial, good to about 1.5e-7. Kept instead of
// math.Erf so borderline z-scores classify identically across releases.
func erf(x float64) float64 {
	const (
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
		p  = 0.3275911
	)
	sign := 1.0
	if x < 0 {
		sign = -1
		x = -x
	}
	t := 1 / (1 + p*x)
	y := 1 - (((((a5*t+a4)*t+a3)*t+a2)*t+a1)*t)*math.Exp(-x*x)
	return sign * y
}
