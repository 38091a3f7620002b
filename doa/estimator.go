package doa

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-sonar/array"
	"github.com/cwbudde/algo-sonar/linalg"
)

// ErrInvalidSourceCount is returned when the assumed number of sources does
// not leave a noise subspace.
var ErrInvalidSourceCount = errors.New("doa: invalid source count")

// singularTolerance is the noise eigenvalue, relative to the largest one,
// below which the eigenvector method treats R as singular. It also floors
// the denominator of the reciprocal estimators.
const singularTolerance = 1e-12

// Estimator evaluates the spatial power in the direction of a steering
// vector.
type Estimator interface {
	// Dim is the correlation matrix dimension.
	Dim() int
	// Power returns the power estimate for steering vector a.
	Power(a []complex128) (float64, error)
}

// DAS is the classical beamformer.
type DAS struct {
	r *linalg.Matrix
}

// NewDAS returns a classical estimator over r.
func NewDAS(r *linalg.Matrix) (*DAS, error) {
	if err := checkSquare(r); err != nil {
		return nil, err
	}
	return &DAS{r: r}, nil
}

// Dim returns the correlation matrix dimension.
func (d *DAS) Dim() int { return d.r.Rows() }

// Power returns |aᴴRa|/L.
func (d *DAS) Power(a []complex128) (float64, error) {
	a, err := array.AdaptSteeringVector(a, d.Dim())
	if err != nil {
		return 0, err
	}
	q, err := d.r.QuadraticForm(a)
	if err != nil {
		return 0, err
	}
	return math.Hypot(real(q), imag(q)) / float64(len(a)), nil
}

// Capon is the minimum-variance beamformer.
type Capon struct {
	inv *linalg.Matrix
}

// NewCapon inverts r. A singular or ill-conditioned r fails with
// linalg.ErrSingularMatrix; apply diagonal loading first to regularise it.
func NewCapon(r *linalg.Matrix) (*Capon, error) {
	if err := checkSquare(r); err != nil {
		return nil, err
	}
	inv, err := linalg.Inverse(r)
	if err != nil {
		return nil, fmt.Errorf("doa: capon: %w", err)
	}
	return &Capon{inv: inv}, nil
}

// Dim returns the correlation matrix dimension.
func (c *Capon) Dim() int { return c.inv.Rows() }

// Power returns 1/Re(aᴴR⁻¹a).
func (c *Capon) Power(a []complex128) (float64, error) {
	return reciprocalForm(c.inv, a)
}

// MUSIC is the multiple signal classification pseudo-spectrum.
type MUSIC struct {
	noise *linalg.Matrix
}

// NewMUSIC decomposes r and keeps the projector onto the eigenvectors of
// all but the ns largest eigenvalues. With ns = 0 the projector is the
// identity and the spectrum is flat at 1/L.
func NewMUSIC(r *linalg.Matrix, ns int) (*MUSIC, error) {
	e, err := decompose(r, ns)
	if err != nil {
		return nil, err
	}
	noise, err := e.Subspace(ns, len(e.Values), nil)
	if err != nil {
		return nil, err
	}
	return &MUSIC{noise: noise}, nil
}

// Dim returns the correlation matrix dimension.
func (m *MUSIC) Dim() int { return m.noise.Rows() }

// Power returns 1/Re(aᴴEₙEₙᴴa).
func (m *MUSIC) Power(a []complex128) (float64, error) {
	return reciprocalForm(m.noise, a)
}

// Eigenvector is the eigenvector (EV) method.
type Eigenvector struct {
	noise *linalg.Matrix
}

// NewEigenvector decomposes r and keeps Eₙ·Λₙ⁻¹·Eₙᴴ. With ns = 0 this is
// R⁻¹ and the estimator equals Capon. A non-positive noise eigenvalue fails
// with linalg.ErrSingularMatrix.
func NewEigenvector(r *linalg.Matrix, ns int) (*Eigenvector, error) {
	e, err := decompose(r, ns)
	if err != nil {
		return nil, err
	}
	floor := math.Abs(e.Values[0]) * singularTolerance
	for k := ns; k < len(e.Values); k++ {
		if e.Values[k] <= floor {
			return nil, fmt.Errorf("doa: eigenvector: %w: eigenvalue %d is %g", linalg.ErrSingularMatrix, k, e.Values[k])
		}
	}
	noise, err := e.Subspace(ns, len(e.Values), func(lambda float64) float64 { return 1 / lambda })
	if err != nil {
		return nil, err
	}
	return &Eigenvector{noise: noise}, nil
}

// Dim returns the correlation matrix dimension.
func (e *Eigenvector) Dim() int { return e.noise.Rows() }

// Power returns 1/Re(aᴴEₙΛₙ⁻¹Eₙᴴa).
func (e *Eigenvector) Power(a []complex128) (float64, error) {
	return reciprocalForm(e.noise, a)
}

func decompose(r *linalg.Matrix, ns int) (*linalg.Eigen, error) {
	if err := checkSquare(r); err != nil {
		return nil, err
	}
	if ns < 0 || ns >= r.Rows() {
		return nil, fmt.Errorf("%w: %d sources for dimension %d", ErrInvalidSourceCount, ns, r.Rows())
	}
	return linalg.EigenHermitian(r)
}

// reciprocalForm returns 1/Re(aᴴMa). The imaginary part is rounding
// residue and is dropped. The denominator is floored at
// singularTolerance·L·|tr M|, so a steering vector exactly orthogonal to
// the noise subspace yields a large finite power instead of +Inf.
func reciprocalForm(m *linalg.Matrix, a []complex128) (float64, error) {
	a, err := array.AdaptSteeringVector(a, m.Rows())
	if err != nil {
		return 0, err
	}
	q, err := m.QuadraticForm(a)
	if err != nil {
		return 0, err
	}
	den := real(q)
	floor := singularTolerance * float64(len(a)) * math.Abs(real(m.Trace()))
	if den < floor {
		den = floor
	}
	return 1 / den, nil
}

func checkSquare(r *linalg.Matrix) error {
	if r == nil {
		return fmt.Errorf("%w: nil matrix", linalg.ErrBadShape)
	}
	if r.Rows() != r.Cols() {
		return fmt.Errorf("%w: %dx%d", linalg.ErrNonSquare, r.Rows(), r.Cols())
	}
	return nil
}
