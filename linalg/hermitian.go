package linalg

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Residual norms used when mapping real eigenvectors of the embedding back to
// C^n. A candidate is accepted when its component orthogonal to the vectors
// already accepted is at least this large.
const (
	acceptResidual   = 0.3
	fallbackResidual = 1e-6
)

// Eigen holds the eigendecomposition of a Hermitian matrix.
type Eigen struct {
	// Values are the real eigenvalues in descending order.
	Values []float64
	// Vectors holds the orthonormal eigenvectors as columns, in the order of
	// Values.
	Vectors *Matrix
}

// Vector returns a copy of eigenvector k.
func (e *Eigen) Vector(k int) []complex128 {
	return e.Vectors.Column(k)
}

// Subspace returns Σ w(λ_k)·e_k·e_kᴴ over eigenpairs k in [from, to).
// A nil weight means 1 for every pair, giving the orthogonal projector onto
// the selected eigenvectors.
func (e *Eigen) Subspace(from, to int, weight func(lambda float64) float64) (*Matrix, error) {
	n := len(e.Values)
	if from < 0 || to > n || from > to {
		return nil, fmt.Errorf("%w: subspace [%d,%d) of %d", ErrDimensionMismatch, from, to, n)
	}
	out := newMatrix(n, n)
	for k := from; k < to; k++ {
		w := 1.0
		if weight != nil {
			w = weight(e.Values[k])
		}
		v := e.Vectors.Column(k)
		for i := 0; i < n; i++ {
			wi := complex(w, 0) * v[i]
			row := out.data[i*n : (i+1)*n]
			for j := 0; j < n; j++ {
				row[j] += wi * cmplx.Conj(v[j])
			}
		}
	}
	return out, nil
}

// EigenHermitian computes the eigendecomposition of a Hermitian matrix.
//
// Only the Hermitian part ½(m + mᴴ) is decomposed, so an anti-Hermitian
// residue (for example rounding noise in an estimated correlation matrix)
// is discarded. Eigenvalues are the real Rayleigh quotients of the returned
// eigenvectors, sorted in descending order.
func EigenHermitian(m *Matrix) (*Eigen, error) {
	if m == nil || m.rows == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrBadShape)
	}
	if m.rows != m.cols {
		return nil, fmt.Errorf("%w: %dx%d", ErrNonSquare, m.rows, m.cols)
	}

	n := m.rows
	h := hermitianPart(m)

	sym := mat.NewSymDense(2*n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			z := h.data[i*n+j]
			re, im := real(z), imag(z)
			sym.SetSym(i, j, re)
			sym.SetSym(n+i, n+j, re)
			sym.SetSym(i, n+j, -im)
			sym.SetSym(j, n+i, im)
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, ErrNoConvergence
	}
	var real2n mat.Dense
	es.VectorsTo(&real2n)

	// Walk real eigenvectors from the largest eigenvalue down.
	candidates := make([][]complex128, 2*n)
	for k := 0; k < 2*n; k++ {
		col := 2*n - 1 - k
		c := make([]complex128, n)
		for i := 0; i < n; i++ {
			c[i] = complex(real2n.At(i, col), real2n.At(n+i, col))
		}
		candidates[k] = c
	}

	basis := make([][]complex128, 0, n)
	used := make([]bool, len(candidates))
	for _, threshold := range []float64{acceptResidual, fallbackResidual} {
		for k, c := range candidates {
			if len(basis) == n {
				break
			}
			if used[k] {
				continue
			}
			if v, ok := orthonormalize(c, basis, threshold); ok {
				basis = append(basis, v)
				used[k] = true
			}
		}
	}
	if len(basis) < n {
		return nil, fmt.Errorf("%w: recovered %d of %d eigenvectors", ErrNoConvergence, len(basis), n)
	}

	type pair struct {
		value  float64
		vector []complex128
	}
	pairs := make([]pair, n)
	for k, v := range basis {
		q, _ := h.QuadraticForm(v)
		pairs[k] = pair{value: real(q), vector: v}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].value > pairs[j].value })

	e := &Eigen{Values: make([]float64, n), Vectors: newMatrix(n, n)}
	for k, p := range pairs {
		e.Values[k] = p.value
		for i := 0; i < n; i++ {
			e.Vectors.data[i*n+k] = p.vector[i]
		}
	}
	return e, nil
}

// orthonormalize removes the components of c along basis (modified
// Gram-Schmidt, run twice for stability) and normalises the residual.
func orthonormalize(c []complex128, basis [][]complex128, threshold float64) ([]complex128, bool) {
	v := append([]complex128(nil), c...)
	for pass := 0; pass < 2; pass++ {
		for _, u := range basis {
			var proj complex128
			for i := range u {
				proj += cmplx.Conj(u[i]) * v[i]
			}
			for i := range v {
				v[i] -= proj * u[i]
			}
		}
	}
	norm := vectorNorm(v)
	if norm < threshold {
		return nil, false
	}
	for i := range v {
		v[i] /= complex(norm, 0)
	}
	return v, true
}

func vectorNorm(v []complex128) float64 {
	var sum float64
	for _, z := range v {
		sum += real(z)*real(z) + imag(z)*imag(z)
	}
	return math.Sqrt(sum)
}

// Inverse returns m⁻¹. Singular or ill-conditioned input (condition number
// above gonum's ConditionTolerance) fails with ErrSingularMatrix; the
// matrix is never regularised.
func Inverse(m *Matrix) (*Matrix, error) {
	if m == nil || m.rows == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrBadShape)
	}
	if m.rows != m.cols {
		return nil, fmt.Errorf("%w: %dx%d", ErrNonSquare, m.rows, m.cols)
	}

	n := m.rows
	embedded := mat.NewDense(2*n, 2*n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			z := m.data[i*n+j]
			embedded.Set(i, j, real(z))
			embedded.Set(n+i, n+j, real(z))
			embedded.Set(i, n+j, -imag(z))
			embedded.Set(n+i, j, imag(z))
		}
	}

	var inv mat.Dense
	if err := inv.Inverse(embedded); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: condition number %.3g", ErrSingularMatrix, float64(cond))
		}
		return nil, fmt.Errorf("%w: %w", ErrSingularMatrix, err)
	}

	out := newMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.data[i*n+j] = complex(inv.At(i, j), inv.At(n+i, j))
		}
	}
	return out, nil
}
