package linalg

import "errors"

// Errors returned by matrix constructors and decompositions.
var (
	ErrBadShape          = errors.New("linalg: invalid shape")
	ErrNonSquare         = errors.New("linalg: matrix is not square")
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")
	ErrSingularMatrix    = errors.New("linalg: singular or ill-conditioned matrix")
	ErrNoConvergence     = errors.New("linalg: eigendecomposition did not converge")
)
