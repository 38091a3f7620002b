// Package linalg provides the small amount of complex dense linear algebra
// needed by the array-processing packages.
//
// [Matrix] is a row-major complex128 matrix with the products, conjugations
// and permutations used to build and condition spatial correlation matrices.
//
// Eigendecomposition and inversion are delegated to gonum by embedding an
// n×n complex matrix Z = A + jB into the real 2n×2n matrix
//
//	[ A  -B ]
//	[ B   A ]
//
// For Hermitian Z the embedding is real symmetric, so [EigenHermitian] can
// use gonum's symmetric eigensolver. Every eigenvalue of Z appears twice in
// the embedding; eigenvectors are mapped back to C^n and orthonormalised.
// [Inverse] inverts the embedding with an LU factorisation and reports an
// ill-conditioned input as [ErrSingularMatrix].
package linalg
