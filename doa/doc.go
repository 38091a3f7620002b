// Package doa estimates spatial power spectra from a correlation matrix.
//
// Four estimators are provided:
//
//   - DAS: the classical delay-and-sum (Bartlett) beamformer, aᴴRa/L.
//   - Capon: the minimum-variance distortionless response, 1/(aᴴR⁻¹a).
//   - MUSIC: 1/(aᴴEₙEₙᴴa), with Eₙ the noise-subspace eigenvectors.
//   - Eigenvector: MUSIC with each noise eigenvector weighted by 1/λ.
//
// Each estimator precomputes what it needs from R once (inverse or
// eigendecomposition) and then evaluates steering vectors cheaply. Steering
// vectors longer than the matrix dimension are truncated, which is what a
// spatially smoothed matrix requires.
package doa
