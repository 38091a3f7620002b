package doa

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-sonar/array"
	"github.com/cwbudde/algo-sonar/dsp/core"
	"github.com/cwbudde/algo-sonar/linalg"
)

// ErrUnknownMethod is returned for a Method outside the defined set.
var ErrUnknownMethod = errors.New("doa: unknown method")

// Method selects a spectrum estimator.
type Method int

const (
	// MethodDAS is the classical delay-and-sum beamformer.
	MethodDAS Method = iota
	// MethodCapon is the minimum-variance beamformer.
	MethodCapon
	// MethodMUSIC is the noise-subspace pseudo-spectrum.
	MethodMUSIC
	// MethodEigenvector is MUSIC weighted by the inverse noise eigenvalues.
	MethodEigenvector
)

// Methods lists every estimator in a stable order.
var Methods = []Method{MethodDAS, MethodCapon, MethodMUSIC, MethodEigenvector}

func (m Method) String() string {
	switch m {
	case MethodDAS:
		return "das"
	case MethodCapon:
		return "capon"
	case MethodMUSIC:
		return "music"
	case MethodEigenvector:
		return "eigenvector"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a name (case-insensitive; "mv" and "ev" are accepted
// aliases) to a Method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "das", "classical", "bartlett":
		return MethodDAS, nil
	case "capon", "mv", "mvdr":
		return MethodCapon, nil
	case "music":
		return MethodMUSIC, nil
	case "eigenvector", "ev":
		return MethodEigenvector, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// New builds the estimator for method. ns is ignored by DAS and Capon.
func New(method Method, r *linalg.Matrix, ns int) (Estimator, error) {
	var (
		est Estimator
		err error
	)
	switch method {
	case MethodDAS:
		est, err = NewDAS(r)
	case MethodCapon:
		est, err = NewCapon(r)
	case MethodMUSIC:
		est, err = NewMUSIC(r, ns)
	case MethodEigenvector:
		est, err = NewEigenvector(r, ns)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
	}
	if err != nil {
		return nil, err
	}
	return est, nil
}

// Spectrum is a power estimate sampled on an angle grid.
type Spectrum struct {
	Angles []float64
	Power  []float64
}

// DB returns 10·log10(P/max P). It returns nil for an empty spectrum.
func (s *Spectrum) DB() []float64 {
	db, err := core.NormalizePowerDB(s.Power)
	if err != nil {
		return nil
	}
	return db
}

// Scan evaluates est for every angle (degrees) using a ULA with the given
// kd. Steering vectors are built for est.Dim() sensors.
func Scan(est Estimator, angles []float64, kd float64) (*Spectrum, error) {
	if len(angles) == 0 {
		return nil, fmt.Errorf("%w: no angles", array.ErrInvalidGrid)
	}
	s := &Spectrum{
		Angles: append([]float64(nil), angles...),
		Power:  make([]float64, len(angles)),
	}
	a := make([]complex128, est.Dim())
	for i, theta := range angles {
		array.SteeringTo(a, theta, kd)
		p, err := est.Power(a)
		if err != nil {
			return nil, fmt.Errorf("doa: angle %v: %w", theta, err)
		}
		s.Power[i] = p
	}
	return s, nil
}
