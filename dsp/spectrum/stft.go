package spectrum

import "fmt"

// STFT is a spectrogram: one modified periodogram per segment.
type STFT struct {
	// Times holds one entry per segment, evenly spaced from 0 to the
	// duration of the input.
	Times []float64
	// Frequencies is the centred frequency axis in Hz.
	Frequencies []float64
	// Power is indexed [frequency][segment].
	Power [][]float64
}

// ComputeSTFT splits data into segments of segLen samples starting every hop
// samples and returns the modified periodogram of each segment.
func ComputeSTFT(data []complex128, segLen, hop int, sampleRate float64, zeroPad int, opts ...Option) (*STFT, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if segLen < 1 || segLen > len(data) {
		return nil, fmt.Errorf("%w: segment length %d for %d samples", ErrInvalidArgument, segLen, len(data))
	}
	if hop < 1 {
		return nil, fmt.Errorf("%w: hop %d", ErrInvalidArgument, hop)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %g", ErrInvalidArgument, sampleRate)
	}
	if zeroPad < 1 {
		return nil, fmt.Errorf("%w: zero padding factor %d", ErrInvalidArgument, zeroPad)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	segments := (len(data)-segLen)/hop + 1
	nf := segLen * zeroPad

	out := &STFT{
		Times:       make([]float64, segments),
		Frequencies: Frequencies(nf, sampleRate),
		Power:       make([][]float64, nf),
	}
	for f := range out.Power {
		out.Power[f] = make([]float64, segments)
	}

	duration := float64(len(data)) / sampleRate
	for k := 0; k < segments; k++ {
		if segments > 1 {
			out.Times[k] = duration * float64(k) / float64(segments-1)
		}
		p, err := modifiedPeriodogram(data[k*hop:k*hop+segLen], zeroPad, cfg)
		if err != nil {
			return nil, err
		}
		for f, v := range p {
			out.Power[f][k] = v
		}
	}
	return out, nil
}
