package pulse

import (
	"fmt"

	"github.com/cwbudde/algo-sonar/dsp/conv"
	"github.com/cwbudde/algo-sonar/dsp/core"
)

// ZeroLagIndex returns the index of zero delay in a 'same'-mode compressed
// signal for a ping of pingLen samples.
func ZeroLagIndex(pingLen int) int {
	return pingLen / 2
}

// Compress matched-filters echo against ping. The output has len(echo)
// samples and is divided by ‖ping‖·‖echo‖, so its magnitude is at most 1.
// A zero-norm input leaves the result unnormalised.
func Compress(ping, echo []complex128) ([]complex128, error) {
	out, err := conv.CorrelateComplexMode(echo, ping, conv.ModeSame)
	if err != nil {
		return nil, fmt.Errorf("pulse: compress: %w", err)
	}

	scale := conv.Norm(ping) * conv.Norm(echo)
	if scale == 0 {
		return out, nil
	}

	inv := complex(1/scale, 0)
	for i := range out {
		out[i] *= inv
	}
	return out, nil
}

// Compressor compresses echoes against a fixed ping, reusing the ping
// spectrum between calls. It is not safe for concurrent use.
type Compressor struct {
	ping     []complex128
	pingNorm float64
	corr     *conv.Correlator
	full     []complex128
}

// NewCompressor prepares a compressor for echoes of up to maxEchoLen
// samples.
func NewCompressor(ping []complex128, maxEchoLen int) (*Compressor, error) {
	corr, err := conv.NewCorrelator(ping, maxEchoLen)
	if err != nil {
		return nil, fmt.Errorf("pulse: compressor: %w", err)
	}
	return &Compressor{
		ping:     append([]complex128(nil), ping...),
		pingNorm: conv.Norm(ping),
		corr:     corr,
	}, nil
}

// Compress behaves like the package-level Compress for the stored ping.
func (c *Compressor) Compress(echo []complex128) ([]complex128, error) {
	if len(echo) == 0 {
		return nil, fmt.Errorf("pulse: compress: %w", conv.ErrEmptyInput)
	}

	c.full = core.EnsureLen(c.full, len(echo)+len(c.ping)-1)

	if err := c.corr.CorrelateTo(c.full, echo); err != nil {
		return nil, fmt.Errorf("pulse: compress: %w", err)
	}

	start := (len(c.ping) - 1) / 2
	out := make([]complex128, len(echo))
	copy(out, c.full[start:])

	scale := c.pingNorm * conv.Norm(echo)
	if scale == 0 {
		return out, nil
	}
	inv := complex(1/scale, 0)
	for i := range out {
		out[i] *= inv
	}
	return out, nil
}
