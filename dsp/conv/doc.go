// Package conv provides cross-correlation of complex sequences for matched
// filtering and delay estimation.
//
// # Usage
//
// One-shot correlation selects direct summation or FFT correlation from the
// input sizes:
//
//	corr, err := conv.CorrelateComplex(echo, ping)
//	peakIdx, _ := conv.FindPeakComplex(corr)
//	lag := conv.LagFromIndex(peakIdx, len(ping))
//
// Output can be trimmed to the first input's length, numpy style:
//
//	same, err := conv.CorrelateComplexMode(echo, ping, conv.ModeSame)
//
// For repeated correlation against the same template, create a reusable
// correlator to avoid recomputing the template spectrum:
//
//	c, err := conv.NewCorrelator(ping, maxEchoLen)
//	corr, err := c.Correlate(echo)
//
// FFT sizes are rounded up to a power of two.
package conv
