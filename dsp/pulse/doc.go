// Package pulse generates linear frequency modulated sonar pulses and
// compresses received echoes with a normalised matched filter.
//
// Compressed output uses 'same' alignment: the result has the length of the
// echo and index ZeroLagIndex(len(ping)) holds zero delay. Echoes whose pulse
// centre arrives at sample d therefore peak at output index d.
package pulse
