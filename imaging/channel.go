package imaging

import (
	"errors"
	"fmt"
)

// ErrInvalidChannel is returned for channel data whose shape does not match
// the transmitter and receiver lists.
var ErrInvalidChannel = errors.New("imaging: invalid channel")

// Channel is one recording to be imaged: the echo received at Rx from a
// transmission at Tx, compressed against Reference.
type Channel struct {
	Index     int
	Tx, Rx    Point
	Reference []complex128
	Data      []complex128
}

// TDMAChannels enumerates data[rx][tx] in receiver-major order, all
// compressed against ref.
func TDMAChannels(data [][][]complex128, tx, rx []Point, ref []complex128) ([]Channel, error) {
	if err := checkTDMA(data, tx, rx, ref); err != nil {
		return nil, err
	}

	out := make([]Channel, 0, len(tx)*len(rx))
	for r := range rx {
		for t := range tx {
			out = append(out, Channel{
				Index:     len(out),
				Tx:        tx[t],
				Rx:        rx[r],
				Reference: ref,
				Data:      data[r][t],
			})
		}
	}
	return out, nil
}

// CDMAChannels enumerates the receiver recordings data[rx] once per
// transmitter, each time compressed against that transmitter's reference.
// Channels are ordered transmitter-major.
func CDMAChannels(data [][]complex128, tx, rx []Point, refs [][]complex128) ([]Channel, error) {
	if len(tx) == 0 || len(rx) == 0 {
		return nil, fmt.Errorf("%w: %d transmitters, %d receivers", ErrInvalidChannel, len(tx), len(rx))
	}
	if len(refs) != len(tx) {
		return nil, fmt.Errorf("%w: %d references for %d transmitters", ErrInvalidChannel, len(refs), len(tx))
	}
	if len(data) != len(rx) {
		return nil, fmt.Errorf("%w: %d recordings for %d receivers", ErrInvalidChannel, len(data), len(rx))
	}
	for i, ref := range refs {
		if len(ref) == 0 {
			return nil, fmt.Errorf("%w: empty reference for transmitter %d", ErrInvalidChannel, i)
		}
	}
	for r, d := range data {
		if len(d) == 0 {
			return nil, fmt.Errorf("%w: empty recording at receiver %d", ErrInvalidChannel, r)
		}
	}

	out := make([]Channel, 0, len(tx)*len(rx))
	for t := range tx {
		for r := range rx {
			out = append(out, Channel{
				Index:     len(out),
				Tx:        tx[t],
				Rx:        rx[r],
				Reference: refs[t],
				Data:      data[r],
			})
		}
	}
	return out, nil
}

// VirtualPositions returns the midpoint of every transmitter/receiver pair
// in receiver-major order.
func VirtualPositions(tx, rx []Point) []Point {
	out := make([]Point, 0, len(tx)*len(rx))
	for _, r := range rx {
		for _, t := range tx {
			out = append(out, t.Midpoint(r))
		}
	}
	return out
}

// VirtualArrayChannels is TDMAChannels with each pair replaced by the
// monostatic element at its midpoint.
func VirtualArrayChannels(data [][][]complex128, tx, rx []Point, ref []complex128) ([]Channel, error) {
	channels, err := TDMAChannels(data, tx, rx, ref)
	if err != nil {
		return nil, err
	}
	for i := range channels {
		v := channels[i].Tx.Midpoint(channels[i].Rx)
		channels[i].Tx, channels[i].Rx = v, v
	}
	return channels, nil
}

func checkTDMA(data [][][]complex128, tx, rx []Point, ref []complex128) error {
	if len(tx) == 0 || len(rx) == 0 {
		return fmt.Errorf("%w: %d transmitters, %d receivers", ErrInvalidChannel, len(tx), len(rx))
	}
	if len(ref) == 0 {
		return fmt.Errorf("%w: empty reference", ErrInvalidChannel)
	}
	if len(data) != len(rx) {
		return fmt.Errorf("%w: %d recordings for %d receivers", ErrInvalidChannel, len(data), len(rx))
	}
	for r, row := range data {
		if len(row) != len(tx) {
			return fmt.Errorf("%w: receiver %d has %d recordings for %d transmitters", ErrInvalidChannel, r, len(row), len(tx))
		}
		for t, d := range row {
			if len(d) == 0 {
				return fmt.Errorf("%w: empty recording rx=%d tx=%d", ErrInvalidChannel, r, t)
			}
		}
	}
	return nil
}
