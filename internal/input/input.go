// Package input defines the control frame produced by a human or AI driver
// and consumed by a ship's per-tick advance, plus the wire codec used to
// carry it over the transport layer.
package input

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Rotating describes a ship's rotational intent for the current tick.
type Rotating uint8

const (
	RotatingStill Rotating = iota
	RotatingLeft
	RotatingRight
)

// String renders the rotation state for logs and debugging.
func (r Rotating) String() string {
	switch r {
	case RotatingStill:
		return "still"
	case RotatingLeft:
		return "left"
	case RotatingRight:
		return "right"
	default:
		return "unknown"
	}
}

// Input is the control frame a driver produces once per observed change and
// a ship's advance step consumes at most once per tick.
type Input struct {
	Quit     bool
	Accel    bool
	Firing   bool
	Rotating Rotating
	Paused   bool
}

// ActorId is duplicated here (rather than imported from simulation) to keep
// the codec free of a dependency on the simulation package; both packages
// alias the same underlying uint32.
type ActorId = uint32

// PlayerInput pairs an Input with the actor it should be applied to.
type PlayerInput struct {
	Player ActorId
	Input  Input
}

// Lookup returns the Input addressed to actorID among inputs, and whether
// one was found. When duplicates target the same actor within a batch, the
// last one in the slice wins, matching the server's "last one wins" rule
// for inputs drained in the same tick.
func Lookup(inputs []PlayerInput, actorID ActorId) (Input, bool) {
	var found Input
	ok := false
	for _, pi := range inputs {
		if pi.Player == actorID {
			found = pi.Input
			ok = true
		}
	}
	return found, ok
}

func encodeBool(w io.Writer, b bool) error {
	var v byte
	if b {
		v = 1
	}
	_, err := w.Write([]byte{v})
	return err
}

func decodeBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, err
	}
	switch buf[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("input: invalid bool byte %d", buf[0])
	}
}

// Encode writes the big-endian, fixed-width wire representation of in to w.
func (in Input) Encode(w io.Writer) error {
	if err := encodeBool(w, in.Quit); err != nil {
		return err
	}
	if err := encodeBool(w, in.Accel); err != nil {
		return err
	}
	if err := encodeBool(w, in.Firing); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint8(in.Rotating)); err != nil {
		return err
	}
	return encodeBool(w, in.Paused)
}

// Decode reads an Input from r, rejecting any byte outside its valid range.
func Decode(r io.Reader) (Input, error) {
	var in Input
	var err error
	if in.Quit, err = decodeBool(r); err != nil {
		return Input{}, err
	}
	if in.Accel, err = decodeBool(r); err != nil {
		return Input{}, err
	}
	if in.Firing, err = decodeBool(r); err != nil {
		return Input{}, err
	}
	var rotating uint8
	if err := binary.Read(r, binary.BigEndian, &rotating); err != nil {
		return Input{}, err
	}
	if rotating > uint8(RotatingRight) {
		return Input{}, fmt.Errorf("input: invalid rotating tag %d", rotating)
	}
	in.Rotating = Rotating(rotating)
	if in.Paused, err = decodeBool(r); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Encode writes the wire representation of a PlayerInput to w.
func (pi PlayerInput) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.BigEndian, pi.Player); err != nil {
		return err
	}
	return pi.Input.Encode(w)
}

// DecodePlayerInput reads a PlayerInput from r.
func DecodePlayerInput(r io.Reader) (PlayerInput, error) {
	var pi PlayerInput
	if err := binary.Read(r, binary.BigEndian, &pi.Player); err != nil {
		return PlayerInput{}, err
	}
	in, err := Decode(r)
	if err != nil {
		return PlayerInput{}, err
	}
	pi.Input = in
	return pi, nil
}
