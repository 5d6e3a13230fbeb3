// Package rotation maps a signed rotation request onto an ffmpeg video
// filter fragment. Right angles use the discrete transpose filter; every
// other angle falls back to the continuous rotate filter in radians.
package rotation

import (
	"errors"
	"fmt"
	"math"
)

// Direction is the rotation sense requested on the command line.
type Direction string

const (
	Clockwise        Direction = "cw"
	Counterclockwise Direction = "ccw"
)

// Request is a resolved rotation option. At most one direction can be
// requested per run; Resolve enforces that.
type Request struct {
	Degrees   float64
	Direction Direction
}

var (
	// ErrConflictingRotation is returned when both --rotate-cw and
	// --rotate-ccw are supplied.
	ErrConflictingRotation = errors.New("only one of --rotate-cw or --rotate-ccw may be used at a time")

	// ErrInvalidRotationAngle is returned for values that are not real
	// numbers (NaN or infinity).
	ErrInvalidRotationAngle = errors.New("invalid rotation angle")
)

// Resolve builds a Request from the two mutually exclusive CLI flags.
// Returns nil when neither flag was set.
func Resolve(cwSet bool, cw float64, ccwSet bool, ccw float64) (*Request, error) {
	switch {
	case cwSet && ccwSet:
		return nil, ErrConflictingRotation
	case cwSet:
		return &Request{Degrees: cw, Direction: Clockwise}, nil
	case ccwSet:
		return &Request{Degrees: ccw, Direction: Counterclockwise}, nil
	}
	return nil, nil
}

// Map converts a signed rotation into a video filter fragment.
//
// Counterclockwise degrees are negated, then the angle is reduced modulo
// 360 into [0, 360). The canonical right angles map to transpose filters
// (180 is a double transpose); any other angle becomes a rotate filter
// parameterized in radians, with bilinear interpolation. Clockwise is
// positive throughout, matching ffmpeg's rotate convention.
func Map(degrees float64, dir Direction) (string, error) {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return "", fmt.Errorf("%w: %v %s", ErrInvalidRotationAngle, degrees, dir)
	}

	if dir == Counterclockwise {
		degrees = -degrees
	}

	a := math.Mod(degrees, 360)
	if a < 0 {
		a += 360
	}

	switch a {
	case 90:
		return "transpose=1", nil
	case 270:
		return "transpose=2", nil
	case 180:
		return "transpose=2,transpose=2", nil
	}
	return fmt.Sprintf("rotate=%.6f:bilinear=1", a*math.Pi/180), nil
}

// Fragment maps the request to its filter fragment.
func (r *Request) Fragment() (string, error) {
	return Map(r.Degrees, r.Direction)
}

// String renders the request for plan output, e.g. "90 degrees cw".
func (r *Request) String() string {
	return fmt.Sprintf("%g degrees %s", r.Degrees, r.Direction)
}
