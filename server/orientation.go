package kinetic

import (
	"log/slog"
	"math"

	Kt "github.com/maroda/kinetic/types"
)

// Toggle swaps an orientation for its complement.
// Anything outside a complementary pair comes back unchanged.
func Toggle(o Kt.Orientation) Kt.Orientation {
	switch o {
	case Kt.In:
		return Kt.Out
	case Kt.Out:
		return Kt.In
	case Kt.Clock:
		return Kt.Counter
	case Kt.Counter:
		return Kt.Clock
	default:
		return o
	}
}

// IsValidTurns checks t against the quantized turn values
func IsValidTurns(t Kt.Turns) bool {
	for _, v := range Kt.ValidTurns {
		if t == v {
			return true
		}
	}
	return false
}

// ResolveEndOrientation computes where the prop faces after the motion.
// Invalid or incomplete input returns the start orientation.
func ResolveEndOrientation(m Kt.MotionDescriptor) Kt.Orientation {
	start := m.StartOrientation

	if m.MotionType == Kt.Float {
		if m.StartLoc == Kt.NoLocation || m.EndLoc == Kt.NoLocation {
			slog.Debug("Float motion without locations, keeping start orientation",
				slog.String("start_ori", start.String()))
			return start
		}
		if end, ok := floatOrientation(start, HandPathOf(m.StartLoc, m.EndLoc)); ok {
			return end
		}
		return start
	}

	if !IsValidTurns(m.Turns) {
		slog.Debug("Invalid turns, keeping start orientation",
			slog.String("turns", m.Turns.String()),
			slog.String("motion_type", m.MotionType.String()))
		return start
	}

	t := float64(m.Turns)
	if t == math.Trunc(t) {
		return wholeTurnOrientation(m.MotionType, start, math.Mod(t, 2) == 0)
	}
	return halfTurnOrientation(m.MotionType, start, m.RotationDirection, math.Mod(t, 2) == 0.5)
}

// floatOrientation quarter-turns the prop along the handpath
func floatOrientation(o Kt.Orientation, h Kt.HandPath) (Kt.Orientation, bool) {
	switch h {
	case Kt.ClockwisePath:
		switch o {
		case Kt.In:
			return Kt.Clock, true
		case Kt.Out:
			return Kt.Counter, true
		case Kt.Clock:
			return Kt.Out, true
		case Kt.Counter:
			return Kt.In, true
		}
	case Kt.CounterClockwisePath:
		switch o {
		case Kt.In:
			return Kt.Counter, true
		case Kt.Out:
			return Kt.Clock, true
		case Kt.Clock:
			return Kt.In, true
		case Kt.Counter:
			return Kt.Out, true
		}
	}
	return o, false
}

// wholeTurnOrientation flips on odd turns for pro/static
// and on even turns for anti/dash
func wholeTurnOrientation(mt Kt.MotionType, o Kt.Orientation, even bool) Kt.Orientation {
	switch mt {
	case Kt.Pro, Kt.Static:
		if even {
			return o
		}
		return Toggle(o)
	case Kt.Anti, Kt.Dash:
		if even {
			return Toggle(o)
		}
		return o
	default:
		slog.Debug("No whole turn rule for motion type", slog.String("motion_type", mt.String()))
		return o
	}
}

// halfTurnOrientation reads the anti/dash table and mirrors it for pro/static.
// branchA is turns mod 2 == 0.5.
func halfTurnOrientation(mt Kt.MotionType, o Kt.Orientation, d Kt.RotationDirection, branchA bool) Kt.Orientation {
	if d == Kt.NoRotationDirection {
		d = Kt.Clockwise
	}

	a, b, ok := antiHalfTurn(o, d)
	if !ok {
		return o
	}

	switch mt {
	case Kt.Anti, Kt.Dash:
		if branchA {
			return a
		}
		return b
	case Kt.Pro, Kt.Static:
		if branchA {
			return b
		}
		return a
	default:
		slog.Debug("No half turn rule for motion type", slog.String("motion_type", mt.String()))
		return o
	}
}

// antiHalfTurn returns the anti/dash results for branch A and branch B
func antiHalfTurn(o Kt.Orientation, d Kt.RotationDirection) (Kt.Orientation, Kt.Orientation, bool) {
	switch d {
	case Kt.Clockwise:
		switch o {
		case Kt.In:
			return Kt.Clock, Kt.Counter, true
		case Kt.Out:
			return Kt.Counter, Kt.Clock, true
		case Kt.Clock:
			return Kt.Out, Kt.In, true
		case Kt.Counter:
			return Kt.In, Kt.Out, true
		}
	case Kt.CounterClockwise:
		switch o {
		case Kt.In:
			return Kt.Counter, Kt.Clock, true
		case Kt.Out:
			return Kt.Clock, Kt.Counter, true
		case Kt.Clock:
			return Kt.In, Kt.Out, true
		case Kt.Counter:
			return Kt.Out, Kt.In, true
		}
	}
	return o, o, false
}
