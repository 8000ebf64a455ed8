package kinetic

import (
	"log/slog"

	Kt "github.com/maroda/kinetic/types"
)

// DashCandidates are the two anchors perpendicular to the dash axis.
// The first sits a quarter turn clockwise of the start Location,
// the second a quarter turn counter-clockwise.
// When the pair is off-grid it is turned one step onto the grid.
func DashCandidates(m Kt.MotionDescriptor, grid Kt.GridMode) ([2]Kt.Location, bool) {
	start := m.StartLoc
	if _, ok := locIndex(start); !ok {
		return [2]Kt.Location{}, false
	}

	// The axis is always an opposite pair, repair it if the source disagrees
	if HandPathOf(start, m.EndLoc) != Kt.DashPath {
		slog.Debug("Dash endpoints are not opposite, using start axis",
			slog.String("start_loc", start.String()),
			slog.String("end_loc", m.EndLoc.String()))
	}

	c := [2]Kt.Location{Rotate(start, 2), Rotate(start, -2)}
	if !ValidForGrid(c[0], grid) {
		c[0], c[1] = Rotate(c[0], 1), Rotate(c[1], 1)
	}
	return c, true
}

// ResolveDashLocation anchors a dash motion.
// Non-dash motions and unplaceable dashes return NoLocation.
// A NoLocation shift means there is no shift to avoid.
func ResolveDashLocation(m Kt.MotionDescriptor, cat Kt.LetterCategory, shift Kt.Location, grid Kt.GridMode) Kt.Location {
	if m.MotionType != Kt.Dash {
		return Kt.NoLocation
	}

	c, ok := DashCandidates(m, grid)
	if !ok {
		slog.Debug("Dash has no start location, no anchor")
		return Kt.NoLocation
	}

	// No comparison motion for these letters, the alternate anchor is fixed
	if cat.IsPhiDash || cat.IsPsiDash || (cat.IsLambda && m.Turns == 0) {
		return c[1]
	}

	if cat.Type == Kt.Type3 && shift != Kt.NoLocation {
		return avoidShift(c, shift)
	}

	return c[0]
}

// avoidShift never returns the shift location unless both
// candidates are the shift, then the first wins
func avoidShift(c [2]Kt.Location, shift Kt.Location) Kt.Location {
	switch {
	case c[0] == shift && c[1] == shift:
		return c[0]
	case c[0] == shift:
		return c[1]
	case c[1] == shift:
		return c[0]
	}

	// Neither collides outright, take the side away from the shift
	if IsAdjacent(c[0], shift) && !IsAdjacent(c[1], shift) {
		return c[1]
	}
	return c[0]
}
