package kinetic

import (
	Kt "github.com/maroda/kinetic/types"
)

// Short names keep the handpath table readable
const (
	cw = Kt.ClockwisePath
	cc = Kt.CounterClockwisePath
	da = Kt.DashPath
	st = Kt.StaticPath
)

// handpaths is indexed [start][end] in clockwise compass order:
// N, NE, E, SE, S, SW, W, NW
var handpaths = [8][8]Kt.HandPath{
	{st, cw, cw, cw, da, cc, cc, cc}, // N
	{cc, st, cw, cw, cw, da, cc, cc}, // NE
	{cc, cc, st, cw, cw, cw, da, cc}, // E
	{cc, cc, cc, st, cw, cw, cw, da}, // SE
	{da, cc, cc, cc, st, cw, cw, cw}, // S
	{cw, da, cc, cc, cc, st, cw, cw}, // SW
	{cw, cw, da, cc, cc, cc, st, cw}, // W
	{cw, cw, cw, da, cc, cc, cc, st}, // NW
}

// locIndex converts a Location into its table index
func locIndex(l Kt.Location) (int, bool) {
	if l < Kt.North || l > Kt.NorthWest {
		return 0, false
	}
	return int(l - Kt.North), true
}

// HandPathOf classifies the start/end pair.
// An absent Location yields NoHandPath.
func HandPathOf(start, end Kt.Location) Kt.HandPath {
	si, ok := locIndex(start)
	if !ok {
		return Kt.NoHandPath
	}
	ei, ok := locIndex(end)
	if !ok {
		return Kt.NoHandPath
	}
	return handpaths[si][ei]
}

// Rotate moves a Location by eighth-turn steps,
// positive is clockwise
func Rotate(l Kt.Location, steps int) Kt.Location {
	i, ok := locIndex(l)
	if !ok {
		return Kt.NoLocation
	}
	i = ((i+steps)%8 + 8) % 8
	return Kt.North + Kt.Location(i)
}

// Opposite is the diametrically opposed Location
func Opposite(l Kt.Location) Kt.Location {
	return Rotate(l, 4)
}

// DiagonalBetween returns the Location halfway between
// two Locations that sit a quarter turn apart.
// N,E gives NE and NE,SE gives E.
func DiagonalBetween(a, b Kt.Location) (Kt.Location, bool) {
	ai, ok := locIndex(a)
	if !ok {
		return Kt.NoLocation, false
	}
	bi, ok := locIndex(b)
	if !ok {
		return Kt.NoLocation, false
	}

	switch (bi - ai + 8) % 8 {
	case 2:
		return Rotate(a, 1), true
	case 6:
		return Rotate(a, -1), true
	default:
		return Kt.NoLocation, false
	}
}

// IsCardinal is true for N, E, S and W
func IsCardinal(l Kt.Location) bool {
	switch l {
	case Kt.North, Kt.East, Kt.South, Kt.West:
		return true
	default:
		return false
	}
}

// IsAdjacent is true when two Locations are one eighth-turn apart
func IsAdjacent(a, b Kt.Location) bool {
	return a != Kt.NoLocation && (Rotate(a, 1) == b || Rotate(a, -1) == b)
}

// GridModeOf infers the grid a hand position belongs to
func GridModeOf(l Kt.Location) Kt.GridMode {
	if IsCardinal(l) {
		return Kt.Diamond
	}
	return Kt.Box
}

// ValidForGrid reports whether l is a dash anchor for the grid
func ValidForGrid(l Kt.Location, g Kt.GridMode) bool {
	if _, ok := locIndex(l); !ok {
		return false
	}
	return GridModeOf(l) == g
}
