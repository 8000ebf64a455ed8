package kinetic

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	Kt "github.com/maroda/kinetic/types"
)

// Terminal cells are about twice as tall as they are wide
const cellAspect = 2.0

// LocationBearing is the compass bearing of l, north is zero
// and bearings grow clockwise in 45 degree steps
func LocationBearing(l Kt.Location) (s1.Angle, bool) {
	if l < Kt.North || l > Kt.NorthWest {
		return 0, false
	}
	return s1.Angle(float64(l-Kt.North)) * 45 * s1.Degree, true
}

// GridPoint places l on a circle of the given radius around center,
// in screen space where y grows downward
func GridPoint(l Kt.Location, center r2.Point, radius float64) (r2.Point, bool) {
	b, ok := LocationBearing(l)
	if !ok {
		return center, false
	}
	offset := r2.Point{
		X: math.Sin(b.Radians()) * radius * cellAspect,
		Y: -math.Cos(b.Radians()) * radius,
	}
	return center.Add(offset), true
}

// GridCell rounds GridPoint to a terminal cell
func GridCell(l Kt.Location, cx, cy, radius int) (int, int, bool) {
	p, ok := GridPoint(l, r2.Point{X: float64(cx), Y: float64(cy)}, float64(radius))
	if !ok {
		return cx, cy, false
	}
	return int(math.Round(p.X)), int(math.Round(p.Y)), true
}

func handStyle(h Kt.Hand) tcell.Style {
	if h == Kt.Red {
		return tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorIndianRed)
	}
	return tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorDodgerBlue)
}

// DrawGrid draws the eight locations around (cx, cy) and the
// start, end and dash anchor of each hand in r
func (v *View) DrawGrid(cx, cy, radius int, r *Kt.PictographRecord) {
	dim := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorDimGray)
	v.Screen.SetContent(cx, cy, '+', nil, dim)

	for _, l := range Kt.Locations {
		x, y, _ := GridCell(l, cx, cy, radius)
		v.Screen.SetContent(x, y, '·', nil, dim)

		lx, ly, _ := GridCell(l, cx, cy, radius+1)
		for i, c := range l.String() {
			v.Screen.SetContent(lx+i, ly, c, nil, dim)
		}
	}

	if r == nil {
		return
	}

	for _, h := range Kt.Hands {
		m, ok := r.Motions[h]
		if !ok {
			continue
		}
		style := handStyle(h)

		sx, sy, _ := GridCell(m.StartLoc, cx, cy, radius)
		v.Screen.SetContent(sx, sy, '○', nil, style)

		ex, ey, _ := GridCell(m.EndLoc, cx, cy, radius)
		v.Screen.SetContent(ex, ey, '●', nil, style)

		if rm, ok := r.Resolved[h]; ok && rm.DashLocation != Kt.NoLocation {
			dx, dy, _ := GridCell(rm.DashLocation, cx, cy, radius)
			v.Screen.SetContent(dx, dy, '×', nil, style)
		}
	}
}
