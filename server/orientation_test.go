package kinetic_test

import (
	"testing"

	Ks "github.com/maroda/kinetic/server"
	Kt "github.com/maroda/kinetic/types"
)

func TestToggle(t *testing.T) {
	for _, o := range Kt.Orientations {
		assertEqual(t, Ks.Toggle(Ks.Toggle(o)), o)
		if Ks.Toggle(o) == o {
			t.Errorf("toggle(%s) did not change", o)
		}
	}
	assertEqual(t, Ks.Toggle(Kt.In), Kt.Out)
	assertEqual(t, Ks.Toggle(Kt.Clock), Kt.Counter)
	assertEqual(t, Ks.Toggle(Kt.NoOrientation), Kt.NoOrientation)
}

// assertResolves checks one descriptor and names it on failure
func assertResolves(t *testing.T, mt Kt.MotionType, turns Kt.Turns, start Kt.Orientation, dir Kt.RotationDirection, want Kt.Orientation) {
	t.Helper()
	if got := resolve(mt, turns, start, dir); got != want {
		t.Errorf("%s %s turns from %s %s: got %s, want %s", mt, turns, start, dir, got, want)
	}
}

func TestResolveEndOrientation_WholeTurns(t *testing.T) {
	t.Run("Pro and static keep orientation on even turns", func(t *testing.T) {
		for _, mt := range []Kt.MotionType{Kt.Pro, Kt.Static} {
			assertResolves(t, mt, 0, Kt.In, Kt.Clockwise, Kt.In)
			assertResolves(t, mt, 1, Kt.In, Kt.Clockwise, Kt.Out)
			assertResolves(t, mt, 2, Kt.In, Kt.Clockwise, Kt.In)
			assertResolves(t, mt, 3, Kt.Clock, Kt.Clockwise, Kt.Counter)
		}
	})

	t.Run("Anti and dash flip orientation on even turns", func(t *testing.T) {
		for _, mt := range []Kt.MotionType{Kt.Anti, Kt.Dash} {
			assertResolves(t, mt, 0, Kt.In, Kt.Clockwise, Kt.Out)
			assertResolves(t, mt, 1, Kt.In, Kt.Clockwise, Kt.In)
			assertResolves(t, mt, 2, Kt.Counter, Kt.Clockwise, Kt.Clock)
			assertResolves(t, mt, 3, Kt.Counter, Kt.Clockwise, Kt.Counter)
		}
	})

	t.Run("Rotation direction does not matter", func(t *testing.T) {
		assertEqual(t,
			resolve(Kt.Pro, 1, Kt.Out, Kt.Clockwise),
			resolve(Kt.Pro, 1, Kt.Out, Kt.CounterClockwise))
	})
}

func TestResolveEndOrientation_HalfTurns(t *testing.T) {
	tests := []struct {
		start   Kt.Orientation
		dir     Kt.RotationDirection
		branchA Kt.Orientation
		branchB Kt.Orientation
	}{
		{Kt.In, Kt.Clockwise, Kt.Clock, Kt.Counter},
		{Kt.In, Kt.CounterClockwise, Kt.Counter, Kt.Clock},
		{Kt.Out, Kt.Clockwise, Kt.Counter, Kt.Clock},
		{Kt.Out, Kt.CounterClockwise, Kt.Clock, Kt.Counter},
		{Kt.Clock, Kt.Clockwise, Kt.Out, Kt.In},
		{Kt.Clock, Kt.CounterClockwise, Kt.In, Kt.Out},
		{Kt.Counter, Kt.Clockwise, Kt.In, Kt.Out},
		{Kt.Counter, Kt.CounterClockwise, Kt.Out, Kt.In},
	}

	for _, tt := range tests {
		name := tt.start.String() + "_" + tt.dir.String()
		t.Run(name, func(t *testing.T) {
			for _, mt := range []Kt.MotionType{Kt.Anti, Kt.Dash} {
				assertResolves(t, mt, 0.5, tt.start, tt.dir, tt.branchA)
				assertResolves(t, mt, 1.5, tt.start, tt.dir, tt.branchB)
				assertResolves(t, mt, 2.5, tt.start, tt.dir, tt.branchA)
			}
			// Pro and static mirror the anti table
			for _, mt := range []Kt.MotionType{Kt.Pro, Kt.Static} {
				assertResolves(t, mt, 0.5, tt.start, tt.dir, tt.branchB)
				assertResolves(t, mt, 1.5, tt.start, tt.dir, tt.branchA)
				assertResolves(t, mt, 2.5, tt.start, tt.dir, Ks.Toggle(resolve(Kt.Anti, 2.5, tt.start, tt.dir)))
			}
		})
	}

	t.Run("Anti half turn from in clockwise is clock", func(t *testing.T) {
		assertResolves(t, Kt.Anti, 0.5, Kt.In, Kt.Clockwise, Kt.Clock)
	})

	t.Run("Missing rotation direction reads as clockwise", func(t *testing.T) {
		assertResolves(t, Kt.Anti, 0.5, Kt.In, Kt.NoRotationDirection, Kt.Clock)
		assertResolves(t, Kt.Pro, 0.5, Kt.In, Kt.NoRotationDirection, Kt.Counter)
	})

	t.Run("No rotation keeps the start orientation", func(t *testing.T) {
		assertResolves(t, Kt.Anti, 0.5, Kt.In, Kt.NoRotation, Kt.In)
	})
}

func TestResolveEndOrientation_Float(t *testing.T) {
	tests := []struct {
		start      Kt.Orientation
		from, to   Kt.Location
		want       Kt.Orientation
		handpathCW bool
	}{
		{Kt.In, Kt.North, Kt.East, Kt.Clock, true},
		{Kt.In, Kt.East, Kt.North, Kt.Counter, false},
		{Kt.Out, Kt.North, Kt.East, Kt.Counter, true},
		{Kt.Out, Kt.East, Kt.North, Kt.Clock, false},
		{Kt.Clock, Kt.South, Kt.West, Kt.Out, true},
		{Kt.Clock, Kt.West, Kt.South, Kt.In, false},
		{Kt.Counter, Kt.South, Kt.West, Kt.In, true},
		{Kt.Counter, Kt.West, Kt.South, Kt.Out, false},
	}

	for _, tt := range tests {
		m := Kt.MotionDescriptor{
			MotionType:       Kt.Float,
			Turns:            Kt.FloatTurns,
			StartLoc:         tt.from,
			EndLoc:           tt.to,
			StartOrientation: tt.start,
		}
		assertBool(t, Ks.HandPathOf(tt.from, tt.to) == Kt.ClockwisePath, tt.handpathCW)
		if got := Ks.ResolveEndOrientation(m); got != tt.want {
			t.Errorf("float %s %s->%s: got %s, want %s", tt.start, tt.from, tt.to, got, tt.want)
		}
	}

	t.Run("Static and dash handpaths keep the start orientation", func(t *testing.T) {
		m := Kt.MotionDescriptor{MotionType: Kt.Float, Turns: Kt.FloatTurns, StartLoc: Kt.North, EndLoc: Kt.North, StartOrientation: Kt.Clock}
		assertEqual(t, Ks.ResolveEndOrientation(m), Kt.Clock)
		m.EndLoc = Kt.South
		assertEqual(t, Ks.ResolveEndOrientation(m), Kt.Clock)
	})

	t.Run("Missing locations keep the start orientation", func(t *testing.T) {
		m := Kt.MotionDescriptor{MotionType: Kt.Float, Turns: Kt.FloatTurns, StartLoc: Kt.North, StartOrientation: Kt.Out}
		assertEqual(t, Ks.ResolveEndOrientation(m), Kt.Out)
		m = Kt.MotionDescriptor{MotionType: Kt.Float, EndLoc: Kt.North, StartOrientation: Kt.Counter}
		assertEqual(t, Ks.ResolveEndOrientation(m), Kt.Counter)
	})
}

func TestResolveEndOrientation_InvalidTurns(t *testing.T) {
	for _, turns := range []Kt.Turns{0.25, 4, -2, Kt.FloatTurns, 3.5} {
		assertResolves(t, Kt.Pro, turns, Kt.Clock, Kt.Clockwise, Kt.Clock)
		assertResolves(t, Kt.Anti, turns, Kt.Out, Kt.Clockwise, Kt.Out)
	}

	t.Run("Missing motion type keeps the start orientation", func(t *testing.T) {
		assertResolves(t, Kt.NoMotionType, 1, Kt.In, Kt.Clockwise, Kt.In)
	})
}

func TestIsValidTurns(t *testing.T) {
	for _, v := range Kt.ValidTurns {
		assertBool(t, Ks.IsValidTurns(v), true)
	}
	assertBool(t, Ks.IsValidTurns(Kt.FloatTurns), false)
	assertBool(t, Ks.IsValidTurns(0.75), false)
}

func resolve(mt Kt.MotionType, turns Kt.Turns, start Kt.Orientation, dir Kt.RotationDirection) Kt.Orientation {
	return Ks.ResolveEndOrientation(Kt.MotionDescriptor{
		MotionType:        mt,
		Turns:             turns,
		StartLoc:          Kt.North,
		EndLoc:            Kt.East,
		StartOrientation:  start,
		RotationDirection: dir,
	})
}
