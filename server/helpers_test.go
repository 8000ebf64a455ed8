package kinetic_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	Ks "github.com/maroda/kinetic/server"
	Kt "github.com/maroda/kinetic/types"
)

// Helpers //

func makeHand(mt, rot, start, end, ori, turns string) *Kt.HandRow {
	return &Kt.HandRow{
		MotionType:        mt,
		RotationDirection: rot,
		StartLoc:          start,
		EndLoc:            end,
		StartOrientation:  ori,
		Turns:             turns,
	}
}

func makeRow(letter, start, end string, blue, red *Kt.HandRow) Kt.Row {
	return Kt.Row{
		Letter:        letter,
		StartPosition: start,
		EndPosition:   end,
		Blue:          blue,
		Red:           red,
	}
}

// makeTestRows is a small alphabet slice covering every letter type
func makeTestRows() []Kt.Row {
	return []Kt.Row{
		makeRow("A", "alpha1", "alpha3",
			makeHand("pro", "cw", "s", "w", "in", "0"),
			makeHand("pro", "cw", "n", "e", "in", "0")),
		makeRow("B", "alpha1", "alpha3",
			makeHand("anti", "ccw", "s", "w", "in", "1"),
			makeHand("anti", "ccw", "n", "e", "in", "1")),
		makeRow("W", "alpha3", "beta5",
			makeHand("static", "no_rot", "w", "w", "out", "0"),
			makeHand("pro", "ccw", "e", "n", "in", "0.5")),
		makeRow("W-", "beta5", "alpha3",
			makeHand("dash", "no_rot", "n", "s", "in", "0"),
			makeHand("pro", "cw", "e", "n", "in", "0")),
		makeRow("Φ-", "alpha3", "alpha7",
			makeHand("dash", "no_rot", "w", "e", "in", "0"),
			makeHand("dash", "no_rot", "e", "w", "out", "0")),
		makeRow("Λ", "beta5", "gamma11",
			makeHand("dash", "no_rot", "e", "w", "clock", "0"),
			makeHand("static", "no_rot", "s", "s", "in", "0")),
		makeRow("α", "alpha1", "alpha1",
			makeHand("static", "no_rot", "s", "s", "in", "0"),
			makeHand("static", "no_rot", "n", "n", "in", "0")),
	}
}

func makeTestService(t *testing.T, rows []Kt.Row) *Ks.Service {
	t.Helper()
	return Ks.NewService(Ks.NewMotionDataset(rows), Ks.NewDefaultLetterClassifier())
}

func assertError(t testing.TB, got, want error) {
	t.Helper()
	if !errors.Is(got, want) {
		t.Errorf("got error %q want %q", got, want)
	}
}

func assertGotError(t testing.TB, got error) {
	t.Helper()
	if got == nil {
		t.Errorf("Expected an error but got %q", got)
	}
}

func assertInt(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("did not get correct value, got %d, want %d", got, want)
	}
}

// mustLen stops the test so later indexing is safe
func mustLen(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("did not get correct length, got %d, want %d", got, want)
	}
}

func assertString(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("did not get correct value, got %q, want %q", got, want)
	}
}

func assertStringContains(t *testing.T, full, want string) {
	t.Helper()
	if !strings.Contains(full, want) {
		t.Errorf("Did not find %q, expected string contains %q", want, full)
	}
}

func assertBool(t *testing.T, got, want bool) {
	t.Helper()
	if got != want {
		t.Errorf("did not get correct value, got %t, want %t", got, want)
	}
}

// assertEqual is for the enums and small value types
func assertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("did not get correct value, got %#v, want %#v", got, want)
	}
}

func assertDeepEqual(t *testing.T, got, want any) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("did not get correct value\n got: %+v\nwant: %+v", got, want)
	}
}
