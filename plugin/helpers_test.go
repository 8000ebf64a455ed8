package plugin_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgraph-io/badger/v4"
	Kp "github.com/maroda/kinetic/plugin"
	Kt "github.com/maroda/kinetic/types"
)

/// Helpers

func makeTestRows() []Kt.Row {
	return []Kt.Row{
		{
			Letter: "A", StartPosition: "alpha1", EndPosition: "alpha3",
			Blue: &Kt.HandRow{MotionType: "pro", RotationDirection: "cw", StartLoc: "s", EndLoc: "w", StartOrientation: "in", Turns: "0"},
			Red:  &Kt.HandRow{MotionType: "pro", RotationDirection: "cw", StartLoc: "n", EndLoc: "e", StartOrientation: "in", Turns: "0"},
		},
		{
			Letter: "W-", StartPosition: "beta5", EndPosition: "alpha3",
			Blue: &Kt.HandRow{MotionType: "dash", RotationDirection: "no_rot", StartLoc: "n", EndLoc: "s", StartOrientation: "in", EndOrientation: "in"},
			Red:  &Kt.HandRow{MotionType: "pro", RotationDirection: "cw", StartLoc: "e", EndLoc: "n", StartOrientation: "in", Turns: "fl"},
		},
		{
			Letter: "Z", StartPosition: "gamma11", EndPosition: "",
			Blue: &Kt.HandRow{MotionType: "anti", RotationDirection: "ccw", StartLoc: "e", EndLoc: "n", StartOrientation: "out", Turns: "1.5"},
			Red:  nil,
		},
	}
}

func makeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("could not write temp file: %v", err)
	}
	return path
}

func makeTestBadgerSource(t *testing.T) (*Kp.BadgerSource, func()) {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	assertError(t, err, nil)

	source := &Kp.BadgerSource{DB: db}

	cleanup := func() {
		source.Close()
	}

	return source, cleanup
}

// assertRowsEqual compares the fields that survive storage
func assertRowsEqual(t *testing.T, got, want []Kt.Row) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("row count: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Letter != w.Letter || g.StartPosition != w.StartPosition || g.EndPosition != w.EndPosition {
			t.Errorf("row %d: got %s %s->%s, want %s %s->%s", i,
				g.Letter, g.StartPosition, g.EndPosition,
				w.Letter, w.StartPosition, w.EndPosition)
		}
		assertHandEqual(t, i, "blue", g.Blue, w.Blue)
		assertHandEqual(t, i, "red", g.Red, w.Red)
	}
}

func assertHandEqual(t *testing.T, i int, hand string, got, want *Kt.HandRow) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Errorf("row %d %s: got %v, want %v", i, hand, got, want)
		return
	}
	if want != nil && *got != *want {
		t.Errorf("row %d %s: got %+v, want %+v", i, hand, *got, *want)
	}
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

func assertStatus(t testing.TB, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("did not get correct status, got %d, want %d", got, want)
	}
}

func assertInt(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("did not get correct value, got %d, want %d", got, want)
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
