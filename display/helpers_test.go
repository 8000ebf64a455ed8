package kinetic_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/gdamore/tcell/v2"
	Kd "github.com/maroda/kinetic/display"
	Ko "github.com/maroda/kinetic/obvy"
	Ks "github.com/maroda/kinetic/server"
	Kt "github.com/maroda/kinetic/types"
)

// Helpers //

// memSource serves rows from memory and can be changed between reloads
type memSource struct {
	MU    sync.Mutex
	rows  []Kt.Row
	err   error
	calls int
}

func (m *memSource) Rows(ctx context.Context) ([]Kt.Row, error) {
	m.MU.Lock()
	defer m.MU.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]Kt.Row, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *memSource) set(rows []Kt.Row, err error) {
	m.MU.Lock()
	defer m.MU.Unlock()
	m.rows = rows
	m.err = err
}

func (m *memSource) Close() error { return nil }
func (m *memSource) Type() string { return "memory" }

var errSourceDown = errors.New("source down")

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
	return Kt.Row{Letter: letter, StartPosition: start, EndPosition: end, Blue: blue, Red: red}
}

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
		makeRow("α", "alpha1", "alpha1",
			makeHand("static", "no_rot", "s", "s", "in", "0"),
			makeHand("static", "no_rot", "n", "n", "in", "0")),
	}
}

// makeTestView has a loaded dataset and no screen
func makeTestView(t *testing.T) (*Kd.View, *memSource) {
	t.Helper()
	src := &memSource{rows: makeTestRows()}
	view, err := Kd.NewView(src, nil, "alpha1")
	assertError(t, err, nil)
	return view, src
}

func makeTestViewWithScreen(t *testing.T) (*Kd.View, tcell.SimulationScreen) {
	t.Helper()
	view, _ := makeTestView(t)
	s := tcell.NewSimulationScreen("")
	if s == nil {
		t.Fatalf("Failed to get SimulationScreen")
	}
	assertError(t, view.AttachScreen(s), nil)
	t.Cleanup(s.Fini)
	return view, s
}

// screenText joins every cell of the simulation screen row by row
func screenText(s tcell.SimulationScreen) string {
	cells, width, _ := s.GetContents()
	var sb strings.Builder
	for i, c := range cells {
		if i > 0 && i%width == 0 {
			sb.WriteByte('\n')
		}
		if len(c.Runes) == 0 {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteRune(c.Runes[0])
	}
	return sb.String()
}

func newEmptyView() *Kd.View {
	return &Kd.View{
		Service: Ks.NewService(nil, nil),
		Stats:   Ko.NewStatsInternal(),
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
