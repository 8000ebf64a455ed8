package kinetic

import (
	"strconv"
	"strings"

	Kt "github.com/maroda/kinetic/types"
)

// DefaultLocation is used when a location token is not recognized
const DefaultLocation = Kt.North

var motionTypeTokens = map[string]Kt.MotionType{
	"pro":    Kt.Pro,
	"anti":   Kt.Anti,
	"static": Kt.Static,
	"dash":   Kt.Dash,
	"float":  Kt.Float,
}

var rotationTokens = map[string]Kt.RotationDirection{
	"cw":     Kt.Clockwise,
	"ccw":    Kt.CounterClockwise,
	"no_rot": Kt.NoRotation,
}

var locationTokens = map[string]Kt.Location{
	"n":  Kt.North,
	"ne": Kt.NorthEast,
	"e":  Kt.East,
	"se": Kt.SouthEast,
	"s":  Kt.South,
	"sw": Kt.SouthWest,
	"w":  Kt.West,
	"nw": Kt.NorthWest,
}

var orientationTokens = map[string]Kt.Orientation{
	"in":      Kt.In,
	"out":     Kt.Out,
	"clock":   Kt.Clock,
	"counter": Kt.Counter,
}

func token(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func ParseMotionType(s string) (Kt.MotionType, bool) {
	mt, ok := motionTypeTokens[token(s)]
	return mt, ok
}

func ParseRotationDirection(s string) (Kt.RotationDirection, bool) {
	rd, ok := rotationTokens[token(s)]
	return rd, ok
}

func ParseLocation(s string) (Kt.Location, bool) {
	l, ok := locationTokens[token(s)]
	return l, ok
}

func ParseOrientation(s string) (Kt.Orientation, bool) {
	o, ok := orientationTokens[token(s)]
	return o, ok
}

// ParseTurns accepts a number or "fl" for float.
// An empty string is zero turns.
func ParseTurns(s string) (Kt.Turns, bool) {
	t := token(s)
	switch t {
	case "":
		return 0, true
	case "fl", "float":
		return Kt.FloatTurns, true
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return Kt.Turns(f), true
}

// Diagnostic is a non-fatal note about a dataset row
type Diagnostic struct {
	Row      int    `json:"row"`
	Letter   string `json:"letter"`
	Hand     string `json:"hand"`
	Field    string `json:"field"`
	Token    string `json:"token"`
	Fallback string `json:"fallback"`
}

// handParser collects diagnostics while one row is parsed
type handParser struct {
	row    int
	letter string
	hand   Kt.Hand
	diags  []Diagnostic
}

func (p *handParser) note(field, tok, fallback string) {
	p.diags = append(p.diags, Diagnostic{
		Row:      p.row,
		Letter:   p.letter,
		Hand:     p.hand.String(),
		Field:    field,
		Token:    tok,
		Fallback: fallback,
	})
}

// parseHand turns raw tokens into a MotionDescriptor.
// Unknown tokens fall back to static, no rotation, DefaultLocation.
func (p *handParser) parseHand(hr *Kt.HandRow) Kt.MotionDescriptor {
	var m Kt.MotionDescriptor
	var ok bool

	if m.MotionType, ok = ParseMotionType(hr.MotionType); !ok {
		m.MotionType = Kt.Static
		p.note("motion_type", hr.MotionType, m.MotionType.String())
	}

	if token(hr.RotationDirection) == "" {
		// Missing is kept as missing, the resolver reads it as clockwise
		m.RotationDirection = Kt.NoRotationDirection
		p.note("prop_rot_dir", hr.RotationDirection, Kt.Clockwise.String())
	} else if m.RotationDirection, ok = ParseRotationDirection(hr.RotationDirection); !ok {
		m.RotationDirection = Kt.NoRotation
		p.note("prop_rot_dir", hr.RotationDirection, m.RotationDirection.String())
	}

	if m.StartLoc, ok = ParseLocation(hr.StartLoc); !ok {
		m.StartLoc = DefaultLocation
		p.note("start_loc", hr.StartLoc, m.StartLoc.String())
	}

	if m.EndLoc, ok = ParseLocation(hr.EndLoc); !ok {
		m.EndLoc = DefaultLocation
		p.note("end_loc", hr.EndLoc, m.EndLoc.String())
	}

	if m.StartOrientation, ok = ParseOrientation(hr.StartOrientation); !ok {
		m.StartOrientation = Kt.In
		p.note("start_ori", hr.StartOrientation, m.StartOrientation.String())
	}

	if m.Turns, ok = ParseTurns(hr.Turns); !ok {
		m.Turns = 0
		p.note("turns", hr.Turns, m.Turns.String())
	} else if m.MotionType != Kt.Float && !IsValidTurns(m.Turns) {
		// Kept as parsed, the resolver returns the start orientation
		p.note("turns", hr.Turns, "start_ori")
	}

	return m
}

// ParseMotion parses a single hand outside of any dataset,
// diagnostics carry Row -1
func ParseMotion(h Kt.Hand, hr *Kt.HandRow) (Kt.MotionDescriptor, []Diagnostic) {
	if hr == nil {
		hr = &Kt.HandRow{}
	}
	p := &handParser{row: -1, hand: h}
	m := p.parseHand(hr)
	if p.diags == nil {
		return m, make([]Diagnostic, 0)
	}
	return m, p.diags
}
