package types

/*

	These are the "immutable" core types of Kinetic,
	provided for cross-package use (e.g. Plugins) and testing.

	Only naming methods are defined here (String).
	Behavior lives in the server package.
	Every enumeration reserves its zero value for "absent",
	so a zero MotionDescriptor is recognizably empty.

*/

// Location is one of the eight compass points a hand can occupy
type Location int

// Compass order is clockwise, starting at North.
const (
	NoLocation Location = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Locations lists the eight compass points in clockwise order
var Locations = []Location{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// RotationDirection is the spin of the prop during a motion
type RotationDirection int

const (
	NoRotationDirection RotationDirection = iota // missing from the source
	Clockwise
	CounterClockwise
	NoRotation
)

// Orientation is the facing of the prop relative to the grid
// Complementary pairs are In/Out and Clock/Counter.
type Orientation int

const (
	NoOrientation Orientation = iota
	In
	Out
	Clock
	Counter
)

// Orientations lists all valid orientations
var Orientations = []Orientation{In, Out, Clock, Counter}

// MotionType is the kind of movement a single hand performs
type MotionType int

const (
	NoMotionType MotionType = iota
	Pro
	Anti
	Static
	Dash
	Float
)

// MotionTypes lists all valid motion types
var MotionTypes = []MotionType{Pro, Anti, Static, Dash, Float}

// HandPath is derived from a start and end Location, never stored
type HandPath int

const (
	NoHandPath HandPath = iota
	ClockwisePath
	CounterClockwisePath
	DashPath
	StaticPath
)

// Turns is the quantized rotation count of the prop.
// FloatTurns is only meaningful with MotionType Float.
type Turns float64

const FloatTurns Turns = -1

// ValidTurns are the quantized turn values accepted by the resolver
var ValidTurns = []Turns{0, 0.5, 1, 1.5, 2, 2.5, 3}

// MotionDescriptor is one hand's motion.
// End orientation is computed by the resolver, never supplied.
type MotionDescriptor struct {
	MotionType        MotionType
	Turns             Turns
	StartLoc          Location
	EndLoc            Location
	StartOrientation  Orientation
	RotationDirection RotationDirection
}

// LetterType is the structural category of a letter
type LetterType int

const (
	UnknownType LetterType = iota
	Type1                  // dual shift
	Type2                  // shift
	Type3                  // cross shift: one shift, one dash
	Type4                  // dash
	Type5                  // dual dash
	Type6                  // static
)

// SpecialFlags mark letters whose dash placement cannot be
// disambiguated against a paired motion.
type SpecialFlags struct {
	IsPhiDash bool
	IsPsiDash bool
	IsLambda  bool
}

// LetterCategory is a LetterType plus its special flags
type LetterCategory struct {
	Type LetterType
	SpecialFlags
}

// Hand identifies which of the two hands a motion belongs to
type Hand int

const (
	Blue Hand = iota // primary
	Red              // secondary
)

// Hands lists both hands, primary first
var Hands = []Hand{Blue, Red}

// GridMode selects which four Locations are valid dash anchors
type GridMode int

const (
	Diamond GridMode = iota // hands on cardinals
	Box                     // hands on diagonals
)

// ResolvedMotion holds the values the engine computes for one hand
type ResolvedMotion struct {
	EndOrientation Orientation
	DashLocation   Location // NoLocation unless the motion is a Dash
}

// PictographRecord is one notation unit.
// Resolved is empty in the dataset and filled on continuation results.
type PictographRecord struct {
	Letter        string
	StartPosition string
	EndPosition   string
	Motions       map[Hand]MotionDescriptor
	Resolved      map[Hand]ResolvedMotion
}

// HandRow holds one hand's raw attribute tokens
type HandRow struct {
	MotionType        string `json:"motion_type"`
	RotationDirection string `json:"prop_rot_dir"`
	StartLoc          string `json:"start_loc"`
	EndLoc            string `json:"end_loc"`
	StartOrientation  string `json:"start_ori"`
	EndOrientation    string `json:"end_ori"`
	Turns             string `json:"turns"`
}

// Row is the raw dataset row supplied by a Dataset Source.
// A nil hand is a missing hand.
type Row struct {
	Letter        string   `json:"letter"`
	StartPosition string   `json:"start_pos"`
	EndPosition   string   `json:"end_pos"`
	Blue          *HandRow `json:"blue"`
	Red           *HandRow `json:"red"`
}
