package types

import "strconv"

func (l Location) String() string {
	switch l {
	case North:
		return "n"
	case NorthEast:
		return "ne"
	case East:
		return "e"
	case SouthEast:
		return "se"
	case South:
		return "s"
	case SouthWest:
		return "sw"
	case West:
		return "w"
	case NorthWest:
		return "nw"
	default:
		return ""
	}
}

func (r RotationDirection) String() string {
	switch r {
	case Clockwise:
		return "cw"
	case CounterClockwise:
		return "ccw"
	case NoRotation:
		return "no_rot"
	default:
		return ""
	}
}

func (o Orientation) String() string {
	switch o {
	case In:
		return "in"
	case Out:
		return "out"
	case Clock:
		return "clock"
	case Counter:
		return "counter"
	default:
		return ""
	}
}

func (m MotionType) String() string {
	switch m {
	case Pro:
		return "pro"
	case Anti:
		return "anti"
	case Static:
		return "static"
	case Dash:
		return "dash"
	case Float:
		return "float"
	default:
		return ""
	}
}

func (h HandPath) String() string {
	switch h {
	case ClockwisePath:
		return "cw_handpath"
	case CounterClockwisePath:
		return "ccw_handpath"
	case DashPath:
		return "dash"
	case StaticPath:
		return "static"
	default:
		return ""
	}
}

func (t Turns) String() string {
	if t == FloatTurns {
		return "fl"
	}
	return strconv.FormatFloat(float64(t), 'f', -1, 64)
}

func (lt LetterType) String() string {
	switch lt {
	case Type1:
		return "Type1"
	case Type2:
		return "Type2"
	case Type3:
		return "Type3"
	case Type4:
		return "Type4"
	case Type5:
		return "Type5"
	case Type6:
		return "Type6"
	default:
		return "Unknown"
	}
}

func (h Hand) String() string {
	if h == Red {
		return "red"
	}
	return "blue"
}

func (g GridMode) String() string {
	if g == Box {
		return "box"
	}
	return "diamond"
}
