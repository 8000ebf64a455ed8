package kinetic

import (
	"fmt"

	Kt "github.com/maroda/kinetic/types"
)

// Service finds and resolves every valid next pictograph.
// It owns no mutable state, the dataset is shared read-only.
type Service struct {
	Dataset *MotionDataset
	Letters *LetterClassifier
}

// PositionStats is a diagnostic summary of one position
type PositionStats struct {
	Position       string         `json:"position"`
	Total          int            `json:"total"`
	Letters        []string       `json:"letters"`
	CategoryCounts map[string]int `json:"categoryCounts"`
}

// NewService builds the continuation service.
// A nil classifier falls back to the built-in alphabet.
func NewService(ds *MotionDataset, lc *LetterClassifier) *Service {
	if ds == nil {
		ds = NewMotionDataset(nil)
	}
	if lc == nil {
		lc = NewDefaultLetterClassifier()
	}
	return &Service{
		Dataset: ds,
		Letters: lc,
	}
}

// NextOptions scans the whole dataset in order and returns
// resolved copies of every record starting at from
func (s *Service) NextOptions(from string) []Kt.PictographRecord {
	options := make([]Kt.PictographRecord, 0)
	for _, r := range s.Dataset.records {
		if r.StartPosition != from {
			continue
		}
		options = append(options, s.Resolve(r))
	}
	return options
}

// Resolve fills end orientations and dash anchors on a copy of r
func (s *Service) Resolve(r Kt.PictographRecord) Kt.PictographRecord {
	out := copyRecord(r)
	cat := s.Letters.CategoryOf(r.Letter)

	for h, m := range r.Motions {
		rm := Kt.ResolvedMotion{
			EndOrientation: ResolveEndOrientation(m),
		}
		if m.MotionType == Kt.Dash {
			shift := Kt.NoLocation
			if other, ok := r.Motions[otherHand(h)]; ok {
				shift = ShiftLocation(other)
			}
			rm.DashLocation = ResolveDashLocation(m, cat, shift, GridModeOf(m.StartLoc))
		}
		out.Resolved[h] = rm
	}

	return out
}

// ShiftLocation is the Location between a shifting motion's endpoints,
// NoLocation for anything that does not shift a quarter turn
func ShiftLocation(m Kt.MotionDescriptor) Kt.Location {
	switch m.MotionType {
	case Kt.Pro, Kt.Anti, Kt.Float:
	default:
		return Kt.NoLocation
	}

	switch HandPathOf(m.StartLoc, m.EndLoc) {
	case Kt.ClockwisePath, Kt.CounterClockwisePath:
		if l, ok := DiagonalBetween(m.StartLoc, m.EndLoc); ok {
			return l
		}
	}
	return Kt.NoLocation
}

func otherHand(h Kt.Hand) Kt.Hand {
	if h == Kt.Blue {
		return Kt.Red
	}
	return Kt.Blue
}

// PositionStatistics aggregates NextOptions for pos.
// Letters keep the order of first appearance.
func (s *Service) PositionStatistics(pos string) PositionStats {
	options := s.NextOptions(pos)
	stats := PositionStats{
		Position:       pos,
		Total:          len(options),
		Letters:        make([]string, 0),
		CategoryCounts: make(map[string]int),
	}

	seen := make(map[string]bool)
	for _, o := range options {
		if !seen[o.Letter] {
			seen[o.Letter] = true
			stats.Letters = append(stats.Letters, o.Letter)
		}
		stats.CategoryCounts[s.Letters.CategoryOf(o.Letter).Type.String()]++
	}

	return stats
}

// ValidateIntegrity is the dataset report plus one issue for
// every letter the classification table does not know
func (s *Service) ValidateIntegrity() []IntegrityIssue {
	issues := s.Dataset.ValidateIntegrity()
	for i, r := range s.Dataset.records {
		if r.Letter == "" || s.Letters.CategoryOf(r.Letter).Type != Kt.UnknownType {
			continue
		}
		issues = append(issues, IntegrityIssue{
			Index:   i,
			Letter:  r.Letter,
			Field:   "letter",
			Message: fmt.Sprintf("record %d letter %q is not in the classification table", i, r.Letter),
		})
	}
	return issues
}

// Positions lists distinct start positions in dataset order
func (s *Service) Positions() []string {
	positions := make([]string, 0)
	seen := make(map[string]bool)
	for _, r := range s.Dataset.records {
		if r.StartPosition == "" || seen[r.StartPosition] {
			continue
		}
		seen[r.StartPosition] = true
		positions = append(positions, r.StartPosition)
	}
	return positions
}
