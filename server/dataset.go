package kinetic

import (
	"fmt"
	"log/slog"

	Kt "github.com/maroda/kinetic/types"
)

// MotionDataset is the in-memory table of known pictographs.
// It is never modified after NewMotionDataset returns,
// so any number of readers may share it without locking.
type MotionDataset struct {
	records []Kt.PictographRecord
	diags   []Diagnostic
}

// IntegrityIssue describes one problem with one record
type IntegrityIssue struct {
	Index   int    `json:"index"`
	Letter  string `json:"letter"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewMotionDataset parses rows in order.
// Bad tokens never stop construction, they become Diagnostics.
func NewMotionDataset(rows []Kt.Row) *MotionDataset {
	ds := &MotionDataset{
		records: make([]Kt.PictographRecord, 0, len(rows)),
	}

	for i, r := range rows {
		rec := Kt.PictographRecord{
			Letter:        r.Letter,
			StartPosition: r.StartPosition,
			EndPosition:   r.EndPosition,
			Motions:       make(map[Kt.Hand]Kt.MotionDescriptor, 2),
		}

		for _, h := range Kt.Hands {
			hr := handRow(r, h)
			if hr == nil {
				continue
			}
			p := &handParser{row: i, letter: r.Letter, hand: h}
			m := p.parseHand(hr)
			rec.Motions[h] = m
			ds.diags = append(ds.diags, p.diags...)
			ds.diags = append(ds.diags, checkEndOrientation(i, r.Letter, h, hr, m)...)
		}

		ds.records = append(ds.records, rec)
	}

	for _, d := range ds.diags {
		slog.Warn("Dataset token fallback",
			slog.Int("row", d.Row),
			slog.String("letter", d.Letter),
			slog.String("hand", d.Hand),
			slog.String("field", d.Field),
			slog.String("token", d.Token),
			slog.String("fallback", d.Fallback))
	}

	slog.Info("MotionDataset built",
		slog.Int("records", len(ds.records)),
		slog.Int("diagnostics", len(ds.diags)))

	return ds
}

func handRow(r Kt.Row, h Kt.Hand) *Kt.HandRow {
	if h == Kt.Red {
		return r.Red
	}
	return r.Blue
}

// checkEndOrientation compares a supplied end orientation
// with the computed one, the computed value always wins
func checkEndOrientation(i int, letter string, h Kt.Hand, hr *Kt.HandRow, m Kt.MotionDescriptor) []Diagnostic {
	if token(hr.EndOrientation) == "" {
		return nil
	}
	supplied, ok := ParseOrientation(hr.EndOrientation)
	computed := ResolveEndOrientation(m)
	if ok && supplied == computed {
		return nil
	}
	return []Diagnostic{{
		Row:      i,
		Letter:   letter,
		Hand:     h.String(),
		Field:    "end_ori",
		Token:    hr.EndOrientation,
		Fallback: computed.String(),
	}}
}

// All returns the records in insertion order.
// The slice and maps are copies, the dataset stays untouched.
func (ds *MotionDataset) All() []Kt.PictographRecord {
	out := make([]Kt.PictographRecord, len(ds.records))
	for i, r := range ds.records {
		out[i] = copyRecord(r)
	}
	return out
}

// Len is the number of records
func (ds *MotionDataset) Len() int { return len(ds.records) }

// Diagnostics lists every token fallback taken during construction
func (ds *MotionDataset) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(ds.diags))
	copy(out, ds.diags)
	return out
}

// ValidateIntegrity reports one issue per missing field per record
func (ds *MotionDataset) ValidateIntegrity() []IntegrityIssue {
	issues := make([]IntegrityIssue, 0)

	for i, r := range ds.records {
		missing := func(field string) {
			issues = append(issues, IntegrityIssue{
				Index:   i,
				Letter:  r.Letter,
				Field:   field,
				Message: fmt.Sprintf("record %d is missing %s", i, field),
			})
		}

		if r.Letter == "" {
			missing("letter")
		}
		if r.StartPosition == "" {
			missing("start_position")
		}
		if r.EndPosition == "" {
			missing("end_position")
		}
		for _, h := range Kt.Hands {
			if _, ok := r.Motions[h]; !ok {
				missing(h.String() + "_motion")
			}
		}
	}

	return issues
}

func copyRecord(r Kt.PictographRecord) Kt.PictographRecord {
	c := r
	c.Motions = make(map[Kt.Hand]Kt.MotionDescriptor, len(r.Motions))
	for h, m := range r.Motions {
		c.Motions[h] = m
	}
	c.Resolved = make(map[Kt.Hand]Kt.ResolvedMotion, len(r.Resolved))
	for h, rm := range r.Resolved {
		c.Resolved[h] = rm
	}
	return c
}
