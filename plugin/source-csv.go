package plugin

/*
	CSVSource

	Reads the flat kinetic alphabet table. The header names the
	columns, so their order is free:

	letter,start_pos,end_pos,blue_motion_type,blue_prop_rot_dir,
	blue_start_loc,blue_end_loc,blue_start_ori,blue_end_ori,blue_turns,
	red_motion_type, ... red_turns

	A hand whose columns are all empty is a missing hand.
*/

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	Kt "github.com/maroda/kinetic/types"
)

var handFields = []string{"motion_type", "prop_rot_dir", "start_loc", "end_loc", "start_ori", "end_ori", "turns"}

type CSVSource struct {
	Path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (cs *CSVSource) Rows(ctx context.Context) ([]Kt.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(cs.Path)
	if err != nil {
		slog.Error("CSVSource could not open file",
			slog.String("path", cs.Path),
			slog.Any("error", err))
		return nil, fmt.Errorf("csv source open error: %w", err)
	}
	defer file.Close()

	return ParseRowsCSV(file)
}

// ParseRowsCSV reads a header line and then one row per record
func ParseRowsCSV(reader io.Reader) ([]Kt.Row, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv has no header")
		}
		return nil, fmt.Errorf("csv header error: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var rows []Kt.Row
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Error("Problem scanning csv", slog.Int("line", line), slog.Any("error", err))
			return nil, fmt.Errorf("csv scanning error: %w", err)
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		rows = append(rows, Kt.Row{
			Letter:        field("letter"),
			StartPosition: field("start_pos"),
			EndPosition:   field("end_pos"),
			Blue:          csvHand(field, "blue_"),
			Red:           csvHand(field, "red_"),
		})
	}

	return rows, nil
}

func csvHand(field func(string) string, prefix string) *Kt.HandRow {
	empty := true
	for _, f := range handFields {
		if field(prefix+f) != "" {
			empty = false
			break
		}
	}
	if empty {
		return nil
	}

	return &Kt.HandRow{
		MotionType:        field(prefix + "motion_type"),
		RotationDirection: field(prefix + "prop_rot_dir"),
		StartLoc:          field(prefix + "start_loc"),
		EndLoc:            field(prefix + "end_loc"),
		StartOrientation:  field(prefix + "start_ori"),
		EndOrientation:    field(prefix + "end_ori"),
		Turns:             field(prefix + "turns"),
	}
}

func (cs *CSVSource) Close() error { return nil }
func (cs *CSVSource) Type() string { return "csv" }
