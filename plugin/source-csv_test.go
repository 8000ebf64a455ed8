package plugin_test

import (
	"context"
	"strings"
	"testing"

	Kp "github.com/maroda/kinetic/plugin"
)

const testCSV = `letter,start_pos,end_pos,blue_motion_type,blue_prop_rot_dir,blue_start_loc,blue_end_loc,blue_start_ori,blue_end_ori,blue_turns,red_motion_type,red_prop_rot_dir,red_start_loc,red_end_loc,red_start_ori,red_end_ori,red_turns
A,alpha1,alpha3,pro,cw,s,w,in,,0,pro,cw,n,e,in,,0
W-,beta5,alpha3,dash,no_rot,n,s,in,in,,pro,cw,e,n,in,,fl
Z,gamma11,,anti,ccw,e,n,out,,1.5,,,,,,,
`

func TestParseRowsCSV(t *testing.T) {
	t.Run("Parses rows by header name", func(t *testing.T) {
		got, err := Kp.ParseRowsCSV(strings.NewReader(testCSV))
		assertError(t, err, nil)
		assertRowsEqual(t, got, makeTestRows())
	})

	t.Run("Column order follows the header", func(t *testing.T) {
		in := "end_pos,letter,start_pos,red_motion_type,red_start_loc\nalpha3,A,alpha1,pro,n\n"
		got, err := Kp.ParseRowsCSV(strings.NewReader(in))
		assertError(t, err, nil)
		assertInt(t, len(got), 1)
		assertString(t, got[0].Letter, "A")
		assertString(t, got[0].EndPosition, "alpha3")
		assertString(t, got[0].Red.StartLoc, "n")
		if got[0].Blue != nil {
			t.Errorf("expected nil blue hand, got %+v", got[0].Blue)
		}
	})

	t.Run("Short records read as empty fields", func(t *testing.T) {
		in := "letter,start_pos,end_pos\nα,alpha1\n"
		got, err := Kp.ParseRowsCSV(strings.NewReader(in))
		assertError(t, err, nil)
		assertString(t, got[0].EndPosition, "")
	})

	t.Run("Returns error with no header", func(t *testing.T) {
		_, err := Kp.ParseRowsCSV(strings.NewReader(""))
		assertGotError(t, err)
		assertStringContains(t, err.Error(), "no header")
	})
}

func TestCSVSource_Rows(t *testing.T) {
	t.Run("Reads the file", func(t *testing.T) {
		source := Kp.NewCSVSource(makeTempFile(t, "rows.csv", testCSV))
		got, err := source.Rows(context.Background())
		assertError(t, err, nil)
		assertInt(t, len(got), 3)
		assertString(t, source.Type(), "csv")
	})

	t.Run("Returns error for missing file", func(t *testing.T) {
		_, err := Kp.NewCSVSource("/nonexistent/rows.csv").Rows(context.Background())
		assertGotError(t, err)
	})
}
