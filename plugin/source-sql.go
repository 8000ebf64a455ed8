package plugin

/*
	SQLSource

	Reads rows from a "pictographs" table, ordered by id.
	Works with SQLite (modernc, driver "sqlite") and
	PostgreSQL (lib/pq, driver "postgres").
*/

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	Kt "github.com/maroda/kinetic/types"
	_ "modernc.org/sqlite"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know by name
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

const pictographSchema = `
CREATE TABLE IF NOT EXISTS pictographs (
	id                BIGINT PRIMARY KEY,
	letter            TEXT NOT NULL DEFAULT '',
	start_pos         TEXT NOT NULL DEFAULT '',
	end_pos           TEXT NOT NULL DEFAULT '',
	blue_motion_type  TEXT,
	blue_prop_rot_dir TEXT,
	blue_start_loc    TEXT,
	blue_end_loc      TEXT,
	blue_start_ori    TEXT,
	blue_end_ori      TEXT,
	blue_turns        TEXT,
	red_motion_type   TEXT,
	red_prop_rot_dir  TEXT,
	red_start_loc     TEXT,
	red_end_loc       TEXT,
	red_start_ori     TEXT,
	red_end_ori       TEXT,
	red_turns         TEXT
)`

const pictographColumns = `id, letter, start_pos, end_pos,
	blue_motion_type, blue_prop_rot_dir, blue_start_loc, blue_end_loc, blue_start_ori, blue_end_ori, blue_turns,
	red_motion_type, red_prop_rot_dir, red_start_loc, red_end_loc, red_start_ori, red_end_ori, red_turns`

const insertPictograph = `INSERT INTO pictographs (` + pictographColumns + `) VALUES (
	:id, :letter, :start_pos, :end_pos,
	:blue_motion_type, :blue_prop_rot_dir, :blue_start_loc, :blue_end_loc, :blue_start_ori, :blue_end_ori, :blue_turns,
	:red_motion_type, :red_prop_rot_dir, :red_start_loc, :red_end_loc, :red_start_ori, :red_end_ori, :red_turns)`

// pictographRow is the flat table shape of a Row
type pictographRow struct {
	ID            int64          `db:"id"`
	Letter        string         `db:"letter"`
	StartPosition string         `db:"start_pos"`
	EndPosition   string         `db:"end_pos"`
	BlueMotion    sql.NullString `db:"blue_motion_type"`
	BlueRotation  sql.NullString `db:"blue_prop_rot_dir"`
	BlueStartLoc  sql.NullString `db:"blue_start_loc"`
	BlueEndLoc    sql.NullString `db:"blue_end_loc"`
	BlueStartOri  sql.NullString `db:"blue_start_ori"`
	BlueEndOri    sql.NullString `db:"blue_end_ori"`
	BlueTurns     sql.NullString `db:"blue_turns"`
	RedMotion     sql.NullString `db:"red_motion_type"`
	RedRotation   sql.NullString `db:"red_prop_rot_dir"`
	RedStartLoc   sql.NullString `db:"red_start_loc"`
	RedEndLoc     sql.NullString `db:"red_end_loc"`
	RedStartOri   sql.NullString `db:"red_start_ori"`
	RedEndOri     sql.NullString `db:"red_end_ori"`
	RedTurns      sql.NullString `db:"red_turns"`
}

type SQLSource struct {
	DB     *sqlx.DB
	Driver string
}

// NewSQLSource opens the database and makes sure the table exists
func NewSQLSource(driver, dsn string) (*SQLSource, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		slog.Error("SQLSource failed to open database",
			slog.String("driver", driver),
			slog.Any("error", err))
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		slog.Error("SQLSource could not reach database", slog.Any("error", err))
		return nil, fmt.Errorf("database ping error: %w", err)
	}

	if _, err := db.Exec(pictographSchema); err != nil {
		db.Close()
		slog.Error("SQLSource could not create schema", slog.Any("error", err))
		return nil, fmt.Errorf("schema error: %w", err)
	}

	slog.Info("SQLSource opened", slog.String("driver", driver))

	return &SQLSource{DB: db, Driver: driver}, nil
}

// Rows selects every pictograph in id order
func (ss *SQLSource) Rows(ctx context.Context) ([]Kt.Row, error) {
	var flat []pictographRow
	query := `SELECT ` + pictographColumns + ` FROM pictographs ORDER BY id`
	if err := ss.DB.SelectContext(ctx, &flat, query); err != nil {
		slog.Error("SQLSource select failed", slog.Any("error", err))
		return nil, fmt.Errorf("select error: %w", err)
	}

	rows := make([]Kt.Row, 0, len(flat))
	for _, f := range flat {
		rows = append(rows, f.row())
	}

	slog.Info("SQLSource Rows successful", slog.Int("count", len(rows)))
	return rows, nil
}

// WriteBatch appends rows after the current highest id
func (ss *SQLSource) WriteBatch(rows []Kt.Row) error {
	var next int64
	if err := ss.DB.Get(&next, `SELECT COALESCE(MAX(id), 0) FROM pictographs`); err != nil {
		return fmt.Errorf("next id error: %w", err)
	}

	tx, err := ss.DB.Beginx()
	if err != nil {
		return fmt.Errorf("begin error: %w", err)
	}
	defer tx.Rollback()

	for _, r := range rows {
		next++
		if _, err := tx.NamedExec(insertPictograph, flattenRow(next, r)); err != nil {
			slog.Error("SQLSource failed to insert row",
				slog.Any("error", err),
				slog.String("letter", r.Letter))
			return fmt.Errorf("insert error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit error: %w", err)
	}
	return nil
}

func (ss *SQLSource) Close() error { return ss.DB.Close() }
func (ss *SQLSource) Type() string { return "sql:" + ss.Driver }

func (f pictographRow) row() Kt.Row {
	return Kt.Row{
		Letter:        f.Letter,
		StartPosition: f.StartPosition,
		EndPosition:   f.EndPosition,
		Blue: sqlHand(f.BlueMotion, f.BlueRotation, f.BlueStartLoc, f.BlueEndLoc,
			f.BlueStartOri, f.BlueEndOri, f.BlueTurns),
		Red: sqlHand(f.RedMotion, f.RedRotation, f.RedStartLoc, f.RedEndLoc,
			f.RedStartOri, f.RedEndOri, f.RedTurns),
	}
}

// sqlHand is nil when every column is NULL
func sqlHand(mt, rot, sl, el, so, eo, turns sql.NullString) *Kt.HandRow {
	if !mt.Valid && !rot.Valid && !sl.Valid && !el.Valid && !so.Valid && !eo.Valid && !turns.Valid {
		return nil
	}
	return &Kt.HandRow{
		MotionType:        mt.String,
		RotationDirection: rot.String,
		StartLoc:          sl.String,
		EndLoc:            el.String,
		StartOrientation:  so.String,
		EndOrientation:    eo.String,
		Turns:             turns.String,
	}
}

func flattenRow(id int64, r Kt.Row) pictographRow {
	f := pictographRow{
		ID:            id,
		Letter:        r.Letter,
		StartPosition: r.StartPosition,
		EndPosition:   r.EndPosition,
	}
	if b := r.Blue; b != nil {
		f.BlueMotion = nullString(b.MotionType)
		f.BlueRotation = nullString(b.RotationDirection)
		f.BlueStartLoc = nullString(b.StartLoc)
		f.BlueEndLoc = nullString(b.EndLoc)
		f.BlueStartOri = nullString(b.StartOrientation)
		f.BlueEndOri = nullString(b.EndOrientation)
		f.BlueTurns = nullString(b.Turns)
	}
	if rd := r.Red; rd != nil {
		f.RedMotion = nullString(rd.MotionType)
		f.RedRotation = nullString(rd.RotationDirection)
		f.RedStartLoc = nullString(rd.StartLoc)
		f.RedEndLoc = nullString(rd.EndLoc)
		f.RedStartOri = nullString(rd.StartOrientation)
		f.RedEndOri = nullString(rd.EndOrientation)
		f.RedTurns = nullString(rd.Turns)
	}
	return f
}

// nullString keeps a present hand present even when a token is empty
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
