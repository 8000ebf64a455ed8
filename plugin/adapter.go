package plugin

/*

	The Adapter sits aside /kinetic/
	Contains core interfaces for Plugin

	A DatasetSource is the only way rows enter the engine.
	The engine never reads storage itself.

*/

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	Kt "github.com/maroda/kinetic/types"
)

// DatasetSource supplies the ordered raw rows for a MotionDataset.
// Row order is observable downstream and must be preserved.
type DatasetSource interface {
	Rows(ctx context.Context) ([]Kt.Row, error) // Every row, in dataset order
	Close() error                               // Release any held resources
	Type() string                               // ID for the source
}

// RowWriter is implemented by sources that can also store rows,
// used to import a dataset from one source into another.
type RowWriter interface {
	WriteBatch(rows []Kt.Row) error
}

// Import copies every row from src into dst, in order
func Import(ctx context.Context, src DatasetSource, dst RowWriter) (int, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		slog.Error("Import failed to read rows",
			slog.String("source", src.Type()),
			slog.Any("error", err))
		return 0, fmt.Errorf("import read error: %w", err)
	}

	if err := dst.WriteBatch(rows); err != nil {
		slog.Error("Import failed to write rows", slog.Any("error", err))
		return 0, fmt.Errorf("import write error: %w", err)
	}

	slog.Info("Import complete",
		slog.String("source", src.Type()),
		slog.Int("rows", len(rows)))
	return len(rows), nil
}

var ErrNotWritable = errors.New("dataset source cannot store rows")

// ImportFile loads a .csv or .json file into dst,
// which must also be a RowWriter
func ImportFile(ctx context.Context, path string, dst DatasetSource) (int, error) {
	w, ok := dst.(RowWriter)
	if !ok {
		return 0, fmt.Errorf("%s: %w", dst.Type(), ErrNotWritable)
	}

	var src DatasetSource
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		src = NewCSVSource(path)
	case ".json":
		src = NewJSONSource(path)
	default:
		return 0, fmt.Errorf("unknown import format: %s", path)
	}
	defer src.Close()

	return Import(ctx, src, w)
}

// ExportFile writes every row of src to path as a JSON array,
// the inverse of ImportFile for .json files
func ExportFile(ctx context.Context, src DatasetSource, path string) (int, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return 0, fmt.Errorf("export read error: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("export create error: %w", err)
	}
	defer f.Close()

	if err := EncodeRows(f, rows); err != nil {
		return 0, fmt.Errorf("export write error: %w", err)
	}

	slog.Info("Export complete",
		slog.String("source", src.Type()),
		slog.String("path", path),
		slog.Int("rows", len(rows)))
	return len(rows), nil
}
