package plugin

/*
	JSONSource

	Reads the dataset from a JSON array of rows:

	[{"letter": "A", "start_pos": "alpha1", "end_pos": "alpha3",
	  "blue": {"motion_type": "pro", "prop_rot_dir": "cw", ...},
	  "red":  {...}}]
*/

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bytedance/sonic"
	Ks "github.com/maroda/kinetic/server"
	Kt "github.com/maroda/kinetic/types"
)

type JSONSource struct {
	Path string
}

// NewJSONSource returns a source reading the file at path
func NewJSONSource(path string) *JSONSource {
	return &JSONSource{Path: path}
}

// Rows reads the whole file on every call, so a refresh sees edits
func (js *JSONSource) Rows(ctx context.Context) ([]Kt.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(js.Path)
	if err != nil {
		slog.Error("JSONSource could not read file",
			slog.String("path", js.Path),
			slog.Any("error", err))
		return nil, fmt.Errorf("json source read error: %w", err)
	}

	return DecodeRows(data)
}

// DecodeRows unmarshals a JSON array of rows
func DecodeRows(data []byte) ([]Kt.Row, error) {
	var rows []Kt.Row
	if err := sonic.Unmarshal(data, &rows); err != nil {
		slog.Error("Error unmarshalling rows", slog.Any("error", err))
		return nil, fmt.Errorf("error unmarshalling rows: %w", err)
	}
	return rows, nil
}

// EncodeRows is the inverse of DecodeRows
func EncodeRows(w io.Writer, rows []Kt.Row) error {
	data, err := sonic.Marshal(rows)
	if err != nil {
		return fmt.Errorf("error marshalling rows: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func (js *JSONSource) Close() error { return nil }
func (js *JSONSource) Type() string { return "json" }

// letterTableFile is the on-disk shape of a letter table
type letterTableFile struct {
	Letters map[string]string `json:"letters"` // letter to Type1..Type6
	Special Ks.SpecialLetters `json:"special"`
}

// LoadLetterTable reads a replacement letter classification table.
// Special letters not named in the file keep their defaults.
func LoadLetterTable(path string) (*Ks.LetterClassifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("letter table read error: %w", err)
	}

	var ltf letterTableFile
	if err := sonic.Unmarshal(data, &ltf); err != nil {
		return nil, fmt.Errorf("letter table decode error: %w", err)
	}

	table := make(map[string]Kt.LetterType, len(ltf.Letters))
	for letter, name := range ltf.Letters {
		lt := Ks.ParseLetterType(name)
		if lt == Kt.UnknownType {
			slog.Warn("Letter table entry has no known type",
				slog.String("letter", letter),
				slog.String("type", name))
			continue
		}
		table[letter] = lt
	}

	special := Ks.DefaultSpecialLetters()
	if ltf.Special.PhiDash != "" {
		special.PhiDash = ltf.Special.PhiDash
	}
	if ltf.Special.PsiDash != "" {
		special.PsiDash = ltf.Special.PsiDash
	}
	if ltf.Special.Lambda != "" {
		special.Lambda = ltf.Special.Lambda
	}

	slog.Info("Letter table loaded",
		slog.String("path", path),
		slog.Int("letters", len(table)))

	return Ks.NewLetterClassifier(table, special), nil
}
