package plugin_test

import (
	"context"
	"path/filepath"
	"testing"

	Kp "github.com/maroda/kinetic/plugin"
)

func TestSQLSource(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "kinetic.db")
	source, err := Kp.NewSQLSource("sqlite", dsn)
	assertError(t, err, nil)
	defer source.Close()

	t.Run("Empty table returns no rows", func(t *testing.T) {
		got, err := source.Rows(context.Background())
		assertError(t, err, nil)
		assertInt(t, len(got), 0)
	})

	t.Run("Writes and reads rows in order", func(t *testing.T) {
		err := source.WriteBatch(makeTestRows())
		assertError(t, err, nil)

		got, err := source.Rows(context.Background())
		assertError(t, err, nil)
		assertRowsEqual(t, got, makeTestRows())
	})

	t.Run("Second batch appends", func(t *testing.T) {
		err := source.WriteBatch(makeTestRows()[:1])
		assertError(t, err, nil)

		got, err := source.Rows(context.Background())
		assertError(t, err, nil)
		assertInt(t, len(got), 4)
		assertString(t, got[3].Letter, "A")
	})

	t.Run("Returns Type", func(t *testing.T) {
		assertStringContains(t, source.Type(), "sqlite")
	})
}

func TestNewSQLSource_Errors(t *testing.T) {
	t.Run("Unknown driver", func(t *testing.T) {
		_, err := Kp.NewSQLSource("craquemattic", "nowhere")
		assertGotError(t, err)
	})
}
