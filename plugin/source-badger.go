package plugin

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	Kt "github.com/maroda/kinetic/types"
)

// BadgerSource keeps rows under their dataset index,
// so key order is dataset order.
type BadgerSource struct {
	MU   sync.Mutex
	DB   *badger.DB
	Next uint64 // index for the next written row
}

func NewBadgerSource(path string) (*BadgerSource, error) {
	opts := badger.DefaultOptions(path).
		WithCompression(options.ZSTD).
		WithNumVersionsToKeep(1).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		slog.Error("BadgerSource failed to open database", slog.Any("error", err))
		return nil, fmt.Errorf("database error: %w", err)
	}

	bs := &BadgerSource{DB: db}
	if err := bs.seekNext(); err != nil {
		db.Close()
		return nil, err
	}

	slog.Info("BadgerSource opened",
		slog.String("path", path),
		slog.Uint64("rows", bs.Next))

	return bs, nil
}

// seekNext finds the index after the last stored key
func (bs *BadgerSource) seekNext() error {
	return bs.DB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		it.Rewind()
		if it.Valid() {
			bs.Next = RowIndex(it.Item().Key()) + 1
		}
		return nil
	})
}

// WriteBatch appends rows after any already stored
func (bs *BadgerSource) WriteBatch(rows []Kt.Row) error {
	bs.MU.Lock()
	defer bs.MU.Unlock()

	wb := bs.DB.NewWriteBatch()
	defer wb.Cancel()

	next := bs.Next
	for _, r := range rows {
		v, err := RowEncode(r)
		if err != nil {
			return fmt.Errorf("row encode error: %w", err)
		}
		if err := wb.Set(RowKey(next), v); err != nil {
			slog.Error("BadgerSource failed to set key in batch",
				slog.Any("error", err),
				slog.String("letter", r.Letter))
			return fmt.Errorf("write batch error: %w", err)
		}
		next++
	}

	if err := wb.Flush(); err != nil {
		slog.Error("BadgerSource failed to flush batch", slog.Any("error", err))
		return fmt.Errorf("batch flush error: %w", err)
	}

	bs.Next = next
	return nil
}

// Rows iterates every stored row in key order
func (bs *BadgerSource) Rows(ctx context.Context) ([]Kt.Row, error) {
	var rows []Kt.Row

	// db.View() callback
	// BadgerDB provides a transaction in which to get item.Value()
	err := bs.DB.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			err := it.Item().Value(func(val []byte) error {
				row, err := RowDecode(val)
				if err != nil {
					slog.Error("BadgerSource failed to decode row", slog.Any("error", err))
					return fmt.Errorf("row decode error: %w", err)
				}
				rows = append(rows, row)
				return nil
			})
			if err != nil {
				return fmt.Errorf("item data error: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("BadgerSource Rows successful", slog.Int("count", len(rows)))
	return rows, nil
}

func (bs *BadgerSource) Close() error {
	if err := bs.DB.Close(); err != nil {
		slog.Error("BadgerSource failed to close database", slog.Any("error", err))
		return fmt.Errorf("close failed: %w", err)
	}
	slog.Info("BadgerSource closed successfully")
	return nil
}

func (bs *BadgerSource) Type() string { return "BadgerDB" }

// RowKey is the big-endian dataset index,
// so BadgerDB sorts keys in dataset order
func RowKey(i uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, i)
	return key
}

func RowIndex(key []byte) uint64 {
	if len(key) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(key[:8])
}

// RowEncode serializes the row for data storage
func RowEncode(r Kt.Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func RowDecode(data []byte) (Kt.Row, error) {
	var r Kt.Row
	err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&r)
	return r, err
}
