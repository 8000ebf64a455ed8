package kinetic

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const (
	defaultAddr          = ":8090"
	defaultStartPosition = "alpha1"
)

var (
	ErrEmptyConfig   = errors.New("file is empty")
	ErrMissingSource = errors.New("config has no dataset source type")
)

// SourceConfig tells the plugin registry where rows come from
type SourceConfig struct {
	Type   string `json:"type"`   // json, csv, sql, badger, http
	Path   string `json:"path"`   // file or database directory
	Driver string `json:"driver"` // sql only: sqlite or postgres
	DSN    string `json:"dsn"`    // sql only
	URL    string `json:"url"`    // http only
}

type ConfigFile struct {
	ID             string       `json:"id"`
	Source         SourceConfig `json:"source"`
	LetterTable    string       `json:"letterTable"`    // optional JSON table, built-in when empty
	Addr           string       `json:"addr"`           // HTTP listen address
	RefreshSeconds int          `json:"refreshSeconds"` // 0 disables dataset refresh
	StartPosition  string       `json:"startPosition"`  // TUI starting point
}

// LoadConfigFileName pulls a given filename config off local disk
// Validation is performed on the file before opening
func LoadConfigFileName(filename string) (*ConfigFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// validation
	err = validateLoad(file)
	if err != nil {
		slog.Error("Validation failed", slog.Any("Error", err))
		return nil, err
	}

	return LoadConfig(file)
}

func validateLoad(file *os.File) error {
	// validate file
	info, err := file.Stat()
	if err != nil {
		slog.Error("could not stat file")
		return err
	}

	// validate size
	if info.Size() == 0 {
		slog.Error("file is empty")
		return ErrEmptyConfig
	}

	return nil
}

// LoadConfig decodes and defaults a config from any reader
func LoadConfig(r io.Reader) (*ConfigFile, error) {
	var config ConfigFile
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&config); err != nil {
		slog.Error("could not decode file")
		return nil, fmt.Errorf("config decode: %w", err)
	}

	if config.Source.Type == "" {
		return nil, ErrMissingSource
	}
	if config.Addr == "" {
		config.Addr = defaultAddr
	}
	if config.StartPosition == "" {
		config.StartPosition = defaultStartPosition
	}

	return &config, nil
}
