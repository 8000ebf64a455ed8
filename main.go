package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	Kd "github.com/maroda/kinetic/display"
	Ko "github.com/maroda/kinetic/obvy"
	Kp "github.com/maroda/kinetic/plugin"
	Ks "github.com/maroda/kinetic/server"
)

func setupLogging(tui bool) (func(), error) {
	level := slog.LevelInfo
	switch strings.ToLower(Ks.FillEnvVar("KINETIC_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}

	// The TUI owns the terminal, so logs go to a file by default
	logFile := Ks.FillEnvVar("KINETIC_LOG_FILE")
	if logFile == "ENOENT" {
		if !tui {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
			return func() {}, nil
		}
		logFile = "kinetic.log"
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, opts)))
	return func() { f.Close() }, nil
}

func setupOTel(ctx context.Context) func() {
	switch strings.ToLower(Ks.FillEnvVar("KINETIC_OTEL")) {
	case "honeycomb":
		shutdown, err := Ko.InitOTelHNY()
		if err != nil {
			slog.Error("Could not start Honeycomb tracing", slog.Any("Error", err))
			return func() {}
		}
		return shutdown
	case "grafana":
		tp, err := Ko.InitOTelGRF(ctx)
		if err != nil {
			slog.Error("Could not start Grafana tracing", slog.Any("Error", err))
			return func() {}
		}
		return func() { tp.Shutdown(ctx) }
	}
	return func() {}
}

// importRows copies a local csv or json file into the configured source
func importRows(ctx context.Context, c *Ks.ConfigFile, path string) error {
	dst, err := Kp.SourceLookup(c.Source)
	if err != nil {
		return err
	}
	defer dst.Close()

	n, err := Kp.ImportFile(ctx, path, dst)
	if err != nil {
		return err
	}
	slog.Info("Imported rows", slog.String("From", path), slog.String("Into", dst.Type()), slog.Int("Rows", n))
	return nil
}

// exportRows dumps the configured source to a json file
func exportRows(ctx context.Context, c *Ks.ConfigFile, path string) error {
	src, err := Kp.SourceLookup(c.Source)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = Kp.ExportFile(ctx, src, path)
	return err
}

func main() {
	tui := !Ks.EnvSet("KINETIC_NOTUI")

	closeLog, err := setupLogging(tui)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	configFile := Ks.FillEnvVar("KINETIC_CONFIG")
	if configFile == "ENOENT" {
		configFile = "config.json"
	}
	config, err := Ks.LoadConfigFileName(configFile)
	if err != nil {
		slog.Error("Could not load config", slog.String("File", configFile), slog.Any("Error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	shutdown := setupOTel(ctx)
	defer shutdown()

	if from := Ks.FillEnvVar("KINETIC_IMPORT_FROM"); from != "ENOENT" {
		if err := importRows(ctx, config, from); err != nil {
			slog.Error("Import failed", slog.Any("Error", err))
			os.Exit(1)
		}
	}

	if to := Ks.FillEnvVar("KINETIC_EXPORT_TO"); to != "ENOENT" {
		if err := exportRows(ctx, config, to); err != nil {
			slog.Error("Export failed", slog.Any("Error", err))
			os.Exit(1)
		}
		return
	}

	if !tui {
		err = Kd.StartWebNoTUI(config)
	} else {
		err = Kd.StartBrowserWithConfig(config)
	}
	if err != nil {
		slog.Error("Kinetic exited with error", slog.Any("Error", err))
		os.Exit(1)
	}
}
