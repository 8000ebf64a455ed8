package kinetic

import (
	"log/slog"
	"os"
	"strconv"
)

// FillEnvVar returns the value of a runtime Environment Variable
func FillEnvVar(ev string) string {
	// If the EnvVar doesn't exist return a default string
	value := os.Getenv(ev)
	if value == "" {
		value = "ENOENT"
	}
	return value
}

// FillEnvVarInt returns an integer Environment Variable or the fallback
func FillEnvVarInt(ev string, fallback int) int {
	value := os.Getenv(ev)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		slog.Error("Env var is not an integer, using default",
			slog.String("var", ev),
			slog.String("value", value),
			slog.Int("default", fallback))
		return fallback
	}
	return i
}

// EnvSet is true when the variable has any value
func EnvSet(ev string) bool {
	return FillEnvVar(ev) != "ENOENT"
}
