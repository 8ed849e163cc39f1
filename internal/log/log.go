// Package log provides structured logging handler construction for use
// with log/slog, wiring a level and an output format into a slog.Handler.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Format is the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatText outputs logs as human-readable key=value text.
	FormatText Format = "text"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// CreateHandlerWithStrings creates a slog.Handler from level/format strings.
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	logLvl, err := GetLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	logFmt, err := GetFormat(logFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return CreateHandler(w, logLvl, logFmt), nil
}

// CreateHandler creates a slog.Handler with the given level and format.
func CreateHandler(w io.Writer, logLvl slog.Level, logFmt Format) slog.Handler {
	opts := &slog.HandlerOptions{Level: logLvl}
	switch logFmt {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatText:
		return slog.NewTextHandler(w, opts)
	}
	return nil
}

// GetLevel parses a log level string into a slog.Level.
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, ErrUnknownLogLevel
}

// GetFormat parses a log format string into a Format.
func GetFormat(format string) (Format, error) {
	logFmt := Format(strings.ToLower(format))
	if slices.Contains([]Format{FormatJSON, FormatText}, logFmt) {
		return logFmt, nil
	}
	return "", ErrUnknownLogFormat
}

// GetAllLevelStrings lists the accepted level strings, for flag help text.
func GetAllLevelStrings() []string { return []string{"error", "warn", "info", "debug"} }

// GetAllFormatStrings lists the accepted format strings, for flag help text.
func GetAllFormatStrings() []string { return []string{string(FormatJSON), string(FormatText)} }
