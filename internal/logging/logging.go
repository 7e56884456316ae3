// Package logging installs the process-wide slog logger.
//
// The interactive planner owns the terminal, so in TUI mode logs go to a
// rotating file by default; plain CLI commands log warnings to stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	EnvLevel  = "CHUTE_LOG_LEVEL"
	EnvFormat = "CHUTE_LOG_FORMAT"
	EnvSink   = "CHUTE_LOG_SINK"
	EnvFile   = "CHUTE_LOG_FILE"
)

type Mode uint8

const (
	ModeCLI Mode = iota + 1
	ModeTUI
)

func (m Mode) String() string {
	if m == ModeTUI {
		return "tui"
	}
	return "cli"
}

type Sink string

const (
	SinkNone   Sink = "none"
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds optional overrides; nil fields keep the mode's default.
type Config struct {
	Level      *string
	Format     *string
	Sink       *string
	File       *string
	MaxSizeMB  *int
	MaxBackups *int
	MaxAgeDays *int
	Compress   *bool
}

type InitOptions struct {
	Version string
	Mode    Mode
}

func strPtr(s string) *string { return &s }

// DefaultConfig is the baseline for a mode before env overrides.
func DefaultConfig(mode Mode) Config {
	if mode == ModeTUI {
		return Config{Level: strPtr("info"), Format: strPtr(string(FormatText)), Sink: strPtr(string(SinkFile))}
	}
	return Config{Level: strPtr("warn"), Format: strPtr(string(FormatText)), Sink: strPtr(string(SinkStderr))}
}

// WithEnv applies the CHUTE_LOG_* variables on top of c.
func (c Config) WithEnv() Config {
	set := func(dst **string, env string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = strPtr(v)
		}
	}
	set(&c.Level, EnvLevel)
	set(&c.Format, EnvFormat)
	set(&c.Sink, EnvSink)
	set(&c.File, EnvFile)
	return c
}

// Init builds the logger, installs it as slog's default and returns a
// function that closes the underlying sink.
func Init(cfg Config, opts InitOptions) (func() error, error) {
	if opts.Mode == 0 {
		opts.Mode = ModeCLI
	}
	cfg = mergeConfig(DefaultConfig(opts.Mode), cfg).WithEnv()
	logger, closeFn, err := buildLogger(cfg, opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closeFn, nil
}

func mergeConfig(base, override Config) Config {
	out := base
	if override.Level != nil {
		out.Level = override.Level
	}
	if override.Format != nil {
		out.Format = override.Format
	}
	if override.Sink != nil {
		out.Sink = override.Sink
	}
	if override.File != nil {
		out.File = override.File
	}
	if override.MaxSizeMB != nil {
		out.MaxSizeMB = override.MaxSizeMB
	}
	if override.MaxBackups != nil {
		out.MaxBackups = override.MaxBackups
	}
	if override.MaxAgeDays != nil {
		out.MaxAgeDays = override.MaxAgeDays
	}
	if override.Compress != nil {
		out.Compress = override.Compress
	}
	return out
}

func buildLogger(cfg Config, opts InitOptions) (*slog.Logger, func() error, error) {
	sink := SinkStderr
	if cfg.Sink != nil {
		sink = Sink(strings.ToLower(*cfg.Sink))
	}
	writer, closeFn, err := resolveWriter(cfg, sink)
	if err != nil {
		return nil, nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.Format != nil && Format(strings.ToLower(*cfg.Format)) == FormatJSON {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}
	logger := slog.New(handler).With(
		slog.String("app", "chute"),
		slog.String("version", opts.Version),
		slog.String("mode", opts.Mode.String()),
	)
	return logger, closeFn, nil
}

func parseLevel(value *string) slog.Leveler {
	if value == nil {
		return slog.LevelInfo
	}
	switch strings.ToLower(strings.TrimSpace(*value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultFile is where file logs go when no path is configured.
func DefaultFile() (string, error) {
	base := strings.TrimSpace(os.Getenv("XDG_STATE_HOME"))
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "chute", "chute.log"), nil
}

func resolveWriter(cfg Config, sink Sink) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch sink {
	case SinkNone:
		return io.Discard, noop, nil
	case SinkStderr:
		return os.Stderr, noop, nil
	case SinkFile:
		path := ""
		if cfg.File != nil {
			path = strings.TrimSpace(*cfg.File)
		}
		if path == "" {
			p, err := DefaultFile()
			if err != nil {
				return nil, nil, err
			}
			path = p
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, err
		}
		rot := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    derefInt(cfg.MaxSizeMB, 20),
			MaxBackups: derefInt(cfg.MaxBackups, 5),
			MaxAge:     derefInt(cfg.MaxAgeDays, 7),
			Compress:   cfg.Compress == nil || *cfg.Compress,
		}
		return rot, rot.Close, nil
	default:
		return nil, nil, fmt.Errorf("logging: unknown sink %q", sink)
	}
}

func derefInt(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
