package app

import (
	"io"
	"log/slog"
)

// Streams are the process streams a run reads and writes. Images and dumped
// programs go to Out; logs go to Log.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Log io.Writer
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	streams Streams
	logger  *slog.Logger
	config  *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(streams Streams, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, streams.Log)
	logger.Debug("Logger configured successfully.")

	return &App{
		streams: streams,
		logger:  logger,
		config:  cfg,
	}
}
