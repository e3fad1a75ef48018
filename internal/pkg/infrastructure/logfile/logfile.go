package logfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a writer that appends to filename and rotates it once it grows beyond
// maxSizeMB megabytes, keeping at most maxBackups old files.
func New(filename string, maxSizeMB, maxBackups int) (io.WriteCloser, error) {
	err := os.MkdirAll(filepath.Dir(filename), 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}, nil
}

// Attach returns a copy of logger that writes every event to all of writers and
// records the source location of the call site.
func Attach(logger zerolog.Logger, writers ...io.Writer) zerolog.Logger {
	return logger.Output(zerolog.MultiLevelWriter(writers...)).With().Caller().Logger()
}
