// Package logger owns the process-wide zap logger. Log output goes to
// a file so it never interleaves with terminal drawing.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L is the global structured logger. It starts as a no-op so packages
// can log before Init runs.
var L = zap.NewNop()

// S is the global sugared logger.
var S = L.Sugar()

// logPath returns the log file location: $LOOM_LOG_FILE, else
// $XDG_STATE_HOME/loom/loom.log, else ~/.local/state/loom/loom.log.
func logPath() string {
	if p := os.Getenv("LOOM_LOG_FILE"); p != "" {
		return p
	}
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "loom.log"
		}
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "loom", "loom.log")
}

// Init opens the log file and installs the global logger. Failure to
// open the file leaves the no-op logger in place rather than aborting
// the editor.
func Init(debug bool) error {
	path := logPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(f),
		level,
	)
	L = zap.New(core)
	S = L.Sugar()
	return nil
}

// Close flushes buffered log entries.
func Close() {
	_ = L.Sync()
}

// Debug logs at debug level with structured fields.
func Debug(msg string, fields ...zap.Field) { L.Debug(msg, fields...) }

// Info logs at info level with structured fields.
func Info(msg string, fields ...zap.Field) { L.Info(msg, fields...) }

// Warn logs at warn level with structured fields.
func Warn(msg string, fields ...zap.Field) { L.Warn(msg, fields...) }

// Error logs at error level with structured fields.
func Error(msg string, fields ...zap.Field) { L.Error(msg, fields...) }
