// Package logger builds the process-wide structured logger: a zap core
// wrapped in logr via zapr. The terminal belongs to the TUI, so output goes
// to a log file unless stderr is asked for explicitly.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerContextKey struct{}

const (
	CommandKey   = "command"
	VersionKey   = "version"
	GoVersionKey = "go_version"
	TimeStampKey = "timestamp"
	MessageKey   = "message"

	// Stderr as a path selects standard error instead of a file.
	Stderr = "-"

	// InfoLevel and DebugLevel are zap levels; logr V(1) maps to DebugLevel.
	InfoLevel  int8 = 0
	DebugLevel int8 = -1
)

var (
	once sync.Once

	globalZapLogger  *zap.Logger
	globalLogrLogger *logr.Logger
	globalCloser     io.Closer
	setupErr         error

	defaultNoopLogger = logr.Discard()
)

// Options selects the destination and verbosity of the global logger.
type Options struct {
	// Level is a zapcore.Level; DebugLevel enables V(1) messages.
	Level int8
	// Path is the log file. Empty selects DefaultPath, Stderr selects os.Stderr.
	Path string
}

// DefaultPath is the log file under the XDG state directory.
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, "poslookup", "poslookup.log")
}

// Setup initializes the global logger once. Later calls return the first
// result regardless of opts.
func Setup(opts Options) (*logr.Logger, error) {
	once.Do(func() {
		ws, closer, err := openSink(opts.Path)
		if err != nil {
			setupErr = err
			return
		}
		globalCloser = closer
		globalZapLogger = New(ws, opts.Level)
		gl := zapr.NewLogger(globalZapLogger)
		globalLogrLogger = &gl
	})
	if setupErr != nil {
		return &defaultNoopLogger, setupErr
	}
	if globalLogrLogger == nil {
		return &defaultNoopLogger, nil
	}
	return globalLogrLogger, nil
}

// New builds a JSON zap logger writing to ws at the given level.
func New(ws zapcore.WriteSyncer, level int8) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	fields := []zapcore.Field{}
	if info, ok := debug.ReadBuildInfo(); ok {
		fields = append(fields,
			zap.String(VersionKey, info.Main.Version),
			zap.String(GoVersionKey, info.GoVersion),
		)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(ws),
		zap.NewAtomicLevelAt(zapcore.Level(level)),
	).With(fields)

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
}

func openSink(path string) (zapcore.WriteSyncer, io.Closer, error) {
	if path == Stderr {
		return zapcore.AddSync(os.Stderr), nil, nil
	}
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return zapcore.AddSync(f), f, nil
}

// WithLogger returns a context carrying log. The original context is
// returned when it already holds the same logger.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the context logger, then the global logger, then a
// no-op logger.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	}
	return Global()
}

// Global returns the configured logger or a no-op logger before Setup.
func Global() *logr.Logger {
	if globalLogrLogger != nil {
		return globalLogrLogger
	}
	return &defaultNoopLogger
}

// WithValues returns a copy of lgr with extra key/value pairs.
func WithValues(lgr *logr.Logger, keysAndValues ...any) *logr.Logger {
	nlgr := lgr.WithValues(keysAndValues...)
	return &nlgr
}

// Sync flushes buffered entries and closes the log file. Call it before exit.
func Sync() {
	if globalZapLogger != nil {
		if err := globalZapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
			fmt.Fprintf(os.Stderr, "WARNING: failed to sync logger: %v\n", err)
		}
	}
	if globalCloser != nil {
		_ = globalCloser.Close()
		globalCloser = nil
	}
}

// isIgnorableSyncError reports the errors Sync returns on pipes and TTYs.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}
