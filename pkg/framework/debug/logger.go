// Package debug provides logging and buffer inspection for plugin development.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
	// LogLevelFatal is for fatal errors. Fatal messages panic after being written.
	LogLevelFatal
	// LogLevelOff disables all logging.
	LogLevelOff
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// zapLevel maps a level onto the zap level gating the core.
func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LogLevelDebug:
		return zapcore.DebugLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	case LogLevelFatal:
		return zapcore.FatalLevel
	case LogLevelOff:
		return zapcore.InvalidLevel
	default:
		return zapcore.InfoLevel
	}
}

// Flags for logger output formatting.
const (
	FlagTime      = 1 << iota // Include timestamp
	FlagShortFile             // Include short file name and line number
	FlagLongFile              // Include full file path and line number
	FlagLevel                 // Include log level
	FlagPrefix                // Include prefix (the zap logger name)
)

// DefaultFlags are the default formatting flags.
const DefaultFlags = FlagTime | FlagShortFile | FlagLevel | FlagPrefix

// shared is common to a logger and every child derived with Named, so
// SetLevel, SetEnabled and SetOutput on any of them apply to the whole tree.
// It is also the zap write syncer, which lets SetOutput swap the destination
// without rebuilding the children.
type shared struct {
	level   atomic.Int32
	enabled atomic.Bool
	atom    zap.AtomicLevel

	mu  sync.Mutex
	out io.Writer
}

func newShared(out io.Writer) *shared {
	s := &shared{atom: zap.NewAtomicLevel(), out: out}
	s.setLevel(LogLevelInfo)
	s.enabled.Store(true)
	return s
}

func (s *shared) setLevel(level LogLevel) {
	s.level.Store(int32(level))
	s.atom.SetLevel(level.zapLevel())
}

func (s *shared) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Write(p)
}

func (s *shared) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.out.(interface{ Sync() error }); ok {
		return f.Sync()
	}
	return nil
}

func (s *shared) setOutput(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out = w
}

// Logger is a leveled, printf-style logger backed by zap.
type Logger struct {
	mu     sync.Mutex
	prefix string
	flags  int
	state  *shared
	sugar  *zap.SugaredLogger
}

var defaultLogger = New(os.Stderr, "", DefaultFlags)

// New creates a new logger writing to output.
func New(output io.Writer, prefix string, flags int) *Logger {
	l := &Logger{
		prefix: prefix,
		flags:  flags,
		state:  newShared(output),
	}
	l.rebuild()
	return l
}

// NewFileLogger creates a logger that appends to a file.
func NewFileLogger(filename, prefix string, flags int) (*Logger, error) {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return New(file, prefix, flags), nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	l := New(io.Discard, "", 0)
	l.SetEnabled(false)
	return l
}

// rebuild recreates the zap core from the current prefix and flags.
// Callers must hold l.mu or own l exclusively.
func (l *Logger) rebuild() {
	cfg := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	if l.flags&FlagTime != 0 {
		cfg.TimeKey = "time"
	}
	if l.flags&FlagLevel != 0 {
		cfg.LevelKey = "level"
	}
	if l.flags&FlagPrefix != 0 {
		cfg.NameKey = "logger"
	}
	if l.flags&(FlagShortFile|FlagLongFile) != 0 {
		cfg.CallerKey = "caller"
		if l.flags&FlagLongFile != 0 {
			cfg.EncodeCaller = zapcore.FullCallerEncoder
		}
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		l.state,
		l.state.atom,
	)

	// Skip log() and the Debug/Info/... wrapper so callers see their own line.
	zl := zap.New(core,
		zap.WithCaller(cfg.CallerKey != ""),
		zap.AddCallerSkip(2),
		zap.WithFatalHook(zapcore.WriteThenPanic),
	)
	if l.prefix != "" {
		zl = zl.Named(l.prefix)
	}
	l.sugar = zl.Sugar()
}

// Named returns a child logger whose prefix is extended by name. The child
// shares the parent's output, level and enabled state; its flags are fixed
// at creation.
func (l *Logger) Named(name string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}
	child := &Logger{
		prefix: prefix,
		flags:  l.flags,
		state:  l.state,
	}
	child.rebuild()
	return child
}

// Sync flushes buffered output.
func (l *Logger) Sync() error {
	l.mu.Lock()
	sugar := l.sugar
	l.mu.Unlock()
	return sugar.Sync()
}

// SetOutput sets the output destination for the logger and its children.
func (l *Logger) SetOutput(w io.Writer) {
	l.state.setOutput(w)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.state.setLevel(level)
}

// Level returns the minimum log level.
func (l *Logger) Level() LogLevel {
	return LogLevel(l.state.level.Load())
}

// SetPrefix sets the logger prefix.
func (l *Logger) SetPrefix(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefix = prefix
	l.rebuild()
}

// SetEnabled enables or disables the logger.
func (l *Logger) SetEnabled(enabled bool) {
	l.state.enabled.Store(enabled)
}

// IsEnabled returns whether the logger is enabled.
func (l *Logger) IsEnabled() bool {
	return l.state.enabled.Load()
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if !l.state.enabled.Load() || level < l.Level() {
		return
	}

	l.mu.Lock()
	sugar := l.sugar
	l.mu.Unlock()

	switch level {
	case LogLevelDebug:
		sugar.Debugf(format, args...)
	case LogLevelInfo:
		sugar.Infof(format, args...)
	case LogLevelWarn:
		sugar.Warnf(format, args...)
	case LogLevelError:
		sugar.Errorf(format, args...)
	case LogLevelFatal:
		sugar.Fatalf(format, args...)
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LogLevelDebug, format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LogLevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LogLevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LogLevelError, format, args...)
}

// Fatal logs a fatal error message and panics.
func (l *Logger) Fatal(format string, args ...interface{}) {
	if !l.state.enabled.Load() || LogLevelFatal < l.Level() {
		panic(fmt.Sprintf(format, args...))
	}
	l.log(LogLevelFatal, format, args...)
}

// Global logger functions

// Default returns the default logger instance.
func Default() *Logger {
	return defaultLogger
}

// SetOutput sets the output destination for the default logger.
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// SetLevel sets the minimum log level for the default logger.
func SetLevel(level LogLevel) {
	defaultLogger.SetLevel(level)
}

// SetPrefix sets the prefix for the default logger.
func SetPrefix(prefix string) {
	defaultLogger.SetPrefix(prefix)
}

// SetEnabled enables or disables the default logger.
func SetEnabled(enabled bool) {
	defaultLogger.SetEnabled(enabled)
}

// Debug logs a debug message using the default logger.
func Debug(format string, args ...interface{}) {
	defaultLogger.log(LogLevelDebug, format, args...)
}

// Info logs an informational message using the default logger.
func Info(format string, args ...interface{}) {
	defaultLogger.log(LogLevelInfo, format, args...)
}

// Warn logs a warning message using the default logger.
func Warn(format string, args ...interface{}) {
	defaultLogger.log(LogLevelWarn, format, args...)
}

// Error logs an error message using the default logger.
func Error(format string, args ...interface{}) {
	defaultLogger.log(LogLevelError, format, args...)
}

// DebugIf logs a debug message if the condition is true.
func DebugIf(condition bool, format string, args ...interface{}) {
	if condition {
		defaultLogger.log(LogLevelDebug, format, args...)
	}
}
