package common

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
)

// --------------------------------------------------------------------------
// Logger Interface
// --------------------------------------------------------------------------

// ILogger is the named logger used by all packages of the module
type ILogger interface {
	SetLevel(level logrus.Level)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Panicf(format string, args ...interface{})
}

// --------------------------------------------------------------------------
// Custom Logger (backed by logrus)
// --------------------------------------------------------------------------

// redmineLogger wraps a logrus logger of its own so levels can be set per name
type redmineLogger struct {
	base  *logrus.Logger
	entry *logrus.Entry
}

func (l *redmineLogger) SetLevel(level logrus.Level) {
	l.base.SetLevel(level)
}

func (l *redmineLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *redmineLogger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *redmineLogger) Warningf(format string, args ...interface{}) {
	l.entry.Warningf(format, args...)
}

func (l *redmineLogger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

func (l *redmineLogger) Panicf(format string, args ...interface{}) {
	l.entry.Panicf(format, args...)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

var (
	loggers      = xsync.NewMapOf[string, ILogger]()
	defaultLevel atomic.Uint32
)

func init() {
	defaultLevel.Store(uint32(logrus.InfoLevel))
}

// CreateLogger creates a new logger for the given package name
func CreateLogger(pkgName string) ILogger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
	base.SetLevel(logrus.Level(defaultLevel.Load()))

	return &redmineLogger{
		base:  base,
		entry: base.WithField("pkg", pkgName),
	}
}

// GetLogger returns the logger registered under name, creating it on first use
func GetLogger(name string) ILogger {
	l, _ := loggers.LoadOrCompute(name, func() ILogger {
		return CreateLogger(name)
	})
	return l
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// parseLogLevel converts a string level to logrus.Level
func parseLogLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warning", "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		panic(fmt.Sprintf("invalid log level: %s. must be one of debug, info, warn, error", level))
	}
}

// ValidLogLevel reports whether level is one of debug, info, warn(ing) and error
func ValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warning", "warn", "error":
		return true
	}
	return false
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// InitLoggers sets the level of all existing and future loggers
func InitLoggers(config ClientConfig) {
	level := parseLogLevel(config.LogLevel)
	defaultLevel.Store(uint32(level))

	// make sure the module loggers exist even before their packages log anything
	for _, name := range []string{"serializer", "transport", "client", "cli"} {
		GetLogger(name)
	}
	loggers.Range(func(_ string, l ILogger) bool {
		l.SetLevel(level)
		return true
	})
}
