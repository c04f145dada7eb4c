// Package neat holds the configuration bundle, context plumbing, logging, and
// RNG primitives shared by every other package in this module.
package neat

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
)

// LoggerLevel type to specify logger output level
type LoggerLevel string

const (
	// LogLevelDebug is the most verbose logging level
	LogLevelDebug LoggerLevel = "debug"
	// LogLevelInfo logs generation and epoch boundaries
	LogLevelInfo LoggerLevel = "info"
	// LogLevelWarning logs recoverable anomalies
	LogLevelWarning LoggerLevel = "warn"
	// LogLevelError logs only fatal conditions
	LogLevelError LoggerLevel = "error"
)

var (
	// LogLevel is the current log level of the running process
	LogLevel LoggerLevel = LogLevelInfo

	loggerDebug = log.New(os.Stdout, "DEBUG: ", log.Ltime|log.Lshortfile)
	loggerInfo  = log.New(os.Stdout, "INFO: ", log.Ltime|log.Lshortfile)
	loggerWarn  = log.New(os.Stdout, "WARN: ", log.Ltime|log.Lshortfile)
	loggerError = log.New(os.Stderr, "ERROR: ", log.Ltime|log.Lshortfile)

	// DebugLog emits a message at debug level
	DebugLog = func(message string) {
		if acceptLogLevel(LogLevel, LogLevelDebug) {
			_ = loggerDebug.Output(2, message)
		}
	}
	// InfoLog emits a message at info level
	InfoLog = func(message string) {
		if acceptLogLevel(LogLevel, LogLevelInfo) {
			_ = loggerInfo.Output(2, message)
		}
	}
	// WarnLog emits a message at warn level
	WarnLog = func(message string) {
		if acceptLogLevel(LogLevel, LogLevelWarning) {
			_ = loggerWarn.Output(2, message)
		}
	}
	// ErrorLog emits a message at error level
	ErrorLog = func(message string) {
		if acceptLogLevel(LogLevel, LogLevelError) {
			_ = loggerError.Output(2, message)
		}
	}
)

// InitLogger parses level and sets it as the active LogLevel
func InitLogger(level string) error {
	switch LoggerLevel(level) {
	case LogLevelDebug:
		LogLevel = LogLevelDebug
	case LogLevelInfo:
		LogLevel = LogLevelInfo
	case LogLevelWarning:
		LogLevel = LogLevelWarning
	case LogLevelError:
		LogLevel = LogLevelError
	default:
		return errors.Errorf("unsupported log level: [%s]", level)
	}
	return nil
}

func acceptLogLevel(current, target LoggerLevel) bool {
	switch current {
	case LogLevelDebug:
		return true
	case LogLevelInfo:
		return target == LogLevelInfo || target == LogLevelWarning || target == LogLevelError
	case LogLevelWarning:
		return target == LogLevelWarning || target == LogLevelError
	case LogLevelError:
		return target == LogLevelError
	default:
		_ = loggerError.Output(2, fmt.Sprintf("unsupported NEAT log level set: %q", current))
		return false
	}
}
