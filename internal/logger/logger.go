// Package logger provides the process-wide structured logger.
package logger

import (
	"sync"
)

// Log levels accepted in configuration.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Encodings accepted in configuration.
const (
	ConsoleEncoding = "console"
	JSONEncoding    = "json"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the singleton logger. Only the first call's level is honored;
// Init replaces it when configuration is known.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = New(level, ConsoleEncoding)
	})
	return globalLogger
}

// Init builds the singleton from configuration. Later calls to Get return it.
func Init(level, encoding string) *Logger {
	l := New(level, encoding)
	once.Do(func() {})
	globalLogger = l
	return l
}
