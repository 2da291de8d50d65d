package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
	WarnLogger  *log.Logger

	debugEnabled atomic.Bool
)

func init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLogger = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)

	debugEnabled.Store(os.Getenv("ENVIRONMENT") == "development")
}

// Configure applies the level from config. Debug is on for "debug" or in development.
func Configure(level, environment string) {
	debugEnabled.Store(strings.EqualFold(level, "debug") || environment == "development")
}

func Info(format string, v ...interface{}) {
	InfoLogger.Output(2, fmt.Sprintf(format, v...))
}

func Error(format string, v ...interface{}) {
	ErrorLogger.Output(2, fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) {
	if debugEnabled.Load() {
		DebugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func Warn(format string, v ...interface{}) {
	WarnLogger.Output(2, fmt.Sprintf(format, v...))
}

// LogLeadPersistenceError records a qualification record that could not be saved.
// The write is best-effort, so this line is the only trace of the lost lead.
func LogLeadPersistenceError(propertyID string, err error) {
	ErrorLogger.Output(2, fmt.Sprintf("Lead persistence failed: propertyID=%s, error=%v", propertyID, err))
}
