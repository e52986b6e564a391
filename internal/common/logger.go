package common

import (
	"fmt"
	"io"
	"log"
)

// Severity represents log message severity levels
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the diagnostic sink of the disassembler. Listing text never goes through it.
type Logger interface {
	Log(severity Severity, msg string)
	Logf(severity Severity, format string, args ...any)

	// Error logs err at SeverityError; nil is ignored.
	Error(err error)
}

// StdLogger implements Logger on top of the standard library logger.
type StdLogger struct {
	out      *log.Logger
	minLevel Severity
}

// NewStdLoggerWithWriter creates a logger writing to w.
func NewStdLoggerWithWriter(w io.Writer, minLevel Severity) *StdLogger {
	return &StdLogger{
		out:      log.New(w, "sm3dis: ", log.Ltime),
		minLevel: minLevel,
	}
}

// Log logs a message with the specified severity
func (l *StdLogger) Log(severity Severity, msg string) {
	if severity < l.minLevel {
		return
	}
	l.out.Output(2, severity.String()+": "+msg)
}

// Logf logs a formatted message with the specified severity
func (l *StdLogger) Logf(severity Severity, format string, args ...any) {
	l.Log(severity, fmt.Sprintf(format, args...))
}

func (l *StdLogger) Error(err error) {
	if err != nil {
		l.Log(SeverityError, err.Error())
	}
}

// NoOpLogger is a logger that doesn't log anything
type NoOpLogger struct{}

func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (l *NoOpLogger) Log(severity Severity, msg string)                  {}
func (l *NoOpLogger) Logf(severity Severity, format string, args ...any) {}
func (l *NoOpLogger) Error(err error)                                    {}
