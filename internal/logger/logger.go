// Package logger is the diagnostic output of railmon: messages go to stderr
// with a "railmon: " prefix and, optionally, to a rotating log file.
package logger

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Verbose enables Debug messages.
	Verbose bool
	// Quiet suppresses Info messages; errors are always written.
	Quiet bool
)

var std = log.New(os.Stderr, "railmon: ", 0)

// Setup sends messages to w, and to logFile as well when it is set. The
// returned closer releases the log file.
func Setup(w io.Writer, logFile string) io.Closer {
	if logFile == "" {
		std.SetOutput(w)
		std.SetFlags(0)
		return nopCloser{}
	}

	lj := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, //days
	}
	std.SetOutput(io.MultiWriter(w, lj))
	std.SetFlags(log.LstdFlags)
	return lj
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Info prints progress messages unless Quiet is set.
func Info(format string, args ...interface{}) {
	if Quiet {
		return
	}
	std.Printf(format, args...)
}

// Debug prints only in verbose mode.
func Debug(format string, args ...interface{}) {
	if !Verbose {
		return
	}
	std.Printf(format, args...)
}

// Error always prints.
func Error(format string, args ...interface{}) {
	std.Printf(format, args...)
}
