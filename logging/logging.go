package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	threshold = LevelInfo
	enabled   = false
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetupLogging configures logging.
// If filename is empty, logging is disabled (except log.Fatal/panic).
// If filename is set, logs go to that file and Bubble Tea logs are enabled too.
func SetupLogging(filename string, level Level) (cleanup func(), err error) {
	threshold = level
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if filename == "" {
		enabled = false
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)

	tf, err := tea.LogToFile(filename, "tea")
	if err != nil {
		f.Close()
		return nil, err
	}
	enabled = true

	cleanup = func() {
		enabled = false
		tf.Close()
		f.Close()
	}
	return cleanup, nil
}

// IsDebugMode is true when a log file is open and debug lines are kept.
func IsDebugMode() bool {
	return enabled && threshold <= LevelDebug
}

func output(level Level, tag, msg string) {
	if !enabled || level < threshold {
		return
	}
	_ = log.Output(3, tag+" "+msg)
}

func Debug(msg string)                  { output(LevelDebug, "DEBUG", msg) }
func Debugf(format string, args ...any) { output(LevelDebug, "DEBUG", fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { output(LevelInfo, "INFO", fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { output(LevelWarn, "WARN", fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { output(LevelError, "ERROR", fmt.Sprintf(format, args...)) }
