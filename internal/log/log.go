package log

import (
	"io"
	"log"
	"os"
)

type Level int

const (
	LevelWarn Level = iota
	LevelInfo
	LevelDebug
)

type Logger struct {
	level Level
	warn  *log.Logger
	info  *log.Logger
	debug *log.Logger
}

func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		level: level,
		warn:  log.New(out, "WARN: ", log.LstdFlags),
		info:  log.New(out, "INFO: ", log.LstdFlags),
		debug: log.New(out, "DEBUG: ", log.LstdFlags),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(LevelWarn, io.Discard)
}

func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	l.warn.Printf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	if l == nil || l.level < LevelInfo {
		return
	}
	l.info.Printf(format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || l.level < LevelDebug {
		return
	}
	l.debug.Printf(format, args...)
}
