package logger

import (
	"io"
	"log"
	"os"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	level int
	out   *log.Logger
}

func NewLogger(level int) *defaultLogger {
	return NewLoggerWithWriter(level, os.Stderr)
}

func NewLoggerWithWriter(level int, w io.Writer) *defaultLogger {
	return &defaultLogger{level: level, out: log.New(w, "", log.LstdFlags)}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.printf(DEBUG, "[DEBUG] ", msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.printf(INFO, "[INFO] ", msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.printf(WARNING, "[WARN] ", msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.printf(ERROR, "[ERROR] ", msg, a...)
}

func (l *defaultLogger) printf(level int, prefix, msg string, a ...any) {
	if l.level <= level {
		l.out.Printf(prefix+msg+"\n", a...)
	}
}
