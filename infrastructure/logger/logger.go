package logger

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Logger writes leveled, tagged messages to its Backend.
type Logger struct {
	level   atomic.Uint32
	tag     string
	backend *Backend
}

// Tracef formats and logs at LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) { l.writef(LevelTrace, format, args...) }

// Debugf formats and logs at LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) { l.writef(LevelDebug, format, args...) }

// Infof formats and logs at LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) { l.writef(LevelInfo, format, args...) }

// Warnf formats and logs at LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) { l.writef(LevelWarn, format, args...) }

// Errorf formats and logs at LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) { l.writef(LevelError, format, args...) }

// Criticalf formats and logs at LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.writef(LevelCritical, format, args...)
}

// Infos logs args at LevelInfo the way fmt.Sprint joins them.
func (l *Logger) Infos(args ...interface{}) {
	if l.Level() <= LevelInfo {
		l.emit(LevelInfo, fmt.Sprint(args...))
	}
}

// Level returns the current level.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// SetLevel changes the level. Safe for concurrent use.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(uint32(level))
}

// Backend returns the backend this logger writes to.
func (l *Logger) Backend() *Backend {
	return l.backend
}

func (l *Logger) writef(level Level, format string, args ...interface{}) {
	if l.Level() > level {
		return
	}
	l.emit(level, fmt.Sprintf(format, args...))
}

func (l *Logger) emit(level Level, message string) {
	line := make([]byte, 0, len(message)+48)
	line = time.Now().AppendFormat(line, "2006-01-02 15:04:05.000")
	line = append(line, " ["...)
	line = append(line, level.String()...)
	line = append(line, "] "...)
	line = append(line, l.tag...)
	line = append(line, ": "...)
	line = append(line, message...)
	if len(message) == 0 || message[len(message)-1] != '\n' {
		line = append(line, '\n')
	}
	l.backend.write(level, line)
}
