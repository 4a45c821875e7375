package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

const (
	defaultThresholdKB = 100 * 1000
	defaultMaxRolls    = 8

	writeChanSize = 256
)

type logEntry struct {
	line  []byte
	level Level
}

type levelWriter struct {
	io.WriteCloser
	minLevel Level
}

// Backend fans log lines from every subsystem Logger out to its writers.
// Writers are registered before Run and closed by Close.
type Backend struct {
	isRunning atomic.Bool
	writers   []levelWriter
	writeChan chan logEntry
	done      sync.WaitGroup

	closeOnce sync.Once
	closed    atomic.Bool
}

// NewBackend returns a Backend with no writers attached.
func NewBackend() *Backend {
	return &Backend{writeChan: make(chan logEntry, writeChanSize)}
}

// AddLogFile rotates logs into logFile, keeping only lines at logLevel or above.
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	return b.AddLogFileWithCustomRotator(logFile, logLevel, defaultThresholdKB, defaultMaxRolls)
}

// AddLogFileWithCustomRotator is AddLogFile with explicit rotation settings.
func (b *Backend) AddLogFileWithCustomRotator(logFile string, logLevel Level, thresholdKB int64, maxRolls int) error {
	if b.IsRunning() {
		return errors.New("the logger is already running")
	}
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		err := os.MkdirAll(logDir, 0700)
		if err != nil {
			return errors.Wrapf(err, "failed to create log directory %s", logDir)
		}
	}
	r, err := rotator.New(logFile, thresholdKB, false, maxRolls)
	if err != nil {
		return errors.Wrapf(err, "failed to create file rotator for %s", logFile)
	}
	b.writers = append(b.writers, levelWriter{WriteCloser: r, minLevel: logLevel})
	return nil
}

// AddLogWriter registers an arbitrary writer, e.g. stdout or a test buffer.
func (b *Backend) AddLogWriter(writer io.WriteCloser, logLevel Level) error {
	if b.IsRunning() {
		return errors.New("the logger is already running")
	}
	b.writers = append(b.writers, levelWriter{WriteCloser: writer, minLevel: logLevel})
	return nil
}

// Run starts the goroutine draining the backend. It may be called once.
func (b *Backend) Run() error {
	if !b.isRunning.CompareAndSwap(false, true) {
		return errors.New("the logger is already running")
	}
	b.done.Add(1)
	go func() {
		defer b.done.Done()
		defer func() {
			if err := recover(); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Fatal error in logger.Backend goroutine: %+v\n", err)
				_, _ = fmt.Fprintf(os.Stderr, "Goroutine stacktrace: %s\n", debug.Stack())
			}
		}()
		for entry := range b.writeChan {
			for _, writer := range b.writers {
				if entry.level >= writer.minLevel {
					_, _ = writer.Write(entry.line)
				}
			}
		}
	}()
	return nil
}

// IsRunning reports whether Run was called and Close was not.
func (b *Backend) IsRunning() bool {
	return b.isRunning.Load() && !b.closed.Load()
}

// Close flushes pending lines and closes every writer.
func (b *Backend) Close() {
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		close(b.writeChan)
		b.done.Wait()
		for _, writer := range b.writers {
			_ = writer.Close()
		}
	})
}

func (b *Backend) write(level Level, line []byte) {
	if !b.IsRunning() {
		return
	}
	defer func() {
		// Close may race with a late writer; the line is dropped.
		_ = recover()
	}()
	b.writeChan <- logEntry{line: line, level: level}
}

// Logger returns a logger tagged with subsystemTag. It is silent until
// its level is lowered from LevelOff.
func (b *Backend) Logger(subsystemTag string) *Logger {
	l := &Logger{tag: subsystemTag, backend: b}
	l.SetLevel(LevelOff)
	return l
}
