package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// BackendLog is the logging backend used to create all subsystem loggers.
var BackendLog = NewBackend()

var (
	subsystemLoggers      = make(map[string]*Logger)
	subsystemLoggersMutex sync.Mutex
)

// RegisterSubSystem returns the logger for subsystem, creating it on first use.
func RegisterSubSystem(subsystem string) *Logger {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()
	logger, exists := subsystemLoggers[subsystem]
	if !exists {
		logger = BackendLog.Logger(subsystem)
		subsystemLoggers[subsystem] = logger
	}
	return logger
}

// InitLog attaches logFile and errLogFile to the backend log and starts it.
// errLogFile only receives warnings and above.
func InitLog(logFile, errLogFile string) {
	err := BackendLog.AddLogFile(logFile, LevelTrace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %+v\n", logFile, LevelTrace, err)
		os.Exit(1)
	}
	err = BackendLog.AddLogFile(errLogFile, LevelWarn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %+v\n", errLogFile, LevelWarn, err)
		os.Exit(1)
	}
	err = BackendLog.AddLogWriter(os.Stdout, LevelInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding stdout to the logger for level %s: %+v\n", LevelInfo, err)
		os.Exit(1)
	}
	err = BackendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %+v\n", err)
		os.Exit(1)
	}
}

// SetLogLevel sets the level of a single registered subsystem. Unknown
// subsystems are ignored.
func SetLogLevel(subsystemID string, logLevel string) {
	subsystemLoggersMutex.Lock()
	logger, ok := subsystemLoggers[subsystemID]
	subsystemLoggersMutex.Unlock()
	if !ok {
		return
	}
	level, _ := LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets every registered subsystem to logLevel.
func SetLogLevels(logLevel string) {
	level, _ := LevelFromString(logLevel)
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}

// SupportedSubsystems returns the sorted tags of every registered subsystem.
func SupportedSubsystems() []string {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()
	subsystems := make([]string, 0, len(subsystemLoggers))
	for tag := range subsystemLoggers {
		subsystems = append(subsystems, tag)
	}
	sort.Strings(subsystems)
	return subsystems
}

// ValidateLogLevels checks that levelSpec is well formed without applying
// it. Subsystem names are not checked since subsystems register lazily.
func ValidateLogLevels(levelSpec string) error {
	if !strings.Contains(levelSpec, ",") && !strings.Contains(levelSpec, "=") {
		if _, ok := LevelFromString(levelSpec); !ok {
			return errors.Errorf("the specified log level [%s] is invalid", levelSpec)
		}
		return nil
	}

	for _, pair := range strings.Split(levelSpec, ",") {
		fields := strings.Split(pair, "=")
		if len(fields) != 2 {
			return errors.Errorf("the specified log level pair [%s] is malformed, "+
				"expected <subsystem>=<level>", pair)
		}
		if _, ok := LevelFromString(fields[1]); !ok {
			return errors.Errorf("the specified log level [%s] is invalid", fields[1])
		}
	}
	return nil
}

// ParseAndSetLogLevels applies a level spec of the form "info" or
// "UTIN=debug,INDX=trace".
func ParseAndSetLogLevels(levelSpec string) error {
	err := ValidateLogLevels(levelSpec)
	if err != nil {
		return err
	}
	if !strings.Contains(levelSpec, ",") && !strings.Contains(levelSpec, "=") {
		SetLogLevels(levelSpec)
		return nil
	}

	for _, pair := range strings.Split(levelSpec, ",") {
		fields := strings.Split(pair, "=")
		subsystemID, logLevel := strings.TrimSpace(fields[0]), fields[1]
		subsystemLoggersMutex.Lock()
		_, exists := subsystemLoggers[subsystemID]
		subsystemLoggersMutex.Unlock()
		if !exists {
			return errors.Errorf("the specified subsystem [%s] is invalid, supported subsystems: %s",
				subsystemID, strings.Join(SupportedSubsystems(), ", "))
		}
		SetLogLevel(subsystemID, logLevel)
	}
	return nil
}
