package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Vecno-Foundation/vecnod/infrastructure/logger"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultAppDirname         = "vecnod"
	defaultDataDirname        = "datadir"
	defaultLogDirname         = "logs"
	defaultLogFilename        = "vecnod.log"
	defaultErrLogFilename     = "vecnod_err.log"
	defaultLogLevel           = "info"
	defaultDBCacheSizeMiB     = 256
	defaultUTXOIndexChunkSize = 2048

	// DBTypeLevelDB selects the leveldb backend.
	DBTypeLevelDB = "leveldb"

	// DBTypeBadger selects the badger backend.
	DBTypeBadger = "badger"
)

var (
	// DefaultAppDir is the default home directory for vecnod.
	DefaultAppDir = appDataDir(defaultAppDirname)

	knownDBTypes = []string{DBTypeLevelDB, DBTypeBadger}
)

// Flags defines the configuration options for vecnod.
//
// See LoadConfig for details on the configuration load process.
type Flags struct {
	AppDir                   string `short:"b" long:"appdir" description:"Directory to store data"`
	LogDir                   string `long:"logdir" description:"Directory to log output."`
	LogLevel                 string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	DBType                   string `long:"dbtype" description:"Database backend to use {leveldb, badger}"`
	DBCacheSizeMiB           int    `long:"dbcachesize" description:"Size of the leveldb cache in MiB"`
	UTXOIndex                bool   `long:"utxoindex" description:"Enable the UTXO index"`
	UTXOIndexResyncChunkSize int    `long:"utxoindex-resync-chunk-size" description:"Number of UTXOs read from the consensus per page while rebuilding the UTXO index"`
	NetworkFlags
}

// Config defines the configuration options for vecnod.
type Config struct {
	*Flags
}

// DataDir returns the directory holding the database of the active network.
func (cfg *Config) DataDir() string {
	return filepath.Join(cfg.AppDir, cfg.NetParams().Name, defaultDataDirname)
}

// LogFile returns the path of the main log file.
func (cfg *Config) LogFile() string {
	return filepath.Join(cfg.LogDir, defaultLogFilename)
}

// ErrLogFile returns the path of the error log file.
func (cfg *Config) ErrLogFile() string {
	return filepath.Join(cfg.LogDir, defaultErrLogFilename)
}

func defaultFlags() *Flags {
	return &Flags{
		AppDir:                   DefaultAppDir,
		LogLevel:                 defaultLogLevel,
		DBType:                   DBTypeLevelDB,
		DBCacheSizeMiB:           defaultDBCacheSizeMiB,
		UTXOIndexResyncChunkSize: defaultUTXOIndexChunkSize,
	}
}

// DefaultConfig returns the default vecnod configuration
func DefaultConfig() *Config {
	config := &Config{Flags: defaultFlags()}
	config.LogDir = filepath.Join(config.AppDir, defaultLogDirname)
	err := config.ResolveNetwork(nil)
	if err != nil {
		panic(err)
	}
	return config
}

// LoadConfig initializes and parses the config using command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Parse the command line options and override or add any specified options
//  3. Resolve the network and validate the result
//
// The above results in vecnod functioning properly without any config settings
// while still allowing the user to override settings with the command line.
func LoadConfig(args []string) (*Config, error) {
	cfgFlags := defaultFlags()
	parser := flags.NewParser(cfgFlags, flags.HelpFlag)
	_, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			return nil, err
		}
		return nil, errors.Wrap(err, "couldn't parse command line options")
	}

	cfg := &Config{Flags: cfgFlags}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	cfg.AppDir = cleanAndExpandPath(cfg.AppDir)
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.AppDir, cfg.NetParams().Name, defaultLogDirname)
	}
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)

	if !validDBType(cfg.DBType) {
		str := "%s: The specified database type [%s] is invalid -- supported types: %s"
		err := errors.Errorf(str, "LoadConfig", cfg.DBType, strings.Join(knownDBTypes, ", "))
		fmt.Fprintln(os.Stderr, err)
		return nil, err
	}

	if cfg.DBCacheSizeMiB <= 0 {
		return nil, errors.Errorf("dbcachesize must be positive, got %d", cfg.DBCacheSizeMiB)
	}

	if cfg.UTXOIndexResyncChunkSize <= 0 {
		return nil, errors.Errorf("utxoindex-resync-chunk-size must be positive, got %d",
			cfg.UTXOIndexResyncChunkSize)
	}

	err = logger.ValidateLogLevels(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func validDBType(dbType string) bool {
	for _, knownType := range knownDBTypes {
		if dbType == knownType {
			return true
		}
	}
	return false
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultAppDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// appDataDir returns an operating system specific directory to be used for
// storing application data for an application.
func appDataDir(appName string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = "."
	}

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			appData = os.Getenv("APPDATA")
		}
		if appData != "" {
			return filepath.Join(appData, strings.ToUpper(appName[:1])+appName[1:])
		}
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support",
			strings.ToUpper(appName[:1])+appName[1:])
	}
	return filepath.Join(homeDir, "."+strings.ToLower(appName))
}
