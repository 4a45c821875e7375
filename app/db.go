package app

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Vecno-Foundation/vecnod/infrastructure/config"
	"github.com/Vecno-Foundation/vecnod/infrastructure/db/database"
	"github.com/Vecno-Foundation/vecnod/infrastructure/db/database/badgerdb"
	"github.com/Vecno-Foundation/vecnod/infrastructure/db/database/ldb"
	"github.com/pkg/errors"
)

const currentDatabaseVersion = 1

// OpenDatabase opens the database of the configured type in the data
// directory of the active network, creating it if it does not exist.
func OpenDatabase(cfg *config.Config) (database.Database, error) {
	dbPath := cfg.DataDir()
	err := os.MkdirAll(dbPath, 0700)
	if err != nil {
		return nil, errors.Wrapf(err, "failed creating the database directory %s", dbPath)
	}

	doesVersionFileExist, err := checkDatabaseVersion(dbPath)
	if err != nil {
		return nil, err
	}

	log.Infof("Opening %s database at %s", cfg.DBType, dbPath)
	var db database.Database
	switch cfg.DBType {
	case config.DBTypeLevelDB:
		db, err = ldb.NewLevelDB(dbPath, cfg.DBCacheSizeMiB)
	case config.DBTypeBadger:
		db, err = badgerdb.NewBadgerDB(dbPath)
	default:
		return nil, errors.Errorf("unknown database type %s", cfg.DBType)
	}
	if err != nil {
		return nil, err
	}

	if !doesVersionFileExist {
		err := createDatabaseVersionFile(dbPath)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func checkDatabaseVersion(dbPath string) (doesVersionFileExist bool, err error) {
	versionBytes, err := os.ReadFile(versionFilePath(dbPath))
	if err != nil {
		// A missing version file means the database is new
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	databaseVersion, err := strconv.Atoi(strings.TrimSpace(string(versionBytes)))
	if err != nil {
		return true, errors.Wrapf(err, "malformed database version file in %s", dbPath)
	}
	if databaseVersion != currentDatabaseVersion {
		return true, errors.Errorf("invalid database version %d. Expected version: %d",
			databaseVersion, currentDatabaseVersion)
	}
	return true, nil
}

func createDatabaseVersionFile(dbPath string) error {
	return os.WriteFile(versionFilePath(dbPath), []byte(strconv.Itoa(currentDatabaseVersion)), 0600)
}

func versionFilePath(dbPath string) string {
	return filepath.Join(dbPath, "version")
}
