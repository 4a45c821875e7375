package badgerdb

import (
	"strings"

	"github.com/Vecno-Foundation/vecnod/infrastructure/db/database"
	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// BadgerDB is a database.Database backed by badger.
type BadgerDB struct {
	db *badger.DB
}

// NewBadgerDB opens the badger database at path, creating it if needed.
func NewBadgerDB(path string) (*BadgerDB, error) {
	options := badger.DefaultOptions(path).WithLogger(badgerLogger{})
	db, err := badger.Open(options)
	if err != nil {
		if strings.Contains(err.Error(), "Cannot acquire directory lock") {
			return nil, errors.Wrapf(err, "database at %s is locked by another process", path)
		}
		return nil, errors.Wrapf(err, "failed to open database at %s", path)
	}
	return &BadgerDB{db: db}, nil
}

// Compact flattens the LSM tree and reclaims value log space.
func (db *BadgerDB) Compact() error {
	err := db.db.Flatten(1)
	if err != nil {
		return errors.WithStack(err)
	}
	err = db.db.RunValueLogGC(0.5)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return errors.WithStack(err)
	}
	return nil
}

// Close closes the database.
func (db *BadgerDB) Close() error {
	return errors.WithStack(db.db.Close())
}

// Put sets the value for the given key. It overwrites
// any previous value for that key.
// This method is part of the DataAccessor interface.
func (db *BadgerDB) Put(key *database.Key, value []byte) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key.Bytes(), copyBytes(value))
	})
	return errors.WithStack(err)
}

// Get gets the value for the given key. It returns
// ErrNotFound if the given key does not exist.
// This method is part of the DataAccessor interface.
func (db *BadgerDB) Get(key *database.Key) ([]byte, error) {
	var value []byte
	err := db.db.View(func(txn *badger.Txn) error {
		var err error
		value, err = getFromTxn(txn, key)
		return err
	})
	return value, err
}

// Has returns true if the database does contains the
// given key.
// This method is part of the DataAccessor interface.
func (db *BadgerDB) Has(key *database.Key) (bool, error) {
	var exists bool
	err := db.db.View(func(txn *badger.Txn) error {
		var err error
		exists, err = hasInTxn(txn, key)
		return err
	})
	return exists, err
}

// Delete deletes the value for the given key. Will not
// return an error if the key doesn't exist.
// This method is part of the DataAccessor interface.
func (db *BadgerDB) Delete(key *database.Key) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key.Bytes())
	})
	return errors.WithStack(err)
}

// Cursor begins a new cursor over the given bucket. The cursor
// reads from its own read-only snapshot, released on Close.
// This method is part of the DataAccessor interface.
func (db *BadgerDB) Cursor(bucket *database.Bucket) (database.Cursor, error) {
	txn := db.db.NewTransaction(false)
	return newBadgerCursor(txn, true, bucket), nil
}

func getFromTxn(txn *badger.Txn, key *database.Key) ([]byte, error) {
	item, err := txn.Get(key.Bytes())
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, errors.Wrapf(database.ErrNotFound, "key %s not found", key)
		}
		return nil, errors.WithStack(err)
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return value, nil
}

func hasInTxn(txn *badger.Txn, key *database.Key) (bool, error) {
	_, err := txn.Get(key.Bytes())
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, errors.WithStack(err)
	}
	return true, nil
}

// badger holds on to the slices passed to Set until commit.
func copyBytes(value []byte) []byte {
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied
}
