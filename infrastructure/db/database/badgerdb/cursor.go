package badgerdb

import (
	"bytes"

	"github.com/Vecno-Foundation/vecnod/infrastructure/db/database"
	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// BadgerCursor iterates over a single bucket. Like a leveldb iterator
// it starts positioned before the first entry.
type BadgerCursor struct {
	txn      *badger.Txn
	ownsTxn  bool
	iterator *badger.Iterator
	bucket   *database.Bucket
	prefix   []byte

	isPositioned bool
	isClosed     bool
}

func newBadgerCursor(txn *badger.Txn, ownsTxn bool, bucket *database.Bucket) *BadgerCursor {
	prefix := bucket.Path()
	options := badger.DefaultIteratorOptions
	options.Prefix = prefix
	return &BadgerCursor{
		txn:      txn,
		ownsTxn:  ownsTxn,
		iterator: txn.NewIterator(options),
		bucket:   bucket,
		prefix:   prefix,
	}
}

// Next moves the iterator to the next key/value pair. It returns whether the
// iterator is exhausted. Panics if the cursor is closed.
func (c *BadgerCursor) Next() bool {
	if c.isClosed {
		panic("cannot call next on a closed cursor")
	}
	if !c.isPositioned {
		c.iterator.Rewind()
		c.isPositioned = true
	} else if c.iterator.Valid() {
		c.iterator.Next()
	}
	return c.isValid()
}

// First moves the iterator to the first key/value pair. It returns false if
// such a pair does not exist. Panics if the cursor is closed.
func (c *BadgerCursor) First() bool {
	if c.isClosed {
		panic("cannot call first on a closed cursor")
	}
	c.iterator.Rewind()
	c.isPositioned = true
	return c.isValid()
}

// Seek moves the iterator to the first key/value pair whose key is greater
// than or equal to the given key. It returns ErrNotFound if such pair does not
// exist.
func (c *BadgerCursor) Seek(key *database.Key) error {
	if c.isClosed {
		return errors.New("cannot seek a closed cursor")
	}
	c.iterator.Seek(key.Bytes())
	c.isPositioned = true
	if !c.isValid() {
		return errors.Wrapf(database.ErrNotFound, "key %s not found", key)
	}
	return nil
}

// Key returns the key of the current key/value pair, or ErrNotFound if done.
func (c *BadgerCursor) Key() (*database.Key, error) {
	if c.isClosed {
		return nil, errors.New("cannot get the key of a closed cursor")
	}
	if !c.isValid() {
		return nil, errors.Wrapf(database.ErrNotFound, "cannot get the "+
			"key of an exhausted cursor")
	}
	fullKey := c.iterator.Item().KeyCopy(nil)
	return c.bucket.Key(bytes.TrimPrefix(fullKey, c.prefix)), nil
}

// Value returns the value of the current key/value pair, or ErrNotFound if done.
func (c *BadgerCursor) Value() ([]byte, error) {
	if c.isClosed {
		return nil, errors.New("cannot get the value of a closed cursor")
	}
	if !c.isValid() {
		return nil, errors.Wrapf(database.ErrNotFound, "cannot get the "+
			"value of an exhausted cursor")
	}
	value, err := c.iterator.Item().ValueCopy(nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return value, nil
}

// Close releases associated resources.
func (c *BadgerCursor) Close() error {
	if c.isClosed {
		return errors.New("cannot close an already closed cursor")
	}
	c.isClosed = true
	c.iterator.Close()
	if c.ownsTxn {
		c.txn.Discard()
	}
	return nil
}

func (c *BadgerCursor) isValid() bool {
	return c.isPositioned && c.iterator.ValidForPrefix(c.prefix)
}
