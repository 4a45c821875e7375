package utxoindex

import (
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/multiset"
	"github.com/Vecno-Foundation/vecnod/infrastructure/db/database"
	"github.com/pkg/errors"
)

const deleteChunkSize = 1000

var (
	utxoIndexBucket      = database.MakeBucket([]byte("utxo-index"))
	utxosBucket          = utxoIndexBucket.Bucket([]byte("utxos"))
	circulatingSupplyKey = utxoIndexBucket.Key([]byte("circulating-supply"))
	virtualParentsKey    = utxoIndexBucket.Key([]byte("virtual-parents"))
)

// utxoIndexStore stages changes in memory until they are committed to the
// database in a single transaction.
type utxoIndexStore struct {
	database database.Database
	toAdd    map[ScriptPublicKeyString]UTXOOutpointEntryPairs
	toRemove map[ScriptPublicKeyString]UTXOOutpointEntryPairs

	addedAmount   uint64
	removedAmount uint64
}

func newUTXOIndexStore(database database.Database) *utxoIndexStore {
	return &utxoIndexStore{
		database: database,
		toAdd:    make(map[ScriptPublicKeyString]UTXOOutpointEntryPairs),
		toRemove: make(map[ScriptPublicKeyString]UTXOOutpointEntryPairs),
	}
}

func (uis *utxoIndexStore) add(outpoint *externalapi.DomainOutpoint, utxoEntry externalapi.UTXOEntry) {
	key := ConvertScriptPublicKeyToString(utxoEntry.ScriptPublicKey())
	log.Tracef("Adding outpoint %s:%d to scriptPublicKey %s",
		outpoint.TransactionID, outpoint.Index, utxoEntry.ScriptPublicKey())

	// Removing and re-adding the same entry cancels out. A different entry
	// replaces the removed one: the removal stays staged and is written
	// before the addition.
	if toRemoveOfKey, ok := uis.toRemove[key]; ok {
		if removedEntry, ok := toRemoveOfKey[*outpoint]; ok && removedEntry.Equal(utxoEntry) {
			delete(toRemoveOfKey, *outpoint)
			uis.removedAmount -= removedEntry.Amount()
			if len(toRemoveOfKey) == 0 {
				delete(uis.toRemove, key)
			}
			return
		}
	}

	toAddOfKey, ok := uis.toAdd[key]
	if !ok {
		toAddOfKey = make(UTXOOutpointEntryPairs)
		uis.toAdd[key] = toAddOfKey
	}
	if _, ok := toAddOfKey[*outpoint]; ok {
		return
	}
	toAddOfKey[*outpoint] = utxoEntry
	uis.addedAmount += utxoEntry.Amount()
}

func (uis *utxoIndexStore) remove(outpoint *externalapi.DomainOutpoint, utxoEntry externalapi.UTXOEntry) {
	key := ConvertScriptPublicKeyToString(utxoEntry.ScriptPublicKey())
	log.Tracef("Removing outpoint %s:%d from scriptPublicKey %s",
		outpoint.TransactionID, outpoint.Index, utxoEntry.ScriptPublicKey())

	if toAddOfKey, ok := uis.toAdd[key]; ok {
		if addedEntry, ok := toAddOfKey[*outpoint]; ok {
			delete(toAddOfKey, *outpoint)
			uis.addedAmount -= addedEntry.Amount()
			if len(toAddOfKey) == 0 {
				delete(uis.toAdd, key)
			}
			return
		}
	}

	toRemoveOfKey, ok := uis.toRemove[key]
	if !ok {
		toRemoveOfKey = make(UTXOOutpointEntryPairs)
		uis.toRemove[key] = toRemoveOfKey
	}
	if _, ok := toRemoveOfKey[*outpoint]; ok {
		return
	}
	toRemoveOfKey[*outpoint] = utxoEntry
	uis.removedAmount += utxoEntry.Amount()
}

func (uis *utxoIndexStore) stagedChanges() *UTXOChanges {
	changes := newUTXOChanges()
	for key, pairs := range uis.toAdd {
		clonedPairs := make(UTXOOutpointEntryPairs, len(pairs))
		for outpoint, entry := range pairs {
			clonedPairs[outpoint] = entry
		}
		changes.Added[key] = clonedPairs
	}
	for key, pairs := range uis.toRemove {
		clonedPairs := make(UTXOOutpointEntryPairs, len(pairs))
		for outpoint, entry := range pairs {
			clonedPairs[outpoint] = entry
		}
		changes.Removed[key] = clonedPairs
	}
	return changes
}

func (uis *utxoIndexStore) stagedEntryCount() int {
	count := 0
	for _, pairs := range uis.toAdd {
		count += len(pairs)
	}
	for _, pairs := range uis.toRemove {
		count += len(pairs)
	}
	return count
}

func (uis *utxoIndexStore) discard() {
	uis.toAdd = make(map[ScriptPublicKeyString]UTXOOutpointEntryPairs)
	uis.toRemove = make(map[ScriptPublicKeyString]UTXOOutpointEntryPairs)
	uis.addedAmount = 0
	uis.removedAmount = 0
}

func (uis *utxoIndexStore) writeStagedUTXOs(dbTransaction database.Transaction) error {
	for key, toRemoveOfKey := range uis.toRemove {
		bucket := scriptPublicKeyBucket(key)
		for outpoint := range toRemoveOfKey {
			err := dbTransaction.Delete(bucket.Key(serializeOutpoint(&outpoint)))
			if err != nil {
				return err
			}
		}
	}

	for key, toAddOfKey := range uis.toAdd {
		bucket := scriptPublicKeyBucket(key)
		for outpoint, utxoEntry := range toAddOfKey {
			err := dbTransaction.Put(bucket.Key(serializeOutpoint(&outpoint)), serializeUTXOEntry(utxoEntry))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// commitDiff writes the staged UTXOs, the adjusted circulating supply and
// the given virtual parents atomically, and returns the new circulating
// supply.
func (uis *utxoIndexStore) commitDiff(virtualParents []*externalapi.DomainHash) (uint64, error) {
	defer uis.discard()

	dbTransaction, err := uis.database.Begin()
	if err != nil {
		return 0, err
	}
	defer dbTransaction.RollbackUnlessClosed()

	err = uis.writeStagedUTXOs(dbTransaction)
	if err != nil {
		return 0, err
	}

	circulatingSupply, err := getCirculatingSupply(dbTransaction)
	if err != nil {
		return 0, err
	}
	if circulatingSupply+uis.addedAmount < uis.removedAmount {
		return 0, errors.Errorf("removing %d sompi from a circulating supply of %d underflows",
			uis.removedAmount-uis.addedAmount, circulatingSupply)
	}
	circulatingSupply = circulatingSupply + uis.addedAmount - uis.removedAmount

	err = dbTransaction.Put(circulatingSupplyKey, serializeCirculatingSupply(circulatingSupply))
	if err != nil {
		return 0, err
	}
	err = dbTransaction.Put(virtualParentsKey, serializeHashes(virtualParents))
	if err != nil {
		return 0, err
	}

	err = dbTransaction.Commit()
	if err != nil {
		return 0, err
	}
	return circulatingSupply, nil
}

// commitUTXOs writes the staged UTXOs without touching the circulating
// supply or the virtual parents.
func (uis *utxoIndexStore) commitUTXOs() error {
	defer uis.discard()

	dbTransaction, err := uis.database.Begin()
	if err != nil {
		return err
	}
	defer dbTransaction.RollbackUnlessClosed()

	err = uis.writeStagedUTXOs(dbTransaction)
	if err != nil {
		return err
	}
	return dbTransaction.Commit()
}

func (uis *utxoIndexStore) setCirculatingSupplyAndVirtualParents(
	circulatingSupply uint64, virtualParents []*externalapi.DomainHash) error {

	dbTransaction, err := uis.database.Begin()
	if err != nil {
		return err
	}
	defer dbTransaction.RollbackUnlessClosed()

	err = dbTransaction.Put(circulatingSupplyKey, serializeCirculatingSupply(circulatingSupply))
	if err != nil {
		return err
	}
	err = dbTransaction.Put(virtualParentsKey, serializeHashes(virtualParents))
	if err != nil {
		return err
	}
	return dbTransaction.Commit()
}

func (uis *utxoIndexStore) getVirtualParents() ([]*externalapi.DomainHash, error) {
	serializedVirtualParents, err := uis.database.Get(virtualParentsKey)
	if err != nil {
		return nil, err
	}
	return deserializeHashes(serializedVirtualParents)
}

func (uis *utxoIndexStore) getCirculatingSupply() (uint64, error) {
	return getCirculatingSupply(uis.database)
}

// getCirculatingSupply treats a missing supply as zero.
func getCirculatingSupply(dataAccessor database.DataAccessor) (uint64, error) {
	serializedCirculatingSupply, err := dataAccessor.Get(circulatingSupplyKey)
	if err != nil {
		if database.IsNotFoundError(err) {
			return 0, nil
		}
		return 0, err
	}
	return deserializeCirculatingSupply(serializedCirculatingSupply)
}

func (uis *utxoIndexStore) getUTXOOutpointEntryPairs(scriptPublicKey *externalapi.ScriptPublicKey) (
	UTXOOutpointEntryPairs, error) {

	bucket := scriptPublicKeyBucket(ConvertScriptPublicKeyToString(scriptPublicKey))
	cursor, err := uis.database.Cursor(bucket)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	utxoOutpointEntryPairs := make(UTXOOutpointEntryPairs)
	for cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return nil, err
		}
		outpoint, err := deserializeOutpoint(key.Suffix())
		if err != nil {
			return nil, err
		}
		serializedUTXOEntry, err := cursor.Value()
		if err != nil {
			return nil, err
		}
		utxoEntry, err := deserializeUTXOEntry(serializedUTXOEntry)
		if err != nil {
			return nil, err
		}
		utxoOutpointEntryPairs[*outpoint] = utxoEntry
	}
	return utxoOutpointEntryPairs, nil
}

func (uis *utxoIndexStore) getBalance(scriptPublicKey *externalapi.ScriptPublicKey) (Balance, error) {
	utxoOutpointEntryPairs, err := uis.getUTXOOutpointEntryPairs(scriptPublicKey)
	if err != nil {
		return Balance{}, err
	}

	balance := Balance{UTXOCount: uint64(len(utxoOutpointEntryPairs))}
	for _, utxoEntry := range utxoOutpointEntryPairs {
		balance.Amount += utxoEntry.Amount()
	}
	return balance, nil
}

// forEachUTXO calls f for every indexed UTXO, in key order.
func (uis *utxoIndexStore) forEachUTXO(
	f func(scriptPublicKey ScriptPublicKeyString, serializedOutpoint []byte, serializedUTXOEntry []byte) error) error {

	cursor, err := uis.database.Cursor(utxosBucket)
	if err != nil {
		return err
	}
	defer cursor.Close()

	for cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return err
		}
		scriptPublicKey, serializedOutpoint, err := splitUTXOKeySuffix(key.Suffix())
		if err != nil {
			return err
		}
		serializedUTXOEntry, err := cursor.Value()
		if err != nil {
			return err
		}
		err = f(scriptPublicKey, serializedOutpoint, serializedUTXOEntry)
		if err != nil {
			return err
		}
	}
	return nil
}

func (uis *utxoIndexStore) getAllOutpoints() (map[externalapi.DomainOutpoint]struct{}, error) {
	outpoints := make(map[externalapi.DomainOutpoint]struct{})
	err := uis.forEachUTXO(func(_ ScriptPublicKeyString, serializedOutpoint []byte, _ []byte) error {
		outpoint, err := deserializeOutpoint(serializedOutpoint)
		if err != nil {
			return err
		}
		outpoints[*outpoint] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outpoints, nil
}

// utxoSetCommitment hashes the indexed UTXO set into a multiset. The result
// does not depend on the order in which UTXOs were indexed.
func (uis *utxoIndexStore) utxoSetCommitment() (*externalapi.DomainHash, error) {
	utxoSetMultiset := multiset.New()
	err := uis.forEachUTXO(func(_ ScriptPublicKeyString, serializedOutpoint []byte, serializedUTXOEntry []byte) error {
		element := make([]byte, 0, len(serializedOutpoint)+len(serializedUTXOEntry))
		element = append(element, serializedOutpoint...)
		element = append(element, serializedUTXOEntry...)
		utxoSetMultiset.Add(element)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return utxoSetMultiset.Hash(), nil
}

// deleteAll removes everything the UTXO index ever wrote.
func (uis *utxoIndexStore) deleteAll() error {
	uis.discard()

	for {
		keys, err := uis.collectKeys(utxoIndexBucket, deleteChunkSize)
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			return nil
		}

		dbTransaction, err := uis.database.Begin()
		if err != nil {
			return err
		}
		for _, key := range keys {
			err = dbTransaction.Delete(key)
			if err != nil {
				_ = dbTransaction.Rollback()
				return err
			}
		}
		err = dbTransaction.Commit()
		if err != nil {
			return err
		}
		if len(keys) < deleteChunkSize {
			return nil
		}
	}
}

func (uis *utxoIndexStore) collectKeys(bucket *database.Bucket, limit int) ([]*database.Key, error) {
	cursor, err := uis.database.Cursor(bucket)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	keys := make([]*database.Key, 0, limit)
	for len(keys) < limit && cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return nil, err
		}
		suffix := make([]byte, len(key.Suffix()))
		copy(suffix, key.Suffix())
		keys = append(keys, bucket.Key(suffix))
	}
	return keys, nil
}

func scriptPublicKeyBucket(scriptPublicKeyString ScriptPublicKeyString) *database.Bucket {
	return utxosBucket.Bucket(scriptPublicKeyBucketName(scriptPublicKeyString))
}
