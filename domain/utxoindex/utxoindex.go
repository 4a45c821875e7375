package utxoindex

import (
	"sync"
	"time"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/infrastructure/db/database"
	"github.com/Vecno-Foundation/vecnod/infrastructure/logger"
	"github.com/Vecno-Foundation/vecnod/infrastructure/metrics"
	"github.com/pkg/errors"
)

// DefaultResyncChunkSize is the number of virtual UTXOs read from the
// consensus per page during a resync.
const DefaultResyncChunkSize = 2048

// UTXOIndex maintains an index between transaction scriptPublicKeys
// and UTXOs
type UTXOIndex struct {
	consensus       Consensus
	store           *utxoIndexStore
	resyncChunkSize int
	metrics         metrics.UTXOIndex

	// monotonicCirculatingSupply never decreases, even when the indexed
	// UTXO set is rolled back by a reorg.
	monotonicCirculatingSupply uint64

	mutex sync.RWMutex
}

// New creates a new UTXO index.
//
// NOTE: While this is called no new blocks can be added to the consensus.
func New(consensus Consensus, database database.Database) (*UTXOIndex, error) {
	return NewWithResyncChunkSize(consensus, database, DefaultResyncChunkSize)
}

// NewWithResyncChunkSize creates a new UTXO index that reads virtual UTXOs
// from the consensus in pages of resyncChunkSize during a resync.
func NewWithResyncChunkSize(consensus Consensus, database database.Database, resyncChunkSize int) (*UTXOIndex, error) {
	if resyncChunkSize <= 0 {
		return nil, errors.Errorf("resync chunk size must be positive, got %d", resyncChunkSize)
	}

	utxoIndex := &UTXOIndex{
		consensus:       consensus,
		store:           newUTXOIndexStore(database),
		resyncChunkSize: resyncChunkSize,
		metrics:         metrics.NewUTXOIndex(),
	}

	isSynced, err := utxoIndex.isSynced()
	if err != nil {
		return nil, err
	}
	if !isSynced {
		err := utxoIndex.resync()
		if err != nil {
			return nil, err
		}
	} else {
		circulatingSupply, err := utxoIndex.store.getCirculatingSupply()
		if err != nil {
			return nil, err
		}
		utxoIndex.monotonicCirculatingSupply = circulatingSupply
		utxoIndex.metrics.SetCirculatingSupply(circulatingSupply)
	}

	consensus.RegisterConsensusResetHandler(newConsensusResetHandler(utxoIndex))
	return utxoIndex, nil
}

// Update updates the UTXO index with the given diff and virtual parents.
// The UTXOs, the circulating supply and the virtual parents are written
// in a single database transaction.
func (ui *UTXOIndex) Update(utxoDiff *externalapi.UTXODiff, virtualParents []*externalapi.DomainHash) (
	changes *UTXOChanges, err error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "UTXOIndex.Update")
	defer onEnd()

	ui.mutex.Lock()
	defer ui.mutex.Unlock()

	started := time.Now()
	stagedEntries := 0
	defer func() { ui.metrics.ObserveUpdate(err, stagedEntries, started) }()

	if utxoDiff != nil {
		for outpoint, utxoEntry := range utxoDiff.ToRemove {
			ui.store.remove(&outpoint, utxoEntry)
		}
		for outpoint, utxoEntry := range utxoDiff.ToAdd {
			ui.store.add(&outpoint, utxoEntry)
		}
	}

	changes = ui.store.stagedChanges()
	stagedEntries = ui.store.stagedEntryCount()

	circulatingSupply, err := ui.store.commitDiff(virtualParents)
	if err != nil {
		return nil, err
	}
	if circulatingSupply > ui.monotonicCirculatingSupply {
		ui.monotonicCirculatingSupply = circulatingSupply
		ui.metrics.SetCirculatingSupply(circulatingSupply)
	}

	log.Tracef("UTXO index updated with %d entries, circulating supply is %d",
		stagedEntries, ui.monotonicCirculatingSupply)
	return changes, nil
}

// IsSynced returns whether the virtual parents stored by the UTXO index
// match the current virtual parents of the consensus.
func (ui *UTXOIndex) IsSynced() (bool, error) {
	ui.mutex.RLock()
	defer ui.mutex.RUnlock()

	return ui.isSynced()
}

func (ui *UTXOIndex) isSynced() (bool, error) {
	utxoIndexVirtualParents, err := ui.store.getVirtualParents()
	if err != nil {
		if database.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}

	virtualParents, err := ui.consensus.VirtualParents()
	if err != nil {
		return false, err
	}
	return externalapi.HashSetsEqual(utxoIndexVirtualParents, virtualParents), nil
}

// Resync rebuilds the UTXO index from the virtual UTXO set of the consensus.
//
// NOTE: While this is called no new blocks can be added to the consensus.
func (ui *UTXOIndex) Resync() error {
	ui.mutex.Lock()
	defer ui.mutex.Unlock()

	return ui.resync()
}

func (ui *UTXOIndex) resync() (err error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "UTXOIndex.resync")
	defer onEnd()

	started := time.Now()
	defer func() { ui.metrics.ObserveResync(err, started) }()

	log.Infof("Resyncing the UTXO index")

	err = ui.store.deleteAll()
	if err != nil {
		return err
	}

	virtualParents, err := ui.consensus.VirtualParents()
	if err != nil {
		return err
	}

	var circulatingSupply uint64
	var fromOutpoint *externalapi.DomainOutpoint
	skipFirst := false
	indexedUTXOs := 0
	for {
		virtualUTXOs, err := ui.consensus.GetVirtualUTXOs(fromOutpoint, ui.resyncChunkSize, skipFirst)
		if err != nil {
			return err
		}
		if len(virtualUTXOs) == 0 {
			break
		}

		for _, virtualUTXO := range virtualUTXOs {
			ui.store.add(virtualUTXO.Outpoint, virtualUTXO.UTXOEntry)
			circulatingSupply += virtualUTXO.UTXOEntry.Amount()
		}
		err = ui.store.commitUTXOs()
		if err != nil {
			return err
		}
		indexedUTXOs += len(virtualUTXOs)
		log.Debugf("Resyncing the UTXO index: %d UTXOs indexed", indexedUTXOs)

		if len(virtualUTXOs) < ui.resyncChunkSize {
			break
		}
		fromOutpoint = virtualUTXOs[len(virtualUTXOs)-1].Outpoint
		skipFirst = true
	}

	err = ui.store.setCirculatingSupplyAndVirtualParents(circulatingSupply, virtualParents)
	if err != nil {
		return err
	}
	ui.monotonicCirculatingSupply = circulatingSupply
	ui.metrics.SetCirculatingSupply(circulatingSupply)

	log.Infof("Finished resyncing the UTXO index: %d UTXOs with a circulating supply of %d",
		indexedUTXOs, circulatingSupply)
	return nil
}

// CirculatingSupply returns the highest circulating supply the UTXO index
// has observed since the last resync.
func (ui *UTXOIndex) CirculatingSupply() uint64 {
	ui.mutex.RLock()
	defer ui.mutex.RUnlock()

	return ui.monotonicCirculatingSupply
}

// UTXOs returns all the UTXOs paying to the given scriptPublicKey
func (ui *UTXOIndex) UTXOs(scriptPublicKey *externalapi.ScriptPublicKey) (UTXOOutpointEntryPairs, error) {
	ui.mutex.RLock()
	defer ui.mutex.RUnlock()

	return ui.store.getUTXOOutpointEntryPairs(scriptPublicKey)
}

// UTXOsByScriptPublicKeys returns the UTXOs paying to each of the given
// scriptPublicKeys. Keys without UTXOs are omitted.
func (ui *UTXOIndex) UTXOsByScriptPublicKeys(scriptPublicKeys []*externalapi.ScriptPublicKey) (
	map[ScriptPublicKeyString]UTXOOutpointEntryPairs, error) {

	ui.mutex.RLock()
	defer ui.mutex.RUnlock()

	utxosByScriptPublicKey := make(map[ScriptPublicKeyString]UTXOOutpointEntryPairs)
	for _, scriptPublicKey := range scriptPublicKeys {
		utxoOutpointEntryPairs, err := ui.store.getUTXOOutpointEntryPairs(scriptPublicKey)
		if err != nil {
			return nil, err
		}
		if len(utxoOutpointEntryPairs) == 0 {
			continue
		}
		utxosByScriptPublicKey[ConvertScriptPublicKeyToString(scriptPublicKey)] = utxoOutpointEntryPairs
	}
	return utxosByScriptPublicKey, nil
}

// Balances returns the balance of each of the given scriptPublicKeys.
// Every given key is present in the result.
func (ui *UTXOIndex) Balances(scriptPublicKeys []*externalapi.ScriptPublicKey) (map[ScriptPublicKeyString]Balance, error) {
	ui.mutex.RLock()
	defer ui.mutex.RUnlock()

	balances := make(map[ScriptPublicKeyString]Balance, len(scriptPublicKeys))
	for _, scriptPublicKey := range scriptPublicKeys {
		balance, err := ui.store.getBalance(scriptPublicKey)
		if err != nil {
			return nil, err
		}
		balances[ConvertScriptPublicKeyToString(scriptPublicKey)] = balance
	}
	return balances, nil
}

// VirtualParents returns the virtual parents the UTXO index was last
// updated with.
func (ui *UTXOIndex) VirtualParents() ([]*externalapi.DomainHash, error) {
	ui.mutex.RLock()
	defer ui.mutex.RUnlock()

	return ui.store.getVirtualParents()
}

// AllOutpoints returns every indexed outpoint.
func (ui *UTXOIndex) AllOutpoints() (map[externalapi.DomainOutpoint]struct{}, error) {
	ui.mutex.RLock()
	defer ui.mutex.RUnlock()

	return ui.store.getAllOutpoints()
}

// UTXOSetCommitment returns a multiset hash of the indexed UTXO set.
func (ui *UTXOIndex) UTXOSetCommitment() (*externalapi.DomainHash, error) {
	ui.mutex.RLock()
	defer ui.mutex.RUnlock()

	return ui.store.utxoSetCommitment()
}
