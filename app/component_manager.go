package app

import (
	"sync/atomic"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/processes/blockvalidator"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/processes/coinbasemanager"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/processes/transactionvalidator"
	"github.com/Vecno-Foundation/vecnod/domain/indexprocessor"
	"github.com/Vecno-Foundation/vecnod/domain/utxoindex"
	"github.com/Vecno-Foundation/vecnod/infrastructure/config"
	"github.com/Vecno-Foundation/vecnod/infrastructure/db/database"
)

// Consensus is the consensus engine the components are wired to
type Consensus interface {
	utxoindex.Consensus

	// ConsensusEventsChannel returns the channel consensus events are
	// published on. The component manager closes it on Stop.
	ConsensusEventsChannel() chan externalapi.ConsensusEvent
}

// ComponentManager is a wrapper for all the vecnod services
type ComponentManager struct {
	cfg       *config.Config
	consensus Consensus

	coinbaseManager      model.CoinbaseManager
	transactionValidator model.TransactionValidator
	utxoIndex            *utxoindex.UTXOIndex
	indexProcessor       *indexprocessor.Processor
	notifier             indexprocessor.Notifier

	started, shutdown atomic.Bool
}

// NewComponentManager returns a new ComponentManager instance.
// Use Start() to begin all services within this ComponentManager.
//
// A nil notifier logs index notifications instead of delivering them.
func NewComponentManager(cfg *config.Config, db database.Database, consensus Consensus,
	notifier indexprocessor.Notifier) (*ComponentManager, error) {

	params := cfg.NetParams()
	coinbaseManager := coinbasemanager.New(
		params.MaxCoinbasePayloadLength,
		params.CoinbasePayloadScriptPublicKeyMaxLength,
		params.PreDeflationaryPhaseBaseSubsidy,
		params.DeflationaryPhaseDAAScore,
		params.DeflationaryPhaseBaseSubsidy,
		params.SubsidyHalvingInterval,
	)

	var utxoIndex *utxoindex.UTXOIndex
	var processorUTXOIndex indexprocessor.UTXOIndex
	if cfg.UTXOIndex {
		var err error
		utxoIndex, err = utxoindex.NewWithResyncChunkSize(consensus, db, cfg.UTXOIndexResyncChunkSize)
		if err != nil {
			return nil, err
		}
		processorUTXOIndex = utxoIndex

		log.Infof("UTXO index started")
	}

	if notifier == nil {
		notifier = logNotifier{}
	}

	return &ComponentManager{
		cfg:       cfg,
		consensus: consensus,

		coinbaseManager:      coinbaseManager,
		transactionValidator: transactionvalidator.New(),
		utxoIndex:            utxoIndex,
		indexProcessor:       indexprocessor.New(processorUTXOIndex, consensus.ConsensusEventsChannel()),
		notifier:             notifier,
	}, nil
}

// Start launches all the vecnod services.
func (a *ComponentManager) Start() {
	if !a.started.CompareAndSwap(false, true) {
		return
	}

	log.Tracef("Starting vecnod on %s", a.cfg.NetParams().Name)
	a.indexProcessor.Start(a.notifier)
}

// Stop gracefully shuts down all the vecnod services. It closes the
// consensus events channel and waits for the events already published on
// it to be processed.
func (a *ComponentManager) Stop() {
	if !a.shutdown.CompareAndSwap(false, true) {
		log.Infof("Vecnod is already in the process of shutting down")
		return
	}

	log.Warnf("Vecnod shutting down")

	close(a.consensus.ConsensusEventsChannel())
	if a.started.Load() {
		a.indexProcessor.Join()
	}
}

// UTXOIndex returns the UTXO index, or nil if it is disabled
func (a *ComponentManager) UTXOIndex() *utxoindex.UTXOIndex {
	return a.utxoIndex
}

// NewBlockValidator returns a block validator for the active network,
// reading ancestor state from the given stores.
func (a *ComponentManager) NewBlockValidator(pastMedianTimeManager model.PastMedianTimeManager,
	ghostdagDataStore model.GHOSTDAGDataStore, blockHeaderStore model.BlockHeaderStore,
	blockStatusStore model.BlockStatusStore) model.BlockValidator {

	return blockvalidator.New(a.cfg.NetParams().GHOSTDAGK,
		pastMedianTimeManager,
		a.transactionValidator,
		a.coinbaseManager,
		ghostdagDataStore,
		blockHeaderStore,
		blockStatusStore)
}

type logNotifier struct{}

func (logNotifier) Notify(notification indexprocessor.Notification) error {
	log.Debugf("Index notification: %T", notification)
	return nil
}
