package indexprocessor

import (
	"sync/atomic"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/utxoindex"
	"github.com/Vecno-Foundation/vecnod/infrastructure/metrics"
	"github.com/Vecno-Foundation/vecnod/util/triggers"
	"github.com/pkg/errors"
)

// ErrNotSupported is returned for consensus events the processor does
// not handle.
var ErrNotSupported = errors.New("not supported")

const (
	eventKindUTXOsChanged                = "utxos_changed"
	eventKindPruningPointUTXOSetOverride = "pruning_point_utxo_set_override"
	eventKindUnsupported                 = "unsupported"
)

// UTXOIndex is the part of the UTXO index the processor drives
type UTXOIndex interface {
	Update(utxoDiff *externalapi.UTXODiff, virtualParents []*externalapi.DomainHash) (*utxoindex.UTXOChanges, error)
}

// Processor applies consensus events to the indexes and republishes them
// as index notifications.
type Processor struct {
	utxoIndex           UTXOIndex
	notificationChannel <-chan externalapi.ConsensusEvent

	isRunning      atomic.Bool
	collectingDone *triggers.SingleTrigger
	metrics        metrics.IndexProcessor
}

// New creates a Processor reading events from notificationChannel. A nil
// utxoIndex means the UTXO index is disabled.
func New(utxoIndex UTXOIndex, notificationChannel <-chan externalapi.ConsensusEvent) *Processor {
	return &Processor{
		utxoIndex:           utxoIndex,
		notificationChannel: notificationChannel,
		collectingDone:      triggers.NewSingleTrigger(),
		metrics:             metrics.NewIndexProcessor(),
	}
}

// Start starts collecting events and passing the resulting notifications
// to notifier. Only the first call has an effect.
func (p *Processor) Start(notifier Notifier) {
	if !p.isRunning.CompareAndSwap(false, true) {
		log.Debugf("Index processor is already running")
		return
	}

	log.Infof("Starting the index processor")
	spawn("Processor.collectEvents", func() {
		p.collectEvents(notifier)
	})
}

// Join blocks until the event channel is closed and every event received
// before that was processed.
func (p *Processor) Join() {
	p.collectingDone.Wait()
}

func (p *Processor) collectEvents(notifier Notifier) {
	defer p.collectingDone.Trigger()

	for event := range p.notificationChannel {
		notification, err := p.processEvent(event)
		if err != nil {
			log.Errorf("Failed processing consensus event %T: %+v", event, err)
			continue
		}

		err = notifier.Notify(notification)
		if err != nil {
			p.metrics.ObserveNotifyError()
			log.Errorf("Failed sending notification %T: %+v", notification, err)
		}
	}

	log.Infof("Consensus event channel closed, index processor stopped")
}

func (p *Processor) processEvent(event externalapi.ConsensusEvent) (notification Notification, err error) {
	switch event := event.(type) {
	case *externalapi.UTXOsChangedEvent:
		defer func() { p.metrics.ObserveEvent(eventKindUTXOsChanged, err) }()
		return p.processUTXOsChangedEvent(event)
	case *externalapi.PruningPointUTXOSetOverrideEvent:
		p.metrics.ObserveEvent(eventKindPruningPointUTXOSetOverride, nil)
		return &PruningPointUTXOSetOverrideNotification{}, nil
	default:
		err := errors.Wrapf(ErrNotSupported, "consensus event %T", event)
		p.metrics.ObserveEvent(eventKindUnsupported, err)
		return nil, err
	}
}

func (p *Processor) processUTXOsChangedEvent(event *externalapi.UTXOsChangedEvent) (Notification, error) {
	if p.utxoIndex == nil {
		return nil, errors.Wrap(ErrNotSupported, "the UTXO index is disabled")
	}

	changes, err := p.utxoIndex.Update(event.UTXODiff, event.VirtualParents)
	if err != nil {
		return nil, err
	}

	return &UTXOsChangedNotification{
		Added:          changes.Added,
		Removed:        changes.Removed,
		VirtualParents: event.VirtualParents,
	}, nil
}
