package indexprocessor

import (
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/utxoindex"
)

// Notification is an index level event published by the Processor
type Notification interface {
	isNotification()
}

// UTXOsChangedNotification is published after the UTXO index applied a
// virtual UTXO diff.
type UTXOsChangedNotification struct {
	Added          map[utxoindex.ScriptPublicKeyString]utxoindex.UTXOOutpointEntryPairs
	Removed        map[utxoindex.ScriptPublicKeyString]utxoindex.UTXOOutpointEntryPairs
	VirtualParents []*externalapi.DomainHash
}

func (*UTXOsChangedNotification) isNotification() {}

// PruningPointUTXOSetOverrideNotification is published when the virtual
// UTXO set was replaced by the UTXO set of a new pruning point.
type PruningPointUTXOSetOverrideNotification struct{}

func (*PruningPointUTXOSetOverrideNotification) isNotification() {}

// Notifier delivers notifications downstream
type Notifier interface {
	Notify(notification Notification) error
}
