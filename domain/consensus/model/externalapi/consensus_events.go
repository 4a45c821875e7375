package externalapi

// ConsensusEvent is an event emitted by consensus after a state change
type ConsensusEvent interface {
	isConsensusEvent()
}

// UTXOsChangedEvent is emitted once per virtual state transition. It
// carries the virtual UTXO diff and the virtual parents the diff leads to.
type UTXOsChangedEvent struct {
	UTXODiff       *UTXODiff
	VirtualParents []*DomainHash
}

func (*UTXOsChangedEvent) isConsensusEvent() {}

// PruningPointUTXOSetOverrideEvent is emitted when the virtual UTXO set
// is replaced wholesale by the UTXO set of a new pruning point.
type PruningPointUTXOSetOverrideEvent struct{}

func (*PruningPointUTXOSetOverrideEvent) isConsensusEvent() {}

// BlockAddedEvent is emitted when a block is added to the DAG
type BlockAddedEvent struct {
	Block *DomainBlock
}

func (*BlockAddedEvent) isConsensusEvent() {}

// ConsensusResetHandler is notified when the consensus state it
// registered with is replaced from under it.
type ConsensusResetHandler interface {
	HandleConsensusReset()
}
