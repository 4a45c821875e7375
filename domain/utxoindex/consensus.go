package utxoindex

import "github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"

// Consensus is the part of the consensus the UTXO index reads its ground
// truth from.
type Consensus interface {
	// VirtualParents returns the current virtual parents.
	VirtualParents() ([]*externalapi.DomainHash, error)

	// GetVirtualUTXOs returns up to limit virtual UTXOs ordered by outpoint,
	// starting from fromOutpoint (or from the beginning if it is nil). When
	// skipFirst is set, fromOutpoint itself is not returned.
	GetVirtualUTXOs(fromOutpoint *externalapi.DomainOutpoint, limit int, skipFirst bool) (
		[]*externalapi.OutpointAndUTXOEntryPair, error)

	// RegisterConsensusResetHandler registers a handler to be notified
	// when the consensus state is replaced.
	RegisterConsensusResetHandler(handler externalapi.ConsensusResetHandler)
}
