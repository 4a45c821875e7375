package utxoindex

import (
	"weak"
)

// consensusResetHandler resyncs the UTXO index when the consensus it
// indexes is replaced. It holds a weak pointer so that registering it
// does not keep the index alive.
type consensusResetHandler struct {
	utxoIndex weak.Pointer[UTXOIndex]
}

func newConsensusResetHandler(utxoIndex *UTXOIndex) *consensusResetHandler {
	return &consensusResetHandler{utxoIndex: weak.Make(utxoIndex)}
}

// HandleConsensusReset blocks until the UTXO index is rebuilt. It is a
// no-op if the index no longer exists.
func (h *consensusResetHandler) HandleConsensusReset() {
	utxoIndex := h.utxoIndex.Value()
	if utxoIndex == nil {
		log.Debugf("Consensus was reset after the UTXO index was released")
		return
	}

	log.Infof("Consensus was reset, resyncing the UTXO index")
	err := utxoIndex.Resync()
	if err != nil {
		log.Errorf("Failed to resync the UTXO index after a consensus reset: %+v", err)
	}
}
