package model

import "github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"

// BlockStatusStore represents a store of BlockStatuses
type BlockStatusStore interface {
	// Get returns database.ErrNotFound (wrapped) for unknown blocks
	Get(blockHash *externalapi.DomainHash) (externalapi.BlockStatus, error)
	Exists(blockHash *externalapi.DomainHash) (bool, error)
}
