package model

import "github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"

// BlockHeaderStore represents a store of block headers
type BlockHeaderStore interface {
	BlockHeader(blockHash *externalapi.DomainHash) (*externalapi.DomainBlockHeader, error)
	HasBlockHeader(blockHash *externalapi.DomainHash) (bool, error)
}
