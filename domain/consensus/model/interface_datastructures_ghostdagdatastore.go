package model

import "github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"

// GHOSTDAGDataStore represents a store of BlockGHOSTDAGData
type GHOSTDAGDataStore interface {
	Get(blockHash *externalapi.DomainHash) (*externalapi.BlockGHOSTDAGData, error)
}
