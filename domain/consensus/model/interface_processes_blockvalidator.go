package model

import "github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"

// BlockValidator exposes a set of validation classes, after which
// it's possible to determine whether a block is valid
type BlockValidator interface {
	ValidateBodyInContext(block *externalapi.DomainBlock) error
}
