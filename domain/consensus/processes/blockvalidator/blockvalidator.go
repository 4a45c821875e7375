package blockvalidator

import (
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/dagconfig"
)

// blockValidator exposes a set of validation classes, after which
// it's possible to determine whether either a block is valid
type blockValidator struct {
	ghostdagK dagconfig.ForkedParam[externalapi.KType]

	pastMedianTimeManager model.PastMedianTimeManager
	transactionValidator  model.TransactionValidator
	coinbaseManager       model.CoinbaseManager

	ghostdagDataStore model.GHOSTDAGDataStore
	blockHeaderStore  model.BlockHeaderStore
	blockStatusStore  model.BlockStatusStore
}

// New instantiates a new BlockValidator
func New(ghostdagK dagconfig.ForkedParam[externalapi.KType],

	pastMedianTimeManager model.PastMedianTimeManager,
	transactionValidator model.TransactionValidator,
	coinbaseManager model.CoinbaseManager,

	ghostdagDataStore model.GHOSTDAGDataStore,
	blockHeaderStore model.BlockHeaderStore,
	blockStatusStore model.BlockStatusStore,
) model.BlockValidator {

	return &blockValidator{
		ghostdagK: ghostdagK,

		pastMedianTimeManager: pastMedianTimeManager,
		transactionValidator:  transactionValidator,
		coinbaseManager:       coinbaseManager,

		ghostdagDataStore: ghostdagDataStore,
		blockHeaderStore:  blockHeaderStore,
		blockStatusStore:  blockStatusStore,
	}
}
