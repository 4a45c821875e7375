package blockvalidator

import (
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/ruleerrors"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/consensushashing"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/transactionhelper"
	"github.com/Vecno-Foundation/vecnod/infrastructure/db/database"
	"github.com/Vecno-Foundation/vecnod/infrastructure/logger"
	"github.com/pkg/errors"
)

// ValidateBodyInContext validates block bodies in the context of the current
// consensus state. The checks run in a fixed order and the first failure
// is returned.
func (v *blockValidator) ValidateBodyInContext(block *externalapi.DomainBlock) error {
	blockHash := consensushashing.BlockHash(block)
	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateBodyInContext")
	defer onEnd()

	err := v.checkParentBodiesExist(block)
	if err != nil {
		return err
	}
	err = v.checkCoinbaseOutputsLimit(blockHash, block)
	if err != nil {
		return err
	}
	err = v.checkCoinbaseBlueScoreAndSubsidy(block)
	if err != nil {
		return err
	}
	return v.checkBlockTransactionsInContext(blockHash, block)
}

func (v *blockValidator) checkParentBodiesExist(block *externalapi.DomainBlock) error {
	var missingParentHashes []*externalapi.DomainHash
	for _, parent := range block.Header.DirectParents() {
		status, err := v.blockStatusStore.Get(parent)
		if err != nil {
			if !database.IsNotFoundError(err) {
				return err
			}
			missingParentHashes = append(missingParentHashes, parent)
			continue
		}
		if !status.HasBlockBody() {
			missingParentHashes = append(missingParentHashes, parent)
		}
	}

	if len(missingParentHashes) > 0 {
		return ruleerrors.NewErrMissingParents(missingParentHashes)
	}
	return nil
}

// checkCoinbaseOutputsLimit bounds the coinbase outputs by the number of
// blues a mergeset can have. GHOSTDAG K is selected by the DAA score of the
// selected parent, which makes this check contextual.
func (v *blockValidator) checkCoinbaseOutputsLimit(blockHash *externalapi.DomainHash, block *externalapi.DomainBlock) error {
	if len(block.Transactions) == 0 {
		return errors.Wrapf(ruleerrors.ErrNoTransactions, "block %s has no coinbase transaction", blockHash)
	}

	selectedParentDAAScore, err := v.selectedParentDAAScore(blockHash)
	if err != nil {
		return err
	}
	coinbaseOutputsLimit := uint64(v.ghostdagK.Get(selectedParentDAAScore)) + 2

	coinbaseTx := block.Transactions[transactionhelper.CoinbaseTransactionIndex]
	outputCount := uint64(len(coinbaseTx.Outputs))
	if outputCount > coinbaseOutputsLimit {
		return ruleerrors.NewErrCoinbaseTooManyOutputs(consensushashing.TransactionID(coinbaseTx),
			outputCount, coinbaseOutputsLimit)
	}
	return nil
}

func (v *blockValidator) selectedParentDAAScore(blockHash *externalapi.DomainHash) (uint64, error) {
	ghostdagData, err := v.ghostdagDataStore.Get(blockHash)
	if err != nil {
		if database.IsNotFoundError(err) {
			return 0, errors.Wrapf(ruleerrors.ErrMissingSelectedParent,
				"block %s has no GHOSTDAG data", blockHash)
		}
		return 0, err
	}

	selectedParent := ghostdagData.SelectedParent()
	if selectedParent == nil {
		return 0, errors.Wrapf(ruleerrors.ErrMissingSelectedParent,
			"block %s has no selected parent", blockHash)
	}
	selectedParentHeader, err := v.blockHeaderStore.BlockHeader(selectedParent)
	if err != nil {
		if database.IsNotFoundError(err) {
			return 0, errors.Wrapf(ruleerrors.ErrMissingSelectedParent,
				"the header of selected parent %s of block %s is missing", selectedParent, blockHash)
		}
		return 0, err
	}
	return selectedParentHeader.DAAScore, nil
}

func (v *blockValidator) checkCoinbaseBlueScoreAndSubsidy(block *externalapi.DomainBlock) error {
	coinbaseTx := block.Transactions[transactionhelper.CoinbaseTransactionIndex]
	coinbasePayload, err := v.coinbaseManager.ExtractCoinbasePayload(coinbaseTx)
	if err != nil {
		return errors.Wrapf(ruleerrors.ErrBadCoinbasePayload, "%s", err)
	}

	if coinbasePayload.BlueScore != block.Header.BlueScore {
		return errors.Wrapf(ruleerrors.ErrBadCoinbasePayloadBlueScore, "coinbase payload declares "+
			"blue score %d while the block blue score is %d", coinbasePayload.BlueScore, block.Header.BlueScore)
	}

	expectedSubsidy := v.coinbaseManager.CalcBlockSubsidy(block.Header.DAAScore)
	if coinbasePayload.Subsidy != expectedSubsidy {
		return errors.Wrapf(ruleerrors.ErrWrongSubsidy, "coinbase payload declares subsidy %d "+
			"while the expected subsidy is %d", coinbasePayload.Subsidy, expectedSubsidy)
	}
	return nil
}

func (v *blockValidator) checkBlockTransactionsInContext(blockHash *externalapi.DomainHash,
	block *externalapi.DomainBlock) error {

	// Most transactions have no lock time, so the past median time is only
	// resolved once a time-locked transaction shows up.
	pastMedianTime := v.lazyPastMedianTime(blockHash)

	for _, tx := range block.Transactions {
		var lockTimeArg uint64
		switch v.transactionValidator.LockTimeType(tx) {
		case model.LockTimeTypeDAAScore:
			lockTimeArg = block.Header.DAAScore
		case model.LockTimeTypeTime:
			medianTime, err := pastMedianTime()
			if err != nil {
				return err
			}
			lockTimeArg = uint64(medianTime)
		}

		err := v.transactionValidator.ValidateTransactionInHeaderContext(tx, block.Header.DAAScore, lockTimeArg)
		if err != nil {
			txID := consensushashing.TransactionID(tx)
			log.Debugf("Transaction %s of block %s failed in context: %s", txID, blockHash, err)
			return ruleerrors.NewErrTxInContextFailed(txID, err)
		}
	}
	return nil
}

func (v *blockValidator) lazyPastMedianTime(blockHash *externalapi.DomainHash) func() (int64, error) {
	var (
		isResolved     bool
		pastMedianTime int64
		err            error
	)
	return func() (int64, error) {
		if !isResolved {
			pastMedianTime, err = v.pastMedianTimeManager.PastMedianTime(blockHash)
			isResolved = true
		}
		return pastMedianTime, err
	}
}
