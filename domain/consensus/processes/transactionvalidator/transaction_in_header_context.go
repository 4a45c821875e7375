package transactionvalidator

import (
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/ruleerrors"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/consensushashing"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/constants"
	"github.com/pkg/errors"
)

// LockTimeType returns the kind of bound the lock time of tx puts on the
// block including it.
func (v *transactionValidator) LockTimeType(tx *externalapi.DomainTransaction) model.LockTimeType {
	switch {
	case tx.LockTime == 0:
		return model.LockTimeTypeFinalized
	case tx.LockTime < constants.LockTimeThreshold:
		return model.LockTimeTypeDAAScore
	default:
		return model.LockTimeTypeTime
	}
}

// ValidateTransactionInHeaderContext validates that tx is finalized in the
// context of a block with the given DAA score. lockTimeArg is the DAA score
// or the past median time the lock time should be compared against,
// depending on LockTimeType(tx).
func (v *transactionValidator) ValidateTransactionInHeaderContext(tx *externalapi.DomainTransaction,
	povDAAScore uint64, lockTimeArg uint64) error {

	if !v.isFinalizedTransaction(tx, lockTimeArg) {
		return errors.Wrapf(ruleerrors.ErrUnfinalizedTx, "unfinalized transaction %s with lock time %d "+
			"in a block with DAA score %d", consensushashing.TransactionID(tx), tx.LockTime, povDAAScore)
	}
	return nil
}

// isFinalizedTransaction determines whether or not a transaction is finalized.
func (v *transactionValidator) isFinalizedTransaction(tx *externalapi.DomainTransaction, lockTimeArg uint64) bool {
	// Lock time of zero means the transaction is finalized.
	if v.LockTimeType(tx) == model.LockTimeTypeFinalized {
		return true
	}

	if tx.LockTime < lockTimeArg {
		return true
	}

	// At this point, the transaction's lock time hasn't occurred yet, but
	// the transaction might still be finalized if the sequence number
	// for all transaction inputs is maxed out.
	for _, input := range tx.Inputs {
		if input.Sequence != constants.MaxTxInSequenceNum {
			return false
		}
	}
	return true
}
