package model

import "github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"

// LockTimeType is the kind of bound a transaction's lock time puts on
// the block that includes it.
type LockTimeType int

const (
	// LockTimeTypeFinalized means the transaction has no lock time.
	LockTimeTypeFinalized LockTimeType = iota

	// LockTimeTypeDAAScore means the lock time is a DAA score.
	LockTimeTypeDAAScore

	// LockTimeTypeTime means the lock time is a timestamp in milliseconds,
	// compared against the past median time of the including block.
	LockTimeTypeTime
)

func (lockTimeType LockTimeType) String() string {
	switch lockTimeType {
	case LockTimeTypeFinalized:
		return "Finalized"
	case LockTimeTypeDAAScore:
		return "DAAScore"
	case LockTimeTypeTime:
		return "Time"
	}
	return "Unknown"
}

// TransactionValidator exposes a set of validation classes, after which
// it's possible to determine whether a transaction is valid
type TransactionValidator interface {
	LockTimeType(tx *externalapi.DomainTransaction) LockTimeType

	// ValidateTransactionInHeaderContext checks that tx is finalized at
	// povDAAScore. lockTimeArg is the value the lock time is compared
	// against: ignored for LockTimeTypeFinalized, a DAA score for
	// LockTimeTypeDAAScore and a past median time for LockTimeTypeTime.
	ValidateTransactionInHeaderContext(tx *externalapi.DomainTransaction, povDAAScore uint64, lockTimeArg uint64) error
}
