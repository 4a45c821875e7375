package transactionvalidator

import (
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model"
)

// transactionValidator exposes a set of validation classes, after which
// it's possible to determine whether either a transaction is valid
type transactionValidator struct {
}

// New instantiates a new TransactionValidator
func New() model.TransactionValidator {
	return &transactionValidator{}
}
