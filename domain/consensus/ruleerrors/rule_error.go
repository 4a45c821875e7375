package ruleerrors

import (
	"fmt"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrNoTransactions indicates the block does not have a least one
	// transaction. A valid block must have at least the coinbase
	// transaction.
	ErrNoTransactions = newRuleError("ErrNoTransactions")

	// ErrUnfinalizedTx indicates a transaction has not been finalized.
	// A valid block may only contain finalized transactions.
	ErrUnfinalizedTx = newRuleError("ErrUnfinalizedTx")

	// ErrBadCoinbasePayload indicates that the coinbase payload could
	// not be decoded.
	ErrBadCoinbasePayload = newRuleError("ErrBadCoinbasePayload")

	// ErrBadCoinbasePayloadLen indicates the length of the payload
	// for a coinbase transaction is too high.
	ErrBadCoinbasePayloadLen = newRuleError("ErrBadCoinbasePayloadLen")

	// ErrBadCoinbasePayloadBlueScore indicates that the blue score
	// declared in the coinbase payload is not the blue score of the
	// block's header.
	ErrBadCoinbasePayloadBlueScore = newRuleError("ErrBadCoinbasePayloadBlueScore")

	// ErrWrongSubsidy indicates that the subsidy declared in the
	// coinbase payload is not the subsidy the block is entitled to.
	ErrWrongSubsidy = newRuleError("ErrWrongSubsidy")

	// ErrMissingSelectedParent indicates that the selected parent of a
	// block, or its DAA score, could not be resolved.
	ErrMissingSelectedParent = newRuleError("ErrMissingSelectedParent")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block or transaction failed due to one of the many validation
// rules. The caller can use type assertions to determine if a failure was
// specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// ErrMissingParents indicates a block points to unknown parent(s).
type ErrMissingParents struct {
	MissingParentHashes []*externalapi.DomainHash
}

func (e ErrMissingParents) Error() string {
	return fmt.Sprintf("missing the following parent hashes: %v", e.MissingParentHashes)
}

// NewErrMissingParents creates a new ErrMissingParents error wrapped in a RuleError
func NewErrMissingParents(missingParentHashes []*externalapi.DomainHash) error {
	return errors.WithStack(RuleError{
		message: "ErrMissingParents",
		inner:   ErrMissingParents{missingParentHashes},
	})
}

// ErrCoinbaseTooManyOutputs indicates that a coinbase transaction pays
// more outputs than the number of blues it can possibly reward.
type ErrCoinbaseTooManyOutputs struct {
	TransactionID externalapi.DomainTransactionID
	OutputCount   uint64
	Limit         uint64
}

func (e ErrCoinbaseTooManyOutputs) Error() string {
	return fmt.Sprintf("coinbase transaction %s has %d outputs while at most %d are allowed",
		e.TransactionID, e.OutputCount, e.Limit)
}

// NewErrCoinbaseTooManyOutputs creates a new ErrCoinbaseTooManyOutputs error wrapped in a RuleError
func NewErrCoinbaseTooManyOutputs(transactionID *externalapi.DomainTransactionID, outputCount, limit uint64) error {
	return errors.WithStack(RuleError{
		message: "ErrCoinbaseTooManyOutputs",
		inner:   ErrCoinbaseTooManyOutputs{*transactionID, outputCount, limit},
	})
}

// ErrTxInContextFailed indicates that a transaction in a block failed
// its validation in the context of that block.
type ErrTxInContextFailed struct {
	TransactionID externalapi.DomainTransactionID
	Err           error
}

func (e ErrTxInContextFailed) Error() string {
	return fmt.Sprintf("transaction %s failed in context: %s", e.TransactionID, e.Err)
}

// Unwrap exposes the rule the transaction violated
func (e ErrTxInContextFailed) Unwrap() error {
	return e.Err
}

// NewErrTxInContextFailed creates a new ErrTxInContextFailed error wrapped in a RuleError
func NewErrTxInContextFailed(transactionID *externalapi.DomainTransactionID, err error) error {
	return errors.WithStack(RuleError{
		message: "ErrTxInContextFailed",
		inner:   ErrTxInContextFailed{*transactionID, err},
	})
}
