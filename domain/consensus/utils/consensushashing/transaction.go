package consensushashing

import (
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/hashes"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/transactionhelper"
)

// TransactionID generates the Hash for the transaction without the signature script and payload field.
func TransactionID(tx *externalapi.DomainTransaction) *externalapi.DomainTransactionID {
	writer := &hashWriter{HashWriter: hashes.NewTransactionIDWriter()}
	serializeTransaction(writer, tx, false)
	transactionID := externalapi.DomainTransactionID(*writer.Finalize())
	return &transactionID
}

// TransactionHash returns the transaction hash, signature scripts included.
func TransactionHash(tx *externalapi.DomainTransaction) *externalapi.DomainHash {
	writer := &hashWriter{HashWriter: hashes.NewTransactionHashWriter()}
	serializeTransaction(writer, tx, true)
	return writer.Finalize()
}

func serializeTransaction(writer *hashWriter, tx *externalapi.DomainTransaction, includeSignatureScripts bool) {
	writer.writeUint16(tx.Version)

	writer.writeUint64(uint64(len(tx.Inputs)))
	for _, input := range tx.Inputs {
		writer.writeHash((*externalapi.DomainHash)(&input.PreviousOutpoint.TransactionID))
		writer.writeUint32(input.PreviousOutpoint.Index)
		if includeSignatureScripts {
			writer.writeBytes(input.SignatureScript)
		} else {
			writer.writeBytes(nil)
		}
		writer.writeUint64(input.Sequence)
		writer.InfallibleWrite([]byte{input.SigOpCount})
	}

	writer.writeUint64(uint64(len(tx.Outputs)))
	for _, output := range tx.Outputs {
		writer.writeUint64(output.Value)
		writer.writeUint16(output.ScriptPublicKey.Version)
		writer.writeBytes(output.ScriptPublicKey.Script)
	}

	writer.writeUint64(tx.LockTime)
	writer.InfallibleWrite(tx.SubnetworkID[:])
	writer.writeUint64(tx.Gas)

	// The coinbase payload commits to the block it is in, so it is
	// part of the ID. Other payloads are not.
	if includeSignatureScripts || transactionhelper.IsCoinBase(tx) {
		writer.writeBytes(tx.Payload)
	} else {
		writer.writeBytes(nil)
	}
}
