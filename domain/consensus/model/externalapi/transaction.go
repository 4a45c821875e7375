package externalapi

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// DomainTransaction represents a Vecno transaction
type DomainTransaction struct {
	Version      uint16
	Inputs       []*DomainTransactionInput
	Outputs      []*DomainTransactionOutput
	LockTime     uint64
	SubnetworkID DomainSubnetworkID
	Gas          uint64
	Payload      []byte
}

// Clone returns a clone of DomainTransaction
func (tx *DomainTransaction) Clone() *DomainTransaction {
	inputsClone := make([]*DomainTransactionInput, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputsClone[i] = input.Clone()
	}

	outputsClone := make([]*DomainTransactionOutput, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputsClone[i] = output.Clone()
	}

	return &DomainTransaction{
		Version:      tx.Version,
		Inputs:       inputsClone,
		Outputs:      outputsClone,
		LockTime:     tx.LockTime,
		SubnetworkID: tx.SubnetworkID,
		Gas:          tx.Gas,
		Payload:      append([]byte(nil), tx.Payload...),
	}
}

// Equal returns whether tx equals to other
func (tx *DomainTransaction) Equal(other *DomainTransaction) bool {
	if tx == nil || other == nil {
		return tx == other
	}

	if tx.Version != other.Version ||
		tx.LockTime != other.LockTime ||
		tx.SubnetworkID != other.SubnetworkID ||
		tx.Gas != other.Gas ||
		!bytes.Equal(tx.Payload, other.Payload) {
		return false
	}

	if len(tx.Inputs) != len(other.Inputs) || len(tx.Outputs) != len(other.Outputs) {
		return false
	}

	for i, input := range tx.Inputs {
		if !input.Equal(other.Inputs[i]) {
			return false
		}
	}

	for i, output := range tx.Outputs {
		if !output.Equal(other.Outputs[i]) {
			return false
		}
	}

	return true
}

// DomainTransactionInput represents a Vecno transaction input
type DomainTransactionInput struct {
	PreviousOutpoint DomainOutpoint
	SignatureScript  []byte
	Sequence         uint64
	SigOpCount       byte
}

// Clone returns a clone of DomainTransactionInput
func (input *DomainTransactionInput) Clone() *DomainTransactionInput {
	return &DomainTransactionInput{
		PreviousOutpoint: input.PreviousOutpoint,
		SignatureScript:  append([]byte(nil), input.SignatureScript...),
		Sequence:         input.Sequence,
		SigOpCount:       input.SigOpCount,
	}
}

// Equal returns whether input equals to other
func (input *DomainTransactionInput) Equal(other *DomainTransactionInput) bool {
	if input == nil || other == nil {
		return input == other
	}

	return input.PreviousOutpoint == other.PreviousOutpoint &&
		bytes.Equal(input.SignatureScript, other.SignatureScript) &&
		input.Sequence == other.Sequence &&
		input.SigOpCount == other.SigOpCount
}

// DomainOutpoint represents a Vecno transaction outpoint
type DomainOutpoint struct {
	TransactionID DomainTransactionID
	Index         uint32
}

// String stringifies an outpoint.
func (op DomainOutpoint) String() string {
	return fmt.Sprintf("(%s: %d)", op.TransactionID, op.Index)
}

// NewDomainOutpoint instantiates a new DomainOutpoint with the given id and index
func NewDomainOutpoint(id *DomainTransactionID, index uint32) *DomainOutpoint {
	return &DomainOutpoint{
		TransactionID: *id,
		Index:         index,
	}
}

// ScriptPublicKey represents a Vecno ScriptPublicKey
type ScriptPublicKey struct {
	Script  []byte
	Version uint16
}

// Equal returns whether spk equals to other
func (spk *ScriptPublicKey) Equal(other *ScriptPublicKey) bool {
	if spk == nil || other == nil {
		return spk == other
	}

	return spk.Version == other.Version && bytes.Equal(spk.Script, other.Script)
}

// String stringifies a ScriptPublicKey.
func (spk *ScriptPublicKey) String() string {
	return fmt.Sprintf("%d:%s", spk.Version, hex.EncodeToString(spk.Script))
}

// DomainTransactionOutput represents a Vecno transaction output
type DomainTransactionOutput struct {
	Value           uint64
	ScriptPublicKey *ScriptPublicKey
}

// Clone returns a clone of DomainTransactionOutput
func (output *DomainTransactionOutput) Clone() *DomainTransactionOutput {
	return &DomainTransactionOutput{
		Value: output.Value,
		ScriptPublicKey: &ScriptPublicKey{
			Script:  append([]byte(nil), output.ScriptPublicKey.Script...),
			Version: output.ScriptPublicKey.Version,
		},
	}
}

// Equal returns whether output equals to other
func (output *DomainTransactionOutput) Equal(other *DomainTransactionOutput) bool {
	if output == nil || other == nil {
		return output == other
	}

	return output.Value == other.Value && output.ScriptPublicKey.Equal(other.ScriptPublicKey)
}

// DomainTransactionID represents the ID of a Vecno transaction
type DomainTransactionID DomainHash

// NewDomainTransactionIDFromByteArray constructs a new TransactionID out of a byte array
func NewDomainTransactionIDFromByteArray(transactionIDBytes *[DomainHashSize]byte) *DomainTransactionID {
	return (*DomainTransactionID)(NewDomainHashFromByteArray(transactionIDBytes))
}

// NewDomainTransactionIDFromByteSlice constructs a new TransactionID out of a byte slice
func NewDomainTransactionIDFromByteSlice(transactionIDBytes []byte) (*DomainTransactionID, error) {
	hash, err := NewDomainHashFromByteSlice(transactionIDBytes)
	if err != nil {
		return nil, err
	}
	return (*DomainTransactionID)(hash), nil
}

// String stringifies a transaction ID.
func (id DomainTransactionID) String() string {
	return DomainHash(id).String()
}

// ByteSlice returns the bytes in this transactionID represented as a byte slice.
// The transactionID bytes are cloned, therefore it is safe to modify the resulting slice.
func (id *DomainTransactionID) ByteSlice() []byte {
	return (*DomainHash)(id).ByteSlice()
}

// Equal returns whether id equals to other
func (id *DomainTransactionID) Equal(other *DomainTransactionID) bool {
	return (*DomainHash)(id).Equal((*DomainHash)(other))
}

// DomainSubnetworkIDSize is the size of the array used to store subnetwork IDs.
const DomainSubnetworkIDSize = 20

// DomainSubnetworkID is the domain representation of a Subnetwork ID
type DomainSubnetworkID [DomainSubnetworkIDSize]byte

// String stringifies a subnetwork ID.
func (id DomainSubnetworkID) String() string {
	return hex.EncodeToString(id[:])
}
