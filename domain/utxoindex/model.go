package utxoindex

import (
	"encoding/binary"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
)

// ScriptPublicKeyString is a script public key represented as a string
// We use this type rather than just a byte slice because Go maps don't
// support slices as keys. See: UTXOChanges
type ScriptPublicKeyString string

// UTXOOutpointEntryPairs is a map between UTXO outpoints to UTXO entries
type UTXOOutpointEntryPairs map[externalapi.DomainOutpoint]externalapi.UTXOEntry

// UTXOChanges is the set of changes made to the UTXO index after
// a successful update
type UTXOChanges struct {
	Added   map[ScriptPublicKeyString]UTXOOutpointEntryPairs
	Removed map[ScriptPublicKeyString]UTXOOutpointEntryPairs
}

func newUTXOChanges() *UTXOChanges {
	return &UTXOChanges{
		Added:   make(map[ScriptPublicKeyString]UTXOOutpointEntryPairs),
		Removed: make(map[ScriptPublicKeyString]UTXOOutpointEntryPairs),
	}
}

// ConvertScriptPublicKeyToString converts the given scriptPublicKey to a string
func ConvertScriptPublicKeyToString(scriptPublicKey *externalapi.ScriptPublicKey) ScriptPublicKeyString {
	versionBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(versionBytes, scriptPublicKey.Version)
	return ScriptPublicKeyString(versionBytes) + ScriptPublicKeyString(scriptPublicKey.Script)
}

// ConvertStringToScriptPublicKey converts the given string to a scriptPublicKey
func ConvertStringToScriptPublicKey(stringScriptPublicKey ScriptPublicKeyString) *externalapi.ScriptPublicKey {
	bytes := []byte(stringScriptPublicKey)
	version := binary.LittleEndian.Uint16(bytes[:2])
	script := bytes[2:]
	return &externalapi.ScriptPublicKey{Script: script, Version: version}
}

// Balance is the sum of the UTXO amounts paid to a script public key.
type Balance struct {
	Amount    uint64
	UTXOCount uint64
}
