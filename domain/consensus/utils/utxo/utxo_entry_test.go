package utxo

import (
	"testing"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
)

func TestUTXOEntryEqual(t *testing.T) {
	scriptPublicKey := &externalapi.ScriptPublicKey{Script: []byte{1, 2, 3}, Version: 0}
	entry := NewUTXOEntry(5, scriptPublicKey, true, 7)

	scriptPublicKey.Script[0] = 9
	if entry.ScriptPublicKey().Script[0] != 1 {
		t.Fatalf("NewUTXOEntry: modifying the given script public key changed the entry")
	}
	entry.ScriptPublicKey().Script[0] = 9
	if entry.ScriptPublicKey().Script[0] != 1 {
		t.Fatalf("ScriptPublicKey: modifying the returned script public key changed the entry")
	}

	same := NewUTXOEntry(5, &externalapi.ScriptPublicKey{Script: []byte{1, 2, 3}, Version: 0}, true, 7)
	if !entry.Equal(same) {
		t.Fatalf("Equal: identical entries are not equal")
	}
	different := []externalapi.UTXOEntry{
		NewUTXOEntry(6, &externalapi.ScriptPublicKey{Script: []byte{1, 2, 3}, Version: 0}, true, 7),
		NewUTXOEntry(5, &externalapi.ScriptPublicKey{Script: []byte{1, 2}, Version: 0}, true, 7),
		NewUTXOEntry(5, &externalapi.ScriptPublicKey{Script: []byte{1, 2, 3}, Version: 1}, true, 7),
		NewUTXOEntry(5, &externalapi.ScriptPublicKey{Script: []byte{1, 2, 3}, Version: 0}, false, 7),
		NewUTXOEntry(5, &externalapi.ScriptPublicKey{Script: []byte{1, 2, 3}, Version: 0}, true, 8),
		nil,
	}
	for i, other := range different {
		if entry.Equal(other) {
			t.Errorf("Equal: entry %d is unexpectedly equal", i)
		}
	}
}
