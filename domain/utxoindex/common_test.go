package utxoindex

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/utxo"
	"github.com/Vecno-Foundation/vecnod/infrastructure/db/database"
	"github.com/Vecno-Foundation/vecnod/infrastructure/db/database/badgerdb"
	"github.com/Vecno-Foundation/vecnod/infrastructure/db/database/ldb"
)

type databasePrepareFunc func(t *testing.T, testName string) (db database.Database, name string, teardownFunc func())

var databasePrepareFuncs = []databasePrepareFunc{
	prepareLDBForTest,
	prepareBadgerForTest,
}

func prepareLDBForTest(t *testing.T, testName string) (db database.Database, name string, teardownFunc func()) {
	db, err := ldb.NewLevelDB(t.TempDir(), 8)
	if err != nil {
		t.Fatalf("%s: NewLevelDB: %+v", testName, err)
	}
	return db, "ldb", func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("%s: Close: %+v", testName, err)
		}
	}
}

func prepareBadgerForTest(t *testing.T, testName string) (db database.Database, name string, teardownFunc func()) {
	db, err := badgerdb.NewBadgerDB(t.TempDir())
	if err != nil {
		t.Fatalf("%s: NewBadgerDB: %+v", testName, err)
	}
	return db, "badger", func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("%s: Close: %+v", testName, err)
		}
	}
}

// testForAllDatabaseTypes runs the given testFunc against every
// supported database type.
func testForAllDatabaseTypes(t *testing.T, testName string,
	testFunc func(t *testing.T, db database.Database, testName string)) {

	for _, prepareDatabase := range databasePrepareFuncs {
		func() {
			db, dbType, teardownFunc := prepareDatabase(t, testName)
			defer teardownFunc()

			testFunc(t, db, fmt.Sprintf("%s: %s", dbType, testName))
		}()
	}
}

// fakeConsensus serves a virtual UTXO set ordered by outpoint.
type fakeConsensus struct {
	mutex          sync.Mutex
	virtualParents []*externalapi.DomainHash
	utxos          externalapi.UTXOCollection
	resetHandlers  []externalapi.ConsensusResetHandler

	getVirtualUTXOsCalls int
}

func newFakeConsensus(virtualParents ...*externalapi.DomainHash) *fakeConsensus {
	return &fakeConsensus{
		virtualParents: virtualParents,
		utxos:          make(externalapi.UTXOCollection),
	}
}

func (fc *fakeConsensus) VirtualParents() ([]*externalapi.DomainHash, error) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	return externalapi.CloneHashes(fc.virtualParents), nil
}

func (fc *fakeConsensus) setVirtualParents(virtualParents ...*externalapi.DomainHash) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	fc.virtualParents = virtualParents
}

func (fc *fakeConsensus) GetVirtualUTXOs(fromOutpoint *externalapi.DomainOutpoint, limit int, skipFirst bool) (
	[]*externalapi.OutpointAndUTXOEntryPair, error) {

	fc.mutex.Lock()
	defer fc.mutex.Unlock()
	fc.getVirtualUTXOsCalls++

	outpoints := make([]externalapi.DomainOutpoint, 0, len(fc.utxos))
	for outpoint := range fc.utxos {
		outpoints = append(outpoints, outpoint)
	}
	sort.Slice(outpoints, func(i, j int) bool { return outpointLess(&outpoints[i], &outpoints[j]) })

	start := 0
	if fromOutpoint != nil {
		start = sort.Search(len(outpoints), func(i int) bool { return !outpointLess(&outpoints[i], fromOutpoint) })
		if skipFirst && start < len(outpoints) && outpoints[start] == *fromOutpoint {
			start++
		}
	}

	pairs := make([]*externalapi.OutpointAndUTXOEntryPair, 0, limit)
	for i := start; i < len(outpoints) && len(pairs) < limit; i++ {
		outpoint := outpoints[i]
		pairs = append(pairs, &externalapi.OutpointAndUTXOEntryPair{
			Outpoint:  &outpoint,
			UTXOEntry: fc.utxos[outpoint],
		})
	}
	return pairs, nil
}

func (fc *fakeConsensus) RegisterConsensusResetHandler(handler externalapi.ConsensusResetHandler) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	fc.resetHandlers = append(fc.resetHandlers, handler)
}

func (fc *fakeConsensus) applyDiff(diff *externalapi.UTXODiff) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	for outpoint := range diff.ToRemove {
		delete(fc.utxos, outpoint)
	}
	for outpoint, entry := range diff.ToAdd {
		fc.utxos[outpoint] = entry
	}
}

func outpointLess(a, b *externalapi.DomainOutpoint) bool {
	comparison := bytes.Compare(a.TransactionID.ByteSlice(), b.TransactionID.ByteSlice())
	if comparison != 0 {
		return comparison < 0
	}
	return a.Index < b.Index
}

func testHash(b byte) *externalapi.DomainHash {
	return externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{b})
}

func testOutpoint(txIDByte byte, index uint32) externalapi.DomainOutpoint {
	transactionID := externalapi.NewDomainTransactionIDFromByteArray(&[externalapi.DomainHashSize]byte{txIDByte})
	return *externalapi.NewDomainOutpoint(transactionID, index)
}

func testScriptPublicKey(b byte) *externalapi.ScriptPublicKey {
	return &externalapi.ScriptPublicKey{Script: []byte{0x20, b, b, b, 0xac}, Version: 0}
}

func testEntry(amount uint64, scriptPublicKey *externalapi.ScriptPublicKey) externalapi.UTXOEntry {
	return utxo.NewUTXOEntry(amount, scriptPublicKey, false, 7)
}
