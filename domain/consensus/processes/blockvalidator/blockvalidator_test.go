package blockvalidator_test

import (
	"math/big"
	"testing"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/processes/blockvalidator"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/processes/coinbasemanager"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/processes/transactionvalidator"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/consensushashing"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/subnetworks"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/transactionhelper"
	"github.com/Vecno-Foundation/vecnod/domain/dagconfig"
	"github.com/Vecno-Foundation/vecnod/infrastructure/db/database"
	"github.com/pkg/errors"
)

type fakeBlockStatusStore map[externalapi.DomainHash]externalapi.BlockStatus

func (s fakeBlockStatusStore) Get(blockHash *externalapi.DomainHash) (externalapi.BlockStatus, error) {
	status, ok := s[*blockHash]
	if !ok {
		return 0, errors.Wrapf(database.ErrNotFound, "block status of %s", blockHash)
	}
	return status, nil
}

func (s fakeBlockStatusStore) Exists(blockHash *externalapi.DomainHash) (bool, error) {
	_, ok := s[*blockHash]
	return ok, nil
}

type fakeBlockHeaderStore map[externalapi.DomainHash]*externalapi.DomainBlockHeader

func (s fakeBlockHeaderStore) BlockHeader(blockHash *externalapi.DomainHash) (*externalapi.DomainBlockHeader, error) {
	header, ok := s[*blockHash]
	if !ok {
		return nil, errors.Wrapf(database.ErrNotFound, "block header of %s", blockHash)
	}
	return header, nil
}

func (s fakeBlockHeaderStore) HasBlockHeader(blockHash *externalapi.DomainHash) (bool, error) {
	_, ok := s[*blockHash]
	return ok, nil
}

type fakeGHOSTDAGDataStore map[externalapi.DomainHash]*externalapi.BlockGHOSTDAGData

func (s fakeGHOSTDAGDataStore) Get(blockHash *externalapi.DomainHash) (*externalapi.BlockGHOSTDAGData, error) {
	ghostdagData, ok := s[*blockHash]
	if !ok {
		return nil, errors.Wrapf(database.ErrNotFound, "GHOSTDAG data of %s", blockHash)
	}
	return ghostdagData, nil
}

type fakePastMedianTimeManager struct {
	pastMedianTime int64
	err            error
	calls          int
}

func (m *fakePastMedianTimeManager) PastMedianTime(*externalapi.DomainHash) (int64, error) {
	m.calls++
	return m.pastMedianTime, m.err
}

const testActivationDAAScore = 1000

// testContext holds a validator over in-memory stores. The selected parent
// of every block is selectedParentHash, whose DAA score is set per test.
type testContext struct {
	t *testing.T

	validator             model.BlockValidator
	coinbaseManager       model.CoinbaseManager
	pastMedianTimeManager *fakePastMedianTimeManager

	blockStatusStore  fakeBlockStatusStore
	blockHeaderStore  fakeBlockHeaderStore
	ghostdagDataStore fakeGHOSTDAGDataStore

	selectedParentHash *externalapi.DomainHash
}

func newTestContext(t *testing.T, selectedParentDAAScore uint64) *testContext {
	params := dagconfig.SimnetParams
	ghostdagK := dagconfig.NewForkedParam[externalapi.KType](18, 124, testActivationDAAScore)

	tc := &testContext{
		t: t,
		coinbaseManager: coinbasemanager.New(
			params.MaxCoinbasePayloadLength,
			params.CoinbasePayloadScriptPublicKeyMaxLength,
			params.PreDeflationaryPhaseBaseSubsidy,
			params.DeflationaryPhaseDAAScore,
			params.DeflationaryPhaseBaseSubsidy,
			params.SubsidyHalvingInterval),
		pastMedianTimeManager: &fakePastMedianTimeManager{},
		blockStatusStore:      fakeBlockStatusStore{},
		blockHeaderStore:      fakeBlockHeaderStore{},
		ghostdagDataStore:     fakeGHOSTDAGDataStore{},
		selectedParentHash:    externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{1}),
	}
	tc.validator = blockvalidator.New(ghostdagK, tc.pastMedianTimeManager, transactionvalidator.New(),
		tc.coinbaseManager, tc.ghostdagDataStore, tc.blockHeaderStore, tc.blockStatusStore)

	tc.blockStatusStore[*tc.selectedParentHash] = externalapi.StatusUTXOValid
	tc.blockHeaderStore[*tc.selectedParentHash] = &externalapi.DomainBlockHeader{
		ParentHashes: []*externalapi.DomainHash{},
		DAAScore:     selectedParentDAAScore,
		BlueWork:     big.NewInt(0),
	}
	return tc
}

// buildBlock builds a block on top of the selected parent with a valid
// coinbase paying coinbaseOutputs outputs, and registers its GHOSTDAG data.
func (tc *testContext) buildBlock(daaScore, blueScore uint64, coinbaseOutputs int,
	transactions ...*externalapi.DomainTransaction) *externalapi.DomainBlock {

	payload, err := tc.coinbaseManager.SerializeCoinbasePayload(&externalapi.DomainCoinbasePayload{
		BlueScore: blueScore,
		Subsidy:   tc.coinbaseManager.CalcBlockSubsidy(daaScore),
		CoinbaseData: &externalapi.DomainCoinbaseData{
			ScriptPublicKey: &externalapi.ScriptPublicKey{Script: []byte{0x51}},
		},
	})
	if err != nil {
		tc.t.Fatalf("SerializeCoinbasePayload: %+v", err)
	}
	return tc.buildBlockWithPayload(daaScore, blueScore, coinbaseOutputs, payload, transactions...)
}

func (tc *testContext) buildBlockWithPayload(daaScore, blueScore uint64, coinbaseOutputs int, payload []byte,
	transactions ...*externalapi.DomainTransaction) *externalapi.DomainBlock {

	outputs := make([]*externalapi.DomainTransactionOutput, coinbaseOutputs)
	for i := range outputs {
		outputs[i] = &externalapi.DomainTransactionOutput{
			Value:           uint64(i + 1),
			ScriptPublicKey: &externalapi.ScriptPublicKey{Script: []byte{0x51}},
		}
	}
	coinbaseTx := transactionhelper.NewSubnetworkTransaction(0, []*externalapi.DomainTransactionInput{}, outputs,
		&subnetworks.SubnetworkIDCoinbase, 0, payload)

	block := &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			ParentHashes: []*externalapi.DomainHash{tc.selectedParentHash},
			DAAScore:     daaScore,
			BlueScore:    blueScore,
			BlueWork:     big.NewInt(int64(blueScore)),
		},
		Transactions: append([]*externalapi.DomainTransaction{coinbaseTx}, transactions...),
	}

	tc.ghostdagDataStore[*consensushashing.BlockHash(block)] = externalapi.NewBlockGHOSTDAGData(
		blueScore, big.NewInt(int64(blueScore)), tc.selectedParentHash, []*externalapi.DomainHash{tc.selectedParentHash},
		nil, map[externalapi.DomainHash]externalapi.KType{*tc.selectedParentHash: 0})
	return block
}

func lockedTransaction(lockTime uint64) *externalapi.DomainTransaction {
	tx := transactionhelper.NewNativeTransaction(0, []*externalapi.DomainTransactionInput{{
		PreviousOutpoint: externalapi.DomainOutpoint{
			TransactionID: *externalapi.NewDomainTransactionIDFromByteArray(&[externalapi.DomainHashSize]byte{byte(lockTime), byte(lockTime >> 8)}),
		},
		Sequence: 0,
	}}, []*externalapi.DomainTransactionOutput{{
		Value:           1,
		ScriptPublicKey: &externalapi.ScriptPublicKey{Script: []byte{0x51}},
	}})
	tx.LockTime = lockTime
	return tx
}
