package blockvalidator_test

import (
	"math/big"
	"testing"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/ruleerrors"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/consensushashing"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/constants"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

func TestValidateBodyInContext(t *testing.T) {
	tc := newTestContext(t, 10)
	block := tc.buildBlock(11, 11, 3, lockedTransaction(5))

	err := tc.validator.ValidateBodyInContext(block)
	if err != nil {
		t.Fatalf("ValidateBodyInContext unexpectedly failed: %+v", err)
	}
	if tc.pastMedianTimeManager.calls != 0 {
		t.Fatalf("ValidateBodyInContext: past median time was resolved %d times "+
			"for a block without time-locked transactions", tc.pastMedianTimeManager.calls)
	}
}

func TestCheckParentBodiesExist(t *testing.T) {
	tc := newTestContext(t, 10)

	headerOnlyParent := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{2})
	unknownParent := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{3})
	invalidParent := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{4})
	tc.blockStatusStore[*headerOnlyParent] = externalapi.StatusHeaderOnly
	tc.blockStatusStore[*invalidParent] = externalapi.StatusInvalid

	block := tc.buildBlock(11, 11, 1)
	block.Header.ParentHashes = []*externalapi.DomainHash{
		tc.selectedParentHash, headerOnlyParent, unknownParent, invalidParent}

	err := tc.validator.ValidateBodyInContext(block)
	missingParents := &ruleerrors.ErrMissingParents{}
	if !errors.As(err, missingParents) {
		t.Fatalf("ValidateBodyInContext: expected ErrMissingParents, got %v", err)
	}
	expected := []*externalapi.DomainHash{headerOnlyParent, unknownParent, invalidParent}
	if !externalapi.HashesEqual(missingParents.MissingParentHashes, expected) {
		t.Fatalf("ValidateBodyInContext: expected missing parents %s, got %s",
			expected, missingParents.MissingParentHashes)
	}
}

func TestCheckParentBodiesExistRunsFirst(t *testing.T) {
	tc := newTestContext(t, 10)
	block := tc.buildBlockWithPayload(11, 11, 1, []byte{1, 2, 3})
	block.Header.ParentHashes = append(block.Header.ParentHashes,
		externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{5}))

	err := tc.validator.ValidateBodyInContext(block)
	if !errors.As(err, &ruleerrors.ErrMissingParents{}) {
		t.Fatalf("ValidateBodyInContext: expected ErrMissingParents before any coinbase check, got %v", err)
	}
}

func TestCheckCoinbaseOutputsLimit(t *testing.T) {
	tests := []struct {
		name                   string
		selectedParentDAAScore uint64
		blockDAAScore          uint64
		coinbaseOutputs        int
		expectedLimit          uint64
		isValid                bool
	}{
		{
			name:                   "at the limit before activation",
			selectedParentDAAScore: testActivationDAAScore - 1,
			blockDAAScore:          testActivationDAAScore - 1,
			coinbaseOutputs:        20,
			isValid:                true,
		},
		{
			name:                   "above the limit before activation",
			selectedParentDAAScore: testActivationDAAScore - 10,
			blockDAAScore:          testActivationDAAScore - 9,
			coinbaseOutputs:        21,
			expectedLimit:          20,
		},
		{
			name:                   "block past activation with a selected parent before it",
			selectedParentDAAScore: testActivationDAAScore - 1,
			blockDAAScore:          testActivationDAAScore + 1,
			coinbaseOutputs:        21,
			expectedLimit:          20,
		},
		{
			name:                   "selected parent at activation",
			selectedParentDAAScore: testActivationDAAScore,
			blockDAAScore:          testActivationDAAScore + 1,
			coinbaseOutputs:        126,
			isValid:                true,
		},
		{
			name:                   "above the limit after activation",
			selectedParentDAAScore: testActivationDAAScore,
			blockDAAScore:          testActivationDAAScore + 1,
			coinbaseOutputs:        127,
			expectedLimit:          126,
		},
	}

	for _, test := range tests {
		tc := newTestContext(t, test.selectedParentDAAScore)
		block := tc.buildBlock(test.blockDAAScore, test.blockDAAScore, test.coinbaseOutputs)

		err := tc.validator.ValidateBodyInContext(block)
		if test.isValid {
			if err != nil {
				t.Errorf("%s: ValidateBodyInContext unexpectedly failed: %+v", test.name, err)
			}
			continue
		}

		tooManyOutputs := &ruleerrors.ErrCoinbaseTooManyOutputs{}
		if !errors.As(err, tooManyOutputs) {
			t.Errorf("%s: expected ErrCoinbaseTooManyOutputs, got %v", test.name, err)
			continue
		}
		if tooManyOutputs.Limit != test.expectedLimit || tooManyOutputs.OutputCount != uint64(test.coinbaseOutputs) {
			t.Errorf("%s: expected %d outputs over a limit of %d, got %s", test.name,
				test.coinbaseOutputs, test.expectedLimit, spew.Sdump(tooManyOutputs))
		}
		if tooManyOutputs.TransactionID != *consensushashing.TransactionID(block.Transactions[0]) {
			t.Errorf("%s: unexpected transaction ID %s", test.name, tooManyOutputs.TransactionID)
		}
	}
}

func TestCheckCoinbaseOutputsLimitMissingSelectedParent(t *testing.T) {
	tc := newTestContext(t, 10)
	block := tc.buildBlock(11, 11, 1)
	delete(tc.blockHeaderStore, *tc.selectedParentHash)

	err := tc.validator.ValidateBodyInContext(block)
	if !errors.Is(err, ruleerrors.ErrMissingSelectedParent) {
		t.Fatalf("ValidateBodyInContext: expected ErrMissingSelectedParent, got %v", err)
	}

	tc = newTestContext(t, 10)
	block = tc.buildBlock(11, 11, 1)
	delete(tc.ghostdagDataStore, *consensushashing.BlockHash(block))
	err = tc.validator.ValidateBodyInContext(block)
	if !errors.Is(err, ruleerrors.ErrMissingSelectedParent) {
		t.Fatalf("ValidateBodyInContext: expected ErrMissingSelectedParent, got %v", err)
	}
}

func TestCheckCoinbaseBlueScoreAndSubsidy(t *testing.T) {
	tc := newTestContext(t, 10)

	badPayloadBlock := tc.buildBlockWithPayload(11, 11, 1, []byte{1, 2, 3})
	err := tc.validator.ValidateBodyInContext(badPayloadBlock)
	if !errors.Is(err, ruleerrors.ErrBadCoinbasePayload) {
		t.Fatalf("ValidateBodyInContext: expected ErrBadCoinbasePayload, got %v", err)
	}

	wrongBlueScoreBlock := tc.buildBlock(11, 11, 1)
	wrongBlueScoreBlock.Header.BlueScore = 12
	tc.ghostdagDataStore[*consensushashing.BlockHash(wrongBlueScoreBlock)] = externalapi.NewBlockGHOSTDAGData(
		12, big.NewInt(12), tc.selectedParentHash, []*externalapi.DomainHash{tc.selectedParentHash}, nil,
		map[externalapi.DomainHash]externalapi.KType{})
	err = tc.validator.ValidateBodyInContext(wrongBlueScoreBlock)
	if !errors.Is(err, ruleerrors.ErrBadCoinbasePayloadBlueScore) {
		t.Fatalf("ValidateBodyInContext: expected ErrBadCoinbasePayloadBlueScore, got %v", err)
	}

	wrongSubsidyPayload, err := tc.coinbaseManager.SerializeCoinbasePayload(&externalapi.DomainCoinbasePayload{
		BlueScore: 11,
		Subsidy:   tc.coinbaseManager.CalcBlockSubsidy(11) + 1,
		CoinbaseData: &externalapi.DomainCoinbaseData{
			ScriptPublicKey: &externalapi.ScriptPublicKey{Script: []byte{0x51}},
		},
	})
	if err != nil {
		t.Fatalf("SerializeCoinbasePayload: %+v", err)
	}
	wrongSubsidyBlock := tc.buildBlockWithPayload(11, 11, 1, wrongSubsidyPayload)
	err = tc.validator.ValidateBodyInContext(wrongSubsidyBlock)
	if !errors.Is(err, ruleerrors.ErrWrongSubsidy) {
		t.Fatalf("ValidateBodyInContext: expected ErrWrongSubsidy, got %v", err)
	}
}

func TestCheckBlockTransactionsInContext(t *testing.T) {
	tc := newTestContext(t, 10)

	unfinalizedTx := lockedTransaction(11)
	block := tc.buildBlock(11, 11, 1, lockedTransaction(10), unfinalizedTx)

	err := tc.validator.ValidateBodyInContext(block)
	txInContextFailed := &ruleerrors.ErrTxInContextFailed{}
	if !errors.As(err, txInContextFailed) {
		t.Fatalf("ValidateBodyInContext: expected ErrTxInContextFailed, got %v", err)
	}
	if txInContextFailed.TransactionID != *consensushashing.TransactionID(unfinalizedTx) {
		t.Fatalf("ValidateBodyInContext: expected the failure of %s, got %s",
			consensushashing.TransactionID(unfinalizedTx), txInContextFailed.TransactionID)
	}
	if !errors.Is(err, ruleerrors.ErrUnfinalizedTx) {
		t.Fatalf("ValidateBodyInContext: expected the cause to be ErrUnfinalizedTx, got %v", err)
	}
}

func TestPastMedianTimeIsResolvedLazily(t *testing.T) {
	tc := newTestContext(t, 10)
	tc.pastMedianTimeManager.pastMedianTime = constants.LockTimeThreshold + 1000

	block := tc.buildBlock(11, 11, 1,
		lockedTransaction(constants.LockTimeThreshold+1),
		lockedTransaction(5),
		lockedTransaction(constants.LockTimeThreshold+2))

	err := tc.validator.ValidateBodyInContext(block)
	if err != nil {
		t.Fatalf("ValidateBodyInContext unexpectedly failed: %+v", err)
	}
	if tc.pastMedianTimeManager.calls != 1 {
		t.Fatalf("ValidateBodyInContext: expected the past median time to be resolved once, got %d",
			tc.pastMedianTimeManager.calls)
	}

	tc.pastMedianTimeManager.calls = 0
	tc.pastMedianTimeManager.pastMedianTime = constants.LockTimeThreshold + 1
	unfinalizedBlock := tc.buildBlock(11, 11, 1, lockedTransaction(constants.LockTimeThreshold+1))
	err = tc.validator.ValidateBodyInContext(unfinalizedBlock)
	if !errors.Is(err, ruleerrors.ErrUnfinalizedTx) {
		t.Fatalf("ValidateBodyInContext: expected ErrUnfinalizedTx, got %v", err)
	}
}

func TestPastMedianTimeError(t *testing.T) {
	tc := newTestContext(t, 10)
	pastMedianTimeErr := errors.New("past median time unavailable")
	tc.pastMedianTimeManager.err = pastMedianTimeErr

	block := tc.buildBlock(11, 11, 1, lockedTransaction(constants.LockTimeThreshold+1))
	err := tc.validator.ValidateBodyInContext(block)
	if !errors.Is(err, pastMedianTimeErr) {
		t.Fatalf("ValidateBodyInContext: expected the past median time error, got %v", err)
	}
	if errors.As(err, &ruleerrors.ErrTxInContextFailed{}) {
		t.Fatalf("ValidateBodyInContext: past median time failures should not be attributed to a transaction")
	}
}
