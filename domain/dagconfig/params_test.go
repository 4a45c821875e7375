package dagconfig

import (
	"math"
	"testing"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

func TestForkedParam(t *testing.T) {
	param := NewForkedParam[externalapi.KType](18, 124, 1000)
	tests := []struct {
		daaScore uint64
		expected externalapi.KType
	}{
		{0, 18},
		{999, 18},
		{1000, 124},
		{math.MaxUint64, 124},
	}
	for _, test := range tests {
		if value := param.Get(test.daaScore); value != test.expected {
			t.Errorf("Get(%d): expected %d, got %d", test.daaScore, test.expected, value)
		}
	}

	constant := ConstantForkedParam[externalapi.KType](18)
	if constant.Get(0) != 18 || constant.Get(math.MaxUint64-1) != 18 {
		t.Fatalf("ConstantForkedParam: value changed with the DAA score")
	}
}

func TestParamsByName(t *testing.T) {
	for _, params := range []*Params{&MainnetParams, &TestnetParams, &SimnetParams, &DevnetParams} {
		found, err := ParamsByName(params.Name)
		if err != nil {
			t.Fatalf("ParamsByName(%s): %+v", params.Name, err)
		}
		if found != params {
			t.Fatalf("ParamsByName(%s): got the params of %s", params.Name, found.Name)
		}
		if params.GenesisHash == nil || len(params.GenesisBlock.Transactions) != 1 {
			t.Fatalf("%s: malformed genesis", params.Name)
		}
		if params.SubsidyHalvingInterval == 0 {
			t.Fatalf("%s: zero subsidy halving interval", params.Name)
		}
	}

	_, err := ParamsByName("nonet")
	if !errors.Is(err, ErrUnknownNetwork) {
		t.Fatalf("ParamsByName: expected ErrUnknownNetwork, got %v", err)
	}
}

func TestGenesisHashesAreDistinct(t *testing.T) {
	seen := make(map[externalapi.DomainHash]string)
	for _, params := range []*Params{&MainnetParams, &TestnetParams, &SimnetParams, &DevnetParams} {
		if other, ok := seen[*params.GenesisHash]; ok {
			t.Fatalf("%s and %s share a genesis hash", params.Name, other)
		}
		seen[*params.GenesisHash] = params.Name
	}
}
