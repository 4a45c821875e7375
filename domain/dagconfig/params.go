package dagconfig

import (
	"time"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/consensushashing"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/constants"
	"github.com/pkg/errors"
)

const (
	legacyGHOSTDAGK           externalapi.KType = 18
	starlightGHOSTDAGK        externalapi.KType = 124
	defaultTargetTimePerBlock                   = 1 * time.Second

	defaultMaxCoinbasePayloadLength                = 204
	defaultCoinbasePayloadScriptPublicKeyMaxLength = 150

	defaultPreDeflationaryPhaseBaseSubsidy = 500 * constants.SompiPerVecno
	defaultDeflationaryPhaseBaseSubsidy    = 440 * constants.SompiPerVecno

	secondsPerYear = 365 * 24 * 60 * 60
)

// Params defines a Vecno network by its parameters. These parameters may be
// used by Vecno applications to differentiate networks as well as addresses
// and keys for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// GenesisBlock defines the first block of the DAG.
	GenesisBlock *externalapi.DomainBlock

	// GenesisHash is the starting block hash.
	GenesisHash *externalapi.DomainHash

	// GHOSTDAGK bounds the anticone size of blue blocks. It is selected by
	// the DAA score of a block's selected parent.
	GHOSTDAGK ForkedParam[externalapi.KType]

	// TargetTimePerBlock is the desired amount of time to generate each
	// block.
	TargetTimePerBlock time.Duration

	// MaxCoinbasePayloadLength is the maximum length in bytes allowed for a block's coinbase's payload
	MaxCoinbasePayloadLength uint64

	// CoinbasePayloadScriptPublicKeyMaxLength is the maximum allowed script public key in the coinbase's payload
	CoinbasePayloadScriptPublicKeyMaxLength uint8

	// PreDeflationaryPhaseBaseSubsidy is the subsidy of every block
	// below DeflationaryPhaseDAAScore.
	PreDeflationaryPhaseBaseSubsidy uint64

	// DeflationaryPhaseDAAScore is the DAA score from which the subsidy
	// starts halving.
	DeflationaryPhaseDAAScore uint64

	// DeflationaryPhaseBaseSubsidy is the subsidy at DeflationaryPhaseDAAScore.
	DeflationaryPhaseBaseSubsidy uint64

	// SubsidyHalvingInterval is the number of DAA scores between two
	// subsidy halvings in the deflationary phase.
	SubsidyHalvingInterval uint64
}

func halvingInterval(targetTimePerBlock time.Duration) uint64 {
	return uint64(secondsPerYear * time.Second / targetTimePerBlock)
}

// MainnetParams defines the network parameters for the main Vecno network.
var MainnetParams = Params{
	Name:                                    "vecno-mainnet",
	GenesisBlock:                            genesisBlock,
	GenesisHash:                             consensushashing.BlockHash(genesisBlock),
	GHOSTDAGK:                               NewForkedParam(legacyGHOSTDAGK, starlightGHOSTDAGK, 96_000_000),
	TargetTimePerBlock:                      defaultTargetTimePerBlock,
	MaxCoinbasePayloadLength:                defaultMaxCoinbasePayloadLength,
	CoinbasePayloadScriptPublicKeyMaxLength: defaultCoinbasePayloadScriptPublicKeyMaxLength,
	PreDeflationaryPhaseBaseSubsidy:         defaultPreDeflationaryPhaseBaseSubsidy,
	DeflationaryPhaseDAAScore:               15_519_600,
	DeflationaryPhaseBaseSubsidy:            defaultDeflationaryPhaseBaseSubsidy,
	SubsidyHalvingInterval:                  halvingInterval(defaultTargetTimePerBlock),
}

// TestnetParams defines the network parameters for the test Vecno network.
var TestnetParams = Params{
	Name:                                    "vecno-testnet",
	GenesisBlock:                            testnetGenesisBlock,
	GenesisHash:                             consensushashing.BlockHash(testnetGenesisBlock),
	GHOSTDAGK:                               NewForkedParam(legacyGHOSTDAGK, starlightGHOSTDAGK, 2_000_000),
	TargetTimePerBlock:                      defaultTargetTimePerBlock,
	MaxCoinbasePayloadLength:                defaultMaxCoinbasePayloadLength,
	CoinbasePayloadScriptPublicKeyMaxLength: defaultCoinbasePayloadScriptPublicKeyMaxLength,
	PreDeflationaryPhaseBaseSubsidy:         defaultPreDeflationaryPhaseBaseSubsidy,
	DeflationaryPhaseDAAScore:               15_519_600,
	DeflationaryPhaseBaseSubsidy:            defaultDeflationaryPhaseBaseSubsidy,
	SubsidyHalvingInterval:                  halvingInterval(defaultTargetTimePerBlock),
}

// SimnetParams defines the network parameters for the simulation test Vecno
// network. This network is similar to the normal test network except it is
// intended for private use within a group of individuals doing simulation
// testing. The functionality is intended to differ in that the only nodes
// which are specifically specified are used to create the network rather than
// following normal discovery rules. This is important as otherwise it would
// just turn into another public testnet.
var SimnetParams = Params{
	Name:                                    "vecno-simnet",
	GenesisBlock:                            simnetGenesisBlock,
	GenesisHash:                             consensushashing.BlockHash(simnetGenesisBlock),
	GHOSTDAGK:                               ConstantForkedParam(legacyGHOSTDAGK),
	TargetTimePerBlock:                      time.Millisecond,
	MaxCoinbasePayloadLength:                defaultMaxCoinbasePayloadLength,
	CoinbasePayloadScriptPublicKeyMaxLength: defaultCoinbasePayloadScriptPublicKeyMaxLength,
	PreDeflationaryPhaseBaseSubsidy:         defaultPreDeflationaryPhaseBaseSubsidy,
	DeflationaryPhaseDAAScore:               100,
	DeflationaryPhaseBaseSubsidy:            defaultDeflationaryPhaseBaseSubsidy,
	SubsidyHalvingInterval:                  1000,
}

// DevnetParams defines the network parameters for the development Vecno network.
var DevnetParams = Params{
	Name:                                    "vecno-devnet",
	GenesisBlock:                            devnetGenesisBlock,
	GenesisHash:                             consensushashing.BlockHash(devnetGenesisBlock),
	GHOSTDAGK:                               NewForkedParam(legacyGHOSTDAGK, starlightGHOSTDAGK, 1000),
	TargetTimePerBlock:                      defaultTargetTimePerBlock,
	MaxCoinbasePayloadLength:                defaultMaxCoinbasePayloadLength,
	CoinbasePayloadScriptPublicKeyMaxLength: defaultCoinbasePayloadScriptPublicKeyMaxLength,
	PreDeflationaryPhaseBaseSubsidy:         defaultPreDeflationaryPhaseBaseSubsidy,
	DeflationaryPhaseDAAScore:               15_519_600,
	DeflationaryPhaseBaseSubsidy:            defaultDeflationaryPhaseBaseSubsidy,
	SubsidyHalvingInterval:                  halvingInterval(defaultTargetTimePerBlock),
}

// ErrUnknownNetwork describes an error where the requested network
// is not one of the registered networks.
var ErrUnknownNetwork = errors.New("unknown network")

var registeredNets = map[string]*Params{
	MainnetParams.Name: &MainnetParams,
	TestnetParams.Name: &TestnetParams,
	SimnetParams.Name:  &SimnetParams,
	DevnetParams.Name:  &DevnetParams,
}

// ParamsByName returns the registered network parameters named name.
func ParamsByName(name string) (*Params, error) {
	params, ok := registeredNets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNetwork, "network %s", name)
	}
	return params, nil
}
