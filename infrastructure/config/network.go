package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/dagconfig"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet               bool   `long:"testnet" description:"Use the test network"`
	Simnet                bool   `long:"simnet" description:"Use the simulation test network"`
	Devnet                bool   `long:"devnet" description:"Use the development test network"`
	OverrideDAGParamsFile string `long:"override-dag-params-file" description:"Overrides DAG params (allowed only on devnet)"`

	ActiveNetParams *dagconfig.Params
}

type overrideDAGParamsConfig struct {
	K                                       *externalapi.KType `json:"k"`
	KAfterActivation                        *externalapi.KType `json:"kAfterActivation"`
	KActivationDAAScore                     *uint64            `json:"kActivationDAAScore"`
	MaxCoinbasePayloadLength                *uint64            `json:"maxCoinbasePayloadLength"`
	CoinbasePayloadScriptPublicKeyMaxLength *uint8             `json:"coinbasePayloadScriptPublicKeyMaxLength"`
	PreDeflationaryPhaseBaseSubsidy         *uint64            `json:"preDeflationaryPhaseBaseSubsidy"`
	DeflationaryPhaseDAAScore               *uint64            `json:"deflationaryPhaseDAAScore"`
	DeflationaryPhaseBaseSubsidy            *uint64            `json:"deflationaryPhaseBaseSubsidy"`
	SubsidyHalvingInterval                  *uint64            `json:"subsidyHalvingInterval"`
	TargetTimePerBlockInMilliSeconds        *int64             `json:"targetTimePerBlockInMilliSeconds"`
}

// ResolveNetwork parses the network command line argument and sets NetParams accordingly.
// It returns error if more than one network was selected, nil otherwise.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	// The selected params are copied so that overrides never leak into the
	// package-level network definitions.
	activeNetParams := dagconfig.MainnetParams
	numNets := 0
	if networkFlags.Testnet {
		numNets++
		activeNetParams = dagconfig.TestnetParams
	}
	if networkFlags.Simnet {
		numNets++
		activeNetParams = dagconfig.SimnetParams
	}
	if networkFlags.Devnet {
		numNets++
		activeNetParams = dagconfig.DevnetParams
	}
	if numNets > 1 {
		message := "Multiple networks parameters (testnet, simnet, devnet, etc.) cannot be used " +
			"together. Please choose only one network"
		err := errors.New(message)
		if parser != nil {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
		}
		return err
	}
	networkFlags.ActiveNetParams = &activeNetParams

	err := networkFlags.overrideDAGParams()
	if err != nil {
		return err
	}

	return nil
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *dagconfig.Params {
	return networkFlags.ActiveNetParams
}

func (networkFlags *NetworkFlags) overrideDAGParams() error {
	if networkFlags.OverrideDAGParamsFile == "" {
		return nil
	}

	if !networkFlags.Devnet {
		return errors.Errorf("override-dag-params-file is allowed only when using devnet")
	}

	overrideDAGParamsFile, err := os.Open(networkFlags.OverrideDAGParamsFile)
	if err != nil {
		return errors.WithStack(err)
	}
	defer overrideDAGParamsFile.Close()

	decoder := json.NewDecoder(overrideDAGParamsFile)
	decoder.DisallowUnknownFields()
	config := &overrideDAGParamsConfig{}
	err = decoder.Decode(config)
	if err != nil {
		return errors.Wrapf(err, "couldn't parse %s", networkFlags.OverrideDAGParamsFile)
	}

	params := networkFlags.ActiveNetParams

	if config.K != nil || config.KAfterActivation != nil || config.KActivationDAAScore != nil {
		before := params.GHOSTDAGK.Before()
		if config.K != nil {
			before = *config.K
		}
		after := before
		activationDAAScore := params.GHOSTDAGK.ActivationDAAScore()
		if config.KAfterActivation != nil {
			after = *config.KAfterActivation
		} else if config.K == nil {
			after = params.GHOSTDAGK.After()
		}
		if config.KActivationDAAScore != nil {
			activationDAAScore = *config.KActivationDAAScore
		}
		params.GHOSTDAGK = dagconfig.NewForkedParam(before, after, activationDAAScore)
	}

	if config.MaxCoinbasePayloadLength != nil {
		params.MaxCoinbasePayloadLength = *config.MaxCoinbasePayloadLength
	}

	if config.CoinbasePayloadScriptPublicKeyMaxLength != nil {
		params.CoinbasePayloadScriptPublicKeyMaxLength = *config.CoinbasePayloadScriptPublicKeyMaxLength
	}

	if config.PreDeflationaryPhaseBaseSubsidy != nil {
		params.PreDeflationaryPhaseBaseSubsidy = *config.PreDeflationaryPhaseBaseSubsidy
	}

	if config.DeflationaryPhaseDAAScore != nil {
		params.DeflationaryPhaseDAAScore = *config.DeflationaryPhaseDAAScore
	}

	if config.DeflationaryPhaseBaseSubsidy != nil {
		params.DeflationaryPhaseBaseSubsidy = *config.DeflationaryPhaseBaseSubsidy
	}

	if config.SubsidyHalvingInterval != nil {
		if *config.SubsidyHalvingInterval == 0 {
			return errors.Errorf("subsidyHalvingInterval must be positive")
		}
		params.SubsidyHalvingInterval = *config.SubsidyHalvingInterval
	}

	if config.TargetTimePerBlockInMilliSeconds != nil {
		if *config.TargetTimePerBlockInMilliSeconds <= 0 {
			return errors.Errorf("targetTimePerBlockInMilliSeconds must be positive")
		}
		params.TargetTimePerBlock = time.Duration(*config.TargetTimePerBlockInMilliSeconds) * time.Millisecond
	}

	return nil
}
