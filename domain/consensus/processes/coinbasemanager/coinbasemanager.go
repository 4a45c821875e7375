package coinbasemanager

import (
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model"
)

type coinbaseManager struct {
	maxCoinbasePayloadLength                uint64
	coinbasePayloadScriptPublicKeyMaxLength uint8
	preDeflationaryPhaseBaseSubsidy         uint64
	deflationaryPhaseDAAScore               uint64
	deflationaryPhaseBaseSubsidy            uint64
	subsidyHalvingInterval                  uint64
}

// New instantiates a new CoinbaseManager
func New(
	maxCoinbasePayloadLength uint64,
	coinbasePayloadScriptPublicKeyMaxLength uint8,
	preDeflationaryPhaseBaseSubsidy uint64,
	deflationaryPhaseDAAScore uint64,
	deflationaryPhaseBaseSubsidy uint64,
	subsidyHalvingInterval uint64) model.CoinbaseManager {

	return &coinbaseManager{
		maxCoinbasePayloadLength:                maxCoinbasePayloadLength,
		coinbasePayloadScriptPublicKeyMaxLength: coinbasePayloadScriptPublicKeyMaxLength,
		preDeflationaryPhaseBaseSubsidy:         preDeflationaryPhaseBaseSubsidy,
		deflationaryPhaseDAAScore:               deflationaryPhaseDAAScore,
		deflationaryPhaseBaseSubsidy:            deflationaryPhaseBaseSubsidy,
		subsidyHalvingInterval:                  subsidyHalvingInterval,
	}
}

// CalcBlockSubsidy returns the subsidy amount a block at the provided DAA
// score should have. Before the deflationary phase every block gets the
// same subsidy. From then on the subsidy halves every subsidyHalvingInterval
// DAA scores until it reaches zero.
func (c *coinbaseManager) CalcBlockSubsidy(daaScore uint64) uint64 {
	if daaScore < c.deflationaryPhaseDAAScore {
		return c.preDeflationaryPhaseBaseSubsidy
	}
	if c.subsidyHalvingInterval == 0 {
		return c.deflationaryPhaseBaseSubsidy
	}

	halvings := (daaScore - c.deflationaryPhaseDAAScore) / c.subsidyHalvingInterval
	if halvings >= 64 {
		return 0
	}
	return c.deflationaryPhaseBaseSubsidy >> halvings
}
