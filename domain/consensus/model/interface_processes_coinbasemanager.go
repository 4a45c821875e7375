package model

import "github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"

// CoinbaseManager exposes methods for handling blocks'
// coinbase transactions
type CoinbaseManager interface {
	SerializeCoinbasePayload(payload *externalapi.DomainCoinbasePayload) ([]byte, error)
	ExtractCoinbasePayload(coinbaseTx *externalapi.DomainTransaction) (*externalapi.DomainCoinbasePayload, error)
	CalcBlockSubsidy(daaScore uint64) uint64
}
