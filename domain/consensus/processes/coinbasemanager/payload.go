package coinbasemanager

import (
	"encoding/binary"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

var byteOrder = binary.LittleEndian

const (
	uint64Len                  = 8
	uint16Len                  = 2
	lengthOfScriptPubKeyLength = 1

	minPayloadLength = uint64Len + uint64Len + uint16Len + lengthOfScriptPubKeyLength
)

// SerializeCoinbasePayload builds the coinbase payload out of the blue score,
// subsidy, script public key and extra data.
func (c *coinbaseManager) SerializeCoinbasePayload(coinbasePayload *externalapi.DomainCoinbasePayload) ([]byte, error) {
	coinbaseData := coinbasePayload.CoinbaseData
	scriptPubKeyLength := len(coinbaseData.ScriptPublicKey.Script)
	if scriptPubKeyLength > int(c.coinbasePayloadScriptPublicKeyMaxLength) {
		return nil, errors.Wrapf(ruleerrors.ErrBadCoinbasePayloadLen, "coinbase's payload script public key is "+
			"longer than the max allowed length of %d", c.coinbasePayloadScriptPublicKeyMaxLength)
	}

	payloadLength := minPayloadLength + scriptPubKeyLength + len(coinbaseData.ExtraData)
	if uint64(payloadLength) > c.maxCoinbasePayloadLength {
		return nil, errors.Wrapf(ruleerrors.ErrBadCoinbasePayloadLen, "coinbase's payload is %d bytes while "+
			"the max allowed length is %d", payloadLength, c.maxCoinbasePayloadLength)
	}

	payload := make([]byte, 0, payloadLength)
	payload = byteOrder.AppendUint64(payload, coinbasePayload.BlueScore)
	payload = byteOrder.AppendUint64(payload, coinbasePayload.Subsidy)
	payload = byteOrder.AppendUint16(payload, coinbaseData.ScriptPublicKey.Version)
	payload = append(payload, uint8(scriptPubKeyLength))
	payload = append(payload, coinbaseData.ScriptPublicKey.Script...)
	payload = append(payload, coinbaseData.ExtraData...)
	return payload, nil
}

// ExtractCoinbasePayload deserializes the coinbase payload to its components.
// All failures are ErrBadCoinbasePayloadLen.
func (c *coinbaseManager) ExtractCoinbasePayload(coinbaseTx *externalapi.DomainTransaction) (
	*externalapi.DomainCoinbasePayload, error) {

	payload := coinbaseTx.Payload
	if uint64(len(payload)) > c.maxCoinbasePayloadLength {
		return nil, errors.Wrapf(ruleerrors.ErrBadCoinbasePayloadLen,
			"coinbase payload is longer than the max allowed length of %d", c.maxCoinbasePayloadLength)
	}
	if len(payload) < minPayloadLength {
		return nil, errors.Wrapf(ruleerrors.ErrBadCoinbasePayloadLen,
			"coinbase payload is less than the minimum length of %d", minPayloadLength)
	}

	blueScore := byteOrder.Uint64(payload[:uint64Len])
	subsidy := byteOrder.Uint64(payload[uint64Len : 2*uint64Len])
	scriptPubKeyVersion := byteOrder.Uint16(payload[2*uint64Len : 2*uint64Len+uint16Len])
	scriptPubKeyLength := payload[2*uint64Len+uint16Len]

	if scriptPubKeyLength > c.coinbasePayloadScriptPublicKeyMaxLength {
		return nil, errors.Wrapf(ruleerrors.ErrBadCoinbasePayloadLen, "coinbase's payload script public key is "+
			"longer than the max allowed length of %d", c.coinbasePayloadScriptPublicKeyMaxLength)
	}

	scriptPubKeyEnd := minPayloadLength + int(scriptPubKeyLength)
	if len(payload) < scriptPubKeyEnd {
		return nil, errors.Wrapf(ruleerrors.ErrBadCoinbasePayloadLen,
			"coinbase payload doesn't have enough bytes to contain a script public key of %d bytes", scriptPubKeyLength)
	}

	return &externalapi.DomainCoinbasePayload{
		BlueScore: blueScore,
		Subsidy:   subsidy,
		CoinbaseData: &externalapi.DomainCoinbaseData{
			ScriptPublicKey: &externalapi.ScriptPublicKey{
				Script:  payload[minPayloadLength:scriptPubKeyEnd],
				Version: scriptPubKeyVersion,
			},
			ExtraData: payload[scriptPubKeyEnd:],
		},
	}, nil
}
