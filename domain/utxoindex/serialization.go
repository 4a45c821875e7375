package utxoindex

import (
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/utxo"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	outpointTransactionIDField protowire.Number = 1
	outpointIndexField         protowire.Number = 2

	utxoEntryAmountField                 protowire.Number = 1
	utxoEntryScriptPublicKeyVersionField protowire.Number = 2
	utxoEntryScriptPublicKeyScriptField  protowire.Number = 3
	utxoEntryBlockDAAScoreField          protowire.Number = 4
	utxoEntryIsCoinbaseField             protowire.Number = 5

	hashesHashField protowire.Number = 1

	circulatingSupplyField protowire.Number = 1
)

var bucketSeparator = byte('/')

// scriptPublicKeyBucketName is length-prefixed so that no script public
// key bucket is a prefix of another.
func scriptPublicKeyBucketName(scriptPublicKeyString ScriptPublicKeyString) []byte {
	return protowire.AppendBytes(nil, []byte(scriptPublicKeyString))
}

// splitUTXOKeySuffix splits a key suffix relative to the utxos bucket into
// its script public key and serialized outpoint.
func splitUTXOKeySuffix(suffix []byte) (ScriptPublicKeyString, []byte, error) {
	scriptPublicKeyBytes, n := protowire.ConsumeBytes(suffix)
	if n < 0 {
		return "", nil, errors.Wrap(protowire.ParseError(n), "malformed UTXO key")
	}
	if len(suffix) <= n || suffix[n] != bucketSeparator {
		return "", nil, errors.Errorf("malformed UTXO key %x", suffix)
	}
	return ScriptPublicKeyString(scriptPublicKeyBytes), suffix[n+1:], nil
}

func serializeOutpoint(outpoint *externalapi.DomainOutpoint) []byte {
	serialized := protowire.AppendTag(nil, outpointTransactionIDField, protowire.BytesType)
	serialized = protowire.AppendBytes(serialized, outpoint.TransactionID.ByteSlice())
	serialized = protowire.AppendTag(serialized, outpointIndexField, protowire.VarintType)
	serialized = protowire.AppendVarint(serialized, uint64(outpoint.Index))
	return serialized
}

func deserializeOutpoint(serializedOutpoint []byte) (*externalapi.DomainOutpoint, error) {
	var transactionIDBytes []byte
	var index uint64
	err := consumeFields(serializedOutpoint, func(number protowire.Number, fieldType protowire.Type, data []byte) (int, error) {
		switch {
		case number == outpointTransactionIDField && fieldType == protowire.BytesType:
			value, n := protowire.ConsumeBytes(data)
			transactionIDBytes = value
			return n, nil
		case number == outpointIndexField && fieldType == protowire.VarintType:
			value, n := protowire.ConsumeVarint(data)
			index = value
			return n, nil
		}
		return protowire.ConsumeFieldValue(number, fieldType, data), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "malformed outpoint")
	}

	transactionID, err := externalapi.NewDomainTransactionIDFromByteSlice(transactionIDBytes)
	if err != nil {
		return nil, err
	}
	if index > uint64(^uint32(0)) {
		return nil, errors.Errorf("outpoint index %d overflows uint32", index)
	}
	return externalapi.NewDomainOutpoint(transactionID, uint32(index)), nil
}

func serializeUTXOEntry(utxoEntry externalapi.UTXOEntry) []byte {
	serialized := protowire.AppendTag(nil, utxoEntryAmountField, protowire.VarintType)
	serialized = protowire.AppendVarint(serialized, utxoEntry.Amount())
	serialized = protowire.AppendTag(serialized, utxoEntryScriptPublicKeyVersionField, protowire.VarintType)
	serialized = protowire.AppendVarint(serialized, uint64(utxoEntry.ScriptPublicKey().Version))
	serialized = protowire.AppendTag(serialized, utxoEntryScriptPublicKeyScriptField, protowire.BytesType)
	serialized = protowire.AppendBytes(serialized, utxoEntry.ScriptPublicKey().Script)
	serialized = protowire.AppendTag(serialized, utxoEntryBlockDAAScoreField, protowire.VarintType)
	serialized = protowire.AppendVarint(serialized, utxoEntry.BlockDAAScore())
	serialized = protowire.AppendTag(serialized, utxoEntryIsCoinbaseField, protowire.VarintType)
	serialized = protowire.AppendVarint(serialized, protowire.EncodeBool(utxoEntry.IsCoinbase()))
	return serialized
}

func deserializeUTXOEntry(serializedUTXOEntry []byte) (externalapi.UTXOEntry, error) {
	var amount, version, blockDAAScore uint64
	var script []byte
	var isCoinbase bool
	err := consumeFields(serializedUTXOEntry, func(number protowire.Number, fieldType protowire.Type, data []byte) (int, error) {
		if fieldType == protowire.BytesType && number == utxoEntryScriptPublicKeyScriptField {
			value, n := protowire.ConsumeBytes(data)
			script = append([]byte(nil), value...)
			return n, nil
		}
		if fieldType != protowire.VarintType {
			return protowire.ConsumeFieldValue(number, fieldType, data), nil
		}

		value, n := protowire.ConsumeVarint(data)
		switch number {
		case utxoEntryAmountField:
			amount = value
		case utxoEntryScriptPublicKeyVersionField:
			if value > uint64(^uint16(0)) {
				return 0, errors.Errorf("script public key version %d overflows uint16", value)
			}
			version = value
		case utxoEntryBlockDAAScoreField:
			blockDAAScore = value
		case utxoEntryIsCoinbaseField:
			isCoinbase = protowire.DecodeBool(value)
		}
		return n, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "malformed UTXO entry")
	}

	scriptPublicKey := &externalapi.ScriptPublicKey{Script: script, Version: uint16(version)}
	return utxo.NewUTXOEntry(amount, scriptPublicKey, isCoinbase, blockDAAScore), nil
}

func serializeHashes(hashes []*externalapi.DomainHash) []byte {
	var serialized []byte
	for _, hash := range hashes {
		serialized = protowire.AppendTag(serialized, hashesHashField, protowire.BytesType)
		serialized = protowire.AppendBytes(serialized, hash.ByteSlice())
	}
	return serialized
}

func deserializeHashes(serializedHashes []byte) ([]*externalapi.DomainHash, error) {
	hashes := make([]*externalapi.DomainHash, 0)
	err := consumeFields(serializedHashes, func(number protowire.Number, fieldType protowire.Type, data []byte) (int, error) {
		if number != hashesHashField || fieldType != protowire.BytesType {
			return protowire.ConsumeFieldValue(number, fieldType, data), nil
		}
		value, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return n, nil
		}
		hash, err := externalapi.NewDomainHashFromByteSlice(value)
		if err != nil {
			return 0, err
		}
		hashes = append(hashes, hash)
		return n, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "malformed hashes")
	}
	return hashes, nil
}

func serializeCirculatingSupply(circulatingSupply uint64) []byte {
	serialized := protowire.AppendTag(nil, circulatingSupplyField, protowire.VarintType)
	return protowire.AppendVarint(serialized, circulatingSupply)
}

func deserializeCirculatingSupply(serializedCirculatingSupply []byte) (uint64, error) {
	var circulatingSupply uint64
	err := consumeFields(serializedCirculatingSupply, func(number protowire.Number, fieldType protowire.Type, data []byte) (int, error) {
		if number != circulatingSupplyField || fieldType != protowire.VarintType {
			return protowire.ConsumeFieldValue(number, fieldType, data), nil
		}
		value, n := protowire.ConsumeVarint(data)
		circulatingSupply = value
		return n, nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "malformed circulating supply")
	}
	return circulatingSupply, nil
}

// consumeFields walks the fields of a protobuf wire encoded message.
// consumeField returns the number of bytes of data it consumed, or a
// negative protowire error code.
func consumeFields(serialized []byte,
	consumeField func(number protowire.Number, fieldType protowire.Type, data []byte) (int, error)) error {

	for len(serialized) > 0 {
		number, fieldType, n := protowire.ConsumeTag(serialized)
		if n < 0 {
			return protowire.ParseError(n)
		}
		serialized = serialized[n:]

		n, err := consumeField(number, fieldType, serialized)
		if err != nil {
			return err
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		serialized = serialized[n:]
	}
	return nil
}
