package consensushashing

import (
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/hashes"
)

// BlockHash returns the given block's hash
func BlockHash(block *externalapi.DomainBlock) *externalapi.DomainHash {
	return HeaderHash(block.Header)
}

// HeaderHash returns the given header's hash
func HeaderHash(header *externalapi.DomainBlockHeader) *externalapi.DomainHash {
	writer := &hashWriter{HashWriter: hashes.NewBlockHashWriter()}

	writer.writeUint16(header.Version)
	writer.writeUint64(uint64(len(header.ParentHashes)))
	for _, parent := range header.ParentHashes {
		writer.writeHash(parent)
	}
	writer.writeHash(&header.HashMerkleRoot)
	writer.writeUint64(uint64(header.TimeInMilliseconds))
	writer.writeUint32(header.Bits)
	writer.writeUint64(header.Nonce)
	writer.writeUint64(header.DAAScore)
	writer.writeUint64(header.BlueScore)
	var blueWork []byte
	if header.BlueWork != nil {
		blueWork = header.BlueWork.Bytes()
	}
	writer.writeBytes(blueWork)

	return writer.Finalize()
}
