package externalapi

import "math/big"

// DomainBlock represents a Vecno block
type DomainBlock struct {
	Header       *DomainBlockHeader
	Transactions []*DomainTransaction
}

// Clone returns a clone of DomainBlock
func (block *DomainBlock) Clone() *DomainBlock {
	transactionClone := make([]*DomainTransaction, len(block.Transactions))
	for i, tx := range block.Transactions {
		transactionClone[i] = tx.Clone()
	}

	return &DomainBlock{
		Header:       block.Header.Clone(),
		Transactions: transactionClone,
	}
}

// Equal returns whether block equals to other
func (block *DomainBlock) Equal(other *DomainBlock) bool {
	if block == nil || other == nil {
		return block == other
	}

	if len(block.Transactions) != len(other.Transactions) {
		return false
	}

	if !block.Header.Equal(other.Header) {
		return false
	}

	for i, tx := range block.Transactions {
		if !tx.Equal(other.Transactions[i]) {
			return false
		}
	}

	return true
}

// DomainBlockHeader represents the header part of a Vecno block
type DomainBlockHeader struct {
	Version            uint16
	ParentHashes       []*DomainHash
	HashMerkleRoot     DomainHash
	TimeInMilliseconds int64
	Bits               uint32
	Nonce              uint64
	DAAScore           uint64
	BlueScore          uint64
	BlueWork           *big.Int
}

// DirectParents returns the parents the block points to directly.
func (header *DomainBlockHeader) DirectParents() []*DomainHash {
	return header.ParentHashes
}

// Clone returns a clone of DomainBlockHeader
func (header *DomainBlockHeader) Clone() *DomainBlockHeader {
	var blueWork *big.Int
	if header.BlueWork != nil {
		blueWork = new(big.Int).Set(header.BlueWork)
	}
	return &DomainBlockHeader{
		Version:            header.Version,
		ParentHashes:       CloneHashes(header.ParentHashes),
		HashMerkleRoot:     header.HashMerkleRoot,
		TimeInMilliseconds: header.TimeInMilliseconds,
		Bits:               header.Bits,
		Nonce:              header.Nonce,
		DAAScore:           header.DAAScore,
		BlueScore:          header.BlueScore,
		BlueWork:           blueWork,
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainBlockHeader{0, []*DomainHash{}, DomainHash{}, 0, 0, 0, 0, 0, big.NewInt(0)}

// Equal returns whether header equals to other
func (header *DomainBlockHeader) Equal(other *DomainBlockHeader) bool {
	if header == nil || other == nil {
		return header == other
	}

	if header.Version != other.Version {
		return false
	}

	if !HashesEqual(header.ParentHashes, other.ParentHashes) {
		return false
	}

	if !header.HashMerkleRoot.Equal(&other.HashMerkleRoot) {
		return false
	}

	if header.TimeInMilliseconds != other.TimeInMilliseconds {
		return false
	}

	if header.Bits != other.Bits {
		return false
	}

	if header.Nonce != other.Nonce {
		return false
	}

	if header.DAAScore != other.DAAScore {
		return false
	}

	if header.BlueScore != other.BlueScore {
		return false
	}

	return bigIntsEqual(header.BlueWork, other.BlueWork)
}

func bigIntsEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}
