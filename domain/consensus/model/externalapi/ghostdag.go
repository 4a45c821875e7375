package externalapi

import (
	"math/big"
)

// BlockGHOSTDAGData represents GHOSTDAG data for some block
type BlockGHOSTDAGData struct {
	blueScore          uint64
	blueWork           *big.Int
	selectedParent     *DomainHash
	mergeSetBlues      []*DomainHash
	mergeSetReds       []*DomainHash
	bluesAnticoneSizes map[DomainHash]KType
}

// NewBlockGHOSTDAGData creates a new instance of BlockGHOSTDAGData
func NewBlockGHOSTDAGData(
	blueScore uint64,
	blueWork *big.Int,
	selectedParent *DomainHash,
	mergeSetBlues []*DomainHash,
	mergeSetReds []*DomainHash,
	bluesAnticoneSizes map[DomainHash]KType) *BlockGHOSTDAGData {

	return &BlockGHOSTDAGData{
		blueScore:          blueScore,
		blueWork:           blueWork,
		selectedParent:     selectedParent,
		mergeSetBlues:      mergeSetBlues,
		mergeSetReds:       mergeSetReds,
		bluesAnticoneSizes: bluesAnticoneSizes,
	}
}

// BlueScore returns the BlueScore of the block
func (bgd *BlockGHOSTDAGData) BlueScore() uint64 {
	return bgd.blueScore
}

// BlueWork returns the BlueWork of the block
func (bgd *BlockGHOSTDAGData) BlueWork() *big.Int {
	return bgd.blueWork
}

// SelectedParent returns the SelectedParent of the block
func (bgd *BlockGHOSTDAGData) SelectedParent() *DomainHash {
	return bgd.selectedParent
}

// MergeSetBlues returns the MergeSetBlues of the block (not a copy)
func (bgd *BlockGHOSTDAGData) MergeSetBlues() []*DomainHash {
	return bgd.mergeSetBlues
}

// MergeSetReds returns the MergeSetReds of the block (not a copy)
func (bgd *BlockGHOSTDAGData) MergeSetReds() []*DomainHash {
	return bgd.mergeSetReds
}

// BluesAnticoneSizes returns a map between the blocks in its MergeSetBlues and the size of their anticone
func (bgd *BlockGHOSTDAGData) BluesAnticoneSizes() map[DomainHash]KType {
	return bgd.bluesAnticoneSizes
}

// MergeSet returns the whole MergeSet of the block (equivalent to MergeSetBlues+MergeSetReds)
func (bgd *BlockGHOSTDAGData) MergeSet() []*DomainHash {
	mergeSet := make([]*DomainHash, len(bgd.mergeSetBlues)+len(bgd.mergeSetReds))
	copy(mergeSet, bgd.mergeSetBlues)
	if len(bgd.mergeSetReds) > 0 {
		copy(mergeSet[len(bgd.mergeSetBlues):], bgd.mergeSetReds)
	}
	return mergeSet
}

// Equal returns whether bgd equals to other
func (bgd *BlockGHOSTDAGData) Equal(other *BlockGHOSTDAGData) bool {
	if bgd == nil || other == nil {
		return bgd == other
	}

	if bgd.blueScore != other.blueScore ||
		!bigIntsEqual(bgd.blueWork, other.blueWork) ||
		!bgd.selectedParent.Equal(other.selectedParent) ||
		!HashesEqual(bgd.mergeSetBlues, other.mergeSetBlues) ||
		!HashesEqual(bgd.mergeSetReds, other.mergeSetReds) ||
		len(bgd.bluesAnticoneSizes) != len(other.bluesAnticoneSizes) {
		return false
	}

	for hash, size := range bgd.bluesAnticoneSizes {
		otherSize, ok := other.bluesAnticoneSizes[hash]
		if !ok || otherSize != size {
			return false
		}
	}
	return true
}
