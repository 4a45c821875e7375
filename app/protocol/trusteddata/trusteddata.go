package trusteddata

import (
	"math/big"
	"sort"

	"github.com/Vecno-Foundation/vecnod/app/protocol/protocolerrors"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

// ErrMissingGHOSTDAGData is the cause of the protocol error returned when
// a trusted block arrives without GHOSTDAG data for it.
var ErrMissingGHOSTDAGData = errors.New("missing GHOSTDAG data")

// TrustedDataPackage is the trusted data a syncer sends during IBD ahead of
// the pruning point and its anticone.
type TrustedDataPackage struct {
	DAAWindow      []*externalapi.TrustedHeader
	GHOSTDAGWindow []*externalapi.TrustedGHOSTDAGData
}

// NewTrustedDataPackage returns a new TrustedDataPackage
func NewTrustedDataPackage(daaWindow []*externalapi.TrustedHeader,
	ghostdagWindow []*externalapi.TrustedGHOSTDAGData) *TrustedDataPackage {

	return &TrustedDataPackage{
		DAAWindow:      daaWindow,
		GHOSTDAGWindow: ghostdagWindow,
	}
}

// BuildTrustedSubDAG pairs each of the given blocks and each DAA window
// header with its GHOSTDAG data, restricts all GHOSTDAG references to the
// returned blocks and returns them ordered by blue work.
//
// Blocks built out of DAA window headers carry no transactions.
func (p *TrustedDataPackage) BuildTrustedSubDAG(entries []*externalapi.DomainBlock) ([]*externalapi.TrustedBlock, error) {
	ghostdagDataByHash := make(map[externalapi.DomainHash]*externalapi.BlockGHOSTDAGData,
		len(p.GHOSTDAGWindow)+len(p.DAAWindow))
	for _, ghostdagData := range p.GHOSTDAGWindow {
		ghostdagDataByHash[*ghostdagData.Hash] = ghostdagData.GHOSTDAGData
	}
	// DAA window entries override GHOSTDAG window entries of the same hash.
	// Walking backwards lets the first DAA window entry of a hash win.
	for i := len(p.DAAWindow) - 1; i >= 0; i-- {
		daaHeader := p.DAAWindow[i]
		ghostdagDataByHash[*consensushashing.HeaderHash(daaHeader.Header)] = daaHeader.GHOSTDAGData
	}

	seen := make(map[externalapi.DomainHash]struct{}, len(entries)+len(p.DAAWindow))
	trustedBlocks := make([]*externalapi.TrustedBlock, 0, len(entries)+len(p.DAAWindow))
	for _, block := range entries {
		blockHash := consensushashing.BlockHash(block)
		if _, ok := seen[*blockHash]; ok {
			continue
		}
		seen[*blockHash] = struct{}{}

		ghostdagData, ok := ghostdagDataByHash[*blockHash]
		if !ok || ghostdagData == nil {
			return nil, protocolerrors.Wrapf(true, ErrMissingGHOSTDAGData, "block %s", blockHash)
		}
		trustedBlocks = append(trustedBlocks, &externalapi.TrustedBlock{Block: block, GHOSTDAGData: ghostdagData})
	}

	for _, daaHeader := range p.DAAWindow {
		headerHash := consensushashing.HeaderHash(daaHeader.Header)
		if _, ok := seen[*headerHash]; ok {
			continue
		}
		seen[*headerHash] = struct{}{}

		ghostdagData := daaHeader.GHOSTDAGData
		if ghostdagData == nil {
			return nil, protocolerrors.Wrapf(true, ErrMissingGHOSTDAGData, "DAA window header %s", headerHash)
		}
		trustedBlocks = append(trustedBlocks, &externalapi.TrustedBlock{
			Block:        &externalapi.DomainBlock{Header: daaHeader.Header},
			GHOSTDAGData: ghostdagData,
		})
	}

	for _, trustedBlock := range trustedBlocks {
		trustedBlock.GHOSTDAGData = restrictGHOSTDAGData(trustedBlock.GHOSTDAGData, seen)
	}

	sort.SliceStable(trustedBlocks, func(i, j int) bool {
		return blueWork(trustedBlocks[i]).Cmp(blueWork(trustedBlocks[j])) < 0
	})

	log.Debugf("Built a trusted sub-DAG of %d blocks out of %d entries and %d DAA window headers",
		len(trustedBlocks), len(entries), len(p.DAAWindow))
	return trustedBlocks, nil
}

// restrictGHOSTDAGData returns a copy of ghostdagData that references only
// blocks in known. A selected parent outside of known is replaced with the
// origin.
func restrictGHOSTDAGData(ghostdagData *externalapi.BlockGHOSTDAGData,
	known map[externalapi.DomainHash]struct{}) *externalapi.BlockGHOSTDAGData {

	selectedParent := externalapi.OriginHash
	if ghostdagData.SelectedParent() != nil {
		if _, ok := known[*ghostdagData.SelectedParent()]; ok {
			selectedParent = ghostdagData.SelectedParent()
		}
	}

	bluesAnticoneSizes := make(map[externalapi.DomainHash]externalapi.KType, len(ghostdagData.BluesAnticoneSizes()))
	for hash, size := range ghostdagData.BluesAnticoneSizes() {
		if _, ok := known[hash]; ok {
			bluesAnticoneSizes[hash] = size
		}
	}

	return externalapi.NewBlockGHOSTDAGData(
		ghostdagData.BlueScore(),
		ghostdagData.BlueWork(),
		selectedParent,
		filterHashes(ghostdagData.MergeSetBlues(), known),
		filterHashes(ghostdagData.MergeSetReds(), known),
		bluesAnticoneSizes,
	)
}

func filterHashes(hashes []*externalapi.DomainHash, known map[externalapi.DomainHash]struct{}) []*externalapi.DomainHash {
	filtered := make([]*externalapi.DomainHash, 0, len(hashes))
	for _, hash := range hashes {
		if _, ok := known[*hash]; ok {
			filtered = append(filtered, hash)
		}
	}
	return filtered
}

func blueWork(trustedBlock *externalapi.TrustedBlock) *big.Int {
	if trustedBlock.Block.Header.BlueWork == nil {
		return big.NewInt(0)
	}
	return trustedBlock.Block.Header.BlueWork
}
