package externalapi

// TrustedHeader is a header that arrives during IBD together with the
// GHOSTDAG data the sending peer computed for it.
type TrustedHeader struct {
	Header       *DomainBlockHeader
	GHOSTDAGData *BlockGHOSTDAGData
}

// TrustedGHOSTDAGData is GHOSTDAG data keyed by the hash of the block it
// belongs to.
type TrustedGHOSTDAGData struct {
	Hash         *DomainHash
	GHOSTDAGData *BlockGHOSTDAGData
}

// TrustedBlock is a block paired with its trusted GHOSTDAG data. Blocks
// built out of a header alone carry no transactions.
type TrustedBlock struct {
	Block        *DomainBlock
	GHOSTDAGData *BlockGHOSTDAGData
}
