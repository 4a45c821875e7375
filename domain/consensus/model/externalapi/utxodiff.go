package externalapi

// UTXOCollection is a set of UTXO entries indexed by their outpoint
type UTXOCollection map[DomainOutpoint]UTXOEntry

// UTXODiff is the set of entries added to and removed from a UTXO set
// by a single state transition. It is applied as one unit.
type UTXODiff struct {
	ToAdd    UTXOCollection
	ToRemove UTXOCollection
}

// NewUTXODiff returns an empty UTXODiff
func NewUTXODiff() *UTXODiff {
	return &UTXODiff{
		ToAdd:    UTXOCollection{},
		ToRemove: UTXOCollection{},
	}
}
