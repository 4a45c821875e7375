package externalapi

// DomainCoinbaseData contains data by which a coinbase transaction
// is built
type DomainCoinbaseData struct {
	ScriptPublicKey *ScriptPublicKey
	ExtraData       []byte
}

// DomainCoinbasePayload is the decoded form of a coinbase transaction
// payload: what the miner declares about the block it mined.
type DomainCoinbasePayload struct {
	BlueScore    uint64
	Subsidy      uint64
	CoinbaseData *DomainCoinbaseData
}
