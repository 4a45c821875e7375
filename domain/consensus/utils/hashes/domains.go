package hashes

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	transcationHashDomain = "TransactionHash"
	transcationIDDomain   = "TransactionID"
	blockDomain           = "BlockHash"
)

func newKeyedWriter(domain string) HashWriter {
	blake, err := blake2b.New256([]byte(domain))
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. %s is less than 64 bytes", domain))
	}
	return HashWriter{blake}
}

// NewTransactionHashWriter Returns a new HashWriter used for transaction hashes
func NewTransactionHashWriter() HashWriter {
	return newKeyedWriter(transcationHashDomain)
}

// NewTransactionIDWriter Returns a new HashWriter used for transaction IDs
func NewTransactionIDWriter() HashWriter {
	return newKeyedWriter(transcationIDDomain)
}

// NewBlockHashWriter Returns a new HashWriter used for hashing blocks
func NewBlockHashWriter() HashWriter {
	return newKeyedWriter(blockDomain)
}
