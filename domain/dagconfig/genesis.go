package dagconfig

import (
	"math/big"

	"github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/consensushashing"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/subnetworks"
	"github.com/Vecno-Foundation/vecnod/domain/consensus/utils/transactionhelper"
)

func newGenesisBlock(timeInMilliseconds int64, bits uint32, nonce uint64, extraData []byte) *externalapi.DomainBlock {
	payload := []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // Blue score
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // Subsidy
		0x00, 0x00, // Script version
		0x01, // Script length
		0x00, // OP-FALSE
	}
	payload = append(payload, extraData...)

	coinbaseTx := transactionhelper.NewSubnetworkTransaction(0, []*externalapi.DomainTransactionInput{},
		[]*externalapi.DomainTransactionOutput{}, &subnetworks.SubnetworkIDCoinbase, 0, payload)

	return &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			Version:            0,
			ParentHashes:       []*externalapi.DomainHash{},
			HashMerkleRoot:     *consensushashing.TransactionHash(coinbaseTx),
			TimeInMilliseconds: timeInMilliseconds,
			Bits:               bits,
			Nonce:              nonce,
			DAAScore:           0,
			BlueScore:          0,
			BlueWork:           big.NewInt(0),
		},
		Transactions: []*externalapi.DomainTransaction{coinbaseTx},
	}
}

var genesisBlock = newGenesisBlock(1717333200000, 0x1e7fffff, 0x3392c, []byte("vecno-mainnet"))

var testnetGenesisBlock = newGenesisBlock(1717333200000, 0x1e7fffff, 0x14582, []byte("vecno-testnet"))

var simnetGenesisBlock = newGenesisBlock(1717333200000, 0x207fffff, 0x2, []byte("vecno-simnet"))

var devnetGenesisBlock = newGenesisBlock(1717333200000, 0x1e21bc1c, 0x48e5e, []byte("vecno-devnet"))
