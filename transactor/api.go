package transactor

import (
	"context"

	"github.com/encoderlee/eosapi/chain"
	"github.com/encoderlee/eosapi/crypto"
	"github.com/encoderlee/eosapi/network"
)

// ChainReader returns the reference block and chain id used to link
// transactions.
type ChainReader interface {
	GetInfo(ctx context.Context) (*network.GetInfoResponse, error)
}

// Resolver serializes action data into binary arguments.
type Resolver interface {
	AbiJSONToBin(ctx context.Context, code chain.AccountName, action chain.ActionName, args map[string]interface{}) ([]byte, error)
}

// Submitter sends signed transactions to a node.
type Submitter interface {
	PushTransaction(ctx context.Context, packed *chain.PackedTransaction) (*network.PushTransactionResponse, error)
}

// Keys gives access to signing keys and the optional fee payer.
type Keys interface {
	Lookup(level chain.PermissionLevel) (*crypto.PrivateKey, error)
	Payer() (chain.PermissionLevel, bool)
}
