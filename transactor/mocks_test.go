package transactor_test

import (
	"context"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/encoderlee/eosapi/chain"
	"github.com/encoderlee/eosapi/network"
)

var errGeneric = errors.New("dummy error")

type readerMock struct {
	GetInfoFunc func(ctx context.Context) (*network.GetInfoResponse, error)
}

func (r *readerMock) GetInfo(ctx context.Context) (*network.GetInfoResponse, error) {
	return r.GetInfoFunc(ctx)
}

func baselineReader(t *testing.T) *readerMock {
	t.Helper()

	return &readerMock{
		GetInfoFunc: func(context.Context) (*network.GetInfoResponse, error) {
			return &network.GetInfoResponse{
				ChainID:                 testChainID,
				LastIrreversibleBlockID: testBlockID,
			}, nil
		},
	}
}

type resolverMock struct {
	mu    sync.Mutex
	calls []string

	AbiJSONToBinFunc func(ctx context.Context, code chain.AccountName, action chain.ActionName, args map[string]interface{}) ([]byte, error)
}

func (r *resolverMock) AbiJSONToBin(ctx context.Context, code chain.AccountName, action chain.ActionName, args map[string]interface{}) ([]byte, error) {
	r.mu.Lock()
	r.calls = append(r.calls, string(code)+"::"+string(action))
	r.mu.Unlock()
	return r.AbiJSONToBinFunc(ctx, code, action, args)
}

func baselineResolver(t *testing.T) *resolverMock {
	t.Helper()

	binargs, err := hex.DecodeString(testBinArgs)
	require.NoError(t, err)

	return &resolverMock{
		AbiJSONToBinFunc: func(context.Context, chain.AccountName, chain.ActionName, map[string]interface{}) ([]byte, error) {
			return binargs, nil
		},
	}
}

type submitterMock struct {
	PushTransactionFunc func(ctx context.Context, packed *chain.PackedTransaction) (*network.PushTransactionResponse, error)
}

func (s *submitterMock) PushTransaction(ctx context.Context, packed *chain.PackedTransaction) (*network.PushTransactionResponse, error) {
	return s.PushTransactionFunc(ctx, packed)
}

func baselineSubmitter(t *testing.T) *submitterMock {
	t.Helper()

	return &submitterMock{
		PushTransactionFunc: func(context.Context, *chain.PackedTransaction) (*network.PushTransactionResponse, error) {
			return &network.PushTransactionResponse{TransactionID: testID}, nil
		},
	}
}
