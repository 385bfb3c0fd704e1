package network

import (
	"encoding/json"

	"github.com/encoderlee/eosapi/chain"
)

type GetInfoResponse struct {
	ServerVersion            string `json:"server_version"`
	ChainID                  string `json:"chain_id"`
	HeadBlockNum             uint32 `json:"head_block_num"`
	LastIrreversibleBlockNum uint32 `json:"last_irreversible_block_num"`
	LastIrreversibleBlockID  string `json:"last_irreversible_block_id"`
	HeadBlockID              string `json:"head_block_id"`
	HeadBlockTime            string `json:"head_block_time"`
	HeadBlockProducer        string `json:"head_block_producer"`
	VirtualBlockCPULimit     uint64 `json:"virtual_block_cpu_limit"`
	VirtualBlockNetLimit     uint64 `json:"virtual_block_net_limit"`
	BlockCPULimit            uint64 `json:"block_cpu_limit"`
	BlockNetLimit            uint64 `json:"block_net_limit"`
	ServerVersionString      string `json:"server_version_string,omitempty"`
}

type AbiJSONToBinRequest struct {
	Code   chain.AccountName      `json:"code"`
	Action chain.ActionName       `json:"action"`
	Args   map[string]interface{} `json:"args"`
}

type AbiJSONToBinResponse struct {
	BinArgs *chain.HexBytes `json:"binargs"`
}

// PushTransactionResponse keeps the processed trace raw; its shape depends
// on the contracts that ran.
type PushTransactionResponse struct {
	TransactionID string          `json:"transaction_id"`
	Processed     json.RawMessage `json:"processed"`
}

type GetTableRowsRequest struct {
	Code          chain.AccountName `json:"code"`
	Scope         string            `json:"scope"`
	Table         chain.Name        `json:"table"`
	JSON          bool              `json:"json"`
	LowerBound    string            `json:"lower_bound,omitempty"`
	UpperBound    string            `json:"upper_bound,omitempty"`
	Limit         uint32            `json:"limit,omitempty"`
	KeyType       string            `json:"key_type,omitempty"`
	IndexPosition string            `json:"index_position,omitempty"`
	EncodeType    string            `json:"encode_type,omitempty"`
	Reverse       bool              `json:"reverse,omitempty"`
	ShowPayer     bool              `json:"show_payer,omitempty"`
}

type GetTableRowsResponse struct {
	Rows    []json.RawMessage `json:"rows"`
	More    bool              `json:"more"`
	NextKey string            `json:"next_key"`
}
