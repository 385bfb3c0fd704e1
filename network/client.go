package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/encoderlee/eosapi/chain"
)

const (
	pathGetInfo         = "/v1/chain/get_info"
	pathAbiJSONToBin    = "/v1/chain/abi_json_to_bin"
	pathPushTransaction = "/v1/chain/push_transaction"
	pathGetTableRows    = "/v1/chain/get_table_rows"
)

// Client talks to a node's chain API. Requests are never retried.
type Client struct {
	log    zerolog.Logger
	cfg    Config
	host   string
	client *http.Client
}

func NewClient(log zerolog.Logger, host string, options ...Option) *Client {
	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	c := Client{
		log:    log.With().Str("component", "rpc_client").Logger(),
		cfg:    cfg,
		host:   strings.TrimRight(host, "/"),
		client: client,
	}

	return &c
}

func (c *Client) Host() string {
	return c.host
}

func (c *Client) GetInfo(ctx context.Context) (*GetInfoResponse, error) {
	var info GetInfoResponse
	err := c.post(ctx, pathGetInfo, nil, &info)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// AbiJSONToBin serializes action arguments with the contract's ABI.
func (c *Client) AbiJSONToBin(ctx context.Context, code chain.AccountName, action chain.ActionName, args map[string]interface{}) ([]byte, error) {
	if args == nil {
		args = map[string]interface{}{}
	}
	req := AbiJSONToBinRequest{
		Code:   code,
		Action: action,
		Args:   args,
	}
	var res AbiJSONToBinResponse
	body, err := c.postRaw(ctx, pathAbiJSONToBin, req)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("could not decode abi_json_to_bin response: %w", err)
	}
	if res.BinArgs == nil {
		return nil, &NodeError{Message: "binargs not found", StatusCode: http.StatusOK, Body: body}
	}
	return *res.BinArgs, nil
}

func (c *Client) PushTransaction(ctx context.Context, packed *chain.PackedTransaction) (*PushTransactionResponse, error) {
	var res PushTransactionResponse
	err := c.post(ctx, pathPushTransaction, packed, &res)
	if err != nil {
		return nil, err
	}
	c.log.Info().Str("transaction_id", res.TransactionID).Msg("transaction pushed")
	return &res, nil
}

func (c *Client) GetTableRows(ctx context.Context, req GetTableRowsRequest) (*GetTableRowsResponse, error) {
	var res GetTableRowsResponse
	err := c.post(ctx, pathGetTableRows, req, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) post(ctx context.Context, path string, in interface{}, out interface{}) error {
	body, err := c.postRaw(ctx, path, in)
	if err != nil {
		return err
	}
	err = json.Unmarshal(body, out)
	if err != nil {
		return fmt.Errorf("could not decode %s response: %w", path, err)
	}
	return nil
}

// postRaw sends in as a JSON body and maps the status code: 500 is a
// TransactionError, any other status outside 2xx a NodeError.
func (c *Client) postRaw(ctx context.Context, path string, in interface{}) ([]byte, error) {
	var payload io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("could not encode %s request: %w", path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, payload)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	c.log.Debug().Str("path", path).Msg("sending request")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request to %s: %w", path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read %s response: %w", path, err)
	}

	switch {
	case res.StatusCode == http.StatusInternalServerError:
		c.log.Debug().Str("path", path).Bytes("body", body).Msg("node rejected request")
		return nil, &TransactionError{StatusCode: res.StatusCode, Body: body}
	case res.StatusCode < 200 || res.StatusCode >= 300:
		return nil, &NodeError{
			Message:    fmt.Sprintf("bad http status code: %d", res.StatusCode),
			StatusCode: res.StatusCode,
			Body:       body,
		}
	}

	return body, nil
}
