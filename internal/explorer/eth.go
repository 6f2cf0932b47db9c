package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/tanacoin/platform/pkg/clients"
)

// EthTransaction is the subset of eth_getTransactionByHash this platform
// needs. Value is in wei, Input is the 0x-prefixed calldata.
type EthTransaction struct {
	Hash  string
	From  string
	To    string
	Value *big.Int
	Input string
}

type EthReceipt struct {
	Status int
}

type EthClientI interface {
	GetTransaction(ctx context.Context, txHash string) (*EthTransaction, error)
	GetTransactionReceipt(ctx context.Context, txHash string) (*EthReceipt, error)
}

type EthClient struct {
	url    string
	client clients.HTTPClientI
}

func NewEthClient(url string, client clients.HTTPClientI) *EthClient {
	return &EthClient{url: url, client: client}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func (c *EthClient) call(method string, params []any) (json.RawMessage, error) {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: 1})
	if err != nil {
		return nil, err
	}

	statusCode, respBody, err := c.client.Post(c.url, http.Header{}, body)
	if err != nil {
		return nil, fmt.Errorf("eth rpc request failed: %w", err)
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("eth rpc returned status %d", statusCode)
	}

	var resp rpcResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("can't parse eth rpc response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("eth rpc error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	return resp.Result, nil
}

type ethTxJSON struct {
	Hash  string `json:"hash"`
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
	Input string `json:"input"`
}

// GetTransaction returns nil when the node does not know the hash.
func (c *EthClient) GetTransaction(ctx context.Context, txHash string) (*EthTransaction, error) {
	result, err := c.call("eth_getTransactionByHash", []any{txHash})
	if err != nil {
		return nil, err
	}
	if isNullResult(result) {
		return nil, nil
	}

	var tx ethTxJSON
	if err := json.Unmarshal(result, &tx); err != nil {
		return nil, fmt.Errorf("can't parse eth transaction: %w", err)
	}

	value, err := parseHexBig(tx.Value)
	if err != nil {
		return nil, fmt.Errorf("can't parse eth transaction value: %w", err)
	}

	return &EthTransaction{
		Hash:  tx.Hash,
		From:  tx.From,
		To:    tx.To,
		Value: value,
		Input: tx.Input,
	}, nil
}

type ethReceiptJSON struct {
	Status string `json:"status"`
}

// GetTransactionReceipt returns nil while the transaction is still pending.
func (c *EthClient) GetTransactionReceipt(ctx context.Context, txHash string) (*EthReceipt, error) {
	result, err := c.call("eth_getTransactionReceipt", []any{txHash})
	if err != nil {
		return nil, err
	}
	if isNullResult(result) {
		return nil, nil
	}

	var receipt ethReceiptJSON
	if err := json.Unmarshal(result, &receipt); err != nil {
		return nil, fmt.Errorf("can't parse eth receipt: %w", err)
	}

	status, err := parseHexBig(receipt.Status)
	if err != nil {
		return nil, fmt.Errorf("can't parse eth receipt status: %w", err)
	}
	return &EthReceipt{Status: int(status.Int64())}, nil
}

func isNullResult(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}

func parseHexBig(s string) (*big.Int, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return big.NewInt(0), nil
	}
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, errors.New("invalid hex quantity")
	}
	return v, nil
}
