package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tanacoin/platform/pkg/clients"
)

// ErrBtcTxNotFound covers every non-200 answer from the block explorer;
// the verifier maps it onto a single client-facing message.
var ErrBtcTxNotFound = errors.New("btc transaction not found")

// BtcTransaction carries the first input address, the first output address and
// that output's value in satoshi.
type BtcTransaction struct {
	Hash         string
	From         string
	To           string
	ValueSatoshi int64
}

type BtcClientI interface {
	GetTransaction(ctx context.Context, txHash string) (*BtcTransaction, error)
}

type BtcClient struct {
	baseURL string
	client  clients.HTTPClientI
}

func NewBtcClient(baseURL string, client clients.HTTPClientI) *BtcClient {
	return &BtcClient{baseURL: baseURL, client: client}
}

type btcTxJSON struct {
	Hash   string `json:"hash"`
	Inputs []struct {
		Addresses []string `json:"addresses"`
	} `json:"inputs"`
	Outputs []struct {
		Addresses []string `json:"addresses"`
		Value     int64    `json:"value"`
	} `json:"outputs"`
}

func (c *BtcClient) GetTransaction(ctx context.Context, txHash string) (*BtcTransaction, error) {
	url := c.baseURL + "/txs/" + txHash

	statusCode, respBody, _, err := c.client.Get(url, nil)
	if err != nil {
		return nil, fmt.Errorf("btc explorer request failed: %w", err)
	}
	if statusCode != http.StatusOK {
		return nil, ErrBtcTxNotFound
	}

	var tx btcTxJSON
	if err := json.Unmarshal(respBody, &tx); err != nil {
		return nil, fmt.Errorf("can't parse btc transaction: %w", err)
	}
	if len(tx.Inputs) == 0 || len(tx.Inputs[0].Addresses) == 0 ||
		len(tx.Outputs) == 0 || len(tx.Outputs[0].Addresses) == 0 {
		return nil, ErrBtcTxNotFound
	}

	return &BtcTransaction{
		Hash:         tx.Hash,
		From:         tx.Inputs[0].Addresses[0],
		To:           tx.Outputs[0].Addresses[0],
		ValueSatoshi: tx.Outputs[0].Value,
	}, nil
}
