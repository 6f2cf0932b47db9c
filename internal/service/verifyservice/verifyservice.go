package verifyservice

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/explorer"
	"github.com/tanacoin/platform/internal/service/purchase"
)

// PaymentMethod is the closed set of accepted currencies. Anything else is
// rejected at parse time.
type PaymentMethod string

const (
	MethodETH  PaymentMethod = "ETH"
	MethodBTC  PaymentMethod = "BTC"
	MethodUSDT PaymentMethod = "USDT"
)

var ErrUnsupportedMethod = errors.New("unsupported payment method")

func ParseMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToUpper(s)) {
	case MethodETH:
		return MethodETH, nil
	case MethodBTC:
		return MethodBTC, nil
	case MethodUSDT:
		return MethodUSDT, nil
	default:
		return "", ErrUnsupportedMethod
	}
}

// transferSelector is the 4-byte ERC-20 transfer(address,uint256) signature.
const transferSelector = "a9059cbb"

type RateOracle interface {
	GetTokenRates(ctx context.Context) (*domain.RateQuote, error)
}

type Settlement interface {
	Record(ctx context.Context, txHash string, value decimal.Decimal, currency, sender string, tokens decimal.Decimal) error
	RecordPending(ctx context.Context, txHash string, value decimal.Decimal, currency, sender string, tokens decimal.Decimal) error
}

// Receivers holds the platform deposit address for each accepted currency.
type Receivers struct {
	ETH  string
	BTC  string
	USDT string
}

type Service struct {
	ethClient    explorer.EthClientI
	btcClient    explorer.BtcClientI
	rates        RateOracle
	settlement   Settlement
	receivers    Receivers
	usdtContract string
}

func New(ethClient explorer.EthClientI, btcClient explorer.BtcClientI, rates RateOracle, settlement Settlement, receivers Receivers, usdtContract string) *Service {
	return &Service{
		ethClient:    ethClient,
		btcClient:    btcClient,
		rates:        rates,
		settlement:   settlement,
		receivers:    receivers,
		usdtContract: usdtContract,
	}
}

const (
	msgBtcNotFound      = "BTC transaction not found or invalid transaction hash"
	msgEthNotFound      = "Transaction not found or invalid transaction hash"
	msgRatesUnavailable = "Tanacoin rate not available"
	msgWrongReceiver    = "Invalid transaction: receiver address and expected receiver address do not match"
)

func errorResult(message string) *domain.TransactionResult {
	return &domain.TransactionResult{Status: domain.TxStatusError, Message: message}
}

// Verify confirms a submitted transaction against its chain, computes the
// token purchase with the promo multiplier, and settles it. Every failure
// mode is reported in the result's Status/Message; the error return is
// reserved for nothing today but kept for interface symmetry with the other
// services.
func (s *Service) Verify(ctx context.Context, txHash string, method PaymentMethod, bonusPct decimal.Decimal) (*domain.TransactionResult, error) {
	switch method {
	case MethodBTC:
		return s.verifyBTC(ctx, txHash, bonusPct), nil
	case MethodETH, MethodUSDT:
		return s.verifyETH(ctx, txHash, bonusPct), nil
	default:
		return nil, ErrUnsupportedMethod
	}
}

func (s *Service) verifyBTC(ctx context.Context, txHash string, bonusPct decimal.Decimal) *domain.TransactionResult {
	tx, err := s.btcClient.GetTransaction(ctx, txHash)
	if err != nil {
		if !errors.Is(err, explorer.ErrBtcTxNotFound) {
			zap.L().Error("btc lookup failed", zap.String("txHash", txHash), zap.Error(err))
		}
		return errorResult(msgBtcNotFound)
	}

	if !strings.EqualFold(tx.To, s.receivers.BTC) {
		return errorResult(msgWrongReceiver)
	}

	quote, err := s.rates.GetTokenRates(ctx)
	if err != nil {
		return errorResult(msgRatesUnavailable)
	}

	// satoshi to whole coins
	value := decimal.New(tx.ValueSatoshi, -8)
	tokens := purchase.ApplyBonus(purchase.Tokens(value, quote.TokenBTC), bonusPct)

	if err := s.settle(ctx, txHash, value, "BTC", tx.From, tokens); err != nil {
		return errorResult(err.Error())
	}

	return &domain.TransactionResult{
		Status: domain.TxStatusConfirmed,
		From:   tx.From,
		To:     tx.To,
		Value:  value,
		Tokens: tokens,
		Type:   "BTC",
	}
}

func (s *Service) verifyETH(ctx context.Context, txHash string, bonusPct decimal.Decimal) *domain.TransactionResult {
	tx, err := s.ethClient.GetTransaction(ctx, txHash)
	if err != nil {
		zap.L().Error("eth lookup failed", zap.String("txHash", txHash), zap.Error(err))
		return errorResult(msgEthNotFound)
	}
	if tx == nil {
		return errorResult(msgEthNotFound)
	}

	if s.isUSDTTransfer(tx) {
		return s.verifyUSDT(ctx, tx, bonusPct)
	}

	if tx.To != "" {
		if !strings.EqualFold(tx.To, s.receivers.ETH) {
			return errorResult(msgWrongReceiver)
		}
		quote, err := s.rates.GetTokenRates(ctx)
		if err != nil {
			return errorResult(msgRatesUnavailable)
		}

		// wei to whole coins
		value := decimal.NewFromBigInt(tx.Value, -18)
		tokens := purchase.ApplyBonus(purchase.Tokens(value, quote.TokenETH), bonusPct)

		receipt, err := s.ethClient.GetTransactionReceipt(ctx, tx.Hash)
		if err != nil {
			zap.L().Error("eth receipt lookup failed", zap.String("txHash", tx.Hash), zap.Error(err))
			return errorResult(msgEthNotFound)
		}

		result := &domain.TransactionResult{
			From:   tx.From,
			To:     tx.To,
			Value:  value,
			Tokens: tokens,
			Type:   "ETH",
		}
		switch {
		case receipt == nil:
			// Seen in the mempool but not mined. The quoted token quantity is
			// locked in now; the payment watcher credits it once the receipt
			// lands.
			if err := s.settlement.RecordPending(ctx, tx.Hash, value, "ETH", tx.From, tokens); err != nil {
				return errorResult(err.Error())
			}
			result.Status = domain.TxStatusPending
			return result
		case receipt.Status != 1:
			result.Status = domain.TxStatusFailed
			result.Tokens = decimal.Zero
			return result
		}

		if err := s.settle(ctx, tx.Hash, value, "ETH", tx.From, tokens); err != nil {
			return errorResult(err.Error())
		}
		result.Status = domain.TxStatusConfirmed
		return result
	}

	return s.receiptFallback(ctx, tx)
}

// isUSDTTransfer holds when the transaction targets the USDT contract and
// carries an ERC-20 transfer call.
func (s *Service) isUSDTTransfer(tx *explorer.EthTransaction) bool {
	return strings.EqualFold(tx.To, s.usdtContract) &&
		strings.HasPrefix(strings.TrimPrefix(tx.Input, "0x"), transferSelector)
}

func (s *Service) verifyUSDT(ctx context.Context, tx *explorer.EthTransaction, bonusPct decimal.Decimal) *domain.TransactionResult {
	recipient, amount, err := decodeTransferInput(tx.Input)
	if err != nil {
		zap.L().Error("can't decode usdt transfer input", zap.String("txHash", tx.Hash), zap.Error(err))
		return errorResult(msgEthNotFound)
	}

	if !strings.EqualFold(recipient, s.receivers.USDT) {
		return errorResult(msgWrongReceiver)
	}

	quote, err := s.rates.GetTokenRates(ctx)
	if err != nil {
		return errorResult(msgRatesUnavailable)
	}

	tokens := purchase.ApplyBonus(purchase.Tokens(amount, quote.TokenUSDT), bonusPct)

	if err := s.settle(ctx, tx.Hash, amount, "USDT", tx.From, tokens); err != nil {
		return errorResult(err.Error())
	}

	return &domain.TransactionResult{
		Status: domain.TxStatusConfirmed,
		From:   tx.From,
		To:     tx.To,
		Value:  amount,
		Tokens: tokens,
		Type:   "USDT",
	}
}

// receiptFallback reports chain status when the transaction carries no usable
// transfer. No purchase is computed here.
func (s *Service) receiptFallback(ctx context.Context, tx *explorer.EthTransaction) *domain.TransactionResult {
	result := &domain.TransactionResult{
		From:  tx.From,
		To:    tx.To,
		Value: decimal.NewFromBigInt(tx.Value, -18),
	}

	receipt, err := s.ethClient.GetTransactionReceipt(ctx, tx.Hash)
	if err != nil {
		zap.L().Error("eth receipt lookup failed", zap.String("txHash", tx.Hash), zap.Error(err))
		return errorResult(msgEthNotFound)
	}
	switch {
	case receipt == nil:
		result.Status = domain.TxStatusPending
	case receipt.Status == 1:
		result.Status = domain.TxStatusConfirmed
	default:
		result.Status = domain.TxStatusFailed
	}
	return result
}

func (s *Service) settle(ctx context.Context, txHash string, value decimal.Decimal, currency, sender string, tokens decimal.Decimal) error {
	if err := s.settlement.Record(ctx, txHash, value, currency, sender, tokens); err != nil {
		zap.L().Error("settlement failed",
			zap.String("txHash", txHash),
			zap.String("currency", currency),
			zap.Error(err))
		return err
	}
	return nil
}

// decodeTransferInput extracts the recipient address and the token amount
// (scaled to whole USDT) from transfer(address,uint256) calldata: a 4-byte
// selector followed by two 32-byte words, the amount last.
func decodeTransferInput(input string) (recipient string, amount decimal.Decimal, err error) {
	data := strings.TrimPrefix(input, "0x")
	if len(data) < len(transferSelector)+128 {
		return "", decimal.Zero, errors.New("transfer calldata too short")
	}

	addrWord := data[len(transferSelector) : len(transferSelector)+64]
	recipient = "0x" + addrWord[24:]

	amountWord := data[len(data)-64:]
	raw, ok := new(big.Int).SetString(amountWord, 16)
	if !ok {
		return "", decimal.Zero, errors.New("invalid transfer amount")
	}
	return recipient, decimal.NewFromBigInt(raw, -6), nil
}
