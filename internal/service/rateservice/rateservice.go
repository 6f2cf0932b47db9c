package rateservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/pkg/clients"
)

// ErrRatesUnavailable is the single sentinel for every upstream failure mode:
// provider unreachable, malformed payload, zero rate, missing token rate.
// Callers must abort the purchase flow on it; no fallback rate is substituted.
var ErrRatesUnavailable = errors.New("exchange rates unavailable")

type TokenRepo interface {
	GetInfo(ctx context.Context) (*domain.TokenInfo, error)
}

type Service struct {
	apiURL    string
	client    clients.HTTPClientI
	tokenRepo TokenRepo
}

func New(apiURL string, client clients.HTTPClientI, tokenRepo TokenRepo) *Service {
	return &Service{
		apiURL:    apiURL,
		client:    client,
		tokenRepo: tokenRepo,
	}
}

type marketRates struct {
	Bitcoin  struct{ EUR decimal.Decimal `json:"eur"` } `json:"bitcoin"`
	Ethereum struct{ EUR decimal.Decimal `json:"eur"` } `json:"ethereum"`
	Tether   struct{ EUR decimal.Decimal `json:"eur"` } `json:"tether"`
}

// GetMarketRates fetches BTC/ETH/USDT spot rates in EUR from the quote
// provider.
func (s *Service) GetMarketRates(ctx context.Context) (btc, eth, usdt decimal.Decimal, err error) {
	url := fmt.Sprintf("%s/simple/price?ids=bitcoin,ethereum,tether&vs_currencies=eur", s.apiURL)

	statusCode, body, _, err := s.client.Get(url, nil)
	if err != nil {
		zap.L().Error("rate provider request failed", zap.Error(err))
		return decimal.Zero, decimal.Zero, decimal.Zero, ErrRatesUnavailable
	}
	if statusCode != http.StatusOK {
		zap.L().Error("rate provider returned non-200", zap.Int("status", statusCode))
		return decimal.Zero, decimal.Zero, decimal.Zero, ErrRatesUnavailable
	}

	var rates marketRates
	if err := json.Unmarshal(body, &rates); err != nil {
		zap.L().Error("can't parse rate provider response", zap.Error(err))
		return decimal.Zero, decimal.Zero, decimal.Zero, ErrRatesUnavailable
	}

	btc, eth, usdt = rates.Bitcoin.EUR, rates.Ethereum.EUR, rates.Tether.EUR
	if btc.IsZero() || eth.IsZero() || usdt.IsZero() {
		zap.L().Warn("rate provider returned a zero rate",
			zap.String("btc", btc.String()),
			zap.String("eth", eth.String()),
			zap.String("usdt", usdt.String()))
		return decimal.Zero, decimal.Zero, decimal.Zero, ErrRatesUnavailable
	}
	return btc, eth, usdt, nil
}

// GetTokenRates derives the token price in each accepted currency from the
// platform's EUR rate and the market spot rates.
func (s *Service) GetTokenRates(ctx context.Context) (*domain.RateQuote, error) {
	info, err := s.tokenRepo.GetInfo(ctx)
	if err != nil {
		zap.L().Error("failed to load token info", zap.Error(err))
		return nil, ErrRatesUnavailable
	}
	if info == nil || info.Rate.IsZero() {
		return nil, ErrRatesUnavailable
	}

	btc, eth, usdt, err := s.GetMarketRates(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.RateQuote{
		TokenEUR:  info.Rate,
		TokenETH:  info.Rate.Div(eth),
		TokenUSDT: info.Rate.Div(usdt),
		TokenBTC:  info.Rate.Div(btc),
	}, nil
}
