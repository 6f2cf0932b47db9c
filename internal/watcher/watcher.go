package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tanacoin/platform/internal/domain"
	"github.com/tanacoin/platform/internal/explorer"
	"github.com/tanacoin/platform/internal/pg"
)

type PaymentRepo interface {
	FindPending(ctx context.Context, limit uint32) ([]domain.Payment, error)
	UpdateStatus(ctx context.Context, txHash, status string) error
}

type WalletRepo interface {
	Credit(ctx context.Context, userID int, amount decimal.Decimal) error
}

type TokenRepo interface {
	AddSold(ctx context.Context, amount decimal.Decimal) error
}

// Service finalizes payments recorded while their transaction was still
// unmined: it polls pending rows and settles or fails each one by its
// on-chain receipt.
type Service struct {
	ethClient    explorer.EthClientI
	paymentRepo  PaymentRepo
	walletRepo   WalletRepo
	tokenRepo    TokenRepo
	txManager    pg.TXManager
	limit        uint32
	workerPool   WorkerPoolI
	pollInterval time.Duration

	inFlight sync.Map
}

func New(ethClient explorer.EthClientI, paymentRepo PaymentRepo, walletRepo WalletRepo, tokenRepo TokenRepo, txManager pg.TXManager) *Service {
	return &Service{
		ethClient:    ethClient,
		paymentRepo:  paymentRepo,
		walletRepo:   walletRepo,
		tokenRepo:    tokenRepo,
		txManager:    txManager,
		limit:        1000,
		workerPool:   NewWorkerPool(10),
		pollInterval: time.Second * 15,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Payment watcher started")
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping payment watcher")
			return
		case <-ticker.C:
			s.processPending(ctx)
		}
	}
}

func (s *Service) processPending(ctx context.Context) {
	payments, err := s.paymentRepo.FindPending(ctx, s.limit)
	if err != nil {
		zap.L().Error("Failed to fetch pending payments", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, payment := range payments {
		payment := payment

		if _, loaded := s.inFlight.LoadOrStore(payment.TxHash, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer s.inFlight.Delete(payment.TxHash)
				return s.handlePayment(ctx, payment)
			})
			if err != nil {
				s.inFlight.Delete(payment.TxHash)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error finalizing pending payments", zap.Error(err))
	}
}

func (s *Service) handlePayment(ctx context.Context, payment domain.Payment) error {
	receipt, err := s.ethClient.GetTransactionReceipt(ctx, payment.TxHash)
	if err != nil {
		zap.L().Error("Receipt lookup failed", zap.String("txHash", payment.TxHash), zap.Error(err))
		return err
	}
	if receipt == nil {
		// Still unmined, next tick will try again.
		return nil
	}

	if receipt.Status != 1 {
		zap.L().Info("Pending payment reverted on chain", zap.String("txHash", payment.TxHash))
		return s.paymentRepo.UpdateStatus(ctx, payment.TxHash, domain.PaymentStatusFailed)
	}
	return s.confirm(ctx, payment)
}

// confirm flips the row to confirmed and credits the tokens quoted at
// submission time, all in one transaction.
func (s *Service) confirm(ctx context.Context, payment domain.Payment) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.paymentRepo.UpdateStatus(ctx, payment.TxHash, domain.PaymentStatusConfirmed); err != nil {
			return err
		}
		if err := s.walletRepo.Credit(ctx, payment.UserID, payment.Tokens); err != nil {
			return err
		}
		return s.tokenRepo.AddSold(ctx, payment.Tokens)
	})
	if err != nil {
		zap.L().Error("Failed to confirm pending payment",
			zap.String("txHash", payment.TxHash),
			zap.Int("userID", payment.UserID),
			zap.Error(err))
		return err
	}
	zap.L().Info("Pending payment confirmed",
		zap.String("txHash", payment.TxHash),
		zap.String("tokens", payment.Tokens.String()))
	return nil
}
