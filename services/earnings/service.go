package earnings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tutorly/database/repository"
	"tutorly/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// DefaultEarningsService is the production earnings engine. A single mutex
// serializes accrual passes and retractions: the periodic tick and
// mutation-triggered passes can never race on the processed-key set, and
// readers only ever see a fully applied (transactions, keys) pair.
type DefaultEarningsService struct {
	Repo   repository.StateRepository
	Logger *zap.Logger

	mu sync.Mutex
}

func NewEarningsService(repo repository.StateRepository, logger *zap.Logger) *DefaultEarningsService {
	return &DefaultEarningsService{Repo: repo, Logger: logger}
}

func (s *DefaultEarningsService) RunAccrualPass(ctx context.Context, now time.Time) (PassResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Students:      s.Repo.Students(ctx),
		Bookings:      s.Repo.Bookings(ctx),
		Exceptions:    s.Repo.Exceptions(ctx),
		Transactions:  s.Repo.Transactions(ctx),
		ProcessedKeys: s.Repo.ProcessedKeys(ctx),
	}

	result := RunPass(snap, now)
	if len(result.NewTransactions) == 0 {
		return result, nil
	}

	if err := s.Repo.SaveEarnings(ctx, result.Transactions, result.ProcessedKeys); err != nil {
		return PassResult{}, fmt.Errorf("persisting accrual result: %w", err)
	}
	s.Logger.Info("accrual pass billed lessons",
		zap.Int("newTransactions", len(result.NewTransactions)),
		zap.Time("now", now))
	return result, nil
}

func (s *DefaultEarningsService) Transactions(ctx context.Context) []models.Transaction {
	return s.Repo.Transactions(ctx)
}

// AddManualTransaction records user-entered income. Manual ids live outside
// the "transaction-{sourceId}-" namespace, so they never collide with
// accrual dedup or cascade retraction.
func (s *DefaultEarningsService) AddManualTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == "" {
		tx.ID = "manual-" + uuid.NewString()
	}
	if tx.Status == "" {
		tx.Status = models.TransactionPaid
	}

	txs := append([]models.Transaction{tx}, s.Repo.Transactions(ctx)...)
	if err := s.Repo.SaveEarnings(ctx, txs, s.Repo.ProcessedKeys(ctx)); err != nil {
		return models.Transaction{}, fmt.Errorf("saving transactions: %w", err)
	}
	return tx, nil
}

func (s *DefaultEarningsService) RemoveTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs := s.Repo.Transactions(ctx)
	for i, tx := range txs {
		if tx.ID == id {
			txs = append(txs[:i], txs[i+1:]...)
			if err := s.Repo.SaveEarnings(ctx, txs, s.Repo.ProcessedKeys(ctx)); err != nil {
				return fmt.Errorf("saving transactions: %w", err)
			}
			return nil
		}
	}
	return ErrTransactionNotFound
}

// RetractBookingTransactions drops every transaction whose id carries the
// "transaction-{bookingID}-" prefix and every processed key prefixed
// "{bookingID}-". The booking-deletion path calls this before removing the
// booking, so the next pass cannot find a stale completed lesson.
func (s *DefaultEarningsService) RetractBookingTransactions(ctx context.Context, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs := s.Repo.Transactions(ctx)
	kept := txs[:0:0]
	removed := 0
	for _, tx := range txs {
		if tx.DerivedFrom(bookingID) {
			removed++
			continue
		}
		kept = append(kept, tx)
	}

	keys := s.Repo.ProcessedKeys(ctx)
	for k := range keys {
		if strings.HasPrefix(k, bookingID+"-") {
			delete(keys, k)
		}
	}

	if err := s.Repo.SaveEarnings(ctx, kept, keys); err != nil {
		return fmt.Errorf("saving retraction: %w", err)
	}
	if removed > 0 {
		s.Logger.Info("retracted derived transactions",
			zap.String("bookingId", bookingID), zap.Int("count", removed))
	}
	return nil
}
