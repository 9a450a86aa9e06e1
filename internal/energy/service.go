package energy

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jgoulah/btcenergy/internal/explorer"
	"github.com/jgoulah/btcenergy/pkg/models"
)

const (
	// WalletPageSize is the number of transactions requested per address page
	WalletPageSize = 50

	secondsPerDay = 86400
)

// Explorer is the subset of the explorer client the aggregators need
type Explorer interface {
	FetchBlock(ctx context.Context, hash string) (*explorer.Block, error)
	FetchBlocksForDay(ctx context.Context, dayMillis int64) ([]explorer.BlockStub, error)
	FetchAddressPage(ctx context.Context, address string, limit, offset int) ([]explorer.Transaction, error)
}

// Service answers energy queries against an explorer.
// None of its methods retry; the first remote failure aborts the query.
type Service struct {
	explorer Explorer
	now      func() time.Time
	log      *zap.Logger
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithClock overrides the wall clock used for day windows
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the service logger
func WithLogger(log *zap.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// NewService creates an energy service backed by ex
func NewService(ex Explorer, opts ...ServiceOption) *Service {
	s := &Service{
		explorer: ex,
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnergyPerTransaction estimates every transaction of a block, in block order
func (s *Service) EnergyPerTransaction(ctx context.Context, blockHash string) ([]models.TransactionEnergy, error) {
	block, err := s.explorer.FetchBlock(ctx, blockHash)
	if err != nil {
		return nil, fmt.Errorf("fetching block %s: %w", blockHash, err)
	}

	results := make([]models.TransactionEnergy, 0, len(block.Tx))
	for _, tx := range block.Tx {
		results = append(results, ForTransaction(tx))
	}
	return results, nil
}

// TotalEnergyLastDays returns one record per day for the last days days, newest first.
//
// Only the first block listed for each day is counted, which keeps the request
// volume under the explorer's rate limit. The totals therefore undercount the
// real daily energy.
func (s *Service) TotalEnergyLastDays(ctx context.Context, days int) ([]models.DailyEnergy, error) {
	if days <= 0 {
		return []models.DailyEnergy{}, nil
	}

	now := s.now().Unix()
	var results []models.DailyEnergy
	for i := 0; i < days; i++ {
		dayTimestamp := now - int64(i)*secondsPerDay

		total, err := s.sampleDay(ctx, dayTimestamp)
		if err != nil {
			return nil, err
		}

		results = append(results, models.DailyEnergy{
			Date:           time.Unix(dayTimestamp, 0).UTC().Format("2006-01-02"),
			TotalEnergyKWh: total,
		})
	}
	return results, nil
}

// sampleDay sums the energy of the first hashed block listed for the day
func (s *Service) sampleDay(ctx context.Context, dayTimestamp int64) (float64, error) {
	blocks, err := s.explorer.FetchBlocksForDay(ctx, dayTimestamp*1000)
	if err != nil {
		return 0, fmt.Errorf("listing blocks for %d: %w", dayTimestamp, err)
	}

	for _, stub := range blocks {
		if stub.Hash == "" {
			continue
		}

		energies, err := s.EnergyPerTransaction(ctx, stub.Hash)
		if err != nil {
			return 0, err
		}

		var total float64
		for _, e := range energies {
			total += e.EnergyKWh
		}
		s.log.Debug("sampled day",
			zap.Int64("day_timestamp", dayTimestamp),
			zap.String("block", stub.Hash),
			zap.Int("transactions", len(energies)),
		)
		return total, nil
	}

	return 0, nil
}

// TotalWalletEnergy sums the energy of every transaction of an address.
// Paging stops at the first page shorter than WalletPageSize, so an address
// with an exact multiple of WalletPageSize transactions costs one empty request.
func (s *Service) TotalWalletEnergy(ctx context.Context, address string) (float64, error) {
	var total float64
	offset := 0
	for {
		txs, err := s.explorer.FetchAddressPage(ctx, address, WalletPageSize, offset)
		if err != nil {
			return 0, fmt.Errorf("fetching transactions for %s at offset %d: %w", address, offset, err)
		}

		for _, tx := range txs {
			total += Estimate(tx.Size)
		}

		if len(txs) < WalletPageSize {
			break
		}
		offset += WalletPageSize
	}

	s.log.Debug("wallet total", zap.String("address", address), zap.Int("pages", offset/WalletPageSize+1))
	return total, nil
}
