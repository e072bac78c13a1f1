package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/contafacil/backend/internal/domain/ledger"
	"github.com/contafacil/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// CashFlowService produces the daily cash-flow grid and the year-over-year
// revenue series that feed the reporting views.
type CashFlowService struct {
	accountRepo    ledger.AccountRepository
	movementRepo   ledger.MovementRepository
	adjustmentRepo ledger.AdjustmentRepository
	logger         *zap.Logger
}

// NewCashFlowService creates a new CashFlowService
func NewCashFlowService(
	accountRepo ledger.AccountRepository,
	movementRepo ledger.MovementRepository,
	adjustmentRepo ledger.AdjustmentRepository,
	logger *zap.Logger,
) *CashFlowService {
	return &CashFlowService{
		accountRepo:    accountRepo,
		movementRepo:   movementRepo,
		adjustmentRepo: adjustmentRepo,
		logger:         logger,
	}
}

// Grid builds the per-day, per-account cash-flow matrix with running
// balances. With both window bounds set the grid is dense (every calendar
// day); open-ended windows produce only the days bearing activity.
func (s *CashFlowService) Grid(ctx context.Context, window ledger.Window) (*ledger.CashFlowGrid, error) {
	accounts, err := s.accountRepo.FindAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	movements, err := s.movementRepo.FindAll(ctx, ledger.MovementFilter{
		From: window.Start,
		To:   window.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load movements: %w", err)
	}
	adjustments, err := s.adjustmentRepo.FindAll(ctx, ledger.AdjustmentFilter{
		From: window.Start,
		To:   window.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load adjustments: %w", err)
	}

	grid := ledger.BuildCashFlowGrid(accounts, movements, adjustments, window)
	return &grid, nil
}

// RevenueSeries is one calendar year of settled receivable income, bucketed
// per day over the whole year so charts can overlay years directly.
type RevenueSeries struct {
	Year   int
	Points []ledger.DailyPoint
}

// DailyRevenue returns the dense daily series of settled receivable net
// income for one calendar year.
func (s *CashFlowService) DailyRevenue(ctx context.Context, year int) (*RevenueSeries, error) {
	kind := ledger.MovementKindReceivable
	status := ledger.MovementStatusSettled
	start := valueobject.NewDate(year, time.January, 1)
	end := valueobject.NewDate(year, time.December, 31)

	movements, err := s.movementRepo.FindAll(ctx, ledger.MovementFilter{
		Kind:   &kind,
		Status: &status,
		From:   &start,
		To:     &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load movements: %w", err)
	}

	return &RevenueSeries{
		Year:   year,
		Points: ledger.BucketByDay(movements, ledger.SettledDate, ledger.NetValue, start, end),
	}, nil
}

// RevenueComparison returns the given year's daily revenue alongside the
// previous year's, for the year-over-year chart.
func (s *CashFlowService) RevenueComparison(ctx context.Context, year int) (current, prior *RevenueSeries, err error) {
	current, err = s.DailyRevenue(ctx, year)
	if err != nil {
		return nil, nil, err
	}
	prior, err = s.DailyRevenue(ctx, year-1)
	if err != nil {
		return nil, nil, err
	}
	return current, prior, nil
}
