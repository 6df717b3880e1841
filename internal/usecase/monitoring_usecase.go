package usecase

import (
	"context"
	"fmt"

	"github.com/NasaVasa/haltwatch/internal/domain"
	"go.uber.org/zap"
)

type MonitoringResult struct {
	Transitions  []domain.Transition
	RegistrySize int
}

// ClosedTickers returns the tickers that closed during the update.
func (r *MonitoringResult) ClosedTickers() map[string]struct{} {
	closed := make(map[string]struct{})
	for _, t := range r.Transitions {
		if t.Kind == domain.TransitionClosed {
			closed[t.Ticker] = struct{}{}
		}
	}
	return closed
}

type MonitoringUsecase struct {
	registry domain.RegistryRepository
	logger   *zap.Logger
}

func NewMonitoringUsecase(registry domain.RegistryRepository, logger *zap.Logger) *MonitoringUsecase {
	return &MonitoringUsecase{registry: registry, logger: logger}
}

// MonitoringPlan is an advanced registry that has not been saved yet.
type MonitoringPlan struct {
	Today        domain.Date
	Next         domain.Registry
	Transitions  []domain.Transition
	PreviousSize int
}

// ClosedTickers returns the tickers that close when the plan is committed.
func (p *MonitoringPlan) ClosedTickers() map[string]struct{} {
	return (&MonitoringResult{Transitions: p.Transitions}).ClosedTickers()
}

// Plan loads the registry and advances it for today without saving.
func (u *MonitoringUsecase) Plan(ctx context.Context, today domain.Date, halted, closedIssuerCodes []string) (*MonitoringPlan, error) {
	current, err := u.registry.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}

	next, transitions := Advance(current, today, halted, closedIssuerCodes)
	u.logger.Info(
		"monitoring update planned",
		zap.Stringer("today", today),
		zap.Int("halted", len(halted)),
		zap.Int("closed_codes", len(closedIssuerCodes)),
		zap.Int("transitions", len(transitions)),
	)
	return &MonitoringPlan{Today: today, Next: next, Transitions: transitions, PreviousSize: len(current)}, nil
}

// Commit saves a planned registry.
func (u *MonitoringUsecase) Commit(ctx context.Context, plan *MonitoringPlan) (*MonitoringResult, error) {
	if err := u.registry.Save(ctx, plan.Next); err != nil {
		return nil, fmt.Errorf("save registry: %w", err)
	}

	for _, t := range plan.Transitions {
		u.logger.Info(
			"monitoring transition",
			zap.String("ticker", t.Ticker),
			zap.String("kind", string(t.Kind)),
			zap.Stringer("added_date", t.AddedDate),
			zap.Int("age_days", t.AgeDays),
		)
	}
	u.logger.Info(
		"monitoring update complete",
		zap.Stringer("today", plan.Today),
		zap.Int("previous_size", plan.PreviousSize),
		zap.Int("registry_size", len(plan.Next)),
	)
	return &MonitoringResult{Transitions: plan.Transitions, RegistrySize: len(plan.Next)}, nil
}

// Update plans and commits in one step.
func (u *MonitoringUsecase) Update(ctx context.Context, today domain.Date, halted, closedIssuerCodes []string) (*MonitoringResult, error) {
	plan, err := u.Plan(ctx, today, halted, closedIssuerCodes)
	if err != nil {
		return nil, err
	}
	return u.Commit(ctx, plan)
}
