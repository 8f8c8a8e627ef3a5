package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"reppi/internal/metrics"
	"reppi/internal/repository"
)

// ReconcileService repairs goal counters that drifted from their rep logs.
type ReconcileService struct {
	goals repository.GoalRepository
	log   *zap.Logger
}

// NewReconcileService creates a new reconcile service.
func NewReconcileService(goals repository.GoalRepository, log *zap.Logger) *ReconcileService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReconcileService{goals: goals, log: log}
}

// Run recomputes every goal's progress and reports how many were repaired.
func (s *ReconcileService) Run(ctx context.Context) (int64, error) {
	fixed, err := s.goals.Reconcile(ctx)
	if err != nil {
		s.log.Error("reconcile goals failed", zap.Error(err))
		return 0, fmt.Errorf("reconcile goals: %w", err)
	}
	if fixed > 0 {
		metrics.GoalsReconciled.Add(float64(fixed))
		s.log.Warn("reconciled drifted goals", zap.Int64("goals", fixed))
	} else {
		s.log.Debug("goal progress consistent")
	}
	return fixed, nil
}
