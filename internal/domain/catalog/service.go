package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganot/roadmap/internal/repository"
)

// Service exposes reference data to chart building and selection screens.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new catalog service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListMineralTypes returns all mineral types.
func (s *Service) ListMineralTypes(ctx context.Context) ([]MineralType, error) {
	return s.repo.ListMineralTypes(ctx)
}

// ListStages returns the stages of a mineral type ordered by order.
func (s *Service) ListStages(ctx context.Context, mineralTypeID int64) ([]Stage, error) {
	if _, err := s.repo.GetMineralType(ctx, mineralTypeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMineralTypeNotFound
		}
		return nil, fmt.Errorf("getting mineral type: %w", err)
	}
	return s.repo.ListStages(ctx, mineralTypeID)
}

// ListQuestions returns the questions offered for a mineral type.
func (s *Service) ListQuestions(ctx context.Context, mineralTypeID int64) ([]Question, error) {
	if _, err := s.repo.GetMineralType(ctx, mineralTypeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMineralTypeNotFound
		}
		return nil, fmt.Errorf("getting mineral type: %w", err)
	}
	return s.repo.ListQuestions(ctx, mineralTypeID)
}

// ListWorks returns the works of a stage ordered by order.
func (s *Service) ListWorks(ctx context.Context, stageID int64) ([]Work, error) {
	if _, err := s.repo.GetStage(ctx, stageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStageNotFound
		}
		return nil, fmt.Errorf("getting stage: %w", err)
	}
	return s.repo.ListWorks(ctx, stageID)
}

// Snapshot loads the whole catalog in one read.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog snapshot: %w", err)
	}
	return snap, nil
}

// Import validates a seed catalog and loads it, replacing records with the
// same ids.
func (s *Service) Import(ctx context.Context, seed Seed) error {
	if err := ValidateSeed(seed); err != nil {
		return err
	}
	if err := s.repo.Import(ctx, seed); err != nil {
		return fmt.Errorf("importing catalog: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("catalog imported",
			"mineral_types", len(seed.MineralTypes),
			"stages", len(seed.Stages),
			"works", len(seed.Works),
			"questions", len(seed.Questions),
		)
	}
	return nil
}
