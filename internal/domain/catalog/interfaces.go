package catalog

import "context"

// Repository provides read access to reference data and bulk loading.
type Repository interface {
	ListMineralTypes(ctx context.Context) ([]MineralType, error)
	GetMineralType(ctx context.Context, id int64) (*MineralType, error)
	ListStages(ctx context.Context, mineralTypeID int64) ([]Stage, error)
	GetStage(ctx context.Context, id int64) (*Stage, error)
	ListWorks(ctx context.Context, stageID int64) ([]Work, error)
	ListQuestions(ctx context.Context, mineralTypeID int64) ([]Question, error)
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
	Import(ctx context.Context, seed Seed) error
}
