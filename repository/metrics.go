package repository

import (
	"context"

	"github.com/rbe-platform/backend/domain"
)

// TimeSeriesFilter pages time-stamped metric listings. StartDate and
// EndDate are RFC3339 or date-only strings passed through to the database.
type TimeSeriesFilter struct {
	Region    string
	Category  string
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

type CooperationRepository interface {
	// List matches Region against either side of the cooperation link.
	List(ctx context.Context, filter TimeSeriesFilter) ([]domain.CooperationMetric, error)
	GetByID(ctx context.Context, id string) (*domain.CooperationMetric, error)
	Create(ctx context.Context, metric *domain.CooperationMetric) (*domain.CooperationMetric, error)
	Delete(ctx context.Context, id string) error
	StatsByRegion(ctx context.Context) ([]domain.CooperationRegionStat, error)
	StatsByType(ctx context.Context) ([]domain.CooperationTypeStat, error)
}

type AutomationRepository interface {
	// List interprets Category as the sector filter.
	List(ctx context.Context, filter TimeSeriesFilter) ([]domain.AutomationProgress, error)
	GetByID(ctx context.Context, id string) (*domain.AutomationProgress, error)
	Create(ctx context.Context, record *domain.AutomationProgress) (*domain.AutomationProgress, error)
	Delete(ctx context.Context, id string) error
	StatsBySector(ctx context.Context) ([]domain.AutomationSectorStat, error)
	Summary(ctx context.Context) (*domain.AutomationSummary, error)
}

type EnvironmentalRepository interface {
	List(ctx context.Context, filter TimeSeriesFilter) ([]domain.EnvironmentalMetric, error)
	GetByID(ctx context.Context, id string) (*domain.EnvironmentalMetric, error)
	Create(ctx context.Context, metric *domain.EnvironmentalMetric) (*domain.EnvironmentalMetric, error)
	Delete(ctx context.Context, id string) error
	StatsByType(ctx context.Context) ([]domain.EnvironmentalTypeStat, error)
	// Latest returns the most recent reading per metric name; exact
	// timestamp ties break toward the greatest id.
	Latest(ctx context.Context) ([]domain.EnvironmentalLatest, error)
}

type SocialRepository interface {
	List(ctx context.Context, filter TimeSeriesFilter) ([]domain.SocialMetric, error)
	GetByID(ctx context.Context, id string) (*domain.SocialMetric, error)
	Create(ctx context.Context, metric *domain.SocialMetric) (*domain.SocialMetric, error)
	Delete(ctx context.Context, id string) error
	StatsByCategory(ctx context.Context) ([]domain.SocialCategoryStat, error)
	StatsByRegion(ctx context.Context) ([]domain.SocialRegionStat, error)
	// Latest returns the most recent reading per metric name and region.
	Latest(ctx context.Context) ([]domain.SocialLatest, error)
}
