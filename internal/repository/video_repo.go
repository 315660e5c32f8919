package repository

import (
	"context"

	"github.com/frenzy2004/JetSki/internal/domain"
	"gorm.io/gorm"
)

// VideoRepository handles persisted video records.
type VideoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new VideoRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *VideoRepository: repository instance bound to db.
func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a new video record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - video: video record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *VideoRepository) Create(ctx context.Context, video *domain.VideoRecord) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// GetByID retrieves a video record by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: video record ID.
// Returns:
//   - *domain.VideoRecord: record if found.
//   - error: non-nil if lookup fails.
func (r *VideoRepository) GetByID(ctx context.Context, id string) (*domain.VideoRecord, error) {
	var video domain.VideoRecord
	if err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// ListRecent retrieves the most recently processed videos.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of records to return.
// Returns:
//   - []domain.VideoRecord: matching records, newest first.
//   - error: non-nil if the query fails.
func (r *VideoRepository) ListRecent(ctx context.Context, limit int) ([]domain.VideoRecord, error) {
	var videos []domain.VideoRecord
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}
