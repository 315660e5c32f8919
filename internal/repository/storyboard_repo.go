package repository

import (
	"context"
	"errors"

	"github.com/frenzy2004/JetSki/internal/domain"
	"gorm.io/gorm"
)

// StoryboardRepository handles persisted storyboard and panel records.
type StoryboardRepository struct {
	db *gorm.DB
}

// NewStoryboardRepository creates a new StoryboardRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *StoryboardRepository: repository instance bound to db.
func NewStoryboardRepository(db *gorm.DB) *StoryboardRepository {
	return &StoryboardRepository{db: db}
}

// Create inserts a new storyboard record. The parent video record must already
// exist; panels are written separately via CreatePanels.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - sb: storyboard record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *StoryboardRepository) Create(ctx context.Context, sb *domain.StoryboardRecord) error {
	return r.db.WithContext(ctx).Create(sb).Error
}

// CreatePanels inserts all panel records for a storyboard in one batch.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - panels: panel records referencing an existing storyboard.
// Returns:
//   - error: non-nil if the insert fails.
func (r *StoryboardRepository) CreatePanels(ctx context.Context, panels []domain.PanelRecord) error {
	if len(panels) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&panels).Error
}

// GetByID retrieves a storyboard record by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: storyboard record ID.
// Returns:
//   - *domain.StoryboardRecord: record if found.
//   - error: non-nil if lookup fails.
func (r *StoryboardRepository) GetByID(ctx context.Context, id string) (*domain.StoryboardRecord, error) {
	var sb domain.StoryboardRecord
	if err := r.db.WithContext(ctx).First(&sb, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sb, nil
}

// GetWithPanels retrieves a storyboard together with its panels (ordered by
// panel number) and its parent video.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: storyboard record ID.
// Returns:
//   - *domain.StoryboardWithPanels: joined view if found.
//   - error: non-nil if the storyboard lookup fails.
func (r *StoryboardRepository) GetWithPanels(ctx context.Context, id string) (*domain.StoryboardWithPanels, error) {
	sb, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var panels []domain.PanelRecord
	if err := r.db.WithContext(ctx).
		Where("storyboard_id = ?", id).
		Order("panel_number ASC").
		Find(&panels).Error; err != nil {
		return nil, err
	}

	result := &domain.StoryboardWithPanels{
		StoryboardRecord: *sb,
		Panels:           panels,
	}

	// The parent video is best-effort: a missing row still returns the comic.
	var video domain.VideoRecord
	err = r.db.WithContext(ctx).First(&video, "id = ?", sb.VideoID).Error
	if err == nil {
		result.Video = &video
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return result, nil
}

// ListRecent retrieves the most recently created storyboards.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of records to return.
// Returns:
//   - []domain.StoryboardRecord: matching records, newest first.
//   - error: non-nil if the query fails.
func (r *StoryboardRepository) ListRecent(ctx context.Context, limit int) ([]domain.StoryboardRecord, error) {
	var boards []domain.StoryboardRecord
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}
