package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/rapor-go-api/internal/models"
)

// ResultRepository defines data operations for result rows. Result rows are
// scoped by (student, exam, created_by) so different owners of the same exam
// never collide.
type ResultRepository interface {
	ListByExamAndOwner(ctx context.Context, examID, ownerID uint) ([]models.Result, error)
	GetByToken(ctx context.Context, token string) (models.Result, error)
	Upsert(ctx context.Context, result *models.Result) error
	Save(ctx context.Context, result *models.Result) error
}

type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository instantiates the repository.
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) ListByExamAndOwner(ctx context.Context, examID, ownerID uint) ([]models.Result, error) {
	var results []models.Result
	if err := r.db.WithContext(ctx).Model(&models.Result{}).
		Preload("Student").
		Where("exam_id = ?", examID).
		Where("created_by = ?", ownerID).
		Order("rank ASC, student_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

// GetByToken resolves a published result by its share token. Unpublished
// rows are unreachable even when a token was previously issued.
func (r *resultRepository) GetByToken(ctx context.Context, token string) (models.Result, error) {
	var result models.Result
	if err := r.db.WithContext(ctx).Model(&models.Result{}).
		Preload("Student").
		Where("share_token = ?", token).
		Where("is_published = ?", true).
		First(&result).Error; err != nil {
		return models.Result{}, err
	}

	return result, nil
}

// Upsert writes a recomputed result row atomically on the composite natural
// key. Publish state and share token are deliberately left untouched so a
// recompute never clears them.
func (r *resultRepository) Upsert(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_id"}, {Name: "exam_id"}, {Name: "created_by"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"total", "percentage", "grade", "division", "rank", "updated_at",
		}),
	}).Create(result).Error
}

func (r *resultRepository) Save(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Save(result).Error
}
