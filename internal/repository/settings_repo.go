package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/rapor-go-api/internal/models"
)

// SettingsRepository defines data operations for per-exam grading overrides.
type SettingsRepository interface {
	ListSubjectSettings(ctx context.Context, examID uint) ([]models.ExamSubjectSetting, error)
	ListPartSettings(ctx context.Context, examID uint) ([]models.ExamSubjectPartSetting, error)
	UpsertSubjectSetting(ctx context.Context, setting *models.ExamSubjectSetting) error
	UpsertPartSetting(ctx context.Context, setting *models.ExamSubjectPartSetting) error
	DeleteSubjectSetting(ctx context.Context, examID, subjectID uint) error
	DeletePartSetting(ctx context.Context, examID, partID uint) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository instantiates the repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) ListSubjectSettings(ctx context.Context, examID uint) ([]models.ExamSubjectSetting, error) {
	var settings []models.ExamSubjectSetting
	if err := r.db.WithContext(ctx).
		Where("exam_id = ?", examID).
		Find(&settings).Error; err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *settingsRepository) ListPartSettings(ctx context.Context, examID uint) ([]models.ExamSubjectPartSetting, error) {
	var settings []models.ExamSubjectPartSetting
	if err := r.db.WithContext(ctx).
		Where("exam_id = ?", examID).
		Find(&settings).Error; err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *settingsRepository) UpsertSubjectSetting(ctx context.Context, setting *models.ExamSubjectSetting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "exam_id"}, {Name: "subject_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_mark", "pass_mark", "has_conversion", "convert_to_mark", "updated_at",
		}),
	}).Create(setting).Error
}

func (r *settingsRepository) UpsertPartSetting(ctx context.Context, setting *models.ExamSubjectPartSetting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "exam_id"}, {Name: "subject_part_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_mark", "pass_mark", "has_conversion", "convert_to_mark", "updated_at",
		}),
	}).Create(setting).Error
}

func (r *settingsRepository) DeleteSubjectSetting(ctx context.Context, examID, subjectID uint) error {
	return r.db.WithContext(ctx).
		Where("exam_id = ? AND subject_id = ?", examID, subjectID).
		Delete(&models.ExamSubjectSetting{}).Error
}

func (r *settingsRepository) DeletePartSetting(ctx context.Context, examID, partID uint) error {
	return r.db.WithContext(ctx).
		Where("exam_id = ? AND subject_part_id = ?", examID, partID).
		Delete(&models.ExamSubjectPartSetting{}).Error
}
