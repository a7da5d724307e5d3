package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/rapor-go-api/internal/models"
)

// StudentTotal is one student's summed converted marks for an exam.
type StudentTotal struct {
	StudentID uint
	Total     float64
}

// MarkFilter narrows mark queries.
type MarkFilter struct {
	ExamID    uint
	SubjectID *uint
	StudentID *uint
}

// MarkRepository defines data operations for raw marks.
type MarkRepository interface {
	List(ctx context.Context, filter MarkFilter) ([]models.Mark, error)
	ListByExam(ctx context.Context, examID uint) ([]models.Mark, error)
	Upsert(ctx context.Context, mark *models.Mark) error
	UpdateConverted(ctx context.Context, id uint, converted float64) error
	SumConvertedByStudent(ctx context.Context, examID uint) ([]StudentTotal, error)
}

type markRepository struct {
	db *gorm.DB
}

// NewMarkRepository instantiates the repository.
func NewMarkRepository(db *gorm.DB) MarkRepository {
	return &markRepository{db: db}
}

func (r *markRepository) List(ctx context.Context, filter MarkFilter) ([]models.Mark, error) {
	query := r.db.WithContext(ctx).Model(&models.Mark{}).Where("exam_id = ?", filter.ExamID)

	if filter.SubjectID != nil {
		query = query.Where("subject_id = ?", *filter.SubjectID)
	}
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	var marks []models.Mark
	if err := query.Order("id ASC").Find(&marks).Error; err != nil {
		return nil, err
	}

	return marks, nil
}

func (r *markRepository) ListByExam(ctx context.Context, examID uint) ([]models.Mark, error) {
	return r.List(ctx, MarkFilter{ExamID: examID})
}

// Upsert writes one mark per (student, subject, exam, part) entry. Whole-subject
// marks carry a NULL subject_part_id, which unique indexes treat as distinct, so
// an ON CONFLICT clause cannot match them; the entry is located explicitly
// instead and updated in place.
func (r *markRepository) Upsert(ctx context.Context, mark *models.Mark) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where(
			"student_id = ? AND subject_id = ? AND exam_id = ?",
			mark.StudentID, mark.SubjectID, mark.ExamID,
		)
		if mark.SubjectPartID != nil {
			query = query.Where("subject_part_id = ?", *mark.SubjectPartID)
		} else {
			query = query.Where("subject_part_id IS NULL")
		}

		var existing models.Mark
		err := query.First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(mark).Error
		}
		if err != nil {
			return err
		}

		existing.Obtained = mark.Obtained
		existing.Converted = mark.Converted
		existing.EnteredBy = mark.EnteredBy
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*mark = existing

		return nil
	})
}

func (r *markRepository) UpdateConverted(ctx context.Context, id uint, converted float64) error {
	return r.db.WithContext(ctx).Model(&models.Mark{}).
		Where("id = ?", id).
		Update("converted", converted).Error
}

func (r *markRepository) SumConvertedByStudent(ctx context.Context, examID uint) ([]StudentTotal, error) {
	var totals []StudentTotal
	if err := r.db.WithContext(ctx).Model(&models.Mark{}).
		Select("student_id, COALESCE(SUM(converted), 0) AS total").
		Where("exam_id = ?", examID).
		Group("student_id").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	return totals, nil
}
