package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/rapor-go-api/internal/models"
)

// SubjectRepository defines data operations for subjects and their parts.
type SubjectRepository interface {
	ListByClass(ctx context.Context, classID uint) ([]models.Subject, error)
	GetByID(ctx context.Context, id uint) (models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id uint) error

	GetPartByID(ctx context.Context, id uint) (models.SubjectPart, error)
	CreatePart(ctx context.Context, part *models.SubjectPart) error
	UpdatePart(ctx context.Context, part *models.SubjectPart) error
	DeletePart(ctx context.Context, id uint) error
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository instantiates the repository.
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Subject{}).
		Preload("Parts", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		})
}

func (r *subjectRepository) ListByClass(ctx context.Context, classID uint) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := r.baseQuery(ctx).
		Where("class_id = ?", classID).
		Order("name ASC").
		Find(&subjects).Error; err != nil {
		return nil, err
	}

	return subjects, nil
}

func (r *subjectRepository) GetByID(ctx context.Context, id uint) (models.Subject, error) {
	var subject models.Subject
	if err := r.baseQuery(ctx).First(&subject, id).Error; err != nil {
		return models.Subject{}, err
	}

	return subject, nil
}

func (r *subjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	return r.db.WithContext(ctx).Save(subject).Error
}

func (r *subjectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Subject{}, id).Error
}

func (r *subjectRepository) GetPartByID(ctx context.Context, id uint) (models.SubjectPart, error) {
	var part models.SubjectPart
	if err := r.db.WithContext(ctx).First(&part, id).Error; err != nil {
		return models.SubjectPart{}, err
	}

	return part, nil
}

func (r *subjectRepository) CreatePart(ctx context.Context, part *models.SubjectPart) error {
	return r.db.WithContext(ctx).Create(part).Error
}

func (r *subjectRepository) UpdatePart(ctx context.Context, part *models.SubjectPart) error {
	return r.db.WithContext(ctx).Save(part).Error
}

func (r *subjectRepository) DeletePart(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.SubjectPart{}, id).Error
}
