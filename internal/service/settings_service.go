package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/rapor-go-api/internal/dto"
	"github.com/noah-isme/rapor-go-api/internal/models"
	"github.com/noah-isme/rapor-go-api/internal/repository"
)

// SettingsService manages per-exam grading basis overrides. Every write
// re-runs the recompute so stored results never lag the settings.
type SettingsService interface {
	List(ctx context.Context, examID, teacherID uint) ([]dto.SubjectSettingResponse, []dto.PartSettingResponse, error)
	UpsertSubjectSetting(ctx context.Context, examID, teacherID uint, req dto.SubjectSettingUpsertRequest) (dto.SubjectSettingResponse, error)
	UpsertPartSetting(ctx context.Context, examID, teacherID uint, req dto.PartSettingUpsertRequest) (dto.PartSettingResponse, error)
	DeleteSubjectSetting(ctx context.Context, examID, subjectID, teacherID uint) error
	DeletePartSetting(ctx context.Context, examID, partID, teacherID uint) error
}

type settingsService struct {
	exams     repository.ExamRepository
	settings  repository.SettingsRepository
	recompute ResultService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSettingsService constructs the exam settings service.
func NewSettingsService(
	exams repository.ExamRepository,
	settings repository.SettingsRepository,
	recompute ResultService,
	validate *validator.Validate,
	logger zerolog.Logger,
) SettingsService {
	return &settingsService{
		exams:     exams,
		settings:  settings,
		recompute: recompute,
		validator: validate,
		logger:    logger.With().Str("component", "settings_service").Logger(),
	}
}

func (s *settingsService) List(ctx context.Context, examID, teacherID uint) ([]dto.SubjectSettingResponse, []dto.PartSettingResponse, error) {
	if err := s.checkExamOwner(ctx, examID, teacherID); err != nil {
		return nil, nil, err
	}

	subjectRows, err := s.settings.ListSubjectSettings(ctx, examID)
	if err != nil {
		return nil, nil, err
	}
	partRows, err := s.settings.ListPartSettings(ctx, examID)
	if err != nil {
		return nil, nil, err
	}

	subjectResponses := make([]dto.SubjectSettingResponse, 0, len(subjectRows))
	for _, row := range subjectRows {
		subjectResponses = append(subjectResponses, dto.NewSubjectSettingResponse(row))
	}
	partResponses := make([]dto.PartSettingResponse, 0, len(partRows))
	for _, row := range partRows {
		partResponses = append(partResponses, dto.NewPartSettingResponse(row))
	}

	return subjectResponses, partResponses, nil
}

func (s *settingsService) UpsertSubjectSetting(ctx context.Context, examID, teacherID uint, req dto.SubjectSettingUpsertRequest) (dto.SubjectSettingResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SubjectSettingResponse{}, err
	}
	if err := s.checkExamOwner(ctx, examID, teacherID); err != nil {
		return dto.SubjectSettingResponse{}, err
	}

	setting := models.ExamSubjectSetting{
		ExamID:        examID,
		SubjectID:     req.SubjectID,
		FullMark:      req.FullMark,
		PassMark:      req.PassMark,
		HasConversion: req.HasConversion,
		ConvertToMark: req.ConvertToMark,
	}
	if err := s.settings.UpsertSubjectSetting(ctx, &setting); err != nil {
		return dto.SubjectSettingResponse{}, err
	}

	if err := s.recompute.Recompute(ctx, examID, teacherID); err != nil {
		return dto.SubjectSettingResponse{}, err
	}

	return dto.NewSubjectSettingResponse(setting), nil
}

func (s *settingsService) UpsertPartSetting(ctx context.Context, examID, teacherID uint, req dto.PartSettingUpsertRequest) (dto.PartSettingResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.PartSettingResponse{}, err
	}
	if err := s.checkExamOwner(ctx, examID, teacherID); err != nil {
		return dto.PartSettingResponse{}, err
	}

	setting := models.ExamSubjectPartSetting{
		ExamID:        examID,
		SubjectPartID: req.SubjectPartID,
		FullMark:      req.FullMark,
		PassMark:      req.PassMark,
		HasConversion: req.HasConversion,
		ConvertToMark: req.ConvertToMark,
	}
	if err := s.settings.UpsertPartSetting(ctx, &setting); err != nil {
		return dto.PartSettingResponse{}, err
	}

	if err := s.recompute.Recompute(ctx, examID, teacherID); err != nil {
		return dto.PartSettingResponse{}, err
	}

	return dto.NewPartSettingResponse(setting), nil
}

func (s *settingsService) DeleteSubjectSetting(ctx context.Context, examID, subjectID, teacherID uint) error {
	if err := s.checkExamOwner(ctx, examID, teacherID); err != nil {
		return err
	}
	if err := s.settings.DeleteSubjectSetting(ctx, examID, subjectID); err != nil {
		return err
	}

	return s.recompute.Recompute(ctx, examID, teacherID)
}

func (s *settingsService) DeletePartSetting(ctx context.Context, examID, partID, teacherID uint) error {
	if err := s.checkExamOwner(ctx, examID, teacherID); err != nil {
		return err
	}
	if err := s.settings.DeletePartSetting(ctx, examID, partID); err != nil {
		return err
	}

	return s.recompute.Recompute(ctx, examID, teacherID)
}

func (s *settingsService) checkExamOwner(ctx context.Context, examID, teacherID uint) error {
	exam, err := s.exams.GetByID(ctx, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamNotFound
		}
		return err
	}
	if exam.OwnerID != teacherID {
		return ErrForbidden
	}

	return nil
}
