package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rapor-go-api/internal/models"
)

func TestMarkRepositorySumConvertedByStudent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMarkRepository(db)

	partID := uint(1)
	marks := []models.Mark{
		{StudentID: 1, SubjectID: 1, ExamID: 7, SubjectPartID: &partID, Obtained: 60, Converted: 60, EnteredBy: 9},
		{StudentID: 1, SubjectID: 2, ExamID: 7, Obtained: 25, Converted: 12.5, EnteredBy: 9},
		{StudentID: 2, SubjectID: 1, ExamID: 7, Obtained: 40, Converted: 40, EnteredBy: 9},
		{StudentID: 2, SubjectID: 1, ExamID: 8, Obtained: 99, Converted: 99, EnteredBy: 9},
	}
	for i := range marks {
		require.NoError(t, db.Create(&marks[i]).Error)
	}

	totals, err := repo.SumConvertedByStudent(context.Background(), 7)
	require.NoError(t, err)

	byStudent := map[uint]float64{}
	for _, total := range totals {
		byStudent[total.StudentID] = total.Total
	}
	require.Equal(t, 72.5, byStudent[1])
	require.Equal(t, 40.0, byStudent[2])
	require.NotContains(t, byStudent, uint(3))
}

func TestMarkRepositoryUpsertWholeSubjectMarkUpdatesInPlace(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMarkRepository(db)

	first := models.Mark{StudentID: 1, SubjectID: 2, ExamID: 7, Obtained: 25, Converted: 12.5, EnteredBy: 9}
	require.NoError(t, repo.Upsert(context.Background(), &first))

	second := models.Mark{StudentID: 1, SubjectID: 2, ExamID: 7, Obtained: 30, Converted: 15, EnteredBy: 9}
	require.NoError(t, repo.Upsert(context.Background(), &second))

	var count int64
	require.NoError(t, db.Model(&models.Mark{}).
		Where("student_id = ? AND subject_id = ? AND exam_id = ?", 1, 2, 7).
		Count(&count).Error)
	require.Equal(t, int64(1), count, "re-entering a subject mark must not duplicate the row")
	require.Equal(t, first.ID, second.ID)

	var stored models.Mark
	require.NoError(t, db.First(&stored, first.ID).Error)
	require.Equal(t, 30.0, stored.Obtained)
	require.Equal(t, 15.0, stored.Converted)

	totals, err := repo.SumConvertedByStudent(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	require.Equal(t, 15.0, totals[0].Total)
}

func TestMarkRepositoryUpsertDistinguishesParts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMarkRepository(db)

	partID := uint(4)
	partMark := models.Mark{StudentID: 1, SubjectID: 2, ExamID: 7, SubjectPartID: &partID, Obtained: 50, Converted: 50, EnteredBy: 9}
	require.NoError(t, repo.Upsert(context.Background(), &partMark))

	wholeMark := models.Mark{StudentID: 1, SubjectID: 2, ExamID: 7, Obtained: 20, Converted: 20, EnteredBy: 9}
	require.NoError(t, repo.Upsert(context.Background(), &wholeMark))

	require.NotEqual(t, partMark.ID, wholeMark.ID)

	partMark.Obtained = 55
	partMark.Converted = 55
	require.NoError(t, repo.Upsert(context.Background(), &partMark))

	var count int64
	require.NoError(t, db.Model(&models.Mark{}).Where("exam_id = ?", 7).Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func TestMarkRepositoryUpdateConverted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMarkRepository(db)

	mark := models.Mark{StudentID: 1, SubjectID: 1, ExamID: 7, Obtained: 72, Converted: 72, EnteredBy: 9}
	require.NoError(t, db.Create(&mark).Error)

	require.NoError(t, repo.UpdateConverted(context.Background(), mark.ID, 57.6))

	var stored models.Mark
	require.NoError(t, db.First(&stored, mark.ID).Error)
	require.Equal(t, 57.6, stored.Converted)
	require.Equal(t, 72.0, stored.Obtained, "raw value untouched")
}
