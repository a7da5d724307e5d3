package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rapor-go-api/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func uintPtr(v uint) *uint        { return &v }

type recomputeFixture struct {
	exams    *fakeExamRepo
	subjects *fakeSubjectRepo
	students *fakeStudentRepo
	settings *fakeSettingsRepo
	marks    *fakeMarkRepo
	results  *fakeResultRepo
	events   *fakeEventPublisher
	service  ResultService
}

// newRecomputeFixture sets up class 1 owned by teacher 9 with exam 5, a
// two-part Math subject and a whole-graded English subject, and three
// enrolled students.
func newRecomputeFixture() *recomputeFixture {
	f := &recomputeFixture{
		exams: newFakeExamRepo(models.Exam{ID: 5, ClassID: 1, Name: "Midterm", OwnerID: 9}),
		subjects: &fakeSubjectRepo{subjects: []models.Subject{
			{
				ID: 1, ClassID: 1, Name: "Math", FullMark: 100, PassMark: 40, OwnerID: 9,
				Parts: []models.SubjectPart{
					{ID: 11, SubjectID: 1, Name: "Theory", PartType: models.PartTypeTheory, RawFullMark: 75, ConvertedFullMark: 75, PassMark: 30, IsActive: true},
					{ID: 12, SubjectID: 1, Name: "Practical", PartType: models.PartTypePractical, RawFullMark: 25, ConvertedFullMark: 25, PassMark: 10, IsActive: true},
				},
			},
			{ID: 2, ClassID: 1, Name: "English", FullMark: 50, PassMark: 20, OwnerID: 9},
		}},
		students: &fakeStudentRepo{students: []models.Student{
			{ID: 21, ClassID: 1, Name: "Alice", RollNumber: "1", Status: models.StudentStatusActive},
			{ID: 22, ClassID: 1, Name: "Bashir", RollNumber: "2", Status: models.StudentStatusActive},
			{ID: 23, ClassID: 1, Name: "Chitra", RollNumber: "3", Status: models.StudentStatusActive},
		}},
		settings: &fakeSettingsRepo{},
		marks:    &fakeMarkRepo{},
		results:  &fakeResultRepo{},
		events:   &fakeEventPublisher{},
	}

	f.service = NewResultService(
		f.exams, f.subjects, f.students, f.settings, f.marks, f.results,
		nil, f.events, testLogger(),
	)
	return f
}

func TestRecomputeUnknownExam(t *testing.T) {
	f := newRecomputeFixture()

	err := f.service.Recompute(context.Background(), 404, 9)

	assert.ErrorIs(t, err, ErrExamNotFound)
}

func TestRecomputeRanksAllStudents(t *testing.T) {
	f := newRecomputeFixture()

	// No exam overrides, so both subjects count as wholes: Math 100 and
	// English 50 for an exam full total of 150.
	seed := []models.Mark{
		{StudentID: 21, SubjectID: 1, ExamID: 5, SubjectPartID: uintPtr(11), Obtained: 60, Converted: 60, EnteredBy: 9},
		{StudentID: 21, SubjectID: 1, ExamID: 5, SubjectPartID: uintPtr(12), Obtained: 20, Converted: 20, EnteredBy: 9},
		{StudentID: 21, SubjectID: 2, ExamID: 5, Obtained: 40, Converted: 40, EnteredBy: 9},
		{StudentID: 22, SubjectID: 1, ExamID: 5, SubjectPartID: uintPtr(11), Obtained: 60, Converted: 60, EnteredBy: 9},
		{StudentID: 22, SubjectID: 1, ExamID: 5, SubjectPartID: uintPtr(12), Obtained: 20, Converted: 20, EnteredBy: 9},
		{StudentID: 22, SubjectID: 2, ExamID: 5, Obtained: 40, Converted: 40, EnteredBy: 9},
	}
	for i := range seed {
		require.NoError(t, f.marks.Upsert(context.Background(), &seed[i]))
	}

	require.NoError(t, f.service.Recompute(context.Background(), 5, 9))

	rows, err := f.results.ListByExamAndOwner(context.Background(), 5, 9)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Two identical totals share rank 1; the markless student still gets a
	// row and the next competition rank.
	assert.Equal(t, uint(21), rows[0].StudentID)
	assert.Equal(t, 1, rows[0].Rank)
	assert.InDelta(t, 120.0, rows[0].Total, 1e-9)
	assert.InDelta(t, 80.0, rows[0].Percentage, 1e-9)
	assert.Equal(t, "A", rows[0].Grade)
	assert.Equal(t, "Distinction", rows[0].Division)

	assert.Equal(t, uint(22), rows[1].StudentID)
	assert.Equal(t, 1, rows[1].Rank)

	assert.Equal(t, uint(23), rows[2].StudentID)
	assert.Equal(t, 3, rows[2].Rank)
	assert.Zero(t, rows[2].Total)
	assert.Equal(t, "D", rows[2].Grade)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, EventResultsRecomputed, f.events.events[0].kind)
	assert.Equal(t, 3, f.events.events[0].rows)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	f := newRecomputeFixture()

	mark := models.Mark{StudentID: 21, SubjectID: 2, ExamID: 5, Obtained: 33, Converted: 33, EnteredBy: 9}
	require.NoError(t, f.marks.Upsert(context.Background(), &mark))

	require.NoError(t, f.service.Recompute(context.Background(), 5, 9))
	first, err := f.results.ListByExamAndOwner(context.Background(), 5, 9)
	require.NoError(t, err)

	require.NoError(t, f.service.Recompute(context.Background(), 5, 9))
	second, err := f.results.ListByExamAndOwner(context.Background(), 5, 9)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, second, 3)
}

func TestRecomputeReconvertsUnderNewSettings(t *testing.T) {
	f := newRecomputeFixture()

	// Entered under the default basis: 60/75 stays 60.
	mark := models.Mark{StudentID: 21, SubjectID: 1, ExamID: 5, SubjectPartID: uintPtr(11), Obtained: 60, Converted: 60, EnteredBy: 9}
	require.NoError(t, f.marks.Upsert(context.Background(), &mark))

	// Override the theory part to convert down to 50.
	f.settings.partSettings = []models.ExamSubjectPartSetting{{
		ID: 1, ExamID: 5, SubjectPartID: 11,
		FullMark: 75, PassMark: 30, HasConversion: true, ConvertToMark: floatPtr(50),
	}}

	require.NoError(t, f.service.Recompute(context.Background(), 5, 9))

	stored, err := f.marks.ListByExam(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.InDelta(t, 40.0, stored[0].Converted, 1e-9)

	// Subjects with an overridden part contribute only through those parts:
	// Math counts 50, English its whole 50, exam full total 100.
	rows, err := f.results.ListByExamAndOwner(context.Background(), 5, 9)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.InDelta(t, 40.0, rows[0].Total, 1e-9)
	assert.InDelta(t, 40.0, rows[0].Percentage, 1e-9)
}

func TestRecomputeSubjectSettingOverridesBasis(t *testing.T) {
	f := newRecomputeFixture()

	// English graded out of 100 for this exam instead of its default 50.
	f.settings.subjectSettings = []models.ExamSubjectSetting{{
		ID: 1, ExamID: 5, SubjectID: 2, FullMark: 100, PassMark: 40,
	}}

	mark := models.Mark{StudentID: 21, SubjectID: 2, ExamID: 5, Obtained: 80, Converted: 80, EnteredBy: 9}
	require.NoError(t, f.marks.Upsert(context.Background(), &mark))

	require.NoError(t, f.service.Recompute(context.Background(), 5, 9))

	rows, err := f.results.ListByExamAndOwner(context.Background(), 5, 9)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Full total is Math 100 + English 100.
	assert.InDelta(t, 80.0, rows[0].Total, 1e-9)
	assert.InDelta(t, 40.0, rows[0].Percentage, 1e-9)
}

func TestRecomputeZeroBasisYieldsZeroes(t *testing.T) {
	f := newRecomputeFixture()
	f.subjects.subjects = []models.Subject{
		{ID: 3, ClassID: 1, Name: "Empty", FullMark: 0, PassMark: 0, OwnerID: 9},
	}

	require.NoError(t, f.service.Recompute(context.Background(), 5, 9))

	rows, err := f.results.ListByExamAndOwner(context.Background(), 5, 9)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Zero(t, row.Total)
		assert.Zero(t, row.Percentage)
		assert.Equal(t, "D", row.Grade)
	}
}

func TestRecomputePreservesPublishState(t *testing.T) {
	f := newRecomputeFixture()

	require.NoError(t, f.service.Recompute(context.Background(), 5, 9))

	rows, err := f.results.ListByExamAndOwner(context.Background(), 5, 9)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	token := "keep-me"
	rows[0].IsPublished = true
	rows[0].ShareToken = &token
	require.NoError(t, f.results.Save(context.Background(), &rows[0]))

	mark := models.Mark{StudentID: rows[0].StudentID, SubjectID: 2, ExamID: 5, Obtained: 10, Converted: 10, EnteredBy: 9}
	require.NoError(t, f.marks.Upsert(context.Background(), &mark))
	require.NoError(t, f.service.Recompute(context.Background(), 5, 9))

	after, err := f.results.ListByExamAndOwner(context.Background(), 5, 9)
	require.NoError(t, err)

	var found bool
	for _, row := range after {
		if row.StudentID != rows[0].StudentID {
			continue
		}
		found = true
		assert.True(t, row.IsPublished)
		require.NotNil(t, row.ShareToken)
		assert.Equal(t, token, *row.ShareToken)
		assert.InDelta(t, 10.0, row.Total, 1e-9)
	}
	assert.True(t, found)
}
