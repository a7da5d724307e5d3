package service

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/rapor-go-api/internal/dto"
	"github.com/noah-isme/rapor-go-api/internal/models"
	"github.com/noah-isme/rapor-go-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type fakeExamRepo struct {
	exams map[uint]models.Exam
}

func newFakeExamRepo(exams ...models.Exam) *fakeExamRepo {
	repo := &fakeExamRepo{exams: map[uint]models.Exam{}}
	for _, exam := range exams {
		repo.exams[exam.ID] = exam
	}
	return repo
}

func (r *fakeExamRepo) ListByOwner(_ context.Context, ownerID uint) ([]models.Exam, error) {
	var out []models.Exam
	for _, exam := range r.exams {
		if exam.OwnerID == ownerID {
			out = append(out, exam)
		}
	}
	return out, nil
}

func (r *fakeExamRepo) GetByID(_ context.Context, id uint) (models.Exam, error) {
	exam, ok := r.exams[id]
	if !ok {
		return models.Exam{}, gorm.ErrRecordNotFound
	}
	return exam, nil
}

func (r *fakeExamRepo) Create(_ context.Context, exam *models.Exam) error {
	exam.ID = uint(len(r.exams) + 1)
	r.exams[exam.ID] = *exam
	return nil
}

func (r *fakeExamRepo) Update(_ context.Context, exam *models.Exam) error {
	r.exams[exam.ID] = *exam
	return nil
}

func (r *fakeExamRepo) Delete(_ context.Context, id uint) error {
	delete(r.exams, id)
	return nil
}

type fakeClassRepo struct {
	classes map[uint]models.Class
}

func newFakeClassRepo(classes ...models.Class) *fakeClassRepo {
	repo := &fakeClassRepo{classes: map[uint]models.Class{}}
	for _, class := range classes {
		repo.classes[class.ID] = class
	}
	return repo
}

func (r *fakeClassRepo) ListByOwner(_ context.Context, ownerID uint) ([]models.Class, error) {
	var out []models.Class
	for _, class := range r.classes {
		if class.OwnerID == ownerID {
			out = append(out, class)
		}
	}
	return out, nil
}

func (r *fakeClassRepo) GetByID(_ context.Context, id uint) (models.Class, error) {
	class, ok := r.classes[id]
	if !ok {
		return models.Class{}, gorm.ErrRecordNotFound
	}
	return class, nil
}

func (r *fakeClassRepo) Create(_ context.Context, class *models.Class) error {
	class.ID = uint(len(r.classes) + 1)
	r.classes[class.ID] = *class
	return nil
}

func (r *fakeClassRepo) Update(_ context.Context, class *models.Class) error {
	r.classes[class.ID] = *class
	return nil
}

func (r *fakeClassRepo) Delete(_ context.Context, id uint) error {
	delete(r.classes, id)
	return nil
}

type fakeStudentRepo struct {
	students []models.Student
}

func (r *fakeStudentRepo) ListByClass(_ context.Context, classID uint) ([]models.Student, error) {
	var out []models.Student
	for _, student := range r.students {
		if student.ClassID == classID {
			out = append(out, student)
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id uint) (models.Student, error) {
	for _, student := range r.students {
		if student.ID == id {
			return student, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (r *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	student.ID = uint(len(r.students) + 1)
	r.students = append(r.students, *student)
	return nil
}

func (r *fakeStudentRepo) Update(_ context.Context, student *models.Student) error {
	for i := range r.students {
		if r.students[i].ID == student.ID {
			r.students[i] = *student
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeStudentRepo) Delete(_ context.Context, id uint) error {
	for i := range r.students {
		if r.students[i].ID == id {
			r.students = append(r.students[:i], r.students[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeSubjectRepo struct {
	subjects []models.Subject
}

func (r *fakeSubjectRepo) ListByClass(_ context.Context, classID uint) ([]models.Subject, error) {
	var out []models.Subject
	for _, subject := range r.subjects {
		if subject.ClassID == classID {
			out = append(out, subject)
		}
	}
	return out, nil
}

func (r *fakeSubjectRepo) GetByID(_ context.Context, id uint) (models.Subject, error) {
	for _, subject := range r.subjects {
		if subject.ID == id {
			return subject, nil
		}
	}
	return models.Subject{}, gorm.ErrRecordNotFound
}

func (r *fakeSubjectRepo) Create(_ context.Context, subject *models.Subject) error {
	subject.ID = uint(len(r.subjects) + 1)
	r.subjects = append(r.subjects, *subject)
	return nil
}

func (r *fakeSubjectRepo) Update(_ context.Context, subject *models.Subject) error {
	for i := range r.subjects {
		if r.subjects[i].ID == subject.ID {
			r.subjects[i] = *subject
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSubjectRepo) Delete(_ context.Context, id uint) error {
	for i := range r.subjects {
		if r.subjects[i].ID == id {
			r.subjects = append(r.subjects[:i], r.subjects[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeSubjectRepo) GetPartByID(_ context.Context, id uint) (models.SubjectPart, error) {
	for _, subject := range r.subjects {
		for _, part := range subject.Parts {
			if part.ID == id {
				return part, nil
			}
		}
	}
	return models.SubjectPart{}, gorm.ErrRecordNotFound
}

func (r *fakeSubjectRepo) CreatePart(_ context.Context, part *models.SubjectPart) error {
	for i := range r.subjects {
		if r.subjects[i].ID == part.SubjectID {
			part.ID = uint(100 + len(r.subjects[i].Parts) + 1)
			r.subjects[i].Parts = append(r.subjects[i].Parts, *part)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSubjectRepo) UpdatePart(_ context.Context, part *models.SubjectPart) error {
	for i := range r.subjects {
		for j := range r.subjects[i].Parts {
			if r.subjects[i].Parts[j].ID == part.ID {
				r.subjects[i].Parts[j] = *part
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSubjectRepo) DeletePart(_ context.Context, id uint) error {
	for i := range r.subjects {
		for j := range r.subjects[i].Parts {
			if r.subjects[i].Parts[j].ID == id {
				r.subjects[i].Parts = append(r.subjects[i].Parts[:j], r.subjects[i].Parts[j+1:]...)
				return nil
			}
		}
	}
	return nil
}

type fakeSettingsRepo struct {
	subjectSettings []models.ExamSubjectSetting
	partSettings    []models.ExamSubjectPartSetting
}

func (r *fakeSettingsRepo) ListSubjectSettings(_ context.Context, examID uint) ([]models.ExamSubjectSetting, error) {
	var out []models.ExamSubjectSetting
	for _, setting := range r.subjectSettings {
		if setting.ExamID == examID {
			out = append(out, setting)
		}
	}
	return out, nil
}

func (r *fakeSettingsRepo) ListPartSettings(_ context.Context, examID uint) ([]models.ExamSubjectPartSetting, error) {
	var out []models.ExamSubjectPartSetting
	for _, setting := range r.partSettings {
		if setting.ExamID == examID {
			out = append(out, setting)
		}
	}
	return out, nil
}

func (r *fakeSettingsRepo) UpsertSubjectSetting(_ context.Context, setting *models.ExamSubjectSetting) error {
	for i := range r.subjectSettings {
		if r.subjectSettings[i].ExamID == setting.ExamID && r.subjectSettings[i].SubjectID == setting.SubjectID {
			setting.ID = r.subjectSettings[i].ID
			r.subjectSettings[i] = *setting
			return nil
		}
	}
	setting.ID = uint(len(r.subjectSettings) + 1)
	r.subjectSettings = append(r.subjectSettings, *setting)
	return nil
}

func (r *fakeSettingsRepo) UpsertPartSetting(_ context.Context, setting *models.ExamSubjectPartSetting) error {
	for i := range r.partSettings {
		if r.partSettings[i].ExamID == setting.ExamID && r.partSettings[i].SubjectPartID == setting.SubjectPartID {
			setting.ID = r.partSettings[i].ID
			r.partSettings[i] = *setting
			return nil
		}
	}
	setting.ID = uint(len(r.partSettings) + 1)
	r.partSettings = append(r.partSettings, *setting)
	return nil
}

func (r *fakeSettingsRepo) DeleteSubjectSetting(_ context.Context, examID, subjectID uint) error {
	for i := range r.subjectSettings {
		if r.subjectSettings[i].ExamID == examID && r.subjectSettings[i].SubjectID == subjectID {
			r.subjectSettings = append(r.subjectSettings[:i], r.subjectSettings[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeSettingsRepo) DeletePartSetting(_ context.Context, examID, partID uint) error {
	for i := range r.partSettings {
		if r.partSettings[i].ExamID == examID && r.partSettings[i].SubjectPartID == partID {
			r.partSettings = append(r.partSettings[:i], r.partSettings[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeMarkRepo struct {
	mu     sync.Mutex
	nextID uint
	marks  []models.Mark
}

func (r *fakeMarkRepo) List(_ context.Context, filter repository.MarkFilter) ([]models.Mark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Mark
	for _, mark := range r.marks {
		if mark.ExamID != filter.ExamID {
			continue
		}
		if filter.SubjectID != nil && mark.SubjectID != *filter.SubjectID {
			continue
		}
		if filter.StudentID != nil && mark.StudentID != *filter.StudentID {
			continue
		}
		out = append(out, mark)
	}
	return out, nil
}

func (r *fakeMarkRepo) ListByExam(_ context.Context, examID uint) ([]models.Mark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Mark
	for _, mark := range r.marks {
		if mark.ExamID == examID {
			out = append(out, mark)
		}
	}
	return out, nil
}

func (r *fakeMarkRepo) Upsert(_ context.Context, mark *models.Mark) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.marks {
		existing := &r.marks[i]
		if existing.StudentID != mark.StudentID || existing.SubjectID != mark.SubjectID || existing.ExamID != mark.ExamID {
			continue
		}
		if !samePart(existing.SubjectPartID, mark.SubjectPartID) {
			continue
		}
		mark.ID = existing.ID
		existing.Obtained = mark.Obtained
		existing.Converted = mark.Converted
		existing.EnteredBy = mark.EnteredBy
		return nil
	}

	r.nextID++
	mark.ID = r.nextID
	r.marks = append(r.marks, *mark)
	return nil
}

func (r *fakeMarkRepo) UpdateConverted(_ context.Context, id uint, converted float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.marks {
		if r.marks[i].ID == id {
			r.marks[i].Converted = converted
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeMarkRepo) SumConvertedByStudent(_ context.Context, examID uint) ([]repository.StudentTotal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	totals := map[uint]float64{}
	for _, mark := range r.marks {
		if mark.ExamID == examID {
			totals[mark.StudentID] += mark.Converted
		}
	}

	out := make([]repository.StudentTotal, 0, len(totals))
	for studentID, total := range totals {
		out = append(out, repository.StudentTotal{StudentID: studentID, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

func samePart(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type fakeResultRepo struct {
	mu      sync.Mutex
	nextID  uint
	results []models.Result
}

func (r *fakeResultRepo) ListByExamAndOwner(_ context.Context, examID, ownerID uint) ([]models.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Result
	for _, result := range r.results {
		if result.ExamID == examID && result.CreatedBy == ownerID {
			out = append(out, result)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (r *fakeResultRepo) GetByToken(_ context.Context, token string) (models.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, result := range r.results {
		if result.IsPublished && result.HasShareToken() && *result.ShareToken == token {
			return result, nil
		}
	}
	return models.Result{}, gorm.ErrRecordNotFound
}

// Upsert mirrors the production conflict clause: only the computed columns
// change on conflict, publish state and tokens survive.
func (r *fakeResultRepo) Upsert(_ context.Context, result *models.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.results {
		existing := &r.results[i]
		if existing.StudentID != result.StudentID || existing.ExamID != result.ExamID || existing.CreatedBy != result.CreatedBy {
			continue
		}
		existing.Total = result.Total
		existing.Percentage = result.Percentage
		existing.Grade = result.Grade
		existing.Division = result.Division
		existing.Rank = result.Rank
		*result = *existing
		return nil
	}

	r.nextID++
	result.ID = r.nextID
	r.results = append(r.results, *result)
	return nil
}

func (r *fakeResultRepo) Save(_ context.Context, result *models.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.results {
		if r.results[i].ID == result.ID {
			r.results[i] = *result
			return nil
		}
	}
	r.nextID++
	result.ID = r.nextID
	r.results = append(r.results, *result)
	return nil
}

type recordedEvent struct {
	kind   string
	examID uint
	rows   int
}

type fakeEventPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *fakeEventPublisher) Publish(_ context.Context, kind string, examID, _ uint, rows int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{kind: kind, examID: examID, rows: rows})
}

type fakeActivityRecorder struct {
	entries []ActivityEntry
}

func (r *fakeActivityRecorder) Record(_ context.Context, entry ActivityEntry) (dto.ActivityResponse, error) {
	r.entries = append(r.entries, entry)
	return dto.ActivityResponse{}, nil
}
