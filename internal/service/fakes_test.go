package service

import (
	"context"
	"sync"
	"time"

	"github.com/minhlq/lingolab/internal/model"
	"gorm.io/gorm"
)

// In-memory repository fakes. The attempt fake enforces the same uniqueness
// the partial index provides in postgres, so the conflict-retry path can be
// exercised without a database.

type fakeAttemptRepo struct {
	mu       sync.Mutex
	attempts map[uint]*model.ExerciseAttempt
	nextID   uint
	// forcedConflicts makes the next N Creates fail with ErrDuplicatedKey
	// without inserting, simulating a row that vanished before the re-query.
	forcedConflicts int
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{attempts: make(map[uint]*model.ExerciseAttempt)}
}

func (r *fakeAttemptRepo) Create(attempt *model.ExerciseAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forcedConflicts > 0 {
		r.forcedConflicts--
		return gorm.ErrDuplicatedKey
	}
	if attempt.Status == model.AttemptStatusInProgress {
		for _, a := range r.attempts {
			if a.ExerciseSetID == attempt.ExerciseSetID && a.StudentID == attempt.StudentID && a.Status == model.AttemptStatusInProgress {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	r.nextID++
	attempt.ID = r.nextID
	stored := *attempt
	r.attempts[attempt.ID] = &stored
	return nil
}

func (r *fakeAttemptRepo) Update(attempt *model.ExerciseAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *attempt
	r.attempts[attempt.ID] = &stored
	return nil
}

func (r *fakeAttemptRepo) FindByID(id uint) (*model.ExerciseAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *a
	return &out, nil
}

func (r *fakeAttemptRepo) FindByIDWithAnswers(id uint) (*model.ExerciseAttempt, error) {
	return r.FindByID(id)
}

func (r *fakeAttemptRepo) FindInProgress(setID, studentID uint) (*model.ExerciseAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *model.ExerciseAttempt
	for _, a := range r.attempts {
		if a.ExerciseSetID == setID && a.StudentID == studentID && a.Status == model.AttemptStatusInProgress {
			if best == nil || a.AttemptNumber > best.AttemptNumber {
				best = a
			}
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	out := *best
	return &out, nil
}

func (r *fakeAttemptRepo) MaxAttemptNumber(setID, studentID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := 0
	for _, a := range r.attempts {
		if a.ExerciseSetID == setID && a.StudentID == studentID && a.AttemptNumber > max {
			max = a.AttemptNumber
		}
	}
	return max, nil
}

func (r *fakeAttemptRepo) CountBySetAndStudent(setID, studentID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, a := range r.attempts {
		if a.ExerciseSetID == setID && a.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

func (r *fakeAttemptRepo) FindAllBySetAndStudent(setID, studentID uint) ([]model.ExerciseAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ExerciseAttempt
	for _, a := range r.attempts {
		if a.ExerciseSetID == setID && a.StudentID == studentID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) inProgressCount(setID, studentID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, a := range r.attempts {
		if a.ExerciseSetID == setID && a.StudentID == studentID && a.Status == model.AttemptStatusInProgress {
			count++
		}
	}
	return count
}

type fakeAnswerRepo struct {
	mu      sync.Mutex
	byKey  map[[2]uint]*model.StudentAnswer
	byID   map[uint]*model.StudentAnswer
	nextID uint
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{
		byKey: make(map[[2]uint]*model.StudentAnswer),
		byID:  make(map[uint]*model.StudentAnswer),
	}
}

func (r *fakeAnswerRepo) Upsert(answer *model.StudentAnswer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uint{answer.AttemptID, answer.QuestionID}
	if existing, ok := r.byKey[key]; ok {
		answer.ID = existing.ID
	} else {
		r.nextID++
		answer.ID = r.nextID
	}
	stored := *answer
	r.byKey[key] = &stored
	r.byID[answer.ID] = &stored
	return nil
}

func (r *fakeAnswerRepo) FindByID(id uint) (*model.StudentAnswer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *a
	return &out, nil
}

func (r *fakeAnswerRepo) FindByIDWithQuestion(id uint) (*model.StudentAnswer, error) {
	return r.FindByID(id)
}

func (r *fakeAnswerRepo) FindByAttemptID(attemptID uint) ([]model.StudentAnswer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.StudentAnswer
	for _, a := range r.byKey {
		if a.AttemptID == attemptID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAnswerRepo) FindByAttemptAndQuestion(attemptID, questionID uint) (*model.StudentAnswer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byKey[[2]uint{attemptID, questionID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *a
	return &out, nil
}

// seed inserts an answer directly, bypassing upsert key bookkeeping updates.
func (r *fakeAnswerRepo) seed(answer model.StudentAnswer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if answer.ID == 0 {
		r.nextID++
		answer.ID = r.nextID
	} else if answer.ID > r.nextID {
		r.nextID = answer.ID
	}
	stored := answer
	r.byKey[[2]uint{answer.AttemptID, answer.QuestionID}] = &stored
	r.byID[answer.ID] = &stored
}

type fakeQuestionRepo struct {
	questions map[uint]*model.Question
}

func newFakeQuestionRepo(questions ...model.Question) *fakeQuestionRepo {
	r := &fakeQuestionRepo{questions: make(map[uint]*model.Question)}
	for i := range questions {
		q := questions[i]
		r.questions[q.ID] = &q
	}
	return r
}

func (r *fakeQuestionRepo) Create(q *model.Question) error {
	r.questions[q.ID] = q
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (r *fakeQuestionRepo) FindByIDWithOptions(id uint) (*model.Question, error) {
	return r.FindByID(id)
}

func (r *fakeQuestionRepo) FindBySetID(setID uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if q.ExerciseSetID == setID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Update(q *model.Question) error { return nil }
func (r *fakeQuestionRepo) Delete(id uint) error           { return nil }

type fakeSetRepo struct {
	sets map[uint]*model.ExerciseSet
}

func newFakeSetRepo(sets ...model.ExerciseSet) *fakeSetRepo {
	r := &fakeSetRepo{sets: make(map[uint]*model.ExerciseSet)}
	for i := range sets {
		s := sets[i]
		r.sets[s.ID] = &s
	}
	return r
}

func (r *fakeSetRepo) Create(set *model.ExerciseSet) error {
	r.sets[set.ID] = set
	return nil
}

func (r *fakeSetRepo) FindByID(id uint) (*model.ExerciseSet, error) {
	s, ok := r.sets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeSetRepo) FindByIDWithQuestions(id uint) (*model.ExerciseSet, error) {
	return r.FindByID(id)
}

func (r *fakeSetRepo) FindAllWithQuestionCount() ([]struct {
	model.ExerciseSet
	QuestionCount int
}, error) {
	return nil, nil
}

type fakeFeedbackRepo struct {
	mu        sync.Mutex
	rows      map[uint]*model.AIFeedback
	upsertErr error
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{rows: make(map[uint]*model.AIFeedback)}
}

func (r *fakeFeedbackRepo) Upsert(fb *model.AIFeedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	stored := *fb
	r.rows[fb.StudentAnswerID] = &stored
	return nil
}

func (r *fakeFeedbackRepo) FindByAnswerID(answerID uint) (*model.AIFeedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fb, ok := r.rows[answerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *fb
	return &out, nil
}

type fakeProgressRepo struct {
	mu       sync.Mutex
	recorded chan struct{}
	err      error
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{recorded: make(chan struct{}, 4)}
}

func (r *fakeProgressRepo) RecordCompletion(studentID, setID uint, score int, percentage float64, at time.Time) error {
	r.mu.Lock()
	err := r.err
	r.mu.Unlock()
	r.recorded <- struct{}{}
	return err
}

func (r *fakeProgressRepo) FindByStudentAndSet(studentID, setID uint) (*model.StudentProgress, error) {
	return nil, gorm.ErrRecordNotFound
}

// fakeTextGenerator is the deterministic provider stand-in.
type fakeTextGenerator struct {
	mu      sync.Mutex
	text    string
	modelID string
	err     error
	prompts []string
	params  []GenerationParams
}

func (g *fakeTextGenerator) Generate(ctx context.Context, prompt string, params GenerationParams) (string, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	g.params = append(g.params, params)
	if g.err != nil {
		return "", g.modelID, g.err
	}
	return g.text, g.modelID, nil
}

func (g *fakeTextGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

// fakeFeedbackService records async generation requests from the answer
// recorder.
type fakeFeedbackService struct {
	calls chan uint
}

func newFakeFeedbackService() *fakeFeedbackService {
	return &fakeFeedbackService{calls: make(chan uint, 16)}
}

func (s *fakeFeedbackService) Generate(ctx context.Context, question *model.Question, studentAnswer, correctAnswer string, isCorrect bool) *FeedbackResult {
	return &FeedbackResult{Success: true}
}

func (s *fakeFeedbackService) GenerateForAnswer(ctx context.Context, answerID uint) (*FeedbackResult, error) {
	s.calls <- answerID
	return &FeedbackResult{Success: true}, nil
}
