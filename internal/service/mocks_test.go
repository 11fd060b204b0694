package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/interviewprep-api/internal/ai"
	"github.com/yourusername/interviewprep-api/internal/domain/entity"
	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
)

// ============================================================================
// Моки репозиториев и AI
// ============================================================================

// MockQuizRepository реализует repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *entity.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Quiz, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) CountByUser(ctx context.Context, userID uuid.UUID, completed *bool) (int64, error) {
	args := m.Called(ctx, userID, completed)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuizRepository) CompleteWithResult(ctx context.Context, quizID, userID uuid.UUID, result *entity.QuizResult) error {
	args := m.Called(ctx, quizID, userID, result)
	return args.Error(0)
}

func (m *MockQuizRepository) DeleteWithResults(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockResultRepository реализует repository.ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.QuizResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizResult), args.Error(1)
}

func (m *MockResultRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.QuizResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizResult), args.Error(1)
}

func (m *MockResultRepository) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.QuizResult, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizResult), args.Error(1)
}

func (m *MockResultRepository) AveragePercentage(ctx context.Context, userID uuid.UUID) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockSessionRepository реализует repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.InterviewSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.InterviewSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.InterviewSession), args.Error(1)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InterviewSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.InterviewSession), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) AddQuestions(ctx context.Context, questions []entity.SessionQuestion) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockSessionRepository) GetQuestion(ctx context.Context, id uuid.UUID) (*entity.SessionQuestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SessionQuestion), args.Error(1)
}

func (m *MockSessionRepository) TogglePin(ctx context.Context, questionID uuid.UUID) (*entity.SessionQuestion, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SessionQuestion), args.Error(1)
}

func (m *MockSessionRepository) UpdateNote(ctx context.Context, questionID uuid.UUID, note string) (*entity.SessionQuestion, error) {
	args := m.Called(ctx, questionID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SessionQuestion), args.Error(1)
}

// MockMockInterviewRepository реализует repository.MockInterviewRepository
type MockMockInterviewRepository struct {
	mock.Mock
}

func (m *MockMockInterviewRepository) CreateSession(ctx context.Context, session *entity.MockInterviewSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockMockInterviewRepository) GetSession(ctx context.Context, id uuid.UUID) (*entity.MockInterviewSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MockInterviewSession), args.Error(1)
}

func (m *MockMockInterviewRepository) ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]entity.MockInterviewSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.MockInterviewSession), args.Error(1)
}

func (m *MockMockInterviewRepository) SaveAnswerAndAdvance(ctx context.Context, answer *entity.MockInterviewAnswer, totalQuestions int) (*entity.MockInterviewSession, error) {
	args := m.Called(ctx, answer, totalQuestions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MockInterviewSession), args.Error(1)
}

func (m *MockMockInterviewRepository) ListAnswers(ctx context.Context, sessionID uuid.UUID) ([]entity.MockInterviewAnswer, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.MockInterviewAnswer), args.Error(1)
}

// MockGenerator реализует ai.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string, opts ...ai.Option) (string, error) {
	args := m.Called(ctx, prompt, len(opts))
	return args.String(0), args.Error(1)
}

// ============================================================================
// Фейки с состоянием
// ============================================================================

// memoryCache - потокобезопасный кеш в памяти, реализует repository.CacheRepository
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
	sets  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	c.sets++
	return nil
}

func (c *memoryCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	data, ok := c.items[key]
	c.mu.Unlock()
	if !ok {
		return apperrors.ErrNotFound
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if data, ok := c.items[key]; ok {
		if err := json.Unmarshal(data, &n); err != nil {
			return 0, err
		}
	}
	n++
	data, _ := json.Marshal(n)
	c.items[key] = data
	return n, nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// quizStore - викторины и результаты в памяти. CompleteWithResult выполняет
// проверку и запись под одной блокировкой, как условный UPDATE в БД.
type quizStore struct {
	mu      sync.Mutex
	quizzes map[uuid.UUID]*entity.Quiz
	results []*entity.QuizResult
}

func newQuizStore(quizzes ...*entity.Quiz) *quizStore {
	s := &quizStore{quizzes: make(map[uuid.UUID]*entity.Quiz)}
	for _, q := range quizzes {
		s.quizzes[q.ID] = q
	}
	return s
}

func (s *quizStore) Create(_ context.Context, quiz *entity.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quiz.ID == uuid.Nil {
		quiz.ID = uuid.New()
	}
	s.quizzes[quiz.ID] = quiz
	return nil
}

func (s *quizStore) GetByID(_ context.Context, id uuid.UUID) (*entity.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quizzes[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *q
	return &copied, nil
}

func (s *quizStore) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Quiz
	for _, q := range s.quizzes {
		if q.UserID == userID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (s *quizStore) CountByUser(_ context.Context, userID uuid.UUID, completed *bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, q := range s.quizzes {
		if q.UserID == userID && (completed == nil || q.IsCompleted == *completed) {
			n++
		}
	}
	return n, nil
}

func (s *quizStore) CompleteWithResult(_ context.Context, quizID, userID uuid.UUID, result *entity.QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quizzes[quizID]
	if !ok || q.UserID != userID || q.IsCompleted {
		return apperrors.ErrAlreadySubmitted
	}
	q.IsCompleted = true
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	s.results = append(s.results, result)
	return nil
}

func (s *quizStore) DeleteWithResults(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.quizzes, id)
	kept := s.results[:0]
	for _, r := range s.results {
		if r.QuizID != id {
			kept = append(kept, r)
		}
	}
	s.results = kept
	return nil
}

func (s *quizStore) resultCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// ============================================================================
// Хелперы
// ============================================================================

func intPtr(v int) *int { return &v }

// fourQuestions - вопросы с правильными ответами 0, 1, 2, 3
func fourQuestions() []entity.QuizQuestion {
	questions := make([]entity.QuizQuestion, 4)
	for i := range questions {
		questions[i] = entity.QuizQuestion{
			Question:      "Question?",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i,
			Explanation:   "because",
		}
	}
	return questions
}

func newOpenQuiz(userID uuid.UUID) *entity.Quiz {
	questions := fourQuestions()
	return &entity.Quiz{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          "Go Quiz - 3 years experience",
		Role:           "Go",
		Experience:     "3",
		Topics:         entity.StringArray{"go"},
		Questions:      questions,
		TotalQuestions: len(questions),
		TimeLimit:      entity.DefaultTimeLimit,
		StartedAt:      time.Now(),
	}
}

func answersOf(selected ...*int) []*SubmittedAnswer {
	out := make([]*SubmittedAnswer, len(selected))
	for i, s := range selected {
		out[i] = &SubmittedAnswer{SelectedOption: s, TimeTaken: 5}
	}
	return out
}
