package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yourusername/interviewprep-api/internal/ai"
	"github.com/yourusername/interviewprep-api/internal/domain/entity"
	"github.com/yourusername/interviewprep-api/internal/middleware"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
	pgRepo "github.com/yourusername/interviewprep-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/interviewprep-api/internal/repository/redis"
	"github.com/yourusername/interviewprep-api/internal/service"
	"github.com/yourusername/interviewprep-api/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubReply - заранее заданный ответ генератора
type stubReply struct {
	text string
	err  error
}

// stubGenerator отдает ответы по очереди
type stubGenerator struct {
	mu      sync.Mutex
	replies []stubReply
	calls   int
}

func (g *stubGenerator) reply(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies = append(g.replies, stubReply{text: text})
}

func (g *stubGenerator) fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies = append(g.replies, stubReply{err: err})
}

func (g *stubGenerator) Generate(_ context.Context, _ string, _ ...ai.Option) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if len(g.replies) == 0 {
		return "", errors.New("no stubbed reply")
	}
	next := g.replies[0]
	g.replies = g.replies[1:]
	return next.text, next.err
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type serverOptions struct {
	hideAnswers bool
	aiLimit     int
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	gen    *stubGenerator
	mr     *miniredis.Miniredis
	db     *gorm.DB
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:handler_%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Quiz{},
		&entity.QuizResult{},
		&entity.InterviewSession{},
		&entity.SessionQuestion{},
		&entity.MockInterviewSession{},
		&entity.MockInterviewAnswer{},
	))
	return db
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()
	if opts.aiLimit == 0 {
		opts.aiLimit = 100
	}
	log := logger.NewNop()
	db := newTestDB(t)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })
	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	require.NoError(t, err)

	jwtService, err := auth.NewJWTService("handler-test-secret", 1)
	require.NoError(t, err)

	gen := &stubGenerator{}
	quizRepo := pgRepo.NewQuizRepo(db)
	statsCache := service.NewStatsCache(cacheRepo, 5*time.Minute, log)
	authService := service.NewAuthService(pgRepo.NewUserRepo(db), jwtService, log)

	handlers := Handlers{
		Auth: NewAuthHandler(authService, log),
		User: NewUserHandler(authService, log),
		Quiz: NewQuizHandler(
			service.NewQuizService(quizRepo, gen, statsCache, log),
			service.NewResultService(quizRepo, pgRepo.NewResultRepo(db), statsCache, log),
			opts.hideAnswers,
			log,
		),
		Session: NewSessionHandler(service.NewSessionService(pgRepo.NewSessionRepo(db), log), log),
		AI:      NewAIHandler(service.NewAIService(gen, log), log),
		Mock:    NewMockInterviewHandler(service.NewMockInterviewService(pgRepo.NewMockInterviewRepo(db), gen, log), log),
	}

	limiter := middleware.NewRateLimiter(redisClient, log)
	router := gin.New()
	RegisterRoutes(
		router.Group("/api"),
		handlers,
		middleware.NewAuthMiddleware(jwtService, log),
		limiter.Limit(middleware.AIRateLimitConfig(opts.aiLimit, time.Minute)),
	)

	return &testServer{t: t, router: router, gen: gen, mr: mr, db: db}
}

// do выполняет запрос; body сериализуется в JSON, строка передается как есть
func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// register создает пользователя и возвращает его токен
func (s *testServer) register(email string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	token, ok := decode(s.t, w)["token"].(string)
	require.True(s.t, ok)
	return token
}

// generateQuiz создает викторину из n вопросов и возвращает ее ID
func (s *testServer) generateQuiz(token string, n int) string {
	s.t.Helper()
	s.gen.reply(quizReply(n))
	w := s.do(http.MethodPost, "/api/quiz/generate", token, gin.H{
		"role":              "Backend Engineer",
		"experience":        "3",
		"topics":            []string{"Go", "SQL"},
		"numberOfQuestions": n,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	quiz := decode(s.t, w)["quiz"].(map[string]interface{})
	return quiz["_id"].(string)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// quizReply - ответ модели с n корректными вопросами в markdown-обертке
func quizReply(n int) string {
	questions := make([]entity.QuizQuestion, n)
	for i := range questions {
		questions[i] = entity.QuizQuestion{
			Question:      fmt.Sprintf("Question %d?", i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: i % 4,
			Explanation:   fmt.Sprintf("Explanation %d", i+1),
		}
	}
	data, _ := json.Marshal(questions)
	return "```json\n" + string(data) + "\n```"
}

// correctAnswers строит ответы, совпадающие с quizReply
func correctAnswers(n int) []gin.H {
	answers := make([]gin.H, n)
	for i := range answers {
		answers[i] = gin.H{"selectedOption": i % 4, "timeTaken": 10}
	}
	return answers
}
