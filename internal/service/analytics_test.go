package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
)

func resultWith(score, total, answered, timeSpent int, topics ...string) entity.QuizResult {
	r := entity.QuizResult{
		Score:          score,
		TotalQuestions: total,
		AnsweredCount:  answered,
		TimeSpent:      timeSpent,
		Percentage:     float64(score) / float64(total) * 100,
	}
	if answered > 0 {
		r.Accuracy = float64(score) / float64(answered) * 100
	}
	if topics != nil {
		r.Quiz = &entity.Quiz{Topics: topics}
	}
	return r
}

func TestAggregateResults_Empty(t *testing.T) {
	a := AggregateResults(nil)

	assert.Zero(t, a.TotalQuizzes)
	assert.Zero(t, a.AverageScore)
	assert.Zero(t, a.AverageAccuracy)
	assert.Zero(t, a.BestScore)
	assert.Zero(t, a.OverallAccuracy)
	assert.NotNil(t, a.TopicAnalytics, "Пустой список тем, а не null")
	assert.Empty(t, a.TopicAnalytics)
}

func TestAggregateResults_Totals(t *testing.T) {
	results := []entity.QuizResult{
		resultWith(2, 4, 3, 60, "go", "sql"),
		resultWith(9, 10, 10, 120, "go"),
	}

	a := AggregateResults(results)

	assert.Equal(t, 2, a.TotalQuizzes)
	assert.Equal(t, 14, a.TotalQuestions)
	assert.Equal(t, 11, a.TotalCorrect)
	assert.Equal(t, 180, a.TotalTimeSpent)
	assert.InDelta(t, 90.0, a.BestScore, 1e-9)
	assert.InDelta(t, 11.0/13.0*100, a.OverallAccuracy, 1e-9)
	assert.InDelta(t, (66.6667+90.0)/2, a.AverageAccuracy, 1e-3)
}

func TestAggregateResults_AverageIsNotWeightedByQuestionCount(t *testing.T) {
	// 1/5 = 20% и 20/20 = 100%: невзвешенное среднее 60%, взвешенное было бы 84%
	results := []entity.QuizResult{
		resultWith(1, 5, 5, 0),
		resultWith(20, 20, 20, 0),
	}

	a := AggregateResults(results)

	assert.InDelta(t, 60.0, a.AverageScore, 1e-9)
}

func TestAggregateResults_TopicBreakdown(t *testing.T) {
	results := []entity.QuizResult{
		resultWith(2, 4, 4, 0, "go", "sql"),
		resultWith(4, 4, 4, 0, "go"),
		resultWith(1, 4, 4, 0, "redis"),
		resultWith(3, 4, 4, 0), // викторина удалена
	}

	a := AggregateResults(results)

	require.Len(t, a.TopicAnalytics, 3)
	assert.Equal(t, TopicStat{Topic: "go", Total: 8, Correct: 6, QuizCount: 2, AverageScore: 75}, a.TopicAnalytics[0])
	assert.Equal(t, TopicStat{Topic: "sql", Total: 4, Correct: 2, QuizCount: 1, AverageScore: 50}, a.TopicAnalytics[1])
	assert.Equal(t, TopicStat{Topic: "redis", Total: 4, Correct: 1, QuizCount: 1, AverageScore: 25}, a.TopicAnalytics[2])
	assert.Equal(t, 4, a.TotalQuizzes, "Результат без викторины учитывается в общих суммах")
}

func TestAggregateResults_TopicTiesSortedByName(t *testing.T) {
	results := []entity.QuizResult{resultWith(2, 4, 4, 0, "sql", "go")}

	a := AggregateResults(results)

	require.Len(t, a.TopicAnalytics, 2)
	assert.Equal(t, "go", a.TopicAnalytics[0].Topic)
	assert.Equal(t, "sql", a.TopicAnalytics[1].Topic)
}
