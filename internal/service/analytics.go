package service

import (
	"sort"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
)

// TopicStat - успеваемость по одной теме
type TopicStat struct {
	Topic        string  `json:"topic"`
	Total        int     `json:"total"`
	Correct      int     `json:"correct"`
	QuizCount    int     `json:"quizCount"`
	AverageScore float64 `json:"averageScore"`
}

// Analytics - сводная статистика по результатам пользователя
type Analytics struct {
	TotalQuizzes    int         `json:"totalQuizzes"`
	TotalQuestions  int         `json:"totalQuestions"`
	TotalCorrect    int         `json:"totalCorrect"`
	TotalTimeSpent  int         `json:"totalTimeSpent"`
	AverageScore    float64     `json:"averageScore"`
	AverageAccuracy float64     `json:"averageAccuracy"`
	BestScore       float64     `json:"bestScore"`
	OverallAccuracy float64     `json:"overallAccuracy"`
	TopicAnalytics  []TopicStat `json:"topicAnalytics"`
}

// AggregateResults считает аналитику по результатам.
// averageScore и averageAccuracy - невзвешенные средние по результатам,
// количество вопросов в викторине на них не влияет.
func AggregateResults(results []entity.QuizResult) Analytics {
	a := Analytics{TopicAnalytics: []TopicStat{}}
	if len(results) == 0 {
		return a
	}

	var (
		percentageSum float64
		accuracySum   float64
		answeredSum   int
		byTopic       = make(map[string]*TopicStat)
	)

	for i, r := range results {
		a.TotalQuestions += r.TotalQuestions
		a.TotalCorrect += r.Score
		a.TotalTimeSpent += r.TimeSpent
		answeredSum += r.AnsweredCount
		percentageSum += r.Percentage
		accuracySum += r.Accuracy
		if i == 0 || r.Percentage > a.BestScore {
			a.BestScore = r.Percentage
		}

		// результат удаленной викторины учитывается только в общих суммах
		if r.Quiz == nil {
			continue
		}
		for _, topic := range r.Quiz.Topics {
			stat, ok := byTopic[topic]
			if !ok {
				stat = &TopicStat{Topic: topic}
				byTopic[topic] = stat
			}
			stat.Total += r.TotalQuestions
			stat.Correct += r.Score
			stat.QuizCount++
		}
	}

	a.TotalQuizzes = len(results)
	a.AverageScore = percentageSum / float64(len(results))
	a.AverageAccuracy = accuracySum / float64(len(results))
	if answeredSum > 0 {
		a.OverallAccuracy = float64(a.TotalCorrect) / float64(answeredSum) * 100
	}

	for _, stat := range byTopic {
		if stat.Total > 0 {
			stat.AverageScore = float64(stat.Correct) / float64(stat.Total) * 100
		}
		a.TopicAnalytics = append(a.TopicAnalytics, *stat)
	}
	sort.Slice(a.TopicAnalytics, func(i, j int) bool {
		x, y := a.TopicAnalytics[i], a.TopicAnalytics[j]
		if x.AverageScore != y.AverageScore {
			return x.AverageScore > y.AverageScore
		}
		return x.Topic < y.Topic
	})
	return a
}
