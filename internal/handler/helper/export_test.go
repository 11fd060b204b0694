package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
)

func TestSanitizeForExcel(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"Go Quiz":     "Go Quiz",
		"=SUM(A1:A2)": "'=SUM(A1:A2)",
		"+1":          "'+1",
		"-1":          "'-1",
		"@cmd":        "'@cmd",
		"\tTab":       "'\tTab",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeForExcel(in), "вход %q", in)
	}
}

func TestBuildExportRows(t *testing.T) {
	completed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	results := []entity.QuizResult{
		{
			Score: 2, TotalQuestions: 4, Percentage: 50, Accuracy: 66.666, AnsweredCount: 3,
			TimeSpent: 120, CompletedAt: completed,
			Quiz: &entity.Quiz{Title: "=Go Quiz", Role: "Backend", Topics: entity.StringArray{"go", "sql"}},
		},
		{Score: 1, TotalQuestions: 5, Percentage: 20, CompletedAt: completed},
	}

	rows := BuildExportRows(results)
	assert.Len(t, rows, 2)

	assert.Equal(t, []string{
		"'=Go Quiz", "Backend", "go, sql", "2", "4", "50.00", "66.67", "3", "120", "2026-03-01T10:00:00Z",
	}, rows[0].Strings())

	assert.Equal(t, "", rows[1].Quiz, "Результат без викторины выгружается с пустым названием")
	cells := rows[1].Cells()
	assert.Len(t, cells, len(ExportHeaders))
	assert.Equal(t, 1, cells[3])
}
