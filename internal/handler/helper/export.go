package helper

import (
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/interviewprep-api/internal/domain/entity"
)

// ExportHeaders - заголовки столбцов выгрузки результатов
var ExportHeaders = []string{
	"Quiz", "Role", "Topics", "Score", "Total", "Percentage",
	"Accuracy", "Answered", "Time spent (s)", "Completed at",
}

// ExportRow - одна строка выгрузки результатов
type ExportRow struct {
	Quiz        string
	Role        string
	Topics      string
	Score       int
	Total       int
	Percentage  float64
	Accuracy    float64
	Answered    int
	TimeSpent   int
	CompletedAt time.Time
}

// BuildExportRows преобразует результаты в строки выгрузки.
// Результат без викторины выгружается с пустыми Quiz/Role/Topics.
func BuildExportRows(results []entity.QuizResult) []ExportRow {
	rows := make([]ExportRow, 0, len(results))
	for _, r := range results {
		row := ExportRow{
			Score:       r.Score,
			Total:       r.TotalQuestions,
			Percentage:  r.Percentage,
			Accuracy:    r.Accuracy,
			Answered:    r.AnsweredCount,
			TimeSpent:   r.TimeSpent,
			CompletedAt: r.CompletedAt,
		}
		if r.Quiz != nil {
			row.Quiz = SanitizeForExcel(r.Quiz.Title)
			row.Role = SanitizeForExcel(r.Quiz.Role)
			row.Topics = SanitizeForExcel(strings.Join(r.Quiz.Topics, ", "))
		}
		rows = append(rows, row)
	}
	return rows
}

// Strings возвращает строку для CSV
func (r ExportRow) Strings() []string {
	return []string{
		r.Quiz,
		r.Role,
		r.Topics,
		strconv.Itoa(r.Score),
		strconv.Itoa(r.Total),
		strconv.FormatFloat(r.Percentage, 'f', 2, 64),
		strconv.FormatFloat(r.Accuracy, 'f', 2, 64),
		strconv.Itoa(r.Answered),
		strconv.Itoa(r.TimeSpent),
		r.CompletedAt.UTC().Format(time.RFC3339),
	}
}

// Cells возвращает строку для XLSX: числа остаются числами
func (r ExportRow) Cells() []interface{} {
	return []interface{}{
		r.Quiz,
		r.Role,
		r.Topics,
		r.Score,
		r.Total,
		r.Percentage,
		r.Accuracy,
		r.Answered,
		r.TimeSpent,
		r.CompletedAt.UTC().Format(time.RFC3339),
	}
}

// SanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func SanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
