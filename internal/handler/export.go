package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/interviewprep-api/internal/handler/helper"
	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
)

// ExportResults выгружает результаты пользователя в CSV или XLSX
// GET /api/quiz/results/export?format=csv|xlsx
func (h *QuizHandler) ExportResults(c *gin.Context) {
	userID, ok := currentUserID(c, h.log)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		respondError(c, h.log, apperrors.New(apperrors.ErrValidation, "Invalid format. Use 'csv' or 'xlsx'"))
		return
	}

	results, err := h.resultService.ExportResults(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	rows := helper.BuildExportRows(results)
	filename := fmt.Sprintf("quiz_results_%s", time.Now().UTC().Format("20060102"))

	if format == "xlsx" {
		h.exportXLSX(c, rows, filename)
		return
	}
	h.exportCSV(c, rows, filename)
}

// exportCSV экспортирует результаты в CSV
func (h *QuizHandler) exportCSV(c *gin.Context, rows []helper.ExportRow, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	if err := writer.Write(helper.ExportHeaders); err != nil {
		h.log.Error("[QuizHandler] failed to write csv header", "error", err)
		return
	}
	for _, r := range rows {
		if err := writer.Write(r.Strings()); err != nil {
			h.log.Error("[QuizHandler] failed to write csv row", "error", err)
			return
		}
	}
}

// exportXLSX экспортирует результаты в Excel с использованием StreamWriter
func (h *QuizHandler) exportXLSX(c *gin.Context, rows []helper.ExportRow, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Results"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		respondError(c, h.log, fmt.Errorf("rename sheet: %w", err))
		return
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		respondError(c, h.log, fmt.Errorf("create stream writer: %w", err))
		return
	}

	headers := make([]interface{}, len(helper.ExportHeaders))
	for i, title := range helper.ExportHeaders {
		headers[i] = title
	}
	if err := sw.SetRow("A1", headers); err != nil {
		respondError(c, h.log, fmt.Errorf("write xlsx header: %w", err))
		return
	}

	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+2) // 1 строка - заголовки
		if err := sw.SetRow(cell, r.Cells()); err != nil {
			respondError(c, h.log, fmt.Errorf("write xlsx row %d: %w", i+2, err))
			return
		}
	}

	if err := sw.Flush(); err != nil {
		respondError(c, h.log, fmt.Errorf("flush xlsx: %w", err))
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.log.Error("[QuizHandler] failed to write xlsx response", "error", err)
	}
}
