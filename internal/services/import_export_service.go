package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Alpharn/questionnaire/internal/models"
	"github.com/Alpharn/questionnaire/internal/repositories"
	"github.com/Alpharn/questionnaire/internal/utils"
)

// ImportExportService moves the question collection in and out of spreadsheet
// files, the one external file format besides the storage key itself.
type ImportExportService interface {
	// ExportQuestions writes the whole collection as an .xlsx workbook.
	ExportQuestions(ctx context.Context, w io.Writer) error

	// ImportQuestions reads questions from an .xlsx workbook and upserts the
	// valid rows. Invalid rows are collected, not fatal.
	ImportQuestions(ctx context.Context, r io.Reader) (*ImportResult, error)
}

// optionSeparator joins and splits option lists in spreadsheet cells.
const optionSeparator = ";"

var exportHeader = []interface{}{"id", "question_text", "question_type", "options", "answer", "answered", "created_at"}

type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ImportResult struct {
	TotalRows     int                `json:"total_rows"`
	ProcessedRows int                `json:"processed_rows"`
	SuccessCount  int                `json:"success_count"`
	ErrorCount    int                `json:"error_count"`
	Errors        []ImportRowError   `json:"errors,omitempty"`
	Questions     []*models.Question `json:"questions,omitempty"`
}

type importExportService struct {
	repo   repositories.QuestionRepository
	logger utils.Logger
}

func NewImportExportService(repo repositories.QuestionRepository, logger utils.Logger) ImportExportService {
	return &importExportService{
		repo:   repo,
		logger: logger.With("component", "import_export"),
	}
}

// ===== EXPORT OPERATIONS =====

func (s *importExportService) ExportQuestions(ctx context.Context, w io.Writer) error {
	questions, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list questions: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, q := range questions {
		row := []interface{}{
			q.ID,
			q.QuestionText,
			string(q.QuestionType),
			strings.Join(q.Options, optionSeparator),
			answerCell(q.Answer),
			q.Answered,
			q.CreatedAt.Format(time.RFC3339Nano),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Exported question collection", "count", len(questions))
	return nil
}

func answerCell(a models.Answer) string {
	if value, ok := a.Single(); ok {
		return value
	}
	return strings.Join(a.Selections(), optionSeparator)
}

// ===== IMPORT OPERATIONS =====

func (s *importExportService) ImportQuestions(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook must have a header row and at least one data row")
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range []string{"question_text", "question_type"} {
		if _, exists := headerMap[col]; !exists {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	result := &ImportResult{TotalRows: len(rows) - 1}

	for rowIndex, row := range rows[1:] {
		rowNumber := rowIndex + 2
		question, rowErr := parseRow(row, headerMap, rowNumber)
		if rowErr == nil {
			var stored *models.Question
			stored, err = s.repo.Upsert(ctx, *question)
			if err != nil {
				rowErr = &ImportRowError{Row: rowNumber, Field: "question", Message: err.Error()}
			} else {
				result.Questions = append(result.Questions, stored)
				result.SuccessCount++
			}
		}
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			result.ErrorCount++
		}
		result.ProcessedRows++
	}

	s.logger.Info("Imported question collection",
		"total", result.TotalRows,
		"succeeded", result.SuccessCount,
		"failed", result.ErrorCount)
	return result, nil
}

func parseRow(row []string, headerMap map[string]int, rowNumber int) (*models.Question, *ImportRowError) {
	column := func(name string) string {
		i, ok := headerMap[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	text := column("question_text")
	if text == "" {
		return nil, &ImportRowError{Row: rowNumber, Field: "question_text", Message: "is required"}
	}

	questionType := models.QuestionType(column("question_type"))
	if !questionType.IsValid() {
		return nil, &ImportRowError{Row: rowNumber, Field: "question_type", Message: fmt.Sprintf("unknown question type %q", questionType)}
	}

	question := &models.Question{
		ID:           column("id"),
		QuestionText: text,
		QuestionType: questionType,
	}

	if options := column("options"); options != "" {
		question.Options = strings.Split(options, optionSeparator)
	}

	if answer := column("answer"); answer != "" {
		if questionType == models.MultipleChoice {
			question.Answer = models.MultipleAnswer(strings.Split(answer, optionSeparator)...)
		} else {
			question.Answer = models.SingleAnswer(answer)
		}
		question.Answered = true
	}

	if answered := column("answered"); answered != "" {
		value, err := strconv.ParseBool(strings.ToLower(answered))
		if err != nil {
			return nil, &ImportRowError{Row: rowNumber, Field: "answered", Message: "must be true or false"}
		}
		question.Answered = value
	}

	if createdAt := column("created_at"); createdAt != "" {
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, &ImportRowError{Row: rowNumber, Field: "created_at", Message: "must be an RFC 3339 timestamp"}
		}
		question.CreatedAt = ts
	}

	return question, nil
}
