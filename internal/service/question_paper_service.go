package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nexprep/nexprep/internal/apperror"
	"github.com/nexprep/nexprep/internal/cache"
	"github.com/nexprep/nexprep/internal/dto"
	"github.com/nexprep/nexprep/internal/model"
	"github.com/nexprep/nexprep/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuestionPaperService is the authoring surface for papers: CRUD, the
// draft -> published -> archived transitions, and bulk question import.
// A paper's section structure is only editable while it is a draft; once
// published, attempts snapshot it and structural edits are refused.
type QuestionPaperService interface {
	Create(ctx context.Context, testSeriesID uint, req dto.QuestionPaperCreateDTO) (*dto.QuestionPaperDTO, error)
	Update(ctx context.Context, id uint, req dto.QuestionPaperUpdateDTO) (*dto.QuestionPaperDTO, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*dto.QuestionPaperDTO, error)
	ListByTestSeries(ctx context.Context, testSeriesID uint) ([]dto.QuestionPaperSummaryDTO, error)
	Publish(ctx context.Context, id uint) (*dto.QuestionPaperDTO, error)
	Archive(ctx context.Context, id uint) (*dto.QuestionPaperDTO, error)
	ImportQuestionsJSON(ctx context.Context, id uint, req dto.QuestionImportDTO) (*dto.ImportResultDTO, error)
	ImportQuestionsCSV(ctx context.Context, id uint, sectionIndex int, r io.Reader) (*dto.ImportResultDTO, error)
}

type questionPaperService struct {
	paperRepo  repository.QuestionPaperRepository
	seriesRepo repository.TestSeriesRepository
	cache      *cache.Cache
}

func NewQuestionPaperService(
	paperRepo repository.QuestionPaperRepository,
	seriesRepo repository.TestSeriesRepository,
	cache *cache.Cache,
) QuestionPaperService {
	return &questionPaperService{paperRepo: paperRepo, seriesRepo: seriesRepo, cache: cache}
}

func (s *questionPaperService) Create(ctx context.Context, testSeriesID uint, req dto.QuestionPaperCreateDTO) (*dto.QuestionPaperDTO, error) {
	series, err := s.seriesRepo.FindByID(testSeriesID)
	if err != nil {
		return nil, notFoundOrInternal(err, "test series not found")
	}

	sections := make(model.PaperSections, 0, len(req.Sections))
	for i, sectionReq := range req.Sections {
		section, err := buildSection(sectionReq)
		if err != nil {
			return nil, apperror.Validation(fmt.Sprintf("section %d: %v", i, err))
		}
		sections = append(sections, section)
	}

	paper := model.QuestionPaper{
		TestSeriesID: series.ID,
		Title:        req.Title,
		Description:  req.Description,
		Sections:     sections,
		Languages:    model.StringList(req.Languages),
		IsFree:       req.IsFree,
		Status:       model.PaperStatusDraft,
	}
	if err := s.paperRepo.Create(&paper); err != nil {
		return nil, apperror.Internal("failed to create question paper", err)
	}
	s.invalidatePaper(ctx, &paper)
	log.Info().Uint("paperID", paper.ID).Uint("seriesID", series.ID).Int("sections", len(sections)).Msg("Question paper created")
	return s.adminPaperDTO(&paper), nil
}

func (s *questionPaperService) Update(ctx context.Context, id uint, req dto.QuestionPaperUpdateDTO) (*dto.QuestionPaperDTO, error) {
	paper, err := s.paperRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOrInternal(err, "question paper not found")
	}
	if req.Title != nil {
		paper.Title = *req.Title
	}
	if req.Description != nil {
		paper.Description = *req.Description
	}
	if req.Languages != nil {
		paper.Languages = model.StringList(req.Languages)
	}
	if req.IsFree != nil {
		paper.IsFree = *req.IsFree
	}
	if err := s.paperRepo.Update(paper); err != nil {
		return nil, apperror.Internal("failed to update question paper", err)
	}
	s.invalidatePaper(ctx, paper)
	return s.adminPaperDTO(paper), nil
}

func (s *questionPaperService) Delete(ctx context.Context, id uint) error {
	paper, err := s.paperRepo.FindByID(id)
	if err != nil {
		return notFoundOrInternal(err, "question paper not found")
	}
	if paper.Status == model.PaperStatusPublished {
		return apperror.Conflict("published papers must be archived before deletion")
	}
	if err := s.paperRepo.Delete(id); err != nil {
		return apperror.Internal("failed to delete question paper", err)
	}
	s.invalidatePaper(ctx, paper)
	return nil
}

func (s *questionPaperService) Get(ctx context.Context, id uint) (*dto.QuestionPaperDTO, error) {
	paper, err := s.paperRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOrInternal(err, "question paper not found")
	}
	return s.adminPaperDTO(paper), nil
}

func (s *questionPaperService) ListByTestSeries(ctx context.Context, testSeriesID uint) ([]dto.QuestionPaperSummaryDTO, error) {
	papers, err := s.paperRepo.ListByTestSeries(testSeriesID, "")
	if err != nil {
		return nil, apperror.Internal("failed to list question papers", err)
	}
	summaries := make([]dto.QuestionPaperSummaryDTO, 0, len(papers))
	for i := range papers {
		summaries = append(summaries, toPaperSummaryDTO(&papers[i]))
	}
	return summaries, nil
}

func (s *questionPaperService) Publish(ctx context.Context, id uint) (*dto.QuestionPaperDTO, error) {
	return s.transition(ctx, id, model.PaperStatusDraft, model.PaperStatusPublished)
}

func (s *questionPaperService) Archive(ctx context.Context, id uint) (*dto.QuestionPaperDTO, error) {
	return s.transition(ctx, id, model.PaperStatusPublished, model.PaperStatusArchived)
}

func (s *questionPaperService) transition(ctx context.Context, id uint, from, to model.PaperStatus) (*dto.QuestionPaperDTO, error) {
	paper, err := s.paperRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOrInternal(err, "question paper not found")
	}
	if paper.Status != from {
		return nil, apperror.Conflict(fmt.Sprintf("cannot move paper from %q to %q", paper.Status, to))
	}
	if to == model.PaperStatusPublished {
		if len(paper.Sections) == 0 || paper.TotalQuestions() == 0 {
			return nil, apperror.Validation("cannot publish a paper without questions")
		}
	}
	paper.Status = to
	if err := s.paperRepo.Update(paper); err != nil {
		return nil, apperror.Internal("failed to update question paper", err)
	}
	s.invalidatePaper(ctx, paper)
	log.Info().Uint("paperID", paper.ID).Str("status", string(to)).Msg("Question paper status changed")
	return s.adminPaperDTO(paper), nil
}

// ImportQuestionsJSON appends questions to one section of a draft paper.
// Invalid questions are skipped with a warning, valid ones are imported.
func (s *questionPaperService) ImportQuestionsJSON(ctx context.Context, id uint, req dto.QuestionImportDTO) (*dto.ImportResultDTO, error) {
	paper, err := s.draftPaper(id)
	if err != nil {
		return nil, err
	}
	if req.SectionIndex < 0 || req.SectionIndex >= len(paper.Sections) {
		return nil, apperror.Validation(fmt.Sprintf("section index %d out of range", req.SectionIndex))
	}

	result := &dto.ImportResultDTO{}
	for i, questionReq := range req.Questions {
		question, err := buildQuestion(questionReq)
		if err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("question %d: %v", i, err))
			continue
		}
		paper.Sections[req.SectionIndex].Questions = append(paper.Sections[req.SectionIndex].Questions, question)
		result.Imported++
	}

	if result.Imported > 0 {
		if err := s.paperRepo.Update(paper); err != nil {
			return nil, apperror.Internal("failed to save imported questions", err)
		}
		s.invalidatePaper(ctx, paper)
	}
	log.Info().Uint("paperID", id).Int("imported", result.Imported).Int("skipped", result.Skipped).Msg("Question import finished")
	return result, nil
}

// ImportQuestionsCSV reads questions from CSV with the header
// type,prompt,options,pos_marks,neg_marks,correct_answer. Options are
// pipe-separated and only meaningful for mcq rows; correct_answer is an
// option index for mcq, a number for numerical and free text for
// descriptive questions.
func (s *questionPaperService) ImportQuestionsCSV(ctx context.Context, id uint, sectionIndex int, r io.Reader) (*dto.ImportResultDTO, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 6
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperror.Validation("empty or unreadable CSV payload")
	}
	if len(header) < 6 || !strings.EqualFold(header[0], "type") {
		return nil, apperror.Validation("unexpected CSV header, want: type,prompt,options,pos_marks,neg_marks,correct_answer")
	}

	var questions []dto.QuestionCreateDTO
	var warnings []string
	skipped := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		question, err := csvRecordToQuestion(record)
		if err != nil {
			skipped++
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		questions = append(questions, question)
	}

	result, err := s.ImportQuestionsJSON(ctx, id, dto.QuestionImportDTO{SectionIndex: sectionIndex, Questions: questions})
	if err != nil {
		return nil, err
	}
	result.Skipped += skipped
	result.Warnings = append(warnings, result.Warnings...)
	return result, nil
}

func (s *questionPaperService) draftPaper(id uint) (*model.QuestionPaper, error) {
	paper, err := s.paperRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOrInternal(err, "question paper not found")
	}
	if paper.Status != model.PaperStatusDraft {
		return nil, apperror.Conflict("questions can only be imported into draft papers")
	}
	return paper, nil
}

func (s *questionPaperService) invalidatePaper(ctx context.Context, paper *model.QuestionPaper) {
	invalidate(ctx, s.cache, cacheKeyPaper(paper.ID), cacheKeySeries(paper.TestSeriesID))
}

// adminPaperDTO is the full paper view including section contents; it reuses
// the student mapping because correct answers stay server-side even for
// admin list screens (the authoring UI edits via dedicated flows).
func (s *questionPaperService) adminPaperDTO(paper *model.QuestionPaper) *dto.QuestionPaperDTO {
	resp := toStudentPaperDTO(paper)
	return &resp
}

func buildSection(req dto.SectionCreateDTO) (model.Section, error) {
	questions := make([]model.Question, 0, len(req.Questions))
	for i, questionReq := range req.Questions {
		question, err := buildQuestion(questionReq)
		if err != nil {
			return model.Section{}, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, question)
	}
	maxMarks := req.MaxMarks
	if maxMarks == 0 {
		for _, q := range questions {
			maxMarks += q.PosMarks
		}
	}
	return model.Section{
		Title:        req.Title,
		Duration:     req.Duration,
		MaxMarks:     maxMarks,
		Instructions: req.Instructions,
		Questions:    questions,
	}, nil
}

func buildQuestion(req dto.QuestionCreateDTO) (model.Question, error) {
	if !req.Type.Valid() {
		return model.Question{}, fmt.Errorf("unknown question type %q", req.Type)
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return model.Question{}, errors.New("prompt must not be blank")
	}

	answer, ok := model.CoerceAnswer(req.Type, req.CorrectAnswer)
	if !ok {
		return model.Question{}, fmt.Errorf("correct answer does not match question type %q", req.Type)
	}

	options := make([]model.Option, 0, len(req.Options))
	for _, opt := range req.Options {
		options = append(options, model.Option{Prompt: opt.Prompt, Value: opt.Value})
	}
	if req.Type == model.QuestionTypeMCQ {
		if len(options) < 2 {
			return model.Question{}, errors.New("mcq questions need at least two options")
		}
		if answer.Choice < 0 || answer.Choice >= len(options) {
			return model.Question{}, fmt.Errorf("correct option index %d out of range", answer.Choice)
		}
	}

	posMarks := req.PosMarks
	if posMarks == 0 {
		posMarks = 1
	}
	return model.Question{
		Type:          req.Type,
		Prompt:        req.Prompt,
		Options:       options,
		PosMarks:      posMarks,
		NegMarks:      req.NegMarks,
		SkipMarks:     req.SkipMarks,
		CorrectAnswer: answer,
	}, nil
}

func csvRecordToQuestion(record []string) (dto.QuestionCreateDTO, error) {
	questionType := model.QuestionType(strings.TrimSpace(record[0]))
	prompt := strings.TrimSpace(record[1])

	var options []dto.OptionDTO
	if raw := strings.TrimSpace(record[2]); raw != "" {
		for _, value := range strings.Split(raw, "|") {
			value = strings.TrimSpace(value)
			options = append(options, dto.OptionDTO{Prompt: value, Value: value})
		}
	}

	posMarks, err := parseCSVFloat(record[3], 1)
	if err != nil {
		return dto.QuestionCreateDTO{}, fmt.Errorf("bad pos_marks %q", record[3])
	}
	negMarks, err := parseCSVFloat(record[4], 0)
	if err != nil {
		return dto.QuestionCreateDTO{}, fmt.Errorf("bad neg_marks %q", record[4])
	}

	rawAnswer := strings.TrimSpace(record[5])
	var correctAnswer interface{}
	switch questionType {
	case model.QuestionTypeMCQ, model.QuestionTypeNumerical:
		n, err := strconv.ParseFloat(rawAnswer, 64)
		if err != nil {
			return dto.QuestionCreateDTO{}, fmt.Errorf("bad correct_answer %q for %s question", rawAnswer, questionType)
		}
		correctAnswer = n
	default:
		correctAnswer = rawAnswer
	}

	return dto.QuestionCreateDTO{
		Type:          questionType,
		Prompt:        prompt,
		Options:       options,
		PosMarks:      posMarks,
		NegMarks:      negMarks,
		CorrectAnswer: correctAnswer,
	}, nil
}

func parseCSVFloat(raw string, fallback float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}
