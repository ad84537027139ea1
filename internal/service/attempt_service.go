package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/nexprep/nexprep/internal/apperror"
	"github.com/nexprep/nexprep/internal/dto"
	"github.com/nexprep/nexprep/internal/model"
	"github.com/nexprep/nexprep/internal/repository"
	"github.com/nexprep/nexprep/internal/scoring"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// defaultTimeBudgetSeconds is the remaining-time fallback used when a paper's
// section durations don't add up to a positive total: a malformed paper must
// never block attempt creation.
const defaultTimeBudgetSeconds = 3600

// AttemptService manages the test-attempt lifecycle: start/resume, live
// progress updates, submission with scoring, and result retrieval. All
// operations are scoped to the owning user.
type AttemptService interface {
	StartOrResume(userID, testSeriesID, paperID uint) (*dto.TestAttemptDTO, bool, error)
	GetCurrent(userID, testSeriesID, paperID uint, includeAll bool) (*dto.TestAttemptDTO, error)
	UpdateProgress(attemptID, userID, testSeriesID, paperID uint, patch dto.AttemptProgressPatchDTO) (*dto.TestAttemptDTO, error)
	Submit(attemptID, userID, testSeriesID, paperID uint, req dto.SubmitAttemptDTO) (*dto.TestAttemptDTO, error)
	GetResults(attemptID *uint, userID, testSeriesID, paperID uint) (*dto.TestAttemptDTO, error)
	ListAttempts(userID, testSeriesID uint, statusFilter string) ([]dto.TestAttemptDTO, error)
}

type attemptService struct {
	attemptRepo repository.TestAttemptRepository
	paperRepo   repository.QuestionPaperRepository
	seriesRepo  repository.TestSeriesRepository
}

func NewAttemptService(
	attemptRepo repository.TestAttemptRepository,
	paperRepo repository.QuestionPaperRepository,
	seriesRepo repository.TestSeriesRepository,
) AttemptService {
	return &attemptService{attemptRepo: attemptRepo, paperRepo: paperRepo, seriesRepo: seriesRepo}
}

// StartOrResume returns the user's live attempt for the paper, creating one
// from the paper's current structure if none exists. The second return value
// reports whether an existing attempt was resumed. Resume only touches
// lastActiveAt; everything else is returned unchanged.
func (s *attemptService) StartOrResume(userID, testSeriesID, paperID uint) (*dto.TestAttemptDTO, bool, error) {
	existing, err := s.attemptRepo.FindInProgress(userID, testSeriesID, paperID)
	if err == nil {
		return s.resume(existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperror.Internal("failed to look up attempt", err)
	}

	paper, err := s.paperRepo.FindByID(paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperror.NotFound("question paper not found")
		}
		return nil, false, apperror.Internal("failed to load question paper", err)
	}
	if len(paper.Sections) == 0 {
		return nil, false, apperror.NotFound("question paper has no sections")
	}

	attempt := newAttemptFromPaper(userID, testSeriesID, paper)
	if err := s.attemptRepo.Create(attempt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a concurrent start race; the winner's attempt is the one
			// to resume.
			winner, ferr := s.attemptRepo.FindInProgress(userID, testSeriesID, paperID)
			if ferr != nil {
				return nil, false, apperror.Internal("attempt exists but could not be loaded after start race", ferr)
			}
			return s.resume(winner)
		}
		return nil, false, apperror.Internal("failed to create attempt", err)
	}

	// Best-effort counters: the attempt was created regardless of whether
	// either bump lands. A user's first attempt in a series counts them as a
	// student of that series.
	if err := s.paperRepo.IncrementAttemptCount(paper.ID); err != nil {
		log.Warn().Err(err).Uint("paperID", paper.ID).Msg("StartOrResume: failed to increment paper attempt count")
	}
	if prior, lerr := s.attemptRepo.ListByUserAndSeries(userID, testSeriesID, ""); lerr == nil && len(prior) == 1 {
		if err := s.seriesRepo.IncrementStudentCount(testSeriesID); err != nil {
			log.Warn().Err(err).Uint("seriesID", testSeriesID).Msg("StartOrResume: failed to increment series student count")
		}
	}

	log.Info().Uint("attemptID", attempt.ID).Uint("userID", userID).Uint("paperID", paperID).Msg("Test attempt started")

	result, err := toAttemptDTO(attempt)
	return result, false, err
}

// resume touches lastActiveAt under the same row lock as every other attempt
// write, so a progress update landing in between is never overwritten by the
// stale snapshot read before the resume.
func (s *attemptService) resume(attempt *model.TestAttempt) (*dto.TestAttemptDTO, bool, error) {
	fresh, err := s.attemptRepo.Mutate(attempt.ID, attempt.UserID, attempt.TestSeriesID, attempt.QuestionPaperID,
		func(a *model.TestAttempt) error {
			a.Timing.LastActiveAt = time.Now()
			return nil
		})
	if err != nil {
		return nil, false, s.mutateError(err)
	}
	log.Info().Uint("attemptID", fresh.ID).Msg("Resumed existing test attempt")
	result, err := toAttemptDTO(fresh)
	return result, true, err
}

// GetCurrent returns the most-recently-active live attempt, or nil when there
// is none. With includeAll, paused attempts qualify as well.
func (s *attemptService) GetCurrent(userID, testSeriesID, paperID uint, includeAll bool) (*dto.TestAttemptDTO, error) {
	attempt, err := s.attemptRepo.FindCurrent(userID, testSeriesID, paperID, includeAll)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Internal("failed to look up current attempt", err)
	}
	return toAttemptDTO(attempt)
}

// UpdateProgress applies a partial patch to a live attempt. Well-typed fields
// are applied, everything else is silently ignored; lastActiveAt is refreshed
// unconditionally, which is the heartbeat GetCurrent's ordering depends on.
func (s *attemptService) UpdateProgress(attemptID, userID, testSeriesID, paperID uint, patch dto.AttemptProgressPatchDTO) (*dto.TestAttemptDTO, error) {
	attempt, err := s.attemptRepo.Mutate(attemptID, userID, testSeriesID, paperID, func(a *model.TestAttempt) error {
		if v, ok := asInt(patch.CurrentSection); ok {
			a.Progress.CurrentSection = v
		}
		if v, ok := asInt(patch.CurrentQuestion); ok {
			a.Progress.CurrentQuestion = v
		}
		mergeVisited(a, patch.VisitedQuestions)
		applyTiming(a, patch.TimeSpent, patch.RemainingTime)
		applySelectedOptions(a, patch.SelectedOptions)
		applyMarkedForReview(a, patch.MarkedForReview)
		a.Timing.LastActiveAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, s.mutateError(err)
	}
	return toAttemptDTO(attempt)
}

// Submit closes a live attempt: final answers are applied, every response is
// scored against the paper, the summary is recomputed and the attempt is
// marked completed — all in one transaction, so the caller either sees a
// fully scored completed attempt or the untouched in-progress one.
func (s *attemptService) Submit(attemptID, userID, testSeriesID, paperID uint, req dto.SubmitAttemptDTO) (*dto.TestAttemptDTO, error) {
	attempt, err := s.attemptRepo.Mutate(attemptID, userID, testSeriesID, paperID, func(a *model.TestAttempt) error {
		paper, perr := s.paperRepo.FindByID(paperID)
		if perr != nil {
			if errors.Is(perr, gorm.ErrRecordNotFound) {
				return apperror.NotFound("question paper not found")
			}
			return apperror.Internal("failed to load question paper", perr)
		}

		applySelectedOptions(a, req.SelectedOptions)
		scoring.ScoreAttempt(a.Sections, paper.Sections)

		now := time.Now()
		a.Timing.SubmittedAt = &now
		a.Timing.LastActiveAt = now
		applyTiming(a, req.TimeSpent, req.RemainingTime)

		a.Status = model.AttemptCompleted
		a.Summary = scoring.Summarize(a.Sections)
		return nil
	})
	if err != nil {
		return nil, s.mutateError(err)
	}

	log.Info().Uint("attemptID", attempt.ID).Float64("totalScore", attempt.Summary.TotalScore).Msg("Test attempt submitted")
	return toAttemptDTO(attempt)
}

// GetResults returns a completed attempt: the given one (verified to belong
// to the user/series/paper) or, when attemptID is nil, the most recently
// submitted one.
func (s *attemptService) GetResults(attemptID *uint, userID, testSeriesID, paperID uint) (*dto.TestAttemptDTO, error) {
	var attempt *model.TestAttempt
	var err error
	if attemptID != nil {
		attempt, err = s.attemptRepo.FindCompletedByID(*attemptID, userID, testSeriesID, paperID)
	} else {
		attempt, err = s.attemptRepo.FindLatestCompleted(userID, testSeriesID, paperID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("no completed test attempt found")
		}
		return nil, apperror.Internal("failed to load results", err)
	}
	return toAttemptDTO(attempt)
}

// ListAttempts returns all of the user's attempts within a series as full
// documents, newest started first, optionally filtered by status.
func (s *attemptService) ListAttempts(userID, testSeriesID uint, statusFilter string) ([]dto.TestAttemptDTO, error) {
	status := model.AttemptStatus(statusFilter)
	if statusFilter != "" && !status.Valid() {
		return nil, apperror.Validation("invalid status filter: " + statusFilter)
	}

	attempts, err := s.attemptRepo.ListByUserAndSeries(userID, testSeriesID, status)
	if err != nil {
		return nil, apperror.Internal("failed to list attempts", err)
	}

	out := make([]dto.TestAttemptDTO, 0, len(attempts))
	for i := range attempts {
		item, err := toAttemptDTO(&attempts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, nil
}

// mutateError reclassifies a failed Mutate: service-level errors raised
// inside the mutation pass through, a missing row means the in-progress
// precondition failed.
func (s *attemptService) mutateError(err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("test attempt not found or not in progress")
	}
	return apperror.Internal("attempt store failure", err)
}

// newAttemptFromPaper snapshots the paper's section/question structure into a
// fresh in-progress attempt: one pre-allocated null response per question,
// per-section max score, and a remaining-time budget summed from the section
// durations (minutes).
func newAttemptFromPaper(userID, testSeriesID uint, paper *model.QuestionPaper) *model.TestAttempt {
	now := time.Now()

	sections := make(model.SectionAttempts, len(paper.Sections))
	for i, paperSection := range paper.Sections {
		responses := make([]model.Response, len(paperSection.Questions))
		maxScore := 0.0
		for j, question := range paperSection.Questions {
			responses[j] = model.Response{
				QuestionIndex: j,
				Type:          question.Type,
			}
			maxScore += question.PosMarks
		}
		sections[i] = model.SectionAttempt{
			SectionTitle: paperSection.Title,
			Responses:    responses,
			MaxScore:     maxScore,
		}
	}

	budget := paper.TotalDuration() * 60
	if budget <= 0 {
		budget = defaultTimeBudgetSeconds
	}

	return &model.TestAttempt{
		UserID:          userID,
		TestSeriesID:    testSeriesID,
		QuestionPaperID: paper.ID,
		Status:          model.AttemptInProgress,
		Progress: model.AttemptProgress{
			VisitedQuestions: datatypes.JSONMap{},
		},
		Timing: model.AttemptTiming{
			StartedAt:     now,
			LastActiveAt:  now,
			RemainingTime: budget,
		},
		Sections: sections,
	}
}

// mergeVisited unions the patch's visited flags into the attempt's map;
// existing keys absent from the patch are preserved.
func mergeVisited(a *model.TestAttempt, visited map[string]interface{}) {
	if len(visited) == 0 {
		return
	}
	if a.Progress.VisitedQuestions == nil {
		a.Progress.VisitedQuestions = datatypes.JSONMap{}
	}
	for key, value := range visited {
		if flag, ok := value.(bool); ok {
			a.Progress.VisitedQuestions[key] = flag
		}
	}
}

func applyTiming(a *model.TestAttempt, timeSpent, remainingTime interface{}) {
	if v, ok := asNumber(timeSpent); ok && v > 0 {
		a.Timing.TotalTimeSpent = int(v)
	}
	if v, ok := asNumber(remainingTime); ok && v >= 0 {
		a.Timing.RemainingTime = int(v)
	}
}

// applySelectedOptions writes per-question answers addressed by
// "sectionIndex-questionIndex" keys. Out-of-range indices and values that
// don't coerce to the question's answer type are skipped silently; an
// explicit null clears the answer.
func applySelectedOptions(a *model.TestAttempt, selections map[string]interface{}) {
	for key, value := range selections {
		sectionIdx, questionIdx, ok := parseResponseKey(key)
		if !ok {
			continue
		}
		response := a.ResponseAt(sectionIdx, questionIdx)
		if response == nil {
			continue
		}
		if value == nil {
			response.SelectedOption = nil
			continue
		}
		if answer, ok := model.CoerceAnswer(response.Type, value); ok {
			response.SelectedOption = &answer
		}
	}
}

func applyMarkedForReview(a *model.TestAttempt, marks map[string]interface{}) {
	for key, value := range marks {
		flag, ok := value.(bool)
		if !ok {
			continue
		}
		sectionIdx, questionIdx, keyOK := parseResponseKey(key)
		if !keyOK {
			continue
		}
		if response := a.ResponseAt(sectionIdx, questionIdx); response != nil {
			response.IsMarkedForReview = flag
		}
	}
}

func parseResponseKey(key string) (sectionIdx, questionIdx int, ok bool) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	sectionIdx, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	questionIdx, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return sectionIdx, questionIdx, true
}

// asInt accepts JSON numbers that are exact integers; everything else is
// "not provided".
func asInt(v interface{}) (int, bool) {
	n, ok := v.(float64)
	if !ok || n != float64(int(n)) {
		return 0, false
	}
	return int(n), true
}

func asNumber(v interface{}) (float64, bool) {
	n, ok := v.(float64)
	return n, ok
}

func toAttemptDTO(attempt *model.TestAttempt) (*dto.TestAttemptDTO, error) {
	var resp dto.TestAttemptDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to copy attempt to DTO")
		return nil, apperror.Internal("error preparing attempt response", err)
	}
	return &resp, nil
}
