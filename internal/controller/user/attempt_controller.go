package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexprep/nexprep/internal/controller"
	"github.com/nexprep/nexprep/internal/dto"
	"github.com/nexprep/nexprep/internal/service"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(attemptService service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

func (c *AttemptController) RegisterRoutes(api *gin.RouterGroup) {
	series := api.Group("/test-series/:series_id")
	{
		series.GET("/attempts", c.ListAttempts)

		attempts := series.Group("/papers/:paper_id/attempts")
		attempts.POST("/start", c.StartOrResume)
		attempts.GET("/current", c.GetCurrent)
		attempts.PUT("/:attempt_id/progress", c.UpdateProgress)
		attempts.POST("/:attempt_id/submit", c.Submit)
		attempts.GET("/results", c.GetResults)
	}
}

// StartOrResume godoc
// @Summary Start a test attempt, or resume the live one
// @Description Returns the user's in-progress attempt for this paper if one exists (touching its activity timestamp), otherwise creates a fresh attempt snapshotting the paper's current structure.
// @Tags Attempts
// @Produce json
// @Param series_id path int true "Test series ID"
// @Param paper_id path int true "Question paper ID"
// @Param X-User-ID header int true "Calling user ID"
// @Success 200 {object} dto.TestAttemptDTO "Existing attempt resumed"
// @Success 201 {object} dto.TestAttemptDTO "New attempt started"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Question paper missing or empty"
// @Router /test-series/{series_id}/papers/{paper_id}/attempts/start [post]
func (c *AttemptController) StartOrResume(ctx *gin.Context) {
	userID, ok := controller.UserIdentity(ctx)
	if !ok {
		return
	}
	seriesID, ok := controller.UintParam(ctx, "series_id")
	if !ok {
		return
	}
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}

	attempt, resumed, err := c.attemptService.StartOrResume(userID, seriesID, paperID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	status := http.StatusCreated
	if resumed {
		status = http.StatusOK
	}
	ctx.JSON(status, attempt)
}

// GetCurrent godoc
// @Summary Get the current live attempt
// @Description Returns the most recently active in-progress attempt, or a null testAttempt when there is none. With includeAll=true, paused attempts qualify too.
// @Tags Attempts
// @Produce json
// @Param series_id path int true "Test series ID"
// @Param paper_id path int true "Question paper ID"
// @Param includeAll query bool false "Also consider paused attempts"
// @Param X-User-ID header int true "Calling user ID"
// @Success 200 {object} dto.CurrentAttemptDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /test-series/{series_id}/papers/{paper_id}/attempts/current [get]
func (c *AttemptController) GetCurrent(ctx *gin.Context) {
	userID, ok := controller.UserIdentity(ctx)
	if !ok {
		return
	}
	seriesID, ok := controller.UintParam(ctx, "series_id")
	if !ok {
		return
	}
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	includeAll := ctx.Query("includeAll") == "true"

	attempt, err := c.attemptService.GetCurrent(userID, seriesID, paperID, includeAll)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CurrentAttemptDTO{TestAttempt: attempt})
}

// UpdateProgress godoc
// @Summary Patch live attempt progress
// @Description Applies a partial progress update (position, visited map, timing, answers, review marks) to an in-progress attempt. Well-typed fields are applied, the rest are ignored.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param series_id path int true "Test series ID"
// @Param paper_id path int true "Question paper ID"
// @Param attempt_id path int true "Attempt ID"
// @Param patch body dto.AttemptProgressPatchDTO true "Partial progress patch"
// @Param X-User-ID header int true "Calling user ID"
// @Success 200 {object} dto.TestAttemptDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "No matching in-progress attempt"
// @Router /test-series/{series_id}/papers/{paper_id}/attempts/{attempt_id}/progress [put]
func (c *AttemptController) UpdateProgress(ctx *gin.Context) {
	userID, ok := controller.UserIdentity(ctx)
	if !ok {
		return
	}
	seriesID, ok := controller.UintParam(ctx, "series_id")
	if !ok {
		return
	}
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	attemptID, ok := controller.UintParam(ctx, "attempt_id")
	if !ok {
		return
	}

	var patch dto.AttemptProgressPatchDTO
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		log.Warn().Err(err).Msg("UpdateProgress: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Type: "ValidationError"})
		return
	}

	attempt, err := c.attemptService.UpdateProgress(attemptID, userID, seriesID, paperID, patch)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// Submit godoc
// @Summary Submit a test attempt
// @Description Applies the final answers, scores every response against the paper, recomputes the summary and marks the attempt completed. Atomic: on failure the attempt stays in progress.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param series_id path int true "Test series ID"
// @Param paper_id path int true "Question paper ID"
// @Param attempt_id path int true "Attempt ID"
// @Param submission body dto.SubmitAttemptDTO true "Final answers and timing"
// @Param X-User-ID header int true "Calling user ID"
// @Success 200 {object} dto.TestAttemptDTO "Completed attempt with scores"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "No matching in-progress attempt, or paper gone"
// @Router /test-series/{series_id}/papers/{paper_id}/attempts/{attempt_id}/submit [post]
func (c *AttemptController) Submit(ctx *gin.Context) {
	userID, ok := controller.UserIdentity(ctx)
	if !ok {
		return
	}
	seriesID, ok := controller.UintParam(ctx, "series_id")
	if !ok {
		return
	}
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	attemptID, ok := controller.UintParam(ctx, "attempt_id")
	if !ok {
		return
	}

	var req dto.SubmitAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Submit: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Type: "ValidationError"})
		return
	}

	attempt, err := c.attemptService.Submit(attemptID, userID, seriesID, paperID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// GetResults godoc
// @Summary Get results of a completed attempt
// @Description Returns the given completed attempt, or the most recently submitted one when attempt_id is omitted.
// @Tags Attempts
// @Produce json
// @Param series_id path int true "Test series ID"
// @Param paper_id path int true "Question paper ID"
// @Param attempt_id query int false "Specific attempt ID; defaults to the latest completed"
// @Param X-User-ID header int true "Calling user ID"
// @Success 200 {object} dto.TestAttemptDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "No completed attempt found"
// @Router /test-series/{series_id}/papers/{paper_id}/attempts/results [get]
func (c *AttemptController) GetResults(ctx *gin.Context) {
	userID, ok := controller.UserIdentity(ctx)
	if !ok {
		return
	}
	seriesID, ok := controller.UintParam(ctx, "series_id")
	if !ok {
		return
	}
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}

	var attemptID *uint
	if ctx.Query("attempt_id") != "" {
		id, ok := controller.UintQuery(ctx, "attempt_id")
		if !ok {
			return
		}
		attemptID = &id
	}

	attempt, err := c.attemptService.GetResults(attemptID, userID, seriesID, paperID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// ListAttempts godoc
// @Summary List the user's attempts in a series
// @Description Returns compact rows for every attempt the user made within the series, newest started first, optionally filtered by status.
// @Tags Attempts
// @Produce json
// @Param series_id path int true "Test series ID"
// @Param status query string false "Filter by attempt status" Enums(in-progress, paused, completed, abandoned, timed-out)
// @Param X-User-ID header int true "Calling user ID"
// @Success 200 {array} dto.TestAttemptDTO
// @Failure 400 {object} dto.ErrorResponse "Unknown status filter"
// @Router /test-series/{series_id}/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	userID, ok := controller.UserIdentity(ctx)
	if !ok {
		return
	}
	seriesID, ok := controller.UintParam(ctx, "series_id")
	if !ok {
		return
	}

	attempts, err := c.attemptService.ListAttempts(userID, seriesID, ctx.Query("status"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
