package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nexprep/nexprep/internal/apperror"
	"github.com/nexprep/nexprep/internal/controller"
	"github.com/nexprep/nexprep/internal/dto"
	"github.com/nexprep/nexprep/internal/service"
	"github.com/rs/zerolog/log"
)

type QuestionPaperController struct {
	paperService service.QuestionPaperService
}

func NewQuestionPaperController(paperService service.QuestionPaperService) *QuestionPaperController {
	return &QuestionPaperController{paperService: paperService}
}

func (c *QuestionPaperController) RegisterRoutes(admin *gin.RouterGroup) {
	admin.POST("/test-series/:series_id/papers", c.Create)
	admin.GET("/test-series/:series_id/papers", c.ListByTestSeries)

	papers := admin.Group("/papers/:paper_id")
	papers.GET("", c.Get)
	papers.PUT("", c.Update)
	papers.DELETE("", c.Delete)
	papers.POST("/publish", c.Publish)
	papers.POST("/archive", c.Archive)
	papers.POST("/questions/import", c.ImportQuestionsJSON)
	papers.POST("/questions/import-csv", c.ImportQuestionsCSV)
}

// Create godoc
// @Summary (Admin) Create a question paper
// @Description Creates a draft paper under a test series with its full section/question structure. Correct answers are validated against each question's type.
// @Tags Admin - Question Papers
// @Accept json
// @Produce json
// @Param series_id path int true "Test series ID"
// @Param paper body dto.QuestionPaperCreateDTO true "Paper structure"
// @Success 201 {object} dto.QuestionPaperDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Test series not found"
// @Router /admin/test-series/{series_id}/papers [post]
func (c *QuestionPaperController) Create(ctx *gin.Context) {
	seriesID, ok := controller.UintParam(ctx, "series_id")
	if !ok {
		return
	}
	var req dto.QuestionPaperCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreatePaper: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Type: "ValidationError"})
		return
	}
	paper, err := c.paperService.Create(ctx.Request.Context(), seriesID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, paper)
}

// ListByTestSeries godoc
// @Summary (Admin) List papers of a test series
// @Tags Admin - Question Papers
// @Produce json
// @Param series_id path int true "Test series ID"
// @Success 200 {array} dto.QuestionPaperSummaryDTO
// @Router /admin/test-series/{series_id}/papers [get]
func (c *QuestionPaperController) ListByTestSeries(ctx *gin.Context) {
	seriesID, ok := controller.UintParam(ctx, "series_id")
	if !ok {
		return
	}
	papers, err := c.paperService.ListByTestSeries(ctx.Request.Context(), seriesID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, papers)
}

// Get godoc
// @Summary (Admin) Get a question paper
// @Tags Admin - Question Papers
// @Produce json
// @Param paper_id path int true "Question paper ID"
// @Success 200 {object} dto.QuestionPaperDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/papers/{paper_id} [get]
func (c *QuestionPaperController) Get(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	paper, err := c.paperService.Get(ctx.Request.Context(), paperID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// Update godoc
// @Summary (Admin) Update paper metadata
// @Tags Admin - Question Papers
// @Accept json
// @Produce json
// @Param paper_id path int true "Question paper ID"
// @Param paper body dto.QuestionPaperUpdateDTO true "Fields to update"
// @Success 200 {object} dto.QuestionPaperDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/papers/{paper_id} [put]
func (c *QuestionPaperController) Update(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	var req dto.QuestionPaperUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Type: "ValidationError"})
		return
	}
	paper, err := c.paperService.Update(ctx.Request.Context(), paperID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// Delete godoc
// @Summary (Admin) Delete a paper
// @Description Draft and archived papers only; published papers must be archived first.
// @Tags Admin - Question Papers
// @Produce json
// @Param paper_id path int true "Question paper ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Paper is published"
// @Router /admin/papers/{paper_id} [delete]
func (c *QuestionPaperController) Delete(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	if err := c.paperService.Delete(ctx.Request.Context(), paperID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "question paper deleted"})
}

// Publish godoc
// @Summary (Admin) Publish a draft paper
// @Tags Admin - Question Papers
// @Produce json
// @Param paper_id path int true "Question paper ID"
// @Success 200 {object} dto.QuestionPaperDTO
// @Failure 400 {object} dto.ErrorResponse "Paper has no questions"
// @Failure 409 {object} dto.ErrorResponse "Paper is not a draft"
// @Router /admin/papers/{paper_id}/publish [post]
func (c *QuestionPaperController) Publish(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	paper, err := c.paperService.Publish(ctx.Request.Context(), paperID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// Archive godoc
// @Summary (Admin) Archive a published paper
// @Tags Admin - Question Papers
// @Produce json
// @Param paper_id path int true "Question paper ID"
// @Success 200 {object} dto.QuestionPaperDTO
// @Failure 409 {object} dto.ErrorResponse "Paper is not published"
// @Router /admin/papers/{paper_id}/archive [post]
func (c *QuestionPaperController) Archive(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	paper, err := c.paperService.Archive(ctx.Request.Context(), paperID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// ImportQuestionsJSON godoc
// @Summary (Admin) Bulk-import questions from JSON
// @Description Appends questions to one section of a draft paper. Invalid questions are skipped and reported as warnings.
// @Tags Admin - Question Papers
// @Accept json
// @Produce json
// @Param paper_id path int true "Question paper ID"
// @Param import body dto.QuestionImportDTO true "Section index and questions"
// @Success 200 {object} dto.ImportResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Paper is not a draft"
// @Router /admin/papers/{paper_id}/questions/import [post]
func (c *QuestionPaperController) ImportQuestionsJSON(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	var req dto.QuestionImportDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin ImportQuestions: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Type: "ValidationError"})
		return
	}
	result, err := c.paperService.ImportQuestionsJSON(ctx.Request.Context(), paperID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ImportQuestionsCSV godoc
// @Summary (Admin) Bulk-import questions from CSV
// @Description Reads CSV rows (type,prompt,options,pos_marks,neg_marks,correct_answer) from the request body and appends them to the given section of a draft paper.
// @Tags Admin - Question Papers
// @Accept text/csv
// @Produce json
// @Param paper_id path int true "Question paper ID"
// @Param section_index query int false "Target section index (default 0)"
// @Success 200 {object} dto.ImportResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Paper is not a draft"
// @Router /admin/papers/{paper_id}/questions/import-csv [post]
func (c *QuestionPaperController) ImportQuestionsCSV(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	sectionIndex := 0
	if raw := ctx.Query("section_index"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 0 {
			controller.RespondError(ctx, apperror.Validation("invalid section_index parameter"))
			return
		}
		sectionIndex = val
	}
	result, err := c.paperService.ImportQuestionsCSV(ctx.Request.Context(), paperID, sectionIndex, ctx.Request.Body)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
