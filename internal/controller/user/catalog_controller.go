package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexprep/nexprep/internal/controller"
	"github.com/nexprep/nexprep/internal/service"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

func (c *CatalogController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/courses", c.ListCourses)
	api.GET("/courses/:course_id/exams", c.ListExams)
	api.GET("/test-series", c.ListTestSeries)
	api.GET("/test-series/:series_id", c.GetTestSeries)
	api.GET("/papers/:paper_id", c.GetQuestionPaper)
}

// ListCourses godoc
// @Summary List courses
// @Tags Catalog
// @Produce json
// @Success 200 {array} dto.CourseDTO
// @Router /courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	courses, err := c.catalogService.ListCourses(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// ListExams godoc
// @Summary List exams of a course
// @Tags Catalog
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {array} dto.ExamDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /courses/{course_id}/exams [get]
func (c *CatalogController) ListExams(ctx *gin.Context) {
	courseID, ok := controller.UintParam(ctx, "course_id")
	if !ok {
		return
	}
	exams, err := c.catalogService.ListExams(ctx.Request.Context(), courseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// ListTestSeries godoc
// @Summary List test series
// @Description Lists test series, optionally filtered by course and exam.
// @Tags Catalog
// @Produce json
// @Param course_id query int false "Filter by course"
// @Param exam_id query int false "Filter by exam"
// @Success 200 {array} dto.TestSeriesDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /test-series [get]
func (c *CatalogController) ListTestSeries(ctx *gin.Context) {
	courseID, ok := controller.UintQuery(ctx, "course_id")
	if !ok {
		return
	}
	examID, ok := controller.UintQuery(ctx, "exam_id")
	if !ok {
		return
	}
	series, err := c.catalogService.ListTestSeries(ctx.Request.Context(), courseID, examID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, series)
}

// GetTestSeries godoc
// @Summary Get a test series with its published papers
// @Tags Catalog
// @Produce json
// @Param series_id path int true "Test series ID"
// @Success 200 {object} dto.TestSeriesDetailDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /test-series/{series_id} [get]
func (c *CatalogController) GetTestSeries(ctx *gin.Context) {
	seriesID, ok := controller.UintParam(ctx, "series_id")
	if !ok {
		return
	}
	series, err := c.catalogService.GetTestSeries(ctx.Request.Context(), seriesID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, series)
}

// GetQuestionPaper godoc
// @Summary Get a published question paper
// @Description Student-safe paper view: question prompts, options and marks without correct answers.
// @Tags Catalog
// @Produce json
// @Param paper_id path int true "Question paper ID"
// @Success 200 {object} dto.QuestionPaperDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /papers/{paper_id} [get]
func (c *CatalogController) GetQuestionPaper(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	paper, err := c.catalogService.GetQuestionPaper(ctx.Request.Context(), paperID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paper)
}
