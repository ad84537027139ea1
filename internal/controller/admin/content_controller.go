package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexprep/nexprep/internal/controller"
	"github.com/nexprep/nexprep/internal/dto"
	"github.com/nexprep/nexprep/internal/service"
	"github.com/rs/zerolog/log"
)

type ContentController struct {
	contentService service.ContentService
}

func NewContentController(contentService service.ContentService) *ContentController {
	return &ContentController{contentService: contentService}
}

func (c *ContentController) RegisterRoutes(admin *gin.RouterGroup) {
	courses := admin.Group("/courses")
	courses.POST("", c.CreateCourse)
	courses.PUT("/:course_id", c.UpdateCourse)
	courses.DELETE("/:course_id", c.DeleteCourse)

	exams := admin.Group("/exams")
	exams.POST("", c.CreateExam)
	exams.PUT("/:exam_id", c.UpdateExam)
	exams.DELETE("/:exam_id", c.DeleteExam)

	series := admin.Group("/test-series")
	series.POST("", c.CreateTestSeries)
	series.PUT("/:series_id", c.UpdateTestSeries)
	series.DELETE("/:series_id", c.DeleteTestSeries)
}

// CreateCourse godoc
// @Summary (Admin) Create a course
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateDTO true "Course data"
// @Success 201 {object} dto.CourseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Duplicate title"
// @Router /admin/courses [post]
func (c *ContentController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateCourse: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Type: "ValidationError"})
		return
	}
	course, err := c.contentService.CreateCourse(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// UpdateCourse godoc
// @Summary (Admin) Update a course
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param course body dto.CourseUpdateDTO true "Fields to update"
// @Success 200 {object} dto.CourseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/courses/{course_id} [put]
func (c *ContentController) UpdateCourse(ctx *gin.Context) {
	courseID, ok := controller.UintParam(ctx, "course_id")
	if !ok {
		return
	}
	var req dto.CourseUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Type: "ValidationError"})
		return
	}
	course, err := c.contentService.UpdateCourse(ctx.Request.Context(), courseID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// DeleteCourse godoc
// @Summary (Admin) Delete a course
// @Tags Admin - Content
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/courses/{course_id} [delete]
func (c *ContentController) DeleteCourse(ctx *gin.Context) {
	courseID, ok := controller.UintParam(ctx, "course_id")
	if !ok {
		return
	}
	if err := c.contentService.DeleteCourse(ctx.Request.Context(), courseID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "course deleted"})
}

// CreateExam godoc
// @Summary (Admin) Create an exam under a course
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param exam body dto.ExamCreateDTO true "Exam data"
// @Success 201 {object} dto.ExamDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/exams [post]
func (c *ContentController) CreateExam(ctx *gin.Context) {
	var req dto.ExamCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateExam: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Type: "ValidationError"})
		return
	}
	exam, err := c.contentService.CreateExam(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, exam)
}

// UpdateExam godoc
// @Summary (Admin) Update an exam
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param exam body dto.ExamUpdateDTO true "Fields to update"
// @Success 200 {object} dto.ExamDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id} [put]
func (c *ContentController) UpdateExam(ctx *gin.Context) {
	examID, ok := controller.UintParam(ctx, "exam_id")
	if !ok {
		return
	}
	var req dto.ExamUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Type: "ValidationError"})
		return
	}
	exam, err := c.contentService.UpdateExam(ctx.Request.Context(), examID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exam)
}

// DeleteExam godoc
// @Summary (Admin) Delete an exam
// @Tags Admin - Content
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id} [delete]
func (c *ContentController) DeleteExam(ctx *gin.Context) {
	examID, ok := controller.UintParam(ctx, "exam_id")
	if !ok {
		return
	}
	if err := c.contentService.DeleteExam(ctx.Request.Context(), examID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "exam deleted"})
}

// CreateTestSeries godoc
// @Summary (Admin) Create a test series
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param series body dto.TestSeriesCreateDTO true "Test series data"
// @Success 201 {object} dto.TestSeriesDTO
// @Failure 400 {object} dto.ErrorResponse "Exam/course mismatch"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/test-series [post]
func (c *ContentController) CreateTestSeries(ctx *gin.Context) {
	var req dto.TestSeriesCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateTestSeries: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Type: "ValidationError"})
		return
	}
	series, err := c.contentService.CreateTestSeries(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, series)
}

// UpdateTestSeries godoc
// @Summary (Admin) Update a test series
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param series_id path int true "Test series ID"
// @Param series body dto.TestSeriesUpdateDTO true "Fields to update"
// @Success 200 {object} dto.TestSeriesDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/test-series/{series_id} [put]
func (c *ContentController) UpdateTestSeries(ctx *gin.Context) {
	seriesID, ok := controller.UintParam(ctx, "series_id")
	if !ok {
		return
	}
	var req dto.TestSeriesUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Type: "ValidationError"})
		return
	}
	series, err := c.contentService.UpdateTestSeries(ctx.Request.Context(), seriesID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, series)
}

// DeleteTestSeries godoc
// @Summary (Admin) Delete a test series
// @Tags Admin - Content
// @Produce json
// @Param series_id path int true "Test series ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/test-series/{series_id} [delete]
func (c *ContentController) DeleteTestSeries(ctx *gin.Context) {
	seriesID, ok := controller.UintParam(ctx, "series_id")
	if !ok {
		return
	}
	if err := c.contentService.DeleteTestSeries(ctx.Request.Context(), seriesID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "test series deleted"})
}
