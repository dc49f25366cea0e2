package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradebook-api/internal/dto"
	"github.com/noah-isme/gradebook-api/internal/models"
	"github.com/noah-isme/gradebook-api/internal/service"
	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
	"github.com/noah-isme/gradebook-api/pkg/response"
)

type gradeService interface {
	SeedIfMissing(ctx context.Context, userID string) error
	FetchGrades(ctx context.Context, userID string) (*models.StudentGradesRecord, error)
	Replace(ctx context.Context, userID string, req dto.SaveGradesRequest) (*models.StudentGradesRecord, error)
	ApplyEdits(ctx context.Context, userID string, req dto.GradeEditRequest) (*models.StudentGradesRecord, error)
	Preview(ctx context.Context, req dto.ComputeGradesRequest) (*models.StudentGradesRecord, error)
	FindSemester(ctx context.Context, userID string, number int) (*models.SemesterGrades, error)
}

type transcriptExporter interface {
	Export(ctx context.Context, userID, format string) (*service.ExportResult, error)
}

// GradeHandler exposes student grade records.
type GradeHandler struct {
	grades  gradeService
	exports transcriptExporter
}

// NewGradeHandler builds a new handler.
func NewGradeHandler(grades gradeService, exports transcriptExporter) *GradeHandler {
	return &GradeHandler{grades: grades, exports: exports}
}

// Get godoc
// @Summary Get a student's grade record
// @Tags Grades
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/grades [get]
func (h *GradeHandler) Get(c *gin.Context) {
	record, err := h.grades.FetchGrades(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Replace godoc
// @Summary Save a student's grade record
// @Description Derived fields are recomputed under the current policy; submitted totals and GPAs are ignored.
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body dto.SaveGradesRequest true "Grade record"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/{id}/grades [put]
func (h *GradeHandler) Replace(c *gin.Context) {
	var req dto.SaveGradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grade record payload"))
		return
	}
	record, err := h.grades.Replace(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Edit godoc
// @Summary Apply edits to a student's grade record
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body dto.GradeEditRequest true "Edit operations"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/{id}/grades [patch]
func (h *GradeHandler) Edit(c *gin.Context) {
	var req dto.GradeEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grade edit payload"))
		return
	}
	record, err := h.grades.ApplyEdits(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Seed godoc
// @Summary Seed a student's demonstration record
// @Description Creates the two-semester demonstration record unless one already exists.
// @Tags Grades
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/grades/seed [post]
func (h *GradeHandler) Seed(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("id")
	if err := h.grades.SeedIfMissing(ctx, userID); err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.grades.FetchGrades(ctx, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Compute godoc
// @Summary Preview derived grades
// @Description Recomputes the submitted record under the stored policy without saving it.
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body dto.ComputeGradesRequest true "Grade record"
// @Success 200 {object} response.Envelope
// @Router /grades/compute [post]
func (h *GradeHandler) Compute(c *gin.Context) {
	var req dto.ComputeGradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grade record payload"))
		return
	}
	record, err := h.grades.Preview(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Semester godoc
// @Summary Get one semester of a student's record
// @Tags Grades
// @Produce json
// @Param id path string true "Student ID"
// @Param number path int true "Semester number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/grades/semesters/{number} [get]
func (h *GradeHandler) Semester(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semester number must be a positive integer"))
		return
	}
	sem, err := h.grades.FindSemester(c.Request.Context(), c.Param("id"), number)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sem, nil)
}

// Export godoc
// @Summary Download a transcript
// @Tags Grades
// @Produce octet-stream
// @Param id path string true "Student ID"
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /students/{id}/grades/export [get]
func (h *GradeHandler) Export(c *gin.Context) {
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export query"))
		return
	}
	result, err := h.exports.Export(c.Request.Context(), c.Param("id"), query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Data)
}
