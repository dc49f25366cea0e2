package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradebook-api/internal/dto"
	"github.com/noah-isme/gradebook-api/internal/models"
	"github.com/noah-isme/gradebook-api/internal/service"
	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
	"github.com/noah-isme/gradebook-api/pkg/response"
)

type gradeConfigService interface {
	GetConfig(ctx context.Context) models.GradeConfig
	Update(ctx context.Context, req dto.GradeConfigRequest) (*models.GradeConfig, error)
	Normalize(cfg models.GradeConfig) service.NormalizedConfig
}

// GradeConfigHandler exposes the grading policy.
type GradeConfigHandler struct {
	service gradeConfigService
}

// NewGradeConfigHandler builds a new handler.
func NewGradeConfigHandler(service gradeConfigService) *GradeConfigHandler {
	return &GradeConfigHandler{service: service}
}

// Get godoc
// @Summary Get grading policy
// @Description Returns the stored policy or the default two midterms at 20% and end-semester at 60%.
// @Tags Grade Config
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grades/config [get]
func (h *GradeConfigHandler) Get(c *gin.Context) {
	cfg := h.service.GetConfig(c.Request.Context())
	response.JSON(c, http.StatusOK, cfg, nil)
}

// Update godoc
// @Summary Replace grading policy
// @Description Weights are stored as given; they are normalised at computation time.
// @Tags Grade Config
// @Accept json
// @Produce json
// @Param payload body dto.GradeConfigRequest true "Grading policy"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grades/config [put]
func (h *GradeConfigHandler) Update(c *gin.Context) {
	var req dto.GradeConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grade config payload"))
		return
	}
	cfg, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg, nil)
}

// Normalize godoc
// @Summary Normalise weights
// @Description Scales the submitted weights to sum to 1, rounded to two decimals. Nothing is saved.
// @Tags Grade Config
// @Accept json
// @Produce json
// @Param payload body dto.GradeConfigRequest true "Grading policy"
// @Success 200 {object} response.Envelope
// @Router /grades/config/normalize [post]
func (h *GradeConfigHandler) Normalize(c *gin.Context) {
	var req dto.GradeConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grade config payload"))
		return
	}
	out := h.service.Normalize(req.ToModel())
	response.JSON(c, http.StatusOK, out.Config, nil, map[string]interface{}{
		"total": out.Total,
		"valid": out.Valid,
	})
}
