package handler

import (
	"net/http"

	"anoa.com/tccscheduler/internal/modules/presentation/dto"
	presentationService "anoa.com/tccscheduler/internal/modules/presentation/service"
	"anoa.com/tccscheduler/pkg/response"
	"anoa.com/tccscheduler/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PresentationHandler struct {
	service presentationService.PresentationService
}

func NewPresentationHandler(service presentationService.PresentationService) *PresentationHandler {
	return &PresentationHandler{service: service}
}

func (h *PresentationHandler) CreatePresentation(c *gin.Context) {
	var input dto.CreatePresentationInput
	if err := validator.BindJSONStrict(c, &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	presentation, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, presentation)
}

func (h *PresentationHandler) GetAllPresentations(c *gin.Context) {
	presentations, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": presentations})
}

// GetMyOrientations lists the presentations the caller supervises, either as
// primary advisor or as co-advisor.
func (h *PresentationHandler) GetMyOrientations(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	presentations, err := h.service.GetByAdvisor(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": presentations})
}

func (h *PresentationHandler) GetMyPresentations(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	presentations, err := h.service.GetByStudent(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": presentations})
}

func (h *PresentationHandler) GetPresentation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return
	}

	presentation, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, presentation)
}

func (h *PresentationHandler) UpdatePresentation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return
	}

	var input dto.UpdatePresentationInput
	if err := validator.BindJSONStrict(c, &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	presentation, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, presentation)
}

func (h *PresentationHandler) DeletePresentation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
