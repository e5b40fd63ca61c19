package handler

import (
	"net/http"

	"anoa.com/tccscheduler/internal/modules/local/dto"
	localService "anoa.com/tccscheduler/internal/modules/local/service"
	"anoa.com/tccscheduler/pkg/response"
	"anoa.com/tccscheduler/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LocalHandler struct {
	service localService.LocalService
}

func NewLocalHandler(service localService.LocalService) *LocalHandler {
	return &LocalHandler{service: service}
}

func (h *LocalHandler) CreateLocal(c *gin.Context) {
	var input dto.CreateLocalInput
	if err := validator.BindJSONStrict(c, &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	local, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, local)
}

func (h *LocalHandler) GetAllLocals(c *gin.Context) {
	locals, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": locals})
}

func (h *LocalHandler) GetActiveLocals(c *gin.Context) {
	locals, err := h.service.GetActive(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": locals})
}

func (h *LocalHandler) GetLocal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return
	}

	local, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, local)
}

func (h *LocalHandler) UpdateLocal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return
	}

	var input dto.UpdateLocalInput
	if err := validator.BindJSONStrict(c, &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	local, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, local)
}

func (h *LocalHandler) DeleteLocal(c *gin.Context) {
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
