package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/academia-dev/academia-api/internal/models"
	"github.com/academia-dev/academia-api/internal/service"
	appErrors "github.com/academia-dev/academia-api/pkg/errors"
	"github.com/academia-dev/academia-api/pkg/response"
)

// CellHandler exposes cell catalog and attendance endpoints.
type CellHandler struct {
	service *service.CellService
}

// NewCellHandler creates a new handler.
func NewCellHandler(svc *service.CellService) *CellHandler {
	return &CellHandler{service: svc}
}

// List godoc
// @Summary List cells
// @Tags Cells
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /celulas [get]
func (h *CellHandler) List(c *gin.Context) {
	cells, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cells, nil)
}

// ListByModule godoc
// @Summary List cells of a module
// @Tags Cells
// @Produce json
// @Param moduloId path int true "Module ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /celulas/modulo/{moduloId} [get]
func (h *CellHandler) ListByModule(c *gin.Context) {
	moduleID, err := pathID(c, "moduloId")
	if err != nil {
		response.Error(c, err)
		return
	}
	cells, err := h.service.ListByModule(c.Request.Context(), moduleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cells, nil)
}

// Get godoc
// @Summary Get cell
// @Tags Cells
// @Produce json
// @Param id path int true "Cell ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /celulas/{id} [get]
func (h *CellHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	cell, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cell, nil)
}

// Update godoc
// @Summary Update cell
// @Tags Cells
// @Accept json
// @Produce json
// @Param id path int true "Cell ID"
// @Param payload body models.CellInput true "Cell payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /celulas/{id} [put]
func (h *CellHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input models.CellInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Dados inválidos"))
		return
	}
	cell, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cell, nil)
}

// ListAttendances godoc
// @Summary List attendances of a cell
// @Tags Cells
// @Produce json
// @Param id path int true "Cell ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /celulas/{id}/presencas [get]
func (h *CellHandler) ListAttendances(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	attendances, err := h.service.ListAttendances(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attendances, nil)
}

// RegisterAttendance godoc
// @Summary Register attendance
// @Description Upsert the student's attendance record for this cell
// @Tags Cells
// @Accept json
// @Produce json
// @Param id path int true "Cell ID"
// @Param payload body models.AttendanceInput true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /celulas/{id}/presencas [post]
func (h *CellHandler) RegisterAttendance(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var input models.AttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Dados inválidos"))
		return
	}
	attendance, err := h.service.RegisterAttendance(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, attendance)
}
