package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nhatro-backend/middleware"
	"nhatro-backend/services"
	"nhatro-backend/utils"
)

type AppointmentController struct {
	Service *services.AppointmentService
}

func NewAppointmentController(service *services.AppointmentService) *AppointmentController {
	return &AppointmentController{Service: service}
}

// Create handles POST /api/appointments (registered users or guests)
func (ap *AppointmentController) Create(c *gin.Context) {
	var input services.AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	appointment, err := ap.Service.Create(input, middleware.CurrentUser(c))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, appointment)
}

// Get handles GET /api/appointments/:id. Guests identify themselves with
// phone+email query parameters.
func (ap *AppointmentController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid appointment id")
		return
	}

	appointment, err := ap.Service.Get(id, middleware.CurrentUser(c), c.Query("phone"), c.Query("email"))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, appointment)
}

// SetStatus handles PUT /api/appointments/:id/status
func (ap *AppointmentController) SetStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid appointment id")
		return
	}

	var input struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	actor := middleware.CurrentUser(c)
	appointment, err := ap.Service.SetStatus(id, input.Status, input.Note, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, appointment)
}

// Delete handles DELETE /api/appointments/:id
func (ap *AppointmentController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid appointment id")
		return
	}

	actor := middleware.CurrentUser(c)
	if err := ap.Service.Delete(id, *actor); err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "appointment deleted"})
}

// ListForRoom handles GET /api/rooms/:id/appointments
func (ap *AppointmentController) ListForRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid room id")
		return
	}

	actor := middleware.CurrentUser(c)
	list, err := ap.Service.ListForRoom(roomID, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}
