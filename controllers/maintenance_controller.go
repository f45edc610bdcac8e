package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nhatro-backend/middleware"
	"nhatro-backend/services"
	"nhatro-backend/utils"
)

type MaintenanceController struct {
	Service *services.MaintenanceService
}

func NewMaintenanceController(service *services.MaintenanceService) *MaintenanceController {
	return &MaintenanceController{Service: service}
}

// Create handles POST /api/maintenance-requests
func (mc *MaintenanceController) Create(c *gin.Context) {
	var input services.MaintenanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	actor := middleware.CurrentUser(c)
	request, err := mc.Service.CreateRequest(input, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, request)
}

// Update handles PUT /api/maintenance-requests/:id
func (mc *MaintenanceController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request id")
		return
	}

	var input services.MaintenanceUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	actor := middleware.CurrentUser(c)
	request, err := mc.Service.UpdateStatus(id, input, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"request": request,
		"message": services.StatusMessage(request.Status),
	})
}

// List handles GET /api/maintenance-requests?roomId=&status=&page=&limit=
func (mc *MaintenanceController) List(c *gin.Context) {
	filter := services.MaintenanceFilter{
		RoomID: queryUint(c, "roomId"),
		Status: c.Query("status"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}

	actor := middleware.CurrentUser(c)
	list, total, err := mc.Service.List(filter, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"requests": list, "total": total})
}

// Get handles GET /api/maintenance-requests/:id
func (mc *MaintenanceController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request id")
		return
	}

	actor := middleware.CurrentUser(c)
	request, err := mc.Service.Get(id, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, request)
}
