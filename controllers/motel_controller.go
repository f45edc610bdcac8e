package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nhatro-backend/middleware"
	"nhatro-backend/services"
	"nhatro-backend/utils"
)

type MotelController struct {
	Service *services.MotelService
}

func NewMotelController(service *services.MotelService) *MotelController {
	return &MotelController{Service: service}
}

// List handles GET /api/motels (public)
func (mc *MotelController) List(c *gin.Context) {
	motels, err := mc.Service.List()
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, motels)
}

// Create handles POST /api/motels (landlord or admin)
func (mc *MotelController) Create(c *gin.Context) {
	var input services.MotelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	actor := middleware.CurrentUser(c)
	motel, err := mc.Service.Create(input, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, motel)
}
