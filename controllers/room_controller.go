package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nhatro-backend/middleware"
	"nhatro-backend/services"
	"nhatro-backend/utils"
)

type RoomController struct {
	Service *services.RoomService
}

func NewRoomController(service *services.RoomService) *RoomController {
	return &RoomController{Service: service}
}

// List handles GET /api/rooms?motelId=&status= (public search)
func (rc *RoomController) List(c *gin.Context) {
	rooms, err := rc.Service.List(queryUint(c, "motelId"), c.Query("status"))
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// Get handles GET /api/rooms/:id (public)
func (rc *RoomController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid room id")
		return
	}

	room, err := rc.Service.Get(id)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// Create handles POST /api/rooms (owning landlord or admin)
func (rc *RoomController) Create(c *gin.Context) {
	var input services.RoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	actor := middleware.CurrentUser(c)
	room, err := rc.Service.Create(input, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}
