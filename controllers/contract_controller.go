package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nhatro-backend/middleware"
	"nhatro-backend/services"
	"nhatro-backend/utils"
)

type ContractController struct {
	Service *services.ContractService
}

func NewContractController(service *services.ContractService) *ContractController {
	return &ContractController{Service: service}
}

// Create handles POST /api/contracts
func (cc *ContractController) Create(c *gin.Context) {
	var input services.ContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	actor := middleware.CurrentUser(c)
	contract, err := cc.Service.Create(input, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, contract)
}

// List handles GET /api/contracts?status=&motelId=&roomId=&page=&limit=
func (cc *ContractController) List(c *gin.Context) {
	filter := services.ContractFilter{
		Status:  c.Query("status"),
		MotelID: queryUint(c, "motelId"),
		RoomID:  queryUint(c, "roomId"),
		Page:    queryInt(c, "page"),
		Limit:   queryInt(c, "limit"),
	}

	actor := middleware.CurrentUser(c)
	list, total, err := cc.Service.List(filter, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"contracts": list, "total": total})
}

// Get handles GET /api/contracts/:id
func (cc *ContractController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid contract id")
		return
	}

	actor := middleware.CurrentUser(c)
	contract, err := cc.Service.Get(id, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, contract)
}

// Delete handles DELETE /api/contracts/:id
func (cc *ContractController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid contract id")
		return
	}

	actor := middleware.CurrentUser(c)
	if err := cc.Service.Delete(id, *actor); err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "contract deleted"})
}

// Terminate handles POST /api/contracts/:id/terminate
func (cc *ContractController) Terminate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid contract id")
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	actor := middleware.CurrentUser(c)
	contract, err := cc.Service.Terminate(id, input.Status, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, contract)
}

// Document handles GET /api/contracts/:id/document
func (cc *ContractController) Document(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid contract id")
		return
	}

	actor := middleware.CurrentUser(c)
	contract, err := cc.Service.Get(id, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}

	doc, err := utils.RenderContractDocument(contract)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to render document")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+utils.DocumentFilename("contract", contract.ContractNumber))
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}
