package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nhatro-backend/middleware"
	"nhatro-backend/models"
	"nhatro-backend/services"
	"nhatro-backend/utils"
)

type InvoiceController struct {
	Service *services.InvoiceService
}

func NewInvoiceController(service *services.InvoiceService) *InvoiceController {
	return &InvoiceController{Service: service}
}

// Create handles POST /api/invoices
func (ic *InvoiceController) Create(c *gin.Context) {
	var input services.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request payload")
		return
	}

	actor := middleware.CurrentUser(c)
	invoice, err := ic.Service.Create(input, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, invoice)
}

// List handles GET /api/invoices?contractId=&status=&page=&limit=
func (ic *InvoiceController) List(c *gin.Context) {
	filter := services.InvoiceFilter{
		ContractID: queryUint(c, "contractId"),
		Status:     c.Query("status"),
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	}

	actor := middleware.CurrentUser(c)
	list, total, err := ic.Service.List(filter, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"invoices": list, "total": total})
}

// Pay handles POST /api/invoices/:id/pay
func (ic *InvoiceController) Pay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid invoice id")
		return
	}

	actor := middleware.CurrentUser(c)
	invoice, err := ic.Service.MarkPaid(id, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

// SweepOverdue handles POST /api/invoices/sweep-overdue (staff/admin)
func (ic *InvoiceController) SweepOverdue(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor.Role != models.RoleStaff && actor.Role != models.RoleAdmin {
		utils.JSONError(c, http.StatusForbidden, "FORBIDDEN", "staff or admin only")
		return
	}

	changed, err := ic.Service.SweepOverdue(time.Now().UTC())
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"markedOverdue": changed})
}

// Document handles GET /api/invoices/:id/document
func (ic *InvoiceController) Document(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid invoice id")
		return
	}

	actor := middleware.CurrentUser(c)
	invoice, err := ic.Service.Get(id, *actor)
	if err != nil {
		utils.JSONAppError(c, err)
		return
	}

	doc, err := utils.RenderInvoiceDocument(invoice)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to render document")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+utils.DocumentFilename("invoice", invoice.Reference))
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}
